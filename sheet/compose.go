// Package sheet composes a complete answer sheet from a Config: corner
// markers, identity panels, answer columns and printed decorations.
package sheet

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/grid"
	"github.com/ByLCY/omrkit/identity"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/marker"
)

// fingerprintSpace namespaces template fingerprints.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ByLCY/omrkit/template"))

// strategy lays out one page of a variant. Implementations must be pure.
type strategy interface {
	page(c Config, doc *layout.Document) layout.Page
}

func strategyFor(v Variant) strategy {
	if v == Board {
		return boardLayout{}
	}
	return normalLayout{}
}

// Compose normalizes c and lays out the sheet. Two-page Normal sheets carry
// two identical copies of the same page.
func Compose(c Config) *layout.Document {
	c = Normalize(c)
	doc := &layout.Document{
		Version:       layout.TemplateVersion,
		Variant:       string(c.Variant),
		Fingerprint:   Fingerprint(c),
		QuestionCount: c.QuestionCount,
		Meta: layout.DocumentMeta{
			Title:    localeFor(c.Numerals).title,
			Author:   c.Institution,
			Subject:  fmt.Sprintf("%s %d", c.Variant, c.QuestionCount),
			Creator:  "omrkit " + layout.TemplateVersion,
			Keywords: []string{"omr", string(c.Variant)},
		},
	}
	s := strategyFor(c.Variant)
	for i := 0; i < c.Pages(); i++ {
		doc.Pages = append(doc.Pages, s.page(c, doc))
	}
	return doc
}

// Fingerprint is a deterministic UUIDv5 of the normalized config. Sheets with
// the same fingerprint share every printed coordinate.
func Fingerprint(c Config) string {
	data, err := json.Marshal(Normalize(c))
	if err != nil {
		// Normalize leaves only finite sizes, so Marshal cannot fail.
		panic(err)
	}
	return uuid.NewSHA1(fingerprintSpace, append([]byte(layout.TemplateVersion+"\n"), data...)).String()
}

// newPage returns an A4 page with its corner markers placed.
func newPage() layout.Page {
	p := geometry.A4
	return layout.Page{Width: p.Width, Height: p.Height, Markers: marker.Place(p)}
}

// Verify checks a composed document against the structural rules a scanner
// relies on. Compose output always passes; a failure is a defect.
func Verify(doc *layout.Document) error {
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("sheet: document has no pages")
	}
	for i, p := range doc.Pages {
		if len(p.Markers) != 4 {
			return fmt.Errorf("sheet: page %d has %d markers", i+1, len(p.Markers))
		}
		if n := len(marker.Signature(p.Markers)); n != 2 {
			return fmt.Errorf("sheet: page %d has %d notched markers", i+1, n)
		}
		if err := grid.CheckPartition(p.AnswerColumns, doc.QuestionCount); err != nil {
			return fmt.Errorf("sheet: page %d: %w", i+1, err)
		}
		for _, panel := range p.IdentityPanels {
			if err := identity.Check(panel); err != nil {
				return fmt.Errorf("sheet: page %d: %w", i+1, err)
			}
		}
	}
	return nil
}
