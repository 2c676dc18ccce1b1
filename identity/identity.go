// Package identity builds the fixed-format bubble panels that encode who
// wrote a sheet: roll number, subject code, class and question set.
//
// Panels share one indexing convention with answer rows. Every bubble has a
// Row, a Col and a Value. The panel Axis names the index the value is read
// along: digit panels are ValuesDown (Value is the row, Col is the digit
// position), answer rows and the horizontal set-code strip are ValuesAcross.
package identity

import (
	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
)

const (
	// RollDigits is the number of digit positions in a roll number.
	RollDigits = 6
	// SubjectDigits is the number of digit positions in a subject code.
	SubjectDigits = 3
)

// Roll builds the 6 x 10 roll-number panel.
func Roll(header string, sys numeral.System) layout.BubblePanel {
	return digits(layout.PanelRoll, header, RollDigits, sys)
}

// SubjectCode builds the 3 x 10 subject-code panel.
func SubjectCode(header string, sys numeral.System) layout.BubblePanel {
	return digits(layout.PanelSubjectCode, header, SubjectDigits, sys)
}

func digits(kind layout.PanelKind, header string, positions int, sys numeral.System) layout.BubblePanel {
	p := layout.BubblePanel{Kind: kind, Header: header, Rows: 10, Cols: positions, Axis: layout.ValuesDown}
	p.Cells = make([]layout.Bubble, 0, 10*positions)
	for d := 0; d < 10; d++ {
		for c := 0; c < positions; c++ {
			p.Cells = append(p.Cells, layout.Bubble{Row: d, Col: c, Value: d, Label: numeral.Digit(d, sys)})
		}
	}
	return p
}

// Class builds a single-column panel with one row per class level.
func Class(header string, levels []int, sys numeral.System) layout.BubblePanel {
	p := layout.BubblePanel{Kind: layout.PanelClass, Header: header, Rows: len(levels), Cols: 1, Axis: layout.ValuesDown}
	for r, lvl := range levels {
		p.Cells = append(p.Cells, layout.Bubble{Row: r, Col: 0, Value: lvl, Label: numeral.Format(lvl, sys)})
	}
	return p
}

// SetCode builds a single-column panel, one row per set label.
func SetCode(header string, labels []string) layout.BubblePanel {
	p := layout.BubblePanel{Kind: layout.PanelSetCode, Header: header, Rows: len(labels), Cols: 1, Axis: layout.ValuesDown}
	for r, l := range labels {
		p.Cells = append(p.Cells, layout.Bubble{Row: r, Col: 0, Value: r, Label: l})
	}
	return p
}

// SetCodeRow builds the one-row variant printed on manual-entry sheets.
func SetCodeRow(header string, labels []string) layout.BubblePanel {
	p := layout.BubblePanel{Kind: layout.PanelSetCode, Header: header, Rows: 1, Cols: len(labels), Axis: layout.ValuesAcross}
	for c, l := range labels {
		p.Cells = append(p.Cells, layout.Bubble{Row: 0, Col: c, Value: c, Label: l})
	}
	return p
}

// Metrics controls bubble placement inside a panel frame.
type Metrics struct {
	Top    float64 // header and write-in rows above the first bubble row
	Left   float64 // caption space before the first bubble column
	Pitch  float64 // row height
	Radius float64
}

// Place assigns bubble centres inside frame: columns centred in equal cells
// right of m.Left, rows at m.Pitch below m.Top.
func Place(p *layout.BubblePanel, frame layout.Frame, m Metrics) {
	p.Frame = frame
	xs := geometry.Cells(frame.Width-m.Left, p.Cols)
	for i := range p.Cells {
		b := &p.Cells[i]
		b.CX = frame.X + m.Left + xs[b.Col]
		b.CY = frame.Y + m.Top + (float64(b.Row)+0.5)*m.Pitch
		b.R = m.Radius
	}
}
