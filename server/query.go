package server

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	examIDPattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// generatorQuery holds the parsed /omr/generator parameters.
type generatorQuery struct {
	Config sheet.Config
	Format string // pdf, svg or json
	ExamID string
}

// Bind reads the generator parameters. Invalid values are ignored so the
// sheet defaults apply.
func (q *generatorQuery) Bind(values url.Values) {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	c := &q.Config

	c.Variant = sheet.ParseVariant(get("type"))
	c.QuestionCount = positive(get("qCount"))
	c.Columns = positive(get("columns"))
	c.PagesPerSheet = positive(get("pages"))
	c.Theme, _ = theme.Parse(get("theme"))
	c.HeaderSize = sheet.ParseHeaderSize(get("header"))
	c.InfoMode = sheet.ParseInfoMode(get("info"))
	c.Numerals = numeral.Parse(get("numerals"))
	c.OptionScript = numeral.Parse(get("options"))
	c.Institution = sanitizeText(get("institution"))
	c.Address = sanitizeText(get("address"))
	if codes := get("setCodes"); codes != "" {
		for _, s := range strings.Split(codes, ",") {
			c.SetCodes = append(c.SetCodes, sanitizeText(s))
		}
	}

	q.Format = strings.ToLower(get("format"))
	q.ExamID = examIDPattern.ReplaceAllString(sanitizeText(get("examId")), "")
	if len(q.ExamID) > 64 {
		q.ExamID = q.ExamID[:64]
	}
}

// data returns the binding values for ${...} placeholders.
func (q *generatorQuery) data(base map[string]any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	if q.ExamID != "" {
		out["examId"] = q.ExamID
	}
	return out
}

func positive(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// sanitizeText strips markup from user supplied strings printed on the sheet.
// The sheet is not HTML, so entities are decoded again afterwards.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}
