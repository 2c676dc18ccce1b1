package sheet

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseRules extracts candidate rules from Markdown. Every list item is one
// rule; a document without lists contributes one rule per paragraph. Inline
// markup is flattened to plain text.
func ParseRules(source string) []string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var items, paragraphs []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindListItem:
			if s := plainText(n, src); s != "" {
				items = append(items, s)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if s := plainText(n, src); s != "" {
				paragraphs = append(paragraphs, s)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if len(items) > 0 {
		return items
	}
	return paragraphs
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		if c != n && (c.Kind() == ast.KindParagraph || c.Kind() == ast.KindTextBlock) && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
