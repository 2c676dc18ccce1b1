package sheet

import (
	"math"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
)

// Shared drawing helpers. Every length here is in reference pixels.

var (
	bubbleInk = layout.MustHex("#666666")
	answerInk = layout.MustHex("#1f2937")
	labelTint = layout.MustHex("#f9fafb")
	ruleGrey  = layout.MustHex("#9ca3af")
	mutedText = layout.MustHex("#4b5563")
	normalInk = layout.MustHex("#374151")
)

// pt converts a pixel font size to points.
func pt(px float64) float64 { return geometry.Px(px) * geometry.MmToPt }

type span struct{ x, w float64 }

// flex splits [x, x+w] into parts proportional to weights with gap between
// neighbours.
func flex(x, w, gap float64, weights ...float64) []span {
	total := 0.0
	for _, wt := range weights {
		total += wt
	}
	free := w - gap*float64(len(weights)-1)
	out := make([]span, len(weights))
	for i, wt := range weights {
		out[i] = span{x: x, w: free * wt / total}
		x += out[i].w + gap
	}
	return out
}

// writeIn draws "label ______" with the label sitting on baseline y.
func writeIn(b *layout.PageBuilder, label string, s span, y, size float64, line layout.Color, bold bool) {
	lw := layout.EstimateTextWidth(label, size)
	opts := []layout.TextOption{}
	if bold {
		opts = append(opts, layout.Bold())
	}
	b.Text(label, s.x, y-size*1.25, lw, size*1.25, size, opts...)
	b.HLine(s.x+lw+4, s.x+s.w, y-2, line, 1, 3, 2)
}

// rulesHeight estimates the height of numbered rules laid out in width w.
func rulesHeight(rules []string, sys numeral.System, w, size, lineFactor, para float64) float64 {
	h := 0.0
	for i, r := range rules {
		lines := layout.EstimateLines(ruleMarker(i, sys)+r, size, w)
		h += float64(lines)*size*lineFactor + para
	}
	return h
}

// fitSize shrinks size in half-pixel steps until the rules fit maxH.
func fitSize(rules []string, sys numeral.System, w, maxH, size, minSize, lineFactor, para float64) float64 {
	for size > minSize && rulesHeight(rules, sys, w, size, lineFactor, para) > maxH {
		size -= 0.5
	}
	return math.Max(size, minSize)
}

// drawRules lays out numbered rules from y and returns the bottom edge.
func drawRules(b *layout.PageBuilder, rules []string, sys numeral.System, x, y, w, size, lineFactor, para float64, c layout.Color) float64 {
	lh := size * lineFactor
	for i, r := range rules {
		content := ruleMarker(i, sys) + r
		lines := layout.EstimateLines(content, size, w)
		b.Text(content, x, y, w, 0, size, layout.Wrap(lh), layout.TextColor(c))
		y += float64(lines)*lh + para
	}
	return y
}

func rulesFor(c Config, loc labels) []string {
	src := c.Instructions
	if src == "" {
		src = loc.defaultRules
	}
	return ParseRules(src)
}

// signatureBox draws the invigilator box with its caption near the bottom.
func signatureBox(b *layout.PageBuilder, caption []string, x, y, w, h, size float64, stroke layout.Color, bold bool) {
	b.Box(x, y, w, h, stroke, 1)
	lh := size * 1.2
	top := y + h - 8 - lh*float64(len(caption))
	opts := []layout.TextOption{layout.Centered()}
	if bold {
		opts = append(opts, layout.Bold())
	}
	for i, line := range caption {
		b.Text(line, x, top+float64(i)*lh, w, lh, size, opts...)
	}
}
