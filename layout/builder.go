package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/omrkit/geometry"
)

// PageBuilder 以调用方选定的单位向页面追加装饰元素，内部统一换算为 mm。
// Scale 为每个输入单位对应的毫米数，例如 geometry.Px(1)。
type PageBuilder struct {
	Page  *Page
	Scale float64
}

// NewPageBuilder 创建一个写入 p 的构建器。
func NewPageBuilder(p *Page, scale float64) *PageBuilder {
	if scale <= 0 {
		scale = 1
	}
	return &PageBuilder{Page: p, Scale: scale}
}

// MM 将输入单位换算为 mm。
func (b *PageBuilder) MM(v float64) float64 { return v * b.Scale }

// Frame 将输入单位的矩形换算为 mm。
func (b *PageBuilder) Frame(x, y, w, h float64) Frame {
	return Frame{X: b.MM(x), Y: b.MM(y), Width: b.MM(w), Height: b.MM(h)}
}

// TextOption 调整文本块的可选属性。
type TextOption func(*TextBox, *PageBuilder)

// Bold 使用粗体。
func Bold() TextOption { return func(t *TextBox, _ *PageBuilder) { t.Bold = true } }

// Align 设置水平对齐：left/center/right。
func Align(a string) TextOption { return func(t *TextBox, _ *PageBuilder) { t.Align = a } }

// Centered 等价于 Align("center")。
func Centered() TextOption { return Align("center") }

// TextColor 设置文字颜色。
func TextColor(c Color) TextOption { return func(t *TextBox, _ *PageBuilder) { t.Color = c } }

// Wrap 按宽度折行，lineHeight 与坐标使用相同的输入单位。
func Wrap(lineHeight float64) TextOption {
	return func(t *TextBox, b *PageBuilder) {
		t.Wrap = true
		t.LineHeight = b.MM(lineHeight)
	}
}

// Rotate 逆时针旋转（角度）。
func Rotate(deg float64) TextOption { return func(t *TextBox, _ *PageBuilder) { t.Rotate = deg } }

// Text 追加文本块。size 与坐标使用相同的输入单位，写入时换算为 pt。
// h>0 时文字在框内垂直居中。
func (b *PageBuilder) Text(content string, x, y, w, h, size float64, opts ...TextOption) {
	if strings.TrimSpace(content) == "" {
		return
	}
	tb := TextBox{
		Content:  content,
		X:        b.MM(x),
		Y:        b.MM(y),
		Width:    b.MM(w),
		Height:   b.MM(h),
		FontSize: b.MM(size) * geometry.MmToPt,
		Color:    Black,
	}
	for _, opt := range opts {
		opt(&tb, b)
	}
	b.Page.Decorations.Texts = append(b.Page.Decorations.Texts, tb)
}

// Box 追加仅描边的矩形。
func (b *PageBuilder) Box(x, y, w, h float64, stroke Color, width float64) {
	b.Page.Decorations.Rects = append(b.Page.Decorations.Rects, Rect{
		X: b.MM(x), Y: b.MM(y), Width: b.MM(w), Height: b.MM(h),
		StrokeColor: stroke, StrokeWidth: b.MM(width),
	})
}

// Fill 追加仅填充的矩形。
func (b *PageBuilder) Fill(x, y, w, h float64, fill Color) {
	b.Page.Decorations.Rects = append(b.Page.Decorations.Rects, Rect{
		X: b.MM(x), Y: b.MM(y), Width: b.MM(w), Height: b.MM(h),
		FillColor: fill.Ptr(),
	})
}

// Line 追加线段；dash 为空时是实线，数值同样使用输入单位。
func (b *PageBuilder) Line(x1, y1, x2, y2 float64, c Color, width float64, dash ...float64) {
	ln := Line{X1: b.MM(x1), Y1: b.MM(y1), X2: b.MM(x2), Y2: b.MM(y2), Color: c, Width: b.MM(width)}
	for _, d := range dash {
		ln.Dash = append(ln.Dash, b.MM(d))
	}
	b.Page.Decorations.Lines = append(b.Page.Decorations.Lines, ln)
}

// HLine 追加水平线。
func (b *PageBuilder) HLine(x1, x2, y float64, c Color, width float64, dash ...float64) {
	b.Line(x1, y, x2, y, c, width, dash...)
}

// VLine 追加竖直线。
func (b *PageBuilder) VLine(x, y1, y2 float64, c Color, width float64) {
	b.Line(x, y1, x, y2, c, width)
}

// Circle 追加圆；fill 为空表示不填充。
func (b *PageBuilder) Circle(cx, cy, r float64, stroke Color, width float64, fill *Color) {
	b.Page.Decorations.Circles = append(b.Page.Decorations.Circles, Circle{
		CX: b.MM(cx), CY: b.MM(cy), R: b.MM(r), StrokeColor: stroke, StrokeWidth: b.MM(width), FillColor: fill,
	})
}

// TimingMark 追加扫描端用于行列同步的黑色实心标记。
func (b *PageBuilder) TimingMark(x, y, w, h float64) {
	b.Page.TimingMarks = append(b.Page.TimingMarks, Rect{
		X: b.MM(x), Y: b.MM(y), Width: b.MM(w), Height: b.MM(h), FillColor: Black.Ptr(),
	})
}

// EstimateTextWidth 在没有字体度量时粗略估算单行文本宽度（与 size 同单位）。
func EstimateTextWidth(content string, size float64) float64 {
	if size <= 0 {
		size = 12
	}
	maxChars := 0
	for _, line := range strings.Split(content, "\n") {
		if n := visibleRunes(line); n > maxChars {
			maxChars = n
		}
	}
	return size * 0.55 * float64(maxChars+1)
}

// EstimateLines 估算文本在 width 内折行后的行数，至少为 1。
func EstimateLines(content string, size, width float64) int {
	if width <= 0 {
		return 1
	}
	n := int(math.Ceil(EstimateTextWidth(content, size) / width))
	if n < 1 {
		n = 1
	}
	return n
}

// visibleRunes 不计孟加拉文元音符号等附着字符。
func visibleRunes(s string) int {
	n := 0
	for _, r := range s {
		if isCombining(r) {
			continue
		}
		n++
	}
	if n == 0 {
		return utf8.RuneCountInString(s)
	}
	return n
}

func isCombining(r rune) bool {
	switch {
	case r >= 0x0981 && r <= 0x0983, // candrabindu, anusvara, visarga
		r == 0x09BC,                  // nukta
		r >= 0x09BE && r <= 0x09CD,   // vowel signs, virama
		r == 0x09D7,                  // au length mark
		r == 0x200C || r == 0x200D:   // ZWNJ/ZWJ
		return true
	}
	return false
}
