package layout

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/omrkit/geometry"
)

// TestPageBuilderScales 构建器以 px 为输入单位时，写入页面的坐标应换算为 mm。
func TestPageBuilderScales(t *testing.T) {
	var p Page
	b := NewPageBuilder(&p, geometry.Px(1))
	b.Text("রোল নম্বর", 96, 0, 96, 24, 16, Bold(), Centered())
	b.Fill(0, 0, 96, 96, White)
	b.HLine(0, 96, 48, Black, 1, 4, 2)
	b.TimingMark(10, 10, 24, 20)
	b.Text("   ", 0, 0, 10, 10, 12)

	if len(p.Decorations.Texts) != 1 {
		t.Fatalf("blank text should be skipped, got %d texts", len(p.Decorations.Texts))
	}
	tb := p.Decorations.Texts[0]
	if math.Abs(tb.X-25.4) > 1e-9 || math.Abs(tb.Width-25.4) > 1e-9 {
		t.Fatalf("text box not converted to mm: %+v", tb)
	}
	// 16px = 12pt
	if math.Abs(tb.FontSize-12) > 1e-3 || !tb.Bold || tb.Align != "center" {
		t.Fatalf("text options not applied: %+v", tb)
	}
	if r := p.Decorations.Rects[0]; r.FillColor == nil || *r.FillColor != White || r.StrokeWidth != 0 {
		t.Fatalf("fill rect malformed: %+v", r)
	}
	if ln := p.Decorations.Lines[0]; len(ln.Dash) != 2 || math.Abs(ln.Y1-12.7) > 1e-9 {
		t.Fatalf("dashed line malformed: %+v", ln)
	}
	if len(p.TimingMarks) != 1 || *p.TimingMarks[0].FillColor != Black {
		t.Fatalf("timing mark missing: %+v", p.TimingMarks)
	}
}

func TestEstimateLines(t *testing.T) {
	if n := EstimateLines("abc", 10, 0); n != 1 {
		t.Fatalf("zero width should give one line, got %d", n)
	}
	long := "উত্তরপত্রে অবাঞ্চিত দাগ দেয়া যাবেনা। উত্তরপত্র ভাজ করা যাবেনা।"
	if n := EstimateLines(long, 11, 40); n < 2 {
		t.Fatalf("long rule should wrap, got %d line(s)", n)
	}
	// 元音符号不单独占宽
	if visibleRunes("কি") != 1 {
		t.Fatalf("vowel sign counted as a glyph")
	}
}

func TestParseHex(t *testing.T) {
	cases := map[string]Color{
		"#f43f5e":   {R: 0xf4, G: 0x3f, B: 0x5e},
		"fff":       White,
		"#00000080": Black,
	}
	for in, want := range cases {
		got, err := ParseHex(in)
		if err != nil || got != want {
			t.Fatalf("ParseHex(%q) = %+v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "#12", "#gggggg"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("ParseHex(%q) 应当失败", bad)
		}
	}
	if MustHex("#374151").Hex() != "#374151" {
		t.Fatal("Hex round trip failed")
	}
}

func TestWriteDebugJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	doc := &Document{Version: TemplateVersion, Pages: []Page{{Width: 210, Height: 297}}}
	if err := WriteDebugJSON(doc, path); err != nil {
		t.Fatalf("WriteDebugJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("debug JSON not written: %v", err)
	}
	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("nil document should be a no-op: %v", err)
	}
}
