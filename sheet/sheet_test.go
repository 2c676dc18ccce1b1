package sheet

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/omrkit/grid"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/theme"
)

func ranges(cols []layout.AnswerColumn) []grid.Range {
	out := make([]grid.Range, 0, len(cols))
	for _, c := range cols {
		out = append(out, grid.Range{Start: c.Start, End: c.End})
	}
	return out
}

// TestNormalizeIdempotent: Normalize(Normalize(c)) == Normalize(c) for valid and
// invalid input.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []Config{
		{},
		{Variant: Board},
		{Variant: Board, QuestionCount: 55, Theme: theme.Name(42), SetCodes: []string{"A", "A", "BB", " C ", ""}},
		{Variant: Normal, QuestionCount: 7, Columns: 9, PagesPerSheet: 5},
		{Variant: Normal, QuestionCount: 120, Columns: 4, PagesPerSheet: 2},
		{Variant: "poster", QuestionCount: -3, Columns: -1, TitleSize: 99, AddressSize: 1},
		{Variant: Board, InfoMode: InfoManual, HeaderSize: HeaderBig, ClassLevels: []int{0, 9, 9, 10}, Numerals: numeral.Latin},
		{Variant: Normal, TitleSize: math.NaN(), AddressSize: math.Inf(1)},
		{Variant: Board, TitleSize: math.Inf(-1), AddressSize: math.NaN()},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("Normalize not idempotent for %+v (-once +twice):\n%s", in, diff)
		}
	}
}

func TestNormalizeNonFiniteSizes(t *testing.T) {
	got := Normalize(Config{TitleSize: math.NaN(), AddressSize: math.NaN()})
	if got.TitleSize != DefaultTitleSize || got.AddressSize != DefaultAddressSize {
		t.Fatalf("NaN sizes should fall back to defaults, got title=%g address=%g", got.TitleSize, got.AddressSize)
	}
	got = Normalize(Config{TitleSize: math.Inf(1), AddressSize: math.Inf(-1)})
	if got.TitleSize != MaxTitleSize || got.AddressSize != MinAddressSize {
		t.Fatalf("infinite sizes should clamp, got title=%g address=%g", got.TitleSize, got.AddressSize)
	}
	doc := Compose(Config{Variant: Board, TitleSize: math.NaN()})
	if err := Verify(doc); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if doc.Fingerprint != Fingerprint(Config{Variant: Board}) {
		t.Fatalf("NaN title size should fingerprint like the default")
	}
}

func TestNormalizeClamps(t *testing.T) {
	cases := []struct {
		name string
		in   Config
		q    int
		cols int
		pp   int
	}{
		{"normal defaults", Config{}, 30, 2, 1},
		{"normal low", Config{Variant: Normal, QuestionCount: 3, Columns: 1}, 10, 2, 1},
		{"normal high", Config{Variant: Normal, QuestionCount: 500, Columns: 7}, 100, 4, 1},
		{"two pages", Config{Variant: Normal, QuestionCount: 80, Columns: 4, PagesPerSheet: 2}, 30, 3, 2},
		{"board tier 100", Config{Variant: Board, QuestionCount: 81}, 100, 4, 1},
		{"board tier 80", Config{Variant: Board, QuestionCount: 61}, 80, 4, 1},
		{"board tier 60", Config{Variant: Board, QuestionCount: 41}, 60, 3, 1},
		{"board tier 40", Config{Variant: Board, QuestionCount: 12, Columns: 4, PagesPerSheet: 2}, 40, 2, 1},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if got.QuestionCount != c.q || got.Columns != c.cols || got.PagesPerSheet != c.pp {
			t.Fatalf("%s: got q=%d cols=%d pages=%d, want %d/%d/%d", c.name, got.QuestionCount, got.Columns, got.PagesPerSheet, c.q, c.cols, c.pp)
		}
	}
}

func TestNormalizeFields(t *testing.T) {
	got := Normalize(Config{Variant: Board, Theme: theme.Name(77), SetCodes: []string{"A", "A", "BB", " C ", "D", "E", "F"}, TitleSize: 3, AddressSize: 50})
	if got.Theme != theme.Red {
		t.Fatalf("unknown theme should fall back to red, got %v", got.Theme)
	}
	if diff := cmp.Diff([]string{"A", "C", "D", "E"}, got.SetCodes); diff != "" {
		t.Fatalf("set codes (-want +got):\n%s", diff)
	}
	if got.TitleSize != MinTitleSize || got.AddressSize != MaxAddressSize {
		t.Fatalf("font sizes not clamped: %g/%g", got.TitleSize, got.AddressSize)
	}
	if got.Numerals != numeral.Bengali || got.OptionScript != numeral.Bengali {
		t.Fatal("numerals should default to Bengali")
	}
	if got.HeaderSize != HeaderSmall || got.InfoMode != InfoDigital {
		t.Fatalf("board defaults: header=%q info=%q", got.HeaderSize, got.InfoMode)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, Normalize(Config{Numerals: numeral.Latin}).SetCodes); diff != "" {
		t.Fatalf("latin default set codes (-want +got):\n%s", diff)
	}
	n := Normalize(Config{Variant: Normal, HeaderSize: HeaderBig, InfoMode: InfoManual, ClassLevels: []int{6}})
	if n.HeaderSize != "" || n.InfoMode != "" || n.ClassLevels != nil {
		t.Fatal("board-only fields should be cleared on normal sheets")
	}
}

// TestScenarioNormal30: Normal, 30 questions, 3 columns, 1 page gives
// [1,10],[11,20],[21,30] with 10 rows of 4 bubbles each.
func TestScenarioNormal30(t *testing.T) {
	doc := Compose(Config{Variant: Normal, QuestionCount: 30, Columns: 3, PagesPerSheet: 1})
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	cols := doc.Pages[0].AnswerColumns
	want := []grid.Range{{1, 10}, {11, 20}, {21, 30}}
	if diff := cmp.Diff(want, ranges(cols)); diff != "" {
		t.Fatalf("ranges (-want +got):\n%s", diff)
	}
	for _, c := range cols {
		if len(c.Rows) != 10 {
			t.Fatalf("column [%d,%d] has %d rows", c.Start, c.End, len(c.Rows))
		}
		for _, r := range c.Rows {
			if len(r.Bubbles) != 4 {
				t.Fatalf("question %d has %d bubbles", r.Question, len(r.Bubbles))
			}
		}
	}
	if err := Verify(doc); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestScenarioBoard100: Board with 100 questions is 4 columns of 25.
func TestScenarioBoard100(t *testing.T) {
	doc := Compose(Config{Variant: Board, QuestionCount: 100})
	want := []grid.Range{{1, 25}, {26, 50}, {51, 75}, {76, 100}}
	if diff := cmp.Diff(want, ranges(doc.Pages[0].AnswerColumns)); diff != "" {
		t.Fatalf("ranges (-want +got):\n%s", diff)
	}
	if BoardPerColumn(100) != 25 || BoardPerColumn(80) != 20 {
		t.Fatal("unexpected questions per column")
	}
	kinds := map[layout.PanelKind]bool{}
	for _, p := range doc.Pages[0].IdentityPanels {
		kinds[p.Kind] = true
	}
	for _, k := range []layout.PanelKind{layout.PanelRoll, layout.PanelSubjectCode, layout.PanelClass, layout.PanelSetCode} {
		if !kinds[k] {
			t.Fatalf("digital board sheet is missing the %s panel", k)
		}
	}
	if err := Verify(doc); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestScenarioTwoPages: two copies force 3 columns and identical partitions.
func TestScenarioTwoPages(t *testing.T) {
	for _, q := range []int{10, 24, 30, 45, 100} {
		doc := Compose(Config{Variant: Normal, QuestionCount: q, Columns: 4, PagesPerSheet: 2})
		if len(doc.Pages) != 2 {
			t.Fatalf("q=%d: expected 2 pages, got %d", q, len(doc.Pages))
		}
		want := q
		if want > 30 {
			want = 30
		}
		if doc.QuestionCount != want {
			t.Fatalf("q=%d: document has %d questions, want %d", q, doc.QuestionCount, want)
		}
		first, second := ranges(doc.Pages[0].AnswerColumns), ranges(doc.Pages[1].AnswerColumns)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("q=%d: pages differ (-first +second):\n%s", q, diff)
		}
		if diff := cmp.Diff(grid.Partition(want, 3), first); diff != "" {
			t.Fatalf("q=%d: not a 3-column partition (-want +got):\n%s", q, diff)
		}
		if diff := cmp.Diff(doc.Pages[0], doc.Pages[1]); diff != "" {
			t.Fatalf("q=%d: copies are not identical:\n%s", q, diff)
		}
		if err := Verify(doc); err != nil {
			t.Fatalf("q=%d: Verify: %v", q, err)
		}
	}
}

func TestComposeEveryShape(t *testing.T) {
	var configs []Config
	for q := 10; q <= 100; q += 7 {
		for c := 2; c <= 4; c++ {
			configs = append(configs, Config{Variant: Normal, QuestionCount: q, Columns: c})
		}
	}
	for _, q := range []int{40, 60, 80, 100} {
		for _, info := range []InfoMode{InfoDigital, InfoManual} {
			for _, h := range []HeaderSize{HeaderSmall, HeaderBig} {
				configs = append(configs, Config{Variant: Board, QuestionCount: q, InfoMode: info, HeaderSize: h, Institution: "Test School", Address: "Dhaka"})
			}
		}
	}
	for _, cfg := range configs {
		doc := Compose(cfg)
		if err := Verify(doc); err != nil {
			t.Fatalf("%+v: %v", cfg, err)
		}
		for _, p := range doc.Pages {
			for _, col := range p.AnswerColumns {
				for _, row := range col.Rows {
					for _, bub := range row.Bubbles {
						if bub.CX-bub.R < 0 || bub.CX+bub.R > p.Width || bub.CY-bub.R < 0 || bub.CY+bub.R > p.Height {
							t.Fatalf("%+v: question %d bubble off the page", cfg, row.Question)
						}
					}
				}
			}
		}
	}
}

func TestManualSheetsCarryQR(t *testing.T) {
	digital := Compose(Config{Variant: Board, InfoMode: InfoDigital})
	manual := Compose(Config{Variant: Board, InfoMode: InfoManual, HeaderSize: HeaderSmall})
	if blackFills(manual.Pages[0]) <= blackFills(digital.Pages[0]) {
		t.Fatal("manual sheet should draw QR modules")
	}
	for _, p := range manual.Pages[0].IdentityPanels {
		if p.Kind != layout.PanelSetCode || p.Axis != layout.ValuesAcross {
			t.Fatalf("manual small sheet should only carry the set-code strip, got %s/%s", p.Kind, p.Axis)
		}
	}
	big := Compose(Config{Variant: Board, InfoMode: InfoManual, HeaderSize: HeaderBig})
	if len(big.Pages[0].IdentityPanels) != 0 {
		t.Fatal("manual big sheet has no bubble panels")
	}
}

func blackFills(p layout.Page) int {
	n := 0
	for _, r := range p.Decorations.Rects {
		if r.FillColor != nil && *r.FillColor == layout.Black {
			n++
		}
	}
	return n
}

func TestDrawQR(t *testing.T) {
	pg := layout.Page{}
	b := layout.NewPageBuilder(&pg, 1)
	if !drawQR(b, "omr;v=1;t=board;q=100;id=x", 10, 10, 50) {
		t.Fatal("drawQR failed")
	}
	if blackFills(pg) < 10 {
		t.Fatalf("expected QR modules, got %d dark runs", blackFills(pg))
	}
	for _, r := range pg.Decorations.Rects {
		if r.X < 10-1e-9 || r.Y < 10-1e-9 || r.X+r.Width > 60+1e-9 || r.Y+r.Height > 60+1e-9 {
			t.Fatalf("module outside the QR square: %+v", r)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(Config{Variant: Normal, QuestionCount: 30, Columns: 3})
	b := Fingerprint(Config{Variant: Normal, QuestionCount: 30, Columns: 3, PagesPerSheet: 1, Numerals: numeral.Bengali})
	if a != b {
		t.Fatal("equivalent configs should share a fingerprint")
	}
	if a == Fingerprint(Config{Variant: Normal, QuestionCount: 31, Columns: 3}) {
		t.Fatal("different question counts should not share a fingerprint")
	}
	doc := Compose(Config{Variant: Normal, QuestionCount: 30, Columns: 3})
	if doc.Fingerprint != a || doc.Version != layout.TemplateVersion {
		t.Fatalf("document identity = %s/%s", doc.Version, doc.Fingerprint)
	}
}

func TestVerifyRejectsDefects(t *testing.T) {
	doc := Compose(Config{Variant: Board, QuestionCount: 60})
	doc.Pages[0].Markers[0].HasNotch = true
	if err := Verify(doc); err == nil {
		t.Fatal("three notches should fail verification")
	}
	doc = Compose(Config{Variant: Board, QuestionCount: 60})
	doc.Pages[0].AnswerColumns = doc.Pages[0].AnswerColumns[1:]
	if err := Verify(doc); err == nil {
		t.Fatal("missing column should fail verification")
	}
	if err := Verify(&layout.Document{}); err == nil {
		t.Fatal("empty document should fail verification")
	}
}

func TestParseRules(t *testing.T) {
	got := ParseRules("1. Fill the *whole* circle.\n2. No stray\n   marks.\n\n- Bring a pen.")
	want := []string{"Fill the whole circle.", "No stray marks.", "Bring a pen."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseRules (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Only a paragraph."}, ParseRules("Only a paragraph.")); diff != "" {
		t.Fatalf("paragraph fallback (-want +got):\n%s", diff)
	}
	if n := len(ParseRules(bengaliLabels.defaultRules)); n != 4 {
		t.Fatalf("default rules parsed into %d items", n)
	}
}
