package theme

import (
	"testing"

	"github.com/ByLCY/omrkit/layout"
)

func TestParseEveryPalette(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 palettes, got %d", len(all))
	}
	for _, n := range all {
		got, ok := Parse(n.String())
		if !ok || got != n {
			t.Fatalf("Parse(%q) = %v, %v", n.String(), got, ok)
		}
		if !n.Known() {
			t.Fatalf("%v should be known", n)
		}
	}
}

// TestUnknownFallsBack: a misspelt theme resolves to the default palette, not
// zero colours.
func TestUnknownFallsBack(t *testing.T) {
	n, ok := Parse("crimson")
	if ok {
		t.Fatal("crimson is not a palette")
	}
	if n.Resolve() != Default {
		t.Fatalf("Resolve() = %v, want %v", n.Resolve(), Default)
	}
	if n.Palette() != Red.Palette() {
		t.Fatal("unknown palette should resolve to red colours")
	}
	if Name(99).Palette().Border == (layout.Color{}) {
		t.Fatal("out-of-range name produced an empty palette")
	}
}

func TestRedValues(t *testing.T) {
	p := Red.Palette()
	if p.AccentStrong.Hex() != "#e11d48" || p.Border.Hex() != "#f43f5e" || p.Tint1.Hex() != "#fff1f2" || p.Tint2.Hex() != "#fda4af" {
		t.Fatalf("unexpected red palette: %+v", p)
	}
	if n, ok := Parse(" Grey "); !ok || n != Gray {
		t.Fatal("grey alias not accepted")
	}
}
