package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

// TestPxMmRoundTrip checks px and mm conversions survive a round trip.
func TestPxMmRoundTrip(t *testing.T) {
	for _, px := range []float64{0, 1, 22, 40, 96, 750} {
		if back := MmToPx(PxToMm(px)); math.Abs(back-px) > eps {
			t.Fatalf("px→mm→px: in=%g back=%g", px, back)
		}
	}
	if got := Px(96); math.Abs(got-25.4) > eps {
		t.Fatalf("96px should be one inch, got %gmm", got)
	}
}

func TestPtMmRoundTrip(t *testing.T) {
	for _, pt := range []float64{0, 0.001, 1, 12, 14.4, 72, 1000} {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > eps {
			t.Fatalf("pt->mm->pt round trip drifted: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		mm   float64
		unit Unit
	}{
		{"1in", 25.4, UnitIN},
		{"2.54cm", 25.4, UnitCM},
		{"12pt", 12 * PtToMm, UnitPT},
		{" 96px ", 25.4, UnitPX},
		{"7", 7, UnitNone},
	}
	for _, c := range cases {
		l, ok := ParseLength(c.in)
		if !ok {
			t.Fatalf("ParseLength(%q) failed", c.in)
		}
		if l.Unit != c.unit {
			t.Fatalf("ParseLength(%q) unit=%v want %v", c.in, l.Unit, c.unit)
		}
		if math.Abs(l.ToMM()-c.mm) > eps {
			t.Fatalf("ParseLength(%q).ToMM() = %g want %g", c.in, l.ToMM(), c.mm)
		}
	}
	if _, ok := ParseLength("wide"); ok {
		t.Fatal("ParseLength should reject non-numbers")
	}
	if got := (Length{Value: 24, Unit: UnitPX}).ToPT(); math.Abs(got-18) > 1e-3 {
		t.Fatalf("24px should be 18pt, got %g", got)
	}
}

func TestDistributeSymmetric(t *testing.T) {
	for count := 1; count <= 12; count++ {
		for _, extent := range []float64{0, 1, 37.3, 210} {
			p := Distribute(extent, count)
			if len(p) != count {
				t.Fatalf("len=%d want %d", len(p), count)
			}
			for i := range p {
				if i > 0 && p[i] <= p[i-1] && extent > 0 {
					t.Fatalf("not increasing: %v", p)
				}
				if s := p[i] + p[count-1-i]; math.Abs(s-extent) > eps {
					t.Fatalf("extent=%g count=%d: p[%d]+p[%d]=%g", extent, count, i, count-1-i, s)
				}
			}
		}
	}
	if Distribute(10, 0) != nil {
		t.Fatal("count 0 should yield nil")
	}
}

func TestCells(t *testing.T) {
	c := Cells(100, 4)
	want := []float64{12.5, 37.5, 62.5, 87.5}
	for i := range want {
		if math.Abs(c[i]-want[i]) > eps {
			t.Fatalf("Cells(100,4)=%v", c)
		}
	}
}

func TestSpacing(t *testing.T) {
	got := SpaceBetween(100, []float64{10, 20, 10})
	want := []float64{0, 40, 90}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("SpaceBetween=%v want %v", got, want)
		}
	}
	got = SpaceEvenly(100, []float64{20, 20})
	want = []float64{20, 60}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("SpaceEvenly=%v want %v", got, want)
		}
	}
	if A4.Scale() != 1 || (Paper{Width: 105}).Scale() != 0.5 {
		t.Fatal("unexpected paper scale")
	}
}
