package grid

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
)

// TestPartitionCoverage tries every q in 1..100 and 2-4 columns: ranges are
// ascending, disjoint and cover exactly 1..q.
func TestPartitionCoverage(t *testing.T) {
	for q := 1; q <= 100; q++ {
		for c := 2; c <= 4; c++ {
			cols := Build(q, c, numeral.Latin, numeral.Latin)
			if err := CheckPartition(cols, q); err != nil {
				t.Fatalf("q=%d c=%d: %v", q, c, err)
			}
			seen := make(map[int]bool, q)
			for _, col := range cols {
				for n := col.Start; n <= col.End; n++ {
					if seen[n] {
						t.Fatalf("q=%d c=%d: question %d appears twice", q, c, n)
					}
					seen[n] = true
				}
			}
			if len(seen) != q {
				t.Fatalf("q=%d c=%d: covered %d questions", q, c, len(seen))
			}
		}
	}
}

// TestColumnCountBound: non-empty columns never exceed the request and equal
// ceil(q / ceil(q/c)).
func TestColumnCountBound(t *testing.T) {
	for q := 1; q <= 100; q++ {
		for c := 2; c <= 4; c++ {
			got := len(Partition(q, c))
			per := int(math.Ceil(float64(q) / float64(c)))
			want := int(math.Ceil(float64(q) / float64(per)))
			if got > c || got != want {
				t.Fatalf("q=%d c=%d: %d columns, want %d", q, c, got, want)
			}
		}
	}
}

func TestPartitionScenarios(t *testing.T) {
	cases := []struct {
		q, c int
		want []Range
	}{
		{30, 3, []Range{{1, 10}, {11, 20}, {21, 30}}},
		{100, 4, []Range{{1, 25}, {26, 50}, {51, 75}, {76, 100}}},
		{10, 4, []Range{{1, 3}, {4, 6}, {7, 9}, {10, 10}}},
		// 5 questions in 4 columns: 2 per column, the 4th column would start past q
		{5, 4, []Range{{1, 2}, {3, 4}, {5, 5}}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, Partition(c.q, c.c)); diff != "" {
			t.Fatalf("Partition(%d,%d) (-want +got):\n%s", c.q, c.c, diff)
		}
	}
}

func TestEmptyAndInvalid(t *testing.T) {
	if got := Build(0, 3, numeral.Bengali, numeral.Bengali); len(got) != 0 {
		t.Fatalf("zero items should give no columns, got %d", len(got))
	}
	if err := CheckPartition(nil, 0); err != nil {
		t.Fatalf("empty partition of 0 items: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("non-positive column count should panic")
		}
	}()
	Partition(10, 0)
}

func TestBuildLabels(t *testing.T) {
	cols := Build(30, 3, numeral.Bengali, numeral.Bengali)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	for _, col := range cols {
		if len(col.Rows) != 10 {
			t.Fatalf("column [%d,%d] has %d rows", col.Start, col.End, len(col.Rows))
		}
		for _, row := range col.Rows {
			if len(row.Bubbles) != 4 {
				t.Fatalf("question %d has %d bubbles", row.Question, len(row.Bubbles))
			}
		}
	}
	last := cols[2].Rows[9]
	if last.Label != "৩০" {
		t.Fatalf("question 30 label = %q", last.Label)
	}
	var letters []string
	for _, b := range last.Bubbles {
		letters = append(letters, b.Label)
	}
	if got := strings.Join(letters, ""); got != "কখগঘ" {
		t.Fatalf("option letters = %q", got)
	}
	latin := Build(4, 2, numeral.Bengali, numeral.Latin)
	if latin[0].Rows[0].Bubbles[3].Label != "D" || latin[0].Rows[0].Label != "১" {
		t.Fatal("option script should be independent of numerals")
	}
}

func TestPlace(t *testing.T) {
	cols := Build(20, 2, numeral.Latin, numeral.Latin)
	m := Metrics{HeaderHeight: 6, LabelWidth: 8, Pitch: 7, Radius: 2.5}
	for i := range cols {
		Place(&cols[i], layout.Frame{X: float64(i) * 50, Y: 100, Width: 48, Height: 76}, m)
	}
	if err := CheckPartition(cols, 20); err != nil {
		t.Fatalf("placed columns: %v", err)
	}
	first := cols[0].Rows[0]
	if first.Y != 106 || first.Bubbles[0].CY != 109.5 {
		t.Fatalf("first row at y=%g cy=%g", first.Y, first.Bubbles[0].CY)
	}
	// option centres split the width right of the label: (48-8)/4 = 10
	if first.Bubbles[0].CX != 13 || first.Bubbles[3].CX != 43 {
		t.Fatalf("bubble x = %g..%g", first.Bubbles[0].CX, first.Bubbles[3].CX)
	}
}

func TestCheckPartitionDetectsGaps(t *testing.T) {
	cols := Build(30, 3, numeral.Latin, numeral.Latin)
	broken := []layout.AnswerColumn{cols[0], cols[2]}
	if err := CheckPartition(broken, 30); err == nil {
		t.Fatal("missing middle column should be reported")
	}
	if err := CheckPartition(cols, 31); err == nil {
		t.Fatal("short coverage should be reported")
	}
	cols[1].Rows[0].Bubbles[2].Value = 1
	if err := CheckPartition(cols, 30); err == nil {
		t.Fatal("inconsistent bubble value should be reported")
	}
}
