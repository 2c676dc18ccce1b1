// Package grid partitions questions into answer columns and lays out their
// option bubbles.
package grid

import (
	"fmt"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
)

// Options is the number of answer choices per question.
const Options = 4

// Range is an inclusive block of question numbers.
type Range struct {
	Start int
	End   int
}

// Len returns the number of questions in r.
func (r Range) Len() int { return r.End - r.Start + 1 }

// PerColumn returns ceil(items/columns).
func PerColumn(items, columns int) int {
	if columns <= 0 {
		panic(fmt.Sprintf("grid: column count must be positive, got %d", columns))
	}
	if items <= 0 {
		return 0
	}
	return (items + columns - 1) / columns
}

// Partition splits 1..items column-major into at most columns blocks of
// PerColumn questions each. Columns that would start past items are omitted,
// so the last emitted column absorbs the remainder. items <= 0 yields nil;
// columns <= 0 panics.
func Partition(items, columns int) []Range {
	per := PerColumn(items, columns)
	if per == 0 {
		return nil
	}
	out := make([]Range, 0, columns)
	for i := 0; i < columns; i++ {
		start := i*per + 1
		if start > items {
			break
		}
		end := (i + 1) * per
		if end > items {
			end = items
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}

// Build produces unplaced answer columns for questions 1..items. Question
// labels use numerals, option letters use script.
func Build(items, columns int, numerals, script numeral.System) []layout.AnswerColumn {
	ranges := Partition(items, columns)
	letters := numeral.Options(Options, script)
	cols := make([]layout.AnswerColumn, 0, len(ranges))
	for _, r := range ranges {
		col := layout.AnswerColumn{Start: r.Start, End: r.End, Rows: make([]layout.AnswerRow, 0, r.Len())}
		for q := r.Start; q <= r.End; q++ {
			row := layout.AnswerRow{Question: q, Label: numeral.Format(q, numerals)}
			row.Bubbles = make([]layout.Bubble, Options)
			for o := range row.Bubbles {
				row.Bubbles[o] = layout.Bubble{Row: q - r.Start, Col: o, Value: o, Label: letters[o]}
			}
			col.Rows = append(col.Rows, row)
		}
		cols = append(cols, col)
	}
	return cols
}

// Metrics controls where rows and bubbles land inside a column frame.
type Metrics struct {
	HeaderHeight float64 // space above the first row
	LabelWidth   float64 // question-number cell on the left
	Pitch        float64 // row height
	Radius       float64 // bubble radius
}

// Place assigns coordinates to one column inside frame. Rows are spaced at
// m.Pitch from the header; options are centred in equal cells to the right
// of the label cell.
func Place(col *layout.AnswerColumn, frame layout.Frame, m Metrics) {
	col.Frame = frame
	xs := geometry.Cells(frame.Width-m.LabelWidth, Options)
	for i := range col.Rows {
		row := &col.Rows[i]
		row.Y = frame.Y + m.HeaderHeight + float64(i)*m.Pitch
		cy := row.Y + m.Pitch/2
		for o := range row.Bubbles {
			b := &row.Bubbles[o]
			b.CX = frame.X + m.LabelWidth + xs[o]
			b.CY = cy
			b.R = m.Radius
		}
	}
}

// CheckPartition verifies that cols cover 1..items exactly once, ascending
// and column-major, and that every row carries Options consistently indexed
// bubbles.
func CheckPartition(cols []layout.AnswerColumn, items int) error {
	next := 1
	for ci, col := range cols {
		if col.Start != next {
			return fmt.Errorf("grid: column %d starts at %d, want %d", ci, col.Start, next)
		}
		if col.End < col.Start {
			return fmt.Errorf("grid: column %d has empty range [%d,%d]", ci, col.Start, col.End)
		}
		if len(col.Rows) != col.End-col.Start+1 {
			return fmt.Errorf("grid: column %d has %d rows for range [%d,%d]", ci, len(col.Rows), col.Start, col.End)
		}
		for ri, row := range col.Rows {
			if row.Question != col.Start+ri {
				return fmt.Errorf("grid: column %d row %d holds question %d", ci, ri, row.Question)
			}
			if err := checkRow(row, ri); err != nil {
				return fmt.Errorf("grid: question %d: %w", row.Question, err)
			}
			if ri > 0 && row.Bubbles[0].R > 0 && row.Y <= col.Rows[ri-1].Y {
				return fmt.Errorf("grid: question %d is not below question %d", row.Question, row.Question-1)
			}
		}
		next = col.End + 1
	}
	if items < 0 {
		items = 0
	}
	if next != items+1 {
		return fmt.Errorf("grid: columns cover 1..%d, want 1..%d", next-1, items)
	}
	return nil
}

func checkRow(row layout.AnswerRow, index int) error {
	if len(row.Bubbles) != Options {
		return fmt.Errorf("%d bubbles, want %d", len(row.Bubbles), Options)
	}
	for o, b := range row.Bubbles {
		if b.Row != index || b.Col != o || b.Value != o {
			return fmt.Errorf("bubble %d indexed (row=%d col=%d value=%d)", o, b.Row, b.Col, b.Value)
		}
		if o > 0 && b.R > 0 {
			prev := row.Bubbles[o-1]
			if b.CY != prev.CY || b.CX <= prev.CX {
				return fmt.Errorf("bubble %d is not right of bubble %d on the same line", o, o-1)
			}
		}
	}
	return nil
}
