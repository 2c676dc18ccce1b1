package identity

import (
	"fmt"

	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/numeral"
)

type cellKey struct{ row, col int }

// Check verifies a panel's indexing and geometry: one bubble per (row, col),
// Value and Label constant along the panel Axis and distinct across it, and,
// once placed, columns sharing an X and rows sharing a Y in ascending order.
// A panel built with rows and columns swapped fails here.
func Check(p layout.BubblePanel) error {
	if len(p.Cells) != p.Rows*p.Cols {
		return fmt.Errorf("identity: %s panel has %d cells for %dx%d", p.Kind, len(p.Cells), p.Rows, p.Cols)
	}
	if p.Axis != layout.ValuesDown && p.Axis != layout.ValuesAcross {
		return fmt.Errorf("identity: %s panel has unknown axis %q", p.Kind, p.Axis)
	}
	seen := make(map[cellKey]bool, len(p.Cells))
	byLine := make(map[int]layout.Bubble)
	values := make(map[int]int)
	for _, b := range p.Cells {
		if b.Row < 0 || b.Row >= p.Rows || b.Col < 0 || b.Col >= p.Cols {
			return fmt.Errorf("identity: %s bubble (%d,%d) outside %dx%d", p.Kind, b.Row, b.Col, p.Rows, p.Cols)
		}
		k := cellKey{b.Row, b.Col}
		if seen[k] {
			return fmt.Errorf("identity: %s bubble (%d,%d) repeated", p.Kind, b.Row, b.Col)
		}
		seen[k] = true

		line := b.Row
		if p.Axis == layout.ValuesAcross {
			line = b.Col
		}
		if first, ok := byLine[line]; ok {
			if first.Value != b.Value || first.Label != b.Label {
				return fmt.Errorf("identity: %s line %d mixes values %d/%q and %d/%q", p.Kind, line, first.Value, first.Label, b.Value, b.Label)
			}
		} else {
			if other, dup := values[b.Value]; dup {
				return fmt.Errorf("identity: %s value %d on lines %d and %d", p.Kind, b.Value, other, line)
			}
			byLine[line] = b
			values[b.Value] = line
		}
		if err := checkValue(p, b, line); err != nil {
			return err
		}
	}
	return checkGeometry(p)
}

func checkValue(p layout.BubblePanel, b layout.Bubble, line int) error {
	switch p.Kind {
	case layout.PanelRoll, layout.PanelSubjectCode:
		if p.Axis != layout.ValuesDown || p.Rows != 10 {
			return fmt.Errorf("identity: %s panel must have 10 digit rows read down", p.Kind)
		}
		fallthrough
	case layout.PanelClass:
		if n, err := numeral.ParseDigits(b.Label); err != nil || n != b.Value {
			return fmt.Errorf("identity: %s bubble (%d,%d) labelled %q for value %d", p.Kind, b.Row, b.Col, b.Label, b.Value)
		}
		if p.Kind != layout.PanelClass && b.Value != b.Row {
			return fmt.Errorf("identity: %s bubble (%d,%d) has value %d", p.Kind, b.Row, b.Col, b.Value)
		}
	case layout.PanelSetCode:
		if b.Value != line {
			return fmt.Errorf("identity: set code bubble (%d,%d) has value %d", b.Row, b.Col, b.Value)
		}
	}
	return nil
}

func checkGeometry(p layout.BubblePanel) error {
	if len(p.Cells) == 0 || p.Cells[0].R == 0 {
		return nil
	}
	colX := make(map[int]float64, p.Cols)
	rowY := make(map[int]float64, p.Rows)
	for _, b := range p.Cells {
		if x, ok := colX[b.Col]; ok && x != b.CX {
			return fmt.Errorf("identity: %s column %d is not vertical", p.Kind, b.Col)
		}
		if y, ok := rowY[b.Row]; ok && y != b.CY {
			return fmt.Errorf("identity: %s row %d is not horizontal", p.Kind, b.Row)
		}
		colX[b.Col] = b.CX
		rowY[b.Row] = b.CY
	}
	for c := 1; c < p.Cols; c++ {
		if colX[c] <= colX[c-1] {
			return fmt.Errorf("identity: %s column %d is not right of column %d", p.Kind, c, c-1)
		}
	}
	for r := 1; r < p.Rows; r++ {
		if rowY[r] <= rowY[r-1] {
			return fmt.Errorf("identity: %s row %d is not below row %d", p.Kind, r, r-1)
		}
	}
	return nil
}
