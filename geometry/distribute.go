package geometry

// Paper is a physical sheet size in millimetres.
type Paper struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// A4 is the only paper size sheets are printed on.
var A4 = Paper{Width: 210, Height: 297}

// Scale is the ratio of p to A4 width. Marker sizes and insets are multiplied
// by it so calibration survives a different paper size.
func (p Paper) Scale() float64 {
	if p.Width <= 0 {
		return 1
	}
	return p.Width / A4.Width
}

// Distribute returns count anchors spanning [0, extent] with equal gaps.
// The first anchor is 0 and the last is extent, so p[i]+p[count-1-i] == extent.
// A single anchor sits at extent/2.
func Distribute(extent float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{extent / 2}
	}
	step := extent / float64(count-1)
	out := make([]float64, count)
	for i := range out {
		out[i] = float64(i) * step
	}
	// pin the last anchor so rounding cannot break the mirror property
	out[count-1] = extent
	return out
}

// Cells returns the centres of count equal cells covering [0, extent].
func Cells(extent float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	w := extent / float64(count)
	out := make([]float64, count)
	for i := range out {
		out[i] = (float64(i) + 0.5) * w
	}
	return out
}

// SpaceBetween lays out items of the given widths across extent with equal
// gaps between them and none at the ends. It returns each item's start.
// Items wider than extent in total are packed without gaps.
func SpaceBetween(extent float64, widths []float64) []float64 {
	return space(extent, widths, false)
}

// SpaceEvenly lays out items with equal gaps between them and at both ends.
func SpaceEvenly(extent float64, widths []float64) []float64 {
	return space(extent, widths, true)
}

func space(extent float64, widths []float64, ends bool) []float64 {
	if len(widths) == 0 {
		return nil
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	slots := len(widths) - 1
	if ends {
		slots = len(widths) + 1
	}
	gap := 0.0
	if slots > 0 && extent > total {
		gap = (extent - total) / float64(slots)
	}
	out := make([]float64, len(widths))
	x := 0.0
	if ends {
		x = gap
	}
	if len(widths) == 1 && !ends && extent > total {
		x = (extent - total) / 2
	}
	for i, w := range widths {
		out[i] = x
		x += w + gap
	}
	return out
}
