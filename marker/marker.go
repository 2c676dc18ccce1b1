// Package marker places the four corner fiducials a scanner uses to find the
// orientation and scale of a sheet.
package marker

import (
	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/layout"
)

// Reference marker geometry on A4, in pixels at geometry.DPI.
const (
	sizePx = 40.0
	// inner square side is Size/innerRatio
	innerRatio = 2.5
	// notch side is Size/notchRatio; it must stay below the margin around the
	// inner square, (Size - Size/innerRatio) / 2
	notchRatio = 4.0
)

// Size returns the marker side for paper p.
func Size(p geometry.Paper) float64 {
	return geometry.Px(sizePx) * p.Scale()
}

// Inset returns the distance between the paper edge and a marker body.
func Inset(p geometry.Paper) float64 {
	return Size(p) / 2
}

// Place returns the four markers of a page in TL, TR, BL, BR order.
//
// Every marker is a filled square with a background-coloured square of side
// Size/2.5 at its centre. The top-right marker has a Size/4 notch cut out of its
// bottom-left corner and the bottom-right marker one out of its top-right
// corner, so a sheet rotated by 180 degrees shows a different signature.
func Place(p geometry.Paper) []layout.FiducialMarker {
	s := Size(p)
	in := Inset(p)
	left, right := in, p.Width-in-s
	top, bottom := in, p.Height-in-s

	out := []layout.FiducialMarker{
		body(layout.TopLeft, left, top, s),
		body(layout.TopRight, right, top, s),
		body(layout.BottomLeft, left, bottom, s),
		body(layout.BottomRight, right, bottom, s),
	}
	n := s / notchRatio
	out[1].HasNotch = true
	out[1].Notch = &layout.Square{X: right, Y: top + s - n, Size: n}
	out[3].HasNotch = true
	out[3].Notch = &layout.Square{X: right + s - n, Y: bottom, Size: n}
	return out
}

func body(c layout.Corner, x, y, s float64) layout.FiducialMarker {
	n := s / innerRatio
	return layout.FiducialMarker{
		Corner: c,
		X:      x,
		Y:      y,
		Size:   s,
		Inner:  layout.Square{X: x + (s-n)/2, Y: y + (s-n)/2, Size: n},
	}
}

// Signature returns the corners that carry a notch, in placement order.
func Signature(ms []layout.FiducialMarker) []layout.Corner {
	var out []layout.Corner
	for _, m := range ms {
		if m.HasNotch {
			out = append(out, m.Corner)
		}
	}
	return out
}
