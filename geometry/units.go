// Package geometry holds the unit conversions and spacing helpers every sheet
// element is positioned with. All layout coordinates are millimetres.
package geometry

import (
	"strconv"
	"strings"
)

// DPI is the reference resolution pixel literals are expressed in. It is part
// of the printed format: changing it moves every bubble a scanner samples.
const DPI = 96.0

const mmPerInch = 25.4

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Unit represents the unit a length was written in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // reference pixels at DPI
)

// PxToMm converts reference pixels to millimetres.
func PxToMm(px float64) float64 { return px * mmPerInch / DPI }

// MmToPx converts millimetres to reference pixels.
func MmToPx(mm float64) float64 { return mm * DPI / mmPerInch }

// Px is shorthand for PxToMm, used where sheet dimensions are given in pixels.
func Px(px float64) float64 { return PxToMm(px) }

// String returns the suffix a unit is written with.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToMM converts the length to millimetres. Unit-less values pass through.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * mmPerInch
	case UnitPT:
		return l.Value * PtToMm
	case UnitPX:
		return PxToMm(l.Value)
	default:
		return l.Value
	}
}

// ToPT converts the length to points. Unit-less values pass through.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitPT, UnitNone:
		return l.Value
	default:
		return l.ToMM() * MmToPt
	}
}

// ToPX converts the length to reference pixels. Unit-less values pass through.
func (l Length) ToPX() float64 {
	switch l.Unit {
	case UnitPX, UnitNone:
		return l.Value
	default:
		return MmToPx(l.ToMM())
	}
}

// ParseLength parses strings such as "14px", "4.5mm" or "12". The second
// return is false when the number cannot be read.
func ParseLength(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
