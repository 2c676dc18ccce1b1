// Package theme defines the closed set of colour palettes a Board sheet can
// be printed in.
package theme

import (
	"strings"

	"github.com/ByLCY/omrkit/layout"
)

// Name identifies a palette. The zero value is not a palette; Resolve maps
// it and any out-of-range value to Default.
type Name int

const (
	unknown Name = iota
	Red
	Gray
	Blue
	Green
	Purple
	Orange
	Cyan
	Pink
	Yellow
	Lime
)

// Default is used whenever a config names no palette or an unknown one.
const Default = Red

// Palette is the set of colours a sheet is drawn with.
type Palette struct {
	AccentStrong layout.Color // headings
	AccentMid    layout.Color // body text, solid header bands
	Border       layout.Color // frames, bubble strokes
	Tint1        layout.Color // light backgrounds
	Tint2        layout.Color // alternating column stripes
}

var names = map[Name]string{
	Red: "red", Gray: "gray", Blue: "blue", Green: "green", Purple: "purple",
	Orange: "orange", Cyan: "cyan", Pink: "pink", Yellow: "yellow", Lime: "lime",
}

var palettes = map[Name]Palette{
	Red:    build("#e11d48", "#f43f5e", "#fff1f2", "#fda4af"),
	Gray:   build("#4b5563", "#6b7280", "#f9fafb", "#e5e7eb"),
	Blue:   build("#2563eb", "#3b82f6", "#eff6ff", "#93c5fd"),
	Green:  build("#16a34a", "#22c55e", "#f0fdf4", "#86efac"),
	Purple: build("#9333ea", "#a855f7", "#faf5ff", "#d8b4fe"),
	Orange: build("#ea580c", "#f97316", "#fff7ed", "#fdba74"),
	Cyan:   build("#0891b2", "#06b6d4", "#ecfeff", "#67e8f9"),
	Pink:   build("#db2777", "#ec4899", "#fdf2f8", "#f9a8d4"),
	Yellow: build("#ca8a04", "#eab308", "#fefce8", "#fde047"),
	Lime:   build("#65a30d", "#84cc16", "#f7fee7", "#bef264"),
}

func build(strong, mid, tint1, tint2 string) Palette {
	m := layout.MustHex(mid)
	return Palette{
		AccentStrong: layout.MustHex(strong),
		AccentMid:    m,
		Border:       m,
		Tint1:        layout.MustHex(tint1),
		Tint2:        layout.MustHex(tint2),
	}
}

// Parse looks up a palette by name. ok is false for unknown names.
func Parse(name string) (n Name, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "grey" {
		key = "gray"
	}
	for n, s := range names {
		if s == key {
			return n, true
		}
	}
	return unknown, false
}

// Known reports whether n is one of the ten palettes.
func (n Name) Known() bool {
	_, ok := palettes[n]
	return ok
}

// Resolve returns n if it is known, Default otherwise.
func (n Name) Resolve() Name {
	if n.Known() {
		return n
	}
	return Default
}

// Palette returns the colours of n, falling back to Default.
func (n Name) Palette() Palette {
	return palettes[n.Resolve()]
}

func (n Name) String() string {
	return names[n]
}

// All lists the palettes in display order.
func All() []Name {
	return []Name{Red, Gray, Blue, Green, Purple, Orange, Cyan, Pink, Yellow, Lime}
}
