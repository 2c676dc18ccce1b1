package sheet

import (
	"math"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/grid"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/marker"
)

// Normal sheet geometry, in reference pixels.
const (
	normalHeaderWidth = 493.0
	normalBoxMaxWidth = 718.0 // 190mm
	normalBorder      = 5.0
	normalStrip       = 24.0 // timing strip inside the top and bottom border
	normalMarkW       = 24.0
	normalMarkH       = 20.0
	normalTrackW      = 16.0
	normalTrackH      = 10.0
	normalPadTop      = 16.0
	normalPadBottom   = 40.0
	normalPadSide     = 16.0
	normalColumnWidth = 140.0
	normalLabelWidth  = 30.0
	normalPitch       = 28.0
	normalBubble      = 22.0
	normalBubbleEdge  = 1.5
)

// normalLayout is the monochrome classroom sheet: write-in header and a
// framed answer grid with timing marks on all four sides.
type normalLayout struct{}

func (normalLayout) page(c Config, _ *layout.Document) layout.Page {
	pg := newPage()
	b := layout.NewPageBuilder(&pg, geometry.Px(1))
	loc := localeFor(c.Numerals)
	pageW, pageH := geometry.MmToPx(pg.Width), geometry.MmToPx(pg.Height)
	inset := geometry.MmToPx(marker.Inset(geometry.A4))
	markerEdge := inset + geometry.MmToPx(marker.Size(geometry.A4))

	hx := (pageW - normalHeaderWidth) / 2
	y := 16.0 + 40
	if c.Institution != "" {
		b.Text(c.Institution, hx, y, normalHeaderWidth, c.TitleSize*1.25, c.TitleSize, layout.Bold(), layout.Centered())
		y += c.TitleSize * 1.25
	}
	if c.Address != "" {
		b.Text(c.Address, hx, y, normalHeaderWidth, c.AddressSize*1.25, c.AddressSize, layout.Centered(), layout.TextColor(mutedText))
		y += c.AddressSize * 1.25
	}
	y += 12
	b.HLine(hx+20, hx+normalHeaderWidth-20, y, ruleGrey, 1)
	y += 5
	b.HLine(hx+56, hx+normalHeaderWidth-56, y, ruleGrey, 1)
	y += 5 + 8 + 8

	// write-in lines
	full := span{x: hx, w: normalHeaderWidth}
	rows := [][]string{{loc.name}, {loc.classLine, loc.section}, {loc.subject, loc.paper}, {loc.rollLine}}
	for _, row := range rows {
		spans := []span{full}
		if len(row) == 2 {
			spans = flex(hx, normalHeaderWidth, 16, 1, 1)
		}
		for i, label := range row {
			writeIn(b, label, spans[i], y+20, 15, ruleGrey, false)
		}
		y += 20 + 12
	}
	// the last row gap becomes padding and margin
	y += 8 + 16 - 12

	answerBox(b, &pg, c, pageW, markerEdge, y, pageH-inset-4)
	return pg
}

// answerBox draws the framed grid: timing strips top and bottom, timing
// tracks left and right of every row, and the answer columns between them.
// The row pitch shrinks when the rows would not fit above limit.
func answerBox(b *layout.PageBuilder, pg *layout.Page, c Config, pageW, markerEdge, top, limit float64) {
	cols := grid.Build(c.QuestionCount, c.Columns, c.Numerals, c.OptionScript)
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].Rows)
	}
	overhead := 2*normalBorder + normalStrip + normalPadTop + normalPadBottom
	pitch := normalPitch
	if rows > 0 {
		pitch = math.Min(normalPitch, (limit-top-overhead)/float64(rows))
	}
	scale := pitch / normalPitch

	boxW := math.Min(normalBoxMaxWidth, pageW-2*(markerEdge+8))
	boxX := (pageW - boxW) / 2
	boxH := overhead + float64(rows)*pitch
	b.Box(boxX+normalBorder/2, top+normalBorder/2, boxW-normalBorder, boxH-normalBorder, layout.Black, normalBorder)

	ix, iy := boxX+normalBorder, top+normalBorder
	iw, ih := boxW-2*normalBorder, boxH-2*normalBorder

	// answer columns, spaced evenly between the tracks
	regionX := ix + 3*normalPadSide
	regionW := iw - 6*normalPadSide
	widths := make([]float64, len(cols))
	for i := range widths {
		widths[i] = normalColumnWidth
	}
	xs := geometry.SpaceEvenly(regionW, widths)
	gy := iy + normalStrip + normalPadTop
	style := layout.BubbleStyle{
		Stroke:      normalInk,
		StrokeWidth: geometry.Px(normalBubbleEdge * scale),
		Text:        layout.Black,
		FontSize:    pt(13 * scale),
	}
	centres := make([]float64, len(cols))
	for i := range cols {
		col := &cols[i]
		cx := regionX + xs[i]
		centres[i] = cx + normalColumnWidth/2
		for r, row := range col.Rows {
			b.Text(row.Label, cx, gy+float64(r)*pitch, normalLabelWidth-8, pitch, math.Max(8, 15*scale), layout.Bold(), layout.Align("right"))
		}
		grid.Place(col, b.Frame(cx, gy, normalColumnWidth, float64(len(col.Rows))*pitch), grid.Metrics{
			LabelWidth: b.MM(normalLabelWidth),
			Pitch:      b.MM(pitch),
			Radius:     b.MM((normalBubble - normalBubbleEdge) / 2 * scale),
		})
		col.Style = style
	}
	pg.AnswerColumns = cols

	// top strip: one mark left, a pair over each column, three right
	b.HLine(ix, ix+iw, iy+normalStrip, layout.Black, 1)
	b.TimingMark(ix+2, iy, normalMarkW, normalMarkH)
	for _, cc := range centres {
		b.TimingMark(cc-normalMarkW-8, iy, normalMarkW, normalMarkH)
		b.TimingMark(cc+8, iy, normalMarkW, normalMarkH)
	}
	for k := 0; k < 3; k++ {
		b.TimingMark(ix+iw-2-normalMarkW-float64(k)*(normalMarkW+8), iy, normalMarkW, normalMarkH)
	}

	// bottom strip: one mark left, a pair over each column, one right
	by := iy + ih - normalMarkH
	b.HLine(ix, ix+iw, iy+ih-normalStrip, layout.Black, 1)
	b.TimingMark(ix+2, by, normalMarkW, normalMarkH)
	for _, cc := range centres {
		b.TimingMark(cc-normalMarkW-8, by, normalMarkW, normalMarkH)
		b.TimingMark(cc+8, by, normalMarkW, normalMarkH)
	}
	b.TimingMark(ix+iw-2-normalMarkW, by, normalMarkW, normalMarkH)

	// row tracks
	trackH := normalTrackH * scale
	for r := 0; r < rows; r++ {
		ty := gy + (float64(r)+0.5)*pitch - trackH/2
		b.TimingMark(ix+normalPadSide, ty, normalTrackW, trackH)
		b.TimingMark(ix+iw-normalPadSide-normalTrackW, ty, normalTrackW, trackH)
	}
}
