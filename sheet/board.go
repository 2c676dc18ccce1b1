package sheet

import (
	"math"
	"strings"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/grid"
	"github.com/ByLCY/omrkit/identity"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/marker"
	"github.com/ByLCY/omrkit/theme"
)

// Board sheet geometry, in reference pixels.
const (
	boardWidth      = 750.0
	boardMargin     = 40.0
	boardInfoHeight = 302.0
	boardBand       = 21.0 // panel header band
	boardWriteIn    = 25.0 // empty row above digit bubbles
	boardDigitPitch = 24.0
	boardListPitch  = 25.0
	boardPanelR     = 8.5

	boardColumnWidth = 160.0
	boardColumnGap   = 8.0
	boardLabelWidth  = 38.0
	boardHeaderRow   = 25.0
	boardPitch       = 22.0
	boardBubbleR     = 8.0
)

// boardLayout is the coloured board-exam sheet with identity panels.
type boardLayout struct{}

// boardCtx carries what every section of one Board page needs.
type boardCtx struct {
	b    *layout.PageBuilder
	pg   *layout.Page
	c    Config
	doc  *layout.Document
	pal  theme.Palette
	loc  labels
	x, w float64 // body column
}

func (boardLayout) page(c Config, doc *layout.Document) layout.Page {
	pg := newPage()
	b := layout.NewPageBuilder(&pg, geometry.Px(1))
	pageW, pageH := geometry.MmToPx(pg.Width), geometry.MmToPx(pg.Height)
	top := geometry.MmToPx(marker.Inset(geometry.A4))

	x0 := (pageW - boardWidth) / 2
	ctx := &boardCtx{
		b: b, pg: &pg, c: c, doc: doc,
		pal: c.Theme.Palette(),
		loc: localeFor(c.Numerals),
		x:   x0 + boardMargin,
		w:   boardWidth - 2*boardMargin,
	}

	ctx.doNotMark(pageW, top+4)
	y := ctx.header(top + 66)
	y += 12
	switch {
	case c.InfoMode == InfoDigital:
		y = ctx.digitalInfo(y)
	case c.HeaderSize == HeaderSmall:
		y = ctx.manualSmall(y)
	default:
		y = ctx.manualBig(y)
	}
	y += 12 + 16
	b.Text(ctx.loc.title, ctx.x, y, ctx.w, 18, 15, layout.Bold(), layout.Centered())
	y += 18 + 12
	ctx.answers(pageW, y, pageH-top-4)
	return pg
}

// doNotMark draws the tinted strip at the top edge with its fixed pattern of
// circles and bars.
func (s *boardCtx) doNotMark(pageW, y float64) {
	const w, h = 660.0, 36.0
	x := (pageW - w) / 2
	s.b.Fill(x, y, w, h, s.pal.Tint1)
	s.b.Text(s.loc.doNotMark, x, y+2, w, 16, 13, layout.Bold(), layout.Centered(), layout.TextColor(s.pal.AccentStrong))

	// c = circle, b = bar
	pattern := "cc" + strings.Repeat("b", 9) + "cbcbc"
	const circle, bar, gap = 14.0, 10.0, 4.0
	total := gap * float64(len(pattern)-1)
	for _, r := range pattern {
		if r == 'c' {
			total += circle
		} else {
			total += bar
		}
	}
	px := x + (w-total)/2
	py := y + 19
	for _, r := range pattern {
		if r == 'c' {
			s.b.Circle(px+circle/2, py+circle/2, circle/2-0.5, layout.Black, 1, layout.White.Ptr())
			px += circle + gap
			continue
		}
		s.b.Fill(px, py, bar, circle, layout.Black)
		px += bar + gap
	}
}

// header prints the institution block and returns the y below it.
func (s *boardCtx) header(y float64) float64 {
	c := s.c
	if c.InfoMode == InfoManual && c.HeaderSize == HeaderSmall {
		if c.Institution != "" {
			s.b.Text(c.Institution, s.x, y, s.w, 22*1.25, 22, layout.Bold(), layout.Centered())
			y += 22 * 1.25
		}
		return y + 16
	}
	if c.Institution != "" {
		s.b.Text(c.Institution, s.x, y, s.w, c.TitleSize*1.25, c.TitleSize, layout.Bold(), layout.Centered())
		y += c.TitleSize * 1.25
	}
	if c.Address != "" {
		s.b.Text(c.Address, s.x, y, s.w, c.AddressSize*1.25, c.AddressSize, layout.Bold(), layout.Centered())
		y += c.AddressSize * 1.25
	}
	return y + 16
}

func (s *boardCtx) panelStyle(text layout.Color, size float64) layout.BubbleStyle {
	return layout.BubbleStyle{Stroke: bubbleInk, StrokeWidth: geometry.Px(1), Text: text, FontSize: pt(size)}
}

// frame draws a bordered panel with a tinted header band.
func (s *boardCtx) frame(x, y, w, h float64, header string) {
	s.b.Fill(x, y, w, boardBand, s.pal.Tint1)
	s.b.Box(x, y, w, h, s.pal.Border, 1)
	s.b.HLine(x, x+w, y+boardBand, s.pal.Border, 1)
	s.b.Text(header, x, y, w, boardBand, 14, layout.Bold(), layout.Centered())
}

// digitalInfo lays out class, roll, subject code, set code and the rules
// column side by side.
func (s *boardCtx) digitalInfo(y float64) float64 {
	widths := []float64{90, 182, 92, 90, 168}
	xs := geometry.SpaceBetween(s.w, widths)
	for i := range xs {
		xs[i] += s.x
	}
	c := s.c
	s.listPanel(identity.Class(s.loc.class, c.ClassLevels, c.Numerals), xs[0], y, widths[0], 12)
	s.digitPanel(identity.Roll(s.loc.roll, c.Numerals), xs[1], y, widths[1], true)
	s.digitPanel(identity.SubjectCode(s.loc.subjectCode, c.Numerals), xs[2], y, widths[2], false)
	s.listPanel(identity.SetCode(s.loc.setCode, c.SetCodes), xs[3], y, widths[3], 11)
	s.rulesColumn(xs[4], y, widths[4])
	return y + boardInfoHeight
}

// listPanel draws a single-column panel whose bubbles sit in the middle
// third below one blank row.
func (s *boardCtx) listPanel(p layout.BubblePanel, x, y, w, fontSize float64) {
	s.frame(x, y, w, boardInfoHeight, p.Header)
	third := w / 3
	body := y + boardBand
	bottom := body + float64(p.Rows+1)*boardListPitch
	s.b.VLine(x+third, body, bottom, s.pal.Border, 1)
	s.b.VLine(x+2*third, body, bottom, s.pal.Border, 1)
	for r := 1; r <= p.Rows+1; r++ {
		yy := body + float64(r)*boardListPitch
		s.b.HLine(x+third, x+2*third, yy, s.pal.Border, 1)
	}
	identity.Place(&p, s.b.Frame(x, y, w, boardInfoHeight), identity.Metrics{
		Top:    s.b.MM(boardBand + boardListPitch),
		Pitch:  s.b.MM(boardListPitch),
		Radius: s.b.MM(boardPanelR),
	})
	p.Style = s.panelStyle(layout.Black, fontSize)
	s.pg.IdentityPanels = append(s.pg.IdentityPanels, p)
}

// digitPanel draws a roll or subject-code grid: one write-in row, then ten
// digit rows with alternate columns tinted.
func (s *boardCtx) digitPanel(p layout.BubblePanel, x, y, w float64, tintEven bool) {
	colW := w / float64(p.Cols)
	gridTop := y + boardBand + boardWriteIn
	gridH := float64(p.Rows) * boardDigitPitch
	for c := 0; c < p.Cols; c++ {
		if (c%2 == 0) == tintEven {
			s.b.Fill(x+float64(c)*colW, gridTop, colW, gridH, s.pal.Tint2)
		}
	}
	s.frame(x, y, w, boardInfoHeight, p.Header)
	for c := 1; c < p.Cols; c++ {
		s.b.VLine(x+float64(c)*colW, y+boardBand, gridTop+gridH, s.pal.Border, 1)
	}
	for r := 0; r <= p.Rows; r++ {
		s.b.HLine(x, x+w, gridTop+float64(r)*boardDigitPitch, s.pal.Border, 1)
	}
	identity.Place(&p, s.b.Frame(x, y, w, boardInfoHeight), identity.Metrics{
		Top:    s.b.MM(boardBand + boardWriteIn),
		Pitch:  s.b.MM(boardDigitPitch),
		Radius: s.b.MM(boardPanelR),
	})
	p.Style = s.panelStyle(layout.Black, 12)
	s.pg.IdentityPanels = append(s.pg.IdentityPanels, p)
}

// rulesColumn prints the rules under a solid band with the signature box
// filling the remaining height.
func (s *boardCtx) rulesColumn(x, y, w float64) {
	const band = 22.0
	s.b.Fill(x, y, w, band, s.pal.AccentMid)
	s.b.Text(s.loc.rules, x, y, w, band, 12, layout.Bold(), layout.Centered(), layout.TextColor(layout.White))

	rules := rulesFor(s.c, s.loc)
	bottom := y + boardInfoHeight
	textW := w - 8
	size := fitSize(rules, s.c.Numerals, textW, boardInfoHeight-band-8-68, 11, 8, 1.2, 4)
	end := drawRules(s.b, rules, s.c.Numerals, x+4, y+band+8, textW, size, 1.2, 4, layout.Black)

	sigTop := math.Min(end+8, bottom-60)
	signatureBox(s.b, s.loc.signature, x+4, sigTop, w-8, bottom-sigTop, 12, s.pal.Border, false)
}

// manualSmall prints exam-type check boxes, a rules box with the template QR
// code, a horizontal set-code strip and write-in lines.
func (s *boardCtx) manualSmall(y float64) float64 {
	c := s.c
	// exam types, two per column
	const box, gap = 20.0, 8.0
	colX := s.x + 8
	for i, label := range s.loc.examTypes {
		if i == 2 {
			colX += box + 8 + math.Max(layout.EstimateTextWidth(s.loc.examTypes[0], 15), layout.EstimateTextWidth(s.loc.examTypes[1], 15)) + 32
		}
		yy := y + 8 + float64(i%2)*(box+gap)
		s.b.Box(colX+1, yy+1, box-2, box-2, s.pal.Border, 2)
		s.b.Text(label, colX+box+8, yy, 200, box, 15, layout.Bold())
	}

	// rules box with QR
	const rw, rh, band, qrCell = 280.0, 70.0, 20.0, 60.0
	rx := s.x + s.w - rw
	s.b.Fill(rx, y, band, rh, s.pal.AccentMid)
	s.b.Box(rx, y, rw, rh, s.pal.Border, 1)
	s.b.VLine(rx+rw-qrCell, y, y+rh, s.pal.Border, 1)
	s.b.Text(s.loc.rules, rx+band/2-rh/2, y+rh/2-band/2, rh, band, 11,
		layout.Bold(), layout.Centered(), layout.Rotate(90), layout.TextColor(layout.White))
	rules := rulesFor(c, s.loc)
	textW := rw - band - qrCell - 8
	size := fitSize(rules, c.Numerals, textW, rh-8, 10, 6, 1.2, 2)
	drawRules(s.b, rules, c.Numerals, rx+band+4, y+4, textW, size, 1.2, 2, layout.Black)
	drawQR(s.b, qrPayload(s.doc), rx+rw-qrCell+4, y+(rh-qrCell+8)/2, qrCell-8)

	// set code strip
	sy := y + rh + 8
	n := float64(len(c.SetCodes))
	stripW := 32*n + 12
	const sh = 30.0
	s.b.Box(rx, sy, rw, sh, s.pal.Border, 1)
	s.b.VLine(rx+rw-stripW, sy, sy+sh, s.pal.Border, 1)
	s.b.Text(s.loc.questionSetCode, rx, sy, rw-stripW, sh, 14, layout.Bold(), layout.Centered())
	p := identity.SetCodeRow(s.loc.setCode, c.SetCodes)
	identity.Place(&p, s.b.Frame(rx+rw-stripW+6, sy, 32*n, sh), identity.Metrics{Pitch: s.b.MM(sh), Radius: s.b.MM(9.5)})
	p.Style = layout.BubbleStyle{Stroke: s.pal.Border, StrokeWidth: geometry.Px(1), Text: s.pal.AccentStrong, FontSize: pt(13)}
	s.pg.IdentityPanels = append(s.pg.IdentityPanels, p)

	// write-in lines between two thick rules
	ly := sy + sh + 8
	s.b.HLine(s.x, s.x+s.w, ly+1, s.pal.Border, 2)
	row1 := ly + 16 + 20
	row2 := row1 + 20 + 20
	for i, sp := range flex(s.x+8, s.w-16, 32, 1.5, 1) {
		writeIn(s.b, []string{s.loc.name, s.loc.rollLine}[i], sp, row1, 16, s.pal.Border, true)
	}
	for i, sp := range flex(s.x+8, s.w-16, 32, 1, 1, 1) {
		writeIn(s.b, []string{s.loc.classLine, s.loc.subject, s.loc.group}[i], sp, row2, 16, s.pal.Border, true)
	}
	bottom := row2 + 16
	s.b.HLine(s.x, s.x+s.w, bottom+1, s.pal.Border, 2)
	return bottom + 2
}

// manualBig prints a candidate information box beside a column holding the
// rules, the template QR code and the signature box.
func (s *boardCtx) manualBig(y float64) float64 {
	c := s.c
	const rightW, gap = 200.0, 16.0
	leftW := s.w - rightW - gap

	// candidate box
	lx := s.x
	ty := y + 16
	s.b.Text(s.loc.candidateInfo, lx, ty, leftW, 20, 16, layout.Bold(), layout.Centered())
	tw := layout.EstimateTextWidth(s.loc.candidateInfo, 16)
	s.b.HLine(lx+(leftW-tw)/2, lx+(leftW+tw)/2, ty+21, s.pal.AccentStrong, 1)
	inner := span{x: lx + 16, w: leftW - 32}
	rowY := ty + 20 + 20 + 20
	rows := [][]string{
		{s.loc.name},
		{s.loc.classLine, s.loc.rollLine, s.loc.group},
		{s.loc.subject, s.loc.paper, s.loc.subjectCodeLine},
		{s.loc.date},
	}
	for _, row := range rows {
		spans := []span{inner}
		if len(row) == 3 {
			spans = flex(inner.x, inner.w, 16, 1.5, 1, 1.5)
		}
		for i, label := range row {
			writeIn(s.b, label, spans[i], rowY, 15, s.pal.Border, true)
		}
		rowY += 20 + 20
	}
	leftBottom := rowY - 20 + 16

	// rules, QR and signature
	rx := s.x + s.w - rightW
	const band = 22.0
	s.b.Fill(rx, y, rightW, band, s.pal.AccentMid)
	s.b.Text(s.loc.rules, rx, y, rightW, band, 13, layout.Bold(), layout.Centered(), layout.TextColor(layout.White))
	rules := rulesFor(c, s.loc)
	ry := drawRules(s.b, rules, c.Numerals, rx, y+band+6, rightW, 10, 1.3, 4, layout.Black)
	qy := ry - 4 + 12
	const qrSide = 60.0
	s.b.Box(rx+rightW-qrSide, qy, qrSide, qrSide, layout.Black, 1)
	drawQR(s.b, qrPayload(s.doc), rx+rightW-qrSide+3, qy+3, qrSide-6)
	sigTop := qy + qrSide + 12
	bottom := math.Max(leftBottom, sigTop+60)
	signatureBox(s.b, []string{strings.Join(s.loc.signature, " ")}, rx, sigTop, rightW, bottom-sigTop, 11, s.pal.Border, true)

	s.b.Box(lx, y, leftW, bottom-y, s.pal.Border, 1)
	return bottom
}

// answers lays out the answer columns from y, shrinking the row pitch when
// the tallest column would pass limit.
func (s *boardCtx) answers(pageW, y, limit float64) {
	c := s.c
	cols := grid.Build(c.QuestionCount, c.Columns, c.Numerals, c.OptionScript)
	if len(cols) == 0 {
		return
	}
	rows := len(cols[0].Rows)
	pitch := math.Min(boardPitch, (limit-y-boardHeaderRow-1)/float64(rows))
	scale := pitch / boardPitch

	n := float64(len(cols))
	total := n*boardColumnWidth + (n-1)*boardColumnGap
	x := (pageW - total) / 2
	optW := (boardColumnWidth - boardLabelWidth) / grid.Options
	style := layout.BubbleStyle{Stroke: bubbleInk, StrokeWidth: geometry.Px(1), Text: answerInk, FontSize: pt(11 * scale)}

	for i := range cols {
		col := &cols[i]
		cx := x + float64(i)*(boardColumnWidth+boardColumnGap)
		// header row
		s.b.Box(cx, y, boardColumnWidth, boardHeaderRow, s.pal.Border, 1)
		s.b.VLine(cx+boardLabelWidth, y, y+boardHeaderRow, s.pal.Border, 1)
		s.b.Text(s.loc.question, cx, y, boardLabelWidth, boardHeaderRow, 12, layout.Bold(), layout.Centered())
		s.b.Text(s.loc.answer, cx+boardLabelWidth, y, boardColumnWidth-boardLabelWidth, boardHeaderRow, 12, layout.Bold(), layout.Centered())

		body := y + boardHeaderRow + 1
		h := float64(len(col.Rows)) * pitch
		s.b.Fill(cx, body, boardLabelWidth, h, labelTint)
		for o := 0; o < grid.Options; o += 2 {
			s.b.Fill(cx+boardLabelWidth+float64(o)*optW, body, optW, h, s.pal.Tint2)
		}
		s.b.Box(cx, body, boardColumnWidth, h, s.pal.Border, 1)
		s.b.VLine(cx+boardLabelWidth, body, body+h, s.pal.Border, 1)
		for o := 1; o < grid.Options; o++ {
			s.b.VLine(cx+boardLabelWidth+float64(o)*optW, body, body+h, s.pal.Border, 1)
		}
		for r, row := range col.Rows {
			ry := body + float64(r)*pitch
			if r > 0 {
				s.b.HLine(cx, cx+boardColumnWidth, ry, s.pal.Border, 1)
			}
			s.b.Text(row.Label, cx, ry, boardLabelWidth, pitch, 12*scale, layout.Centered())
		}

		grid.Place(col, s.b.Frame(cx, y, boardColumnWidth, boardHeaderRow+1+h), grid.Metrics{
			HeaderHeight: s.b.MM(boardHeaderRow + 1),
			LabelWidth:   s.b.MM(boardLabelWidth),
			Pitch:        s.b.MM(pitch),
			Radius:       s.b.MM(boardBubbleR * scale),
		})
		col.Style = style
	}
	s.pg.AnswerColumns = cols
}
