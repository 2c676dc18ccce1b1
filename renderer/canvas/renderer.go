package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/labstack/gommon/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/omrkit/fonts"
	"github.com/ByLCY/omrkit/layout"
	"github.com/ByLCY/omrkit/renderer"
)

const defaultLineWidth = 0.2

// Font slots accepted by Options.Fonts.
const (
	FontBengali     = "bengali"
	FontBengaliBold = "bengali-bold"
)

const (
	familyLatin   = "latin"
	familyBengali = "bengali"
)

// Renderer draws answer sheets via github.com/tdewolff/canvas. It is safe for
// concurrent use; font families are loaded once and shared.
type Renderer struct {
	format renderer.Format

	// injected resources
	fontBlobs map[string][]byte // by slot

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry

	logger        *log.Logger
	warnNoBengali sync.Once
}

var _ renderer.Renderer = (*Renderer)(nil)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	bold   bool // a bold face was loaded
}

// Options configures the canvas renderer.
type Options struct {
	Format renderer.Format
	Fonts  map[string]Resource // FontBengali / FontBengaliBold
	// Logger 接收字体缺失等警告，为空时新建一个 gommon logger。
	Logger *log.Logger
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer for format using the built-in Go fonts only.
func NewRenderer(format renderer.Format) *Renderer {
	return NewRendererWithOptions(Options{Format: format})
}

// NewRendererWithOptions creates a renderer with injected font resources.
// Unreadable font paths are skipped and their text uses the Go fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:       opts.Format,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
		logger:       opts.Logger,
	}
	if r.logger == nil {
		r.logger = log.New("canvas")
	}
	if r.format == "" {
		r.format = renderer.PDF
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			// a missing file falls back to the Go fonts when first used
			data, _ := os.ReadFile(res.Path)
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Format reports the output format.
func (r *Renderer) Format() renderer.Format { return r.format }

// Render renders the document into PDF or SVG bytes. SVG output stacks the
// pages vertically in one image.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染文档为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	pages := make([]*canvas.Canvas, 0, len(doc.Pages))
	for i, page := range doc.Pages {
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
		if err := r.drawPage(ctx, page); err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", i+1, err)
		}
		pages = append(pages, c)
	}

	var buf bytes.Buffer
	switch r.format {
	case renderer.SVG:
		width, height := 0.0, 0.0
		for _, p := range doc.Pages {
			width = math.Max(width, p.Width)
			height += p.Height
		}
		writer := svg.New(&buf, width, height, nil)
		// renderer space has y pointing up, so the first page goes on top
		offset := height
		for i, c := range pages {
			offset -= doc.Pages[i].Height
			c.RenderViewTo(writer, canvas.Identity.Translate(0, offset))
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		writer := pdf.New(&buf, doc.Pages[0].Width, doc.Pages[0].Height, nil)
		applyMeta(writer, doc)
		for i, c := range pages {
			if i > 0 {
				writer.NewPage(doc.Pages[i].Width, doc.Pages[i].Height)
			}
			c.RenderTo(writer)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, doc *layout.Document) {
	meta := doc.Meta
	keywords := append(append([]string{}, meta.Keywords...), doc.Fingerprint)
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(keywords, ", "), meta.Author, meta.Creator)
}

// drawPage 按层次绘制：装饰 → 定时标记 → 气泡 → 角标。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	r.drawRects(ctx, page.Decorations.Rects)
	r.drawLines(ctx, page.Decorations.Lines)
	r.drawCircles(ctx, page.Decorations.Circles)
	for _, tb := range page.Decorations.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}

	r.drawRects(ctx, page.TimingMarks)

	for _, panel := range page.IdentityPanels {
		if err := r.drawBubbles(ctx, panel.Cells, panel.Style); err != nil {
			return fmt.Errorf("%s 面板: %w", panel.Kind, err)
		}
	}
	for _, col := range page.AnswerColumns {
		for _, row := range col.Rows {
			if err := r.drawBubbles(ctx, row.Bubbles, col.Style); err != nil {
				return fmt.Errorf("第 %d 题: %w", row.Question, err)
			}
		}
	}

	for _, m := range page.Markers {
		drawMarker(ctx, m)
	}
	return nil
}

func (r *Renderer) drawBubbles(ctx *canvas.Context, cells []layout.Bubble, style layout.BubbleStyle) error {
	w := style.StrokeWidth
	if w <= 0 {
		w = defaultLineWidth
	}
	for _, b := range cells {
		if b.R <= 0 {
			continue
		}
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(colorFromLayout(style.Stroke))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(b.CX, b.CY, canvas.Circle(b.R))
		if b.Label == "" || style.FontSize <= 0 {
			continue
		}
		face, err := r.fontFace(b.Label, false, style.FontSize, style.Text)
		if err != nil {
			return err
		}
		baseline := b.CY + face.Metrics().CapHeight/2
		ctx.DrawText(b.CX, baseline, canvas.NewTextLine(face, b.Label, canvas.Center))
	}
	return nil
}

// drawMarker 绘制黑色实心角标，中心方块与缺口以白色挖空。
func drawMarker(ctx *canvas.Context, m layout.FiducialMarker) {
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetStrokeWidth(0)
	ctx.SetFillColor(canvas.Black)
	ctx.DrawPath(m.X, m.Y, canvas.Rectangle(m.Size, m.Size))
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(m.Inner.X, m.Inner.Y, canvas.Rectangle(m.Inner.Size, m.Inner.Size))
	if m.HasNotch && m.Notch != nil {
		ctx.DrawPath(m.Notch.X, m.Notch.Y, canvas.Rectangle(m.Notch.Size, m.Notch.Size))
	}
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Content, tb.Bold, tb.FontSize, tb.Color)
	if err != nil {
		return err
	}
	metrics := face.Metrics()

	// 处理水平对齐：left（默认）/center/right。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	lines := []string{tb.Content}
	lineHeight := tb.LineHeight
	if lineHeight <= 0 {
		lineHeight = metrics.LineHeight
	}
	if tb.Wrap {
		lines = greedyWrap(tb.Content, tb.Width, face.TextWidth)
	}

	// 单行且给定高度时垂直居中，否则自顶部排版
	baseline := tb.Y + metrics.Ascent
	if !tb.Wrap && tb.Height > 0 {
		baseline = tb.Y + tb.Height/2 + metrics.CapHeight/2
	}

	if tb.Rotate != 0 {
		ctx.Push()
		defer ctx.Pop()
		// y 轴向下，逆时针旋转取负角
		ctx.ComposeView(canvas.Identity.RotateAbout(-tb.Rotate, tb.X+tb.Width/2, tb.Y+tb.Height/2))
	}
	for _, line := range lines {
		if line != "" {
			ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, textAlign))
		}
		baseline += lineHeight
	}
	return nil
}

// drawLines 绘制直线列表（毫米单位）
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultLineWidth
		}
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		if len(ln.Dash) > 0 {
			ctx.SetDashes(0, ln.Dash...)
		}
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
		if len(ln.Dash) > 0 {
			ctx.SetDashes(0)
		}
	}
}

// drawRects 绘制矩形；StrokeWidth<=0 时不描边。
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(canvas.Transparent)
		}
		if rc.StrokeWidth > 0 {
			ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor))
			ctx.SetStrokeWidth(rc.StrokeWidth)
		} else {
			ctx.SetStrokeColor(canvas.Transparent)
			ctx.SetStrokeWidth(0)
		}
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

// drawCircles 绘制圆形
func (r *Renderer) drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		w := c.StrokeWidth
		if w <= 0 {
			w = defaultLineWidth
		}
		if c.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*c.FillColor))
		} else {
			ctx.SetFillColor(canvas.Transparent)
		}
		ctx.SetStrokeColor(colorFromLayout(c.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(c.CX, c.CY, canvas.Circle(c.R))
	}
}

// fontFace 依据文本内容选择字体族：含孟加拉文字符且注入了孟加拉文字体时使用之，
// 否则使用内置 Go 字体。size 为 pt。
func (r *Renderer) fontFace(content string, bold bool, size float64, col layout.Color) (*canvas.FontFace, error) {
	name := familyLatin
	if hasBengali(content) {
		if len(r.fontBlobs[FontBengali]) > 0 {
			name = familyBengali
		} else {
			r.warnNoBengali.Do(func() {
				r.logger.Warnj(log.JSON{
					"message": "bengali text drawn without a bengali font, labels will be unreadable; set OMR_BENGALI_FONT",
					"sample":  content,
				})
			})
		}
	}
	entry, err := r.ensureFontFamily(name)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold && entry.bold {
		style = canvas.FontBold
	}
	return entry.family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string) (*fontFamilyEntry, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	return r.loadFamilyLocked(name)
}

func (r *Renderer) loadFamilyLocked(name string) (*fontFamilyEntry, error) {
	if entry, ok := r.fontFamilies[name]; ok {
		return entry, nil
	}

	var regular, bold []byte
	switch name {
	case familyBengali:
		regular, bold = r.fontBlobs[FontBengali], r.fontBlobs[FontBengaliBold]
	default:
		var err error
		if regular, err = fonts.Load("embed:" + fonts.Regular); err != nil {
			return nil, err
		}
		if bold, err = fonts.Load("embed:" + fonts.Bold); err != nil {
			return nil, err
		}
	}

	family := canvas.NewFontFamily("omr-" + name)
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		if name == familyLatin {
			return nil, fmt.Errorf("加载内置字体失败: %w", err)
		}
		// 注入的字体无法解析时回退到内置字体
		entry, fbErr := r.loadFamilyLocked(familyLatin)
		if fbErr != nil {
			return nil, fbErr
		}
		r.fontFamilies[name] = entry
		return entry, nil
	}
	entry := &fontFamilyEntry{family: family}
	if len(bold) > 0 && family.LoadFont(bold, 0, canvas.FontBold) == nil {
		entry.bold = true
	}
	r.fontFamilies[name] = entry
	return entry, nil
}

func hasBengali(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Bengali, r) {
			return true
		}
	}
	return false
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// greedyWrap 优先在空白处折行，单个词超过 limit 时在词内拆分。显式换行保留为空行。
// measure 返回 mm 宽度。
func greedyWrap(content string, limit float64, measure func(string) float64) []string {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	var lines []string
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, "")
			}
			return
		}
		lines = append(lines, strings.TrimRightFunc(builder.String(), unicode.IsSpace))
		builder.Reset()
		currentWidth = 0
	}
	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += measure(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace && builder.Len() == 0 {
			continue
		}
		tokenWidth := measure(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
			if isSpace {
				continue
			}
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}
		for _, chunk := range splitTokenByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}
	emit(false)
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// tokenizeContent 将文本切分为连续的空白与非空白片段，换行单独成段。
func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, measure func(string) float64) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && measure(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = []rune{r}
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
