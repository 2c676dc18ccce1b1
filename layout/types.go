package layout

// 该文件定义答题卡布局结果，供组版、渲染与调试 JSON 共用。所有坐标单位均为 mm，
// 原点位于页面左上角，y 轴向下。

// TemplateVersion 标识气泡间距、定位标记与面板行列约定的版本；任何几何改动都必须升级。
const TemplateVersion = "omr-layout/1"

// Document 保存一次组版得到的全部页面。构造完成后不再修改。
type Document struct {
	Version       string       `json:"version"`
	Variant       string       `json:"variant"`
	Fingerprint   string       `json:"fingerprint"`
	QuestionCount int          `json:"questionCount"`
	Pages         []Page       `json:"pages"`
	Meta          DocumentMeta `json:"meta"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Page 记录页面尺寸以及扫描端需要采样的全部元素。
type Page struct {
	Width          float64          `json:"width"`
	Height         float64          `json:"height"`
	Markers        []FiducialMarker `json:"markers"`
	IdentityPanels []BubblePanel    `json:"identityPanels,omitempty"`
	AnswerColumns  []AnswerColumn   `json:"answerColumns"`
	TimingMarks    []Rect           `json:"timingMarks,omitempty"`
	Decorations    Decorations      `json:"decorations"`
}

// Corner 标识定位标记所在的页角。
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// Square 是轴对齐的正方形，X/Y 为左上角。
type Square struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// FiducialMarker 是实心方块 + 反色内方块，部分页角额外带缺口。
type FiducialMarker struct {
	Corner   Corner  `json:"corner"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Inner    Square  `json:"inner"`
	HasNotch bool    `json:"hasNotch"`
	Notch    *Square `json:"notch,omitempty"`
}

// Center 返回标记主体的中心点。
func (m FiducialMarker) Center() (float64, float64) {
	return m.X + m.Size/2, m.Y + m.Size/2
}

// PanelKind 标识身份信息面板的用途。
type PanelKind string

const (
	PanelRoll        PanelKind = "roll"
	PanelSubjectCode PanelKind = "subject-code"
	PanelClass       PanelKind = "class"
	PanelSetCode     PanelKind = "set-code"
)

// Axis 说明 Bubble.Value 沿哪个下标读取。
// ValuesDown：值等于行号，列为数位（学号、科目代码）；
// ValuesAcross：值等于列号（答案选项、横排套卷代码）。
type Axis string

const (
	ValuesDown   Axis = "values-down"
	ValuesAcross Axis = "values-across"
)

// Frame 是元素占用的矩形区域。
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bubble 是一个可被涂写的圆圈。Row/Col 为面板内下标，Value 为被选中时代表的值。
type Bubble struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Value int     `json:"value"`
	Label string  `json:"label"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
}

// BubbleStyle 描述气泡描边与内部文字。
type BubbleStyle struct {
	Stroke      Color   `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"` // mm
	Text        Color   `json:"text"`
	FontSize    float64 `json:"fontSize"` // pt
}

// BubblePanel 是学号、科目代码、年级、套卷代码等固定格式的气泡网格。
type BubblePanel struct {
	Kind   PanelKind   `json:"kind"`
	Header string      `json:"header"`
	Rows   int         `json:"rows"`
	Cols   int         `json:"cols"`
	Axis   Axis        `json:"axis"`
	Frame  Frame       `json:"frame"`
	Cells  []Bubble    `json:"cells"`
	Style  BubbleStyle `json:"style"`
}

// AnswerRow 是一道题：题号标签加一排选项气泡。
type AnswerRow struct {
	Question int      `json:"question"`
	Label    string   `json:"label"`
	Y        float64  `json:"y"`
	Bubbles  []Bubble `json:"bubbles"`
}

// AnswerColumn 保存一列连续题号 [Start, End]。
type AnswerColumn struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Frame Frame       `json:"frame"`
	Rows  []AnswerRow `json:"rows"`
	Style BubbleStyle `json:"style"`
}

// Decorations 是不参与扫描的印刷元素：抬头、规则、说明、签名框等。
type Decorations struct {
	Texts   []TextBox `json:"texts,omitempty"`
	Lines   []Line    `json:"lines,omitempty"`
	Rects   []Rect    `json:"rects,omitempty"`
	Circles []Circle  `json:"circles,omitempty"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经排好坐标的文本块。
// Height>0 时文字在框内垂直居中；Wrap 为真时按 Width 折行，行距为 LineHeight。
type TextBox struct {
	Content    string  `json:"content"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height,omitempty"`
	FontSize   float64 `json:"fontSize"` // pt
	Bold       bool    `json:"bold,omitempty"`
	Color      Color   `json:"color"`
	Align      string  `json:"align,omitempty"` // left/center/right（默认 left）
	Wrap       bool    `json:"wrap,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`
	Rotate     float64 `json:"rotate,omitempty"` // 逆时针角度，竖排标题使用
}

// 基本图形：直线、矩形、圆形（单位均为 mm）。
// Line 表示一条线段，Dash 非空时为虚线。
type Line struct {
	X1    float64   `json:"x1"`
	Y1    float64   `json:"y1"`
	X2    float64   `json:"x2"`
	Y2    float64   `json:"y2"`
	Color Color     `json:"color"`
	Width float64   `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
	Dash  []float64 `json:"dash,omitempty"`
}

// Rect 表示一个矩形（不包含圆角）。StrokeWidth<=0 表示不描边。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`         // mm
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// Circle 表示一个圆。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"` // mm
	FillColor   *Color  `json:"fillColor,omitempty"`
}
