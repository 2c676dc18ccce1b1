package renderer

import (
	"fmt"
	"strings"

	"github.com/ByLCY/omrkit/layout"
)

// Renderer 将答题卡文档输出为最终文件，例如 PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Format 输出格式。
type Format string

const (
	PDF Format = "pdf"
	SVG Format = "svg"
)

// ParseFormat 解析格式名，空字符串视为 PDF。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PDF, nil
	case PDF, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q", s)
	}
}

// ContentType 返回格式对应的 MIME 类型。
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "application/pdf"
}
