package layout

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// ParseHex 解析 #rgb / #rrggbb / #rrggbbaa 形式的颜色（忽略 alpha）。
func ParseHex(value string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(raw) {
	case 3:
		raw = strings.Repeat(raw[0:1], 2) + strings.Repeat(raw[1:2], 2) + strings.Repeat(raw[2:3], 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var parts [3]int
	for i := range parts {
		v, err := strconv.ParseUint(raw[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
		}
		parts[i] = int(v)
	}
	return Color{R: parts[0], G: parts[1], B: parts[2]}, nil
}

// MustHex 用于内置色板等字面量，解析失败直接 panic。
func MustHex(value string) Color {
	c, err := ParseHex(value)
	if err != nil {
		panic(err)
	}
	return c
}

// Ptr 返回颜色副本的指针，方便填写 FillColor。
func (c Color) Ptr() *Color { return &c }

// Hex 输出 #rrggbb。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
