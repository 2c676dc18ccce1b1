package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular = "go-regular"
	Bold    = "go-bold"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

// Load 返回字体字节数据。src 可写为 "embed:go-regular"、"embed:go-bold"，
// 其余视为文件路径（例如孟加拉文字体 NotoSansBengali-Regular.ttf）。
func Load(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, found := builtin[name]
		if !found {
			return nil, fmt.Errorf("未知的内置字体 %s", name)
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
