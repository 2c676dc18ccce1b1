package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/omrkit/sheet"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			return format(val)
		}
		return match
	})
}

// Config 对答题卡中所有可打印的自由文本执行插值：机构名、地址、说明与套题代码。
func Config(c sheet.Config, data any) sheet.Config {
	if data == nil {
		return c
	}
	c.Institution = Interpolate(c.Institution, data)
	c.Address = Interpolate(c.Address, data)
	c.Instructions = Interpolate(c.Instructions, data)
	if len(c.SetCodes) > 0 {
		codes := make([]string, len(c.SetCodes))
		for i, s := range c.SetCodes {
			codes[i] = Interpolate(s, data)
		}
		c.SetCodes = codes
	}
	return c
}

// LoadFile 读取 JSON 数据文件，作为插值数据源。
func LoadFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	return data, nil
}

// format 避免 JSON 数字以科学计数法输出（如考试编号 2.024e+07）。
func format(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// resolvePath 按 "a.b[0].c" 逐级取值，支持 map 与切片。
func resolvePath(data any, path string) (any, bool) {
	steps, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	current := data
	for _, step := range steps {
		if step.index >= 0 {
			current, ok = at(current, step.index)
		} else {
			current, ok = field(current, step.key)
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

type pathStep struct {
	key   string
	index int // -1 for map keys
}

// splitPath 将 "items[0][1].name" 拆为 items、0、1、name 四步。
func splitPath(path string) ([]pathStep, bool) {
	var steps []pathStep
	for _, segment := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(segment, "[")
		if key != "" {
			steps = append(steps, pathStep{key: key, index: -1})
		}
		for rest != "" {
			idx, tail, found := strings.Cut(rest, "]")
			n, err := strconv.Atoi(idx)
			if !found || err != nil || n < 0 {
				return nil, false
			}
			steps = append(steps, pathStep{index: n})
			rest = strings.TrimPrefix(tail, "[")
		}
	}
	return steps, true
}

func field(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case map[string]string:
		v, ok := c[key]
		return v, ok
	}
	return nil, false
}

func at(current any, i int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if i < len(c) {
			return c[i], true
		}
	case []string:
		if i < len(c) {
			return c[i], true
		}
	}
	return nil, false
}
