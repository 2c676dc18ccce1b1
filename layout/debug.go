package layout

import (
	"encoding/json"
	"os"
)

// MarshalDebugJSON 将布局结果编码为缩进 JSON。
func MarshalDebugJSON(doc *Document) ([]byte, error) {
	if doc == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或交给扫描端核对几何参数。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := MarshalDebugJSON(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
