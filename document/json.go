package document

import (
	"encoding/json"
	"fmt"
	"os"
)

// 该文件负责把文档树序列化为 JSON，供调试或交给其他语言实现的渲染器。

type documentJSON struct {
	Name     string        `json:"name"`
	Settings PageSettings  `json:"settings"`
	Meta     Meta          `json:"meta"`
	Header   []elementJSON `json:"header"`
	Elements []elementJSON `json:"elements"`
	Footer   []elementJSON `json:"footer"`
}

// elementJSON 在元素字段外包一层 kind 标签。
type elementJSON struct {
	el Element
}

func (e elementJSON) MarshalJSON() ([]byte, error) {
	var payload any
	switch v := e.el.(type) {
	case TwoColumnSection:
		payload = struct {
			TwoColumnSection
			Left  []elementJSON `json:"left"`
			Right []elementJSON `json:"right"`
		}{v, wrapElements(v.Left), wrapElements(v.Right)}
	case Image:
		payload = struct {
			Image
			Bytes int `json:"bytes"`
		}{v, len(v.Data)}
	default:
		payload = v
	}
	fields, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", e.el.Kind(), err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", e.el.Kind(), err)
	}
	kind, _ := json.Marshal(e.el.Kind().String())
	m["kind"] = kind
	return json.Marshal(m)
}

func wrapElements(els []Element) []elementJSON {
	out := make([]elementJSON, 0, len(els))
	for _, el := range els {
		out = append(out, elementJSON{el: el})
	}
	return out
}

// MarshalJSON encodes the three regions with a "kind" tag on every element.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{
		Name:     d.Name,
		Settings: d.Settings,
		Meta:     d.Meta,
		Header:   wrapElements(d.header),
		Elements: wrapElements(d.body),
		Footer:   wrapElements(d.footer),
	})
}

// MarshalJSON encodes alignment by name.
func (a Alignment) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// MarshalJSON encodes the line style by name.
func (s LineStyle) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// MarshalJSON encodes the symbology by name.
func (s Symbology) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// WriteDebugJSON 将文档树输出为缩进 JSON，便于调试或可视化。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
