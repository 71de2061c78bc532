package generator

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape identifies which response layout Normalize matched.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeContentBlocks
	ShapeContentString
	ShapeContentOther
	ShapeCompletion
	ShapeText
)

var shapeNames = map[Shape]string{
	ShapeUnrecognized:  "unrecognized",
	ShapeContentBlocks: "content_blocks",
	ShapeContentString: "content_string",
	ShapeContentOther:  "content_other",
	ShapeCompletion:    "completion",
	ShapeText:          "text",
}

func (s Shape) String() string { return shapeNames[s] }

// Recognized is false only for the stringified fallback.
func (s Shape) Recognized() bool { return s != ShapeUnrecognized }

// Normalized 归一化后的文本及命中的结构。
type Normalized struct {
	Text  string
	Shape Shape
}

// Normalize 从不同版本的接口响应中提取正文，不会失败。
// 按优先级尝试：content 块数组、content 字符串、content 其他、completion、text。
func Normalize(raw []byte) Normalized {
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return fallback(raw)
	}

	if content := present(doc, "content"); content.Exists() {
		switch {
		case content.IsArray():
			var sb strings.Builder
			for _, block := range content.Array() {
				if text := present(block, "text"); text.Exists() {
					sb.WriteString(text.String())
				}
			}
			return Normalized{Text: sb.String(), Shape: ShapeContentBlocks}
		case content.Type == gjson.String:
			return Normalized{Text: content.String(), Shape: ShapeContentString}
		default:
			return Normalized{Text: content.Raw, Shape: ShapeContentOther}
		}
	}
	if completion := present(doc, "completion"); completion.Exists() {
		return Normalized{Text: completion.String(), Shape: ShapeCompletion}
	}
	if text := present(doc, "text"); text.Exists() {
		return Normalized{Text: text.String(), Shape: ShapeText}
	}
	return fallback(raw)
}

// present 把 null 视为字段不存在。
func present(doc gjson.Result, key string) gjson.Result {
	r := doc.Get(key)
	if r.Type == gjson.Null {
		return gjson.Result{}
	}
	return r
}

func fallback(raw []byte) Normalized {
	return Normalized{Text: strings.TrimSpace(string(raw)), Shape: ShapeUnrecognized}
}
