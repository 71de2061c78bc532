package generator

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// 返回 Messages API 的 content 块结构。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, req CompletionRequest) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("## Introduction\n\n")
	sb.WriteString("This is a locally generated sample article.\n\n")
	sb.WriteString("## Prompt\n\n")
	sb.WriteString("```\n")
	sb.WriteString(req.Prompt.User)
	sb.WriteString("```\n\n")
	sb.WriteString("## Conclusion\n\n")
	sb.WriteString("Replace the mock provider with a real one to generate content.\n")

	return json.Marshal(map[string]any{
		"type": "message",
		"role": "assistant",
		"content": []map[string]string{
			{"type": "text", "text": sb.String()},
		},
	})
}
