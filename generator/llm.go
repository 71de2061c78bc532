package generator

import (
	"context"
	"net/http"
)

// CompletionRequest 一次生成调用的全部参数，凭证随请求传入。
type CompletionRequest struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Prompt      Prompt
	Credential  string
}

// LLMClient 抽象大模型客户端，返回原始响应体，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) ([]byte, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider   string
	BaseURL    string
	HTTPClient *http.Client
}
