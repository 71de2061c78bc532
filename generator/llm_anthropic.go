package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// AnthropicLLM implements LLMClient against the Anthropic Messages API.
type AnthropicLLM struct {
	BaseURL string
	HTTP    *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int64              `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

func NewAnthropicLLMFromConfig(cfg *LLMSettings) (*AnthropicLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultAnthropicBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &AnthropicLLM{BaseURL: base, HTTP: client}, nil
}

func (a *AnthropicLLM) Complete(ctx context.Context, req CompletionRequest) ([]byte, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.Prompt.System,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt.User}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.Credential)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.HTTP.Do(httpReq)
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: "request to anthropic failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: "read anthropic response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &GenerationError{Kind: KindAuthentication, Message: apiErrorMessage(resp.StatusCode, data)}
	case resp.StatusCode >= http.StatusMultipleChoices:
		return nil, &GenerationError{Kind: KindOther, Message: apiErrorMessage(resp.StatusCode, data)}
	}
	return data, nil
}

func apiErrorMessage(status int, body []byte) string {
	msg := gjson.GetBytes(body, "error.message").String()
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Sprintf("status %d: %s", status, msg)
}
