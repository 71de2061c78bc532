package generator

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DefaultModel       = "claude-3-opus-20240229"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

// ArticleGenerator produces article text for the given parameters.
type ArticleGenerator interface {
	Generate(ctx context.Context, params ArticleParameters, credential string) (string, error)
}

// ClientOptions 固定的生成配置。
type ClientOptions struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Logger      logrus.FieldLogger
}

// Client 负责构造提示词、调用 LLM 并归一化响应。
type Client struct {
	llm    LLMClient
	opts   ClientOptions
	logger logrus.FieldLogger
}

func NewClient(llm LLMClient, opts ClientOptions) (*Client, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{llm: llm, opts: opts, logger: logger}, nil
}

// Generate 单次调用，不重试。所有失败都以 *GenerationError 返回。
func (c *Client) Generate(ctx context.Context, params ArticleParameters, credential string) (string, error) {
	prompt := BuildPrompt(params)
	log := c.logger.WithFields(logrus.Fields{
		"model":      c.opts.Model,
		"title":      params.Title,
		"prompt_len": len(prompt.User),
	})
	log.Debug("requesting article generation")

	raw, err := c.llm.Complete(ctx, CompletionRequest{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
		Prompt:      prompt,
		Credential:  credential,
	})
	if err != nil {
		genErr := classifyError(err)
		log.WithField("kind", genErr.Kind).WithError(err).Error("article generation failed")
		return "", genErr
	}

	n := Normalize(raw)
	if !n.Shape.Recognized() {
		log.WithField("response_len", len(raw)).Warn("unexpected response shape, using raw payload")
	}
	text := strings.TrimSpace(n.Text)
	if text == "" {
		log.WithField("shape", n.Shape.String()).Error("model returned no text")
		return "", &GenerationError{Kind: KindUnrecognizedResponse, Message: "model returned no text"}
	}
	log.WithFields(logrus.Fields{"shape": n.Shape.String(), "content_len": len(text)}).Info("article generated")
	return text, nil
}

func classifyError(err error) *GenerationError {
	if genErr, ok := AsGenerationError(err); ok {
		return genErr
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return &GenerationError{Kind: KindTransport, Message: "request failed", Err: err}
	}
	return &GenerationError{Kind: KindOther, Message: err.Error(), Err: err}
}
