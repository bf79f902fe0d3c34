package explain

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/backtoschool/progcompare/pkg/cache"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// OpenAI is a [Completer] backed by the OpenAI chat completions API.
type OpenAI struct {
	client      openai.Client
	model       openai.ChatModel
	temperature float64
	maxTokens   int64
}

// OpenAIOption configures an [OpenAI] client.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	model       string
	baseURL     string
	temperature float64
	maxTokens   int64
}

// WithModel selects the chat model.
func WithModel(model string) OpenAIOption {
	return func(c *openAIConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) { c.baseURL = url }
}

// WithSampling sets temperature and the completion token limit.
func WithSampling(temperature float64, maxTokens int64) OpenAIOption {
	return func(c *openAIConfig) {
		c.temperature = temperature
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// NewOpenAI returns a client for apiKey. The SDK's own retries are disabled;
// [Explainer] retries transient failures itself.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	cfg := openAIConfig{
		model:       DefaultModel,
		temperature: 0.7,
		maxTokens:   1000,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &OpenAI{
		client:      openai.NewClient(reqOpts...),
		model:       openai.ChatModel(cfg.model),
		temperature: cfg.temperature,
		maxTokens:   cfg.maxTokens,
	}
}

// Model returns the configured chat model name.
func (c *OpenAI) Model() string { return string(c.model) }

// Complete runs one chat completion. Rate limits, server errors and transport
// failures come back as [cache.ErrNetwork] wrapped with [cache.Retryable].
func (c *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		err = fmt.Errorf("openai API error: %w", err)
		if retryable(err) {
			return "", cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}
