package openai

import (
	"errors"

	api "github.com/sashabaranov/go-openai"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/infra"
)

// Client adapts the OpenAI API for both pipeline stages that need it:
// Whisper transcription and chat-completion query translation.
type Client struct {
	api      *api.Client
	model    string
	language string
}

func NewClient(apiKey, model, language string) *Client {
	return NewClientWithURL(apiKey, model, language, "")
}

// NewClientWithURL points the client at a non-default endpoint, used by
// tests and OpenAI-compatible gateways.
func NewClientWithURL(apiKey, model, language, baseURL string) *Client {
	cfg := api.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = api.GPT4oMini
	}
	return &Client{
		api:      api.NewClientWithConfig(cfg),
		model:    model,
		language: language,
	}
}

// retryConfig backs off on transient failures but gives up immediately on
// API errors that will not change on a retry, like a bad request or an
// invalid key.
func retryConfig() infra.RetryConfig {
	cfg := infra.DefaultRetryConfig()
	cfg.ShouldRetry = func(err error) bool {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return infra.IsRetryableHTTPStatus(apiErr.HTTPStatusCode)
		}
		return true
	}
	return cfg
}
