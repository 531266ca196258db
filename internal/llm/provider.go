// Package llm drives the external chat-completion service. One request per
// call, no retries; retry policy, if any, belongs to the caller.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed to call a chat model. It mirrors the
// CreateChatCompletion method so any OpenAI-compatible backend (OpenRouter,
// local servers, the test stub) can serve as the provider.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewProvider builds an OpenAI-compatible client for the given base URL and
// bearer credential.
func NewProvider(baseURL, apiKey string) Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}
