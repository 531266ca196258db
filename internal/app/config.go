package app

import (
	"time"

	"github.com/soal8877-ctrl/referent/internal/budget"
	"github.com/soal8877-ctrl/referent/internal/fetch"
	"github.com/soal8877-ctrl/referent/internal/image"
	"github.com/soal8877-ctrl/referent/internal/llm"
)

// DefaultLLMBaseURL targets OpenRouter's OpenAI-compatible API.
const DefaultLLMBaseURL = "https://openrouter.ai/api/v1"

// DefaultLLMModel is the completion model used when none is configured.
const DefaultLLMModel = "deepseek/deepseek-chat"

// Config holds runtime configuration for the application.
type Config struct {
	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Image inference service (illustration pipeline)
	ImageEndpoint string
	ImageAPIKey   string

	// Page fetching
	UserAgent    string
	FetchTimeout time.Duration

	// Completion timeout for text transforms.
	CompleteTimeout time.Duration

	// MaxContentChars routes oversized articles through the chunker.
	MaxContentChars int

	// Server
	Addr string

	Verbose bool
}

// withDefaults fills unset fields with their defaults.
func (c Config) withDefaults() Config {
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = DefaultLLMBaseURL
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	if c.ImageEndpoint == "" {
		c.ImageEndpoint = image.DefaultEndpoint
	}
	if c.UserAgent == "" {
		c.UserAgent = fetch.DefaultUserAgent
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = fetch.DefaultTimeout
	}
	if c.CompleteTimeout <= 0 {
		c.CompleteTimeout = llm.DefaultTimeout
	}
	if c.MaxContentChars <= 0 {
		c.MaxContentChars = budget.MaxContentChars
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	return c
}
