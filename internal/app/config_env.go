package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		// OPENROUTER_API_KEY is the documented name; LLM_API_KEY works for
		// other OpenAI-compatible backends.
		v := os.Getenv("OPENROUTER_API_KEY")
		if v == "" {
			v = os.Getenv("LLM_API_KEY")
		}
		cfg.LLMAPIKey = v
	}

	if cfg.ImageEndpoint == "" {
		cfg.ImageEndpoint = os.Getenv("IMAGE_ENDPOINT")
	}
	if cfg.ImageAPIKey == "" {
		cfg.ImageAPIKey = os.Getenv("HUGGINGFACE_API_KEY")
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_USER_AGENT")
	}
	if cfg.FetchTimeout == 0 {
		if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("FETCH_TIMEOUT"))); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if cfg.CompleteTimeout == 0 {
		if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("COMPLETE_TIMEOUT"))); err == nil && d > 0 {
			cfg.CompleteTimeout = d
		}
	}
	if cfg.MaxContentChars == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_CONTENT_CHARS"))); err == nil && n > 0 {
			cfg.MaxContentChars = n
		}
	}

	if cfg.Addr == "" {
		cfg.Addr = os.Getenv("ADDR")
	}
}
