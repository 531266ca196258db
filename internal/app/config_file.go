package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Image struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"key"`
	} `yaml:"image"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Timeout is a Go duration string, e.g. "30s".
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`

	// CompleteTimeout is a Go duration string, e.g. "60s".
	CompleteTimeout string `yaml:"completeTimeout"`
	MaxContentChars int    `yaml:"maxContentChars"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile parses the YAML config at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFileToConfig populates unset fields of cfg from fc. Explicit cfg
// values (flags, env) take precedence over the file.
func ApplyFileToConfig(cfg *Config, fc *FileConfig) {
	if cfg == nil || fc == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.ImageEndpoint == "" {
		cfg.ImageEndpoint = fc.Image.Endpoint
	}
	if cfg.ImageAPIKey == "" {
		cfg.ImageAPIKey = fc.Image.APIKey
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if cfg.CompleteTimeout == 0 {
		if d, err := time.ParseDuration(fc.CompleteTimeout); err == nil && d > 0 {
			cfg.CompleteTimeout = d
		}
	}
	if cfg.MaxContentChars == 0 && fc.MaxContentChars > 0 {
		cfg.MaxContentChars = fc.MaxContentChars
	}
	if cfg.Addr == "" {
		cfg.Addr = fc.Server.Addr
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
