package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg := Config{LLMModel: "explicit-model"}
	ApplyEnvToConfig(&cfg)

	if cfg.LLMAPIKey != "env-key" {
		t.Fatalf("LLMAPIKey = %q", cfg.LLMAPIKey)
	}
	if cfg.LLMModel != "explicit-model" {
		t.Fatal("explicit value must win over env")
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("FetchTimeout = %v", cfg.FetchTimeout)
	}
}

func TestApplyEnvToConfig_LLMAPIKeyFallback(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("LLM_API_KEY", "fallback-key")

	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.LLMAPIKey != "fallback-key" {
		t.Fatalf("LLMAPIKey = %q", cfg.LLMAPIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referent.yml")
	data := `
llm:
  base: http://localhost:8081/v1
  model: test-model
  key: file-key
fetch:
  timeout: 10s
maxContentChars: 5000
server:
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	cfg := Config{LLMModel: "flag-model"}
	ApplyFileToConfig(&cfg, fc)

	if cfg.LLMBaseURL != "http://localhost:8081/v1" || cfg.LLMAPIKey != "file-key" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatal("explicit value must win over file")
	}
	if cfg.FetchTimeout != 10*time.Second || cfg.MaxContentChars != 5000 || cfg.Addr != ":9090" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.LLMBaseURL != DefaultLLMBaseURL || cfg.LLMModel != DefaultLLMModel {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.CompleteTimeout != 60*time.Second {
		t.Fatalf("timeout defaults wrong: %+v", cfg)
	}
	if cfg.MaxContentChars != 20000 {
		t.Fatalf("MaxContentChars default = %d", cfg.MaxContentChars)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	data := "# comment\nTEST_DOTENV_KEY=hello\nQUOTED='world'\nmalformed line\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_DOTENV_KEY", "")
	t.Setenv("QUOTED", "")

	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnvFiles: %v", err)
	}
	if os.Getenv("TEST_DOTENV_KEY") != "hello" {
		t.Fatalf("TEST_DOTENV_KEY = %q", os.Getenv("TEST_DOTENV_KEY"))
	}
	if os.Getenv("QUOTED") != "world" {
		t.Fatalf("QUOTED = %q", os.Getenv("QUOTED"))
	}
}
