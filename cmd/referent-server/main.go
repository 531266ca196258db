package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soal8877-ctrl/referent/internal/app"
	"github.com/soal8877-ctrl/referent/internal/httpapi"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	_ = app.LoadEnvFiles(".env", ".env.local")

	var (
		addr       string
		llmBaseURL string
		llmModel   string
		llmKey     string
		configPath string
		origins    string
		verbose    bool
	)

	flag.StringVar(&addr, "addr", "", "Listen address, e.g. :8080")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the completion service")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&origins, "cors.origins", os.Getenv("CORS_ORIGINS"), "Comma-separated list of allowed CORS origins")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		Addr:       addr,
		Verbose:    verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Msg("load config")
			os.Exit(1)
		}
		app.ApplyFileToConfig(&cfg, fc)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if v := strings.TrimSpace(o); v != "" {
			allowed = append(allowed, v)
		}
	}

	a := app.New(cfg)
	r := httpapi.NewRouter(a, allowed)

	log.Info().Str("addr", cfg.Addr).Msg("referent server listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
