package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/soal8877-ctrl/referent/internal/app"
	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
	"github.com/soal8877-ctrl/referent/internal/report"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env files are a convenience for local runs; real deployments set env.
	_ = app.LoadEnvFiles(".env", ".env.local")

	var (
		url        string
		action     string
		llmBaseURL string
		llmModel   string
		llmKey     string
		configPath string
		outputPath string
		pdfPath    string
		translate  bool
		verbose    bool
	)

	flag.StringVar(&url, "url", "", "Article URL to process")
	flag.StringVar(&action, "action", string(prompt.ActionSummarize), "Transformation action: summary, thesis, or telegram")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the completion service")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&outputPath, "output", "", "Write the result to this file instead of stdout")
	flag.StringVar(&pdfPath, "output.pdf", "", "Additionally render the result as a PDF at this path")
	flag.BoolVar(&translate, "translate", false, "Translate the article body instead of transforming it")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	// Positional URL is accepted too: `referent https://example.com/article`.
	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if strings.TrimSpace(url) == "" {
		fmt.Fprintln(os.Stderr, "usage: referent -url <article URL> [-action summary|thesis|telegram]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := app.Config{
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
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

	if err := run(cfg, url, action, translate, outputPath, pdfPath); err != nil {
		log.Error().Str("code", referr.ErrorCode(err)).Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config, url, action string, translate bool, outputPath, pdfPath string) error {
	ctx := context.Background()
	a := app.New(cfg)

	var result string
	if translate {
		article, err := a.Extract(ctx, url)
		if err != nil {
			return err
		}
		result, err = a.Translate(ctx, article.Body)
		if err != nil {
			return err
		}
	} else {
		act, err := prompt.Parse(action)
		if err != nil {
			return err
		}
		result, err = a.ProcessURL(ctx, url, act)
		if err != nil {
			return err
		}
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("path", outputPath).Msg("wrote result")
	} else {
		fmt.Println(result)
	}

	if pdfPath != "" {
		if err := report.WritePDF("", result, pdfPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", pdfPath).Msg("wrote pdf")
	}
	return nil
}
