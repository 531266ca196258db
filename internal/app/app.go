// Package app wires the pipeline together: page fetcher, extractor,
// completion client, orchestrator, and illustration generator, all built
// from one Config.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soal8877-ctrl/referent/internal/extract"
	"github.com/soal8877-ctrl/referent/internal/fetch"
	"github.com/soal8877-ctrl/referent/internal/image"
	"github.com/soal8877-ctrl/referent/internal/llm"
	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
	"github.com/soal8877-ctrl/referent/internal/transform"
)

// App holds the assembled pipeline. All components are stateless per
// request; one App serves concurrent callers.
type App struct {
	cfg          Config
	fetcher      *fetch.Client
	orchestrator *transform.Orchestrator
	generator    *image.Generator
}

// New assembles an App from cfg. The completion credential is not required
// here; extract-only use works without one, and transform calls report its
// absence as a configuration error.
func New(cfg Config) *App {
	cfg = cfg.withDefaults()

	completer := &llm.Completer{
		Client:  llm.NewProvider(cfg.LLMBaseURL, cfg.LLMAPIKey),
		Model:   cfg.LLMModel,
		Timeout: cfg.CompleteTimeout,
	}
	return &App{
		cfg: cfg,
		fetcher: &fetch.Client{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		},
		orchestrator: &transform.Orchestrator{
			Completer:       completer,
			MaxContentChars: cfg.MaxContentChars,
		},
		generator: &image.Generator{
			Completer: completer,
			Endpoint:  cfg.ImageEndpoint,
			APIKey:    cfg.ImageAPIKey,
		},
	}
}

// Extract fetches url and derives {title, publish date, body}. Fields that
// cannot be derived come back as "not found" sentinels; only fetch failures
// are errors.
func (a *App) Extract(ctx context.Context, url string) (extract.Article, error) {
	start := time.Now()
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return extract.Article{}, err
	}
	article := extract.FromHTML(page)
	log.Debug().Str("url", url).
		Int("bodyChars", len(article.Body)).
		Dur("took", time.Since(start)).
		Msg("extracted article")
	return article, nil
}

// Transform runs one transformation action over content.
func (a *App) Transform(ctx context.Context, content string, action prompt.Action, sourceURL string) (string, error) {
	if err := a.requireCredential(); err != nil {
		return "", err
	}
	return a.orchestrator.Transform(ctx, content, action, sourceURL)
}

// Translate renders content into English.
func (a *App) Translate(ctx context.Context, content string) (string, error) {
	if err := a.requireCredential(); err != nil {
		return "", err
	}
	return a.orchestrator.Translate(ctx, content)
}

// Illustrate produces an image prompt and a rendered illustration for
// content. The HTTP route in front of this is currently disabled.
func (a *App) Illustrate(ctx context.Context, content string) (string, string, error) {
	if err := a.requireCredential(); err != nil {
		return "", "", err
	}
	return a.generator.Illustrate(ctx, content)
}

// ProcessURL is the end-to-end pipeline: extract the article at url, then
// transform its body, attributing the result to url.
func (a *App) ProcessURL(ctx context.Context, url string, action prompt.Action) (string, error) {
	article, err := a.Extract(ctx, url)
	if err != nil {
		return "", err
	}
	body := strings.TrimSpace(article.Body)
	if body == "" || body == extract.BodyNotFound {
		return "", referr.Errorf(referr.ENoContent, "could not extract readable content from the page")
	}
	return a.Transform(ctx, body, action, url)
}

func (a *App) requireCredential() error {
	if strings.TrimSpace(a.cfg.LLMAPIKey) == "" {
		return referr.Errorf(referr.EConfig,
			"completion service credential is not configured; set OPENROUTER_API_KEY")
	}
	return nil
}
