// Package transform coordinates a transformation request: input validation,
// prompt construction, size routing through the chunker, the completion call,
// and post-processing of the result.
package transform

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/soal8877-ctrl/referent/internal/budget"
	"github.com/soal8877-ctrl/referent/internal/chunk"
	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

// TruncationNote is appended when only the first chunk of an oversized
// article was processed.
const TruncationNote = "[Note: the article was shortened for processing; results reflect the first part of the article.]"

// Completer abstracts the completion client so tests can substitute a stub.
type Completer interface {
	Complete(ctx context.Context, cfg prompt.Config) (string, error)
}

// Orchestrator runs transformations. All state is per-call; a single
// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	Completer Completer
	// MaxContentChars routes oversized content through the chunker.
	// Zero means budget.MaxContentChars.
	MaxContentChars int
}

// Transform turns article content into the requested derived output.
//
// Oversized content is split into chunks and only the first chunk is sent to
// the completion service; the rest are counted and discarded, and a fixed
// truncation note is appended to the result. This trades completeness for
// bounded latency and cost on long articles.
func (o *Orchestrator) Transform(ctx context.Context, content string, action prompt.Action, sourceURL string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", referr.Errorf(referr.EValidation, "content must not be empty")
	}
	if _, err := prompt.Parse(string(action)); err != nil {
		return "", err
	}

	max := o.MaxContentChars
	if max <= 0 {
		max = budget.MaxContentChars
	}

	var result string
	if budget.ExceedsLimit(content, max) {
		segments := chunk.Split(content, max)
		log.Debug().Str("action", string(action)).Int("chunks", len(segments)).
			Msg("content exceeds limit; processing first chunk only")

		cfg, err := prompt.Build(action, segments[0], sourceURL)
		if err != nil {
			return "", err
		}
		result, err = o.Completer.Complete(ctx, cfg)
		if err != nil {
			return "", err
		}
		if len(segments) > 1 {
			result += "\n\n" + TruncationNote
		}
	} else {
		cfg, err := prompt.Build(action, content, sourceURL)
		if err != nil {
			return "", err
		}
		result, err = o.Completer.Complete(ctx, cfg)
		if err != nil {
			return "", err
		}
	}

	if action == prompt.ActionSocialPost && sourceURL != "" {
		result = NormalizeSourceLinks(result)
		if !HasAttribution(result, sourceURL) {
			result += "\n\n" + AttributionLine(sourceURL)
		}
	}

	if strings.TrimSpace(result) == "" {
		return "", referr.Errorf(referr.ENoResult, "empty response from completion service")
	}
	return result, nil
}

// Translate renders article text into English using the fixed translator
// prompt. No chunk routing and no attribution post-processing apply.
func (o *Orchestrator) Translate(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", referr.Errorf(referr.EValidation, "content must not be empty")
	}
	result, err := o.Completer.Complete(ctx, prompt.Translate(content))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result) == "" {
		return "", referr.Errorf(referr.ENoResult, "empty response from completion service")
	}
	return result, nil
}
