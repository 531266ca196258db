package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

// DefaultTimeout bounds a text-transformation completion request.
const DefaultTimeout = 60 * time.Second

// maxRawErrorChars caps how much of an unparseable upstream error body ends
// up in a user-facing message.
const maxRawErrorChars = 200

// Completer issues single bounded-time completion requests.
type Completer struct {
	Client Client
	Model  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Complete sends one request for cfg and returns the first choice's message
// content. The text may be empty; emptiness is the caller's concern. Failures
// map to coded errors: TIMEOUT when the deadline elapses, UPSTREAM_ERROR for
// non-success responses (with the upstream message when parseable),
// NO_RESULT when the response carries no choices, NETWORK_ERROR otherwise.
func (c *Completer) Complete(ctx context.Context, cfg prompt.Config) (string, error) {
	if c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return "", referr.Errorf(referr.EConfig, "completion client is not configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: cfg.System},
			{Role: openai.ChatMessageRoleUser, Content: cfg.User},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", referr.Errorf(referr.ENoResult, "unexpected response shape from completion service")
	}
	return resp.Choices[0].Message.Content, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return referr.Errorf(referr.ETimeout,
			"the completion service did not answer in time; retry later or shorten the article")
	}

	// Structured error payload parsed by the client.
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = truncate(apiErr.Error())
		}
		return referr.StatusErrorf(referr.EUpstream, apiErr.HTTPStatusCode,
			"completion service error: %s", msg)
	}

	// Non-success response whose payload could not be parsed.
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return referr.StatusErrorf(referr.EUpstream, reqErr.HTTPStatusCode,
			"completion service error: %s", truncate(reqErr.Error()))
	}

	return referr.Errorf(referr.ENetwork, "could not reach the completion service")
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxRawErrorChars {
		return s[:maxRawErrorChars]
	}
	return s
}
