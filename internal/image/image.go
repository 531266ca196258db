// Package image holds the illustration pipeline: an auxiliary completion call
// turns article text into a text-to-image prompt, and an inference service
// renders that prompt into an image. The HTTP route in front of it is
// currently disabled; the pipeline stays wired and tested so re-enabling it
// is a one-line change in the handler.
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

// DefaultEndpoint renders via a hosted Stable Diffusion XL deployment.
const DefaultEndpoint = "https://router.huggingface.co/hf-inference/models/stabilityai/stable-diffusion-xl-base-1.0"

// DefaultTimeout bounds one image render. Generation is slow; 120 seconds
// matches the service's own worst case.
const DefaultTimeout = 120 * time.Second

// maxPromptSourceChars caps how much article text feeds the prompt-generation
// call.
const maxPromptSourceChars = 10000

// Completer is the auxiliary completion client used for prompt generation.
type Completer interface {
	Complete(ctx context.Context, cfg prompt.Config) (string, error)
}

// Generator produces illustrations for article content.
type Generator struct {
	Completer  Completer
	HTTPClient *http.Client
	// Endpoint of the image inference service. Empty means DefaultEndpoint.
	Endpoint string
	// APIKey is the inference service bearer credential.
	APIKey string
	// Timeout bounds one render. Zero means DefaultTimeout.
	Timeout time.Duration
}

// GeneratePrompt asks the completion service for a text-to-image prompt
// describing the article. Content beyond maxPromptSourceChars is dropped.
func (g *Generator) GeneratePrompt(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", referr.Errorf(referr.EValidation, "content must not be empty")
	}
	runes := []rune(content)
	if len(runes) > maxPromptSourceChars {
		content = string(runes[:maxPromptSourceChars])
	}
	out, err := g.Completer.Complete(ctx, prompt.Illustration(content))
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", referr.Errorf(referr.ENoResult, "could not generate an image prompt")
	}
	return out, nil
}

// Render sends promptText to the inference service and returns the image as
// a base64 data URL.
func (g *Generator) Render(ctx context.Context, promptText string) (string, error) {
	if g.APIKey == "" {
		return "", referr.Errorf(referr.EConfig, "image service credential is not configured")
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"inputs": promptText,
		"parameters": map[string]any{
			"num_inference_steps": 30,
			"guidance_scale":      7.5,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal render payload: %w", err)
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("new render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", referr.Errorf(referr.ETimeout, "timed out while generating the image")
		}
		return "", referr.Errorf(referr.ENetwork, "could not reach the image service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstreamError(resp)
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", referr.Errorf(referr.ENetwork, "could not read the generated image")
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img), nil
}

// Illustrate runs the full pipeline: prompt generation, then rendering.
func (g *Generator) Illustrate(ctx context.Context, content string) (promptText, dataURL string, err error) {
	promptText, err = g.GeneratePrompt(ctx, content)
	if err != nil {
		return "", "", err
	}
	dataURL, err = g.Render(ctx, promptText)
	if err != nil {
		return "", "", err
	}
	return promptText, dataURL, nil
}

func upstreamError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return referr.StatusErrorf(referr.EUpstream, resp.StatusCode, "image service error: %s", payload.Error)
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = resp.Status
	}
	return referr.StatusErrorf(referr.EUpstream, resp.StatusCode, "image service error: %s", msg)
}
