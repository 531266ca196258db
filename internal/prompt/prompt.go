// Package prompt builds the per-action prompt configuration sent to the
// completion service. Configurations are derived deterministically from the
// action, the article body, and an optional source URL; they are never
// mutated after construction.
package prompt

import (
	"fmt"
	"strings"

	"github.com/soal8877-ctrl/referent/internal/referr"
)

// Action selects the requested transformation.
type Action string

const (
	// ActionSummarize produces a short structured summary of the article.
	ActionSummarize Action = "summary"
	// ActionTheses extracts the article's main theses as a numbered list.
	ActionTheses Action = "thesis"
	// ActionSocialPost composes a social-media post with source attribution.
	ActionSocialPost Action = "telegram"
)

// Actions lists the valid transformation actions in a stable order.
var Actions = []Action{ActionSummarize, ActionTheses, ActionSocialPost}

// Parse validates a raw action string.
func Parse(raw string) (Action, error) {
	a := Action(strings.TrimSpace(raw))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", referr.Errorf(referr.EValidation, "action must be one of: %s, %s, %s",
		ActionSummarize, ActionTheses, ActionSocialPost)
}

// Config is a complete prompt for one completion request.
type Config struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Build returns the prompt configuration for a transformation action.
func Build(action Action, content string, sourceURL string) (Config, error) {
	switch action {
	case ActionSummarize:
		return Config{
			System: "You are an experienced analyst and journalist. Your task is to produce a " +
				"brief but informative summary of an article. Your answer must be structured, " +
				"clear, and contain only the key ideas of the article.",
			User: "Write a summary of the following article (2-3 paragraphs), highlighting " +
				"the main ideas and key points. The answer must be informative and easy to read:\n\n" + content,
			Temperature: 0.5,
			MaxTokens:   2000,
		}, nil
	case ActionTheses:
		return Config{
			System: "You are an expert in text analysis. Your task is to extract the main theses " +
				"of an article in a structured form. Each thesis must be a self-contained statement " +
				"reflecting an important idea from the article.",
			User: "Extract the main theses of the following article. Present them as a numbered " +
				"list where every item is a separate thesis. Theses must be concise but informative:\n\n" + content,
			Temperature: 0.4,
			MaxTokens:   2500,
		}, nil
	case ActionSocialPost:
		user := "Create a social-media post based on the following article. The post must:\n" +
			"- Hook the reader from the first line\n" +
			"- Convey the article's main ideas in condensed form\n" +
			"- Use emoji for visual structure (without overdoing it)\n" +
			"- End with a call to action\n" +
			"- Be structured: a headline (emoji allowed), body text, hashtags at the end\n" +
			"- At the very end include a link to the source article in the form " +
			"\"📎 Source: [URL]\" where [URL] is just the URL without square or round brackets, " +
			"for example: \"📎 Source: https://example.com/article\"\n\n" +
			"IMPORTANT: Do not use Markdown format for the link (do not write [text](url)). " +
			"Just write the URL after \"Source:\".\n\nArticle:\n" + content
		if sourceURL != "" {
			user += fmt.Sprintf("\n\nArticle source: %s", sourceURL)
		}
		return Config{
			System: "You are a copywriter specializing in social-media posts. Your task is to " +
				"create an appealing and informative post. The post must be structured, use emoji " +
				"for visual appeal, and end with a call to action.",
			User:        user,
			Temperature: 0.7,
			MaxTokens:   3000,
		}, nil
	}
	return Config{}, referr.Errorf(referr.EValidation, "action must be one of: %s, %s, %s",
		ActionSummarize, ActionTheses, ActionSocialPost)
}

// Translate returns the prompt configuration for translating article text.
func Translate(content string) Config {
	return Config{
		System: "You are a professional translator. Translate the following text into English, " +
			"preserving the structure and style of the original.",
		User:        "Translate the following text into English:\n\n" + content,
		Temperature: 0.3,
		MaxTokens:   4000,
	}
}

// Illustration returns the prompt configuration that asks the model for a
// text-to-image prompt describing the article's key visual concept.
func Illustration(content string) Config {
	return Config{
		System: "You are an assistant that writes prompts for image generation. Create a short " +
			"but detailed English prompt for an illustration of an article. The prompt must " +
			"describe the article's key visual concept, be concrete, and suit a text-to-image " +
			"model. Return only the prompt, without extra explanation.",
		User:        "Create an image-generation prompt based on the following article:\n\n" + content,
		Temperature: 0.7,
		MaxTokens:   200,
	}
}
