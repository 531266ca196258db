// Package budget approximates token budgets from character counts so the
// pipeline can decide when an article no longer fits a single completion
// request.
package budget

import (
	"math"
	"unicode/utf8"
)

// CharsPerToken is a conservative chars-per-token ratio. English text runs
// closer to 4, but prompts mix markup and non-ASCII, so 3 keeps us under the
// model limit.
const CharsPerToken = 3

// MaxContentChars is the largest article body sent to the completion service
// in one request (roughly 6000-7000 tokens at CharsPerToken).
const MaxContentChars = 20000

// EstimateTokens returns the estimated token count of s. The result is at
// least 1 for any non-empty string.
func EstimateTokens(s string) int {
	n := utf8.RuneCountInString(s)
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / CharsPerToken))
}

// ExceedsLimit reports whether content is too large for a single request
// against the given character limit. A non-positive limit means
// MaxContentChars.
func ExceedsLimit(content string, limit int) bool {
	if limit <= 0 {
		limit = MaxContentChars
	}
	return utf8.RuneCountInString(content) > limit
}
