package transform

import (
	"regexp"
	"strings"
)

// Models often wrap the source URL in Markdown despite being told not to.
// [url](url) and [url] both reduce to the bare url.
var (
	markdownLinkRe = regexp.MustCompile(`\[(https?://[^\]]+)\]\(https?://[^)]+\)`)
	bracketLinkRe  = regexp.MustCompile(`\[(https?://[^\]]+)\]`)
)

// NormalizeSourceLinks reduces markdown-wrapped URLs to bare URLs. The
// operation is idempotent: applying it to its own output is a no-op.
func NormalizeSourceLinks(s string) string {
	s = markdownLinkRe.ReplaceAllString(s, "$1")
	return bracketLinkRe.ReplaceAllString(s, "$1")
}

// AttributionLine is the fixed source reference appended to social posts that
// lack one.
func AttributionLine(sourceURL string) string {
	return "📎 Source: " + sourceURL
}

// HasAttribution reports whether the text already references the source: the
// bare URL, a case-insensitive "source:" marker, or the fixed attribution
// prefix.
func HasAttribution(s, sourceURL string) bool {
	if sourceURL != "" && strings.Contains(s, sourceURL) {
		return true
	}
	if strings.Contains(strings.ToLower(s), "source:") {
		return true
	}
	return strings.Contains(s, "📎 Source")
}
