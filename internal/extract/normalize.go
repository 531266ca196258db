package extract

import (
	"html"
	"regexp"
	"strings"
)

// cssFragmentRules remove stylesheet fragments that leak into text extracted
// from component-based markup (styled-components, CSS-in-JS, shadow DOM).
// The list is a best-effort denylist tuned to observed patterns; extend it
// when a new leak shape shows up rather than trying to parse CSS properly.
var cssFragmentRules = []*regexp.Regexp{
	// custom-property declarations: --accent-color: #fff;
	regexp.MustCompile(`--[\w-]+\s*:\s*[^;{}]+;?`),
	// @-rules: @media (max-width: 600px), @keyframes spin, @import url(...)
	// Named explicitly so that @-mentions in prose survive.
	regexp.MustCompile(`@(?:media|supports|keyframes|font-face|import|charset|namespace|layer|container|page|property)\b[^{};\n]*`),
	// functional notations: var(--x), calc(100% - 2px), rgb(0, 0, 0)
	regexp.MustCompile(`\b(?:var|calc|rgba?|hsla?|url|clamp|min|max)\([^()]*\)`),
	// hex colors
	regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`),
	// selector-brace blocks: .foo { display: none }
	regexp.MustCompile(`[.#]?[\w-]+(?:\s*[>+~,]\s*[.#]?[\w-]+)*\s*\{[^{}]*\}`),
}

// cssLineRules drop whole lines that still read as pure CSS after the
// fragment passes.
var cssLineRules = []*regexp.Regexp{
	// a selector opening a block: .article-card:hover {
	regexp.MustCompile(`^\s*[.#&]?[\w-]+(?:\s*[>+~.,:#]\s*[\w-]+)*\s*\{\s*$`),
	// a declaration: font-weight: 600;
	regexp.MustCompile(`^\s*[-\w]+\s*:\s*[^;{}]+;\s*\}?\s*$`),
	// shadow-DOM pseudo selectors: ::part(label), :host
	regexp.MustCompile(`^\s*::?[\w-]+(?:\([^()]*\))?\s*\{?\s*$`),
	// leftover braces and separators
	regexp.MustCompile(`^[\s{};,]+$`),
}

// Normalize cleans extracted body text: decodes residual HTML entities,
// scrubs leaked CSS, collapses whitespace runs to single spaces, and
// collapses multiple blank lines.
func Normalize(text string) string {
	text = html.UnescapeString(text)
	text = scrubCSS(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) == 0 {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func scrubCSS(text string) string {
	for _, re := range cssFragmentRules {
		text = re.ReplaceAllString(text, "")
	}
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if looksLikeCSS(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func looksLikeCSS(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, re := range cssLineRules {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}
