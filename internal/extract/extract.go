// Package extract derives {title, publish date, body text} from arbitrary
// article HTML using ordered selector heuristics. It is best-effort: pages it
// cannot make sense of yield "not found" sentinels rather than errors.
package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Sentinels returned when a field cannot be derived from the page.
const (
	TitleNotFound = "title not found"
	DateNotFound  = "date not found"
	BodyNotFound  = "content not found"
)

// Acceptance thresholds. Short matches are usually labels or navigation
// chrome, not the article itself.
const (
	minTitleChars = 10
	minBodyChars  = 100
)

// Article is the extraction result. PublishedAt is the raw date text as it
// appears on the page, never parsed.
type Article struct {
	Title       string
	PublishedAt string
	Body        string
}

// titleSelectors are tried in order of article-specificity; the first match
// longer than minTitleChars wins.
var titleSelectors = []string{
	"h1",
	"article h1",
	".post-title",
	".article-title",
	`[class*="title"]`,
	"title",
}

// dateSelectors favor machine-readable datetime attributes over visible text.
var dateSelectors = []string{
	"time[datetime]",
	"time",
	`[class*="date"]`,
	`[class*="published"]`,
	`[class*="time"]`,
	"article time",
	".post-date",
	".article-date",
	`[itemprop="datePublished"]`,
}

// bodySelectors are tried in order; the first container yielding more than
// minBodyChars of stripped text wins.
var bodySelectors = []string{
	"article",
	".post",
	".content",
	".article-content",
	".post-content",
	`[class*="article"]`,
	`[class*="post"]`,
	"main article",
	`[role="article"]`,
}

// stripSelector removes non-content subtrees before text extraction: code,
// navigation, ads, forms, interactive widgets, embedded media, and elements
// carrying inline styles (component frameworks leak style text through them).
const stripSelector = `script, style, noscript, nav, header, footer, aside, ` +
	`form, button, iframe, embed, object, video, audio, svg, ` +
	`.ad, .advertisement, [class*="ad"], [style]`

// FromHTML extracts an Article from raw page markup. It never fails: fields
// that cannot be derived come back as sentinels and the caller decides
// whether that is an error.
func FromHTML(input []byte) Article {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Article{Title: TitleNotFound, PublishedAt: DateNotFound, Body: BodyNotFound}
	}
	return Article{
		Title:       findTitle(doc),
		PublishedAt: findDate(doc),
		Body:        findBody(doc),
	}
}

func findTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if utf8.RuneCountInString(text) > minTitleChars {
			return collapseInline(text)
		}
	}
	if text := strings.TrimSpace(doc.Find("title").First().Text()); text != "" {
		return collapseInline(text)
	}
	return TitleNotFound
}

func findDate(doc *goquery.Document) string {
	for _, sel := range dateSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if dt, ok := el.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			return strings.TrimSpace(dt)
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return collapseInline(text)
		}
	}
	return DateNotFound
}

func findBody(doc *goquery.Document) string {
	for _, sel := range bodySelectors {
		if text := containerText(doc.Find(sel).First()); utf8.RuneCountInString(text) > minBodyChars {
			return text
		}
	}
	// Last resort: a generic main-content landmark with the same stripping.
	if text := containerText(doc.Find("main").First()); text != "" {
		return text
	}
	return BodyNotFound
}

// containerText strips the denylist from a clone of the container and
// collects its normalized text. Cloning keeps the document intact for the
// next selector in the table.
func containerText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	clone := sel.Clone()
	clone.Find(stripSelector).Remove()

	var b strings.Builder
	for _, n := range clone.Nodes {
		collectText(&b, n)
	}
	return Normalize(b.String())
}

// collectText walks the node tree appending text content, inserting newlines
// around block-level elements so sentences from adjacent blocks do not fuse.
func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && isBlock(n.Data) {
		b.WriteString("\n")
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.Data) {
		b.WriteString("\n")
	}
}

func isBlock(tag string) bool {
	switch strings.ToLower(tag) {
	case "p", "div", "section", "h1", "h2", "h3", "h4", "h5", "h6",
		"li", "ul", "ol", "blockquote", "pre", "br", "tr", "table", "figcaption":
		return true
	}
	return false
}

// collapseInline reduces internal whitespace runs in a single-line field.
func collapseInline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
