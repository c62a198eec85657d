// Package extract turns raw HTML pages into normalized Article records.
// Two strategies exist: a Substack-specific one keyed off the platform's
// markup conventions, and a generic best-effort one for everything else.
// Extraction never fails; malformed or unexpected structure degrades to
// placeholder values and possibly empty content.
package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Placeholder values applied when a field cannot be resolved.
const (
	PlaceholderTitle  = "Untitled"
	PlaceholderAuthor = "Unknown Author"
)

// Article is one extracted piece of content. Title and Author are always
// non-empty; ContentHTML may be empty when no content container was found,
// which is a degraded but valid state.
type Article struct {
	Title       string
	Author      string
	Date        string
	ContentHTML string
	SourceURL   string
}

// Fetcher is the minimal retrieval surface the extractor needs for the
// single canonical-URL hop on Substack reader-view pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor dispatches extraction by URL shape. Fetcher may be nil, in
// which case reader-view pages are extracted as-is without resolving
// their canonical URL.
type Extractor struct {
	Fetcher Fetcher
}

// IsSubstackURL reports whether url points at the Substack platform.
func IsSubstackURL(url string) bool {
	return strings.Contains(url, "substack.com")
}

// Extract parses rawHTML into an Article using the strategy selected by
// the URL. It is deterministic: identical input yields an identical record.
func (e *Extractor) Extract(ctx context.Context, url, rawHTML string) Article {
	if IsSubstackURL(url) {
		return e.extractSubstack(ctx, url, rawHTML, true)
	}
	return extractGeneric(url, rawHTML)
}

// Byline composes the display author string from the resolved author and
// publication names. The publication clause is suppressed when it is
// missing or identical to the author.
func Byline(author, publication string) string {
	switch {
	case author != "" && publication != "" && author != publication:
		return "Written by " + author + " from " + publication
	case author != "":
		return "Written by " + author
	default:
		return PlaceholderAuthor
	}
}

// sanitizeOuterHTML removes the elements matched by removeSelector from
// the container and serializes what remains back to markup. Both
// strategies share this strip-then-serialize post-processing.
func sanitizeOuterHTML(container *goquery.Selection, removeSelector string) string {
	container.Find(removeSelector).Remove()
	markup, err := goquery.OuterHtml(container)
	if err != nil {
		return ""
	}
	return markup
}

// flatText returns the selection's text with whitespace runs collapsed to
// single spaces and surrounding whitespace trimmed.
func flatText(sel *goquery.Selection) string {
	return collapseSpaces(sel.Text())
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}

// extractDate returns the first time element's machine-readable datetime
// attribute, falling back to its displayed text. Absent, it returns "".
func extractDate(doc *goquery.Document) string {
	t := doc.Find("time").First()
	if t.Length() == 0 {
		return ""
	}
	if dt, ok := t.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	return flatText(t)
}

// fallbackTitle resolves the document title element text, used when a
// strategy's primary title heuristic finds nothing.
func fallbackTitle(doc *goquery.Document) string {
	return flatText(doc.Find("title").First())
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
