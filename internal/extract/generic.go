package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractGeneric is the best-effort strategy for unknown sites. It works
// for plainly structured articles; JavaScript-rendered pages and exotic
// layouts degrade to placeholders and possibly empty content.
func extractGeneric(url, rawHTML string) Article {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Article{Title: PlaceholderTitle, Author: PlaceholderAuthor, SourceURL: url}
	}

	title := flatText(doc.Find("h1").First())
	if title == "" {
		title = fallbackTitle(doc)
	}

	author := PlaceholderAuthor
	if content, ok := doc.Find(`meta[name="author"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		author = strings.TrimSpace(content)
	}

	date := extractDate(doc)

	var contentHTML string
	if container := genericContent(doc); container != nil {
		contentHTML = sanitizeOuterHTML(container, "script, style, nav, header, footer, aside")
	}

	return Article{
		Title:       orPlaceholder(title, PlaceholderTitle),
		Author:      author,
		Date:        date,
		ContentHTML: contentHTML,
		SourceURL:   url,
	}
}

// genericContent tries common article containers in priority order, then
// falls back to the longest-text div heuristic.
func genericContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"article", "div.article", "div.content", "div.post", "main"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return longestDiv(doc)
}

// longestDiv returns the div with the greatest total text length anywhere
// in the document; the first of maximal length wins. This is a cheap
// heuristic for the main content block on unknown page structures and is
// kept isolated here so the generic strategy can swap it out without
// touching the Substack path.
func longestDiv(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	maxLen := 0
	doc.Find("div").Each(func(_ int, div *goquery.Selection) {
		if n := len(div.Text()); n > maxLen {
			maxLen = n
			best = div
		}
	})
	return best
}
