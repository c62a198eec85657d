package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// isReaderViewURL reports whether url is a Substack reader-view rendering,
// a proxy path that wraps the canonical article.
func isReaderViewURL(url string) bool {
	return strings.Contains(url, "/home/post/")
}

// extractSubstack pulls an Article out of Substack markup. Reader-view
// pages are redirected to their canonical URL once: the re-fetched markup
// is extracted with the hop consumed, so a malformed canonical chain can
// never loop. A missing canonical link or a failed re-fetch falls back to
// extracting the reader-view markup as-is.
func (e *Extractor) extractSubstack(ctx context.Context, url, rawHTML string, allowCanonicalHop bool) Article {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Article{Title: PlaceholderTitle, Author: PlaceholderAuthor, SourceURL: url}
	}

	if allowCanonicalHop && isReaderViewURL(url) && e.Fetcher != nil {
		if canonical, ok := canonicalURL(doc); ok {
			if canonicalHTML, err := e.Fetcher.Fetch(ctx, canonical); err == nil {
				return e.extractSubstack(ctx, canonical, canonicalHTML, false)
			}
		}
	}

	title := flatText(doc.Find("h1.post-title").First())
	if title == "" {
		title = fallbackTitle(doc)
	}

	author := Byline(substackAuthor(doc), substackPublication(doc))
	date := extractDate(doc)

	var contentHTML string
	if container := substackContent(doc); container != nil {
		contentHTML = sanitizeOuterHTML(container, "script, style, button, form")
	}

	return Article{
		Title:       orPlaceholder(title, PlaceholderTitle),
		Author:      author,
		Date:        date,
		ContentHTML: contentHTML,
		SourceURL:   url,
	}
}

func canonicalURL(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return strings.TrimSpace(href), true
}

// substackPublication locates the masthead heading, an h1 whose class
// attribute mentions "title", and takes the text of its link to the site
// root. Logo-only mastheads fall back to the logo image's alt text.
func substackPublication(doc *goquery.Document) string {
	var publication string
	doc.Find("h1").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		class, _ := h.Attr("class")
		if !strings.Contains(class, "title") {
			return true
		}
		link := h.Find(`a[href="/"]`).First()
		if link.Length() == 0 {
			return false
		}
		publication = flatText(link)
		if publication == "" {
			if alt, ok := link.Find("img[alt]").First().Attr("alt"); ok {
				publication = strings.TrimSpace(alt)
			}
		}
		return false
	})
	return publication
}

// substackAuthor scans links to per-author profile URLs and returns the
// first with non-empty text.
func substackAuthor(doc *goquery.Document) string {
	var author string
	doc.Find(`a[href^="https://substack.com/@"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if text := flatText(link); text != "" {
			author = text
			return false
		}
		return true
	})
	return author
}

// substackContent picks the article body container: the available-content
// region, then the body div, then the first article element.
func substackContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"div.available-content", "div.body", "article"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}
