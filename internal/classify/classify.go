// Package classify maps sanitized article markup to an ordered sequence
// of typed content blocks ready for layout. It runs two passes over a
// freshly parsed tree: a filter pass that prunes boilerplate, then a
// read-only walk that emits blocks, so pruning never invalidates the
// traversal.
package classify

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Role is the semantic content role of a block.
type Role int

const (
	Paragraph Role = iota
	Heading
	Subheading
	Quote
	ListItem
)

func (r Role) String() string {
	switch r {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Subheading:
		return "subheading"
	case Quote:
		return "quote"
	case ListItem:
		return "listitem"
	default:
		return "unknown"
	}
}

// Block is one semantic unit of body content. Text is flattened and never
// empty; blocks that would be empty are dropped during classification.
// Ordinal is the 1-based position within the source list for ordered list
// items and zero otherwise.
type Block struct {
	Role    Role
	Text    string
	Ordinal int
}

// Blocks classifies content markup into an ordered block sequence. The
// walk covers top-level children of the body, recursing into div wrappers
// so a div contributes only its descendants, never a block of its own.
// Unrecognized elements are ignored.
func Blocks(contentHTML string) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil
	}

	doc.Find("script, style, button, form, nav").Remove()
	doc.Find("div.subscription-widget-wrap").Remove()
	removeReferencesSection(doc)

	var blocks []Block
	for _, bodyNode := range doc.Find("body").Nodes {
		for child := bodyNode.FirstChild; child != nil; child = child.NextSibling {
			classifyNode(child, &blocks)
		}
	}
	return blocks
}

// removeReferencesSection deletes a trailing citation dump: the first
// h1-h3 heading whose text equals "references" case-insensitively, plus
// every sibling after it up to the next h1-h3 heading. Only the first
// such section is removed.
func removeReferencesSection(doc *goquery.Document) {
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.EqualFold(flatten(heading.Text()), "References") {
			return true
		}
		heading.NextUntil("h1, h2, h3").Remove()
		heading.Remove()
		return false
	})
}

func classifyNode(n *html.Node, out *[]Block) {
	if n.Type != html.ElementNode {
		return
	}
	switch strings.ToLower(n.Data) {
	case "p":
		emit(out, Paragraph, nodeText(n), 0)
	case "h1", "h2":
		emit(out, Heading, nodeText(n), 0)
	case "h3":
		emit(out, Subheading, nodeText(n), 0)
	case "blockquote":
		emit(out, Quote, nodeText(n), 0)
	case "ul":
		for _, li := range directListItems(n) {
			emit(out, ListItem, prefixed("• ", nodeText(li)), 0)
		}
	case "ol":
		// Numbering counts emitted items only and resets per list.
		pos := 0
		for _, li := range directListItems(n) {
			text := nodeText(li)
			if text == "" {
				continue
			}
			pos++
			emit(out, ListItem, strconv.Itoa(pos)+". "+text, pos)
		}
	case "div":
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			classifyNode(child, out)
		}
	}
}

func emit(out *[]Block, role Role, text string, ordinal int) {
	if text == "" {
		return
	}
	*out = append(*out, Block{Role: role, Text: text, Ordinal: ordinal})
}

func prefixed(prefix, text string) string {
	if text == "" {
		return ""
	}
	return prefix + text
}

// directListItems returns the li elements that are direct children of a
// ul or ol node. Items of nested lists belong to their own list.
func directListItems(list *html.Node) []*html.Node {
	var items []*html.Node
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "li") {
			items = append(items, c)
		}
	}
	return items
}

// nodeText flattens the text nodes under n into a single normalized string.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return flatten(b.String())
}

// flatten collapses whitespace runs to single spaces, trims, and applies
// NFC so identical markup always yields byte-identical block text.
func flatten(s string) string {
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
	return norm.NFC.String(strings.TrimSpace(b.String()))
}
