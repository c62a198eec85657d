// Package layout arranges classified article blocks into a styled,
// three-column paginated PDF in the manner of a printed newspaper.
// Content flows continuously from column to column and page to page;
// there are no forced breaks between articles.
package layout

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/gonewsprint/internal/classify"
	"github.com/hyperifyio/gonewsprint/internal/extract"
)

// DefaultMasthead is the fixed title printed at the top of the document.
const DefaultMasthead = "THE WEEKLY"

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 15.0
	marginBottom = 15.0
	columnGap    = 5.0
	columnCount  = 3
	columnWidth  = (pageWidth - marginLeft - marginRight - (columnCount-1)*columnGap) / columnCount
)

// Story pairs one article's metadata with its classified content blocks.
type Story struct {
	Article extract.Article
	Blocks  []classify.Block
}

// Engine renders stories into a finished PDF. The zero value renders with
// the default masthead.
type Engine struct {
	Masthead string
}

func (e *Engine) masthead() string {
	if e.Masthead != "" {
		return e.Masthead
	}
	return DefaultMasthead
}

// Render lays out the stories in order and writes the finished PDF to w.
// The date appears under the masthead formatted as a full weekday line.
func (e *Engine) Render(date time.Time, stories []Story, w io.Writer) error {
	if len(stories) == 0 {
		return errors.New("layout: no stories to render")
	}

	r := newRenderer()

	r.paragraph(styleMasthead, e.masthead())
	r.paragraph(styleDate, date.Format("Monday, January 2, 2006"))
	r.rule(0.6)
	r.spacer(3)

	for i, story := range stories {
		if i > 0 {
			r.spacer(5)
			r.rule(0.3)
			r.spacer(3)
		}
		r.paragraph(styleArticleTitle, story.Article.Title)
		meta := story.Article.Author
		if story.Article.Date != "" {
			meta += " • " + story.Article.Date
		}
		r.paragraph(styleArticleMeta, meta)
		for _, block := range story.Blocks {
			r.paragraph(blockStyle(block.Role), block.Text)
		}
	}

	if r.pdf.Err() {
		return r.pdf.Error()
	}
	return r.pdf.Output(w)
}

// RenderFile renders to a file at path, creating it if needed.
func (e *Engine) RenderFile(date time.Time, stories []Story, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Render(date, stories, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// style describes the typography of one flowable paragraph.
type style struct {
	fontStyle   string // "", "B", "I"
	size        float64
	lineHeight  float64
	align       string
	indent      float64
	spaceBefore float64
	spaceAfter  float64
	gray        int // text color, equal RGB components
}

var (
	styleMasthead     = style{fontStyle: "B", size: 28, lineHeight: 12, align: "C", spaceAfter: 7.5}
	styleDate         = style{fontStyle: "I", size: 10, lineHeight: 5, align: "C", spaceAfter: 5}
	styleArticleTitle = style{fontStyle: "B", size: 16, lineHeight: 7, align: "L", spaceBefore: 3, spaceAfter: 2}
	styleArticleMeta  = style{fontStyle: "I", size: 9, lineHeight: 4.5, align: "L", spaceAfter: 3, gray: 102}
	styleBody         = style{size: 10, lineHeight: 5, align: "L", spaceAfter: 3, gray: 26}
	styleHeading      = style{fontStyle: "B", size: 12, lineHeight: 5.5, align: "L", spaceBefore: 4, spaceAfter: 2}
	styleSubheading   = style{fontStyle: "B", size: 11, lineHeight: 5, align: "L", spaceBefore: 3, spaceAfter: 2}
	styleQuote        = style{fontStyle: "I", size: 10, lineHeight: 5, align: "L", indent: 5, spaceAfter: 3, gray: 85}
)

func blockStyle(role classify.Role) style {
	switch role {
	case classify.Heading:
		return styleHeading
	case classify.Subheading:
		return styleSubheading
	case classify.Quote:
		return styleQuote
	default:
		return styleBody
	}
}

// renderer drives gofpdf through the three-column flow. Column switching
// rides on the page-break hook: the first two times the cursor hits the
// bottom the renderer moves to the next column instead of a new page.
type renderer struct {
	pdf *gofpdf.Fpdf
	col int
	// tr maps UTF-8 to the core-font codepage so bullets and typographic
	// punctuation survive.
	tr func(string) string
}

func newRenderer() *renderer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetAcceptPageBreakFunc(func() bool {
		if r.col < columnCount-1 {
			r.setColumn(r.col + 1)
			pdf.SetY(marginTop)
			return false
		}
		r.setColumn(0)
		return true
	})
	pdf.AddPage()
	r.setColumn(0)
	return r
}

func (r *renderer) setColumn(col int) {
	r.col = col
	x := marginLeft + float64(col)*(columnWidth+columnGap)
	r.pdf.SetLeftMargin(x)
	r.pdf.SetRightMargin(pageWidth - x - columnWidth)
	r.pdf.SetX(x)
}

// ensureRoom advances to the next column or page when fewer than h
// millimeters remain, so rules and headings are not orphaned at a column
// bottom.
func (r *renderer) ensureRoom(h float64) {
	if r.pdf.GetY()+h <= pageHeight-marginBottom {
		return
	}
	if r.col < columnCount-1 {
		r.setColumn(r.col + 1)
		r.pdf.SetY(marginTop)
		return
	}
	r.pdf.AddPage()
	r.setColumn(0)
	r.pdf.SetY(marginTop)
}

func (r *renderer) paragraph(st style, text string) {
	if text == "" {
		return
	}
	if st.spaceBefore > 0 {
		r.pdf.Ln(st.spaceBefore)
	}
	r.ensureRoom(st.lineHeight)
	r.pdf.SetFont("Times", st.fontStyle, st.size)
	r.pdf.SetTextColor(st.gray, st.gray, st.gray)
	if st.indent > 0 {
		left, _, _, _ := r.pdf.GetMargins()
		r.pdf.SetLeftMargin(left + st.indent)
		r.pdf.SetX(left + st.indent)
		r.pdf.MultiCell(0, st.lineHeight, r.tr(text), "", st.align, false)
		// Recompute from the current column: the cell may have crossed
		// a column boundary, which resets the margins.
		r.pdf.SetLeftMargin(marginLeft + float64(r.col)*(columnWidth+columnGap))
	} else {
		r.pdf.MultiCell(0, st.lineHeight, r.tr(text), "", st.align, false)
	}
	if st.spaceAfter > 0 {
		r.pdf.Ln(st.spaceAfter)
	}
}

// rule draws a horizontal line across the current column.
func (r *renderer) rule(thickness float64) {
	r.ensureRoom(thickness + 2)
	left, _, _, _ := r.pdf.GetMargins()
	y := r.pdf.GetY()
	r.pdf.SetLineWidth(thickness)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.Line(left, y, left+columnWidth, y)
	r.pdf.SetY(y + thickness + 1)
}

func (r *renderer) spacer(h float64) {
	r.pdf.Ln(h)
}
