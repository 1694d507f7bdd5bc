package pdftext

import (
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

const (
	DefaultMaxPages = 8
	QuizMaxPages    = 5

	TruncationNote = "[Note: PDF truncated to first few pages for faster processing.]"

	pageSeparator = "\n\n"
)

// pageSource is the slice of a parsed document the joiner needs.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error) // 1-based
}

type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract reads the PDF at path and returns the text of at most maxPages pages.
// A non-positive maxPages means DefaultMaxPages.
func (e *Extractor) Extract(path string, maxPages int) (text string, err error) {
	// ledongthuc/pdf panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("pdf open %s: %w", path, err)
	}
	defer f.Close()

	return joinPages(readerSource{r: r}, maxPages)
}

func joinPages(src pageSource, maxPages int) (string, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	total := src.NumPage()
	n := total
	if n > maxPages {
		n = maxPages
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		t, err := src.PageText(i)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		pages = append(pages, t)
	}

	text := strings.Join(pages, pageSeparator)
	if total > maxPages {
		text += pageSeparator + TruncationNote
	}
	return text, nil
}

type readerSource struct {
	r *pdf.Reader
}

func (s readerSource) NumPage() int { return s.r.NumPage() }

func (s readerSource) PageText(i int) (string, error) {
	p := s.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
