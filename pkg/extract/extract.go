// Package extract is the format-specific text extraction boundary of the
// ingestion pipeline. It turns raw upload bytes into ordered page texts;
// everything past this point is format-agnostic.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedFormat = errors.New("extract: unsupported file type")
	ErrExtractionFailed  = errors.New("extract: failed to extract text")
)

// Result is the ordered per-page extraction of one upload. Non paged
// formats yield a single page.
type Result struct {
	Pages     []string
	PageCount int
}

// PageBreak joins page texts in the stored full text so chunk spans can be
// mapped back to pages.
const (
	PageBreak     = "\f"
	PageBreakRune = '\f'
)

// FullText joins pages with the page-break marker.
func (r Result) FullText() string {
	return strings.Join(r.Pages, PageBreak)
}

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".log": true, ".json": true,
}

// Extract dispatches on mime type and filename extension. Text-like content
// is decoded as UTF-8, PDFs are read page by page; anything else is
// ErrUnsupportedFormat.
func Extract(raw []byte, filename, mime string) (Result, error) {
	mime = strings.ToLower(mime)
	lower := strings.ToLower(filename)

	switch {
	case strings.HasPrefix(mime, "text/"), strings.HasSuffix(mime, "/json"), hasTextExtension(lower):
		return extractText(raw)
	case mime == "application/pdf", strings.HasSuffix(lower, ".pdf"):
		return extractPDF(raw)
	default:
		return Result{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, filename, mime)
	}
}

func hasTextExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return textExtensions[filename[idx:]]
}

func extractText(raw []byte) (Result, error) {
	if !utf8.Valid(raw) {
		// Salvage what we can instead of refusing the whole upload.
		raw = bytes.ToValidUTF8(raw, []byte("�"))
	}
	return Result{Pages: []string{string(raw)}, PageCount: 1}, nil
}

func extractPDF(raw []byte) (Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: open pdf: %v", ErrExtractionFailed, err)
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, fmt.Errorf("%w: page %d: %v", ErrExtractionFailed, i, err)
		}
		pages = append(pages, text)
	}
	return Result{Pages: pages, PageCount: numPages}, nil
}
