// Package pdf reads text out of PDF files and writes plain text into new
// ones. Extraction only sees the embedded text layer; scanned (image-only)
// PDFs come back empty, which callers are expected to warn about.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidPageRange is returned when a requested page range does not fit
// the document.
var ErrInvalidPageRange = errors.New("invalid page range")

// PageRange selects pages 1-based and inclusive. Zero values mean "from the
// first page" and "to the last page" respectively.
type PageRange struct {
	Start int
	End   int
}

// Full reports whether the range covers the whole document.
func (r PageRange) Full() bool {
	return r.Start == 0 && r.End == 0
}

// Extract returns the text layer of a PDF, pages joined in page order with
// a newline. A page whose extraction fails contributes an empty string;
// the document as a whole still extracts.
func Extract(path string, pages PageRange) (string, error) {
	if st, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("unable to open PDF: %w", err)
	} else if st.Size() == 0 {
		return "", fmt.Errorf("unable to open PDF: %s is empty", path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to parse PDF %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	n := r.NumPage()
	start, end := pages.Start, pages.End
	if start == 0 {
		start = 1
	}
	if end == 0 || end > n {
		end = n
	}
	if start < 1 || start > end {
		return "", fmt.Errorf("%w: %d-%d of %d pages", ErrInvalidPageRange, pages.Start, pages.End, n)
	}

	fonts := make(map[string]*pdf.Font)
	var parts []string
	for i := start; i <= end; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			parts = append(parts, "")
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			// Keep page order intact even when a single page is broken.
			text = ""
		}
		parts = append(parts, text)
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
