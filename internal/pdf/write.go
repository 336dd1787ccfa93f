package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/muesli/reflow/wordwrap"
)

// ErrEmptyText is returned when there is nothing to write.
var ErrEmptyText = errors.New("no text to write")

// WriteOptions controls the layout of generated PDFs. Zero values fall
// back to the historical defaults (Times 12pt, 18mm margins, A4).
type WriteOptions struct {
	Font     string
	FontSize float64
	MarginMM float64
	Title    string
}

func (o WriteOptions) withDefaults() WriteOptions {
	if o.Font == "" {
		o.Font = "Times"
	}
	if o.FontSize == 0 {
		o.FontSize = 12
	}
	if o.MarginMM == 0 {
		o.MarginMM = 18
	}
	if o.Title == "" {
		o.Title = "Transcription"
	}
	return o
}

// points to millimeters
const ptToMM = 25.4 / 72.0

// Write lays text onto A4 pages with a fixed font and margins, wrapping
// long lines, and saves the result. The file is written to a temporary
// name and renamed, so a failed conversion leaves no output behind.
func Write(text, path string, opts WriteOptions) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	opts = opts.withDefaults()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(opts.Title, true)
	doc.SetMargins(opts.MarginMM, opts.MarginMM, opts.MarginMM)
	doc.SetAutoPageBreak(true, opts.MarginMM)
	doc.AddPage()
	doc.SetFont(opts.Font, "", opts.FontSize)

	pageWidth, _ := doc.GetPageSize()
	usable := pageWidth - 2*opts.MarginMM
	// Wrap by character count against an average glyph width of half the
	// font size, the same naive budget the layout has always used.
	charWidth := opts.FontSize * 0.5 * ptToMM
	maxChars := int(usable / charWidth)
	if maxChars < 1 {
		maxChars = 1
	}
	lineHeight := opts.FontSize * ptToMM * 1.35

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(text, "\n") {
		wrapped := wordwrap.String(line, maxChars)
		for _, out := range strings.Split(wrapped, "\n") {
			doc.CellFormat(usable, lineHeight, tr(out), "", 1, "L", false, 0, "")
		}
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("unable to render PDF: %w", err)
	}

	tmp := path + ".tmp"
	if err := doc.OutputFileAndClose(tmp); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("unable to write PDF: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("unable to write PDF: %w", err)
	}
	return nil
}
