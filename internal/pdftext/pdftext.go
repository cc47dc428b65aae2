// Package pdftext extracts plain text from PDF statement files, page by
// page. The extraction is hidden behind an interface so the statement
// extractor can be tested without real PDF fixtures.
package pdftext

import (
	"bytes"
	"fmt"
	"os"

	"hsouza/julius/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// PageSource defines the interface for extracting per-page text from a
// PDF file. Implementations return one string per page, in page order.
type PageSource interface {
	// ExtractPages extracts the text of every page of the PDF at the
	// given path. Returns one string per page or an error if the file
	// cannot be read.
	ExtractPages(pdfPath string) ([]string, error)
}

// PDFPageSource implements PageSource on top of the pdf library.
// This is the production implementation.
type PDFPageSource struct{}

// NewPDFPageSource creates a new PDFPageSource instance.
func NewPDFPageSource() *PDFPageSource {
	return &PDFPageSource{}
}

// ExtractPages extracts the text of every page from a PDF file.
func (s *PDFPageSource) ExtractPages(pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		if _, statErr := os.Stat(pdfPath); statErr != nil {
			return nil, fmt.Errorf("failed to open PDF %s: %w", pdfPath, statErr)
		}
		// The file exists but the library rejects it: not a PDF.
		return nil, &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		var buf bytes.Buffer
		rows, err := page.GetTextByRow()
		if err != nil {
			// A single unreadable page must not sink the whole
			// statement; the extractor counts what it skips.
			pages = append(pages, "")
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
				buf.WriteString(" ")
			}
			buf.WriteString("\n")
		}
		pages = append(pages, buf.String())
	}

	return pages, nil
}

// MockPageSource implements PageSource for testing purposes.
// It returns predefined pages instead of reading a PDF file.
type MockPageSource struct {
	Pages []string
	Err   error
}

// NewMockPageSource creates a new MockPageSource with the given pages.
func NewMockPageSource(pages []string, err error) *MockPageSource {
	return &MockPageSource{Pages: pages, Err: err}
}

// ExtractPages returns the predefined pages or error.
func (s *MockPageSource) ExtractPages(pdfPath string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Pages, nil
}
