package document

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// extractPDF opens the byte stream as a paginated PDF and extracts the
// plain text of every page in physical order, starting at page 1. A page
// whose text cannot be extracted yields an empty string, never an error.
func extractPDF(data []byte) (doc *PDFDocument, err error) {
	// The pdf reader panics on some malformed cross-reference tables
	// instead of returning an error; fold that into a parse failure.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ParseError{Format: FormatPDF, Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Format: FormatPDF, Err: err}
	}

	total := reader.NumPage()
	pages := make([]Page, 0, total)
	for num := 1; num <= total; num++ {
		page := reader.Page(num)

		var text string
		if !page.V.IsNull() {
			if extracted, err := page.GetPlainText(nil); err == nil {
				text = extracted
			}
		}

		pages = append(pages, Page{Number: num, Text: text})
	}

	return &PDFDocument{Pages: pages, PageCount: total}, nil
}
