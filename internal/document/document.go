// Package document converts downloaded ticket attachments (PDF or Word
// .docx) into a normalized text payload ready for an LLM prompt.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Media types recognized by the extractor. Matching is by substring, since
// trackers commonly append charset parameters to the header value.
const (
	MediaTypePDF       = "application/pdf"
	MediaTypeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeLegacyDoc = "application/msword"
)

// Format identifies the source format of an extracted document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "docx"
)

var (
	// ErrUnsupportedFormat reports a media type the extractor cannot
	// handle at all.
	ErrUnsupportedFormat = errors.New("unsupported attachment format: only .docx and PDF files can be reviewed")

	// ErrLegacyFormat reports the legacy binary Word format, rejected
	// distinctly so the operator can ask for a .docx re-upload.
	ErrLegacyFormat = errors.New("legacy .doc format is not supported, please convert the file to .docx and upload again")
)

// ParseError reports a byte stream that could not be parsed as a
// well-formed document of its declared format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Raw is a downloaded attachment before extraction: the binary content and
// the media type the source declared for it. Extraction never mutates it.
type Raw struct {
	Bytes     []byte
	MediaType string
}

// Document is a normalized extraction result. The two source formats have
// structurally different text models, so no schema is shared beyond the
// prompt payload the orchestrator forwards to the review model.
type Document interface {
	// PromptText renders the document as the text payload submitted for
	// review.
	PromptText() string

	// SourceFormat reports which extraction path produced the document.
	SourceFormat() Format
}

// Page is the extracted plain text of a single PDF page.
type Page struct {
	Number int
	Text   string
}

// PDFDocument is the extraction result of a paginated PDF: page texts in
// the document's physical order.
type PDFDocument struct {
	Pages     []Page
	PageCount int
}

// SourceFormat implements Document.
func (d *PDFDocument) SourceFormat() Format { return FormatPDF }

// PromptText renders the pages as one delimited string wrapped in the JSON
// payload shape the review prompt embeds: every page prefixed with a
// numbered delimiter line and followed by a blank line.
func (d *PDFDocument) PromptText() string {
	var text strings.Builder
	for _, page := range d.Pages {
		fmt.Fprintf(&text, "=== 第%d页 ===\n", page.Number)
		text.WriteString(page.Text)
		text.WriteString("\n\n")
	}

	payload := struct {
		Text string `json:"text"`
		Info struct {
			TotalPages int `json:"total_pages"`
		} `json:"pdf_info"`
	}{Text: text.String()}
	payload.Info.TotalPages = d.PageCount

	return mustJSON(payload)
}

// WordTitle is the constant organizational header carried by every Word
// extraction result.
const WordTitle = "Jira Attachment Content"

// Table is a positional grid of trimmed cell texts: rows in document
// order, cells in row order, empty cells preserved.
type Table [][]string

// WordDocument is the extraction result of a .docx file: non-empty
// paragraphs and tables, both in document order.
type WordDocument struct {
	Title      string
	Paragraphs []string
	Tables     []Table
}

// SourceFormat implements Document.
func (d *WordDocument) SourceFormat() Format { return FormatWord }

// PromptText renders the document as the JSON payload embedded in the
// review prompt.
func (d *WordDocument) PromptText() string {
	paragraphs := d.Paragraphs
	if paragraphs == nil {
		paragraphs = []string{}
	}
	tables := d.Tables
	if tables == nil {
		tables = []Table{}
	}

	payload := struct {
		Title      string   `json:"title"`
		Paragraphs []string `json:"paragraphs"`
		Tables     []Table  `json:"tables"`
	}{Title: d.Title, Paragraphs: paragraphs, Tables: tables}

	return mustJSON(payload)
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// The payload structs contain only strings and ints; marshalling
		// cannot fail for them.
		panic(err)
	}
	return string(b)
}
