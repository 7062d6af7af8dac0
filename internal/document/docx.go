package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// WordprocessingML shapes for the parts of word/document.xml the extractor
// reads. Element names match on local name only, so the w: namespace
// prefix is irrelevant.

type xmlParagraph struct {
	Runs []xmlRun `xml:"r"`
}

type xmlRun struct {
	Texts []xmlText `xml:"t"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

func (p xmlParagraph) text() string {
	var b strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

type xmlTable struct {
	Rows []xmlRow `xml:"tr"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"tc"`
}

type xmlCell struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

func (c xmlCell) text() string {
	texts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		texts = append(texts, p.text())
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// extractDocx parses a .docx archive and collects body paragraphs and
// tables in document order. Paragraphs whose trimmed text is empty are
// dropped; table cells are trimmed but preserved even when empty, since
// tables are positional data.
func extractDocx(data []byte) (*WordDocument, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Format: FormatWord, Err: err}
	}

	var docEntry *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docEntry = f
			break
		}
	}
	if docEntry == nil {
		return nil, &ParseError{Format: FormatWord, Err: errors.New("word/document.xml not found in archive")}
	}

	rc, err := docEntry.Open()
	if err != nil {
		return nil, &ParseError{Format: FormatWord, Err: err}
	}
	defer rc.Close()

	doc := &WordDocument{Title: WordTitle}

	// DecodeElement consumes an element's whole subtree, so this loop only
	// ever sees body-level paragraphs and tables: paragraphs inside table
	// cells belong to the table, not the paragraph list.
	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatWord, Err: err}
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "p":
			var para xmlParagraph
			if err := decoder.DecodeElement(&para, &start); err != nil {
				return nil, &ParseError{Format: FormatWord, Err: err}
			}
			if text := strings.TrimSpace(para.text()); text != "" {
				doc.Paragraphs = append(doc.Paragraphs, text)
			}
		case "tbl":
			var tbl xmlTable
			if err := decoder.DecodeElement(&tbl, &start); err != nil {
				return nil, &ParseError{Format: FormatWord, Err: err}
			}
			table := make(Table, 0, len(tbl.Rows))
			for _, row := range tbl.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, cell.text())
				}
				table = append(table, cells)
			}
			doc.Tables = append(doc.Tables, table)
		}
	}

	return doc, nil
}
