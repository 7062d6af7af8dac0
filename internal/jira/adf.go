package jira

import "strings"

// TextDocument builds an ADF document from plain text, one paragraph per
// line. Comment bodies on the REST v3 API must be ADF documents.
func TextDocument(text string) *ADFNode {
	lines := strings.Split(text, "\n")
	content := make([]ADFNode, 0, len(lines))
	for _, line := range lines {
		para := ADFNode{Type: "paragraph"}
		if line != "" {
			para.Content = []ADFNode{{Type: "text", Text: line}}
		}
		content = append(content, para)
	}

	return &ADFNode{
		Type:    "doc",
		Version: 1,
		Content: content,
	}
}

// FirstTextRun returns the textual content of the first inline node of the
// first block of an ADF document, and whether that node is a plain text run.
// Any deviation from the expected doc -> block -> text shape reports false.
func FirstTextRun(body *ADFNode) (string, bool) {
	if body == nil || len(body.Content) == 0 {
		return "", false
	}

	block := body.Content[0]
	if len(block.Content) == 0 {
		return "", false
	}

	inline := block.Content[0]
	if inline.Type != "text" {
		return "", false
	}

	return inline.Text, true
}
