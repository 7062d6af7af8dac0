package jira

// Issue represents a Jira issue from the REST API v3.
type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields contains the issue fields we care about.
type Fields struct {
	Summary string `json:"summary,omitempty"`
	// Attachments are ordered as Jira returns them: upload order,
	// oldest first.
	Attachments []Attachment `json:"attachment,omitempty"`
}

// Attachment describes an issue attachment.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"` // Download URL for the binary payload
	Size     int64  `json:"size,omitempty"`
	Created  string `json:"created,omitempty"`
}

// AttachmentData is a downloaded attachment: raw bytes plus the media type
// the server declared for them.
type AttachmentData struct {
	Bytes     []byte
	MediaType string
}

// User represents a Jira user.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Comment represents a single issue comment.
type Comment struct {
	ID      string   `json:"id,omitempty"`
	Author  User     `json:"author"`
	Body    *ADFNode `json:"body"`
	Created string   `json:"created,omitempty"`
	Updated string   `json:"updated,omitempty"`
}

// ADFNode represents a node in the Atlassian Document Format.
type ADFNode struct {
	Type    string         `json:"type"`
	Version int            `json:"version,omitempty"`
	Content []ADFNode      `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []ADFMark      `json:"marks,omitempty"`
}

// ADFMark represents an inline formatting mark in ADF.
type ADFMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// SearchRequest is the body for POST /rest/api/3/search/jql.
type SearchRequest struct {
	JQL          string   `json:"jql"`
	MaxResults   int      `json:"maxResults,omitempty"`
	Fields       []string `json:"fields,omitempty"`
	FieldsByKeys bool     `json:"fieldsByKeys,omitempty"`
}

// SearchResponse wraps the issues array from the search endpoint.
type SearchResponse struct {
	Issues []Issue `json:"issues"`
}

// CommentsResponse wraps one page of the comments array from
// GET .../comment.
type CommentsResponse struct {
	Comments   []Comment `json:"comments"`
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
}

// CommentPayload is the body for POST /rest/api/3/issue/{id}/comment.
type CommentPayload struct {
	Body *ADFNode `json:"body"`
}

// IssueResponse is the response from GET /rest/api/3/issue/{id}.
type IssueResponse struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Myself is the response from GET /rest/api/3/myself.
type Myself struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}
