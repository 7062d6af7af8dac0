package ark

import "fmt"

// InputContent is one content item of an input message.
type InputContent struct {
	Type string `json:"type"` // "input_text"
	Text string `json:"text"`
}

// InputMessage is one message of a responses-API request.
type InputMessage struct {
	Role    string         `json:"role"` // "user", "assistant", or "system"
	Content []InputContent `json:"content"`
}

// Thinking controls the model's thinking mode.
type Thinking struct {
	Type string `json:"type"` // "enabled" or "disabled"
}

// Request represents a request to the /responses endpoint.
type Request struct {
	Model       string         `json:"model"`
	Input       []InputMessage `json:"input"`
	Thinking    *Thinking      `json:"thinking,omitempty"`
	Temperature float64        `json:"temperature,omitempty"`
}

// OutputContent is one content item of an output block.
type OutputContent struct {
	Type string `json:"type"` // "output_text" for assistant text
	Text string `json:"text"`
}

// OutputItem is one block of a response's output. Reasoning blocks and
// message blocks share the array; only message blocks carry review text.
type OutputItem struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"` // "reasoning" or "message"
	Role    string          `json:"role,omitempty"`
	Status  string          `json:"status,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// Usage reports token consumption for a response.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
	TotalTokens  int `json:"total_tokens"`
}

// Response represents a response from the /responses endpoint.
type Response struct {
	ID     string       `json:"id"`
	Model  string       `json:"model"`
	Status string       `json:"status,omitempty"`
	Output []OutputItem `json:"output"`
	Usage  Usage        `json:"usage"`
	Error  *APIError    `json:"error,omitempty"`
}

// APIError is a structured error returned by the Ark API.
type APIError struct {
	Type       string `json:"type,omitempty"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ark API error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("ark API error (status %d): %s", e.StatusCode, e.Message)
}

// errorEnvelope wraps the error object on non-2xx responses.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// ReviewResult is the distilled outcome of one review call: the model's
// assessment plus the metadata reported back on the ticket.
type ReviewResult struct {
	Text        string `json:"text"`
	Model       string `json:"model"`
	CallID      string `json:"call_id"`
	TotalTokens int    `json:"total_tokens"`
}
