// Package ark implements a client for the Ark (Doubao) responses API,
// the LLM capability that produces contract review opinions.
package ark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/dt-fin-tools/lawhelper/internal/config"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
)

// ErrMalformedResponse reports a response whose output carried no
// assistant message text.
var ErrMalformedResponse = errors.New("ark response contains no assistant message text")

// Client represents an Ark API client.
type Client struct {
	apiKey         string
	baseURL        string
	defaultModel   string
	httpClient     *http.Client
	maxRetries     int
	temperature    float64
	enableThinking bool
	limiter        *rate.Limiter
	logger         *loggy.Logger
}

// NewClient creates a new Ark client from config.
func NewClient(cfg config.ArkConfig, logger *loggy.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		burst := cfg.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst)
	}

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		defaultModel:   cfg.Model,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		temperature:    cfg.Temperature,
		enableThinking: cfg.EnableThinking,
		limiter:        limiter,
		logger:         logger,
	}
}

// Review submits a prepared prompt and returns the model's review text
// along with the call metadata reported on the ticket.
func (c *Client) Review(ctx context.Context, prompt string) (*ReviewResult, error) {
	req := Request{
		Model: c.defaultModel,
		Input: []InputMessage{
			{
				Role:    "user",
				Content: []InputContent{{Type: "input_text", Text: prompt}},
			},
		},
		Temperature: c.temperature,
	}
	if c.enableThinking {
		req.Thinking = &Thinking{Type: "enabled"}
	}

	resp, err := c.createResponse(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating review: %w", err)
	}

	text, ok := assistantText(resp)
	if !ok {
		return nil, ErrMalformedResponse
	}

	model := resp.Model
	if model == "" {
		model = c.defaultModel
	}

	return &ReviewResult{
		Text:        text,
		Model:       model,
		CallID:      resp.ID,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// assistantText locates the assistant message text in a response's output
// blocks, skipping reasoning blocks. Reports false on any unexpected shape.
func assistantText(resp *Response) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" && content.Text != "" {
				return content.Text, true
			}
		}
	}
	return "", false
}

// createResponse sends a request to the /responses endpoint with the
// client's rate limit and retry policy.
func (c *Client) createResponse(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	url := c.baseURL + "/responses"

	var resp Response
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		httpResp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}

		if httpResp.StatusCode != http.StatusOK {
			apiErr := c.handleErrorResponse(httpResp, respBody)
			if httpResp.StatusCode >= 400 && httpResp.StatusCode < 500 && httpResp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(apiErr)
			}
			return apiErr
		}

		resp = Response{}
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	c.logger.Debug("ark response received",
		"call_id", resp.ID,
		"model", resp.Model,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return &resp, nil
}

// handleErrorResponse processes error responses from the API.
func (c *Client) handleErrorResponse(resp *http.Response, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = resp.StatusCode
		return envelope.Error
	}

	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
