// Package jira implements the subset of the Jira Cloud REST API v3 the
// review poller consumes: JQL search, comments, attachment metadata and
// download, and comment writeback.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/dt-fin-tools/lawhelper/internal/config"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
)

// APIError is a non-2xx response from the Jira API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira API returned %d: %s", e.StatusCode, e.Body)
}

// Client is a Jira REST API v3 client.
type Client struct {
	baseURL        string
	authHeader     string
	projectKey     string
	issueType      string
	maxResults     int
	maxRetries     int
	httpClient     *http.Client
	downloadClient *http.Client
	logger         *loggy.Logger
}

// NewClient creates a new Jira client from the given config.
func NewClient(cfg config.JiraConfig, logger *loggy.Logger) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.APIToken))

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		authHeader:     "Basic " + creds,
		projectKey:     cfg.ProjectKey,
		issueType:      cfg.IssueType,
		maxResults:     cfg.MaxResults,
		maxRetries:     cfg.MaxRetries,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		downloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		logger:         logger,
	}
}

// CurrentUser verifies the connection and credentials via the /myself
// endpoint and returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*Myself, error) {
	var me Myself
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/myself", nil, &me); err != nil {
		return nil, fmt.Errorf("verifying jira connection: %w", err)
	}
	return &me, nil
}

// SearchTickets returns the issues matching the configured project and
// work-type filter, including their attachment metadata. The result is a
// fresh snapshot on every call.
func (c *Client) SearchTickets(ctx context.Context) ([]Issue, error) {
	jql := fmt.Sprintf(
		`spaceJira = %q AND worktype = %s AND (createdDate >= startOfMonth() AND createdDate <= endOfWeek())`,
		c.projectKey, c.issueType,
	)

	req := SearchRequest{
		JQL:          jql,
		MaxResults:   c.maxResults,
		Fields:       []string{"summary", "attachment"},
		FieldsByKeys: true,
	}

	var resp SearchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/rest/api/3/search/jql", req, &resp); err != nil {
		return nil, fmt.Errorf("searching tickets (jql: %s): %w", jql, err)
	}

	c.logger.Debug("ticket search completed", "project", c.projectKey, "issue_type", c.issueType, "count", len(resp.Issues))
	return resp.Issues, nil
}

// GetIssue fetches a single issue by id or key.
func (c *Client) GetIssue(ctx context.Context, issueKey string) (*Issue, error) {
	var resp IssueResponse
	path := fmt.Sprintf("/rest/api/3/issue/%s?fields=summary,attachment", issueKey)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching issue %s: %w", issueKey, err)
	}
	return &Issue{ID: resp.ID, Key: resp.Key, Fields: resp.Fields}, nil
}

// GetComments fetches all comments of an issue, oldest first. The
// endpoint is paginated; every page is fetched so the last element is
// always the issue's true newest comment, regardless of how many
// comments the issue carries.
func (c *Client) GetComments(ctx context.Context, issueID string) ([]Comment, error) {
	var comments []Comment
	startAt := 0
	for {
		var resp CommentsResponse
		path := fmt.Sprintf("/rest/api/3/issue/%s/comment?orderBy=created&startAt=%d&maxResults=%d",
			issueID, startAt, c.maxResults)
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetching comments for %s: %w", issueID, err)
		}

		comments = append(comments, resp.Comments...)
		startAt += len(resp.Comments)
		if len(resp.Comments) == 0 || startAt >= resp.Total {
			break
		}
	}
	return comments, nil
}

// GetAttachments fetches the attachment metadata of an issue, in upload
// order.
func (c *Client) GetAttachments(ctx context.Context, issueID string) ([]Attachment, error) {
	var resp IssueResponse
	path := fmt.Sprintf("/rest/api/3/issue/%s?fields=attachment", issueID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching attachments for %s: %w", issueID, err)
	}
	return resp.Fields.Attachments, nil
}

// DownloadAttachment fetches an attachment's binary content from its
// content URL and reports the media type the server declared.
func (c *Client) DownloadAttachment(ctx context.Context, contentURL string) (*AttachmentData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading attachment body: %w", err)
	}

	return &AttachmentData{
		Bytes:     data,
		MediaType: resp.Header.Get("Content-Type"),
	}, nil
}

// AddComment posts an ADF comment body onto an issue.
func (c *Client) AddComment(ctx context.Context, issueID string, body *ADFNode) error {
	path := fmt.Sprintf("/rest/api/3/issue/%s/comment", issueID)
	payload := CommentPayload{Body: body}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("adding comment to %s: %w", issueID, err)
	}

	c.logger.Info("review comment posted", "issue_id", issueID)
	return nil
}

// doJSON performs a JSON request against the Jira API with the client's
// retry policy. A nil response target discards the body.
func (c *Client) doJSON(ctx context.Context, method, path string, body, response any) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling payload: %w", err)
		}
	}

	url := c.baseURL + path

	operation := func() error {
		var bodyReader io.Reader
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			respBody, _ := io.ReadAll(resp.Body)
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
			// Client errors won't heal on retry; rate limits and server
			// errors might.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(apiErr)
			}
			return apiErr
		}

		if response == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
