package ark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dt-fin-tools/lawhelper/internal/config"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
)

func testClientConfig(baseURL string) config.ArkConfig {
	return config.ArkConfig{
		APIKey:         "test-api-key",
		BaseURL:        baseURL,
		Model:          "doubao-seed-1-6",
		Timeout:        5 * time.Second,
		MaxRetries:     1,
		Temperature:    0.7,
		EnableThinking: true,
	}
}

func setupTestServer(_ *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	server := httptest.NewServer(handler)
	client := NewClient(testClientConfig(server.URL), loggy.NewNoopLogger())
	return server, client
}

func successResponse() Response {
	return Response{
		ID:     "resp-abc",
		Model:  "doubao-seed-1-6",
		Status: "completed",
		Output: []OutputItem{
			{Type: "reasoning", Status: "completed"},
			{
				Type: "message",
				Role: "assistant",
				Content: []OutputContent{
					{Type: "output_text", Text: "【整体结论】基本合规。"},
				},
			},
		},
		Usage: Usage{InputTokens: 3000, OutputTokens: 1096, TotalTokens: 4096},
	}
}

func TestNewClient(t *testing.T) {
	cases := []struct {
		name            string
		baseURL         string
		expectedBaseURL string
	}{
		{
			name:            "normal URL",
			baseURL:         "https://ark.cn-beijing.volces.com/api/v3",
			expectedBaseURL: "https://ark.cn-beijing.volces.com/api/v3",
		},
		{
			name:            "URL with trailing slash",
			baseURL:         "https://ark.cn-beijing.volces.com/api/v3/",
			expectedBaseURL: "https://ark.cn-beijing.volces.com/api/v3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient(testClientConfig(tc.baseURL), loggy.NewNoopLogger())
			assert.Equal(t, tc.expectedBaseURL, client.baseURL)
			assert.Equal(t, "test-api-key", client.apiKey)
			assert.NotNil(t, client.httpClient)
			assert.Nil(t, client.limiter) // no rate limit configured
		})
	}
}

func TestReview(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doubao-seed-1-6", req.Model)
		require.Len(t, req.Input, 1)
		assert.Equal(t, "user", req.Input[0].Role)
		require.Len(t, req.Input[0].Content, 1)
		assert.Equal(t, "input_text", req.Input[0].Content[0].Type)
		assert.Contains(t, req.Input[0].Content[0].Text, "合同内容")
		require.NotNil(t, req.Thinking)
		assert.Equal(t, "enabled", req.Thinking.Type)
		assert.InDelta(t, 0.7, req.Temperature, 0.001)

		_ = json.NewEncoder(w).Encode(successResponse())
	})
	defer server.Close()

	result, err := client.Review(context.Background(), "### 合同内容\n第一条")
	require.NoError(t, err)

	assert.Equal(t, "【整体结论】基本合规。", result.Text)
	assert.Equal(t, "doubao-seed-1-6", result.Model)
	assert.Equal(t, "resp-abc", result.CallID)
	assert.Equal(t, 4096, result.TotalTokens)
}

func TestReviewThinkingDisabled(t *testing.T) {
	var gotThinking atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotThinking.Store(req.Thinking != nil)
		_ = json.NewEncoder(w).Encode(successResponse())
	}))
	defer server.Close()

	cfg := testClientConfig(server.URL)
	cfg.EnableThinking = false
	client := NewClient(cfg, loggy.NewNoopLogger())

	_, err := client.Review(context.Background(), "prompt")
	require.NoError(t, err)
	assert.False(t, gotThinking.Load())
}

func TestReviewMalformedOutput(t *testing.T) {
	cases := []struct {
		name   string
		output []OutputItem
	}{
		{
			name:   "no output blocks",
			output: nil,
		},
		{
			name:   "reasoning only",
			output: []OutputItem{{Type: "reasoning"}},
		},
		{
			name: "message without text content",
			output: []OutputItem{{
				Type:    "message",
				Content: []OutputContent{{Type: "refusal", Text: ""}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				resp := successResponse()
				resp.Output = tc.output
				_ = json.NewEncoder(w).Encode(resp)
			})
			defer server.Close()

			_, err := client.Review(context.Background(), "prompt")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestReviewAPIError(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errorEnvelope{Error: &APIError{
			Type:    "authentication_error",
			Code:    "invalid_api_key",
			Message: "the API key is invalid",
		}})
	})
	defer server.Close()

	_, err := client.Review(context.Background(), "prompt")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_api_key", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestReviewRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server, client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream overloaded", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(successResponse())
	})
	defer server.Close()

	result, err := client.Review(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "resp-abc", result.CallID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestReviewNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server, client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	defer server.Close()

	_, err := client.Review(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRateLimiterConfigured(t *testing.T) {
	cfg := testClientConfig("https://ark.example.com")
	cfg.RequestsPerMinute = 30
	cfg.BurstLimit = 2

	client := NewClient(cfg, loggy.NewNoopLogger())
	require.NotNil(t, client.limiter)
	assert.InDelta(t, 0.5, float64(client.limiter.Limit()), 0.001)
	assert.Equal(t, 2, client.limiter.Burst())
}
