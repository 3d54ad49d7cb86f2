package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient("test-key", 0.4,
		WithRequestOptions(
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
	)
}

func messageBody(text string) map[string]any {
	return map[string]any{
		"id":   "msg_test_001",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       defaultModel,
		"stop_reason": "end_turn",
		"usage": map[string]any{
			"input_tokens":  10,
			"output_tokens": 5,
		},
	}
}

func TestGenerate_ReturnsText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(messageBody(`{"summary":"hi"}`)) //nolint:errcheck
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	text, err := client.Generate(context.Background(), "advise me")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"hi"}`, text)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		body := messageBody("")
		body["content"] = []map[string]any{}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body) //nolint:errcheck
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Generate(context.Background(), "advise me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}

func TestGenerate_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.Generate(context.Background(), "advise me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create message")
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient("key", 0.4)
	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, int64(defaultMaxTokens), c.maxTokens)
	assert.InDelta(t, 0.4, c.temperature, 0.001)
}

func TestWithModel(t *testing.T) {
	t.Parallel()
	c := NewClient("key", 0.2, WithModel("claude-sonnet-4-5-20250929"), WithMaxTokens(2048))
	assert.Equal(t, "claude-sonnet-4-5-20250929", c.model)
	assert.Equal(t, int64(2048), c.maxTokens)
}
