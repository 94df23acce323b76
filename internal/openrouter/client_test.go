package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("OPENROUTER_BASE_URL", server.URL)

	client, err := NewClient("test-key")
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestChatCompletionStringContent(t *testing.T) {
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello."},"finish_reason":"stop"}]}`))
	})

	resp, err := client.ChatCompletion(context.Background(), RequestSpec{
		Model:              "openai/gpt-5.2",
		SystemPrompt:       "system",
		UserPrompt:         "user",
		MaxTokens:          4048,
		ReasoningMaxTokens: 2048,
		Temperature:        0.4,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello.", resp.Content)
	assert.Equal(t, FinishStop, resp.FinishReason)
	assert.False(t, resp.HasReasoning)

	assert.Equal(t, float64(4048), gotPayload["max_tokens"])
	reasoning, ok := gotPayload["reasoning"].(map[string]any)
	require.True(t, ok, "reasoning params must be sent for reasoning models")
	assert.Equal(t, float64(2048), reasoning["max_tokens"])
}

func TestChatCompletionOmitsReasoningWhenUnset(t *testing.T) {
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"},"finish_reason":"stop"}]}`))
	})

	_, err := client.ChatCompletion(context.Background(), RequestSpec{
		Model:      "anthropic/claude-opus-4-6",
		UserPrompt: "user",
		MaxTokens:  800,
	})
	require.NoError(t, err)

	_, present := gotPayload["reasoning"]
	assert.False(t, present)
}

func TestChatCompletionContentParts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"part one, "},{"type":"text","text":"part two"}]},"finish_reason":"stop"}]}`))
	})

	resp, err := client.ChatCompletion(context.Background(), RequestSpec{Model: "m", UserPrompt: "u", MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "part one, part two", resp.Content)
}

func TestChatCompletionEmptyContentTruncation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"","reasoning":"...thinking..."},"finish_reason":"length"}]}`))
	})

	resp, err := client.ChatCompletion(context.Background(), RequestSpec{Model: "m", UserPrompt: "u", MaxTokens: 100})
	require.NoError(t, err, "truncated-empty is a result, not a transport error")
	assert.Empty(t, resp.Content)
	assert.Equal(t, FinishLength, resp.FinishReason)
	assert.True(t, resp.HasReasoning)
}

func TestChatCompletionHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.ChatCompletion(context.Background(), RequestSpec{Model: "m", UserPrompt: "u", MaxTokens: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChatCompletionErrorPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model not found"}}`))
	})

	_, err := client.ChatCompletion(context.Background(), RequestSpec{Model: "m", UserPrompt: "u", MaxTokens: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestChatCompletionNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.ChatCompletion(context.Background(), RequestSpec{Model: "m", UserPrompt: "u", MaxTokens: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response structure")
}
