package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

var errMissingAPIKey = fmt.Errorf("OPENROUTER_API_KEY is required")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessage    `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	Reasoning   *reasoningParams `json:"reasoning,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type reasoningParams struct {
	MaxTokens int `json:"max_tokens"`
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errMissingAPIKey
	}

	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Per-call deadlines come from the caller's context, so the transport
	// itself carries no fixed timeout.
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}, nil
}

// ChatCompletion issues one chat-completion call. An empty Content with a
// non-error FinishReason is a valid outcome (reasoning exhaustion) and is
// returned without error; the caller decides whether to retry.
func (c *Client) ChatCompletion(ctx context.Context, spec RequestSpec) (*Response, error) {
	payload := chatRequest{
		Model: spec.Model,
		Messages: []chatMessage{
			{Role: "system", Content: spec.SystemPrompt},
			{Role: "user", Content: spec.UserPrompt},
		},
		MaxTokens:   spec.MaxTokens,
		Temperature: spec.Temperature,
	}
	if spec.ReasoningMaxTokens > 0 {
		payload.Reasoning = &reasoningParams{MaxTokens: spec.ReasoningMaxTokens}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openrouter error: status %d: %s", resp.StatusCode, snippet(respBody, 300))
	}

	if apiErr := gjson.GetBytes(respBody, "error.message"); apiErr.Exists() {
		return nil, fmt.Errorf("openrouter error: %s", apiErr.String())
	}

	choice := gjson.GetBytes(respBody, "choices.0")
	if !choice.Exists() {
		return nil, fmt.Errorf("unexpected response structure: %s", snippet(respBody, 200))
	}

	return &Response{
		Content:      coerceContent(choice.Get("message.content")),
		FinishReason: normalizeFinishReason(choice.Get("finish_reason").String()),
		HasReasoning: choice.Get("message.reasoning").Exists(),
	}, nil
}

// Different models return message.content as either a plain string or a list
// of typed parts.
func coerceContent(content gjson.Result) string {
	if content.Type == gjson.String {
		return content.String()
	}
	if !content.IsArray() {
		return ""
	}

	var buf bytes.Buffer
	for _, part := range content.Array() {
		switch {
		case part.Type == gjson.String:
			buf.WriteString(part.String())
		case part.Get("text").Type == gjson.String:
			buf.WriteString(part.Get("text").String())
		}
	}
	return buf.String()
}

func normalizeFinishReason(reason string) FinishReason {
	switch reason {
	case "length":
		return FinishLength
	case "stop", "":
		return FinishStop
	default:
		return FinishReason(reason)
	}
}

func snippet(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
