package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultExaBaseURL = "https://api.exa.ai/search"

// maxSnippetChars bounds the text carried into a source card.
const maxSnippetChars = 600

var errMissingExaKey = fmt.Errorf("EXA_API_KEY is required")

// ExaClient talks to Exa's neural/semantic search. Use it for discovery
// queries where intent matters more than keywords.
type ExaClient struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	includeText bool
}

func NewExaClient(apiKey string) (*ExaClient, error) {
	if apiKey == "" {
		return nil, errMissingExaKey
	}

	baseURL := os.Getenv("EXA_BASE_URL")
	if baseURL == "" {
		baseURL = defaultExaBaseURL
	}

	return &ExaClient{
		apiKey:      apiKey,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		includeText: true,
	}, nil
}

func (c *ExaClient) Name() string { return "exa" }

func (c *ExaClient) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	payload := map[string]any{
		"query":         query,
		"numResults":    limit,
		"useAutoprompt": true,
		// neural + keyword hybrid
		"type": "auto",
	}
	if c.includeText {
		payload["contents"] = map[string]any{"text": map[string]any{"maxCharacters": 3000}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
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
		return nil, fmt.Errorf("exa error: status %d: %s", resp.StatusCode, truncate(string(respBody), 800))
	}

	var results []Result
	for _, item := range gjson.GetBytes(respBody, "results").Array() {
		title := item.Get("title").String()
		if title == "" {
			title = "Untitled"
		}
		results = append(results, Result{
			Title:   title,
			URL:     item.Get("url").String(),
			Score:   item.Get("score").Float(),
			Snippet: truncate(strings.ReplaceAll(item.Get("text").String(), "\n", " "), maxSnippetChars),
		})
	}
	return results, nil
}
