package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

const defaultFirecrawlSearchURL = "https://api.firecrawl.dev/v1/search"

var errMissingFirecrawlKey = fmt.Errorf("FIRECRAWL_API_KEY is required")

// FirecrawlClient runs keyword web search through Firecrawl.
type FirecrawlClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	// Optional language/country hints passed through to the API.
	Lang    string
	Country string
}

func NewFirecrawlClient(apiKey string) (*FirecrawlClient, error) {
	if apiKey == "" {
		return nil, errMissingFirecrawlKey
	}

	baseURL := os.Getenv("FIRECRAWL_BASE_URL")
	if baseURL == "" {
		baseURL = defaultFirecrawlSearchURL
	}

	return &FirecrawlClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *FirecrawlClient) Name() string { return "firecrawl" }

func (c *FirecrawlClient) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	payload := map[string]any{
		"query": query,
		"limit": max(1, min(limit, 50)),
	}
	if c.Lang != "" {
		payload["lang"] = c.Lang
	}
	if c.Country != "" {
		payload["country"] = c.Country
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
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "multi-draft/1.0")

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
		return nil, fmt.Errorf("firecrawl error: status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var results []Result
	for _, item := range coerceFirecrawlResults(respBody) {
		title := firstString(item, "title", "name")
		if title == "" {
			title = "—"
		}
		results = append(results, Result{
			Title:   title,
			URL:     firstString(item, "url", "link"),
			Snippet: firstString(item, "snippet", "description"),
		})
	}
	return results, nil
}

// The search endpoint has shipped results under data.results, results, and
// data at different API versions; accept all three.
func coerceFirecrawlResults(body []byte) []gjson.Result {
	for _, path := range []string{"data.results", "results", "data"} {
		if list := gjson.GetBytes(body, path); list.IsArray() {
			return list.Array()
		}
	}
	return nil
}

func firstString(item gjson.Result, keys ...string) string {
	for _, key := range keys {
		if value := item.Get(key); value.Type == gjson.String && value.String() != "" {
			return value.String()
		}
	}
	return ""
}
