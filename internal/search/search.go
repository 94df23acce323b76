// Package search gathers evidence from the supported search providers.
// Providers fail independently: one provider's error never blocks the rest.
package search

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Result is one source card, shaped the same across providers.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Meta    string  `json:"meta,omitempty"`
}

// Provider is a single search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// ProviderResult is the settled outcome for one provider in a fan-out.
type ProviderResult struct {
	Provider string   `json:"provider"`
	Results  []Result `json:"results,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// FanOut queries all providers concurrently and waits for every one to
// settle. The returned slice is index-aligned with providers.
func FanOut(ctx context.Context, providers []Provider, query string, limit int) []ProviderResult {
	results := make([]ProviderResult, len(providers))

	var g errgroup.Group
	for i, provider := range providers {
		i, provider := i, provider
		g.Go(func() error {
			found, err := provider.Search(ctx, query, limit)
			results[i] = ProviderResult{Provider: provider.Name(), Results: found}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func truncate(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
