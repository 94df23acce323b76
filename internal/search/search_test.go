package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name    string
	results []Result
	err     error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Search(_ context.Context, _ string, _ int) ([]Result, error) {
	return p.results, p.err
}

func TestFanOutIndependentFailures(t *testing.T) {
	providers := []Provider{
		&stubProvider{name: "good", results: []Result{{Title: "hit", URL: "https://example.com"}}},
		&stubProvider{name: "bad", err: fmt.Errorf("upstream 503")},
		&stubProvider{name: "empty"},
	}

	settled := FanOut(context.Background(), providers, "anything", 5)

	assert.Len(t, settled, 3)
	assert.Equal(t, "good", settled[0].Provider)
	assert.Len(t, settled[0].Results, 1)
	assert.Empty(t, settled[0].Error)

	assert.Equal(t, "bad", settled[1].Provider)
	assert.Equal(t, "upstream 503", settled[1].Error)
	assert.Empty(t, settled[1].Results)

	assert.Equal(t, "empty", settled[2].Provider)
	assert.Empty(t, settled[2].Error)
	assert.Empty(t, settled[2].Results)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short  ", 10))

	long := strings.Repeat("a", 50)
	cut := truncate(long, 20)
	assert.Equal(t, 20, len([]rune(cut)))
	assert.True(t, strings.HasSuffix(cut, "…"))

	// Rune-safe on multibyte text.
	assert.Equal(t, "héllo…", truncate("héllo wörld", 6))
}
