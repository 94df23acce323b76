package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"platform line", "Platform: slack\nDraft a quick update for the team", "slack"},
		{"case insensitive", "PLATFORM: LinkedIn\nShare the launch", "linkedin"},
		{"tag block", "<platform> email\nReply to the vendor", "email"},
		{"indented line", "  Platform: substack\nWeekly letter", "substack"},
		{"mid prompt", "Context first.\nPlatform: article\nThen the ask.", "article"},
		{"other maps to none", "Platform: other\nSomething", ""},
		{"no marker", "Write a blog post intro about Go generics", ""},
		{"not a line prefix", "The platform: slack team said hi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.prompt))
		})
	}
}

func TestResolveKnownTags(t *testing.T) {
	table := DefaultTable()
	base := Request{MaxTokens: 2000, TimeoutSeconds: 90}

	tests := []struct {
		tag         string
		wantTokens  int
		wantTimeout int
	}{
		{"slack", 250, 35},
		{"linkedin", 300, 35},
		{"email", 800, 90},
		{"substack", 2500, 90},
		{"article", 2500, 90},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := table.Resolve(tt.tag, base)
			assert.Equal(t, tt.wantTokens, got.MaxTokens)
			assert.Equal(t, tt.wantTimeout, got.TimeoutSeconds)
		})
	}
}

func TestResolveUnknownTagKeepsDefaults(t *testing.T) {
	table := DefaultTable()
	got := table.Resolve("", Request{MaxTokens: 2000, TimeoutSeconds: 90})

	assert.Equal(t, 2000, got.MaxTokens)
	assert.Equal(t, 90, got.TimeoutSeconds)
}

func TestResolveExplicitOverrideWins(t *testing.T) {
	table := DefaultTable()

	got := table.Resolve("slack", Request{
		MaxTokens:         2500,
		TimeoutSeconds:    90,
		ExplicitMaxTokens: true,
	})
	assert.Equal(t, 2500, got.MaxTokens, "explicit --max-tokens must beat the platform cap")
	assert.Equal(t, 35, got.TimeoutSeconds, "timeout was not explicit, platform cap applies")

	got = table.Resolve("slack", Request{
		MaxTokens:       2000,
		TimeoutSeconds:  120,
		ExplicitTimeout: true,
	})
	assert.Equal(t, 250, got.MaxTokens)
	assert.Equal(t, 120, got.TimeoutSeconds)
}

func TestResolveFloorRaisesSmallBudget(t *testing.T) {
	table := DefaultTable()

	got := table.Resolve("article", Request{MaxTokens: 1000, TimeoutSeconds: 90})
	assert.Equal(t, 2500, got.MaxTokens)

	got = table.Resolve("article", Request{MaxTokens: 4000, TimeoutSeconds: 90})
	assert.Equal(t, 4000, got.MaxTokens, "floor never lowers a larger budget")
}

func TestShortForm(t *testing.T) {
	table := DefaultTable()

	assert.True(t, table.ShortForm("slack"))
	assert.True(t, table.ShortForm("linkedin"))
	assert.False(t, table.ShortForm("email"))
	assert.False(t, table.ShortForm(""))
}
