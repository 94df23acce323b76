package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/multi-draft/internal/host"
)

func TestResolveRecommendModelsDefaultPair(t *testing.T) {
	recommendModels = nil

	models, err := resolveRecommendModels(host.RuntimeClaudeCode)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "openai/gpt-5.2", models[0].ID)
	assert.Equal(t, "google/gemini-3.1-pro-preview", models[1].ID)
}

func TestResolveRecommendModelsExplicit(t *testing.T) {
	recommendModels = []string{"GPT=openai/gpt-5.2", "Opus=anthropic/claude-opus-4-6"}
	defer func() { recommendModels = nil }()

	models, err := resolveRecommendModels(host.RuntimeUnknown)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, host.Model{ID: "openai/gpt-5.2", Label: "GPT"}, models[0])
	assert.Equal(t, host.Model{ID: "anthropic/claude-opus-4-6", Label: "Opus"}, models[1])
}

func TestResolveRecommendModelsRejectsMalformed(t *testing.T) {
	defer func() { recommendModels = nil }()

	recommendModels = []string{"no-equals-sign"}
	_, err := resolveRecommendModels(host.RuntimeUnknown)
	assert.Error(t, err)

	recommendModels = []string{"GPT=openai/gpt-5.2", "GPT=google/gemini-3.1-pro-preview"}
	_, err = resolveRecommendModels(host.RuntimeUnknown)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 500, clamp(100, 500, 16000))
	assert.Equal(t, 4096, clamp(4096, 500, 16000))
	assert.Equal(t, 16000, clamp(50000, 500, 16000))
}
