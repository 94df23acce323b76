package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanReasoningModelsGetOverhead(t *testing.T) {
	table := DefaultTable()

	for _, modelID := range []string{"openai/gpt-5.2", "google/gemini-3.1-pro-preview"} {
		t.Run(modelID, func(t *testing.T) {
			plan := table.Plan(modelID, 2000)
			assert.Equal(t, 2000+DefaultReasoningOverhead, plan.WireMaxTokens)
			assert.Equal(t, DefaultReasoningOverhead, plan.ReasoningMaxTokens)
			assert.Greater(t, plan.WireMaxTokens, 2000,
				"wire budget must exceed the requested content tokens")
		})
	}
}

func TestPlanNonReasoningModelPassthrough(t *testing.T) {
	table := DefaultTable()

	plan := table.Plan("anthropic/claude-opus-4-6", 800)
	assert.Equal(t, 800, plan.WireMaxTokens)
	assert.Zero(t, plan.ReasoningMaxTokens)
}

func TestPlanCustomOverhead(t *testing.T) {
	table := Table{Overhead: map[string]int{"openai/gpt-5.2": 4096}}

	plan := table.Plan("openai/gpt-5.2", 1000)
	assert.Equal(t, 5096, plan.WireMaxTokens)
	assert.Equal(t, 4096, plan.ReasoningMaxTokens)
}

func TestRetryPlanClamps(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name          string
		contentTokens int
		wantContent   int
	}{
		{"small request hits floor", 250, 2000},
		{"mid request triples", 1000, 3000},
		{"large request hits ceiling", 4000, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := table.RetryPlan("google/gemini-3.1-pro-preview", tt.contentTokens, 2000, 8000)
			assert.Equal(t, tt.wantContent+DefaultReasoningOverhead, plan.WireMaxTokens)
			assert.Equal(t, retryReasoningMaxTokens, plan.ReasoningMaxTokens)
			assert.Equal(t, tt.wantContent, RetryContentTokens(tt.contentTokens, 2000, 8000))
		})
	}
}

func TestRetryPlanRecommendBounds(t *testing.T) {
	table := DefaultTable()

	plan := table.RetryPlan("openai/gpt-5.2", 4096, 8000, 16000)
	assert.Equal(t, 12288+DefaultReasoningOverhead, plan.WireMaxTokens)

	plan = table.RetryPlan("openai/gpt-5.2", 500, 8000, 16000)
	assert.Equal(t, 8000+DefaultReasoningOverhead, plan.WireMaxTokens)
}

func TestIsReasoning(t *testing.T) {
	table := DefaultTable()

	assert.True(t, table.IsReasoning("openai/gpt-5.2"))
	assert.False(t, table.IsReasoning("anthropic/claude-opus-4-6"))
}
