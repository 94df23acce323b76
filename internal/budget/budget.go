// Package budget computes the wire-level token budget for each model call.
//
// Reasoning models share a single max_tokens pool between internal reasoning
// and visible content. Sending the desired content length alone lets
// reasoning consume the whole pool and the response truncates to empty, so
// the planner adds a per-model overhead on top of the requested content
// tokens and separately caps reasoning via reasoning.max_tokens.
package budget

// DefaultReasoningOverhead is the extra budget added for reasoning models.
// It is a tunable safety margin, not a provider guarantee.
const DefaultReasoningOverhead = 2048

// retryReasoningMaxTokens shifts the pool toward visible content on the
// single retry after a truncated-empty response.
const retryReasoningMaxTokens = 512

// Table is the reasoning-model allow-list with per-model overheads.
// Models absent from the table get their requested tokens unchanged.
type Table struct {
	Overhead map[string]int
}

func DefaultTable() Table {
	return Table{
		Overhead: map[string]int{
			"openai/gpt-5.2":                DefaultReasoningOverhead,
			"google/gemini-3.1-pro-preview": DefaultReasoningOverhead,
		},
	}
}

// IsReasoning reports whether the model shares its token pool with a
// reasoning pass.
func (t Table) IsReasoning(modelID string) bool {
	_, ok := t.Overhead[modelID]
	return ok
}

// Plan is the resolved wire budget for one call. ReasoningMaxTokens == 0
// means the request carries no reasoning parameter.
type Plan struct {
	WireMaxTokens      int
	ReasoningMaxTokens int
}

// Plan computes the budget to request from the provider for the given
// visible-output token count. For reasoning models the wire budget is
// strictly greater than the requested count.
func (t Table) Plan(modelID string, contentTokens int) Plan {
	overhead, ok := t.Overhead[modelID]
	if !ok {
		return Plan{WireMaxTokens: contentTokens}
	}
	return Plan{
		WireMaxTokens:      contentTokens + overhead,
		ReasoningMaxTokens: overhead,
	}
}

// RetryPlan computes the adjusted budget for the single retry after a
// truncated-empty response: triple the content budget clamped to
// [floor, ceiling], keep the overhead, and squeeze the reasoning cap down
// so the extra room goes to visible content.
func (t Table) RetryPlan(modelID string, contentTokens, floor, ceiling int) Plan {
	retryTokens := min(max(contentTokens*3, floor), ceiling)
	overhead := t.Overhead[modelID]
	return Plan{
		WireMaxTokens:      retryTokens + overhead,
		ReasoningMaxTokens: retryReasoningMaxTokens,
	}
}

// RetryContentTokens exposes the clamped content budget used by RetryPlan,
// for reporting in results.
func RetryContentTokens(contentTokens, floor, ceiling int) int {
	return min(max(contentTokens*3, floor), ceiling)
}
