package openrouter

import "time"

// FinishReason mirrors the provider's finish_reason, normalized to the three
// outcomes the caller can act on.
type FinishReason string

const (
	FinishStop   FinishReason = "stop"
	FinishLength FinishReason = "length"
	FinishError  FinishReason = "error"
)

// RequestSpec describes one outbound chat-completion call. It is built once
// per model per invocation and never mutated; MaxTokens is the wire budget,
// reasoning overhead already included.
type RequestSpec struct {
	Model              string
	SystemPrompt       string
	UserPrompt         string
	MaxTokens          int
	ReasoningMaxTokens int
	Temperature        float64
	Timeout            time.Duration
}

// Response is the parsed provider reply for one call.
type Response struct {
	Content      string
	FinishReason FinishReason
	HasReasoning bool
}
