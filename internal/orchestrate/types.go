package orchestrate

import (
	"time"

	"github.com/strrl/multi-draft/internal/host"
	"github.com/strrl/multi-draft/internal/openrouter"
)

// ModelResult is the settled outcome of one provider call. Content and Error
// are mutually exclusive; FinishReason is "error" for timeouts and transport
// failures.
type ModelResult struct {
	Content              string                  `json:"content,omitempty"`
	Error                string                  `json:"error,omitempty"`
	FinishReason         openrouter.FinishReason `json:"finish_reason"`
	ElapsedSeconds       float64                 `json:"elapsed_seconds"`
	Retried              bool                    `json:"retried,omitempty"`
	RetriedWithMaxTokens int                     `json:"retried_with_max_tokens,omitempty"`
}

func (r ModelResult) Failed() bool {
	return r.Error != ""
}

// RequestParams are the resolved parameters echoed back to the caller.
type RequestParams struct {
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float64 `json:"temperature"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	Platform       string  `json:"platform,omitempty"`
}

// Aggregate is the final structure returned to the caller: both results plus
// the model mapping and the parameters that produced them. Immutable once
// built.
type Aggregate struct {
	ModelA      ModelResult       `json:"model_a"`
	ModelB      ModelResult       `json:"model_b"`
	ModelsUsed  map[string]string `json:"models_used"`
	ModelALabel string            `json:"model_a_label"`
	ModelBLabel string            `json:"model_b_label"`
	Runtime     string            `json:"runtime"`
	Request     RequestParams     `json:"request"`
}

// BothFailed reports total failure: neither model produced content.
func (a *Aggregate) BothFailed() bool {
	return a.ModelA.Failed() && a.ModelB.Failed()
}

// Params configures one comparison invocation. MaxTokens is the visible
// content budget per model; reasoning overhead is layered on by the budget
// table.
type Params struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
	Platform     string
	Runtime      host.Runtime
}
