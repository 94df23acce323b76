// Package orchestrate fans a prompt out to a pair of models and joins the
// results. Calls are independent: a timeout or provider error on one never
// cancels the other, and the join always waits for every call to settle.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/strrl/multi-draft/internal/budget"
	"github.com/strrl/multi-draft/internal/host"
	"github.com/strrl/multi-draft/internal/openrouter"
)

const emptyResponseError = "Empty response from model"

// Options tunes the executor. RetryFloor/RetryCeiling bound the content
// budget of the single retry after a truncated-empty response.
type Options struct {
	Budget       budget.Table
	RetryFloor   int
	RetryCeiling int
	// Normalize, if set, is applied to each successful result's content.
	Normalize func(string) string
	// Warn receives human-readable diagnostics; defaults to stderr.
	Warn func(format string, args ...any)
}

type Executor struct {
	client *openrouter.Client
	opts   Options
}

func New(client *openrouter.Client, opts Options) *Executor {
	if opts.RetryFloor == 0 {
		opts.RetryFloor = 2000
	}
	if opts.RetryCeiling == 0 {
		opts.RetryCeiling = 8000
	}
	if opts.Warn == nil {
		opts.Warn = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	return &Executor{client: client, opts: opts}
}

// ComparePair runs both models of the pair concurrently and assembles the
// aggregate once both settle.
func (e *Executor) ComparePair(ctx context.Context, pair host.Pair, params Params) *Aggregate {
	results := e.Fan(ctx, []host.Model{pair.ModelA, pair.ModelB}, params)

	return &Aggregate{
		ModelA: results[0],
		ModelB: results[1],
		ModelsUsed: map[string]string{
			"model_a": pair.ModelA.ID,
			"model_b": pair.ModelB.ID,
		},
		ModelALabel: pair.ModelA.Label,
		ModelBLabel: pair.ModelB.Label,
		Runtime:     string(params.Runtime),
		Request: RequestParams{
			MaxTokens:      params.MaxTokens,
			Temperature:    params.Temperature,
			TimeoutSeconds: int(params.Timeout.Seconds()),
			Platform:       params.Platform,
		},
	}
}

// Fan issues one call per model concurrently and waits for all of them.
// The returned slice is index-aligned with models.
func (e *Executor) Fan(ctx context.Context, models []host.Model, params Params) []ModelResult {
	results := make([]ModelResult, len(models))

	var g errgroup.Group
	for i, model := range models {
		i, model := i, model
		g.Go(func() error {
			results[i] = e.call(ctx, model, params)
			return nil
		})
	}
	// Workers never return errors; failures settle into their own slot.
	_ = g.Wait()

	return results
}

// call runs one model's state machine: Sent, optionally Retried-Sent after a
// truncated-empty response, then Settled. At most one retry.
func (e *Executor) call(ctx context.Context, model host.Model, params Params) ModelResult {
	started := time.Now()

	plan := e.opts.Budget.Plan(model.ID, params.MaxTokens)
	result := e.attempt(ctx, model, params, plan, started)

	if e.shouldRetry(model.ID, result) {
		retryPlan := e.opts.Budget.RetryPlan(model.ID, params.MaxTokens, e.opts.RetryFloor, e.opts.RetryCeiling)
		e.opts.Warn("[INFO] %s: empty response with finish_reason=length, retrying with max_tokens=%d",
			model.ID, retryPlan.WireMaxTokens)

		result = e.attempt(ctx, model, params, retryPlan, started)
		result.Retried = true
		result.RetriedWithMaxTokens = budget.RetryContentTokens(params.MaxTokens, e.opts.RetryFloor, e.opts.RetryCeiling)
	}

	if e.opts.Normalize != nil && result.Content != "" {
		result.Content = e.opts.Normalize(result.Content)
	}

	return result
}

func (e *Executor) attempt(ctx context.Context, model host.Model, params Params, plan budget.Plan, started time.Time) ModelResult {
	callCtx, cancel := context.WithTimeout(ctx, params.Timeout)
	defer cancel()

	resp, err := e.client.ChatCompletion(callCtx, openrouter.RequestSpec{
		Model:              model.ID,
		SystemPrompt:       params.SystemPrompt,
		UserPrompt:         params.UserPrompt,
		MaxTokens:          plan.WireMaxTokens,
		ReasoningMaxTokens: plan.ReasoningMaxTokens,
		Temperature:        params.Temperature,
		Timeout:            params.Timeout,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ModelResult{
				Error:          fmt.Sprintf("Timeout after %ds", int(params.Timeout.Seconds())),
				FinishReason:   openrouter.FinishError,
				ElapsedSeconds: params.Timeout.Seconds(),
			}
		}
		return ModelResult{
			Error:          err.Error(),
			FinishReason:   openrouter.FinishError,
			ElapsedSeconds: elapsedSince(started),
		}
	}

	if strings.TrimSpace(resp.Content) == "" {
		return ModelResult{
			Error:          emptyResponseError,
			FinishReason:   resp.FinishReason,
			ElapsedSeconds: elapsedSince(started),
		}
	}

	if resp.FinishReason == openrouter.FinishLength {
		e.opts.Warn("[WARN] %s: response truncated (finish_reason=length, max_tokens=%d)",
			model.ID, plan.WireMaxTokens)
	}

	return ModelResult{
		Content:        resp.Content,
		FinishReason:   resp.FinishReason,
		ElapsedSeconds: elapsedSince(started),
	}
}

func (e *Executor) shouldRetry(modelID string, result ModelResult) bool {
	return e.opts.Budget.IsReasoning(modelID) &&
		result.Error == emptyResponseError &&
		result.FinishReason == openrouter.FinishLength
}

func elapsedSince(started time.Time) float64 {
	return math.Round(time.Since(started).Seconds()*1000) / 1000
}
