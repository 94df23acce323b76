package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/strrl/multi-draft/internal/config"
	"github.com/strrl/multi-draft/internal/draft"
	"github.com/strrl/multi-draft/internal/history"
	"github.com/strrl/multi-draft/internal/host"
	"github.com/strrl/multi-draft/internal/openrouter"
	"github.com/strrl/multi-draft/internal/orchestrate"
	"github.com/strrl/multi-draft/internal/platform"
	"github.com/strrl/multi-draft/internal/prompt"
)

var (
	writePrompt      string
	writeRepoRoot    string
	writeForceCodex  bool
	writeMaxTokens   int
	writeTemperature float64
	writeTimeout     int
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Draft the same prompt with two models in parallel",
	Long: `Send a writing prompt to both comparison models in parallel and print
a JSON document with both drafts. The platform tag (slack, email, linkedin,
substack, article) is inferred from the prompt and sets the token budget and
timeout unless overridden with flags.`,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeCmd.Flags().StringVarP(&writePrompt, "prompt", "p", "", "Writing prompt (required)")
	writeCmd.Flags().StringVar(&writeRepoRoot, "repo-root", ".", "Directory searched for a .env credential file")
	writeCmd.Flags().BoolVar(&writeForceCodex, "force-codex", false, "Force the codex-cli model pair regardless of environment")
	writeCmd.Flags().IntVar(&writeMaxTokens, "max-tokens", 2000, "Visible content budget per model")
	writeCmd.Flags().Float64Var(&writeTemperature, "temperature", 0.4, "Sampling temperature")
	writeCmd.Flags().IntVar(&writeTimeout, "timeout", 90, "Per-model timeout in seconds")

	_ = writeCmd.MarkFlagRequired("prompt")
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(writeRepoRoot)
	if err != nil {
		return err
	}

	tag := platform.Infer(writePrompt)
	resolved := cfg.Platforms.Resolve(tag, platform.Request{
		MaxTokens:         writeMaxTokens,
		TimeoutSeconds:    writeTimeout,
		ExplicitMaxTokens: cmd.Flags().Changed("max-tokens"),
		ExplicitTimeout:   cmd.Flags().Changed("timeout"),
	})

	runtime := host.Detect(writeForceCodex)
	pair := host.DefaultPair(runtime)

	client, err := openrouter.NewClient(cfg.APIKey)
	if err != nil {
		return err
	}

	shortForm := cfg.Platforms.ShortForm(tag)
	executor := orchestrate.New(client, orchestrate.Options{
		Budget: cfg.Budget,
		Normalize: func(text string) string {
			return draft.Normalize(text, shortForm)
		},
	})

	aggregate := executor.ComparePair(cmd.Context(), pair, orchestrate.Params{
		SystemPrompt: prompt.Writer,
		UserPrompt:   writePrompt,
		MaxTokens:    resolved.MaxTokens,
		Temperature:  writeTemperature,
		Timeout:      time.Duration(resolved.TimeoutSeconds) * time.Second,
		Platform:     tag,
		Runtime:      runtime,
	})

	if err := printJSON(aggregate); err != nil {
		return err
	}

	recordInvocation("write", tag, pair, aggregate)

	if aggregate.BothFailed() {
		return fmt.Errorf("both models failed")
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// recordInvocation persists the run to the history database. History is
// best-effort: a storage failure never fails the command.
func recordInvocation(command, tag string, pair host.Pair, aggregate *orchestrate.Aggregate) {
	path, err := history.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] history unavailable: %v\n", err)
		return
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	entry := history.Entry{
		Command:  command,
		Platform: tag,
		Runtime:  aggregate.Runtime,
		ModelA:   pair.ModelA.ID,
		ModelB:   pair.ModelB.ID,
		FinishA:  string(aggregate.ModelA.FinishReason),
		FinishB:  string(aggregate.ModelB.FinishReason),
		ElapsedA: aggregate.ModelA.ElapsedSeconds,
		ElapsedB: aggregate.ModelB.ElapsedSeconds,
		Retried:  aggregate.ModelA.Retried || aggregate.ModelB.Retried,
	}
	if err := store.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] failed to record history: %v\n", err)
	}
}
