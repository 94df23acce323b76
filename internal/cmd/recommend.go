package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/strrl/multi-draft/internal/config"
	"github.com/strrl/multi-draft/internal/host"
	"github.com/strrl/multi-draft/internal/openrouter"
	"github.com/strrl/multi-draft/internal/orchestrate"
	"github.com/strrl/multi-draft/internal/output"
	"github.com/strrl/multi-draft/internal/prompt"
)

var (
	recommendPrompt         string
	recommendPromptFile     string
	recommendSourcesFile    string
	recommendSourcesSection string
	recommendModels         []string
	recommendFormat         string
	recommendOut            string
	recommendOutDir         string
	recommendRepoRoot       string
	recommendForceCodex     bool
	recommendMaxTokens      int
	recommendTemperature    float64
	recommendTimeout        int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask multiple models for evidence-grounded recommendations",
	Long: `Send a request plus an optional sources document to several models in
parallel and collect their recommendations side by side. Sources can be a
whole markdown file or a single section of it.`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&recommendPrompt, "prompt", "p", "", "Request text")
	recommendCmd.Flags().StringVar(&recommendPromptFile, "prompt-file", "", "Read the request from a file instead of --prompt")
	recommendCmd.Flags().StringVar(&recommendSourcesFile, "sources-file", "", "Markdown file with source evidence")
	recommendCmd.Flags().StringVar(&recommendSourcesSection, "sources-section", "", "Heading of the section to extract from the sources file")
	recommendCmd.Flags().StringArrayVar(&recommendModels, "model", nil, "Model as Label=provider/model-id (repeatable; default: runtime pair)")
	recommendCmd.Flags().StringVar(&recommendFormat, "format", "json", "Output format: json or md")
	recommendCmd.Flags().StringVar(&recommendOut, "out", "", "Also write the markdown report to this path")
	recommendCmd.Flags().StringVar(&recommendOutDir, "out-dir", "", "Also write the markdown report into this directory")
	recommendCmd.Flags().StringVar(&recommendRepoRoot, "repo-root", ".", "Directory searched for a .env credential file")
	recommendCmd.Flags().BoolVar(&recommendForceCodex, "force-codex", false, "Force the codex-cli model pair regardless of environment")
	recommendCmd.Flags().IntVar(&recommendMaxTokens, "max-tokens", 4096, "Visible content budget per model (clamped to 500..16000)")
	recommendCmd.Flags().Float64Var(&recommendTemperature, "temperature", 0.3, "Sampling temperature")
	recommendCmd.Flags().IntVar(&recommendTimeout, "timeout", 300, "Per-model timeout in seconds (clamped to 30..600)")
}

// recommendReport is the JSON document printed for a recommend invocation.
type recommendReport struct {
	Results map[string]orchestrate.ModelResult `json:"results"`
	Meta    recommendMeta                      `json:"meta"`
}

type recommendMeta struct {
	Models     map[string]string         `json:"models"`
	HasSources bool                      `json:"has_sources"`
	Request    orchestrate.RequestParams `json:"request"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	request, err := resolveRecommendPrompt()
	if err != nil {
		return err
	}

	sources, err := resolveSources()
	if err != nil {
		return err
	}

	cfg, err := config.Load(recommendRepoRoot)
	if err != nil {
		return err
	}

	runtime := host.Detect(recommendForceCodex)
	models, err := resolveRecommendModels(runtime)
	if err != nil {
		return err
	}

	client, err := openrouter.NewClient(cfg.APIKey)
	if err != nil {
		return err
	}

	executor := orchestrate.New(client, orchestrate.Options{
		Budget:       cfg.Budget,
		RetryFloor:   8000,
		RetryCeiling: 16000,
	})

	maxTokens := clamp(recommendMaxTokens, 500, 16000)
	timeoutSeconds := clamp(recommendTimeout, 30, 600)
	today := time.Now().Format("2006-01-02")

	settled := executor.Fan(cmd.Context(), models, orchestrate.Params{
		SystemPrompt: prompt.Recommend,
		UserPrompt:   prompt.BuildRecommend(request, sources, today),
		MaxTokens:    maxTokens,
		Temperature:  recommendTemperature,
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		Runtime:      runtime,
	})

	report := recommendReport{
		Results: make(map[string]orchestrate.ModelResult, len(models)),
		Meta: recommendMeta{
			Models:     make(map[string]string, len(models)),
			HasSources: sources != "",
			Request: orchestrate.RequestParams{
				MaxTokens:      maxTokens,
				Temperature:    recommendTemperature,
				TimeoutSeconds: timeoutSeconds,
			},
		},
	}
	labeled := make([]output.LabeledResult, len(models))
	allFailed := true
	for i, model := range models {
		report.Results[model.Label] = settled[i]
		report.Meta.Models[model.Label] = model.ID
		labeled[i] = output.LabeledResult{Label: model.Label, Result: settled[i]}
		if !settled[i].Failed() {
			allFailed = false
		}
	}

	markdown := output.Comparison(labeled)

	switch recommendFormat {
	case "md":
		fmt.Println(markdown)
	case "json":
		if err := printJSON(report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (expected json or md)", recommendFormat)
	}

	if recommendOut != "" {
		if err := os.WriteFile(recommendOut, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", recommendOut)
	}
	if recommendOutDir != "" {
		path, err := output.WriteReport(recommendOutDir, request, markdown)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}

	if allFailed {
		return fmt.Errorf("all models failed")
	}
	return nil
}

func resolveRecommendPrompt() (string, error) {
	if recommendPrompt != "" && recommendPromptFile != "" {
		return "", fmt.Errorf("--prompt and --prompt-file are mutually exclusive")
	}
	if recommendPromptFile != "" {
		data, err := os.ReadFile(recommendPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if strings.TrimSpace(recommendPrompt) == "" {
		return "", fmt.Errorf("either --prompt or --prompt-file is required")
	}
	return strings.TrimSpace(recommendPrompt), nil
}

func resolveSources() (string, error) {
	if recommendSourcesFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(recommendSourcesFile)
	if err != nil {
		return "", fmt.Errorf("failed to read sources file: %w", err)
	}
	text := string(data)

	if recommendSourcesSection == "" {
		return strings.TrimSpace(text), nil
	}
	section := prompt.ExtractMarkdownSection(text, recommendSourcesSection)
	if section == "" {
		fmt.Fprintf(os.Stderr, "[WARN] section %q not found in %s, using the whole file\n",
			recommendSourcesSection, recommendSourcesFile)
		return strings.TrimSpace(text), nil
	}
	return section, nil
}

// resolveRecommendModels parses --model Label=id pairs, falling back to the
// runtime's default pair when none are given.
func resolveRecommendModels(runtime host.Runtime) ([]host.Model, error) {
	if len(recommendModels) == 0 {
		pair := host.DefaultPair(runtime)
		return []host.Model{pair.ModelA, pair.ModelB}, nil
	}

	models := make([]host.Model, 0, len(recommendModels))
	seen := make(map[string]bool)
	for _, spec := range recommendModels {
		label, id, ok := strings.Cut(spec, "=")
		label = strings.TrimSpace(label)
		id = strings.TrimSpace(id)
		if !ok || label == "" || id == "" {
			return nil, fmt.Errorf("invalid --model %q (expected Label=provider/model-id)", spec)
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate model label %q", label)
		}
		seen[label] = true
		models = append(models, host.Model{ID: id, Label: label})
	}
	return models, nil
}

func clamp(value, floor, ceiling int) int {
	return max(floor, min(value, ceiling))
}
