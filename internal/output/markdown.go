// Package output renders comparison results and search evidence as markdown
// and writes reports to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/strrl/multi-draft/internal/orchestrate"
	"github.com/strrl/multi-draft/internal/search"
)

// LabeledResult pairs a model's display label with its settled outcome.
type LabeledResult struct {
	Label  string
	Result orchestrate.ModelResult
}

// Comparison renders the per-model sections of a multi-model run. Failed
// models keep their section so the reader sees which side broke.
func Comparison(results []LabeledResult) string {
	var sb strings.Builder
	sb.WriteString("# Multi-model second opinions\n")

	for _, item := range results {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", item.Label))
		switch {
		case item.Result.Failed():
			sb.WriteString(fmt.Sprintf("_Error: %s_\n", item.Result.Error))
		case strings.TrimSpace(item.Result.Content) == "":
			sb.WriteString("_(empty)_\n")
		default:
			sb.WriteString(strings.TrimSpace(item.Result.Content))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// SourceCards renders fan-out search evidence as numbered cards, one block
// per provider. Card ids are provider initial plus position, e.g. E01.
func SourceCards(settled []search.ProviderResult) string {
	var sb strings.Builder

	for _, provider := range settled {
		sb.WriteString(fmt.Sprintf("## %s\n\n", provider.Provider))

		if provider.Error != "" {
			sb.WriteString(fmt.Sprintf("_Error: %s_\n\n", provider.Error))
			continue
		}
		if len(provider.Results) == 0 {
			sb.WriteString("_No results._\n\n")
			continue
		}

		prefix := strings.ToUpper(provider.Provider[:1])
		for i, result := range provider.Results {
			sb.WriteString(fmt.Sprintf("**%s%02d — %s**\n", prefix, i+1, result.Title))
			if result.URL != "" {
				sb.WriteString(fmt.Sprintf("<%s>\n", result.URL))
			}
			if result.Meta != "" {
				sb.WriteString(result.Meta + "\n")
			}
			if result.Snippet != "" {
				sb.WriteString("\n" + result.Snippet + "\n")
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// WriteReport saves markdown under dir with a timestamped, slug-derived
// filename and returns the path written.
func WriteReport(dir, slug, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.md", time.Now().Format("20060102-150405"), sanitizeFilename(slug))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(s string) string {
	result := unsafeFilenameRe.ReplaceAllString(s, "-")
	result = strings.Trim(result, "-")
	if len(result) > 50 {
		result = result[:50]
	}
	if result == "" {
		result = "report"
	}
	return strings.ToLower(result)
}
