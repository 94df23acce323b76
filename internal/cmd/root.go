package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "multi-draft",
	Short: "Parallel multi-model drafting and second opinions",
	Long: `multi-draft sends the same prompt to two frontier models in parallel
through OpenRouter and returns both answers side by side. The model pair is
chosen so that neither model shares a provider family with the host agent
that invoked the tool.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}
