package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/multi-draft/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent invocations",
	Long:  `List recent write and recommend invocations from the local history database.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	for _, entry := range entries {
		platform := entry.Platform
		if platform == "" {
			platform = "-"
		}
		retried := ""
		if entry.Retried {
			retried = " (retried)"
		}
		fmt.Printf("%s  %-9s %-9s %s vs %s  [%s/%s]  %.1fs/%.1fs%s\n",
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Command,
			platform,
			entry.ModelA,
			entry.ModelB,
			entry.FinishA,
			entry.FinishB,
			entry.ElapsedA,
			entry.ElapsedB,
			retried,
		)
	}
	return nil
}
