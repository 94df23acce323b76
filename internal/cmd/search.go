package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/multi-draft/internal/config"
	"github.com/strrl/multi-draft/internal/output"
	"github.com/strrl/multi-draft/internal/search"
)

var (
	searchQuery     string
	searchProvider  string
	searchLimit     int
	searchFormat    string
	searchSubreddit string
	searchComments  string
	searchRepoRoot  string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Gather source evidence from the search providers",
	Long: `Query the configured search providers (Exa, Firecrawl, Reddit) in
parallel and print the results as source cards. Providers missing credentials
are skipped with a warning; one provider's failure never blocks the rest.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search query (required)")
	searchCmd.Flags().StringVar(&searchProvider, "provider", "all", "Provider: exa, firecrawl, reddit, or all")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 8, "Maximum results per provider")
	searchCmd.Flags().StringVar(&searchFormat, "format", "md", "Output format: md or json")
	searchCmd.Flags().StringVar(&searchSubreddit, "subreddit", "", "Restrict the Reddit search to one subreddit")
	searchCmd.Flags().StringVar(&searchComments, "comments", "", "Fetch top comments for a Reddit post id instead of searching")
	searchCmd.Flags().StringVar(&searchRepoRoot, "repo-root", ".", "Directory searched for a .env credential file")

	_ = searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchComments != "" {
		return runRedditComments(cmd)
	}

	providers, err := buildProviders()
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		return fmt.Errorf("no search provider has credentials configured")
	}

	settled := search.FanOut(cmd.Context(), providers, searchQuery, searchLimit)

	switch searchFormat {
	case "md":
		fmt.Print(output.SourceCards(settled))
	case "json":
		if err := printJSON(settled); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (expected md or json)", searchFormat)
	}
	return nil
}

// buildProviders assembles the requested providers, skipping (for "all") or
// rejecting (for an explicit choice) those without credentials.
func buildProviders() ([]search.Provider, error) {
	wantAll := searchProvider == "all"
	want := func(name string) bool { return wantAll || searchProvider == name }

	if !wantAll {
		switch searchProvider {
		case "exa", "firecrawl", "reddit":
		default:
			return nil, fmt.Errorf("unknown provider: %s (expected exa, firecrawl, reddit, or all)", searchProvider)
		}
	}

	var providers []search.Provider

	if want("exa") {
		client, err := search.NewExaClient(config.ResolveEnv(searchRepoRoot, "EXA_API_KEY"))
		if err == nil {
			providers = append(providers, client)
		} else if !wantAll {
			return nil, err
		}
	}

	if want("firecrawl") {
		client, err := search.NewFirecrawlClient(config.ResolveEnv(searchRepoRoot, "FIRECRAWL_API_KEY"))
		if err == nil {
			providers = append(providers, client)
		} else if !wantAll {
			return nil, err
		}
	}

	if want("reddit") {
		client, err := newRedditFromEnv()
		if err == nil {
			providers = append(providers, client)
		} else if !wantAll {
			return nil, err
		}
	}

	return providers, nil
}

func newRedditFromEnv() (*search.RedditClient, error) {
	client, err := search.NewRedditClient(
		config.ResolveEnv(searchRepoRoot, "REDDIT_CLIENT_ID"),
		config.ResolveEnv(searchRepoRoot, "REDDIT_CLIENT_SECRET"),
	)
	if err != nil {
		return nil, err
	}
	client.Subreddit = searchSubreddit
	return client, nil
}

func runRedditComments(cmd *cobra.Command) error {
	client, err := newRedditFromEnv()
	if err != nil {
		return err
	}

	comments, err := client.TopComments(cmd.Context(), searchComments, searchLimit)
	if err != nil {
		return err
	}

	if searchFormat == "json" {
		return printJSON(comments)
	}
	for _, comment := range comments {
		fmt.Printf("**u/%s** (score %d)\n%s\n\n", comment.Author, comment.Score, comment.Body)
	}
	return nil
}
