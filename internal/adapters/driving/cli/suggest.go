package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	suggestLimit  int
	suggestJSON   bool
	trendingLimit int
	trendingJSON  bool
	historyLimit  int
	historyJSON   bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial query]",
	Short: "Autocomplete a partial query",
	Long: `Suggests products, categories, brands and past queries for a partial
query. At least two characters are needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the most searched queries",
	RunE:  runTrending,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches, newest first",
	RunE:  runHistory,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 8, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	trendingCmd.Flags().IntVarP(&trendingLimit, "limit", "n", 10, "maximum number of queries")
	trendingCmd.Flags().BoolVar(&trendingJSON, "json", false, "output queries with counts as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of queries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output queries as JSON")
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(historyCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	suggestions := searchService.AutocompleteSuggestions(args[0], suggestLimit)
	if suggestJSON {
		return printJSON(cmd, suggestions)
	}

	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Printf("  %-32s %s\n", s.Text, s.Type)
	}
	return nil
}

func runTrending(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	popular := searchService.PopularQueries(trendingLimit)
	if trendingJSON {
		return printJSON(cmd, popular)
	}

	if len(popular) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}
	cmd.Println("Trending searches:")
	for i, q := range popular {
		cmd.Printf("  %2d. %-30s %d\n", i+1, q.Query, q.Count)
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	history := searchService.SearchHistory(historyLimit)
	if historyJSON {
		if history == nil {
			history = []string{}
		}
		return printJSON(cmd, history)
	}

	if len(history) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}
	for _, q := range history {
		cmd.Printf("  %s\n", q)
	}
	return nil
}
