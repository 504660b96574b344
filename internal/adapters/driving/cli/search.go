package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/services"
)

var (
	searchLabel    string
	searchPageSize int
	searchSnippets bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Fess index",
	Long: `Runs one query through the same path as the MCP search tool and prints
the hits. Useful to check label scoping and snippet generation without an
MCP client.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchLabel, "label", "l", "", "label scope (default: configured default label)")
	searchCmd.Flags().IntVarP(&searchPageSize, "limit", "n", domain.DefaultPageSize, "maximum number of results")
	searchCmd.Flags().BoolVarP(&searchSnippets, "snippets", "s", false, "generate snippets for the leading hits")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the raw result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	req := domain.SearchRequest{
		Query:    args[0],
		PageSize: &searchPageSize,
		Snippets: searchSnippets,
	}
	if searchLabel != "" {
		req.Label = &searchLabel
	}

	result, err := a.search.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	outputSearchText(cmd, result)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, result domain.Record) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, result domain.Record) {
	hits := result.Hits()
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Results (%d total):\n", result.Count())
	cmd.Println()
	for i, hit := range hits {
		// Format: [N] Title
		title := domain.FieldText(hit["title"])
		if title == "" {
			title = domain.FieldText(hit["doc_id"])
		}
		cmd.Printf("  [%d] %s\n", i+1, title)
		if u := domain.FieldText(hit["url"]); u != "" {
			cmd.Printf("      %s\n", u)
		}
		cmd.Printf("      doc_id: %s\n", domain.FieldText(hit["doc_id"]))

		if s, ok := hit[services.SnippetsKey].(map[string]any); ok {
			if msg, ok := s["error"]; ok {
				cmd.Printf("      (snippets unavailable: %v)\n", msg)
			}
			if snippets, ok := s["snippets"].([]string); ok {
				for _, sn := range snippets {
					cmd.Printf("      > %s\n", sn)
				}
			}
		}
		cmd.Println()
	}
}
