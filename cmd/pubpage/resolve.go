package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubpage/internal/scholar"
	"github.com/pdiddy/pubpage/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [name]",
	Short: "Search Semantic Scholar for an author ID by name",
	Long: `Resolve searches the Semantic Scholar author index by display name and
prints candidate IDs with their paper counts, for picking the author_id
to configure.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Int("limit", 5, "maximum number of candidates to print")
	resolveCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
	}
	client := &scholar.Client{
		HTTP:      &http.Client{Timeout: timeout},
		APIKey:    secretDefault("semantic-scholar-api-key", ""),
		UserAgent: cfg.UserAgent,
	}

	candidates, err := client.SearchAuthors(cmd.Context(), args[0], limit, cfg)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("No authors found.")
		return nil
	}

	fmt.Printf("%-12s  %-40s  %s\n", "ID", "Name", "Papers")
	for _, c := range candidates {
		fmt.Printf("%-12s  %-40s  %d\n", c.ID, c.Name, c.PaperCount)
	}
	return nil
}
