package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubpage/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs from the run log",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("out-dir", "public", "directory holding the artifacts")
	historyCmd.Flags().String("history-db", "", "run log database path (default <out-dir>/runs.db)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to print")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outDir, _ := flags.GetString("out-dir")
	dbPath, _ := flags.GetString("history-db")
	limit, _ := flags.GetInt("limit")
	if dbPath == "" {
		dbPath = filepath.Join(outDir, "runs.db")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-20s  %-12s  %6s  %7s  %s\n", "Fetched", "Author", "Total", "Skipped", "Status")
	for _, r := range runs {
		fmt.Printf("%-20s  %-12s  %6d  %7d  %s\n",
			r.FetchedAt.Format(time.RFC3339), r.AuthorID, r.Total, r.Skipped, r.Status)
	}
	return nil
}
