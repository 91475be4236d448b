package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubpage/internal/history"
	"github.com/pdiddy/pubpage/internal/render"
	"github.com/pdiddy/pubpage/internal/scholar"
	"github.com/pdiddy/pubpage/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPageDelay = 1 * time.Second
	defaultUserAgent = "pubpage/0.1"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch the publication list and write the site artifacts",
		Long: `Generate fetches the configured author's complete publication list from
Semantic Scholar, drops records without a title, and writes the JSON
snapshot, the embeddable HTML fragment, and a YAML run report. All writes
happen after the fetch completes, so a failed fetch leaves the previous
artifacts untouched.

A zero-result author is an error unless --allow-empty is given, in which
case empty-but-valid artifacts are written and the run succeeds.`,
		RunE: runGenerate,
	}

	cmd.Flags().String("author-id", "", "Semantic Scholar author ID")
	cmd.Flags().String("author-name", "", "author display name, used to search when the ID yields nothing")
	cmd.Flags().String("out-dir", "public", "directory for generated artifacts")
	cmd.Flags().String("json-file", "publications.json", "JSON snapshot filename")
	cmd.Flags().String("html-file", "publications.html", "HTML fragment filename")
	cmd.Flags().String("report-file", "report.yaml", "run report filename")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Int("page-size", 100, "papers requested per API page")
	cmd.Flags().Duration("page-delay", 0, "pause between page requests (default 1s)")
	cmd.Flags().Int("max-authors", 6, "author names rendered per HTML entry (0 = all)")
	cmd.Flags().Bool("flat", false, "render one flat list instead of year sections")
	cmd.Flags().Bool("allow-empty", false, "treat a zero-result author as success")
	cmd.Flags().Bool("no-history", false, "skip recording the run in the run log")
	cmd.Flags().String("history-db", "", "run log database path (default <out-dir>/runs.db)")

	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfig(cmd)
	if cfg.AuthorID == "" && cfg.AuthorName == "" {
		return fmt.Errorf("provide --author-id or --author-name (or set author_id in the config file)")
	}

	client := &scholar.Client{
		HTTP:      &http.Client{Timeout: cfg.Fetch.Timeout},
		APIKey:    cfg.Fetch.APIKey,
		UserAgent: cfg.Fetch.UserAgent,
	}

	return runSite(cmd.Context(), client, cfg, os.Stdout, os.Stderr)
}

// runSite executes one complete run: fetch, filter, then the artifact
// writes. The fetch happens entirely before any write, so a fetch failure
// returns here with the previous artifacts untouched.
func runSite(ctx context.Context, client *scholar.Client, cfg *types.SiteConfig, stdout, stderr io.Writer) error {
	pubs, err := fetchWithFallback(ctx, client, cfg, stderr)
	if err != nil {
		return err
	}

	valid, skipped := scholar.FilterValid(pubs, stderr)
	if skipped > 0 {
		fmt.Fprintf(stderr, "skipped %d record(s) with missing titles\n", skipped)
	}

	status := history.StatusOK
	if len(valid) == 0 {
		if !cfg.Output.AllowEmpty {
			return fmt.Errorf("no publications for author %s; pass --allow-empty to write empty artifacts", cfg.AuthorID)
		}
		status = history.StatusEmpty
	}
	fetchedAt := time.Now().UTC()

	// The artifact writes are independent: one failing must not stop the
	// others, but any failure fails the run.
	var failures []string

	jsonPath := filepath.Join(cfg.Output.Dir, cfg.Output.JSONFile)
	if err := render.WriteJSON(valid, jsonPath); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		failures = append(failures, cfg.Output.JSONFile)
	} else {
		fmt.Fprintf(stdout, "wrote %s (%d records)\n", jsonPath, len(valid))
	}

	htmlPath := filepath.Join(cfg.Output.Dir, cfg.Output.HTMLFile)
	opts := render.HTMLOptions{
		MaxAuthors:  cfg.Output.MaxAuthors,
		GroupByYear: cfg.Output.GroupByYear,
	}
	if err := render.WriteHTML(valid, opts, htmlPath); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		failures = append(failures, cfg.Output.HTMLFile)
	} else {
		fmt.Fprintf(stdout, "wrote %s\n", htmlPath)
	}

	reportPath := filepath.Join(cfg.Output.Dir, cfg.Output.ReportFile)
	report := render.Report{
		AuthorID:   cfg.AuthorID,
		AuthorName: cfg.AuthorName,
		FetchedAt:  fetchedAt,
		Total:      len(valid),
		Skipped:    skipped,
	}
	if err := render.WriteReport(report, reportPath); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		failures = append(failures, cfg.Output.ReportFile)
	}

	// The run log is observability, not an artifact; a failure here only
	// warns.
	if cfg.History.DBPath != "" {
		if err := recordRun(cfg, fetchedAt, len(valid), skipped, status); err != nil {
			fmt.Fprintf(stderr, "warning: run log: %v\n", err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("failed writing %s", strings.Join(failures, ", "))
	}
	return nil
}

// fetchWithFallback fetches by author ID and, when that yields nothing and
// a name is configured, resolves the name to an ID and retries. On
// success cfg.AuthorID holds the ID that actually produced the list.
func fetchWithFallback(ctx context.Context, client *scholar.Client, cfg *types.SiteConfig, stderr io.Writer) ([]types.Publication, error) {
	var pubs []types.Publication
	var fetchErr error

	if cfg.AuthorID != "" {
		pubs, fetchErr = client.AuthorPapers(ctx, cfg.AuthorID, cfg.Fetch)
		if fetchErr != nil && !errors.Is(fetchErr, scholar.ErrAuthorNotFound) {
			return nil, fetchErr
		}
		if len(pubs) > 0 {
			return pubs, nil
		}
	}

	if cfg.AuthorName == "" {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return pubs, nil
	}

	fmt.Fprintf(stderr, "no results for author ID %q, searching by name %q\n", cfg.AuthorID, cfg.AuthorName)
	candidates, err := client.SearchAuthors(ctx, cfg.AuthorName, 5, cfg.Fetch)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return nil, fmt.Errorf("no author found matching %q", cfg.AuthorName)
	}

	cfg.AuthorID = candidates[0].ID
	fmt.Fprintf(stderr, "resolved %q to author ID %s\n", candidates[0].Name, cfg.AuthorID)
	return client.AuthorPapers(ctx, cfg.AuthorID, cfg.Fetch)
}

func recordRun(cfg *types.SiteConfig, fetchedAt time.Time, total, skipped int, status string) error {
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(history.Run{
		AuthorID:  cfg.AuthorID,
		FetchedAt: fetchedAt,
		Total:     total,
		Skipped:   skipped,
		Status:    status,
	})
}

// generateConfig assembles the run configuration: flags first, then the
// viper config file, then built-in defaults. The API key may also come
// from .secrets/semantic-scholar-api-key.
func generateConfig(cmd *cobra.Command) *types.SiteConfig {
	flags := cmd.Flags()

	authorID, _ := flags.GetString("author-id")
	if authorID == "" {
		authorID = viper.GetString("author_id")
	}
	authorName, _ := flags.GetString("author-name")
	if authorName == "" {
		authorName = viper.GetString("author_name")
	}

	timeout, _ := flags.GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	pageDelay, _ := flags.GetDuration("page-delay")
	if pageDelay == 0 {
		pageDelay = viper.GetDuration("fetch.page_delay")
	}
	if pageDelay == 0 {
		pageDelay = defaultPageDelay
	}
	pageSize, _ := flags.GetInt("page-size")
	if !flags.Changed("page-size") && viper.IsSet("fetch.page_size") {
		pageSize = viper.GetInt("fetch.page_size")
	}

	userAgent := viper.GetString("fetch.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	outDir, _ := flags.GetString("out-dir")
	if !flags.Changed("out-dir") && viper.IsSet("output.dir") {
		outDir = viper.GetString("output.dir")
	}
	jsonFile, _ := flags.GetString("json-file")
	if !flags.Changed("json-file") && viper.IsSet("output.json_file") {
		jsonFile = viper.GetString("output.json_file")
	}
	htmlFile, _ := flags.GetString("html-file")
	if !flags.Changed("html-file") && viper.IsSet("output.html_file") {
		htmlFile = viper.GetString("output.html_file")
	}
	reportFile, _ := flags.GetString("report-file")
	if !flags.Changed("report-file") && viper.IsSet("output.report_file") {
		reportFile = viper.GetString("output.report_file")
	}
	maxAuthors, _ := flags.GetInt("max-authors")
	if !flags.Changed("max-authors") && viper.IsSet("output.max_authors") {
		maxAuthors = viper.GetInt("output.max_authors")
	}
	flat, _ := flags.GetBool("flat")
	groupByYear := !flat
	if !flags.Changed("flat") && viper.IsSet("output.group_by_year") {
		groupByYear = viper.GetBool("output.group_by_year")
	}
	allowEmpty, _ := flags.GetBool("allow-empty")
	if !flags.Changed("allow-empty") && viper.IsSet("output.allow_empty") {
		allowEmpty = viper.GetBool("output.allow_empty")
	}

	noHistory, _ := flags.GetBool("no-history")
	historyDB, _ := flags.GetString("history-db")
	if historyDB == "" {
		historyDB = viper.GetString("history.db_path")
	}
	if noHistory {
		historyDB = ""
	} else if historyDB == "" {
		historyDB = filepath.Join(outDir, "runs.db")
	}

	return &types.SiteConfig{
		AuthorID:   authorID,
		AuthorName: authorName,
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: userAgent,
			},
			PageSize:  pageSize,
			PageDelay: pageDelay,
			APIKey:    secretDefault("semantic-scholar-api-key", viper.GetString("fetch.api_key")),
		},
		Output: types.OutputConfig{
			Dir:         outDir,
			JSONFile:    jsonFile,
			HTMLFile:    htmlFile,
			ReportFile:  reportFile,
			MaxAuthors:  maxAuthors,
			GroupByYear: groupByYear,
			AllowEmpty:  allowEmpty,
		},
		History: types.HistoryConfig{
			DBPath: historyDB,
		},
	}
}
