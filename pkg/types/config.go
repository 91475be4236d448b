// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the Semantic
// Scholar API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. A bounded timeout keeps a hung
	// request from stalling a scheduled run indefinitely.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "pubpage/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for fetching an author's publication list.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of papers requested per API page (default 100,
	// the API maximum).
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageDelay is the pause between consecutive page requests (default 1s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// OutputConfig holds settings for the rendered artifacts.
type OutputConfig struct {
	// Dir is the directory artifacts are written into.
	Dir string `json:"dir" yaml:"dir"`

	// JSONFile, HTMLFile, and ReportFile are artifact filenames inside Dir.
	JSONFile   string `json:"json_file" yaml:"json_file"`
	HTMLFile   string `json:"html_file" yaml:"html_file"`
	ReportFile string `json:"report_file" yaml:"report_file"`

	// MaxAuthors caps the author names rendered per HTML entry; longer
	// lists end with ", ...". Zero means no cap.
	MaxAuthors int `json:"max_authors" yaml:"max_authors"`

	// GroupByYear renders the HTML fragment as year sections, newest first,
	// with year-less records in a trailing "Unknown" section. When false the
	// fragment is a single flat list in fetch order.
	GroupByYear bool `json:"group_by_year" yaml:"group_by_year"`

	// AllowEmpty makes a zero-result run write empty-but-valid artifacts
	// and exit 0 instead of failing.
	AllowEmpty bool `json:"allow_empty" yaml:"allow_empty"`
}

// HistoryConfig holds settings for the run log.
type HistoryConfig struct {
	// DBPath is the SQLite database file for the run log. Empty disables
	// history recording.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// SiteConfig groups all configuration for one pubpage run.
type SiteConfig struct {
	// AuthorID is the Semantic Scholar author identifier to fetch.
	AuthorID string `json:"author_id" yaml:"author_id"`

	// AuthorName is used to search for an ID when AuthorID yields nothing.
	AuthorName string `json:"author_name,omitempty" yaml:"author_name,omitempty"`

	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	History HistoryConfig `json:"history" yaml:"history"`
}
