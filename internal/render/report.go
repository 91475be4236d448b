// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report summarizes one run for the repository: which author was fetched,
// when, and how many records survived filtering. The timestamp lives here
// rather than in the JSON/HTML artifacts so those stay byte-identical
// when the publication list has not changed.
type Report struct {
	AuthorID   string    `yaml:"author_id"`
	AuthorName string    `yaml:"author_name,omitempty"`
	FetchedAt  time.Time `yaml:"fetched_at"`
	Total      int       `yaml:"total"`
	Skipped    int       `yaml:"skipped"`
}

// WriteReport writes the run report as YAML, atomically.
func WriteReport(r Report, path string) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return writeFileAtomic(path, data)
}

// ReadReport loads a run report from disk.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
