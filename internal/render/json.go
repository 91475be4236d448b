// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a fetched publication list into the output
// artifacts: a JSON snapshot, an embeddable HTML fragment, and a YAML run
// report. Artifacts are written whole-file via temp-and-rename; given the
// same input the bytes are identical run to run.
package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/pubpage/pkg/types"
)

// WriteJSON writes the publication list as an indented JSON array. An
// empty run writes a valid empty array, never a bare null.
func WriteJSON(pubs []types.Publication, path string) error {
	if pubs == nil {
		pubs = []types.Publication{}
	}
	data, err := json.MarshalIndent(pubs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling publications: %w", err)
	}
	data = append(data, '\n')
	return writeFileAtomic(path, data)
}

// ReadJSON loads a previously written JSON snapshot, for re-rendering the
// HTML fragment without a network fetch.
func ReadJSON(path string) ([]types.Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var pubs []types.Publication
	if err := json.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return pubs, nil
}
