// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/pubpage/internal/httputil"
	"github.com/pdiddy/pubpage/pkg/types"
)

// SearchAuthors queries the author-search endpoint by display name and
// returns candidate IDs. Used by the resolve command and as a fallback
// when the configured author ID yields nothing.
func (c *Client) SearchAuthors(ctx context.Context, name string, limit int, cfg types.FetchConfig) ([]types.AuthorCandidate, error) {
	if name == "" {
		return nil, fmt.Errorf("empty author name")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{
		"query":  {name},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {"name,paperCount"},
	}
	reqURL := c.baseURL() + "/author/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr authorSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing author search response: %w", err)
	}

	var candidates []types.AuthorCandidate
	for _, a := range sr.Data {
		candidates = append(candidates, types.AuthorCandidate{
			ID:         a.AuthorID,
			Name:       a.Name,
			PaperCount: a.PaperCount,
		})
	}
	return candidates, nil
}

type authorSearchResponse struct {
	Total int                  `json:"total"`
	Data  []authorSearchResult `json:"data"`
}

type authorSearchResult struct {
	AuthorID   string `json:"authorId"`
	Name       string `json:"name"`
	PaperCount int    `json:"paperCount"`
}
