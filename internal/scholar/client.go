// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar fetches an author's publication list from the Semantic
// Scholar graph API.
package scholar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/pubpage/internal/httputil"
	"github.com/pdiddy/pubpage/pkg/types"
)

// scholarAPIBase is the Semantic Scholar graph API root. Declared as a var
// so tests can substitute an httptest server.
var scholarAPIBase = "https://api.semanticscholar.org/graph/v1"

// paperFields is the bounded field list requested per paper. Keeping it
// explicit trims the payload to what the artifacts actually render.
const paperFields = "title,year,venue,authors,url,externalIds,citationCount"

// ErrAuthorNotFound is returned when the API reports no author for the
// configured identifier. Distinct from a transient fetch failure: the ID
// is wrong, and retrying the schedule will not fix it.
var ErrAuthorNotFound = errors.New("author not found")

// Client issues requests against the Semantic Scholar graph API.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	UserAgent string

	// BaseURL overrides the API root when non-empty, so callers outside
	// this package can point the client at a test server.
	BaseURL string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return scholarAPIBase
}

// AuthorPapers fetches the complete publication list for authorID,
// following the API's continuation offsets until all pages are consumed.
// Records are accumulated in the order the API returns them. The slice may
// contain records without a title; callers run FilterValid before
// rendering.
func (c *Client) AuthorPapers(ctx context.Context, authorID string, cfg types.FetchConfig) ([]types.Publication, error) {
	if authorID == "" {
		return nil, fmt.Errorf("empty author ID")
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	var pubs []types.Publication
	offset := 0
	for page := 0; ; page++ {
		if page > 0 && cfg.PageDelay > 0 {
			time.Sleep(cfg.PageDelay)
		}

		pr, err := c.papersPage(ctx, authorID, offset, pageSize, cfg)
		if err != nil {
			return nil, err
		}

		for _, p := range pr.Data {
			pubs = append(pubs, toPublication(p))
		}

		if len(pr.Data) == 0 || pr.Next <= 0 {
			break
		}
		offset = pr.Next
	}

	return pubs, nil
}

// papersPage fetches a single page of the author's paper list.
func (c *Client) papersPage(ctx context.Context, authorID string, offset, limit int, cfg types.FetchConfig) (*papersResponse, error) {
	params := url.Values{
		"fields": {paperFields},
		"limit":  {fmt.Sprintf("%d", limit)},
		"offset": {fmt.Sprintf("%d", offset)},
	}
	reqURL := c.baseURL() + "/author/" + url.PathEscape(authorID) + "/papers?" + params.Encode()

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

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("author %s: %w", authorID, ErrAuthorNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var pr papersResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return &pr, nil
}

// toPublication maps one API paper record to the artifact representation.
func toPublication(p paperRecord) types.Publication {
	pub := types.Publication{
		Title:         strings.TrimSpace(p.Title),
		Year:          p.Year,
		Venue:         strings.TrimSpace(p.Venue),
		URL:           p.URL,
		DOI:           p.ExternalIDs.DOI,
		ArXiv:         p.ExternalIDs.ArXiv,
		PubMed:        p.ExternalIDs.PubMed,
		CitationCount: p.CitationCount,
	}
	for _, a := range p.Authors {
		if a.Name != "" {
			pub.Authors = append(pub.Authors, a.Name)
		}
	}
	return pub
}

// FilterValid drops records without a title, warning on w for each one.
// It returns the clean sequence and the number of records dropped, so the
// run report and log can account for every skipped entry. Order of the
// surviving records is unchanged.
func FilterValid(pubs []types.Publication, w io.Writer) ([]types.Publication, int) {
	valid := make([]types.Publication, 0, len(pubs))
	skipped := 0
	for i, p := range pubs {
		if p.Title == "" {
			skipped++
			fmt.Fprintf(w, "warning: dropping record %d: missing title\n", i)
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}

// Semantic Scholar API JSON structures.
type papersResponse struct {
	Offset int           `json:"offset"`
	Next   int           `json:"next"`
	Data   []paperRecord `json:"data"`
}

type paperRecord struct {
	PaperID       string           `json:"paperId"`
	Title         string           `json:"title"`
	Year          int              `json:"year"`
	Venue         string           `json:"venue"`
	URL           string           `json:"url"`
	CitationCount int              `json:"citationCount"`
	Authors       []paperAuthor    `json:"authors"`
	ExternalIDs   paperExternalIDs `json:"externalIds"`
}

type paperAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type paperExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	PubMed   string `json:"PubMed"`
	CorpusID int    `json:"CorpusId"`
}
