// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data structures for pubpage: publication
// records fetched from Semantic Scholar and the configuration blocks that
// drive a run.
package types

// Publication holds one paper's metadata as returned by the Semantic
// Scholar graph API. A record is valid only when Title is non-empty;
// records without a title are filtered out before rendering.
//
// Field order is fixed: encoding/json emits struct fields in declaration
// order, and the JSON snapshot must diff cleanly across weekly runs.
type Publication struct {
	// Title is the paper title. Required.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, 0 when the API has none.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name, possibly empty.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// URL is the Semantic Scholar paper page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DOI, ArXiv, and PubMed are external identifiers used to render
	// per-paper links. Any of them may be empty.
	DOI    string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ArXiv  string `json:"arxiv,omitempty" yaml:"arxiv,omitempty"`
	PubMed string `json:"pubmed,omitempty" yaml:"pubmed,omitempty"`

	// CitationCount is the citation total reported by the API.
	CitationCount int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
}

// HasYear reports whether the record carries a publication year.
func (p Publication) HasYear() bool { return p.Year > 0 }

// AuthorCandidate is one hit from an author-search-by-name query, used to
// resolve an author ID when the configured one yields nothing.
type AuthorCandidate struct {
	ID         string `json:"author_id" yaml:"author_id"`
	Name       string `json:"name" yaml:"name"`
	PaperCount int    `json:"paper_count" yaml:"paper_count"`
}
