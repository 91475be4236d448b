// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubpage/pkg/types"
)

func samplePubs() []types.Publication {
	return []types.Publication{
		{
			Title:   "Graph Embeddings for Bio Networks",
			Year:    2021,
			Venue:   "Bioinformatics",
			Authors: []string{"T. Le", "A. Smith"},
			URL:     "https://doi.org/x",
			DOI:     "10.1093/bio/x",
		},
		{
			Title: "Untitled Preprint",
		},
	}
}

// --- JSON artifact ---

func TestWriteJSONRecordCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	require.NoError(t, WriteJSON(samplePubs(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []types.Publication
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 2)
	assert.Equal(t, samplePubs(), got)
}

func TestWriteJSONEmptyIsValidArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	require.NoError(t, WriteJSON(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteJSONIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publications.json")

	require.NoError(t, WriteJSON(samplePubs(), path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteJSON(samplePubs(), path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical bytes")
}

func TestWriteJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(samplePubs(), filepath.Join(dir, "publications.json")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestWriteJSONOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	require.NoError(t, WriteJSON([]types.Publication{{Title: "Untitled Preprint"}}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"title"`)
	assert.NotContains(t, s, `"year"`)
	assert.NotContains(t, s, `"venue"`)
	assert.NotContains(t, s, `"authors"`)
	assert.NotContains(t, s, `"url"`)
}

func TestReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	require.NoError(t, WriteJSON(samplePubs(), path))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, samplePubs(), got)
}

func TestReadJSONMissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

// --- HTML artifact ---

func grouped() HTMLOptions { return HTMLOptions{GroupByYear: true} }

func renderToString(t *testing.T, pubs []types.Publication, opts HTMLOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(pubs, opts, &buf))
	return buf.String()
}

func TestRenderHTMLFullRecord(t *testing.T) {
	out := renderToString(t, samplePubs()[:1], grouped())

	assert.Contains(t, out, `<a class="pub-title" href="https://doi.org/x">Graph Embeddings for Bio Networks</a>`)
	assert.Contains(t, out, `<span class="pub-venue">Bioinformatics, 2021</span>`)
	assert.Contains(t, out, `<span class="pub-authors">T. Le, A. Smith</span>`)
	assert.Contains(t, out, `href="https://doi.org/10.1093/bio/x"`)
	assert.Contains(t, out, "<h3>2021</h3>")
}

func TestRenderHTMLTitleOnlyRecord(t *testing.T) {
	out := renderToString(t, []types.Publication{{Title: "Untitled Preprint"}}, grouped())

	// Title as plain text, no empty placeholders for the missing fields.
	assert.Contains(t, out, `<span class="pub-title">Untitled Preprint</span>`)
	assert.NotContains(t, out, `<span class="pub-venue">`)
	assert.NotContains(t, out, `<span class="pub-authors">`)
	assert.NotContains(t, out, `<div class="pub-links">`)
	assert.Contains(t, out, "<h3>Unknown</h3>")
}

func TestRenderHTMLBlockCount(t *testing.T) {
	pubs := []types.Publication{
		{Title: "A", Year: 2020},
		{Title: "B", Year: 2020},
		{Title: "C"},
	}
	out := renderToString(t, pubs, grouped())
	assert.Equal(t, 3, strings.Count(out, `<li class="pub-item">`))
	assert.Contains(t, out, "Total publications: 3")
}

func TestRenderHTMLYearSectionsNewestFirstUnknownLast(t *testing.T) {
	pubs := []types.Publication{
		{Title: "Old", Year: 2015},
		{Title: "Dateless"},
		{Title: "New", Year: 2024},
	}
	out := renderToString(t, pubs, grouped())

	i2024 := strings.Index(out, "<h3>2024</h3>")
	i2015 := strings.Index(out, "<h3>2015</h3>")
	iUnknown := strings.Index(out, "<h3>Unknown</h3>")
	require.True(t, i2024 >= 0 && i2015 >= 0 && iUnknown >= 0, "missing section: %s", out)
	assert.Less(t, i2024, i2015)
	assert.Less(t, i2015, iUnknown)
}

func TestRenderHTMLFlatPreservesInputOrder(t *testing.T) {
	pubs := []types.Publication{
		{Title: "Second Paper", Year: 2010},
		{Title: "First Paper", Year: 2024},
	}
	out := renderToString(t, pubs, HTMLOptions{})

	assert.NotContains(t, out, "<h3>")
	assert.Less(t, strings.Index(out, "Second Paper"), strings.Index(out, "First Paper"))
}

func TestRenderHTMLAuthorTruncation(t *testing.T) {
	pubs := []types.Publication{{
		Title:   "Crowded",
		Authors: []string{"A One", "B Two", "C Three", "D Four"},
	}}
	out := renderToString(t, pubs, HTMLOptions{MaxAuthors: 2, GroupByYear: true})

	assert.Contains(t, out, `<span class="pub-authors">A One, B Two, ...</span>`)
	assert.NotContains(t, out, "C Three")
}

func TestRenderHTMLEscapesTitles(t *testing.T) {
	pubs := []types.Publication{{Title: `<script>alert("x")</script>`}}
	out := renderToString(t, pubs, grouped())

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTMLIsFragment(t *testing.T) {
	out := renderToString(t, samplePubs(), grouped())
	assert.NotContains(t, out, "<head>")
	assert.NotContains(t, out, "<html")
}

func TestRenderHTMLEmptyList(t *testing.T) {
	out := renderToString(t, nil, grouped())
	assert.Contains(t, out, "Total publications: 0")
	assert.NotContains(t, out, "<li")
}

func TestWriteHTMLIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.html")

	require.NoError(t, WriteHTML(samplePubs(), grouped(), path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteHTML(samplePubs(), grouped(), path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// --- Run report ---

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	want := Report{
		AuthorID:  "2482441",
		FetchedAt: time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
		Total:     42,
		Skipped:   1,
	}
	require.NoError(t, WriteReport(want, path))

	got, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, want.AuthorID, got.AuthorID)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))
	assert.Equal(t, want.Total, got.Total)
	assert.Equal(t, want.Skipped, got.Skipped)
}
