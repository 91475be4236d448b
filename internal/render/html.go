// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pubpage/pkg/types"
)

// HTMLOptions controls the shape of the rendered fragment.
type HTMLOptions struct {
	// MaxAuthors caps the author names rendered per entry; longer lists
	// end with ", ...". Zero means no cap.
	MaxAuthors int

	// GroupByYear renders year sections, newest first, with year-less
	// records in a trailing "Unknown" section. When false the fragment is
	// one flat list in input order.
	GroupByYear bool
}

// fragmentTmpl renders the embeddable fragment. No <head> and no
// timestamps: the fragment is injected into a host page, and identical
// input must produce identical bytes.
var fragmentTmpl = template.Must(template.New("fragment").Parse(`<!-- pubpage publications fragment -->
<style>
.pub-list { list-style-type: decimal; }
.pub-item { margin-bottom: 1em; }
.pub-venue { font-style: italic; }
.pub-authors { color: #666; }
.pub-links a { margin-right: 1em; text-decoration: none; color: #0066cc; }
.pub-links a:hover { text-decoration: underline; }
</style>
<p class="pub-total"><strong>Total publications: {{.Total}}</strong></p>
{{- range .Sections}}
{{- if .Label}}
<h3>{{.Label}}</h3>
{{- end}}
<ol class="pub-list">
{{- range .Items}}
<li class="pub-item">
{{- if .URL}}
<a class="pub-title" href="{{.URL}}">{{.Title}}</a>
{{- else}}
<span class="pub-title">{{.Title}}</span>
{{- end}}
{{- with .VenueLine}}
<br><span class="pub-venue">{{.}}</span>
{{- end}}
{{- with .AuthorLine}}
<br><span class="pub-authors">{{.}}</span>
{{- end}}
{{- if .HasLinks}}
<div class="pub-links">
{{- if .DOI}}
<a href="https://doi.org/{{.DOI}}" target="_blank">[DOI]</a>
{{- end}}
{{- if .ArXiv}}
<a href="https://arxiv.org/abs/{{.ArXiv}}" target="_blank">[arXiv]</a>
{{- end}}
{{- if .PubMed}}
<a href="https://pubmed.ncbi.nlm.nih.gov/{{.PubMed}}" target="_blank">[PubMed]</a>
{{- end}}
</div>
{{- end}}
</li>
{{- end}}
</ol>
{{- end}}
`))

type fragmentData struct {
	Total    int
	Sections []section
}

type section struct {
	Label string
	Items []entry
}

type entry struct {
	Title      string
	URL        string
	VenueLine  string
	AuthorLine string
	DOI        string
	ArXiv      string
	PubMed     string
}

// HasLinks reports whether the entry renders an external-links block.
func (e entry) HasLinks() bool {
	return e.DOI != "" || e.ArXiv != "" || e.PubMed != ""
}

// RenderHTML writes the HTML fragment for pubs to w.
func RenderHTML(pubs []types.Publication, opts HTMLOptions, w io.Writer) error {
	data := fragmentData{
		Total:    len(pubs),
		Sections: buildSections(pubs, opts),
	}
	return fragmentTmpl.Execute(w, data)
}

// WriteHTML renders the fragment and writes it atomically to path.
func WriteHTML(pubs []types.Publication, opts HTMLOptions, path string) error {
	var buf bytes.Buffer
	if err := RenderHTML(pubs, opts, &buf); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// buildSections groups publications for rendering. Grouped mode emits one
// section per year, newest first, year-less records last under "Unknown";
// within a section the fetch order is preserved. Flat mode is a single
// unlabeled section in fetch order.
func buildSections(pubs []types.Publication, opts HTMLOptions) []section {
	if len(pubs) == 0 {
		return nil
	}

	if !opts.GroupByYear {
		return []section{{Items: toEntries(pubs, opts)}}
	}

	byYear := make(map[int][]types.Publication)
	var years []int
	for _, p := range pubs {
		year := p.Year // 0 collects the year-less records
		if _, seen := byYear[year]; !seen {
			years = append(years, year)
		}
		byYear[year] = append(byYear[year], p)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	// Reverse order puts 0 (unknown) last already.

	sections := make([]section, 0, len(years))
	for _, year := range years {
		label := "Unknown"
		if year > 0 {
			label = strconv.Itoa(year)
		}
		sections = append(sections, section{
			Label: label,
			Items: toEntries(byYear[year], opts),
		})
	}
	return sections
}

func toEntries(pubs []types.Publication, opts HTMLOptions) []entry {
	entries := make([]entry, len(pubs))
	for i, p := range pubs {
		entries[i] = entry{
			Title:      p.Title,
			URL:        p.URL,
			VenueLine:  venueLine(p),
			AuthorLine: authorLine(p.Authors, opts.MaxAuthors),
			DOI:        p.DOI,
			ArXiv:      p.ArXiv,
			PubMed:     p.PubMed,
		}
	}
	return entries
}

// venueLine formats the venue and year for one entry, e.g.
// "Bioinformatics, 2021". Missing parts are omitted, never left as empty
// placeholders.
func venueLine(p types.Publication) string {
	switch {
	case p.Venue != "" && p.HasYear():
		return fmt.Sprintf("%s, %d", p.Venue, p.Year)
	case p.Venue != "":
		return p.Venue
	case p.HasYear():
		return strconv.Itoa(p.Year)
	default:
		return ""
	}
}

// authorLine joins author names, truncating long lists with ", ...".
func authorLine(authors []string, maxAuthors int) string {
	if len(authors) == 0 {
		return ""
	}
	if maxAuthors > 0 && len(authors) > maxAuthors {
		return strings.Join(authors[:maxAuthors], ", ") + ", ..."
	}
	return strings.Join(authors, ", ")
}
