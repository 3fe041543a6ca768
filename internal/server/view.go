package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/alcademic/web/internal/model"
)

type paperItem struct {
	ID       string
	Title    string
	Authors  string
	Year     int
	Venue    string
	Snippet  string
	HasPdf   bool
	Keywords []string
}

type pagination struct {
	Show        bool
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

type listView struct {
	Title      string
	Query      string
	Papers     []paperItem
	Empty      bool
	Pagination pagination
}

type detailView struct {
	Title     string
	Paper     paperItem
	Abstract  string
	// Exactly one of Processing/MetadataOnly is set when ExtractedInfo
	// is absent; Fields is populated otherwise.
	Processing   bool
	MetadataOnly bool
	Fields       []extractedField
	Source       string
}

type extractedField struct {
	Label  string
	Value  string
	IsLink bool
}

type errorView struct {
	Title    string
	Message  string
	RetryURL string
}

type notFoundView struct {
	Title   string
	Message string
}

func newPaperItem(m model.PaperMeta) paperItem {
	return paperItem{
		ID:       m.ID,
		Title:    m.Title,
		Authors:  strings.Join(m.Authors, ", "),
		Year:     m.Year,
		Venue:    m.PublicationVenue,
		Snippet:  m.AbstractSnippet,
		HasPdf:   m.HasPdf,
		Keywords: m.Keywords,
	}
}

func buildListView(resp *model.PaperListResponse, params listParams) listView {
	view := listView{
		Title: "Papers",
		Query: params.Query,
		Empty: len(resp.Papers) == 0,
	}
	for _, p := range resp.Papers {
		view.Papers = append(view.Papers, newPaperItem(p))
	}

	view.Pagination = pagination{
		Show:        resp.TotalPages > 1,
		HasPrev:     resp.CurrentPage > 1,
		HasNext:     resp.CurrentPage < resp.TotalPages,
		PrevURL:     listURL(resp.CurrentPage-1, params.Query),
		NextURL:     listURL(resp.CurrentPage+1, params.Query),
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
		TotalItems:  resp.TotalItems,
	}
	return view
}

// listURL builds the list route for a page/query pair. The query is
// omitted when empty so the canonical list URL stays clean.
func listURL(page int, query string) string {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if query != "" {
		params.Set("query", query)
	}
	if len(params) == 0 {
		return "/"
	}
	return "/?" + params.Encode()
}

func buildDetailView(d *model.PaperDetail) detailView {
	view := detailView{
		Title:    d.Title,
		Paper:    newPaperItem(d.PaperMeta),
		Abstract: d.Abstract,
	}

	if d.ExtractedInfo == nil {
		view.Processing = d.HasPdf
		view.MetadataOnly = !d.HasPdf
		return view
	}

	info := d.ExtractedInfo
	view.Source = string(info.Source)
	view.Fields = extractedFields(info)
	return view
}

// extractedFields lists every present field in display order; empty
// fields are omitted individually. An http(s) value renders as a link.
func extractedFields(info *model.ExtractedInfo) []extractedField {
	ordered := []struct {
		label string
		value string
	}{
		{"Problem statement", info.ProblemStatement},
		{"Methodology", info.Methodology},
		{"Code", info.CodeLink},
		{"Benchmark", info.Benchmark},
		{"Dataset", info.Dataset},
		{"Results", info.Results},
	}

	var fields []extractedField
	for _, f := range ordered {
		if f.value == "" {
			continue
		}
		fields = append(fields, extractedField{
			Label:  f.label,
			Value:  f.value,
			IsLink: strings.HasPrefix(f.value, "http"),
		})
	}
	return fields
}
