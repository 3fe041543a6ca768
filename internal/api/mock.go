package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alcademic/web/internal/model"
)

// mockIDPrefix marks ids produced by the placeholder generator. The
// detail fallback only synthesizes records for ids carrying it.
const mockIDPrefix = "mock-"

// mockTotalItems is the pretend catalog size used for placeholder list
// responses. Fixed so pagination stays stable across fallback pages.
const mockTotalItems = 10000

var mockVenues = []string{
	"NeurIPS", "ICML", "ICLR", "CVPR", "ACL",
}

var mockKeywords = []string{
	"Representation Learning", "Time Series", "Image Generation",
	"Reinforcement Learning", "Graph Neural Networks", "Speech Synthesis",
}

// IsMockID reports whether id was produced by the placeholder generator.
func IsMockID(id string) bool {
	return strings.HasPrefix(id, mockIDPrefix)
}

// MockListResponse builds a deterministic placeholder page of exactly
// limit papers for the given page and query. TotalPages is derived from
// the fixed catalog size, so the pagination controls remain exercisable.
func MockListResponse(page, limit int, query string) *model.PaperListResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	papers := make([]model.PaperMeta, limit)
	for i := range papers {
		papers[i] = mockMeta(page, i, query)
	}
	return &model.PaperListResponse{
		Papers:      papers,
		TotalItems:  mockTotalItems,
		TotalPages:  (mockTotalItems + limit - 1) / limit,
		CurrentPage: page,
	}
}

func mockMeta(page, index int, query string) model.PaperMeta {
	title := fmt.Sprintf("Placeholder Paper %d (page %d)", index+1, page)
	if query != "" {
		title = fmt.Sprintf("%s matching %q", title, query)
	}
	n := page + index
	return model.PaperMeta{
		ID:    fmt.Sprintf("%s%d-%d", mockIDPrefix, page, index),
		Title: title,
		Authors: []string{
			fmt.Sprintf("A. Placeholder %d", index+1),
			"B. Synthetic",
		},
		Year:             2019 + n%6,
		PublicationVenue: mockVenues[n%len(mockVenues)],
		AbstractSnippet:  "Synthetic abstract snippet shown because the catalog backend is unreachable.",
		HasPdf:           index%2 == 0,
		Keywords: []string{
			mockKeywords[n%len(mockKeywords)],
			mockKeywords[(n+2)%len(mockKeywords)],
		},
	}
}

// MockDetail builds the placeholder detail record for a mock id. Ids not
// matching the generated "mock-{page}-{index}" shape still get a record,
// anchored at page 1 index 0, so a stale placeholder link never dead-ends.
// ExtractedInfo is present except when index % 3 == 2, which keeps the
// processing and metadata-only detail states reachable offline.
func MockDetail(id string) *model.PaperDetail {
	page, index := parseMockID(id)
	meta := mockMeta(page, index, "")
	meta.ID = id

	detail := &model.PaperDetail{
		PaperMeta: meta,
		Abstract: "This is a synthetic abstract generated locally because the paper catalog " +
			"could not be reached. It stands in for the real record so the detail view " +
			"stays navigable during demos and offline development.",
	}
	if index%3 != 2 {
		source := model.SourceMeta
		if meta.HasPdf {
			source = model.SourcePDF
		}
		detail.ExtractedInfo = &model.ExtractedInfo{
			ProblemStatement: "Placeholder problem statement describing the research gap the paper addresses.",
			Methodology:      "Placeholder methodology summary.",
			CodeLink:         "https://example.com/placeholder-code",
			Benchmark:        "PlaceholderBench",
			Dataset:          "Synthetic-1M",
			Results:          "Outperforms the baseline on all synthetic metrics.",
			Source:           source,
		}
	}
	return detail
}

func parseMockID(id string) (page, index int) {
	page, index = 1, 0
	rest, ok := strings.CutPrefix(id, mockIDPrefix)
	if !ok {
		return page, index
	}
	parts := strings.SplitN(rest, "-", 2)
	if len(parts) != 2 {
		return page, index
	}
	if p, err := strconv.Atoi(parts[0]); err == nil && p > 0 {
		page = p
	}
	if i, err := strconv.Atoi(parts[1]); err == nil && i >= 0 {
		index = i
	}
	return page, index
}
