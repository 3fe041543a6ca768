package model

// ExtractionSource tags the provenance of extracted metadata: "pdf" means
// the fields came from full-text PDF analysis, "meta" means only the
// bibliographic record (title, authors, abstract) was available.
type ExtractionSource string

const (
	SourceMeta ExtractionSource = "meta"
	SourcePDF  ExtractionSource = "pdf"
)

// PaperMeta is one entry of a catalog list page.
type PaperMeta struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Year             int      `json:"year,omitempty"`
	PublicationVenue string   `json:"publicationVenue,omitempty"`
	AbstractSnippet  string   `json:"abstractSnippet,omitempty"`
	HasPdf           bool     `json:"hasPdf"`
	Keywords         []string `json:"keywords,omitempty"`
}

// PaperDetail is the full record behind a detail page.
type PaperDetail struct {
	PaperMeta
	Abstract      string         `json:"abstract,omitempty"`
	ExtractedInfo *ExtractedInfo `json:"extractedInfo"`
}

// ExtractedInfo holds the fields pulled out of a paper by the extraction
// batch pipeline. Every field except Source is optional; absent fields are
// empty strings.
type ExtractedInfo struct {
	ProblemStatement string           `json:"problemStatement,omitempty"`
	Methodology      string           `json:"methodology,omitempty"`
	CodeLink         string           `json:"codeLink,omitempty"`
	Benchmark        string           `json:"benchmark,omitempty"`
	Dataset          string           `json:"dataset,omitempty"`
	Results          string           `json:"results,omitempty"`
	Source           ExtractionSource `json:"source"`
}

// PaperListResponse is the catalog list endpoint payload.
// TotalPages = ceil(TotalItems / pageSize) for the limit that produced it.
type PaperListResponse struct {
	Papers      []PaperMeta `json:"papers"`
	TotalItems  int         `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}
