package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcademic/web/internal/api"
)

// ListPapers renders the list view for the page/query pair carried in
// the URL. A fetch failure renders the error page with a retry link that
// re-issues the same navigation.
func (s *Server) ListPapers(c *gin.Context) {
	params := parseListParams(c)

	resp, err := s.papers.FetchPapers(c.Request.Context(), params.Page, s.pageSize(), params.Query)
	if err != nil {
		log.Printf("list fetch failed (page=%d query=%q): %v", params.Page, params.Query, err)
		c.HTML(http.StatusBadGateway, "error", errorView{
			Title:    "Papers",
			Message:  "Could not load papers from the catalog.",
			RetryURL: c.Request.URL.RequestURI(),
		})
		return
	}

	c.HTML(http.StatusOK, "list", buildListView(resp, params))
}

// PaperDetail renders one of the detail states: not-found, error,
// processing, metadata-only, or the complete extraction view.
func (s *Server) PaperDetail(c *gin.Context) {
	id := c.Param("id")

	detail, err := s.papers.FetchPaperDetail(c.Request.Context(), id)
	switch {
	case err != nil && api.IsNotFound(err):
		c.HTML(http.StatusNotFound, "notfound", notFoundView{
			Title:   "Paper not found",
			Message: "No paper with id " + id + " exists in the catalog.",
		})
		return
	case err != nil:
		log.Printf("detail fetch failed (id=%s): %v", id, err)
		c.HTML(http.StatusBadGateway, "error", errorView{
			Title:    "Paper",
			Message:  "Could not load this paper from the catalog.",
			RetryURL: c.Request.URL.RequestURI(),
		})
		return
	}

	c.HTML(http.StatusOK, "detail", buildDetailView(detail))
}
