// Package server renders the paper browser: a list view with search and
// pagination, and a per-paper detail view over the extraction metadata.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcademic/web/internal/model"
)

// PaperService is what the handlers need from the catalog layer.
// *api.Client and *api.CachedClient both satisfy it.
type PaperService interface {
	FetchPapers(ctx context.Context, page, limit int, query string) (*model.PaperListResponse, error)
	FetchPaperDetail(ctx context.Context, id string) (*model.PaperDetail, error)
}

type Server struct {
	papers PaperService
	// pageSize is read per request so config hot-reload takes effect
	// without a restart.
	pageSize func() int
}

// New builds a Server over the given catalog service. pageSize returns
// the current list page size; nil means the default of 10.
func New(papers PaperService, pageSize func() int) *Server {
	if pageSize == nil {
		pageSize = func() int { return 10 }
	}
	return &Server{papers: papers, pageSize: pageSize}
}

// SetupRouter wires routes, middleware and the embedded templates.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())
	r.SetHTMLTemplate(pageTemplates())

	r.GET("/", s.ListPapers)
	r.GET("/papers/:id", s.PaperDetail)
	r.GET("/healthz", s.Health)
	r.NoRoute(s.NotFound)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound", notFoundView{
		Title:   "Page not found",
		Message: "The page you were looking for does not exist.",
	})
}
