package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// listParams is the navigation state of the list view, carried entirely
// in the URL.
type listParams struct {
	Page  int
	Query string
}

// parseListParams validates the list query parameters: page must be a
// positive integer (anything else coerces to 1), query is a trimmed
// string (absent coerces to empty).
func parseListParams(c *gin.Context) listParams {
	p := listParams{Page: 1}

	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	p.Query = strings.TrimSpace(c.Query("query"))

	return p
}
