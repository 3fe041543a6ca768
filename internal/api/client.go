// Package api wraps the remote paper catalog HTTP API. When the catalog
// is unreachable and the fallback is enabled it serves deterministic
// placeholder data so the UI stays browsable without a live backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alcademic/web/internal/model"
)

// ErrNotFound signals that the catalog has no record for the requested id.
var ErrNotFound = errors.New("paper not found")

// Client talks to the catalog API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Fallback controls whether transport failures are replaced with
	// placeholder data. It is atomic so config hot-reload can flip it
	// while requests are in flight. Every served placeholder is logged,
	// otherwise a dead backend is indistinguishable from a real catalog.
	Fallback atomic.Bool
}

// NewClient builds a catalog client. fallback enables the placeholder
// response on transport failures.
func NewClient(baseURL string, timeout time.Duration, fallback bool) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	c.Fallback.Store(fallback)
	return c
}

// FetchPapers fetches one list page. page and limit are clamped to >= 1,
// search is omitted from the request when empty. On any transport failure
// (connection error, non-2xx status, undecodable body) a placeholder page
// of exactly limit papers is returned if the fallback is enabled.
func (c *Client) FetchPapers(ctx context.Context, page, limit int, query string) (*model.PaperListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	params := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	if query != "" {
		params.Set("search", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/papers?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return c.listFallback(page, limit, query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.listFallback(page, limit, query, fmt.Errorf("catalog returned HTTP %d", resp.StatusCode))
	}

	var list model.PaperListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return c.listFallback(page, limit, query, fmt.Errorf("decoding list response: %w", err))
	}
	return &list, nil
}

func (c *Client) listFallback(page, limit int, query string, cause error) (*model.PaperListResponse, error) {
	if !c.Fallback.Load() {
		return nil, fmt.Errorf("listing papers: %w", cause)
	}
	log.Printf("catalog unreachable, serving placeholder page %d: %v", page, cause)
	return MockListResponse(page, limit, query), nil
}

// FetchPaperDetail fetches a single paper. A 404 from the catalog maps to
// ErrNotFound. A transport failure yields a synthetic record only when the
// id carries the placeholder prefix and the fallback is enabled; any other
// unreachable-catalog id is reported as ErrNotFound rather than an error,
// matching the catalog's own absence signal.
func (c *Client) FetchPaperDetail(ctx context.Context, id string) (*model.PaperDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/papers/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("building detail request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if !c.Fallback.Load() {
			return nil, fmt.Errorf("fetching paper %q: %w", id, err)
		}
		if IsMockID(id) {
			log.Printf("catalog unreachable, serving placeholder detail for %s: %v", id, err)
			return MockDetail(id), nil
		}
		return nil, ErrNotFound
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching paper %q: catalog returned HTTP %d", id, resp.StatusCode)
	}

	var detail model.PaperDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("decoding paper %q: %w", id, err)
	}
	return &detail, nil
}

// IsNotFound classifies an error as an absence rather than a failure:
// ErrNotFound itself, or any error whose text mentions "not found"
// case-insensitively (the catalog's 404 bodies surface that way through
// intermediate layers).
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
