package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcademic/web/internal/model"
)

const sampleListJSON = `{
	"papers": [
		{
			"id": "w-1",
			"title": "Attention Is All You Need",
			"authors": ["Ashish Vaswani", "Noam Shazeer"],
			"year": 2017,
			"publicationVenue": "NeurIPS",
			"abstractSnippet": "We propose a new architecture...",
			"hasPdf": true,
			"keywords": ["Transformers"]
		},
		{
			"id": "w-2",
			"title": "BERT",
			"authors": ["Jacob Devlin"],
			"hasPdf": false
		}
	],
	"totalItems": 42,
	"totalPages": 5,
	"currentPage": 2
}`

const sampleDetailJSON = `{
	"id": "w-1",
	"title": "Attention Is All You Need",
	"authors": ["Ashish Vaswani"],
	"hasPdf": true,
	"abstract": "We propose a new architecture based on attention.",
	"extractedInfo": {
		"problemStatement": "Sequence transduction relies on recurrence.",
		"methodology": "Self-attention only.",
		"codeLink": "https://github.com/tensorflow/tensor2tensor",
		"source": "pdf"
	}
}`

func newTestClient(baseURL string, fallback bool) *Client {
	return NewClient(baseURL, 2*time.Second, fallback)
}

// deadServer returns a base URL that refuses connections.
func deadServer(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()
	return ts.URL
}

func TestFetchPapersSendsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, sampleListJSON)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, false)
	_, err := c.FetchPapers(context.Background(), 2, 10, "neural networks")
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
	assert.Equal(t, []string{"neural networks"}, gotQuery["search"])
}

func TestFetchPapersOmitsEmptySearch(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, sampleListJSON)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, false)
	_, err := c.FetchPapers(context.Background(), 1, 10, "")
	require.NoError(t, err)

	_, present := gotQuery["search"]
	assert.False(t, present, "search param should be omitted when empty")
}

func TestFetchPapersClampsPageAndLimit(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, sampleListJSON)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, false)
	_, err := c.FetchPapers(context.Background(), -3, 0, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"1"}, gotQuery["limit"])
}

func TestFetchPapersDecodesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleListJSON)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, false)
	list, err := c.FetchPapers(context.Background(), 2, 10, "")
	require.NoError(t, err)

	assert.Len(t, list.Papers, 2)
	assert.Equal(t, 42, list.TotalItems)
	assert.Equal(t, 5, list.TotalPages)
	assert.Equal(t, 2, list.CurrentPage)
	assert.Equal(t, "Attention Is All You Need", list.Papers[0].Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, list.Papers[0].Authors)
	assert.True(t, list.Papers[0].HasPdf)
	assert.False(t, list.Papers[1].HasPdf)
}

func TestFetchPapersFallbackOnTransportFailure(t *testing.T) {
	c := newTestClient(deadServer(t), true)

	for _, tc := range []struct {
		page, limit int
	}{
		{1, 10},
		{7, 3},
		{400, 25},
	} {
		list, err := c.FetchPapers(context.Background(), tc.page, tc.limit, "transformers")
		require.NoError(t, err)

		assert.Len(t, list.Papers, tc.limit)
		assert.Equal(t, 10000, list.TotalItems)
		assert.Equal(t, (10000+tc.limit-1)/tc.limit, list.TotalPages)
		assert.Equal(t, tc.page, list.CurrentPage)
		for _, p := range list.Papers {
			assert.True(t, IsMockID(p.ID))
		}
	}
}

func TestFetchPapersFallbackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, true)
	list, err := c.FetchPapers(context.Background(), 3, 5, "")
	require.NoError(t, err)
	assert.Len(t, list.Papers, 5)
	assert.Equal(t, 3, list.CurrentPage)
}

func TestFetchPapersFallbackDisabled(t *testing.T) {
	c := newTestClient(deadServer(t), false)

	_, err := c.FetchPapers(context.Background(), 1, 10, "")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestFetchPaperDetailSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/papers/w-1", r.URL.Path)
		fmt.Fprint(w, sampleDetailJSON)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, false)
	detail, err := c.FetchPaperDetail(context.Background(), "w-1")
	require.NoError(t, err)

	assert.Equal(t, "w-1", detail.ID)
	require.NotNil(t, detail.ExtractedInfo)
	assert.Equal(t, model.SourcePDF, detail.ExtractedInfo.Source)
	assert.Equal(t, "Self-attention only.", detail.ExtractedInfo.Methodology)
}

func TestFetchPaperDetail404(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, true)
	_, err := c.FetchPaperDetail(context.Background(), "w-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchPaperDetailServerErrorIsNotNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, true)
	_, err := c.FetchPaperDetail(context.Background(), "w-1")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestFetchPaperDetailTransportFailureMockID(t *testing.T) {
	c := newTestClient(deadServer(t), true)

	detail, err := c.FetchPaperDetail(context.Background(), "mock-7-2")
	require.NoError(t, err)
	assert.Equal(t, "mock-7-2", detail.ID)
}

func TestFetchPaperDetailTransportFailureRealID(t *testing.T) {
	c := newTestClient(deadServer(t), true)

	_, err := c.FetchPaperDetail(context.Background(), "real-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchPaperDetailTransportFailureFallbackDisabled(t *testing.T) {
	c := newTestClient(deadServer(t), false)

	_, err := c.FetchPaperDetail(context.Background(), "mock-7-2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("fetching paper: %w", ErrNotFound)))
	assert.True(t, IsNotFound(errors.New("paper Not Found upstream")))
	assert.False(t, IsNotFound(errors.New("connection refused")))
}
