package adams

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const searchResponseXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <resultset>
    <result>
      <DocumentTitle>Edwin I. Hatch, Units 1 and 2 - Integrated Inspection Report</DocumentTitle>
      <AccessionNumber>ML25100A123</AccessionNumber>
      <DocumentDate>04/01/2025</DocumentDate>
      <PublishDatePARS>04/10/2025</PublishDatePARS>
      <DocumentType>Inspection Report</DocumentType>
      <AuthorName>Smith J</AuthorName>
      <AuthorAffiliation>NRC Region II</AuthorAffiliation>
      <DocketNumber>05000321, 05000366</DocketNumber>
      <EstimatedPageCount>42</EstimatedPageCount>
    </result>
    <result>
      <DocumentTitle>Licensee Event Report 2025-001</DocumentTitle>
      <AccessionNumber>ML25090B456</AccessionNumber>
      <DocumentDate>03/20/2025</DocumentDate>
      <PublishDatePARS>03/28/2025</PublishDatePARS>
      <DocumentType>Licensee Event Report</DocumentType>
      <AuthorName></AuthorName>
      <AuthorAffiliation>Southern Nuclear Operating Co</AuthorAffiliation>
      <DocketNumber>05000321</DocketNumber>
      <EstimatedPageCount>5</EstimatedPageCount>
    </result>
  </resultset>
</response>`

func TestClient_SearchDocket(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(searchResponseXML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	docs, err := c.SearchDocket(context.Background(), "05000321", 20)
	require.NoError(t, err)

	// Request shape the ADAMS endpoint requires.
	assert.Contains(t, gotQuery.Get("q"), "DocketNumber,starts,'05000321'")
	assert.Contains(t, gotQuery.Get("q"), "public-library:!t")
	assert.Equal(t, "AdamsSearch", gotQuery.Get("qn"))
	assert.Equal(t, "advanced-search-pars", gotQuery.Get("tab"))
	assert.Equal(t, "20", gotQuery.Get("rows"))
	assert.Equal(t, "PublishDatePARS", gotQuery.Get("s"))
	assert.Equal(t, "desc", gotQuery.Get("so"))

	require.Len(t, docs, 2)
	first := docs[0]
	assert.Equal(t, "ML25100A123", first.AccessionNumber)
	assert.Equal(t, "Inspection Report", first.DocumentType)
	assert.Equal(t, "05000321, 05000366", first.DocketNumbers)
	assert.Equal(t, "04/10/2025", first.PublishDate)
	assert.Equal(t, "https://www.nrc.gov/docs/ML2510/ML25100A123.pdf", first.URL)
}

func TestClient_SearchDocketErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "over capacity", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := c.SearchDocket(context.Background(), "05000321", 20)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<response><resultset>"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := c.SearchDocket(context.Background(), "05000321", 20)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewClient(srv.URL, 5*time.Second, testLogger())
		_, err := c.SearchDocket(ctx, "05000321", 20)
		require.Error(t, err)
	})
}

func TestDocumentURL(t *testing.T) {
	tests := []struct {
		accession string
		want      string
	}{
		{"ML25100A123", "https://www.nrc.gov/docs/ML2510/ML25100A123.pdf"},
		{"ML101", ""},
		{"XX25100A123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, documentURL(tt.accession), "accession %q", tt.accession)
	}
}
