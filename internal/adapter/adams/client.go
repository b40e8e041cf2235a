// Package adams implements domain.DocumentSearcher against the NRC ADAMS
// (Agencywide Documents Access and Management System) advanced-search API.
package adams

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// Client issues one-shot GET searches against the ADAMS public library.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an ADAMS search client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// SearchDocket returns up to maxResults public-library documents whose docket
// field starts with the given docket number, sorted by publish date
// descending (the sort is requested server-side and re-applied downstream).
func (c *Client) SearchDocket(ctx context.Context, docket string, maxResults int) ([]domain.RegulatoryDocument, error) {
	// The q parameter uses the ADAMS section-query syntax; the 'starts'
	// operator is required for exact docket prefix matching.
	filter := fmt.Sprintf("!(DocketNumber,starts,'%s','')", url.QueryEscape(docket))
	q := fmt.Sprintf("(mode:sections,sections:(filters:(public-library:!t),properties_search_all:!(%s)))", filter)

	params := url.Values{
		"q":     {q},
		"qn":    {"AdamsSearch"},
		"tab":   {"advanced-search-pars"},
		"start": {"0"},
		"rows":  {strconv.Itoa(maxResults)},
		"s":     {"PublishDatePARS"},
		"so":    {"desc"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "plant-dashboard (ADAMS API client)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search docket %s: %w", docket, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("adams API error: status %d: %s", resp.StatusCode, body)
	}

	var parsed searchResponse
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	docs := make([]domain.RegulatoryDocument, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		docs = append(docs, domain.RegulatoryDocument{
			Title:             r.DocumentTitle,
			AccessionNumber:   r.AccessionNumber,
			DocumentDate:      r.DocumentDate,
			PublishDate:       r.PublishDatePARS,
			DocumentType:      r.DocumentType,
			AuthorName:        r.AuthorName,
			AuthorAffiliation: r.AuthorAffiliation,
			DocketNumbers:     r.DocketNumber,
			PageCount:         r.EstimatedPageCount,
			URL:               documentURL(r.AccessionNumber),
		})
	}
	return docs, nil
}

// documentURL derives the public PDF location from an ML accession number.
// The docs site shards by the first six characters of the accession.
func documentURL(accession string) string {
	if len(accession) < 6 || accession[:2] != "ML" {
		return ""
	}
	return fmt.Sprintf("https://www.nrc.gov/docs/%s/%s.pdf", accession[:6], accession)
}

// ADAMS search response types.

type searchResponse struct {
	Results []resultElem `xml:"resultset>result"`
}

type resultElem struct {
	DocumentTitle      string `xml:"DocumentTitle"`
	AccessionNumber    string `xml:"AccessionNumber"`
	DocumentDate       string `xml:"DocumentDate"`
	PublishDatePARS    string `xml:"PublishDatePARS"`
	DocumentType       string `xml:"DocumentType"`
	AuthorName         string `xml:"AuthorName"`
	AuthorAffiliation  string `xml:"AuthorAffiliation"`
	DocketNumber       string `xml:"DocketNumber"`
	EstimatedPageCount string `xml:"EstimatedPageCount"`
}
