package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

type stubSearcher struct {
	mu       sync.Mutex
	calls    []string
	byDocket map[string][]domain.RegulatoryDocument
	errFor   map[string]error
}

func (s *stubSearcher) SearchDocket(_ context.Context, docket string, _ int) ([]domain.RegulatoryDocument, error) {
	s.mu.Lock()
	s.calls = append(s.calls, docket)
	s.mu.Unlock()
	if err := s.errFor[docket]; err != nil {
		return nil, err
	}
	return s.byDocket[docket], nil
}

func newFetcherForTest(s domain.DocumentSearcher, docsPerDocket int) *Fetcher {
	return NewFetcher(s, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting(), docsPerDocket, 2)
}

func TestPlantSpecific(t *testing.T) {
	tests := []struct {
		name    string
		dockets string
		want    bool
	}{
		{"single docket", "05000321", true},
		{"five dockets", "05000321, 05000366, 05000424, 05000425, 05000250", true},
		{"six dockets is industry-wide", "05000321, 05000366, 05000424, 05000425, 05000250, 05000251", false},
		{"duplicates count once", "05000321, 05000321, 05000321, 05000321, 05000321, 05000321", true},
		{"empty field is specific", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.RegulatoryDocument{DocketNumbers: tt.dockets}
			assert.Equal(t, tt.want, PlantSpecific(doc))
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		docType string
		title   string
		want    domain.DocumentCategory
	}{
		{"Licensee Event Report (LER)", "", domain.CategoryLER},
		{"Letter", "Licensee Event Report 2025-001", domain.CategoryLER},
		{"Inspection Report", "", domain.CategoryInspection},
		{"Memo", "Integrated Inspection Results", domain.CategoryInspection},
		{"Enforcement Action", "", domain.CategoryEnforcement},
		{"Memo", "Notice of Violation", domain.CategoryEnforcement},
		{"License Amendment Request", "", domain.CategoryAmendment},
		{"Letter", "Routine correspondence", domain.CategoryCorrespondence},
		{"Annual Report", "", domain.CategoryReport},
		{"Slides", "Public meeting", domain.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.docType, tt.title), func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.docType, tt.title))
		})
	}
}

func TestBuildReport(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	searcher := &stubSearcher{
		byDocket: map[string][]domain.RegulatoryDocument{
			"05000321": {
				{Title: "Old inspection", DocumentType: "Inspection Report", PublishDate: "04/01/2025", DocketNumbers: "05000321"},
				{Title: "Recent LER", DocumentType: "Licensee Event Report (LER)", PublishDate: "05/20/2025", DocketNumbers: "05000321"},
				{Title: "Generic notice", DocumentType: "Letter", PublishDate: "05/25/2025",
					DocketNumbers: "05000321, 05000366, 05000424, 05000425, 05000250, 05000251"},
			},
		},
	}

	f := newFetcherForTest(searcher, 5)
	units := []domain.ReactorUnit{
		{Name: "Hatch 1", DocketNumber: "05000321"},
		{Name: "Hatch 1 again", DocketNumber: "05000321"}, // shared docket queried once
		{Name: "Dark 1", DocketNumber: "05000999"},
		{Name: "No docket"},
	}

	report := f.BuildReport(context.Background(), units)

	assert.Equal(t, "2025-06-30T15:00:00Z", report.FetchedAt)
	assert.ElementsMatch(t, []string{"05000321", "05000999"}, searcher.calls)

	hatch := report.ByDocket["05000321"]
	assert.Equal(t, "Hatch 1", hatch.Name)
	require.Len(t, hatch.Documents, 2, "industry-wide notice must be filtered out")

	// Publish date descending regardless of fetch order.
	assert.Equal(t, "Recent LER", hatch.Documents[0].Title)
	assert.Equal(t, domain.CategoryLER, hatch.Documents[0].Category)
	assert.Equal(t, "05/20/2025", hatch.LastActivity)
	assert.Equal(t, 1, hatch.Categories[domain.CategoryLER])
	assert.Equal(t, 1, hatch.Categories[domain.CategoryInspection])
	assert.Equal(t, "2 recent document(s) on file.", hatch.Summary)

	empty := report.ByDocket["05000999"]
	assert.Empty(t, empty.Documents)
	assert.Equal(t, "No recent documents found.", empty.Summary)

	assert.Equal(t, 2, report.TotalDocuments)
	assert.Equal(t, 1, report.ReactorsWithActivity)
	assert.Equal(t, 1, report.CategoryTotals[domain.CategoryLER])
}

func TestBuildReport_ClipsToDocsPerDocket(t *testing.T) {
	var docs []domain.RegulatoryDocument
	for i := 1; i <= 8; i++ {
		docs = append(docs, domain.RegulatoryDocument{
			Title:       fmt.Sprintf("Doc %d", i),
			PublishDate: fmt.Sprintf("05/%02d/2025", i),
		})
	}
	searcher := &stubSearcher{byDocket: map[string][]domain.RegulatoryDocument{"05000321": docs}}

	f := newFetcherForTest(searcher, 5)
	report := f.BuildReport(context.Background(), []domain.ReactorUnit{{Name: "Hatch 1", DocketNumber: "05000321"}})

	feed := report.ByDocket["05000321"]
	require.Len(t, feed.Documents, 5)
	assert.Equal(t, "Doc 8", feed.Documents[0].Title)
	assert.Equal(t, "Doc 4", feed.Documents[4].Title)
}

func TestBuildReport_OrdersAcrossYearBoundary(t *testing.T) {
	// Lexicographic comparison of MM/DD/YYYY strings would put 12/20/2024
	// ahead of 01/05/2025; ordering must follow the actual dates.
	searcher := &stubSearcher{
		byDocket: map[string][]domain.RegulatoryDocument{
			"05000321": {
				{Title: "Older", PublishDate: "12/20/2024", DocketNumbers: "05000321"},
				{Title: "Newer", PublishDate: "01/05/2025", DocketNumbers: "05000321"},
				{Title: "Undated", DocketNumbers: "05000321"},
			},
		},
	}

	f := newFetcherForTest(searcher, 5)
	report := f.BuildReport(context.Background(), []domain.ReactorUnit{{Name: "Hatch 1", DocketNumber: "05000321"}})

	feed := report.ByDocket["05000321"]
	require.Len(t, feed.Documents, 3)
	assert.Equal(t, "Newer", feed.Documents[0].Title)
	assert.Equal(t, "Older", feed.Documents[1].Title)
	assert.Equal(t, "Undated", feed.Documents[2].Title)
	assert.Equal(t, "01/05/2025", feed.LastActivity)
}

func TestBuildReport_FailedDocketDegradesToEmptyFeed(t *testing.T) {
	searcher := &stubSearcher{
		byDocket: map[string][]domain.RegulatoryDocument{
			"05000321": {{Title: "Fine", PublishDate: "05/01/2025"}},
		},
		errFor: map[string]error{"05000366": errors.New("adams timeout")},
	}

	f := newFetcherForTest(searcher, 5)
	report := f.BuildReport(context.Background(), []domain.ReactorUnit{
		{Name: "Hatch 1", DocketNumber: "05000321"},
		{Name: "Hatch 2", DocketNumber: "05000366"},
	})

	require.Contains(t, report.ByDocket, "05000366")
	failed := report.ByDocket["05000366"]
	assert.Empty(t, failed.Documents)
	assert.Equal(t, "No recent documents found.", failed.Summary)

	// The healthy docket is unaffected.
	assert.Equal(t, 1, report.ByDocket["05000321"].DocumentCount)
	assert.Equal(t, 1, report.TotalDocuments)
}
