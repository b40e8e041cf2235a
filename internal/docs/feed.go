// Package docs assembles per-docket regulatory document feeds: it fetches
// candidate documents through a DocumentSearcher, drops industry-wide
// notices, categorizes what remains, and produces the activity artifact plus
// its slimmed form for embedding.
package docs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

// maxDocketsPerDocument is the cutoff above which a document counts as an
// industry-wide notice rather than a plant-specific record.
const maxDocketsPerDocument = 5

// overfetchFactor: fetch more candidates than needed since industry-wide
// notices get filtered out afterwards.
const overfetchFactor = 10

// PlantSpecific reports whether a document belongs in per-reactor feeds.
// A document tagged to more than maxDocketsPerDocument distinct dockets is an
// industry-wide notice. A document with no docket field at all is assumed
// specific, since the search already scoped it to one docket.
func PlantSpecific(doc domain.RegulatoryDocument) bool {
	if strings.TrimSpace(doc.DocketNumbers) == "" {
		return true
	}
	distinct := make(map[string]struct{})
	for _, d := range strings.Split(doc.DocketNumbers, ",") {
		if d = strings.TrimSpace(d); d != "" {
			distinct[d] = struct{}{}
		}
	}
	return len(distinct) <= maxDocketsPerDocument
}

// Categorize buckets a document by keywords in its type and title.
func Categorize(docType, title string) domain.DocumentCategory {
	typeLower := strings.ToLower(docType)
	titleLower := strings.ToLower(title)

	switch {
	case strings.Contains(typeLower, "ler") || strings.Contains(titleLower, "licensee event report"):
		return domain.CategoryLER
	case strings.Contains(typeLower, "inspection") || strings.Contains(titleLower, "inspection"):
		return domain.CategoryInspection
	case strings.Contains(typeLower, "enforcement") || strings.Contains(titleLower, "violation"):
		return domain.CategoryEnforcement
	case strings.Contains(typeLower, "amendment") || strings.Contains(titleLower, "license amendment"):
		return domain.CategoryAmendment
	case strings.Contains(typeLower, "correspondence") || strings.Contains(typeLower, "letter"):
		return domain.CategoryCorrespondence
	case strings.Contains(typeLower, "report"):
		return domain.CategoryReport
	default:
		return domain.CategoryOther
	}
}

// Fetcher builds per-docket feeds with a bounded worker pool.
type Fetcher struct {
	searcher      domain.DocumentSearcher
	logger        *slog.Logger
	metrics       *observability.Metrics
	docsPerDocket int
	workers       int
}

// NewFetcher creates a Fetcher. workers bounds the number of concurrent
// docket searches; each docket query is independent and idempotent, so
// completion order does not matter.
func NewFetcher(searcher domain.DocumentSearcher, logger *slog.Logger, metrics *observability.Metrics, docsPerDocket, workers int) *Fetcher {
	return &Fetcher{
		searcher:      searcher,
		logger:        logger,
		metrics:       metrics,
		docsPerDocket: docsPerDocket,
		workers:       workers,
	}
}

// BuildReport fetches a feed for every unique docket among the units and
// assembles the activity artifact. A failed docket degrades to an empty feed
// for that reactor; it never fails the run.
func (f *Fetcher) BuildReport(ctx context.Context, units []domain.ReactorUnit) domain.ActivityReport {
	// Multi-unit sites can share document streams; query each docket once.
	byDocket := make(map[string]domain.ReactorUnit)
	var dockets []string
	for _, u := range units {
		if u.DocketNumber == "" {
			continue
		}
		if _, seen := byDocket[u.DocketNumber]; !seen {
			byDocket[u.DocketNumber] = u
			dockets = append(dockets, u.DocketNumber)
		}
	}
	sort.Strings(dockets)

	feeds := make(map[string]domain.DocketFeed, len(dockets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for _, docket := range dockets {
		docket := docket
		g.Go(func() error {
			feed := f.fetchDocket(gctx, byDocket[docket].Name, docket)
			mu.Lock()
			feeds[docket] = feed
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors; failures degrade per docket

	report := domain.ActivityReport{
		FetchedAt:      domain.Clock().Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		CategoryTotals: make(map[domain.DocumentCategory]int),
		ByDocket:       feeds,
	}
	for _, feed := range feeds {
		report.TotalDocuments += feed.DocumentCount
		if feed.DocumentCount > 0 {
			report.ReactorsWithActivity++
		}
		for cat, n := range feed.Categories {
			report.CategoryTotals[cat] += n
		}
	}
	return report
}

// fetchDocket queries one docket and shapes the result into a DocketFeed.
func (f *Fetcher) fetchDocket(ctx context.Context, name, docket string) domain.DocketFeed {
	feed := domain.DocketFeed{
		Name:       name,
		Docket:     docket,
		Documents:  []domain.RegulatoryDocument{},
		Categories: make(map[domain.DocumentCategory]int),
		Summary:    "No recent documents found.",
	}

	start := time.Now()
	candidates, err := f.searcher.SearchDocket(ctx, docket, f.docsPerDocket*overfetchFactor)
	f.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		f.logger.Warn("docket search failed, feed degrades to empty",
			"docket", docket,
			"reactor", name,
			"error", err,
		)
		f.metrics.DocketFetches.WithLabelValues("error").Inc()
		return feed
	}
	if len(candidates) == 0 {
		f.metrics.DocketFetches.WithLabelValues("empty").Inc()
		return feed
	}
	f.metrics.DocketFetches.WithLabelValues("success").Inc()

	for _, doc := range candidates {
		if !PlantSpecific(doc) {
			f.metrics.DocumentsFiltered.Inc()
			continue
		}
		doc.Category = Categorize(doc.DocumentType, doc.Title)
		feed.Documents = append(feed.Documents, doc)
	}

	// Publish date descending; the search requests this order but the filter
	// step must not depend on the collaborator honoring it. Dates are
	// MM/DD/YYYY strings, so ordering has to go through time.Time.
	sort.SliceStable(feed.Documents, func(i, j int) bool {
		return publishTime(feed.Documents[i].PublishDate).After(publishTime(feed.Documents[j].PublishDate))
	})
	if len(feed.Documents) > f.docsPerDocket {
		feed.Documents = feed.Documents[:f.docsPerDocket]
	}

	feed.DocumentCount = len(feed.Documents)
	var last time.Time
	for _, doc := range feed.Documents {
		feed.Categories[doc.Category]++
		if pt := publishTime(doc.PublishDate); pt.After(last) {
			last = pt
			feed.LastActivity = doc.PublishDate
		}
	}
	if feed.DocumentCount > 0 {
		feed.Summary = fmt.Sprintf("%d recent document(s) on file.", feed.DocumentCount)
	}
	return feed
}

// publishTime parses an ADAMS publish date (MM/DD/YYYY). Unparseable values
// sort last, after every dated document.
func publishTime(s string) time.Time {
	t, err := time.Parse("01/02/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
