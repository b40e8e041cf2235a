package docs

import (
	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

// Slimming limits, chosen for embedded-artifact size.
const (
	slimDocsPerDocket = 3
	slimTitleLen      = 150
	slimTypeLen       = 50
)

// Slim reduces an activity report to the fields the dashboard embeds: the 3
// most recent documents per docket with truncated titles and types. The
// total document count is recomputed over what survives.
func Slim(report domain.ActivityReport) domain.SlimReport {
	slim := domain.SlimReport{
		FetchedAt:      report.FetchedAt,
		CategoryTotals: report.CategoryTotals,
		ByDocket:       make(map[string]domain.SlimFeed, len(report.ByDocket)),
	}

	for docket, feed := range report.ByDocket {
		docs := feed.Documents
		if len(docs) > slimDocsPerDocket {
			docs = docs[:slimDocsPerDocket]
		}

		slimDocs := make([]domain.SlimDocument, 0, len(docs))
		for _, d := range docs {
			slimDocs = append(slimDocs, domain.SlimDocument{
				Title:     truncate(d.Title, slimTitleLen),
				Accession: d.AccessionNumber,
				Date:      d.DocumentDate,
				Type:      truncate(d.DocumentType, slimTypeLen),
				Category:  d.Category,
				URL:       d.URL,
			})
		}

		slim.ByDocket[docket] = domain.SlimFeed{
			Name:         feed.Name,
			LastActivity: feed.LastActivity,
			Documents:    slimDocs,
			Categories:   feed.Categories,
		}
		slim.TotalDocuments += len(slimDocs)
	}

	return slim
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
