package domain

// DocumentCategory buckets a regulatory document for activity tracking.
type DocumentCategory string

const (
	CategoryLER            DocumentCategory = "LER"
	CategoryInspection     DocumentCategory = "Inspection"
	CategoryEnforcement    DocumentCategory = "Enforcement"
	CategoryAmendment      DocumentCategory = "License Amendment"
	CategoryCorrespondence DocumentCategory = "Correspondence"
	CategoryReport         DocumentCategory = "Report"
	CategoryOther          DocumentCategory = "Other"
)

// RegulatoryDocument is one record from the ADAMS document library.
// DocketNumbers is the raw comma-separated docket field as returned by the
// search service; a document tagged to more than 5 distinct dockets is an
// industry-wide notice.
type RegulatoryDocument struct {
	Title             string           `json:"title"`
	AccessionNumber   string           `json:"accession_number"`
	DocumentDate      string           `json:"document_date"`
	PublishDate       string           `json:"publish_date"`
	DocumentType      string           `json:"document_type"`
	AuthorName        string           `json:"author_name,omitempty"`
	AuthorAffiliation string           `json:"author_affiliation,omitempty"`
	DocketNumbers     string           `json:"docket_number"`
	PageCount         string           `json:"page_count,omitempty"`
	URL               string           `json:"url,omitempty"`
	Category          DocumentCategory `json:"category,omitempty"`
}

// DocketFeed is the per-reactor document feed keyed by docket number.
type DocketFeed struct {
	Name          string                   `json:"name"`
	Docket        string                   `json:"docket"`
	Documents     []RegulatoryDocument     `json:"documents"`
	DocumentCount int                      `json:"document_count"`
	LastActivity  string                   `json:"last_activity,omitempty"`
	Summary       string                   `json:"summary"`
	Categories    map[DocumentCategory]int `json:"categories"`
}

// ActivityReport is the full document-feed artifact across all dockets.
type ActivityReport struct {
	FetchedAt            string                   `json:"fetched_at"`
	TotalDocuments       int                      `json:"total_documents"`
	ReactorsWithActivity int                      `json:"reactors_with_activity"`
	CategoryTotals       map[DocumentCategory]int `json:"category_totals"`
	ByDocket             map[string]DocketFeed    `json:"by_docket"`
}

// SlimDocument is the size-reduced document form embedded in the dashboard.
type SlimDocument struct {
	Title     string           `json:"title"`
	Accession string           `json:"accession"`
	Date      string           `json:"date"`
	Type      string           `json:"type"`
	Category  DocumentCategory `json:"category"`
	URL       string           `json:"url"`
}

// SlimFeed is the size-reduced per-docket feed.
type SlimFeed struct {
	Name         string                   `json:"name"`
	LastActivity string                   `json:"last_activity,omitempty"`
	Documents    []SlimDocument           `json:"documents"`
	Categories   map[DocumentCategory]int `json:"categories"`
}

// SlimReport is the size-reduced activity artifact for embedding.
type SlimReport struct {
	FetchedAt      string                   `json:"fetched_at"`
	TotalDocuments int                      `json:"total_documents"`
	CategoryTotals map[DocumentCategory]int `json:"category_totals"`
	ByDocket       map[string]SlimFeed      `json:"by_docket"`
}
