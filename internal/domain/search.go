package domain

import "context"

// DocumentSearcher queries a document library for records tagged to a docket.
type DocumentSearcher interface {
	// SearchDocket returns up to maxResults documents whose docket field
	// starts with the given docket number, most recently published first.
	SearchDocket(ctx context.Context, docket string, maxResults int) ([]RegulatoryDocument, error)
}
