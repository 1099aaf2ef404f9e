package repository

import (
	"context"

	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

// DefaultMaxPages bounds CollectEvents when callers pass no ceiling.
const DefaultMaxPages = 100

// EventQuerier is the single-page query every document store backend exposes.
type EventQuerier interface {
	QueryEvents(ctx context.Context, filter models.EventFilter) (*models.EventPage, error)
}

// CollectEvents follows the store cursor until it is exhausted. It fails with
// ErrPaginationLimit after maxPages pages rather than looping forever.
func CollectEvents(ctx context.Context, store EventQuerier, filter models.EventFilter, maxPages int) ([]models.EventRecord, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var records []models.EventRecord
	filter.Cursor = ""
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := store.QueryEvents(ctx, filter)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return records, nil
		}
		records = append(records, result.Records...)
		if !result.HasMore || result.NextCursor == "" {
			return records, nil
		}
		filter.Cursor = result.NextCursor
	}

	return nil, appErrors.Clone(appErrors.ErrPaginationLimit, "document store returned more pages than allowed")
}
