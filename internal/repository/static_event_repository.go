package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/payram/igaming-events-api/internal/models"
)

// StaticEventRepository serves the bundled events dataset used when the live store is unavailable.
type StaticEventRepository struct {
	path string
}

// NewStaticEventRepository constructs a repository reading the dataset at path.
func NewStaticEventRepository(path string) *StaticEventRepository {
	return &StaticEventRepository{path: path}
}

// ListEvents reads and decodes the dataset. The file is read on every call so edits apply without a restart.
func (r *StaticEventRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.path == "" {
		return nil, fmt.Errorf("fallback events file is not configured")
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read fallback events %s: %w", r.path, err)
	}

	var data models.EventsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode fallback events %s: %w", r.path, err)
	}
	if data.Events == nil {
		data.Events = []models.Event{}
	}
	return data.Events, nil
}
