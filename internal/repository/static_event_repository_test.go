package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticEventRepositoryListEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"events":[{"eventName":"ICE","link":"https://ice","startDate":"04-02-2025","endDate":"06-02-2025"}]}`), 0o600))

	events, err := NewStaticEventRepository(path).ListEvents(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "ICE", events[0].EventName)
	assert.Equal(t, "06-02-2025", events[0].EndDate)
}

func TestStaticEventRepositoryEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	events, err := NewStaticEventRepository(path).ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestStaticEventRepositoryErrors(t *testing.T) {
	_, err := NewStaticEventRepository(filepath.Join(t.TempDir(), "missing.json")).ListEvents(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"events":`), 0o600))
	_, err = NewStaticEventRepository(bad).ListEvents(context.Background())
	assert.Error(t, err)

	_, err = NewStaticEventRepository("").ListEvents(context.Background())
	assert.Error(t, err)
}

func TestBundledDatasetDecodes(t *testing.T) {
	events, err := NewStaticEventRepository(filepath.Join("..", "..", "public", "data", "events.json")).ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	for _, event := range events {
		assert.NotEmpty(t, event.Link)
	}
}
