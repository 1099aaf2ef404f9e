package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "events")
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "reviewed", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "reviewed", []string{"a"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryKeyPrefix(t *testing.T) {
	assert.Equal(t, "events:reviewed", NewCacheRepository(nil, "events").key("reviewed"))
	assert.Equal(t, "reviewed", NewCacheRepository(nil, "").key("reviewed"))
}
