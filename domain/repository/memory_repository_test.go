package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/repository"
)

func TestMemoryTimelineRepositoryOrder(t *testing.T) {
	repo := repository.NewMemoryTimelineRepository()
	ctx := context.Background()

	require.NoError(t, repo.AppendEntry(ctx, entity.NewTimelineEntry("inc-1", entity.EntryKindReceived, map[string]any{"n": 1})))
	require.NoError(t, repo.AppendEntry(ctx, entity.NewTimelineEntry("inc-1", entity.EntryKindSlackAck, map[string]any{"n": 2})))

	entries, err := repo.Entries(ctx, "inc-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.EntryKindReceived, entries[0].Kind)
	assert.Equal(t, entity.EntryKindSlackAck, entries[1].Kind)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestMemoryTimelineRepositoryIsolation(t *testing.T) {
	repo := repository.NewMemoryTimelineRepository()
	ctx := context.Background()

	require.NoError(t, repo.AppendEntry(ctx, entity.NewTimelineEntry("inc-1", entity.EntryKindReceived, nil)))

	entries, err := repo.Entries(ctx, "inc-1")
	require.NoError(t, err)
	entries[0].Kind = entity.EntryKind("mutated")

	again, err := repo.Entries(ctx, "inc-1")
	require.NoError(t, err)
	assert.Equal(t, entity.EntryKindReceived, again[0].Kind)

	unknown, err := repo.Entries(ctx, "inc-404")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestMemoryTimelineRepositoryPayloadIsolation(t *testing.T) {
	repo := repository.NewMemoryTimelineRepository()
	ctx := context.Background()

	payload := map[string]any{
		"title": "CPU high",
		"tags":  []any{"prod"},
		"meta":  map[string]any{"region": "us-east-1"},
	}
	require.NoError(t, repo.AppendEntry(ctx, entity.NewTimelineEntry("inc-1", entity.EntryKindReceived, payload)))

	// mutating the map passed to AppendEntry must not reach the store
	payload["title"] = "mutated"
	payload["tags"].([]any)[0] = "mutated"
	payload["meta"].(map[string]any)["region"] = "mutated"

	entries, err := repo.Entries(ctx, "inc-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CPU high", entries[0].Payload["title"])
	assert.Equal(t, []any{"prod"}, entries[0].Payload["tags"])
	assert.Equal(t, map[string]any{"region": "us-east-1"}, entries[0].Payload["meta"])

	// mutating a map read back from Entries must not reach the store either
	entries[0].Payload["title"] = "mutated again"
	again, err := repo.Entries(ctx, "inc-1")
	require.NoError(t, err)
	assert.Equal(t, "CPU high", again[0].Payload["title"])
}

func TestMemoryTimelineRepositoryConcurrentAppends(t *testing.T) {
	repo := repository.NewMemoryTimelineRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, incidentID := range []string{"inc-a", "inc-b"} {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_ = repo.AppendEntry(ctx, entity.NewTimelineEntry(id, entity.EntryKindReceived, nil))
			}(incidentID)
		}
	}
	wg.Wait()

	for _, incidentID := range []string{"inc-a", "inc-b"} {
		entries, err := repo.Entries(ctx, incidentID)
		require.NoError(t, err)
		assert.Len(t, entries, 50)
	}
}
