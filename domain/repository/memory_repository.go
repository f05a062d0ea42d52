package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/airahq/aira/domain/entity"
)

// MemoryTimelineRepository is the in-process reference implementation of
// the timeline store: append-only, atomic appends, insertion order per
// incident. It backs local runs and tests.
type MemoryTimelineRepository struct {
	mu      sync.Mutex
	entries map[string][]entity.TimelineEntry
	seq     uint64
}

func NewMemoryTimelineRepository() *MemoryTimelineRepository {
	return &MemoryTimelineRepository{
		entries: map[string][]entity.TimelineEntry{},
	}
}

func (r *MemoryTimelineRepository) AppendEntry(_ context.Context, entry *entity.TimelineEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	stored.Payload = clonePayload(entry.Payload)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.seq++
	stored.SortKey = fmt.Sprintf("%020d", r.seq)
	r.entries[stored.IncidentID] = append(r.entries[stored.IncidentID], stored)
	return nil
}

func (r *MemoryTimelineRepository) Entries(_ context.Context, incidentID string) ([]entity.TimelineEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.entries[incidentID]
	out := make([]entity.TimelineEntry, len(stored))
	copy(out, stored)
	for i := range out {
		out[i].Payload = clonePayload(out[i].Payload)
	}
	return out, nil
}

// clonePayload deep-copies a JSON-shaped payload so neither the caller nor
// the store can mutate the other's copy through a shared map.
func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return clonePayload(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
