package incident

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/repository"
)

var errSummarizerDisabled = errors.New("summarizer is not configured")

// Result is what alert ingestion returns to the caller. Summary is nil
// when enrichment failed, which is degraded but not an error.
type Result struct {
	IncidentID string
	Summary    *string
}

// Orchestrator drives the new-alert path: normalize the payload, resolve
// the incident id, record the event, then enrich with an AI summary.
type Orchestrator struct {
	timeline   repository.TimelineRepository
	summarizer repository.Summarizer
}

// NewOrchestrator builds an orchestrator. summarizer may be nil when no AI
// backend is configured; ingestion then records the enrichment as failed.
func NewOrchestrator(timeline repository.TimelineRepository, summarizer repository.Summarizer) *Orchestrator {
	return &Orchestrator{
		timeline:   timeline,
		summarizer: summarizer,
	}
}

// HandleAlert ingests one inbound alert. The `received` entry is appended
// before the summarization call and is never retracted, even if the caller
// goes away while the summary is in flight.
func (o *Orchestrator) HandleAlert(ctx context.Context, raw []byte, source entity.Source) (*Result, error) {
	event, err := Normalize(raw, source)
	if err != nil {
		return nil, err
	}
	id := ResolveID(raw)

	received := entity.NewTimelineEntry(id, entity.EntryKindReceived, event.Detail)
	if err := o.timeline.AppendEntry(ctx, received); err != nil {
		return nil, fmt.Errorf("%w: append received: %s", entity.ErrStoreUnavailable, err)
	}

	summary, err := o.summarize(ctx, event.Detail)
	if err != nil {
		slog.Warn("summarization failed, ingesting without enrichment",
			slog.String("incident_id", id), slog.Any("error", err))
		failed := entity.NewTimelineEntry(id, entity.EntryKindAISummaryFailed, map[string]any{
			"error": err.Error(),
		})
		if err := o.timeline.AppendEntry(ctx, failed); err != nil {
			slog.Error("failed to record summarization failure",
				slog.String("incident_id", id), slog.Any("error", err))
		}
		return &Result{IncidentID: id}, nil
	}

	enriched := entity.NewTimelineEntry(id, entity.EntryKindAISummary, map[string]any{
		"summary": summary,
	})
	if err := o.timeline.AppendEntry(ctx, enriched); err != nil {
		slog.Error("failed to record summary", slog.String("incident_id", id), slog.Any("error", err))
	}

	return &Result{IncidentID: id, Summary: &summary}, nil
}

func (o *Orchestrator) summarize(ctx context.Context, detail map[string]any) (string, error) {
	if o.summarizer == nil {
		return "", errSummarizerDisabled
	}
	return o.summarizer.Summarize(ctx, detail)
}
