package repository

import (
	"context"

	"github.com/airahq/aira/domain/entity"
)

// TimelineRepository is the append-only per-incident event log. Append is
// atomic, entries for one incident read back in insertion order.
type TimelineRepository interface {
	AppendEntry(context.Context, *entity.TimelineEntry) error
	Entries(context.Context, string) ([]entity.TimelineEntry, error)
}

// Summarizer produces a short human-readable summary of a normalized alert
// detail. Failures are non-fatal for callers by contract.
type Summarizer interface {
	Summarize(context.Context, map[string]any) (string, error)
}

// Notifier delivers a plain-text message to a chat channel.
type Notifier interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// ServiceRestarter triggers a restart of a container service and returns a
// human-readable outcome, recorded verbatim on the timeline.
type ServiceRestarter interface {
	RestartService(ctx context.Context, serviceName, clusterName string) (string, error)
}
