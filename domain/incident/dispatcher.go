package incident

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/repository"
)

// DispatcherConfig carries the process-wide defaults an action may fall
// back to when the button value does not name them explicitly.
type DispatcherConfig struct {
	DefaultService string
	DefaultCluster string
	DefaultChannel string
}

// Dispatcher executes a verified interactive action: the correct
// remediation, timeline append and chat notification sequence for the
// action name. For every action the timeline append happens before the
// chat post, so a reader who saw the notification will find the matching
// entry on re-read.
type Dispatcher struct {
	timeline  repository.TimelineRepository
	notifier  repository.Notifier
	restarter repository.ServiceRestarter
	config    DispatcherConfig
}

func NewDispatcher(
	timeline repository.TimelineRepository,
	notifier repository.Notifier,
	restarter repository.ServiceRestarter,
	config DispatcherConfig,
) *Dispatcher {
	return &Dispatcher{
		timeline:  timeline,
		notifier:  notifier,
		restarter: restarter,
		config:    config,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req *entity.ActionRequest) error {
	switch req.Action {
	case entity.ActionRestartService:
		return d.restartService(ctx, req)
	case entity.ActionViewTimeline:
		return d.viewTimeline(ctx, req)
	case entity.ActionAck:
		return d.ack(ctx, req)
	}
	return fmt.Errorf("%w: %q", entity.ErrUnknownAction, req.Action)
}

// restartService triggers the restart, records the outcome, then notifies.
// A failed restart is reported, not swallowed and not escalated: the
// dispatch itself still succeeds.
func (d *Dispatcher) restartService(ctx context.Context, req *entity.ActionRequest) error {
	service := req.Params.ServiceName
	if service == "" {
		service = d.config.DefaultService
	}
	cluster := req.Params.ClusterName
	if cluster == "" {
		cluster = d.config.DefaultCluster
	}

	payload := map[string]any{
		"by":           req.Actor,
		"service_name": service,
		"cluster_name": cluster,
	}
	var text string
	outcome, err := d.restarter.RestartService(ctx, service, cluster)
	if err != nil {
		payload["error"] = err.Error()
		text = fmt.Sprintf("⚠️ %s tried to restart service `%s` in `%s` for incident %s, but it failed: %s",
			req.Actor, service, cluster, req.IncidentID, err)
	} else {
		payload["result"] = outcome
		text = fmt.Sprintf("🔄 %s restarted service `%s` in `%s` for incident %s",
			req.Actor, service, cluster, req.IncidentID)
	}

	entry := entity.NewTimelineEntry(req.IncidentID, entity.EntryKindSlackRestart, payload)
	if err := d.timeline.AppendEntry(ctx, entry); err != nil {
		return fmt.Errorf("%w: append restart entry: %s", entity.ErrStoreUnavailable, err)
	}

	d.notify(ctx, req.Channel, text)
	return nil
}

func (d *Dispatcher) viewTimeline(ctx context.Context, req *entity.ActionRequest) error {
	entries, err := d.timeline.Entries(ctx, req.IncidentID)
	if err != nil {
		return fmt.Errorf("%w: read timeline: %s", entity.ErrStoreUnavailable, err)
	}

	d.notify(ctx, req.Channel, FormatTimeline(req.IncidentID, entries))
	return nil
}

func (d *Dispatcher) ack(ctx context.Context, req *entity.ActionRequest) error {
	entry := entity.NewTimelineEntry(req.IncidentID, entity.EntryKindSlackAck, map[string]any{
		"by": req.Actor,
	})
	if err := d.timeline.AppendEntry(ctx, entry); err != nil {
		return fmt.Errorf("%w: append ack entry: %s", entity.ErrStoreUnavailable, err)
	}

	d.notify(ctx, req.Channel, fmt.Sprintf("✅ %s acknowledged incident %s", req.Actor, req.IncidentID))
	return nil
}

// notify delivers the user-facing message. Delivery failure must not fail
// an action whose effect already took place, so it is logged only.
func (d *Dispatcher) notify(ctx context.Context, channel, text string) {
	if channel == "" {
		channel = d.config.DefaultChannel
	}
	if err := d.notifier.PostMessage(ctx, channel, text); err != nil {
		slog.Error("failed to post chat notification",
			slog.String("channel", channel), slog.Any("error", err))
	}
}
