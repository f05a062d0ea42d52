package entity

import "time"

// EntryKind classifies one timeline record.
type EntryKind string

const (
	EntryKindReceived        EntryKind = "received"
	EntryKindAISummary       EntryKind = "ai_summary"
	EntryKindAISummaryFailed EntryKind = "ai_summary_failed"
	EntryKindSlackAck        EntryKind = "slack_ack"
	EntryKindSlackRestart    EntryKind = "slack_restart"
)

// TimelineEntry is one immutable record on an incident's timeline.
// Entries are append-only; stores must never mutate or remove them.
// SortKey and CreatedAt are assigned by the store at append time.
type TimelineEntry struct {
	IncidentID string         `json:"incident_id" dynamo:"incident_id,hash"`
	SortKey    string         `json:"-" dynamo:"sort_key,range"`
	Kind       EntryKind      `json:"kind" dynamo:"kind"`
	Payload    map[string]any `json:"payload" dynamo:"payload"`
	CreatedAt  time.Time      `json:"created_at" dynamo:"created_at"`
}

func NewTimelineEntry(incidentID string, kind EntryKind, payload map[string]any) *TimelineEntry {
	return &TimelineEntry{
		IncidentID: incidentID,
		Kind:       kind,
		Payload:    payload,
	}
}
