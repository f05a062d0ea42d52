package entity

import (
	"encoding/json"
	"fmt"
)

// Source identifies where an inbound alert came from.
type Source int

const (
	SourceEventBus Source = iota
	SourceHTTPWebhook
)

func (s Source) String() string {
	switch s {
	case SourceEventBus:
		return "event_bus"
	case SourceHTTPWebhook:
		return "http_webhook"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// IncidentEvent is the canonical representation of one inbound alert.
// Raw keeps the original payload for audit, Detail holds the normalized
// fields extracted from it. Absent fields are omitted, never fabricated.
type IncidentEvent struct {
	Source Source          `json:"source"`
	Raw    json.RawMessage `json:"raw"`
	Detail map[string]any  `json:"detail"`
}
