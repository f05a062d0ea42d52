package incident

import (
	"encoding/json"

	"github.com/google/uuid"
)

// NewID produces an opaque globally unique incident identifier. Uniqueness
// is probabilistic, there is no collision detection.
func NewID() string {
	return uuid.NewString()
}

// ResolveID returns the incident_id embedded in the envelope when present
// and non-empty, otherwise a fresh id. Redeliveries that already carry an
// id therefore map to the same incident.
func ResolveID(raw []byte) string {
	var envelope struct {
		IncidentID string `json:"incident_id"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.IncidentID != "" {
		return envelope.IncidentID
	}
	return NewID()
}
