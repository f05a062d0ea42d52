package incident

import (
	"encoding/json"
	"fmt"

	"github.com/airahq/aira/domain/entity"
)

// Normalize converts an inbound payload into the canonical IncidentEvent.
// Event-bus envelopes contribute their `detail` sub-object (the whole
// payload when absent), webhook bodies are taken as-is. The result is a
// pure function of (raw, source); missing optional fields never fail, only
// unparseable input does.
func Normalize(raw []byte, source entity.Source) (*entity.IncidentEvent, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrMalformedPayload, err)
	}

	detail := payload
	if source == entity.SourceEventBus {
		if d, ok := payload["detail"].(map[string]any); ok {
			detail = d
		}
	}

	rawCopy := make(json.RawMessage, len(raw))
	copy(rawCopy, raw)

	return &entity.IncidentEvent{
		Source: source,
		Raw:    rawCopy,
		Detail: detail,
	}, nil
}
