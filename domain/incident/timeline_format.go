package incident

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/airahq/aira/domain/entity"
)

// FormatTimeline renders an incident's timeline as chronological
// human-readable text for a chat message. The rendering is verbatim: what
// is on the timeline is what the operator sees.
func FormatTimeline(incidentID string, entries []entity.TimelineEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("🗒 Timeline for incident %s is empty.", incidentID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗒 Timeline for incident %s\n", incidentID)
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s  %-17s %s\n",
			entry.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			entry.Kind,
			compactPayload(entry.Payload),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func compactPayload(payload map[string]any) string {
	if len(payload) == 0 {
		return ""
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
