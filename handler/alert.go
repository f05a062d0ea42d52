package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/airahq/aira/domain/entity"
)

const maxAlertBodyBytes = 1 << 20

type alertResponse struct {
	Status     string  `json:"status"`
	IncidentID string  `json:"incident_id"`
	AI         *string `json:"ai"`
}

func (h *HTTPHandler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI agent is live 🚀🤖"})
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAlert ingests one webhook alert. A failed summarization still
// returns 200: the alert was recorded, only the enrichment is degraded.
func (h *HTTPHandler) handleAlert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAlertBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	result, err := h.orchestrator.HandleAlert(r.Context(), body, entity.SourceHTTPWebhook)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrMalformedPayload):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrStoreUnavailable):
			slog.Error("alert ingestion failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "timeline store unavailable"})
		default:
			slog.Error("alert ingestion failed", slog.Any("error", err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	alertsIngested.WithLabelValues(entity.SourceHTTPWebhook.String()).Inc()
	if result.Summary == nil {
		summaryFailures.Inc()
	}

	writeJSON(w, http.StatusOK, alertResponse{
		Status:     "incident handled",
		IncidentID: result.IncidentID,
		AI:         result.Summary,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
