package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/incident"
)

// handleSlackActions verifies the request signature, decodes the
// interactive payload and dispatches the action. Verification runs on the
// raw body before any form parsing touches it.
func (h *HTTPHandler) handleSlackActions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAlertBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	err = incident.VerifySignature(
		body,
		r.Header.Get("X-Slack-Request-Timestamp"),
		r.Header.Get("X-Slack-Signature"),
		h.signingSecret,
		h.now(),
	)
	if err != nil {
		if errors.Is(err, entity.ErrMisconfiguredSecret) {
			slog.Error("slack signing secret is not configured")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signing secret not configured"})
			return
		}
		slog.Warn("rejected slack action", slog.Any("error", err))
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "signature verification failed"})
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form body"})
		return
	}

	req, err := entity.ParseInteractionPayload([]byte(form.Get("payload")))
	if err != nil {
		actionsDispatched.WithLabelValues("unknown", "rejected").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, entity.ErrUnknownAction):
			actionsDispatched.WithLabelValues(string(req.Action), "rejected").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrStoreUnavailable):
			actionsDispatched.WithLabelValues(string(req.Action), "failed").Inc()
			slog.Error("action dispatch failed", slog.String("action", string(req.Action)), slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "timeline store unavailable"})
		default:
			actionsDispatched.WithLabelValues(string(req.Action), "failed").Inc()
			slog.Error("action dispatch failed", slog.String("action", string(req.Action)), slog.Any("error", err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return
	}

	actionsDispatched.WithLabelValues(string(req.Action), "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
