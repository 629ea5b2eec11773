package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"ascdash/internal/ingest"
	"ascdash/internal/service"
)

// WebhookHandler receives push deliveries of single survey responses
type WebhookHandler struct {
	ingestSvc *service.IngestService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(ingestSvc *service.IngestService) *WebhookHandler {
	return &WebhookHandler{ingestSvc: ingestSvc}
}

// Receive handles POST /v1/webhooks/qualtrics. The sender delivers either
// a JSON object or form-encoded fields; both normalize to one raw
// submission.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	raw, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "failed to process webhook data: " + err.Error(),
		})
		return
	}

	res, err := h.ingestSvc.IngestWebhook(r.Context(), raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "failed to process webhook data: " + err.Error(),
		})
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

func decodePayload(r *http.Request) (ingest.Raw, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var data map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			return nil, err
		}
		return ingest.RawFromJSON(data), nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return ingest.RawFromForm(r.PostForm), nil
}
