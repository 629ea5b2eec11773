package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ascdash/internal/model"
	"ascdash/internal/repository"
	"ascdash/internal/service"
)

// ResponseHandler handles the dashboard read endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// List handles GET /v1/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.responseSvc.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recs == nil {
		recs = []*model.SurveyResponse{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": recs})
}

// Get handles GET /v1/responses/{responseId}
func (h *ResponseHandler) Get(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["responseId"]

	rec, err := h.responseSvc.Get(r.Context(), responseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Stats handles GET /v1/stats
func (h *ResponseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.responseSvc.Stats(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Filters handles GET /v1/filters
func (h *ResponseHandler) Filters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.responseSvc.FilterOptions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func filterFromQuery(r *http.Request) repository.ResponseFilter {
	q := r.URL.Query()
	filter := repository.ResponseFilter{
		Mentor:      q.Get("mentor"),
		Topic:       q.Get("topic"),
		ProjectName: q.Get("projectName"),
	}
	switch q.Get("surveyType") {
	case "starting", "1":
		filter.SurveyType = model.SurveyTypeStarting
	case "ending", "2":
		filter.SurveyType = model.SurveyTypeEnding
	}
	if t, err := time.Parse("2006-01-02", q.Get("startDate")); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse("2006-01-02", q.Get("endDate")); err == nil {
		filter.EndDate = &t
	}
	return filter
}
