package handler

import (
	"net/http"

	"ascdash/internal/service"
)

// 32 MB multipart memory cap; larger exports spill to temp files
const maxImportMemory = 32 << 20

// ImportHandler handles bulk CSV imports
type ImportHandler struct {
	ingestSvc *service.IngestService
}

// NewImportHandler creates a new import handler
func NewImportHandler(ingestSvc *service.IngestService) *ImportHandler {
	return &ImportHandler{ingestSvc: ingestSvc}
}

// ImportCSV handles POST /v1/imports/qualtrics
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	res, err := h.ingestSvc.ImportCSV(r.Context(), file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, res)
}
