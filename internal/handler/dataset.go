package handler

import (
	"errors"
	"net/http"

	"github.com/pharmalytics/nexus-go/internal/model"
	"github.com/pharmalytics/nexus-go/internal/service"
)

// DatasetHandler handles HTTP requests for dataset imports.
type DatasetHandler struct {
	service *service.DatasetService
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(svc *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: svc}
}

// HandleImportStatus handles GET /api/v1/datasets/import-status/ requests.
func (h *DatasetHandler) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ImportStatus(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStartImport handles POST /api/v1/datasets/start-import/ requests.
func (h *DatasetHandler) HandleStartImport(w http.ResponseWriter, r *http.Request) {
	var req model.StartImportRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.StartImport(r.Context(), req.Source)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSource) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
