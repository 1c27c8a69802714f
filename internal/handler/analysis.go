package handler

import (
	"errors"
	"net/http"

	"github.com/pharmalytics/nexus-go/internal/middleware"
	"github.com/pharmalytics/nexus-go/internal/model"
	"github.com/pharmalytics/nexus-go/internal/service"
)

// AnalysisHandler handles HTTP requests for the clinical analyzers.
type AnalysisHandler struct {
	service *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(svc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: svc}
}

// HandleAnalyzeInteraction handles POST /api/v1/ai/analyze-interaction/ requests.
func (h *AnalysisHandler) HandleAnalyzeInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.AnalyzeInteractionRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.AnalyzeInteraction(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDosageRecommendation handles POST /api/v1/ai/dosage-recommendation/ requests.
func (h *AnalysisHandler) HandleDosageRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.DosageRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.DosageRecommendation(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSideEffects handles POST /api/v1/ai/analyze-side-effects/ requests.
func (h *AnalysisHandler) HandleSideEffects(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.SideEffectRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.SideEffects(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleExtractFromText handles POST /api/v1/ai/extract-from-text/ requests.
func (h *AnalysisHandler) HandleExtractFromText(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ExtractRequest
	if !decodeBody(w, r, 64<<10, &req) {
		return
	}

	resp, err := h.service.ExtractFromText(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTooFewMedications), errors.Is(err, service.ErrDrugNameRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
