package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pharmalytics/nexus-go/internal/middleware"
	"github.com/pharmalytics/nexus-go/internal/model"
	"github.com/pharmalytics/nexus-go/internal/service"
)

// DrugHandler handles HTTP requests for the drug catalog and checks.
type DrugHandler struct {
	service *service.DrugService
}

// NewDrugHandler creates a new DrugHandler.
func NewDrugHandler(svc *service.DrugService) *DrugHandler {
	return &DrugHandler{service: svc}
}

// HandleListDrugs handles GET /api/v1/drugs/ requests.
func (h *DrugHandler) HandleListDrugs(w http.ResponseWriter, r *http.Request) {
	drugs, err := h.service.ListDrugs(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, drugs)
}

// HandleGetDrug handles GET /api/v1/drugs/{drug_id}/ requests.
func (h *DrugHandler) HandleGetDrug(w http.ResponseWriter, r *http.Request) {
	drugID := chi.URLParam(r, "drug_id")
	if drugID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid drug id"))
		return
	}

	drug, err := h.service.GetDrug(r.Context(), drugID)
	if err != nil {
		if errors.Is(err, service.ErrDrugNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, drug)
}

// HandleSearch handles GET /api/v1/drugs/search/ requests.
func (h *DrugHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.SearchMedications(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCheckInteractions handles POST /api/v1/drugs/check-interactions/ requests.
func (h *DrugHandler) HandleCheckInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CheckInteractionsRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CheckInteractions(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrTooFewMedications) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory handles GET /api/v1/drugs/interaction-history/ requests.
func (h *DrugHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	checks, err := h.service.History(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, checks)
}
