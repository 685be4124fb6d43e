package handlers

import (
	"net/http"

	"github.com/opencourt/tournament-engine/services"
)

type CategoryHandler struct {
	progressionService services.ProgressionService
	exportService      services.ExportService
}

func NewCategoryHandler(ps services.ProgressionService, es services.ExportService) *CategoryHandler {
	return &CategoryHandler{
		progressionService: ps,
		exportService:      es,
	}
}

// AutoBalanceHandler handles POST /categories/{categoryID}/auto-balance
func (h *CategoryHandler) AutoBalanceHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.progressionService.AutoBalanceGroups(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": assignment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeHandler handles POST /categories/{categoryID}/finalize
func (h *CategoryHandler) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	location, err := h.exportService.FinalizeCategory(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results_url": location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
