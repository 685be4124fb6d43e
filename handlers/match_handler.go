package handlers

import (
	"net/http"

	"github.com/opencourt/tournament-engine/services"
)

type MatchHandler struct {
	progressionService services.ProgressionService
}

func NewMatchHandler(ps services.ProgressionService) *MatchHandler {
	return &MatchHandler{progressionService: ps}
}

// RecordResultHandler handles POST /matches/{matchID}/result
func (h *MatchHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.progressionService.RecordResult(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SwapSlotsHandler handles POST /matches/swap
func (h *MatchHandler) SwapSlotsHandler(w http.ResponseWriter, r *http.Request) {
	var input services.SwapInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.progressionService.SwapSlots(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"swapped": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
