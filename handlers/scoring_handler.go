package handlers

import (
	"net/http"

	"github.com/opencourt/tournament-engine/services"
)

type ScoringHandler struct {
	scoringService services.ScoringService
}

func NewScoringHandler(ss services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: ss}
}

// StandingsHandler handles GET /categories/{categoryID}/standings
func (h *ScoringHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.scoringService.Standings(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PlacementsHandler handles GET /categories/{categoryID}/placements
func (h *ScoringHandler) PlacementsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	placements, err := h.scoringService.Placements(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"placements": placements}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PlayerPointsHandler handles GET /tournaments/{tournamentID}/player-points
func (h *ScoringHandler) PlayerPointsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.scoringService.PlayerPoints(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player_points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeagueRankingHandler handles GET /leagues/{leagueID}/seasons/{seasonID}/categories/{categoryID}/ranking
func (h *ScoringHandler) LeagueRankingHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranking, err := h.scoringService.LeagueRanking(r.Context(), leagueID, seasonID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
