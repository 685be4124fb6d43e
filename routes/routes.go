package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/opencourt/tournament-engine/handlers"
	"github.com/opencourt/tournament-engine/middleware"
)

type Handlers struct {
	Scoring   *handlers.ScoringHandler
	Match     *handlers.MatchHandler
	Category  *handlers.CategoryHandler
	Auth      *handlers.AuthHandler
	WebSocket *handlers.WebSocketHandler
}

// New assembles the router: public read-only queries, the live bracket feed,
// and organizer-gated mutations.
func New(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/login", h.Auth.LoginHandler)

	// Derived queries: standings, placements and point totals are pure reads.
	router.Get("/categories/{categoryID}/standings", h.Scoring.StandingsHandler)
	router.Get("/categories/{categoryID}/placements", h.Scoring.PlacementsHandler)
	router.Get("/tournaments/{tournamentID}/player-points", h.Scoring.PlayerPointsHandler)
	router.Get("/leagues/{leagueID}/seasons/{seasonID}/categories/{categoryID}/ranking", h.Scoring.LeagueRankingHandler)

	router.Get("/ws/categories/{categoryID}", h.WebSocket.CategoryFeedHandler)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.RequireRole("organizer"))

		r.Post("/matches/{matchID}/result", h.Match.RecordResultHandler)
		r.Post("/matches/swap", h.Match.SwapSlotsHandler)
		r.Post("/categories/{categoryID}/auto-balance", h.Category.AutoBalanceHandler)
		r.Post("/categories/{categoryID}/finalize", h.Category.FinalizeHandler)
	})

	return router
}
