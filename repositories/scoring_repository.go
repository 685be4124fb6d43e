package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/opencourt/tournament-engine/models"
)

var ErrScoringRulesNotFound = errors.New("scoring rules not configured for tournament")

type ScoringRepository interface {
	GetRules(ctx context.Context, tournamentID int) (models.ScoringRules, error)
	ListPlacementRanges(ctx context.Context, tournamentID int) ([]models.PlacementRange, error)
}

type postgresScoringRepository struct {
	db *sql.DB
}

func NewPostgresScoringRepository(db *sql.DB) ScoringRepository {
	return &postgresScoringRepository{db: db}
}

func (r *postgresScoringRepository) GetRules(ctx context.Context, tournamentID int) (models.ScoringRules, error) {
	query := `
		SELECT tournament_id, win_points, win_without_game_loss_points,
		       loss_points, loss_with_game_win_points, tiebreakers
		FROM scoring_rules
		WHERE tournament_id = $1`

	var rules models.ScoringRules
	var tiebreakers pq.StringArray
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&rules.TournamentID,
		&rules.WinPoints,
		&rules.WinWithoutGameLossPoints,
		&rules.LossPoints,
		&rules.LossWithGameWinPoints,
		&tiebreakers,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ScoringRules{}, ErrScoringRulesNotFound
		}
		return models.ScoringRules{}, fmt.Errorf("failed to scan scoring rules for tournament %d: %w", tournamentID, err)
	}

	rules.Tiebreakers = make([]models.Tiebreaker, len(tiebreakers))
	for i, tb := range tiebreakers {
		rules.Tiebreakers[i] = models.Tiebreaker(tb)
	}
	return rules, nil
}

func (r *postgresScoringRepository) ListPlacementRanges(ctx context.Context, tournamentID int) ([]models.PlacementRange, error) {
	query := `
		SELECT place_from, place_to, points
		FROM placement_ranges
		WHERE tournament_id = $1
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placement ranges for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var ranges []models.PlacementRange
	for rows.Next() {
		var pr models.PlacementRange
		if err := rows.Scan(&pr.PlaceFrom, &pr.PlaceTo, &pr.Points); err != nil {
			return nil, fmt.Errorf("failed to scan placement range row: %w", err)
		}
		ranges = append(ranges, pr)
	}
	return ranges, rows.Err()
}
