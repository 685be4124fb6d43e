package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opencourt/tournament-engine/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	GetByID(ctx context.Context, id int) (*models.Category, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Category, error)
	// ListSiblingIDs returns the ids of every category that matches the
	// reference category's sport and name across all tournaments of the
	// given league season. Used by league ranking aggregation.
	ListSiblingIDs(ctx context.Context, categoryID, leagueID, seasonID int) ([]int, error)
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT id, tournament_id, sport, name, draw_type, min_group_size, max_group_size
		FROM categories
		WHERE id = $1`

	category := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.TournamentID,
		&category.Sport,
		&category.Name,
		&category.DrawType,
		&category.MinGroupSize,
		&category.MaxGroupSize,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to scan category %d: %w", id, err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Category, error) {
	query := `
		SELECT id, tournament_id, sport, name, draw_type, min_group_size, max_group_size
		FROM categories
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID,
			&category.TournamentID,
			&category.Sport,
			&category.Name,
			&category.DrawType,
			&category.MinGroupSize,
			&category.MaxGroupSize,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *postgresCategoryRepository) ListSiblingIDs(ctx context.Context, categoryID, leagueID, seasonID int) ([]int, error) {
	query := `
		SELECT c.id
		FROM categories c
		JOIN tournaments t ON t.id = c.tournament_id
		JOIN categories ref ON ref.id = $1
		WHERE t.league_id = $2
		  AND t.season_id = $3
		  AND c.sport = ref.sport
		  AND c.name = ref.name
		ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, query, categoryID, leagueID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sibling categories of %d: %w", categoryID, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan sibling category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
