package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opencourt/tournament-engine/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByCategory(ctx context.Context, categoryID int, stage *models.MatchStage) ([]*models.Match, error)
	// UpdateSlot writes one side of a match. Must run inside a caller-owned
	// transaction when it is part of a propagation or swap write set.
	UpdateSlot(ctx context.Context, exec SQLExecutor, matchID int, side models.Side, slot models.Slot) error
	// UpdateResult persists a recorded result (set list, explicit winner,
	// outcome override) in one statement.
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// ResetResult returns a match to unplayed state: games null, winner null,
	// outcome PLAYED with no outcome side.
	ResetResult(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, category_id, stage, group_name, round_number, is_bronze_match,
	slot_a_kind, slot_a_registration_id, slot_b_kind, slot_b_registration_id,
	games, winner_side, outcome_type, outcome_side, created_at`

func scanMatch(scanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	var games []byte
	var winnerSide, outcomeType, outcomeSide sql.NullString

	err := scanner.Scan(
		&m.ID,
		&m.CategoryID,
		&m.Stage,
		&m.GroupName,
		&m.RoundNumber,
		&m.IsBronzeMatch,
		&m.SlotA.Kind,
		&m.SlotA.RegistrationID,
		&m.SlotB.Kind,
		&m.SlotB.RegistrationID,
		&games,
		&winnerSide,
		&outcomeType,
		&outcomeSide,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(games) > 0 {
		if err := json.Unmarshal(games, &m.Games); err != nil {
			return nil, fmt.Errorf("failed to decode games of match %d: %w", m.ID, err)
		}
	}
	if winnerSide.Valid {
		side := models.Side(winnerSide.String)
		m.WinnerSide = &side
	}
	if outcomeType.Valid {
		outcome := models.OutcomeType(outcomeType.String)
		m.OutcomeType = &outcome
	}
	if outcomeSide.Valid {
		side := models.Side(outcomeSide.String)
		m.OutcomeSide = &side
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByCategory(ctx context.Context, categoryID int, stage *models.MatchStage) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE category_id = $1`
	args := []interface{}{categoryID}
	if stage != nil {
		query += ` AND stage = $2`
		args = append(args, *stage)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateSlot(ctx context.Context, exec SQLExecutor, matchID int, side models.Side, slot models.Slot) error {
	query := `UPDATE matches SET slot_a_kind = $1, slot_a_registration_id = $2 WHERE id = $3`
	if side == models.SideB {
		query = `UPDATE matches SET slot_b_kind = $1, slot_b_registration_id = $2 WHERE id = $3`
	}

	result, err := exec.ExecContext(ctx, query, slot.Kind, slot.RegistrationID, matchID)
	if err != nil {
		return fmt.Errorf("failed to update slot %s of match %d: %w", side, matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	var games interface{}
	if match.Games != nil {
		encoded, err := json.Marshal(match.Games)
		if err != nil {
			return fmt.Errorf("failed to encode games of match %d: %w", match.ID, err)
		}
		games = encoded
	}

	query := `
		UPDATE matches
		SET games = $1, winner_side = $2, outcome_type = $3, outcome_side = $4
		WHERE id = $5`

	result, err := exec.ExecContext(ctx, query,
		games,
		match.WinnerSide,
		match.OutcomeType,
		match.OutcomeSide,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update result of match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ResetResult(ctx context.Context, exec SQLExecutor, matchID int) error {
	query := `
		UPDATE matches
		SET games = NULL, winner_side = NULL, outcome_type = $1, outcome_side = NULL
		WHERE id = $2`

	result, err := exec.ExecContext(ctx, query, models.OutcomePlayed, matchID)
	if err != nil {
		return fmt.Errorf("failed to reset match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
