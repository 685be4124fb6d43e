package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/opencourt/tournament-engine/models"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type RegistrationRepository interface {
	ListByCategory(ctx context.Context, categoryID int) ([]*models.Registration, error)
	// UpdateGroupNames applies a full group assignment snapshot, overwriting
	// any previous assignment. Must run inside a caller-owned transaction.
	UpdateGroupNames(ctx context.Context, exec SQLExecutor, assignment map[int]string) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) ListByCategory(ctx context.Context, categoryID int) ([]*models.Registration, error) {
	query := `
		SELECT id, category_id, players, seed, ranking_number, group_name, created_at
		FROM registrations
		WHERE category_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	for rows.Next() {
		reg := &models.Registration{}
		var players pq.Int64Array
		if err := rows.Scan(
			&reg.ID,
			&reg.CategoryID,
			&players,
			&reg.Seed,
			&reg.RankingNumber,
			&reg.GroupName,
			&reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		reg.Players = make([]int, len(players))
		for i, p := range players {
			reg.Players[i] = int(p)
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func (r *postgresRegistrationRepository) UpdateGroupNames(ctx context.Context, exec SQLExecutor, assignment map[int]string) error {
	query := `UPDATE registrations SET group_name = $1 WHERE id = $2`

	for registrationID, groupName := range assignment {
		result, err := exec.ExecContext(ctx, query, groupName, registrationID)
		if err != nil {
			return fmt.Errorf("failed to set group %q on registration %d: %w", groupName, registrationID, err)
		}
		if err := checkAffectedRows(result, ErrRegistrationNotFound); err != nil {
			return err
		}
	}
	return nil
}
