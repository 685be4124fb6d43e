package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencourt/tournament-engine/brackets"
	"github.com/opencourt/tournament-engine/models"
	"github.com/opencourt/tournament-engine/repositories"
	"github.com/opencourt/tournament-engine/storage"
)

// ExportService publishes finalized category results to object storage so
// reporting collaborators can fetch them without hitting the engine.
type ExportService interface {
	FinalizeCategory(ctx context.Context, categoryID int) (string, error)
}

type exportService struct {
	tournamentRepo   repositories.TournamentRepository
	categoryRepo     repositories.CategoryRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	scoringRepo      repositories.ScoringRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewExportService(
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	scoringRepo repositories.ScoringRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ExportService {
	return &exportService{
		tournamentRepo:   tournamentRepo,
		categoryRepo:     categoryRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		scoringRepo:      scoringRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

type placementExport struct {
	Place          int   `json:"place"`
	RegistrationID int   `json:"registration_id"`
	Players        []int `json:"players"`
	Points         int   `json:"points"`
}

type categoryExport struct {
	TournamentID int               `json:"tournament_id"`
	Tournament   string            `json:"tournament"`
	CategoryID   int               `json:"category_id"`
	Sport        string            `json:"sport"`
	Name         string            `json:"name"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Placements   []placementExport `json:"placements"`
}

// FinalizeCategory computes the category's placement list and point awards
// and uploads the snapshot as JSON, returning its public URL.
func (s *exportService) FinalizeCategory(ctx context.Context, categoryID int) (string, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, category.TournamentID)
	if err != nil {
		return "", fmt.Errorf("failed to load tournament %d: %w", category.TournamentID, err)
	}
	registrations, err := s.registrationRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return "", fmt.Errorf("failed to load registrations for category %d: %w", categoryID, err)
	}
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to load matches for category %d: %w", categoryID, err)
	}
	rules, err := s.scoringRepo.GetRules(ctx, category.TournamentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrScoringRulesNotFound) {
			return "", err
		}
		rules = models.DefaultScoringRules()
	}
	ranges, err := s.scoringRepo.ListPlacementRanges(ctx, category.TournamentID)
	if err != nil {
		return "", err
	}

	placements := brackets.ResolvePlacements(category, registrations, matches, rules)
	awards := brackets.AwardPoints(placements, ranges)

	membersByID := make(map[int][]int, len(registrations))
	for _, reg := range registrations {
		membersByID[reg.ID] = reg.Players
	}

	export := categoryExport{
		TournamentID: tournament.ID,
		Tournament:   tournament.Name,
		CategoryID:   category.ID,
		Sport:        category.Sport,
		Name:         category.Name,
		GeneratedAt:  time.Now().UTC(),
		Placements:   make([]placementExport, 0, len(placements)),
	}
	for i, registrationID := range placements {
		export.Placements = append(export.Placements, placementExport{
			Place:          i + 1,
			RegistrationID: registrationID,
			Players:        membersByID[registrationID],
			Points:         awards[registrationID],
		})
	}

	payload, err := json.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("failed to encode results for category %d: %w", categoryID, err)
	}

	key := fmt.Sprintf("results/category-%d.json", categoryID)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to upload results for category %d: %w", categoryID, err)
	}

	s.logger.Info("category results published",
		slog.Int("category_id", categoryID),
		slog.String("key", result.Key))
	return result.Location, nil
}
