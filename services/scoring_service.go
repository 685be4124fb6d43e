package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opencourt/tournament-engine/brackets"
	"github.com/opencourt/tournament-engine/models"
	"github.com/opencourt/tournament-engine/repositories"
	"golang.org/x/sync/errgroup"
)

// ScoringService answers the derived queries: standings, placements and point
// totals. Everything is recomputed from a registration+match snapshot at call
// time; nothing here writes.
type ScoringService interface {
	Standings(ctx context.Context, categoryID int) ([]models.StandingEntry, error)
	Placements(ctx context.Context, categoryID int) ([]int, error)
	PlayerPoints(ctx context.Context, tournamentID int) (map[int]int, error)
	LeagueRanking(ctx context.Context, leagueID, seasonID, categoryID int) ([]models.PlayerRank, error)
}

type scoringService struct {
	tournamentRepo   repositories.TournamentRepository
	categoryRepo     repositories.CategoryRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	scoringRepo      repositories.ScoringRepository
	logger           *slog.Logger
}

func NewScoringService(
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	scoringRepo repositories.ScoringRepository,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		tournamentRepo:   tournamentRepo,
		categoryRepo:     categoryRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		scoringRepo:      scoringRepo,
		logger:           logger,
	}
}

// categorySnapshot is the immutable input set of one derived computation.
type categorySnapshot struct {
	category      *models.Category
	registrations []*models.Registration
	matches       []*models.Match
	rules         models.ScoringRules
}

func (s *scoringService) loadSnapshot(ctx context.Context, categoryID int) (*categorySnapshot, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	snapshot := &categorySnapshot{category: category}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		registrations, err := s.registrationRepo.ListByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load registrations for category %d: %w", categoryID, err)
		}
		snapshot.registrations = registrations
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByCategory(gCtx, categoryID, nil)
		if err != nil {
			return fmt.Errorf("failed to load matches for category %d: %w", categoryID, err)
		}
		snapshot.matches = matches
		return nil
	})
	g.Go(func() error {
		rules, err := s.scoringRepo.GetRules(gCtx, category.TournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrScoringRulesNotFound) {
				snapshot.rules = models.DefaultScoringRules()
				return nil
			}
			return fmt.Errorf("failed to load scoring rules for tournament %d: %w", category.TournamentID, err)
		}
		snapshot.rules = rules
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A malformed tiebreaker chain is a data-quality note, never a failure:
	// calculators fall back to the canonical order on their own.
	if _, ok := snapshot.rules.NormalizedTiebreakers(); !ok {
		s.logger.Warn("malformed tiebreaker chain, using default order",
			slog.Int("tournament_id", category.TournamentID))
	}

	return snapshot, nil
}

func (s *scoringService) Standings(ctx context.Context, categoryID int) ([]models.StandingEntry, error) {
	snapshot, err := s.loadSnapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return brackets.BuildStandings(snapshot.registrations, groupMatches(snapshot.matches), snapshot.rules), nil
}

func (s *scoringService) Placements(ctx context.Context, categoryID int) ([]int, error) {
	snapshot, err := s.loadSnapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return brackets.ResolvePlacements(snapshot.category, snapshot.registrations, snapshot.matches, snapshot.rules), nil
}

func (s *scoringService) PlayerPoints(ctx context.Context, tournamentID int) (map[int]int, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	categories, err := s.categoryRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for tournament %d: %w", tournamentID, err)
	}
	ranges, err := s.scoringRepo.ListPlacementRanges(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load placement ranges for tournament %d: %w", tournamentID, err)
	}

	total := make(map[int]int)
	for _, category := range categories {
		credits, err := s.categoryCredits(ctx, category.ID, ranges)
		if err != nil {
			return nil, err
		}
		brackets.MergeCredits(total, credits)
	}
	return total, nil
}

func (s *scoringService) LeagueRanking(ctx context.Context, leagueID, seasonID, categoryID int) ([]models.PlayerRank, error) {
	siblingIDs, err := s.categoryRepo.ListSiblingIDs(ctx, categoryID, leagueID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve league categories for category %d: %w", categoryID, err)
	}

	total := make(map[int]int)
	for _, id := range siblingIDs {
		category, err := s.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load category %d: %w", id, err)
		}
		ranges, err := s.scoringRepo.ListPlacementRanges(ctx, category.TournamentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load placement ranges for tournament %d: %w", category.TournamentID, err)
		}
		credits, err := s.categoryCredits(ctx, id, ranges)
		if err != nil {
			return nil, err
		}
		brackets.MergeCredits(total, credits)
	}
	return brackets.RankPlayers(total), nil
}

// categoryCredits computes per-player point credits for one category:
// placements zipped against the range table, fanned out to member ids.
func (s *scoringService) categoryCredits(ctx context.Context, categoryID int, ranges []models.PlacementRange) (map[int]int, error) {
	snapshot, err := s.loadSnapshot(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	placements := brackets.ResolvePlacements(snapshot.category, snapshot.registrations, snapshot.matches, snapshot.rules)
	awards := brackets.AwardPoints(placements, ranges)
	return brackets.CreditPlayers(snapshot.registrations, awards), nil
}

func groupMatches(matches []*models.Match) []*models.Match {
	out := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Stage == models.StageGroup {
			out = append(out, m)
		}
	}
	return out
}
