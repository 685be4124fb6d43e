package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opencourt/tournament-engine/brackets"
	"github.com/opencourt/tournament-engine/models"
	"github.com/opencourt/tournament-engine/repositories"
)

// ResultInput is a recorded match result: a set list, an optional explicit
// winner, and an optional outcome override for walkovers/retirements.
type ResultInput struct {
	Games       []models.SetScore   `json:"games"`
	WinnerSide  *models.Side        `json:"winner_side,omitempty"`
	OutcomeType *models.OutcomeType `json:"outcome_type,omitempty"`
	OutcomeSide *models.Side        `json:"outcome_side,omitempty"`
}

// SwapInput names the two playoff slots whose occupants exchange places.
type SwapInput struct {
	MatchAID int         `json:"match_a_id"`
	SideA    models.Side `json:"side_a"`
	MatchBID int         `json:"match_b_id"`
	SideB    models.Side `json:"side_b"`
}

// ProgressionService owns every mutation the engine performs: recording
// results with winner/loser propagation, manual slot swaps, and group
// auto-balancing. Each operation is one transaction; partially propagated
// brackets are never visible.
type ProgressionService interface {
	RecordResult(ctx context.Context, matchID int, input ResultInput) (*models.Match, error)
	SwapSlots(ctx context.Context, input SwapInput) error
	AutoBalanceGroups(ctx context.Context, categoryID int) (map[int]string, error)
}

type progressionService struct {
	db               *sql.DB
	matchRepo        repositories.MatchRepository
	registrationRepo repositories.RegistrationRepository
	categoryRepo     repositories.CategoryRepository
	hub              *brackets.Hub
	logger           *slog.Logger
}

func NewProgressionService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	registrationRepo repositories.RegistrationRepository,
	categoryRepo repositories.CategoryRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) ProgressionService {
	return &progressionService{
		db:               db,
		matchRepo:        matchRepo,
		registrationRepo: registrationRepo,
		categoryRepo:     categoryRepo,
		hub:              hub,
		logger:           logger,
	}
}

// runInTx executes fn inside one transaction, committing on nil and rolling
// back otherwise.
func (s *progressionService) runInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func validateResultInput(input ResultInput) error {
	if len(input.Games) > models.MaxSetsPerMatch {
		return ErrTooManySets
	}
	for _, g := range input.Games {
		if g.A < 0 || g.B < 0 {
			return ErrNegativeSetScore
		}
	}
	if input.OutcomeType != nil && *input.OutcomeType != models.OutcomePlayed && input.OutcomeSide == nil {
		return ErrOutcomeSideRequired
	}
	return nil
}

// RecordResult persists a match result and, for playoff matches, advances the
// winner into the next round and recomputes the bronze-match slots, all in
// one transaction. A result without a resolvable winner is rejected before
// anything is written.
func (s *progressionService) RecordResult(ctx context.Context, matchID int, input ResultInput) (*models.Match, error) {
	if err := validateResultInput(input); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	match.Games = input.Games
	match.WinnerSide = input.WinnerSide
	match.OutcomeType = input.OutcomeType
	match.OutcomeSide = input.OutcomeSide

	if _, ok := brackets.ResolveWinnerSide(match); !ok {
		return nil, ErrMatchWinnerUnresolved
	}

	var writes []brackets.SlotWrite
	if match.Stage == models.StagePlayoff {
		playoffStage := models.StagePlayoff
		playoff, err := s.matchRepo.ListByCategory(ctx, match.CategoryID, &playoffStage)
		if err != nil {
			return nil, fmt.Errorf("failed to load playoff matches for category %d: %w", match.CategoryID, err)
		}
		// The snapshot must see the result being recorded.
		for i, m := range playoff {
			if m.ID == match.ID {
				playoff[i] = match
			}
		}
		if w := brackets.PlanAdvance(match, playoff); w != nil {
			writes = append(writes, *w)
		}
		writes = append(writes, brackets.PlanByeAdvances(playoff)...)
		writes = append(writes, brackets.PlanBronze(playoff)...)
	}

	err = s.runInTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.UpdateResult(ctx, tx, match); err != nil {
			return err
		}
		for _, w := range writes {
			if err := s.matchRepo.UpdateSlot(ctx, tx, w.MatchID, w.Side, models.TakenSlot(w.RegistrationID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(brackets.Event{Type: brackets.EventMatchUpdated, CategoryID: match.CategoryID, Payload: match})
	if len(writes) > 0 {
		s.logger.Info("bracket advanced",
			slog.Int("match_id", match.ID),
			slog.Int("slot_writes", len(writes)))
		s.hub.Broadcast(brackets.Event{Type: brackets.EventBracketUpdated, CategoryID: match.CategoryID})
	}
	return match, nil
}

// SwapSlots exchanges two slot occupants across two playoff matches of the
// same category. Destructive: both matches are reset to unplayed state, so
// any recorded result for them is discarded.
func (s *progressionService) SwapSlots(ctx context.Context, input SwapInput) error {
	if input.MatchAID == input.MatchBID && input.SideA == input.SideB {
		return ErrSwapSameSlot
	}

	matchA, err := s.matchRepo.GetByID(ctx, input.MatchAID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrNotFound
		}
		return err
	}
	matchB := matchA
	if input.MatchBID != input.MatchAID {
		matchB, err = s.matchRepo.GetByID(ctx, input.MatchBID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrNotFound
			}
			return err
		}
	}

	if matchA.Stage != models.StagePlayoff || matchB.Stage != models.StagePlayoff {
		return ErrSwapNotPlayoff
	}
	if matchA.CategoryID != matchB.CategoryID {
		return ErrSwapCategoryMismatch
	}

	slotA := matchA.Slot(input.SideA)
	slotB := matchB.Slot(input.SideB)
	if !slotA.IsTaken() || !slotB.IsTaken() {
		return ErrSwapSlotEmpty
	}
	if *slotA.RegistrationID == *slotB.RegistrationID {
		return ErrSwapIdenticalOccupant
	}

	err = s.runInTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.UpdateSlot(ctx, tx, matchA.ID, input.SideA, slotB); err != nil {
			return err
		}
		if err := s.matchRepo.UpdateSlot(ctx, tx, matchB.ID, input.SideB, slotA); err != nil {
			return err
		}
		if err := s.matchRepo.ResetResult(ctx, tx, matchA.ID); err != nil {
			return err
		}
		if matchB.ID != matchA.ID {
			if err := s.matchRepo.ResetResult(ctx, tx, matchB.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("slots swapped",
		slog.Int("match_a", matchA.ID),
		slog.Int("match_b", matchB.ID),
		slog.Int("category_id", matchA.CategoryID))
	s.hub.Broadcast(brackets.Event{Type: brackets.EventBracketUpdated, CategoryID: matchA.CategoryID})
	return nil
}

// AutoBalanceGroups seeds and partitions a category's registrations into
// evenly sized groups. Re-runnable until the first group match exists.
func (s *progressionService) AutoBalanceGroups(ctx context.Context, categoryID int) (map[int]string, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !category.DrawType.HasGroups() {
		return nil, ErrDrawHasNoGroups
	}

	groupStage := models.StageGroup
	existing, err := s.matchRepo.ListByCategory(ctx, categoryID, &groupStage)
	if err != nil {
		return nil, fmt.Errorf("failed to check group matches for category %d: %w", categoryID, err)
	}
	if len(existing) > 0 {
		return nil, ErrGroupStageStarted
	}

	registrations, err := s.registrationRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations for category %d: %w", categoryID, err)
	}

	assignment := brackets.BalanceGroups(registrations, category.MinGroupSize, category.MaxGroupSize)

	err = s.runInTx(ctx, func(tx *sql.Tx) error {
		return s.registrationRepo.UpdateGroupNames(ctx, tx, assignment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("groups balanced",
		slog.Int("category_id", categoryID),
		slog.Int("registrations", len(assignment)))
	s.hub.Broadcast(brackets.Event{Type: brackets.EventGroupsBalanced, CategoryID: categoryID, Payload: assignment})
	return assignment, nil
}
