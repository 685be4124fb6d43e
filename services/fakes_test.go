package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/opencourt/tournament-engine/models"
	"github.com/opencourt/tournament-engine/repositories"
)

var testEpoch = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	tournament, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return tournament, nil
}

type fakeCategoryRepo struct {
	categories map[int]*models.Category
	siblingIDs []int
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		if c.TournamentID == tournamentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListSiblingIDs(_ context.Context, _, _, _ int) ([]int, error) {
	return f.siblingIDs, nil
}

type fakeRegistrationRepo struct {
	byCategory map[int][]*models.Registration
	updated    map[int]string
}

func (f *fakeRegistrationRepo) ListByCategory(_ context.Context, categoryID int) ([]*models.Registration, error) {
	return f.byCategory[categoryID], nil
}

func (f *fakeRegistrationRepo) UpdateGroupNames(_ context.Context, _ repositories.SQLExecutor, assignment map[int]string) error {
	if f.updated == nil {
		f.updated = make(map[int]string)
	}
	for id, group := range assignment {
		f.updated[id] = group
	}
	return nil
}

type fakeMatchRepo struct {
	matches []*models.Match
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	for _, m := range f.matches {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListByCategory(_ context.Context, categoryID int, stage *models.MatchStage) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range f.matches {
		if m.CategoryID != categoryID {
			continue
		}
		if stage != nil && m.Stage != *stage {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateSlot(_ context.Context, _ repositories.SQLExecutor, matchID int, side models.Side, slot models.Slot) error {
	for _, m := range f.matches {
		if m.ID == matchID {
			m.SetSlot(side, slot)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	for i, m := range f.matches {
		if m.ID == match.ID {
			f.matches[i] = match
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

// ResetResult mirrors the Postgres repository: games and winner cleared,
// outcome back to PLAYED with no outcome side.
func (f *fakeMatchRepo) ResetResult(_ context.Context, _ repositories.SQLExecutor, matchID int) error {
	for _, m := range f.matches {
		if m.ID == matchID {
			played := models.OutcomePlayed
			m.Games = nil
			m.WinnerSide = nil
			m.OutcomeType = &played
			m.OutcomeSide = nil
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

type fakeScoringRepo struct {
	rules  map[int]models.ScoringRules
	ranges map[int][]models.PlacementRange
}

func (f *fakeScoringRepo) GetRules(_ context.Context, tournamentID int) (models.ScoringRules, error) {
	rules, ok := f.rules[tournamentID]
	if !ok {
		return models.ScoringRules{}, repositories.ErrScoringRulesNotFound
	}
	return rules, nil
}

func (f *fakeScoringRepo) ListPlacementRanges(_ context.Context, tournamentID int) ([]models.PlacementRange, error) {
	return f.ranges[tournamentID], nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newReg(id, categoryID int, players ...int) *models.Registration {
	return &models.Registration{
		ID:         id,
		CategoryID: categoryID,
		Players:    players,
		CreatedAt:  testEpoch.Add(time.Duration(id) * time.Minute),
	}
}

func groupMatch(id, categoryID, regA, regB int, games ...models.SetScore) *models.Match {
	return &models.Match{
		ID:         id,
		CategoryID: categoryID,
		Stage:      models.StageGroup,
		SlotA:      models.TakenSlot(regA),
		SlotB:      models.TakenSlot(regB),
		Games:      games,
		CreatedAt:  testEpoch.Add(time.Duration(id) * time.Minute),
	}
}

func playoffMatch(id, categoryID, round int, slotA, slotB models.Slot) *models.Match {
	return &models.Match{
		ID:          id,
		CategoryID:  categoryID,
		Stage:       models.StagePlayoff,
		RoundNumber: intPtr(round),
		SlotA:       slotA,
		SlotB:       slotB,
		CreatedAt:   testEpoch.Add(time.Duration(id) * time.Minute),
	}
}

func wonByA() []models.SetScore {
	return []models.SetScore{{A: 11, B: 5}, {A: 11, B: 7}}
}

func wonByB() []models.SetScore {
	return []models.SetScore{{A: 5, B: 11}, {A: 7, B: 11}}
}
