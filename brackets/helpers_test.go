package brackets

import (
	"time"

	"github.com/opencourt/tournament-engine/models"
)

var testEpoch = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func sidePtr(s models.Side) *models.Side { return &s }

func outcomePtr(o models.OutcomeType) *models.OutcomeType { return &o }

// newReg builds a singles registration; creation time follows the id so the
// default ordering is stable.
func newReg(id int, group string) *models.Registration {
	reg := &models.Registration{
		ID:         id,
		CategoryID: 1,
		Players:    []int{100 + id},
		CreatedAt:  testEpoch.Add(time.Duration(id) * time.Minute),
	}
	if group != "" {
		reg.GroupName = strPtr(group)
	}
	return reg
}

func seeded(reg *models.Registration, seed int) *models.Registration {
	reg.Seed = intPtr(seed)
	return reg
}

// groupMatch builds a finished GROUP match between two registrations.
func groupMatch(id, regA, regB int, games ...models.SetScore) *models.Match {
	return &models.Match{
		ID:         id,
		CategoryID: 1,
		Stage:      models.StageGroup,
		SlotA:      models.TakenSlot(regA),
		SlotB:      models.TakenSlot(regB),
		Games:      games,
		CreatedAt:  testEpoch.Add(time.Duration(id) * time.Minute),
	}
}

// playoffMatch builds a PLAYOFF match; slots default to pending.
func playoffMatch(id, round int, slotA, slotB models.Slot) *models.Match {
	return &models.Match{
		ID:          id,
		CategoryID:  1,
		Stage:       models.StagePlayoff,
		RoundNumber: intPtr(round),
		SlotA:       slotA,
		SlotB:       slotB,
		CreatedAt:   testEpoch.Add(time.Duration(id) * time.Minute),
	}
}

func bronzeMatch(id, round int) *models.Match {
	m := playoffMatch(id, round, models.PlaceholderSlot(models.SlotPending), models.PlaceholderSlot(models.SlotPending))
	m.IsBronzeMatch = true
	return m
}

func pending() models.Slot { return models.PlaceholderSlot(models.SlotPending) }

func taken(registrationID int) models.Slot { return models.TakenSlot(registrationID) }

// finish records a straight two-set win for the given side.
func finish(m *models.Match, winner models.Side) {
	if winner == models.SideA {
		m.Games = []models.SetScore{{A: 11, B: 5}, {A: 11, B: 7}}
	} else {
		m.Games = []models.SetScore{{A: 5, B: 11}, {A: 7, B: 11}}
	}
}

// applyWrites mutates the in-memory match snapshot the way the progression
// service's transaction would.
func applyWrites(matches []*models.Match, writes []SlotWrite) {
	byID := make(map[int]*models.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, w := range writes {
		byID[w.MatchID].SetSlot(w.Side, models.TakenSlot(w.RegistrationID))
	}
}
