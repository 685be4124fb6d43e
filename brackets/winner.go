package brackets

import "github.com/opencourt/tournament-engine/models"

type setTally struct {
	setsA, setsB     int
	pointsA, pointsB int
}

func tallyGames(games []models.SetScore) setTally {
	var t setTally
	for _, g := range games {
		t.pointsA += g.A
		t.pointsB += g.B
		if g.A > g.B {
			t.setsA++
		} else if g.B > g.A {
			t.setsB++
		}
	}
	return t
}

// ResolveWinnerSide determines the winning side of a match. A bye advances
// its only real participant without any recorded result. Otherwise the
// precedence is: a non-PLAYED outcome names the retiring side (the loser),
// an explicit winner side is taken as-is, strict set majority decides last.
// ok is false when the match has no determinable winner yet.
func ResolveWinnerSide(m *models.Match) (models.Side, bool) {
	if m.SlotA.IsTaken() && m.SlotB.Kind == models.SlotBye {
		return models.SideA, true
	}
	if m.SlotB.IsTaken() && m.SlotA.Kind == models.SlotBye {
		return models.SideB, true
	}
	if m.OutcomeType != nil && *m.OutcomeType != models.OutcomePlayed {
		if m.OutcomeSide == nil {
			return "", false
		}
		return m.OutcomeSide.Other(), true
	}
	if m.WinnerSide != nil {
		return *m.WinnerSide, true
	}
	t := tallyGames(m.Games)
	switch {
	case t.setsA > t.setsB:
		return models.SideA, true
	case t.setsB > t.setsA:
		return models.SideB, true
	default:
		return "", false
	}
}

// WinnerRegistration resolves the winning registration id of a match.
// ok is false when the winner is undetermined or the winning slot does not
// hold a real registration.
func WinnerRegistration(m *models.Match) (int, bool) {
	side, ok := ResolveWinnerSide(m)
	if !ok {
		return 0, false
	}
	slot := m.Slot(side)
	if !slot.IsTaken() {
		return 0, false
	}
	return *slot.RegistrationID, true
}

// LoserRegistration resolves the losing registration id of a match.
func LoserRegistration(m *models.Match) (int, bool) {
	side, ok := ResolveWinnerSide(m)
	if !ok {
		return 0, false
	}
	slot := m.Slot(side.Other())
	if !slot.IsTaken() {
		return 0, false
	}
	return *slot.RegistrationID, true
}
