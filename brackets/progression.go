package brackets

import "github.com/opencourt/tournament-engine/models"

// SlotWrite is one pending slot assignment produced by the propagation
// planners. All writes stemming from a single triggering event must be
// applied in one transaction.
type SlotWrite struct {
	MatchID        int
	Side           models.Side
	RegistrationID int
}

// guardedWrite applies the non-overwrite rule: a slot is written only when it
// is empty or a placeholder. A slot already holding the same registration is
// an idempotent no-op; a slot holding a different real registration is left
// untouched so replayed or out-of-order propagation can never corrupt the
// bracket.
func guardedWrite(target *models.Match, side models.Side, registrationID int) *SlotWrite {
	if target.Slot(side).IsTaken() {
		return nil
	}
	return &SlotWrite{MatchID: target.ID, Side: side, RegistrationID: registrationID}
}

// PlanAdvance computes the slot write that carries the winner of a finished
// playoff match into the next round. It returns nil when there is nothing to
// write: a bronze or non-playoff match, an unresolved winner, the final
// (no next match), or a guarded target slot.
func PlanAdvance(finished *models.Match, playoff []*models.Match) *SlotWrite {
	if finished.Stage != models.StagePlayoff || finished.IsBronzeMatch {
		return nil
	}
	winnerID, ok := WinnerRegistration(finished)
	if !ok {
		return nil
	}

	idx := BuildIndex(playoff)
	coord, ok := idx.CoordinateOf(finished.ID)
	if !ok {
		return nil
	}
	next, side := coord.Next()
	target, ok := idx.MatchAt(next)
	if !ok {
		return nil
	}
	return guardedWrite(target, side, winnerID)
}

// PlanByeAdvances carries bye winners forward. A round-1 match whose opponent
// slot is a bye has a winner without any recorded result; its advance is
// planned alongside regular propagation so a bye never blocks the next round.
func PlanByeAdvances(playoff []*models.Match) []SlotWrite {
	idx := BuildIndex(playoff)
	var writes []SlotWrite
	for _, m := range playoff {
		if m.Stage != models.StagePlayoff || m.IsBronzeMatch {
			continue
		}
		if m.SlotA.Kind != models.SlotBye && m.SlotB.Kind != models.SlotBye {
			continue
		}
		winnerID, ok := WinnerRegistration(m)
		if !ok {
			continue
		}
		coord, ok := idx.CoordinateOf(m.ID)
		if !ok {
			continue
		}
		next, side := coord.Next()
		target, ok := idx.MatchAt(next)
		if !ok {
			continue
		}
		if w := guardedWrite(target, side, winnerID); w != nil {
			writes = append(writes, *w)
		}
	}
	return writes
}

// PlanBronze recomputes the semifinal losers and plans their placement into
// the bronze match. The semifinal round is the one immediately preceding the
// final; brackets with a single round have no semifinal and plan nothing.
// Losers are assigned by semifinal bracket order: the first semifinal's loser
// to side A, the second's to side B, each under the non-overwrite guard.
func PlanBronze(playoff []*models.Match) []SlotWrite {
	var bronze *models.Match
	for _, m := range playoff {
		if m.Stage == models.StagePlayoff && m.IsBronzeMatch {
			bronze = m
			break
		}
	}
	if bronze == nil {
		return nil
	}

	idx := BuildIndex(playoff)
	if idx.FinalRound() <= 1 {
		return nil
	}

	semis := idx.MatchesInRound(idx.FinalRound() - 1)
	sides := []models.Side{models.SideA, models.SideB}

	var writes []SlotWrite
	for i, semi := range semis {
		if i >= len(sides) {
			break
		}
		loserID, ok := LoserRegistration(semi)
		if !ok {
			continue
		}
		if w := guardedWrite(bronze, sides[i], loserID); w != nil {
			writes = append(writes, *w)
		}
	}
	return writes
}
