package brackets

import (
	"sort"
	"strings"

	"github.com/opencourt/tournament-engine/models"
)

// BuildStandings computes ranked group standings for one category from its
// registrations, its GROUP-stage matches and the tournament scoring rules.
// The result is ordered by group label, then by rank within the group; the
// order is total and deterministic for identical inputs.
//
// A forfeit (WALKOVER/INJURY) awards the win-without-game bonus to the winner
// and plain loss points to the retiring side, identical to a clean-sweep win.
// That equivalence is intentional, not an accident of implementation.
func BuildStandings(
	registrations []*models.Registration,
	matches []*models.Match,
	rules models.ScoringRules,
) []models.StandingEntry {
	entries := make(map[int]*models.StandingEntry, len(registrations))
	byID := make(map[int]*models.Registration, len(registrations))

	for _, reg := range registrations {
		group := "A"
		if reg.GroupName != nil {
			if trimmed := strings.TrimSpace(*reg.GroupName); trimmed != "" {
				group = trimmed
			}
		}
		entries[reg.ID] = &models.StandingEntry{
			RegistrationID: reg.ID,
			GroupName:      group,
		}
		byID[reg.ID] = reg
	}

	for _, m := range matches {
		if m.Stage != models.StageGroup {
			continue
		}
		if !m.SlotA.IsTaken() || !m.SlotB.IsTaken() {
			continue
		}
		a, okA := entries[*m.SlotA.RegistrationID]
		b, okB := entries[*m.SlotB.RegistrationID]
		if !okA || !okB {
			// Match references a registration outside the category; ignore.
			continue
		}

		if m.OutcomeType != nil && *m.OutcomeType != models.OutcomePlayed {
			if m.OutcomeSide == nil {
				continue
			}
			winner, loser := a, b
			if *m.OutcomeSide == models.SideA {
				winner, loser = b, a
			}
			winner.Points += rules.WinWithoutGameLossPoints
			winner.MatchesWon++
			loser.Points += rules.LossPoints
			loser.MatchesLost++
			continue
		}

		t := tallyGames(m.Games)
		if t.setsA == t.setsB {
			// No set majority: unfinished or malformed, excluded entirely.
			continue
		}

		a.SetsWon += t.setsA
		a.SetsLost += t.setsB
		a.PointsFor += t.pointsA
		a.PointsAgainst += t.pointsB
		b.SetsWon += t.setsB
		b.SetsLost += t.setsA
		b.PointsFor += t.pointsB
		b.PointsAgainst += t.pointsA

		winner, loser := a, b
		loserSets := t.setsB
		if t.setsB > t.setsA {
			winner, loser = b, a
			loserSets = t.setsA
		}
		winner.MatchesWon++
		loser.MatchesLost++

		if loserSets == 0 {
			winner.Points += rules.WinWithoutGameLossPoints
		} else {
			winner.Points += rules.WinPoints
		}
		if loserSets >= 1 {
			loser.Points += rules.LossWithGameWinPoints
		} else {
			loser.Points += rules.LossPoints
		}
	}

	chain, _ := rules.NormalizedTiebreakers()

	result := make([]models.StandingEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return lessStanding(&result[i], &result[j], chain, byID)
	})
	return result
}

func tiebreakMetric(e *models.StandingEntry, tb models.Tiebreaker) int {
	switch tb {
	case models.TiebreakSetsDiff:
		return e.SetsDiff()
	case models.TiebreakMatchesWon:
		return e.MatchesWon
	case models.TiebreakPointsPerMatch:
		return e.Points
	case models.TiebreakPointsDiff:
		return e.PointsDiff()
	}
	return 0
}

// lessStanding orders entries by group label, then by the tiebreaker chain
// (higher is better for every metric), then by the seeding fallback.
func lessStanding(a, b *models.StandingEntry, chain []models.Tiebreaker, byID map[int]*models.Registration) bool {
	if a.GroupName != b.GroupName {
		return a.GroupName < b.GroupName
	}
	for _, tb := range chain {
		va, vb := tiebreakMetric(a, tb), tiebreakMetric(b, tb)
		if va != vb {
			return va > vb
		}
	}
	return lessBySeeding(byID[a.RegistrationID], byID[b.RegistrationID])
}

// lessBySeeding is the terminal tiebreak: lower seed/ranking first (nil
// last), then earlier creation, then lower id. It never reports equal for
// distinct registrations, keeping every sort a total order.
func lessBySeeding(a, b *models.Registration) bool {
	if a == nil || b == nil {
		return b == nil && a != nil
	}
	sa, sb := a.SeedValue(), b.SeedValue()
	switch {
	case sa != nil && sb == nil:
		return true
	case sa == nil && sb != nil:
		return false
	case sa != nil && sb != nil && *sa != *sb:
		return *sa < *sb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
