package brackets

import (
	"sort"

	"github.com/opencourt/tournament-engine/models"
)

// ResolvePlacements combines bracket outcomes and group standings into the
// final placement list of a category: index 0 is the champion and every
// registration of the category appears exactly once. Placeholders never do.
//
// Pure round-robin draws place by the standings order. Draws with a playoff
// place final winner/loser first and third/fourth from the bronze match, rank
// the remaining bracket participants by how late they were eliminated, and
// append group-stage-only registrations by their group standing position.
func ResolvePlacements(
	category *models.Category,
	registrations []*models.Registration,
	matches []*models.Match,
	rules models.ScoringRules,
) []int {
	if len(registrations) == 0 {
		return []int{}
	}

	byID := make(map[int]*models.Registration, len(registrations))
	for _, reg := range registrations {
		byID[reg.ID] = reg
	}

	groupMatches := make([]*models.Match, 0, len(matches))
	playoffMatches := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		switch m.Stage {
		case models.StageGroup:
			groupMatches = append(groupMatches, m)
		case models.StagePlayoff:
			playoffMatches = append(playoffMatches, m)
		}
	}

	if !category.DrawType.HasPlayoff() {
		standings := BuildStandings(registrations, groupMatches, rules)
		placements := make([]int, 0, len(standings))
		for _, e := range standings {
			placements = append(placements, e.RegistrationID)
		}
		return placements
	}

	placements := make([]int, 0, len(registrations))
	placed := make(map[int]bool, len(registrations))
	place := func(registrationID int) {
		if _, known := byID[registrationID]; !known || placed[registrationID] {
			return
		}
		placed[registrationID] = true
		placements = append(placements, registrationID)
	}

	idx := BuildIndex(playoffMatches)
	finalResolved := false
	if final, ok := idx.MatchAt(Coordinate{Round: idx.FinalRound(), Order: 0}); ok && idx.FinalRound() > 0 {
		if winnerID, resolved := WinnerRegistration(final); resolved {
			place(winnerID)
			if loserID, hasLoser := LoserRegistration(final); hasLoser {
				place(loserID)
			}
			finalResolved = true
		}
	}
	// The bronze result awards places 3 and 4 only once places 1 and 2 are
	// settled; until the final is decided the finalists outrank the bronze
	// pair via the elimination-round sort below.
	if finalResolved {
		for _, m := range playoffMatches {
			if !m.IsBronzeMatch {
				continue
			}
			if winnerID, resolved := WinnerRegistration(m); resolved {
				place(winnerID)
				if loserID, hasLoser := LoserRegistration(m); hasLoser {
					place(loserID)
				}
			}
			break
		}
	}

	// Remaining bracket participants: eliminated later means placed better.
	lastRound := make(map[int]int)
	for _, m := range playoffMatches {
		if m.IsBronzeMatch {
			continue
		}
		for _, slot := range []models.Slot{m.SlotA, m.SlotB} {
			if !slot.IsTaken() {
				continue
			}
			id := *slot.RegistrationID
			if m.Round() > lastRound[id] {
				lastRound[id] = m.Round()
			}
		}
	}
	bracketRest := make([]int, 0, len(lastRound))
	for id := range lastRound {
		if !placed[id] && byID[id] != nil {
			bracketRest = append(bracketRest, id)
		}
	}
	sort.Slice(bracketRest, func(i, j int) bool {
		a, b := bracketRest[i], bracketRest[j]
		if lastRound[a] != lastRound[b] {
			return lastRound[a] > lastRound[b]
		}
		return lessBySeeding(byID[a], byID[b])
	})
	for _, id := range bracketRest {
		place(id)
	}

	// Group-stage-only registrations follow, by their standing position
	// within their group, earlier creation first on equal positions.
	standings := BuildStandings(registrations, groupMatches, rules)
	position := make(map[int]int, len(standings))
	rank := 0
	group := ""
	for _, e := range standings {
		if e.GroupName != group {
			group = e.GroupName
			rank = 0
		}
		rank++
		position[e.RegistrationID] = rank
	}
	groupRest := make([]int, 0, len(registrations))
	for _, reg := range registrations {
		if !placed[reg.ID] {
			groupRest = append(groupRest, reg.ID)
		}
	}
	sort.Slice(groupRest, func(i, j int) bool {
		a, b := groupRest[i], groupRest[j]
		if position[a] != position[b] {
			return position[a] < position[b]
		}
		ra, rb := byID[a], byID[b]
		if !ra.CreatedAt.Equal(rb.CreatedAt) {
			return ra.CreatedAt.Before(rb.CreatedAt)
		}
		return ra.ID < rb.ID
	})
	for _, id := range groupRest {
		place(id)
	}

	return placements
}
