package brackets

import (
	"sort"

	"github.com/opencourt/tournament-engine/models"
)

// AwardPoints zips a placement list (1-indexed positions) against the
// placement-range table. The first range covering a position determines the
// award; positions matching no range earn 0 and are omitted from the result.
func AwardPoints(placements []int, ranges []models.PlacementRange) map[int]int {
	awards := make(map[int]int, len(placements))
	for i, registrationID := range placements {
		position := i + 1
		for _, pr := range ranges {
			if pr.Covers(position) {
				awards[registrationID] = pr.Points
				break
			}
		}
	}
	return awards
}

// CreditPlayers fans registration awards out to player ids. Every member of
// a registration is credited the full award: a doubles pair worth 10 points
// yields +10 per partner, not +5.
func CreditPlayers(registrations []*models.Registration, awards map[int]int) map[int]int {
	credits := make(map[int]int)
	for _, reg := range registrations {
		points, ok := awards[reg.ID]
		if !ok {
			continue
		}
		for _, playerID := range reg.Players {
			credits[playerID] += points
		}
	}
	return credits
}

// MergeCredits accumulates per-tournament player credits into a running
// league total.
func MergeCredits(total, credits map[int]int) {
	for playerID, points := range credits {
		total[playerID] += points
	}
}

// RankPlayers orders accumulated player credits into a league ranking:
// points descending, player id ascending as the total-order tiebreak.
func RankPlayers(credits map[int]int) []models.PlayerRank {
	ranking := make([]models.PlayerRank, 0, len(credits))
	for playerID, points := range credits {
		ranking = append(ranking, models.PlayerRank{PlayerID: playerID, Points: points})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].PlayerID < ranking[j].PlayerID
	})
	return ranking
}
