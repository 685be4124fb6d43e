package brackets

import (
	"sort"

	"github.com/opencourt/tournament-engine/models"
)

// Coordinate addresses a playoff match inside the main bracket: matches are
// grouped by round number and ordered within the round by creation time.
// Order is 0-based. The match at (round, order) feeds the match at
// (round+1, order/2), side A when order is even, side B when odd.
type Coordinate struct {
	Round int
	Order int
}

// Next returns the coordinate of the match this one feeds into and the slot
// side the winner lands on.
func (c Coordinate) Next() (Coordinate, models.Side) {
	side := models.SideA
	if c.Order%2 != 0 {
		side = models.SideB
	}
	return Coordinate{Round: c.Round + 1, Order: c.Order / 2}, side
}

// Index maps match ids of the main bracket (bronze excluded) to their
// coordinates. It is recomputed from the match snapshot on every propagation
// call; creation order is never consulted outside this indexing step.
type Index struct {
	byMatchID    map[int]Coordinate
	byCoordinate map[Coordinate]*models.Match
	finalRound   int
}

// BuildIndex orders the non-bronze PLAYOFF matches of one category into
// bracket coordinates.
func BuildIndex(matches []*models.Match) *Index {
	main := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Stage != models.StagePlayoff || m.IsBronzeMatch {
			continue
		}
		main = append(main, m)
	}
	sort.Slice(main, func(i, j int) bool {
		if main[i].Round() != main[j].Round() {
			return main[i].Round() < main[j].Round()
		}
		if !main[i].CreatedAt.Equal(main[j].CreatedAt) {
			return main[i].CreatedAt.Before(main[j].CreatedAt)
		}
		return main[i].ID < main[j].ID
	})

	idx := &Index{
		byMatchID:    make(map[int]Coordinate, len(main)),
		byCoordinate: make(map[Coordinate]*models.Match, len(main)),
	}
	order := 0
	round := 0
	for _, m := range main {
		if m.Round() != round {
			round = m.Round()
			order = 0
		}
		c := Coordinate{Round: round, Order: order}
		idx.byMatchID[m.ID] = c
		idx.byCoordinate[c] = m
		if round > idx.finalRound {
			idx.finalRound = round
		}
		order++
	}
	return idx
}

// CoordinateOf returns the coordinate of a match in the main bracket.
func (idx *Index) CoordinateOf(matchID int) (Coordinate, bool) {
	c, ok := idx.byMatchID[matchID]
	return c, ok
}

// MatchAt returns the match occupying the given coordinate, if any.
func (idx *Index) MatchAt(c Coordinate) (*models.Match, bool) {
	m, ok := idx.byCoordinate[c]
	return m, ok
}

// FinalRound is the highest round number present in the main bracket;
// zero for an empty bracket. The semifinal round is FinalRound-1.
func (idx *Index) FinalRound() int {
	return idx.finalRound
}

// MatchesInRound returns the matches of one round in bracket order.
func (idx *Index) MatchesInRound(round int) []*models.Match {
	var out []*models.Match
	for order := 0; ; order++ {
		m, ok := idx.byCoordinate[Coordinate{Round: round, Order: order}]
		if !ok {
			return out
		}
		out = append(out, m)
	}
}
