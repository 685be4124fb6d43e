package brackets

import (
	"testing"
	"time"

	"github.com/opencourt/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eightSlotBracket is a full three-round bracket: four quarterfinals, two
// semifinals, a final, plus a bronze match.
func eightSlotBracket() []*models.Match {
	return []*models.Match{
		playoffMatch(1, 1, taken(1), taken(2)),
		playoffMatch(2, 1, taken(3), taken(4)),
		playoffMatch(3, 1, taken(5), taken(6)),
		playoffMatch(4, 1, taken(7), taken(8)),
		playoffMatch(5, 2, pending(), pending()),
		playoffMatch(6, 2, pending(), pending()),
		playoffMatch(7, 3, pending(), pending()),
		bronzeMatch(8, 3),
	}
}

func TestBuildIndexCoordinates(t *testing.T) {
	idx := BuildIndex(eightSlotBracket())

	assert.Equal(t, 3, idx.FinalRound())

	expected := map[int]Coordinate{
		1: {Round: 1, Order: 0},
		2: {Round: 1, Order: 1},
		3: {Round: 1, Order: 2},
		4: {Round: 1, Order: 3},
		5: {Round: 2, Order: 0},
		6: {Round: 2, Order: 1},
		7: {Round: 3, Order: 0},
	}
	for matchID, want := range expected {
		got, ok := idx.CoordinateOf(matchID)
		require.True(t, ok, "match %d missing from index", matchID)
		assert.Equal(t, want, got, "match %d", matchID)
	}

	_, ok := idx.CoordinateOf(8)
	assert.False(t, ok, "bronze match must not be indexed")
}

func TestCoordinateNext(t *testing.T) {
	cases := []struct {
		from Coordinate
		to   Coordinate
		side models.Side
	}{
		{Coordinate{1, 0}, Coordinate{2, 0}, models.SideA},
		{Coordinate{1, 1}, Coordinate{2, 0}, models.SideB},
		{Coordinate{1, 2}, Coordinate{2, 1}, models.SideA},
		{Coordinate{1, 3}, Coordinate{2, 1}, models.SideB},
		{Coordinate{2, 0}, Coordinate{3, 0}, models.SideA},
		{Coordinate{2, 1}, Coordinate{3, 0}, models.SideB},
	}
	for _, c := range cases {
		to, side := c.from.Next()
		assert.Equal(t, c.to, to)
		assert.Equal(t, c.side, side)
	}
}

func TestBuildIndexOrdersByCreationWithinRound(t *testing.T) {
	// Created later but with a lower id: creation time wins within a round.
	early := playoffMatch(20, 1, taken(1), taken(2))
	late := playoffMatch(10, 1, taken(3), taken(4))
	late.CreatedAt = early.CreatedAt.Add(5 * time.Minute)

	idx := BuildIndex([]*models.Match{late, early})

	c, ok := idx.CoordinateOf(20)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Round: 1, Order: 0}, c)
	c, ok = idx.CoordinateOf(10)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Round: 1, Order: 1}, c)
}

func TestMatchesInRound(t *testing.T) {
	idx := BuildIndex(eightSlotBracket())

	semis := idx.MatchesInRound(2)
	require.Len(t, semis, 2)
	assert.Equal(t, 5, semis[0].ID)
	assert.Equal(t, 6, semis[1].ID)

	assert.Empty(t, idx.MatchesInRound(4))
}

func TestBuildIndexEmpty(t *testing.T) {
	idx := BuildIndex(nil)
	assert.Equal(t, 0, idx.FinalRound())
	_, ok := idx.MatchAt(Coordinate{Round: 1, Order: 0})
	assert.False(t, ok)
}
