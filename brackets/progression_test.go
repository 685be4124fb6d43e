package brackets

import (
	"testing"

	"github.com/opencourt/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWinnerSide(t *testing.T) {
	t.Run("bye advances the real participant", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), models.PlaceholderSlot(models.SlotBye))
		side, ok := ResolveWinnerSide(m)
		require.True(t, ok)
		assert.Equal(t, models.SideA, side)

		m = playoffMatch(2, 1, models.PlaceholderSlot(models.SlotBye), taken(2))
		side, ok = ResolveWinnerSide(m)
		require.True(t, ok)
		assert.Equal(t, models.SideB, side)
	})

	t.Run("outcome override beats recorded sets", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), taken(2))
		finish(m, models.SideA)
		m.OutcomeType = outcomePtr(models.OutcomeInjury)
		m.OutcomeSide = sidePtr(models.SideA) // side A retired mid-match

		side, ok := ResolveWinnerSide(m)
		require.True(t, ok)
		assert.Equal(t, models.SideB, side)
	})

	t.Run("non-played outcome without a side is unresolved", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), taken(2))
		m.OutcomeType = outcomePtr(models.OutcomeWalkover)
		_, ok := ResolveWinnerSide(m)
		assert.False(t, ok)
	})

	t.Run("explicit winner beats set majority", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), taken(2))
		finish(m, models.SideA)
		m.WinnerSide = sidePtr(models.SideB)

		side, ok := ResolveWinnerSide(m)
		require.True(t, ok)
		assert.Equal(t, models.SideB, side)
	})

	t.Run("set majority decides last", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), taken(2))
		m.Games = []models.SetScore{{A: 11, B: 6}, {A: 8, B: 11}, {A: 11, B: 9}}
		side, ok := ResolveWinnerSide(m)
		require.True(t, ok)
		assert.Equal(t, models.SideA, side)
	})

	t.Run("tied sets are unresolved", func(t *testing.T) {
		m := playoffMatch(1, 1, taken(1), taken(2))
		m.Games = []models.SetScore{{A: 11, B: 6}, {A: 8, B: 11}}
		_, ok := ResolveWinnerSide(m)
		assert.False(t, ok)
	})
}

func TestPlanAdvance(t *testing.T) {
	t.Run("winner lands on the computed side", func(t *testing.T) {
		bracket := eightSlotBracket()
		finish(bracket[0], models.SideA) // match 1, order 0: reg 1 wins
		w := PlanAdvance(bracket[0], bracket)
		require.NotNil(t, w)
		assert.Equal(t, SlotWrite{MatchID: 5, Side: models.SideA, RegistrationID: 1}, *w)

		finish(bracket[1], models.SideB) // match 2, order 1: reg 4 wins
		w = PlanAdvance(bracket[1], bracket)
		require.NotNil(t, w)
		assert.Equal(t, SlotWrite{MatchID: 5, Side: models.SideB, RegistrationID: 4}, *w)
	})

	t.Run("final has no next match", func(t *testing.T) {
		bracket := eightSlotBracket()
		final := bracket[6]
		final.SlotA = taken(1)
		final.SlotB = taken(5)
		finish(final, models.SideA)
		assert.Nil(t, PlanAdvance(final, bracket))
	})

	t.Run("unresolved match plans nothing", func(t *testing.T) {
		bracket := eightSlotBracket()
		assert.Nil(t, PlanAdvance(bracket[0], bracket))
	})

	t.Run("occupied target slot is never overwritten", func(t *testing.T) {
		bracket := eightSlotBracket()
		finish(bracket[0], models.SideA)
		bracket[4].SlotA = taken(2) // manual assignment already present
		assert.Nil(t, PlanAdvance(bracket[0], bracket))
	})

	t.Run("replayed propagation is a no-op", func(t *testing.T) {
		bracket := eightSlotBracket()
		finish(bracket[0], models.SideA)
		w := PlanAdvance(bracket[0], bracket)
		require.NotNil(t, w)
		applyWrites(bracket, []SlotWrite{*w})
		assert.Nil(t, PlanAdvance(bracket[0], bracket))
	})
}

// A seven-entrant bracket: one quarterfinal slot is a bye, and its holder
// must appear in the semifinal without any result being recorded.
func TestPlanByeAdvances(t *testing.T) {
	bracket := eightSlotBracket()
	bracket[1].SlotA = taken(3)
	bracket[1].SlotB = models.PlaceholderSlot(models.SlotBye)

	writes := PlanByeAdvances(bracket)
	require.Len(t, writes, 1)
	assert.Equal(t, SlotWrite{MatchID: 5, Side: models.SideB, RegistrationID: 3}, writes[0])

	applyWrites(bracket, writes)
	assert.Empty(t, PlanByeAdvances(bracket), "applied bye advance must not repeat")
}

func TestPlanBronze(t *testing.T) {
	t.Run("semifinal losers fill the bronze match in bracket order", func(t *testing.T) {
		bracket := eightSlotBracket()
		semiOne, semiTwo := bracket[4], bracket[5]
		semiOne.SlotA, semiOne.SlotB = taken(1), taken(4)
		semiTwo.SlotA, semiTwo.SlotB = taken(5), taken(8)
		finish(semiOne, models.SideA) // reg 4 eliminated
		finish(semiTwo, models.SideB) // reg 5 eliminated

		writes := PlanBronze(bracket)
		require.Len(t, writes, 2)
		assert.Equal(t, SlotWrite{MatchID: 8, Side: models.SideA, RegistrationID: 4}, writes[0])
		assert.Equal(t, SlotWrite{MatchID: 8, Side: models.SideB, RegistrationID: 5}, writes[1])
	})

	t.Run("one finished semifinal fills one slot", func(t *testing.T) {
		bracket := eightSlotBracket()
		semiTwo := bracket[5]
		semiTwo.SlotA, semiTwo.SlotB = taken(5), taken(8)
		finish(semiTwo, models.SideB)

		writes := PlanBronze(bracket)
		require.Len(t, writes, 1)
		assert.Equal(t, SlotWrite{MatchID: 8, Side: models.SideB, RegistrationID: 5}, writes[0])
	})

	t.Run("no bronze match plans nothing", func(t *testing.T) {
		bracket := eightSlotBracket()[:7]
		finish(bracket[4], models.SideA)
		assert.Empty(t, PlanBronze(bracket))
	})

	t.Run("single-round bracket has no semifinal", func(t *testing.T) {
		final := playoffMatch(1, 1, taken(1), taken(2))
		finish(final, models.SideA)
		bronze := bronzeMatch(2, 1)
		assert.Empty(t, PlanBronze([]*models.Match{final, bronze}))
	})
}

// Plays a complete seven-entrant tournament through the planners and checks
// the bracket ends fully populated with a champion.
func TestPropagationFullBracket(t *testing.T) {
	bracket := eightSlotBracket()
	bracket[1].SlotB = models.PlaceholderSlot(models.SlotBye)

	record := func(m *models.Match, winner models.Side) {
		finish(m, winner)
		var writes []SlotWrite
		if w := PlanAdvance(m, bracket); w != nil {
			writes = append(writes, *w)
		}
		writes = append(writes, PlanByeAdvances(bracket)...)
		writes = append(writes, PlanBronze(bracket)...)
		applyWrites(bracket, writes)
	}

	record(bracket[0], models.SideA) // 1 beats 2
	record(bracket[2], models.SideA) // 5 beats 6
	record(bracket[3], models.SideB) // 8 beats 7

	semiOne, semiTwo := bracket[4], bracket[5]
	assert.True(t, semiOne.SlotA.Holds(1))
	assert.True(t, semiOne.SlotB.Holds(3), "bye holder advances without a result")
	assert.True(t, semiTwo.SlotA.Holds(5))
	assert.True(t, semiTwo.SlotB.Holds(8))

	record(semiOne, models.SideA) // 1 beats 3
	record(semiTwo, models.SideB) // 8 beats 5

	final, bronze := bracket[6], bracket[7]
	assert.True(t, final.SlotA.Holds(1))
	assert.True(t, final.SlotB.Holds(8))
	assert.True(t, bronze.SlotA.Holds(3))
	assert.True(t, bronze.SlotB.Holds(5))

	record(final, models.SideA)
	winnerID, ok := WinnerRegistration(final)
	require.True(t, ok)
	assert.Equal(t, 1, winnerID)
}
