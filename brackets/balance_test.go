package brackets

import (
	"testing"

	"github.com/opencourt/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "A", GroupLabel(0))
	assert.Equal(t, "B", GroupLabel(1))
	assert.Equal(t, "Z", GroupLabel(25))
	assert.Equal(t, "AA", GroupLabel(26))
	assert.Equal(t, "AB", GroupLabel(27))
	assert.Equal(t, "BA", GroupLabel(52))
}

func groupSizes(assignment map[int]string) map[string]int {
	sizes := make(map[string]int)
	for _, label := range assignment {
		sizes[label]++
	}
	return sizes
}

// Ten entrants with group sizes 3-4 split into three groups of 4, 3 and 3.
func TestBalanceGroupsTenEntrants(t *testing.T) {
	regs := make([]*models.Registration, 0, 10)
	for i := 1; i <= 10; i++ {
		regs = append(regs, newReg(i, ""))
	}

	assignment := BalanceGroups(regs, 3, 4)

	require.Len(t, assignment, 10)
	assert.Equal(t, map[string]int{"A": 4, "B": 3, "C": 3}, groupSizes(assignment))
	// Unseeded: creation order round-robins over the labels.
	assert.Equal(t, "A", assignment[1])
	assert.Equal(t, "B", assignment[2])
	assert.Equal(t, "C", assignment[3])
	assert.Equal(t, "A", assignment[4])
	assert.Equal(t, "A", assignment[10])
}

func TestBalanceGroupsRespectsMaxSize(t *testing.T) {
	regs := make([]*models.Registration, 0, 7)
	for i := 1; i <= 7; i++ {
		regs = append(regs, newReg(i, ""))
	}

	// Seven entrants at min 3 would make two groups of 4 and 3; the max of 3
	// forces a third group.
	assignment := BalanceGroups(regs, 3, 3)
	assert.Equal(t, map[string]int{"A": 3, "B": 2, "C": 2}, groupSizes(assignment))
}

func TestBalanceGroupsSpreadsSeeds(t *testing.T) {
	regs := []*models.Registration{
		seeded(newReg(1, ""), 4),
		seeded(newReg(2, ""), 2),
		seeded(newReg(3, ""), 1),
		seeded(newReg(4, ""), 3),
		newReg(5, ""), newReg(6, ""), newReg(7, ""), newReg(8, ""),
	}

	assignment := BalanceGroups(regs, 2, 2)

	require.Len(t, assignment, 8)
	assert.Equal(t, 4, len(groupSizes(assignment)))
	// Top seeds land in distinct groups, best seed first.
	assert.Equal(t, "A", assignment[3]) // seed 1
	assert.Equal(t, "B", assignment[2]) // seed 2
	assert.Equal(t, "C", assignment[4]) // seed 3
	assert.Equal(t, "D", assignment[1]) // seed 4
	assert.Equal(t, "A", assignment[5]) // unseeded follow by creation order
}

func TestBalanceGroupsDeterministic(t *testing.T) {
	regs := []*models.Registration{
		seeded(newReg(1, ""), 2), newReg(2, ""), seeded(newReg(3, ""), 1),
		newReg(4, ""), newReg(5, ""), newReg(6, ""), newReg(7, ""),
	}

	first := BalanceGroups(regs, 3, 4)
	second := BalanceGroups(regs, 3, 4)
	assert.Equal(t, first, second)
}

func TestBalanceGroupsDegenerateInputs(t *testing.T) {
	assert.Empty(t, BalanceGroups(nil, 3, 4))

	single := BalanceGroups([]*models.Registration{newReg(1, "")}, 3, 4)
	assert.Equal(t, map[int]string{1: "A"}, single)

	// Zero sizes are clamped rather than dividing by zero.
	clamped := BalanceGroups([]*models.Registration{newReg(1, ""), newReg(2, "")}, 0, 0)
	require.Len(t, clamped, 2)
}
