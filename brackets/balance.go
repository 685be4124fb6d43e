package brackets

import (
	"sort"

	"github.com/opencourt/tournament-engine/models"
)

// GroupLabel yields A, B, …, Z for the first 26 groups, then AA, AB, … for
// larger draws.
func GroupLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	i -= 26
	return string([]rune{rune('A' + i/26), rune('A' + i%26)})
}

// BalanceGroups partitions a category's registrations into evenly sized
// groups and returns the assignment keyed by registration id. Seeded fields
// order the snake: when any registration carries a seed/ranking the sort is
// by that key ascending (unseeded last), otherwise by creation time; ids
// break remaining ties. Assignment is round-robin over the labels, so seeds
// spread across groups. Deterministic and re-runnable: a second run over the
// same snapshot produces the same assignment.
func BalanceGroups(registrations []*models.Registration, minSize, maxSize int) map[int]string {
	n := len(registrations)
	assignment := make(map[int]string, n)
	if n == 0 {
		return assignment
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	seeded := false
	for _, reg := range registrations {
		if reg.SeedValue() != nil {
			seeded = true
			break
		}
	}

	ordered := make([]*models.Registration, n)
	copy(ordered, registrations)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if seeded {
			return lessBySeeding(a, b)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	groupCount := n / minSize
	if groupCount < 1 {
		groupCount = 1
	}
	if ceilDiv(n, groupCount) > maxSize {
		groupCount = ceilDiv(n, maxSize)
		if groupCount < 1 {
			groupCount = 1
		}
	}

	for i, reg := range ordered {
		assignment[reg.ID] = GroupLabel(i % groupCount)
	}
	return assignment
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
