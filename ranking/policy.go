// Package ranking holds the single ordering used for group tables, leaderboards
// and playoff seeding.
package ranking

import (
	"sort"

	"github.com/Dosada05/cs2-arena/models"
)

// Order returns the standings sorted by points, then round difference, then
// rounds won, all descending. Remaining ties keep the input order, so callers
// pass rows in insertion order. The input slice is not modified.
func Order(standings []*models.Standing) []*models.Standing {
	ordered := make([]*models.Standing, len(standings))
	copy(ordered, standings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return outranks(ordered[i], ordered[j])
	})
	return ordered
}

func outranks(a, b *models.Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.RoundDifference != b.RoundDifference {
		return a.RoundDifference > b.RoundDifference
	}
	return a.RoundsWon > b.RoundsWon
}

// Tied reports whether no ranking key separates a and b.
func Tied(a, b *models.Standing) bool {
	return !outranks(a, b) && !outranks(b, a)
}

// FirstAppearance maps every team to the lowest match id it took part in.
func FirstAppearance(matches []*models.Match) map[string]int {
	first := make(map[string]int)
	for _, m := range matches {
		for _, team := range []string{m.Team1Name, m.Team2Name} {
			if id, ok := first[team]; !ok || m.ID < id {
				first[team] = m.ID
			}
		}
	}
	return first
}

// OrderByAppearance ranks rows with Order after lining them up by first
// appearance, so exact ties go to the team that played earlier. Rows with no
// match keep their input order behind the rest. The input slice is not modified.
func OrderByAppearance(rows []*models.Standing, first map[string]int) []*models.Standing {
	lined := make([]*models.Standing, len(rows))
	copy(lined, rows)
	sort.SliceStable(lined, func(i, j int) bool {
		a, okA := first[lined[i].TeamName]
		b, okB := first[lined[j].TeamName]
		switch {
		case okA && okB:
			return a < b
		default:
			return okA && !okB
		}
	})
	return Order(lined)
}
