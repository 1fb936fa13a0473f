package brackets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/ranking"
)

var ErrNotEnoughQualifiers = errors.New("group has fewer ranked teams than qualification spots")

// CrossSeed builds a seed list from direct seeds and group standings. Direct
// seeds lead in the given order. The top perGroup rows of every group qualify
// behind them; group winners come first, then runners-up and so on, each tier
// ordered by the ranking policy. Afterwards first-round pairs that would put two
// teams of the same group together are rearranged apart where possible.
func CrossSeed(direct []string, groups map[string][]*models.Standing, perGroup int) ([]string, error) {
	if perGroup < 1 {
		return nil, fmt.Errorf("%w: %d per group", ErrNotEnoughQualifiers, perGroup)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	groupOf := make(map[string]string)
	tiers := make([][]*models.Standing, perGroup)
	for _, name := range names {
		ordered := ranking.Order(groups[name])
		if len(ordered) < perGroup {
			return nil, fmt.Errorf("%w: group %s has %d", ErrNotEnoughQualifiers, name, len(ordered))
		}
		for t := 0; t < perGroup; t++ {
			tiers[t] = append(tiers[t], ordered[t])
			groupOf[ordered[t].TeamName] = name
		}
	}

	seeds := make([]string, 0, len(direct)+perGroup*len(names))
	seeds = append(seeds, direct...)
	for _, tier := range tiers {
		for _, s := range ranking.Order(tier) {
			seeds = append(seeds, s.TeamName)
		}
	}

	separateGroups(seeds, groupOf)
	return seeds, nil
}

// separateGroups reassigns the lower seed of each first-round pair so no pair
// holds two teams of one group. Top seeds stay where they are and a lower seed
// moves only when needed. Teams missing from groupOf never clash. Lists that do
// not fill a bracket, or that admit no separation, are left as they are.
func separateGroups(seeds []string, groupOf map[string]string) {
	n := len(seeds)
	if n < 2 || n&(n-1) != 0 {
		return
	}
	order := SeedOrder(n)
	pairs := n / 2
	bottoms := make([]int, pairs)
	for i := range bottoms {
		bottoms[i] = order[2*i+1] - 1
	}
	clash := func(a, b string) bool {
		ga, okA := groupOf[a]
		gb, okB := groupOf[b]
		return okA && okB && ga == gb
	}

	pool := make([]string, pairs)
	for i, b := range bottoms {
		pool[i] = seeds[b]
	}
	used := make([]bool, pairs)
	chosen := make([]int, pairs)

	// перебор с возвратом, свой нижний посев пробуем первым
	var place func(i int) bool
	place = func(i int) bool {
		if i == pairs {
			return true
		}
		top := seeds[order[2*i]-1]
		for k := -1; k < pairs; k++ {
			c := k
			if k < 0 {
				c = i
			} else if k == i {
				continue
			}
			if used[c] || clash(top, pool[c]) {
				continue
			}
			used[c], chosen[i] = true, c
			if place(i + 1) {
				return true
			}
			used[c] = false
		}
		return false
	}
	if !place(0) {
		return
	}
	for i, b := range bottoms {
		seeds[b] = pool[chosen[i]]
	}
}
