package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/models"
)

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func TestRoundRobinSchedule_EveryPairOnce(t *testing.T) {
	for _, teams := range [][]string{
		{"A", "B"},
		{"A", "B", "C"},
		{"A", "B", "C", "D"},
		{"A", "B", "C", "D", "E"},
	} {
		fixtures, err := RoundRobinSchedule(teams)
		require.NoError(t, err)

		n := len(teams)
		assert.Len(t, fixtures, n*(n-1)/2)

		seen := make(map[[2]string]bool)
		perRound := make(map[int]map[string]bool)
		for _, f := range fixtures {
			key := pairKey(f.Team1, f.Team2)
			assert.False(t, seen[key], "pair %v scheduled twice", key)
			seen[key] = true

			if perRound[f.Round] == nil {
				perRound[f.Round] = make(map[string]bool)
			}
			assert.False(t, perRound[f.Round][f.Team1], "%s plays twice in round %d", f.Team1, f.Round)
			assert.False(t, perRound[f.Round][f.Team2], "%s plays twice in round %d", f.Team2, f.Round)
			perRound[f.Round][f.Team1] = true
			perRound[f.Round][f.Team2] = true
		}

		rounds := n - 1
		if n%2 == 1 {
			rounds = n
		}
		assert.Len(t, perRound, rounds)
	}
}

func TestRoundRobinSchedule_TooFewTeams(t *testing.T) {
	_, err := RoundRobinSchedule([]string{"A"})
	assert.Error(t, err)
}

func playedSet(pairs ...[2]string) func(a, b string) bool {
	set := make(map[[2]string]bool)
	for _, p := range pairs {
		set[pairKey(p[0], p[1])] = true
	}
	return func(a, b string) bool { return set[pairKey(a, b)] }
}

func TestPairSwiss_TopDown(t *testing.T) {
	round, err := PairSwiss([]string{"A", "B", "C", "D"}, playedSet())
	require.NoError(t, err)
	assert.Equal(t, []SwissPair{{Team1: "A", Team2: "B"}, {Team1: "C", Team2: "D"}}, round.Pairs)
	assert.Empty(t, round.Bye)
}

func TestPairSwiss_AvoidsRematchWithBacktracking(t *testing.T) {
	// A-B already met, A-C leaves B-D which already met too
	round, err := PairSwiss([]string{"A", "B", "C", "D"}, playedSet([2]string{"A", "B"}, [2]string{"B", "D"}))
	require.NoError(t, err)
	assert.Equal(t, []SwissPair{{Team1: "A", Team2: "D"}, {Team1: "B", Team2: "C"}}, round.Pairs)
}

func TestPairSwiss_OddGivesLowestBye(t *testing.T) {
	round, err := PairSwiss([]string{"A", "B", "C"}, playedSet())
	require.NoError(t, err)
	assert.Equal(t, "C", round.Bye)
	assert.Equal(t, []SwissPair{{Team1: "A", Team2: "B"}}, round.Pairs)

	round, err = PairSwiss([]string{"A", "B", "C"}, playedSet([2]string{"A", "B"}))
	require.NoError(t, err)
	assert.Equal(t, "B", round.Bye)
	assert.Equal(t, []SwissPair{{Team1: "A", Team2: "C"}}, round.Pairs)
}

func TestPairSwiss_NoPairing(t *testing.T) {
	_, err := PairSwiss([]string{"A", "B"}, playedSet([2]string{"A", "B"}))
	assert.ErrorIs(t, err, ErrNoPairing)
}

func st(group, team string, points, diff int) *models.Standing {
	return &models.Standing{GroupName: group, TeamName: team, Points: points, RoundDifference: diff}
}

func TestCrossSeed_TiersAndSeparation(t *testing.T) {
	groups := map[string][]*models.Standing{
		"A": {st("A", "A1", 6, 20), st("A", "A2", 3, -5), st("A", "A3", 0, -15)},
		"B": {st("B", "B1", 6, 10), st("B", "B2", 3, 5), st("B", "B3", 0, -15)},
	}

	seeds, err := CrossSeed(nil, groups, 2)
	require.NoError(t, err)
	// без разведения пары были бы A1-A2 и B1-B2
	assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, seeds)

	order := SeedOrder(len(seeds))
	for i := 0; i < len(seeds)/2; i++ {
		a, b := seeds[order[2*i]-1], seeds[order[2*i+1]-1]
		assert.NotEqual(t, a[:1], b[:1], "first round pair %s-%s shares a group", a, b)
	}
}

func TestCrossSeed_NotEnough(t *testing.T) {
	groups := map[string][]*models.Standing{
		"A": {st("A", "A1", 3, 1)},
		"B": {st("B", "B1", 3, 1), st("B", "B2", 0, -1)},
	}
	_, err := CrossSeed(nil, groups, 2)
	assert.ErrorIs(t, err, ErrNotEnoughQualifiers)

	_, err = CrossSeed(nil, groups, 0)
	assert.ErrorIs(t, err, ErrNotEnoughQualifiers)
}

func TestCrossSeed_DirectSeedsJoinSeparation(t *testing.T) {
	groups := map[string][]*models.Standing{
		"A": {st("A", "A1", 9, 30), st("A", "A2", 6, 12), st("A", "A3", 0, -42)},
		"B": {st("B", "B1", 9, 20), st("B", "B2", 6, 10), st("B", "B3", 0, -30)},
		"C": {st("C", "C1", 9, 10), st("C", "C2", 6, 8), st("C", "C3", 0, -18)},
	}

	seeds, err := CrossSeed([]string{"D1", "D2"}, groups, 2)
	require.NoError(t, err)
	require.Len(t, seeds, 8)
	assert.Equal(t, []string{"D1", "D2", "A1", "B1", "C1"}, seeds[:5])
	assert.ElementsMatch(t, []string{"A2", "B2", "C2"}, seeds[5:])

	// без разведения третья и шестая позиции дали бы A1-A2
	order := SeedOrder(len(seeds))
	for i := 0; i < len(seeds)/2; i++ {
		a, b := seeds[order[2*i]-1], seeds[order[2*i+1]-1]
		assert.NotEqual(t, a[:1], b[:1], "first round pair %s-%s shares a group", a, b)
	}
}

func TestCrossSeed_UnfitSizeKeepsOrder(t *testing.T) {
	groups := map[string][]*models.Standing{
		"A": {st("A", "A1", 6, 20), st("A", "A2", 3, -5)},
	}
	seeds, err := CrossSeed([]string{"D1"}, groups, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"D1", "A1", "A2"}, seeds)
}

func TestSeparateGroups_NoSolutionKeepsOrder(t *testing.T) {
	seeds := []string{"A1", "A2"}
	separateGroups(seeds, map[string]string{"A1": "A", "A2": "A"})
	assert.Equal(t, []string{"A1", "A2"}, seeds)
}
