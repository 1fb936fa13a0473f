package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

func totalsOf(rows []*models.Standing) map[string]models.Standing {
	out := make(map[string]models.Standing, len(rows))
	for _, r := range rows {
		out[r.TeamName] = r.Totals()
	}
	return out
}

func replayTotals(replayed map[string]models.Standing) map[string]models.Standing {
	out := make(map[string]models.Standing, len(replayed))
	for team, s := range replayed {
		out[team] = s.Totals()
	}
	return out
}

// applyAll stores every match, which assigns ids in slice order, and applies it.
func applyAll(t *testing.T, store repositories.Store, matches []*models.Match) {
	t.Helper()
	var ledger StandingsLedger
	for _, m := range matches {
		require.NoError(t, store.Matches().Create(context.Background(), m))
		_, err := ledger.Apply(context.Background(), store, m)
		require.NoError(t, err)
	}
}

func TestLedger_ReplayEquivalence(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	teams := []string{"NaVi", "FaZe", "G2", "Vitality", "MOUZ", "Spirit"}
	rng := rand.New(rand.NewSource(7))
	var matches []*models.Match
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			loser := rng.Intn(13)
			m := &models.Match{GroupName: "A", Team1Name: teams[i], Team2Name: teams[j], Team1Score: 13, Team2Score: loser}
			if rng.Intn(2) == 0 {
				m.Team1Score, m.Team2Score = loser, 13
			}
			if rng.Intn(10) == 0 {
				m.TechnicalWin = true
				m.TechnicalWinner = teams[j]
			}
			matches = append(matches, m)
		}
	}
	applyAll(t, store, matches)

	rows, err := store.Standings().ListByGroup(ctx, "A")
	require.NoError(t, err)
	replayed := ledger.Replay("A", matches)

	if diff := cmp.Diff(replayTotals(replayed), totalsOf(rows)); diff != "" {
		t.Fatalf("persisted ledger differs from replay (-replay +persisted):\n%s", diff)
	}
	for _, r := range rows {
		assert.Equal(t, replayed[r.TeamName].Position, r.Position, r.TeamName)
	}
}

func TestLedger_ReverseIsInverse(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	base := []*models.Match{
		{GroupName: "A", Team1Name: "X", Team2Name: "Y", Team1Score: 16, Team2Score: 3},
		{GroupName: "A", Team1Name: "Y", Team2Name: "Z", Team1Score: 16, Team2Score: 10},
	}
	applyAll(t, store, base)
	before, err := store.Standings().ListByGroup(ctx, "A")
	require.NoError(t, err)

	extra := &models.Match{GroupName: "A", Team1Name: "X", Team2Name: "W", Team1Score: 7, Team2Score: 13}
	applyAll(t, store, []*models.Match{extra})
	require.NoError(t, store.Matches().Delete(ctx, extra.ID))
	_, err = ledger.Reverse(ctx, store, extra)
	require.NoError(t, err)

	after, err := store.Standings().ListByGroup(ctx, "A")
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("apply then reverse changed the group (-before +after):\n%s", diff)
	}
}

func TestLedger_TechnicalWinCountsNoRounds(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	m := &models.Match{
		GroupName: "A", Team1Name: "X", Team2Name: "Y", Team1Score: 16, Team2Score: 0,
		TechnicalWin: true, TechnicalWinner: "Y",
	}
	require.NoError(t, store.Matches().Create(ctx, m))
	rows, err := ledger.Apply(ctx, store, m)
	require.NoError(t, err)

	y := rowOf(t, rows, "Y")
	assert.Equal(t, 1, y.Wins)
	assert.Equal(t, 3, y.Points)
	assert.Zero(t, y.RoundsWon)
	assert.Zero(t, y.RoundsLost)
	assert.Equal(t, 1, y.Position)

	x := rowOf(t, rows, "X")
	assert.Equal(t, 1, x.Losses)
	assert.Zero(t, x.RoundsWon)
}

func TestLedger_PositionsAreDense(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	applyAll(t, store, []*models.Match{
		{GroupName: "A", Team1Name: "P", Team2Name: "Q", Team1Score: 13, Team2Score: 5},
		{GroupName: "A", Team1Name: "R", Team2Name: "S", Team1Score: 13, Team2Score: 5},
	})

	rows, err := ledger.Recompute(ctx, store, "A")
	require.NoError(t, err)
	// P и R полностью равны, решает более ранний матч
	assert.Equal(t, []string{"P", "R", "Q", "S"}, teamOrder(rows))
	for i, r := range rows {
		assert.Equal(t, i+1, r.Position)
	}
}

func TestLedger_ReverseSkipsMissingRows(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	rows, err := ledger.Reverse(ctx, store, &models.Match{ID: 9, GroupName: "A", Team1Name: "X", Team2Name: "Y", Team1Score: 16, Team2Score: 2})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLedger_ReplaceKeepsTieOrder(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	first := &models.Match{GroupName: "A", Team1Name: "Z", Team2Name: "W", Team1Score: 13, Team2Score: 5}
	second := &models.Match{GroupName: "A", Team1Name: "X", Team2Name: "Y", Team1Score: 13, Team2Score: 5}
	applyAll(t, store, []*models.Match{first, second})

	rows, err := ledger.Recompute(ctx, store, "A")
	require.NoError(t, err)
	require.Equal(t, []string{"Z", "X", "W", "Y"}, teamOrder(rows))

	same := *first
	require.NoError(t, store.Matches().Update(ctx, &same))
	rows, err = ledger.Replace(ctx, store, first, &same)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "X", "W", "Y"}, teamOrder(rows))

	matches, err := store.Matches().ListByGroup(ctx, "A")
	require.NoError(t, err)
	replayed := ledger.Replay("A", matches)
	for _, r := range rows {
		assert.Equal(t, replayed[r.TeamName].Position, r.Position, r.TeamName)
	}
}

func TestLedger_ReplaceDropsTeamThatLeftTheMatch(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	var ledger StandingsLedger

	old := &models.Match{GroupName: "A", Team1Name: "X", Team2Name: "Y", Team1Score: 13, Team2Score: 5}
	applyAll(t, store, []*models.Match{old})

	updated := &models.Match{ID: old.ID, GroupName: "A", Team1Name: "X", Team2Name: "Z", Team1Score: 9, Team2Score: 13}
	require.NoError(t, store.Matches().Update(ctx, updated))
	rows, err := ledger.Replace(ctx, store, old, updated)
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "X"}, teamOrder(rows))
	_, err = store.Standings().Get(ctx, "A", "Y")
	assert.ErrorIs(t, err, repositories.ErrStandingNotFound)
	assert.Equal(t, 1, rowOf(t, rows, "X").MatchesPlayed)
}
