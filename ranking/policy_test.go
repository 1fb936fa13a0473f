package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/models"
)

func row(team string, points, diff, won int) *models.Standing {
	return &models.Standing{TeamName: team, Points: points, RoundDifference: diff, RoundsWon: won}
}

func names(rows []*models.Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TeamName
	}
	return out
}

func TestOrder_Keys(t *testing.T) {
	in := []*models.Standing{
		row("low", 0, -13, 3),
		row("diff", 3, 2, 16),
		row("points", 6, -4, 20),
		row("won", 3, 2, 18),
	}

	got := Order(in)

	assert.Equal(t, []string{"points", "won", "diff", "low"}, names(got))
	assert.Equal(t, "low", in[0].TeamName, "input must not be reordered")
}

func TestOrder_StableOnFullTie(t *testing.T) {
	in := []*models.Standing{
		row("first", 3, 5, 16),
		row("second", 3, 5, 16),
		row("third", 3, 5, 16),
	}

	for i := 0; i < 10; i++ {
		require.Equal(t, []string{"first", "second", "third"}, names(Order(in)))
	}
	assert.True(t, Tied(in[0], in[1]))
	assert.False(t, Tied(in[0], row("x", 0, 0, 0)))
}

func TestOrder_Empty(t *testing.T) {
	assert.Empty(t, Order(nil))
}

func TestFirstAppearance(t *testing.T) {
	matches := []*models.Match{
		{ID: 7, Team1Name: "X", Team2Name: "Y"},
		{ID: 2, Team1Name: "Z", Team2Name: "X"},
	}
	assert.Equal(t, map[string]int{"X": 2, "Y": 7, "Z": 2}, FirstAppearance(matches))
}

func TestOrderByAppearance_TieGoesToEarlierTeam(t *testing.T) {
	// строки в порядке id, а не в порядке первого матча
	in := []*models.Standing{
		row("W", 0, -8, 5),
		row("X", 3, 8, 13),
		row("Y", 0, -8, 5),
		row("Z", 3, 8, 13),
		row("idle", 0, -8, 5),
	}
	first := map[string]int{"Z": 1, "W": 1, "X": 2, "Y": 2}

	got := OrderByAppearance(in, first)

	assert.Equal(t, []string{"Z", "X", "W", "Y", "idle"}, names(got))
	assert.Equal(t, "W", in[0].TeamName, "input must not be reordered")
}
