package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/models"
)

func seedNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("T%d", i+1)
	}
	return out
}

func byUID(nodes []*BracketNode) map[string]*BracketNode {
	out := make(map[string]*BracketNode, len(nodes))
	for _, n := range nodes {
		out[n.UID] = n
	}
	return out
}

// incoming counts how many routes point at every (uid, slot).
func incoming(nodes []*BracketNode) map[SlotRef]int {
	out := make(map[SlotRef]int)
	for _, n := range nodes {
		if n.WinnerTo != nil {
			out[*n.WinnerTo]++
		}
		if n.LoserTo != nil {
			out[*n.LoserTo]++
		}
	}
	return out
}

func TestSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2}, SeedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, SeedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, SeedOrder(8))
}

func TestSlotHelpers(t *testing.T) {
	assert.Equal(t, 1, SlotForPosition(1))
	assert.Equal(t, 2, SlotForPosition(2))
	assert.Equal(t, 1, SlotForPosition(3))
	assert.Equal(t, 1, NextPosition(1))
	assert.Equal(t, 1, NextPosition(2))
	assert.Equal(t, 2, NextPosition(3))
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(models.FormatSingleElimination)
	require.NoError(t, err)
	assert.Equal(t, "SingleElimination", g.GetName())

	g, err = NewGenerator(models.FormatDoubleElimination)
	require.NoError(t, err)
	assert.Equal(t, "DoubleElimination", g.GetName())

	_, err = NewGenerator("round_robin")
	assert.ErrorIs(t, err, models.ErrInvalidBracketFormat)
}

func TestSingleElimination_FourTeams(t *testing.T) {
	nodes, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Stage: "playoffs",
		Seeds: []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	m := byUID(nodes)
	sf1, sf2, final := m["SF1"], m["SF2"], m["F1"]
	require.NotNil(t, sf1)
	require.NotNil(t, sf2)
	require.NotNil(t, final)

	assert.Equal(t, "A", sf1.Team1Name)
	assert.Equal(t, "D", sf1.Team2Name)
	assert.Equal(t, "B", sf2.Team1Name)
	assert.Equal(t, "C", sf2.Team2Name)

	assert.Equal(t, &SlotRef{UID: "F1", Slot: 1}, sf1.WinnerTo)
	assert.Equal(t, &SlotRef{UID: "F1", Slot: 2}, sf2.WinnerTo)
	assert.Nil(t, sf1.LoserTo)
	assert.Nil(t, final.WinnerTo)

	assert.Equal(t, "Winner of SF1", final.Team1Placeholder)
	assert.Equal(t, "Winner of SF2", final.Team2Placeholder)
	assert.Empty(t, final.Team1Name)
	assert.Equal(t, models.RoundFinal, final.Round)
	assert.Equal(t, models.BracketSingle, final.Type)
}

func TestSingleElimination_EverySlotFedOnce(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		nodes, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Seeds: seedNames(n)})
		require.NoError(t, err)
		assert.Len(t, nodes, n-1, "size %d", n)

		in := incoming(nodes)
		for _, node := range nodes {
			for slot := 1; slot <= 2; slot++ {
				ref := SlotRef{UID: node.UID, Slot: slot}
				seeded := (slot == 1 && node.Team1Name != "") || (slot == 2 && node.Team2Name != "")
				if seeded {
					assert.Zero(t, in[ref], "%s slot %d is seeded and routed", node.UID, slot)
				} else {
					assert.Equal(t, 1, in[ref], "%s slot %d", node.UID, slot)
				}
			}
		}
	}
}

func TestSingleElimination_RejectsBadSeeds(t *testing.T) {
	gen := NewSingleEliminationGenerator()

	_, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{Seeds: seedNames(6)})
	assert.ErrorIs(t, err, ErrUnsupportedSize)

	_, err = gen.GenerateBracket(context.Background(), GenerateBracketParams{Seeds: []string{"A", "B", "A", "C"}})
	assert.ErrorIs(t, err, ErrDuplicateSeed)
}

func TestDoubleElimination_FourTeams(t *testing.T) {
	nodes, err := NewDoubleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Seeds: []string{"A", "B", "C", "D"},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 6)

	m := byUID(nodes)
	for _, uid := range []string{"UB-SF1", "UB-SF2", "UB-F1", "LB-R1-1", "LB-F1", "GF1"} {
		require.Contains(t, m, uid)
	}

	assert.Equal(t, &SlotRef{UID: "LB-R1-1", Slot: 1}, m["UB-SF1"].LoserTo)
	assert.Equal(t, &SlotRef{UID: "LB-R1-1", Slot: 2}, m["UB-SF2"].LoserTo)
	assert.Equal(t, &SlotRef{UID: "LB-F1", Slot: 2}, m["UB-F1"].LoserTo)
	assert.Equal(t, &SlotRef{UID: "LB-F1", Slot: 1}, m["LB-R1-1"].WinnerTo)
	assert.Equal(t, &SlotRef{UID: "GF1", Slot: 1}, m["UB-F1"].WinnerTo)
	assert.Equal(t, &SlotRef{UID: "GF1", Slot: 2}, m["LB-F1"].WinnerTo)
	assert.Nil(t, m["LB-F1"].LoserTo)
	assert.Nil(t, m["GF1"].WinnerTo)

	assert.Equal(t, "Loser of UB-SF1", m["LB-R1-1"].Team1Placeholder)
	assert.Equal(t, "Loser of UB-F1", m["LB-F1"].Team2Placeholder)
	assert.Equal(t, models.RoundGrandFinal, m["GF1"].Round)
	assert.Equal(t, models.BracketLower, m["LB-F1"].Type)
	assert.Equal(t, models.RoundLowerFinal, m["LB-F1"].Round)
}

func TestDoubleElimination_EightTeamDrops(t *testing.T) {
	nodes, err := NewDoubleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Seeds: seedNames(8)})
	require.NoError(t, err)
	require.Len(t, nodes, 14)

	m := byUID(nodes)
	// проигравшие полуфиналов верхней сетки падают в обратном порядке
	assert.Equal(t, &SlotRef{UID: "LB-R2-2", Slot: 2}, m["UB-SF1"].LoserTo)
	assert.Equal(t, &SlotRef{UID: "LB-R2-1", Slot: 2}, m["UB-SF2"].LoserTo)
	assert.Equal(t, &SlotRef{UID: "LB-R2-1", Slot: 1}, m["LB-R1-1"].WinnerTo)
	assert.Equal(t, &SlotRef{UID: "LB-R3-1", Slot: 2}, m["LB-R2-2"].WinnerTo)
	assert.Equal(t, &SlotRef{UID: "LB-F1", Slot: 1}, m["LB-R3-1"].WinnerTo)
	assert.Equal(t, &SlotRef{UID: "LB-F1", Slot: 2}, m["UB-F1"].LoserTo)
}

func TestDoubleElimination_EverySlotFedOnce(t *testing.T) {
	for _, n := range []int{4, 8, 16} {
		nodes, err := NewDoubleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Seeds: seedNames(n)})
		require.NoError(t, err)
		assert.Len(t, nodes, 2*n-2, "size %d", n)

		in := incoming(nodes)
		terminal := 0
		for _, node := range nodes {
			if node.WinnerTo == nil && node.LoserTo == nil {
				terminal++
			}
			for slot := 1; slot <= 2; slot++ {
				ref := SlotRef{UID: node.UID, Slot: slot}
				seeded := (slot == 1 && node.Team1Name != "") || (slot == 2 && node.Team2Name != "")
				if seeded {
					assert.Zero(t, in[ref], "%s slot %d", node.UID, slot)
				} else {
					assert.Equal(t, 1, in[ref], "%s slot %d", node.UID, slot)
				}
			}
			if node.Type == models.BracketUpper && node.Round != models.RoundGrandFinal {
				assert.NotNil(t, node.LoserTo, "upper match %s must drop its loser", node.UID)
			}
		}
		assert.Equal(t, 1, terminal, "size %d", n)
	}
}

func TestDoubleElimination_RejectsTwoTeams(t *testing.T) {
	_, err := NewDoubleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Seeds: seedNames(2)})
	assert.ErrorIs(t, err, ErrUnsupportedSize)
}

func TestBracketNode_ToModel(t *testing.T) {
	node := &BracketNode{UID: "SF1", Type: models.BracketSingle, Round: models.RoundSemifinal, Position: 1, Team1Name: "A", Team2Name: "D",
		WinnerTo: &SlotRef{UID: "F1", Slot: 1}}
	m := node.ToModel("playoffs")
	assert.Equal(t, "playoffs", m.Stage)
	assert.Equal(t, "SF1", m.UID)
	assert.Equal(t, models.RoundSemifinal, m.BracketRound)
	assert.True(t, m.Ready())
	assert.Nil(t, m.NextMatchID)
}
