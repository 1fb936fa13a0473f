package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketMatch_SlotsAndReadiness(t *testing.T) {
	m := &BracketMatch{UID: "F1", Team1Placeholder: "Winner of SF1", Team2Placeholder: "Winner of SF2"}
	assert.False(t, m.Ready())
	assert.False(t, m.HasTeam(""))

	require.NoError(t, m.SetSlot(1, "NaVi"))
	assert.False(t, m.Ready())
	require.NoError(t, m.SetSlot(2, "FaZe"))
	assert.True(t, m.Ready())
	assert.True(t, m.HasTeam("FaZe"))
	assert.False(t, m.HasTeam("G2"))

	assert.Error(t, m.SetSlot(3, "G2"))
	assert.True(t, m.IsTerminal())

	next := 7
	m.NextMatchID = &next
	assert.False(t, m.IsTerminal())
}

func TestBracketRoundNames(t *testing.T) {
	tests := []struct {
		matches int
		want    BracketRound
	}{
		{8, RoundOf16},
		{4, RoundQuarterfinal},
		{2, RoundSemifinal},
		{1, RoundFinal},
	}
	for _, tt := range tests {
		got, err := UpperRoundForMatches(tt.matches)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := UpperRoundForMatches(3)
	assert.ErrorIs(t, err, ErrInvalidBracketRound)

	r, err := LowerRoundAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, RoundLowerFinal, r)
	r, err = LowerRoundAt(1, 4)
	require.NoError(t, err)
	assert.Equal(t, RoundLower1, r)
	_, err = LowerRoundAt(0, 4)
	assert.ErrorIs(t, err, ErrInvalidBracketRound)

	assert.Equal(t, "SF", RoundSemifinal.Abbrev())
	assert.Equal(t, "GF", RoundGrandFinal.Abbrev())
}

func TestBracketEnumsJSON(t *testing.T) {
	var in struct {
		Format BracketFormat `json:"format"`
		Type   BracketType   `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"format":"double_elimination","type":"lower"}`), &in))
	assert.Equal(t, FormatDoubleElimination, in.Format)
	assert.Equal(t, BracketLower, in.Type)

	err := json.Unmarshal([]byte(`{"format":"swiss"}`), &in)
	assert.ErrorIs(t, err, ErrInvalidBracketFormat)
}

func TestBracketEnumsScan(t *testing.T) {
	var typ BracketType
	require.NoError(t, typ.Scan([]byte("upper")))
	assert.Equal(t, BracketUpper, typ)
	assert.Error(t, typ.Scan("sideways"))

	var round BracketRound
	require.NoError(t, round.Scan("grand_final"))
	assert.Equal(t, RoundGrandFinal, round)

	_, err := BracketRound("nope").Value()
	assert.ErrorIs(t, err, ErrInvalidBracketRound)
}

func TestMatchWinnerAndPair(t *testing.T) {
	m := &Match{Team1Name: "X", Team2Name: "Y", Team1Score: 16, Team2Score: 3}
	assert.Equal(t, "X", m.WinnerName())
	assert.Equal(t, "Y", m.LoserName())
	assert.True(t, m.IsPair("Y", "X"))
	assert.True(t, m.Involves("Y"))
	assert.False(t, m.Involves("Z"))

	tech := &Match{Team1Name: "X", Team2Name: "Y", Team1Score: 0, Team2Score: 0, TechnicalWin: true, TechnicalWinner: "Y"}
	assert.Equal(t, "Y", tech.WinnerName())
	assert.Equal(t, "X", tech.LoserName())
}
