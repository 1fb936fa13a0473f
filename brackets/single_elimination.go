package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) SupportsSize(n int) bool {
	switch n {
	case 2, 4, 8, 16:
		return true
	}
	return false
}

// GenerateBracket строит полную сетку: первый раунд по посеву, остальные
// раунды с плейсхолдерами "Winner of ...".
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketNode, error) {
	if err := checkSeeds(params.Seeds, g.SupportsSize); err != nil {
		return nil, err
	}

	l := newLayout()
	rounds, err := buildElimination(l, len(params.Seeds), models.BracketSingle, "")
	if err != nil {
		return nil, err
	}
	seedFirstRound(rounds[0], params.Seeds)
	return l.nodes, nil
}

// buildElimination adds log2(n) rounds of type typ, linking each winner into
// the next round. UIDs are prefix + round abbreviation + position.
func buildElimination(l *layout, n int, typ models.BracketType, prefix string) ([][]*BracketNode, error) {
	numRounds := log2(n)
	rounds := make([][]*BracketNode, numRounds)

	for r := 0; r < numRounds; r++ {
		matches := n >> (r + 1)
		round, err := models.UpperRoundForMatches(matches)
		if err != nil {
			return nil, err
		}
		rounds[r] = make([]*BracketNode, matches)
		for p := 1; p <= matches; p++ {
			rounds[r][p-1] = l.add(&BracketNode{
				UID:      fmt.Sprintf("%s%s%d", prefix, round.Abbrev(), p),
				Type:     typ,
				Round:    round,
				Position: p,
			})
		}
	}

	for r := 0; r < numRounds-1; r++ {
		next := rounds[r+1]
		for _, node := range rounds[r] {
			target := next[NextPosition(node.Position)-1]
			l.winnerTo(node, SlotRef{UID: target.UID, Slot: SlotForPosition(node.Position)})
		}
	}
	return rounds, nil
}
