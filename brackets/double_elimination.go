package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

const (
	upperPrefix   = "UB-"
	lowerPrefix   = "LB-"
	grandFinalUID = "GF1"
)

// DoubleEliminationGenerator строит верхнюю и нижнюю сетки и гранд-финал
// без повторного финала (bracket reset).
type DoubleEliminationGenerator struct {
}

func NewDoubleEliminationGenerator() BracketGenerator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) GetName() string {
	return "DoubleElimination"
}

func (g *DoubleEliminationGenerator) SupportsSize(n int) bool {
	switch n {
	case 4, 8, 16:
		return true
	}
	return false
}

// GenerateBracket lays out a bracket of k = log2(n) upper rounds and 2k-2
// lower rounds:
//   - upper round 1 losers pair up in lower round 1;
//   - the loser of upper round m+1 drops into lower round 2m, filling it bottom up;
//   - odd lower rounds feed the even round at the same position, even rounds
//     halve into the next odd round;
//   - the upper final winner takes grand final slot 1, the lower final winner slot 2.
func (g *DoubleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketNode, error) {
	if err := checkSeeds(params.Seeds, g.SupportsSize); err != nil {
		return nil, err
	}
	n := len(params.Seeds)
	k := log2(n)

	l := newLayout()
	upper, err := buildElimination(l, n, models.BracketUpper, upperPrefix)
	if err != nil {
		return nil, err
	}
	seedFirstRound(upper[0], params.Seeds)

	totalLower := 2*k - 2
	lower := make([][]*BracketNode, totalLower)
	for i := 1; i <= totalLower; i++ {
		m := (i + 1) / 2
		size := n >> (m + 1)
		round, err := models.LowerRoundAt(i, totalLower)
		if err != nil {
			return nil, err
		}
		lower[i-1] = make([]*BracketNode, size)
		for p := 1; p <= size; p++ {
			lower[i-1][p-1] = l.add(&BracketNode{
				UID:      fmt.Sprintf("%s%s%d", lowerPrefix, round.Abbrev(), p),
				Type:     models.BracketLower,
				Round:    round,
				Position: p,
			})
		}
	}

	grandFinal := l.add(&BracketNode{
		UID:      grandFinalUID,
		Type:     models.BracketUpper,
		Round:    models.RoundGrandFinal,
		Position: 1,
	})

	// проигравшие первого раунда верхней сетки
	for _, node := range upper[0] {
		target := lower[0][NextPosition(node.Position)-1]
		l.loserTo(node, SlotRef{UID: target.UID, Slot: SlotForPosition(node.Position)})
	}

	// проигравшие следующих раундов падают в четные раунды нижней сетки
	for m := 1; m < k; m++ {
		drop := lower[2*m-1]
		for _, node := range upper[m] {
			target := drop[len(drop)-node.Position]
			l.loserTo(node, SlotRef{UID: target.UID, Slot: 2})
		}
	}

	for i := 1; i <= totalLower; i++ {
		for _, node := range lower[i-1] {
			switch {
			case i == totalLower:
				l.winnerTo(node, SlotRef{UID: grandFinal.UID, Slot: 2})
			case i%2 == 1:
				target := lower[i][node.Position-1]
				l.winnerTo(node, SlotRef{UID: target.UID, Slot: 1})
			default:
				target := lower[i][NextPosition(node.Position)-1]
				l.winnerTo(node, SlotRef{UID: target.UID, Slot: SlotForPosition(node.Position)})
			}
		}
	}

	l.winnerTo(upper[k-1][0], SlotRef{UID: grandFinal.UID, Slot: 1})

	return l.nodes, nil
}
