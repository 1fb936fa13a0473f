package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

var (
	ErrUnsupportedSize = errors.New("bracket size is not supported by the format")
	ErrDuplicateSeed   = errors.New("team appears more than once in the seed list")
)

type GenerateBracketParams struct {
	Stage string
	Seeds []string // названия команд, seeds[0] - первый посев
}

// SlotRef points at one team slot of another node.
type SlotRef struct {
	UID  string
	Slot int
}

// BracketNode is a generated match before it gets a database id. Links refer to
// other nodes by UID.
type BracketNode struct {
	UID              string
	Type             models.BracketType
	Round            models.BracketRound
	Position         int
	Team1Name        string
	Team2Name        string
	Team1Placeholder string
	Team2Placeholder string
	WinnerTo         *SlotRef
	LoserTo          *SlotRef
}

// ToModel converts the node into a stage row without routing ids.
func (n *BracketNode) ToModel(stage string) *models.BracketMatch {
	return &models.BracketMatch{
		Stage:            stage,
		UID:              n.UID,
		BracketType:      n.Type,
		BracketRound:     n.Round,
		BracketPosition:  n.Position,
		Team1Name:        n.Team1Name,
		Team2Name:        n.Team2Name,
		Team1Placeholder: n.Team1Placeholder,
		Team2Placeholder: n.Team2Placeholder,
	}
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketNode, error)

	GetName() string

	SupportsSize(n int) bool
}

// NewGenerator picks the generator for a stage format.
func NewGenerator(format models.BracketFormat) (BracketGenerator, error) {
	switch format {
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case models.FormatDoubleElimination:
		return NewDoubleEliminationGenerator(), nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrInvalidBracketFormat, format)
}

// SeedOrder returns seed numbers in first-round slot order so that seed 1 and
// seed 2 can only meet in the last round: 4 -> [1 4 2 3].
func SeedOrder(n int) []int {
	order := []int{1}
	for len(order) < n {
		size := len(order) * 2
		next := make([]int, 0, size)
		for _, s := range order {
			next = append(next, s, size+1-s)
		}
		order = next
	}
	return order
}

// SlotForPosition: нечетная позиция идет в слот 1, четная в слот 2.
func SlotForPosition(position int) int {
	if position%2 == 1 {
		return 1
	}
	return 2
}

// NextPosition is ceil(position/2).
func NextPosition(position int) int {
	return (position + 1) / 2
}

func checkSeeds(seeds []string, supports func(int) bool) error {
	if !supports(len(seeds)) {
		return fmt.Errorf("%w: %d teams", ErrUnsupportedSize, len(seeds))
	}
	seen := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		if _, ok := seen[s]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSeed, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

func log2(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

// layout collects nodes and wires them by UID.
type layout struct {
	nodes []*BracketNode
	byUID map[string]*BracketNode
}

func newLayout() *layout {
	return &layout{byUID: make(map[string]*BracketNode)}
}

func (l *layout) add(n *BracketNode) *BracketNode {
	l.nodes = append(l.nodes, n)
	l.byUID[n.UID] = n
	return n
}

func (l *layout) setPlaceholder(to SlotRef, label string) {
	target := l.byUID[to.UID]
	if to.Slot == 1 {
		target.Team1Placeholder = label
	} else {
		target.Team2Placeholder = label
	}
}

func (l *layout) winnerTo(from *BracketNode, to SlotRef) {
	from.WinnerTo = &to
	l.setPlaceholder(to, "Winner of "+from.UID)
}

func (l *layout) loserTo(from *BracketNode, to SlotRef) {
	from.LoserTo = &to
	l.setPlaceholder(to, "Loser of "+from.UID)
}

// seedFirstRound fills round-one nodes from the seed list using SeedOrder.
func seedFirstRound(round []*BracketNode, seeds []string) {
	order := SeedOrder(len(seeds))
	for i, node := range round {
		node.Team1Name = seeds[order[2*i]-1]
		node.Team2Name = seeds[order[2*i+1]-1]
	}
}
