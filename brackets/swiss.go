package brackets

import (
	"errors"
)

var ErrNoPairing = errors.New("no pairing avoids a rematch")

// SwissPair is one pairing of the next Swiss round.
type SwissPair struct {
	Team1 string `json:"team1_name"`
	Team2 string `json:"team2_name"`
}

type SwissRound struct {
	Pairs []SwissPair `json:"pairs"`
	Bye   string      `json:"bye,omitempty"`
}

// PairSwiss pairs teams given in standings order, strongest first. Each team
// takes the highest ranked opponent it has not met yet; when that leads to a
// dead end the search backtracks. With an odd count the lowest ranked team
// that still leaves a valid pairing gets the bye.
func PairSwiss(ordered []string, played func(a, b string) bool) (*SwissRound, error) {
	if len(ordered)%2 == 0 {
		pairs, ok := pairRest(ordered, played)
		if !ok {
			return nil, ErrNoPairing
		}
		return &SwissRound{Pairs: pairs}, nil
	}

	for i := len(ordered) - 1; i >= 0; i-- {
		rest := make([]string, 0, len(ordered)-1)
		rest = append(rest, ordered[:i]...)
		rest = append(rest, ordered[i+1:]...)
		if pairs, ok := pairRest(rest, played); ok {
			return &SwissRound{Pairs: pairs, Bye: ordered[i]}, nil
		}
	}
	return nil, ErrNoPairing
}

func pairRest(teams []string, played func(a, b string) bool) ([]SwissPair, bool) {
	if len(teams) == 0 {
		return []SwissPair{}, true
	}
	first := teams[0]
	for j := 1; j < len(teams); j++ {
		if played(first, teams[j]) {
			continue
		}
		rest := make([]string, 0, len(teams)-2)
		rest = append(rest, teams[1:j]...)
		rest = append(rest, teams[j+1:]...)
		if pairs, ok := pairRest(rest, played); ok {
			return append([]SwissPair{{Team1: first, Team2: teams[j]}}, pairs...), true
		}
	}
	return nil, false
}
