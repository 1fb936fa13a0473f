package brackets

import (
	"fmt"
)

// Fixture is one scheduled group game.
type Fixture struct {
	Round   int    `json:"round"`
	Team1   string `json:"team1_name"`
	Team2   string `json:"team2_name"`
	Played  bool   `json:"played"`
	MatchID int    `json:"match_id,omitempty"`
}

// RoundRobinSchedule раскладывает однокруговой турнир по турам методом круга.
// Каждая пара встречается ровно один раз; при нечетном числе команд одна
// команда в каждом туре отдыхает.
func RoundRobinSchedule(teams []string) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("round robin needs at least 2 teams, got %d", len(teams))
	}

	list := make([]string, len(teams), len(teams)+1)
	copy(list, teams)
	if len(list)%2 == 1 {
		list = append(list, "") // пустое имя - выходной
	}
	n := len(list)

	fixtures := make([]Fixture, 0, len(teams)*(len(teams)-1)/2)
	for round := 1; round < n; round++ {
		for i := 0; i < n/2; i++ {
			a, b := list[i], list[n-1-i]
			if a == "" || b == "" {
				continue
			}
			fixtures = append(fixtures, Fixture{Round: round, Team1: a, Team2: b})
		}
		// первая команда стоит на месте, остальные сдвигаются по кругу
		last := list[n-1]
		copy(list[2:], list[1:n-1])
		list[1] = last
	}
	return fixtures, nil
}
