package models

import "time"

// Match is a recorded group-stage result.
type Match struct {
	ID              int       `json:"id" db:"id"`
	GroupName       string    `json:"group_name" db:"group_name"`
	Team1Name       string    `json:"team1_name" db:"team1_name"`
	Team2Name       string    `json:"team2_name" db:"team2_name"`
	Team1Score      int       `json:"team1_score" db:"team1_score"`
	Team2Score      int       `json:"team2_score" db:"team2_score"`
	TechnicalWin    bool      `json:"technical_win" db:"technical_win"`
	TechnicalWinner string    `json:"technical_winner,omitempty" db:"technical_winner"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// WinnerName returns the winning side. For a technical win the scores are
// advisory and the declared winner is used. Empty for an (invalid) draw.
func (m *Match) WinnerName() string {
	if m.TechnicalWin {
		return m.TechnicalWinner
	}
	switch {
	case m.Team1Score > m.Team2Score:
		return m.Team1Name
	case m.Team2Score > m.Team1Score:
		return m.Team2Name
	}
	return ""
}

func (m *Match) LoserName() string {
	switch m.WinnerName() {
	case m.Team1Name:
		return m.Team2Name
	case m.Team2Name:
		return m.Team1Name
	}
	return ""
}

// IsPair reports whether the match was played between a and b, in any order.
func (m *Match) IsPair(a, b string) bool {
	return (m.Team1Name == a && m.Team2Name == b) || (m.Team1Name == b && m.Team2Name == a)
}

func (m *Match) Involves(team string) bool {
	return m.Team1Name == team || m.Team2Name == team
}
