package models

// Standing is a team's aggregate record inside one group. ID reflects insertion
// order and is used as the last tie-break.
type Standing struct {
	ID              int    `json:"id" db:"id"`
	GroupName       string `json:"group_name" db:"group_name"`
	TeamName        string `json:"team_name" db:"team_name"`
	MatchesPlayed   int    `json:"matches_played" db:"matches_played"`
	Wins            int    `json:"wins" db:"wins"`
	Losses          int    `json:"losses" db:"losses"`
	RoundsWon       int    `json:"rounds_won" db:"rounds_won"`
	RoundsLost      int    `json:"rounds_lost" db:"rounds_lost"`
	RoundDifference int    `json:"round_difference" db:"round_difference"`
	Points          int    `json:"points" db:"points"`
	Position        int    `json:"position" db:"position"`
}

// Totals strips identity and position, leaving only the values derived from
// matches. Two ledgers agree when their totals agree.
func (s Standing) Totals() Standing {
	return Standing{
		GroupName:       s.GroupName,
		TeamName:        s.TeamName,
		MatchesPlayed:   s.MatchesPlayed,
		Wins:            s.Wins,
		Losses:          s.Losses,
		RoundsWon:       s.RoundsWon,
		RoundsLost:      s.RoundsLost,
		RoundDifference: s.RoundDifference,
		Points:          s.Points,
	}
}
