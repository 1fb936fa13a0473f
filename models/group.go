package models

type GroupMember struct {
	TeamID   int    `json:"team_id" db:"team_id"`
	TeamName string `json:"team_name" db:"team_name"`
}

// GroupConfiguration lists the teams of one group in seat order.
type GroupConfiguration struct {
	GroupName string        `json:"group_name"`
	Members   []GroupMember `json:"members"`
}

func (g *GroupConfiguration) Has(teamName string) bool {
	for _, m := range g.Members {
		if m.TeamName == teamName {
			return true
		}
	}
	return false
}

func (g *GroupConfiguration) TeamNames() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.TeamName
	}
	return names
}
