package services

import (
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

const DefaultMinWinningRounds = 13

// ScoringRules are the tunable parts of match validation.
type ScoringRules struct {
	MinWinningRounds  int
	EnforceMatchQuota bool
}

func DefaultScoringRules() ScoringRules {
	return ScoringRules{MinWinningRounds: DefaultMinWinningRounds, EnforceMatchQuota: true}
}

type MatchInput struct {
	GroupName       string `json:"group_name"`
	Team1Name       string `json:"team1_name"`
	Team2Name       string `json:"team2_name"`
	Team1Score      int    `json:"team1_score"`
	Team2Score      int    `json:"team2_score"`
	TechnicalWin    bool   `json:"technical_win"`
	TechnicalWinner string `json:"technical_winner,omitempty"`
}

func (in MatchInput) toModel() *models.Match {
	m := &models.Match{
		GroupName:    in.GroupName,
		Team1Name:    in.Team1Name,
		Team2Name:    in.Team2Name,
		Team1Score:   in.Team1Score,
		Team2Score:   in.Team2Score,
		TechnicalWin: in.TechnicalWin,
	}
	if in.TechnicalWin {
		m.TechnicalWinner = in.TechnicalWinner
	}
	return m
}

// ValidateMatch проверяет результат до любых изменений. Проверки идут по порядку
// и останавливаются на первой ошибке. history must not contain the match being
// edited.
func ValidateMatch(in MatchInput, group models.GroupConfiguration, history []*models.Match, rules ScoringRules) error {
	for _, name := range []string{in.Team1Name, in.Team2Name} {
		if !group.Has(name) {
			return fmt.Errorf("%w: %q in group %q", ErrUnknownTeam, name, in.GroupName)
		}
	}

	if in.Team1Name == in.Team2Name {
		return fmt.Errorf("%w: %q", ErrSelfMatch, in.Team1Name)
	}

	for _, m := range history {
		if m.IsPair(in.Team1Name, in.Team2Name) {
			return fmt.Errorf("%w: %s vs %s (match %d)", ErrDuplicatePairing, in.Team1Name, in.Team2Name, m.ID)
		}
	}

	negative := in.Team1Score < 0 || in.Team2Score < 0
	if in.TechnicalWin {
		if in.TechnicalWinner != in.Team1Name && in.TechnicalWinner != in.Team2Name {
			return fmt.Errorf("%w: got %q", ErrInvalidTechnicalWinner, in.TechnicalWinner)
		}
		if negative {
			return fmt.Errorf("%w: %d-%d", ErrNegativeScore, in.Team1Score, in.Team2Score)
		}
	} else {
		if in.Team1Score == in.Team2Score {
			return fmt.Errorf("%w: %d-%d", ErrIllegalDraw, in.Team1Score, in.Team2Score)
		}
		if negative {
			return fmt.Errorf("%w: %d-%d", ErrNegativeScore, in.Team1Score, in.Team2Score)
		}
		winning := max(in.Team1Score, in.Team2Score)
		if rules.MinWinningRounds > 0 && winning < rules.MinWinningRounds {
			return fmt.Errorf("%w: %d < %d", ErrBelowWinThreshold, winning, rules.MinWinningRounds)
		}
	}

	if rules.EnforceMatchQuota {
		quota := len(group.Members) - 1
		for _, name := range []string{in.Team1Name, in.Team2Name} {
			played := 0
			for _, m := range history {
				if m.Involves(name) {
					played++
				}
			}
			if played >= quota {
				return fmt.Errorf("%w: %q played %d of %d", ErrMatchQuotaExceeded, name, played, quota)
			}
		}
	}

	return nil
}
