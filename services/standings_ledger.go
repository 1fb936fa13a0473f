package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/ranking"
	"github.com/Dosada05/cs2-arena/repositories"
)

const pointsPerWin = 3

// StandingsLedger владеет агрегатами групп. Вся логика apply/reverse живет здесь
// и работает внутри транзакции Store.
type StandingsLedger struct{}

// sideEffect is what one match contributes to one team.
type sideEffect struct {
	team          string
	won           bool
	roundsFor     int
	roundsAgainst int
}

func matchEffects(m *models.Match) [2]sideEffect {
	winner := m.WinnerName()
	e := [2]sideEffect{
		{team: m.Team1Name, won: winner == m.Team1Name, roundsFor: m.Team1Score, roundsAgainst: m.Team2Score},
		{team: m.Team2Name, won: winner == m.Team2Name, roundsFor: m.Team2Score, roundsAgainst: m.Team1Score},
	}
	// техническая победа: счет только справочный
	if m.TechnicalWin {
		for i := range e {
			e[i].roundsFor, e[i].roundsAgainst = 0, 0
		}
	}
	return e
}

// addEffect adds sign times the effect to s, never letting a counter drop below zero.
func addEffect(s *models.Standing, e sideEffect, sign int) {
	s.MatchesPlayed = clampAdd(s.MatchesPlayed, sign)
	if e.won {
		s.Wins = clampAdd(s.Wins, sign)
	} else {
		s.Losses = clampAdd(s.Losses, sign)
	}
	s.RoundsWon = clampAdd(s.RoundsWon, sign*e.roundsFor)
	s.RoundsLost = clampAdd(s.RoundsLost, sign*e.roundsAgainst)
	s.RoundDifference = s.RoundsWon - s.RoundsLost
	s.Points = pointsPerWin * s.Wins
}

func clampAdd(v, delta int) int {
	if v+delta < 0 {
		return 0
	}
	return v + delta
}

// Apply adds the match to both teams' rows and recomputes the group's positions.
// The match must already be stored.
func (l StandingsLedger) Apply(ctx context.Context, tx repositories.Store, match *models.Match) ([]*models.Standing, error) {
	if err := l.mutate(ctx, tx.Standings(), match, 1, false); err != nil {
		return nil, err
	}
	return l.Recompute(ctx, tx, match.GroupName)
}

// Reverse subtracts exactly what Apply added for the same match. A row left
// with no matches is removed, so apply followed by reverse restores the group
// as it was. The match must already be gone from storage.
func (l StandingsLedger) Reverse(ctx context.Context, tx repositories.Store, match *models.Match) ([]*models.Standing, error) {
	if err := l.mutate(ctx, tx.Standings(), match, -1, true); err != nil {
		return nil, err
	}
	return l.Recompute(ctx, tx, match.GroupName)
}

// Replace swaps old for updated once updated is stored under the same id. Rows
// survive the intermediate step, so a team that stays in the match keeps its row.
func (l StandingsLedger) Replace(ctx context.Context, tx repositories.Store, old, updated *models.Match) ([]*models.Standing, error) {
	repo := tx.Standings()
	if err := l.mutate(ctx, repo, old, -1, false); err != nil {
		return nil, err
	}
	if err := l.mutate(ctx, repo, updated, 1, false); err != nil {
		return nil, err
	}
	for _, team := range []string{old.Team1Name, old.Team2Name} {
		if err := pruneEmpty(ctx, repo, old.GroupName, team); err != nil {
			return nil, err
		}
	}
	return l.Recompute(ctx, tx, updated.GroupName)
}

func (l StandingsLedger) mutate(ctx context.Context, repo repositories.StandingRepository, match *models.Match, sign int, prune bool) error {
	for _, e := range matchEffects(match) {
		row, err := repo.Get(ctx, match.GroupName, e.team)
		switch {
		case errors.Is(err, repositories.ErrStandingNotFound):
			if sign < 0 {
				continue
			}
			row = &models.Standing{GroupName: match.GroupName, TeamName: e.team}
		case err != nil:
			return fmt.Errorf("failed to load standing %s/%s: %w", match.GroupName, e.team, err)
		}

		addEffect(row, e, sign)

		if prune && row.MatchesPlayed == 0 {
			if err := repo.Delete(ctx, match.GroupName, e.team); err != nil {
				return fmt.Errorf("failed to drop empty standing %s/%s: %w", match.GroupName, e.team, err)
			}
			continue
		}
		if err := repo.Upsert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func pruneEmpty(ctx context.Context, repo repositories.StandingRepository, group, team string) error {
	row, err := repo.Get(ctx, group, team)
	switch {
	case errors.Is(err, repositories.ErrStandingNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to load standing %s/%s: %w", group, team, err)
	}
	if row.MatchesPlayed > 0 {
		return nil
	}
	if err := repo.Delete(ctx, group, team); err != nil {
		return fmt.Errorf("failed to drop empty standing %s/%s: %w", group, team, err)
	}
	return nil
}

// Recompute rewrites dense positions 1..N for the group and returns the rows in
// ranking order.
func (l StandingsLedger) Recompute(ctx context.Context, tx repositories.Store, group string) ([]*models.Standing, error) {
	ordered, err := rankedStandings(ctx, tx, group)
	if err != nil {
		return nil, err
	}
	for i, s := range ordered {
		if s.Position == i+1 {
			continue
		}
		s.Position = i + 1
		if err := tx.Standings().Upsert(ctx, s); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// rankedStandings reads the group's rows in ranking order. Exact ties go to the
// team whose first stored match has the lower id.
func rankedStandings(ctx context.Context, store repositories.Store, group string) ([]*models.Standing, error) {
	rows, err := store.Standings().ListByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	matches, err := store.Matches().ListByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	return ranking.OrderByAppearance(rows, ranking.FirstAppearance(matches)), nil
}

// Replay folds matches from an empty ledger. Rows come back keyed by team with
// positions assigned the same way Recompute does.
func (l StandingsLedger) Replay(group string, matches []*models.Match) map[string]models.Standing {
	played := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.GroupName == group {
			played = append(played, m)
		}
	}

	byTeam := make(map[string]*models.Standing)
	order := make([]*models.Standing, 0)
	for _, m := range played {
		for _, e := range matchEffects(m) {
			row, ok := byTeam[e.team]
			if !ok {
				row = &models.Standing{GroupName: group, TeamName: e.team}
				byTeam[e.team] = row
				order = append(order, row)
			}
			addEffect(row, e, 1)
		}
	}

	out := make(map[string]models.Standing, len(order))
	for i, s := range ranking.OrderByAppearance(order, ranking.FirstAppearance(played)) {
		s.Position = i + 1
		out[s.TeamName] = *s
	}
	return out
}
