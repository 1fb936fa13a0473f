package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

// EditMatchInput - новые значения матча. Группа матча не меняется.
type EditMatchInput struct {
	Team1Name       string `json:"team1_name"`
	Team2Name       string `json:"team2_name"`
	Team1Score      int    `json:"team1_score"`
	Team2Score      int    `json:"team2_score"`
	TechnicalWin    bool   `json:"technical_win"`
	TechnicalWinner string `json:"technical_winner,omitempty"`
}

type GroupStandings struct {
	GroupName string             `json:"group_name"`
	Standings []*models.Standing `json:"standings"`
}

type MatchService interface {
	SubmitMatchResult(ctx context.Context, input MatchInput) ([]*models.Standing, error)
	EditMatchResult(ctx context.Context, matchID int, input EditMatchInput) ([]*models.Standing, error)
	DeleteMatchResult(ctx context.Context, matchID int) error
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	ListMatches(ctx context.Context, groupName string) ([]*models.Match, error)
	GetStandings(ctx context.Context, groupName string) ([]*models.Standing, error)
	ListAllStandings(ctx context.Context) ([]GroupStandings, error)
}

type matchService struct {
	store    repositories.Store
	ledger   StandingsLedger
	rules    ScoringRules
	locks    *keyedMutex
	notifier Notifier
	logger   *slog.Logger
}

func NewMatchService(store repositories.Store, rules ScoringRules, notifier Notifier, logger *slog.Logger) MatchService {
	return &matchService{
		store:    store,
		rules:    rules,
		locks:    newKeyedMutex(),
		notifier: notifierOrNoop(notifier),
		logger:   logger,
	}
}

// loadGroup returns the configuration of group. An unknown group comes back
// empty so that validation reports the teams as unknown.
func loadGroup(ctx context.Context, tx repositories.Store, group string) (models.GroupConfiguration, error) {
	cfg, err := tx.Groups().Get(ctx, group)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return models.GroupConfiguration{GroupName: group}, nil
		}
		return models.GroupConfiguration{}, fmt.Errorf("failed to load group %s: %w", group, err)
	}
	return *cfg, nil
}

func (s *matchService) SubmitMatchResult(ctx context.Context, input MatchInput) ([]*models.Standing, error) {
	if input.GroupName == "" {
		return nil, ErrGroupNameRequired
	}
	key := groupLockKey(input.GroupName)
	unlock := s.locks.Lock(key)
	defer unlock()

	var match *models.Match
	var standings []*models.Standing
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}
		group, err := loadGroup(ctx, tx, input.GroupName)
		if err != nil {
			return err
		}
		history, err := tx.Matches().ListByGroup(ctx, input.GroupName)
		if err != nil {
			return err
		}
		if err := ValidateMatch(input, group, history, s.rules); err != nil {
			return err
		}

		match = input.toModel()
		if err := tx.Matches().Create(ctx, match); err != nil {
			return handleRepositoryError(err)
		}
		standings, err = s.ledger.Apply(ctx, tx, match)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match result submitted",
		slog.Int("match_id", match.ID),
		slog.String("group", match.GroupName),
		slog.String("team1", match.Team1Name),
		slog.String("team2", match.Team2Name),
		slog.String("winner", match.WinnerName()))
	publish(s.notifier, brackets.GroupRoom(match.GroupName), brackets.MessageStandingsUpdated, standings)
	return standings, nil
}

func (s *matchService) EditMatchResult(ctx context.Context, matchID int, input EditMatchInput) ([]*models.Standing, error) {
	current, err := s.store.Matches().GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	key := groupLockKey(current.GroupName)
	unlock := s.locks.Lock(key)
	defer unlock()

	var updated *models.Match
	var standings []*models.Standing
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}
		old, err := tx.Matches().GetByID(ctx, matchID)
		if err != nil {
			return handleRepositoryError(err)
		}
		group, err := loadGroup(ctx, tx, old.GroupName)
		if err != nil {
			return err
		}
		all, err := tx.Matches().ListByGroup(ctx, old.GroupName)
		if err != nil {
			return err
		}
		history := make([]*models.Match, 0, len(all))
		for _, m := range all {
			if m.ID != old.ID {
				history = append(history, m)
			}
		}

		in := MatchInput{
			GroupName:       old.GroupName,
			Team1Name:       input.Team1Name,
			Team2Name:       input.Team2Name,
			Team1Score:      input.Team1Score,
			Team2Score:      input.Team2Score,
			TechnicalWin:    input.TechnicalWin,
			TechnicalWinner: input.TechnicalWinner,
		}
		if err := ValidateMatch(in, group, history, s.rules); err != nil {
			return err
		}

		updated = in.toModel()
		updated.ID = old.ID
		updated.CreatedAt = old.CreatedAt
		if err := tx.Matches().Update(ctx, updated); err != nil {
			return handleRepositoryError(err)
		}
		standings, err = s.ledger.Replace(ctx, tx, old, updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match result edited",
		slog.Int("match_id", updated.ID),
		slog.String("group", updated.GroupName),
		slog.String("winner", updated.WinnerName()))
	publish(s.notifier, brackets.GroupRoom(updated.GroupName), brackets.MessageStandingsUpdated, standings)
	return standings, nil
}

func (s *matchService) DeleteMatchResult(ctx context.Context, matchID int) error {
	current, err := s.store.Matches().GetByID(ctx, matchID)
	if err != nil {
		return handleRepositoryError(err)
	}
	key := groupLockKey(current.GroupName)
	unlock := s.locks.Lock(key)
	defer unlock()

	var standings []*models.Standing
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}
		old, err := tx.Matches().GetByID(ctx, matchID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if err := tx.Matches().Delete(ctx, old.ID); err != nil {
			return handleRepositoryError(err)
		}
		standings, err = s.ledger.Reverse(ctx, tx, old)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("match result deleted",
		slog.Int("match_id", matchID),
		slog.String("group", current.GroupName))
	publish(s.notifier, brackets.GroupRoom(current.GroupName), brackets.MessageStandingsUpdated, standings)
	return nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	m, err := s.store.Matches().GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return m, nil
}

func (s *matchService) ListMatches(ctx context.Context, groupName string) ([]*models.Match, error) {
	matches, err := s.store.Matches().ListByGroup(ctx, groupName)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of group %s: %w", groupName, err)
	}
	return matches, nil
}

// GetStandings отдает строки в том же порядке, что пишет Recompute.
func (s *matchService) GetStandings(ctx context.Context, groupName string) ([]*models.Standing, error) {
	rows, err := rankedStandings(ctx, s.store, groupName)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings of group %s: %w", groupName, err)
	}
	if len(rows) == 0 {
		if _, err := s.store.Groups().Get(ctx, groupName); err != nil {
			return nil, handleRepositoryError(err)
		}
	}
	return rows, nil
}

func (s *matchService) ListAllStandings(ctx context.Context) ([]GroupStandings, error) {
	names, err := knownGroupNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	result := make([]GroupStandings, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			rows, err := rankedStandings(gctx, s.store, name)
			if err != nil {
				return fmt.Errorf("failed to load standings of group %s: %w", name, err)
			}
			result[i] = GroupStandings{GroupName: name, Standings: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// knownGroupNames merges configured groups with groups that still hold standings.
func knownGroupNames(ctx context.Context, store repositories.Store) ([]string, error) {
	groups, err := store.Groups().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	withRows, err := store.Standings().ListGroupNames(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(groups)+len(withRows))
	for _, g := range groups {
		seen[g.GroupName] = struct{}{}
		names = append(names, g.GroupName)
	}
	for _, name := range withRows {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
