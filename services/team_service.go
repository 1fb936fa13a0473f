package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

type RegisterTeamInput struct {
	Name       string `json:"name"`
	DirectSeed bool   `json:"direct_seed"`
}

type TeamService interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	IsDirectSeed(ctx context.Context, teamName string) (bool, error)
}

type teamService struct {
	store    repositories.Store
	ledger   StandingsLedger
	locks    *keyedMutex
	notifier Notifier
	logger   *slog.Logger
}

func NewTeamService(store repositories.Store, notifier Notifier, logger *slog.Logger) TeamService {
	return &teamService{
		store:    store,
		locks:    newKeyedMutex(),
		notifier: notifierOrNoop(notifier),
		logger:   logger,
	}
}

func (s *teamService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team := &models.Team{Name: name, DirectSeed: input.DirectSeed}
	if err := s.store.Teams().Create(ctx, team); err != nil {
		return nil, handleRepositoryError(err)
	}
	s.logger.Info("team registered",
		slog.Int("team_id", team.ID),
		slog.String("team", team.Name),
		slog.Bool("direct_seed", team.DirectSeed))
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.store.Teams().GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.store.Teams().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) IsDirectSeed(ctx context.Context, teamName string) (bool, error) {
	team, err := s.store.Teams().GetByName(ctx, teamName)
	if err != nil {
		return false, handleRepositoryError(err)
	}
	return team.DirectSeed, nil
}

// DeleteTeam удаляет команду каскадом: каждый ее матч откатывается из таблицы и
// удаляется, затем команда убирается из групп.
func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	unlock := s.locks.Lock(groupsLockKey)
	defer unlock()

	affected := make(map[string][]*models.Standing)
	var team *models.Team
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, groupsLockKey); err != nil {
			return err
		}
		var err error
		team, err = tx.Teams().GetByID(ctx, id)
		if err != nil {
			return handleRepositoryError(err)
		}

		matches, err := tx.Matches().ListByTeam(ctx, team.Name)
		if err != nil {
			return err
		}
		groupNames, err := knownGroupNames(ctx, tx)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(groupNames))
		for _, name := range groupNames {
			keys = append(keys, groupLockKey(name))
		}
		if err := lockKeys(ctx, tx, keys...); err != nil {
			return err
		}

		for _, m := range matches {
			if err := tx.Matches().Delete(ctx, m.ID); err != nil {
				return handleRepositoryError(err)
			}
			standings, err := s.ledger.Reverse(ctx, tx, m)
			if err != nil {
				return err
			}
			affected[m.GroupName] = standings
		}

		for _, name := range groupNames {
			err := tx.Standings().Delete(ctx, name, team.Name)
			switch {
			case err == nil:
				standings, err := s.ledger.Recompute(ctx, tx, name)
				if err != nil {
					return err
				}
				affected[name] = standings
			case !errors.Is(err, repositories.ErrStandingNotFound):
				return err
			}
		}

		if err := tx.Groups().RemoveTeam(ctx, team.Name); err != nil {
			return err
		}
		return handleRepositoryError(tx.Teams().Delete(ctx, team.ID))
	})
	if err != nil {
		return err
	}

	for group, standings := range affected {
		publish(s.notifier, brackets.GroupRoom(group), brackets.MessageStandingsUpdated, standings)
	}
	s.logger.Info("team deleted",
		slog.Int("team_id", team.ID),
		slog.String("team", team.Name),
		slog.Int("groups_touched", len(affected)))
	return nil
}
