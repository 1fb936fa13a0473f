package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

const groupsLockKey = "groups"

// RandomSource is the only randomness group distribution uses. *rand.Rand
// satisfies it.
type RandomSource interface {
	Intn(n int) int
}

type GroupService interface {
	DistributeGroups(ctx context.Context, groupCount int) ([]models.GroupConfiguration, error)
	ListGroups(ctx context.Context) ([]models.GroupConfiguration, error)
	GetGroup(ctx context.Context, groupName string) (*models.GroupConfiguration, error)
	GroupSchedule(ctx context.Context, groupName string) ([]brackets.Fixture, error)
	SwissPairings(ctx context.Context, groupName string) (*brackets.SwissRound, error)
}

type groupService struct {
	store    repositories.Store
	rngMu    sync.Mutex
	rng      RandomSource
	locks    *keyedMutex
	notifier Notifier
	logger   *slog.Logger
}

func NewGroupService(store repositories.Store, rng RandomSource, notifier Notifier, logger *slog.Logger) GroupService {
	return &groupService{
		store:    store,
		rng:      rng,
		locks:    newKeyedMutex(),
		notifier: notifierOrNoop(notifier),
		logger:   logger,
	}
}

// GroupName returns the letter name of the i-th group: 0 -> "A", 26 -> "AA".
func GroupName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

// Distribute убирает команды с прямым посевом, перемешивает остальных
// Фишером-Йетсом и раздает по группам по кругу.
func Distribute(teams []*models.Team, groupCount int, rng RandomSource) ([]models.GroupConfiguration, error) {
	if groupCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, groupCount)
	}

	pool := make([]*models.Team, 0, len(teams))
	for _, t := range teams {
		if !t.DirectSeed {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 || len(pool) < groupCount {
		return nil, fmt.Errorf("%w: %d eligible for %d groups", ErrInsufficientTeams, len(pool), groupCount)
	}

	for i := len(pool) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	groups := make([]models.GroupConfiguration, groupCount)
	for g := range groups {
		groups[g].GroupName = GroupName(g)
	}
	for i, t := range pool {
		g := &groups[i%groupCount]
		g.Members = append(g.Members, models.GroupMember{TeamID: t.ID, TeamName: t.Name})
	}
	return groups, nil
}

func (s *groupService) DistributeGroups(ctx context.Context, groupCount int) ([]models.GroupConfiguration, error) {
	unlock := s.locks.Lock(groupsLockKey)
	defer unlock()

	var groups []models.GroupConfiguration
	var cleared []string
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, groupsLockKey); err != nil {
			return err
		}
		teams, err := tx.Teams().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}

		s.rngMu.Lock()
		groups, err = Distribute(teams, groupCount, s.rng)
		s.rngMu.Unlock()
		if err != nil {
			return err
		}

		old, err := knownGroupNames(ctx, tx)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(old)+len(groups))
		names := make([]string, 0, len(old)+len(groups))
		names = append(names, old...)
		for _, g := range groups {
			names = append(names, g.GroupName)
		}
		cleared = uniqueSorted(names)
		for _, name := range cleared {
			keys = append(keys, groupLockKey(name))
		}
		if err := lockKeys(ctx, tx, keys...); err != nil {
			return err
		}

		for _, name := range cleared {
			if err := tx.Matches().DeleteByGroup(ctx, name); err != nil {
				return err
			}
			if err := tx.Standings().DeleteByGroup(ctx, name); err != nil {
				return err
			}
		}
		return tx.Groups().ReplaceAll(ctx, groups)
	})
	if err != nil {
		return nil, err
	}

	placed := 0
	for _, g := range groups {
		placed += len(g.Members)
		publish(s.notifier, brackets.GroupRoom(g.GroupName), brackets.MessageGroupsUpdated, g)
	}
	s.logger.Info("groups distributed",
		slog.Int("group_count", len(groups)),
		slog.Int("teams_placed", placed),
		slog.Any("groups_cleared", cleared))
	return groups, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.GroupConfiguration, error) {
	groups, err := s.store.Groups().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) GetGroup(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	g, err := s.store.Groups().Get(ctx, groupName)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return g, nil
}

// GroupSchedule раскладывает группу по турам и отмечает уже сыгранные пары.
func (s *groupService) GroupSchedule(ctx context.Context, groupName string) ([]brackets.Fixture, error) {
	group, err := s.GetGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}
	fixtures, err := brackets.RoundRobinSchedule(group.TeamNames())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientTeams, err)
	}
	matches, err := s.store.Matches().ListByGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}
	for i := range fixtures {
		f := &fixtures[i]
		for _, m := range matches {
			if m.IsPair(f.Team1, f.Team2) {
				f.Played = true
				f.MatchID = m.ID
				break
			}
		}
	}
	return fixtures, nil
}

// SwissPairings pairs the group in standings order. Teams without a recorded
// match follow in seat order.
func (s *groupService) SwissPairings(ctx context.Context, groupName string) (*brackets.SwissRound, error) {
	group, err := s.GetGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}
	rows, err := rankedStandings(ctx, s.store, groupName)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.Matches().ListByGroup(ctx, groupName)
	if err != nil {
		return nil, err
	}

	ordered := make([]string, 0, len(group.Members))
	ranked := make(map[string]bool, len(rows))
	for _, r := range rows {
		if group.Has(r.TeamName) {
			ordered = append(ordered, r.TeamName)
			ranked[r.TeamName] = true
		}
	}
	for _, name := range group.TeamNames() {
		if !ranked[name] {
			ordered = append(ordered, name)
		}
	}

	played := func(a, b string) bool {
		for _, m := range matches {
			if m.IsPair(a, b) {
				return true
			}
		}
		return false
	}
	round, err := brackets.PairSwiss(ordered, played)
	if err != nil {
		if errors.Is(err, brackets.ErrNoPairing) {
			return nil, fmt.Errorf("%w: group %s", ErrNoSwissPairing, groupName)
		}
		return nil, err
	}
	return round, nil
}
