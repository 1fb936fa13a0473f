package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

// QualificationSource берет участников стадии из итогов групп.
type QualificationSource struct {
	PerGroup           int  `json:"per_group"`
	IncludeDirectSeeds bool `json:"include_direct_seeds"`
}

type GenerateStageInput struct {
	Stage      string               `json:"stage"`
	Format     models.BracketFormat `json:"format"`
	Size       int                  `json:"size,omitempty"`
	Seeds      []string             `json:"seeds,omitempty"`
	FromGroups *QualificationSource `json:"from_groups,omitempty"`
}

type StageView struct {
	Stage    string                 `json:"stage"`
	Matches  []*models.BracketMatch `json:"matches"`
	Champion string                 `json:"champion,omitempty"`
}

type BracketService interface {
	GenerateBracketStage(ctx context.Context, input GenerateStageInput) (*StageView, error)
	RecordBracketResult(ctx context.Context, matchID int, winnerName string) ([]*models.BracketMatch, error)
	GetStage(ctx context.Context, stage string) (*StageView, error)
	ListStages(ctx context.Context) ([]string, error)
}

type bracketService struct {
	store    repositories.Store
	archiver StageArchiver
	locks    *keyedMutex
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewBracketService: archiver может быть nil, тогда итоги не архивируются.
func NewBracketService(store repositories.Store, archiver StageArchiver, notifier Notifier, logger *slog.Logger) BracketService {
	return &bracketService{
		store:    store,
		archiver: archiver,
		locks:    newKeyedMutex(),
		notifier: notifierOrNoop(notifier),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// championOf returns the winner of the stage's terminal node, if played.
func championOf(matches []*models.BracketMatch) string {
	for _, m := range matches {
		if m.IsTerminal() && m.IsPlayed {
			return m.WinnerName
		}
	}
	return ""
}

func (s *bracketService) GenerateBracketStage(ctx context.Context, input GenerateStageInput) (*StageView, error) {
	if input.Stage == "" {
		return nil, ErrStageNameRequired
	}
	gen, err := brackets.NewGenerator(input.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := stageLockKey(input.Stage)
	unlock := s.locks.Lock(key)
	defer unlock()

	var created []*models.BracketMatch
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}

		seeds, err := s.resolveSeeds(ctx, tx, input)
		if err != nil {
			return err
		}
		if input.Size != 0 && input.Size != len(seeds) {
			return fmt.Errorf("%w: size %d, got %d teams", ErrInvalidSeedCount, input.Size, len(seeds))
		}

		nodes, err := gen.GenerateBracket(ctx, brackets.GenerateBracketParams{Stage: input.Stage, Seeds: seeds})
		if err != nil {
			if errors.Is(err, brackets.ErrUnsupportedSize) || errors.Is(err, brackets.ErrDuplicateSeed) {
				return fmt.Errorf("%w: %s: %v", ErrInvalidSeedCount, gen.GetName(), err)
			}
			return err
		}

		if err := tx.Brackets().DeleteStage(ctx, input.Stage); err != nil {
			return err
		}

		// Первый проход: создаем все матчи и запоминаем их ID по UID.
		ids := make(map[string]int, len(nodes))
		for _, node := range nodes {
			m := node.ToModel(input.Stage)
			if err := tx.Brackets().Create(ctx, m); err != nil {
				return fmt.Errorf("failed to create bracket match %s: %w", node.UID, err)
			}
			ids[node.UID] = m.ID
		}

		// Второй проход: проставляем ссылки на следующие матчи.
		for _, node := range nodes {
			if node.WinnerTo == nil && node.LoserTo == nil {
				continue
			}
			var next, winnerSlot, loserNext, loserSlot *int
			if node.WinnerTo != nil {
				id, slot := ids[node.WinnerTo.UID], node.WinnerTo.Slot
				next, winnerSlot = &id, &slot
			}
			if node.LoserTo != nil {
				id, slot := ids[node.LoserTo.UID], node.LoserTo.Slot
				loserNext, loserSlot = &id, &slot
			}
			if err := tx.Brackets().UpdateNextMatchInfo(ctx, ids[node.UID], next, winnerSlot, loserNext, loserSlot); err != nil {
				return err
			}
		}

		created, err = tx.Brackets().ListByStage(ctx, input.Stage)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bracket stage generated",
		slog.String("stage", input.Stage),
		slog.String("format", string(input.Format)),
		slog.Int("matches", len(created)))
	view := &StageView{Stage: input.Stage, Matches: created}
	publish(s.notifier, brackets.StageRoom(input.Stage), brackets.MessageBracketUpdated, view)
	return view, nil
}

// resolveSeeds returns the explicit seed list or builds one from the groups.
func (s *bracketService) resolveSeeds(ctx context.Context, tx repositories.Store, input GenerateStageInput) ([]string, error) {
	if input.FromGroups == nil {
		for _, name := range input.Seeds {
			if _, err := tx.Teams().GetByName(ctx, name); err != nil {
				if errors.Is(err, repositories.ErrTeamNotFound) {
					return nil, fmt.Errorf("%w: %q is not registered", ErrUnknownTeam, name)
				}
				return nil, err
			}
		}
		return input.Seeds, nil
	}

	var seeds []string
	if input.FromGroups.IncludeDirectSeeds {
		teams, err := tx.Teams().List(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range teams {
			if t.DirectSeed {
				seeds = append(seeds, t.Name)
			}
		}
	}

	groups, err := tx.Groups().List(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no groups to qualify from", ErrInsufficientTeams)
	}
	standings := make(map[string][]*models.Standing, len(groups))
	for _, g := range groups {
		rows, err := rankedStandings(ctx, tx, g.GroupName)
		if err != nil {
			return nil, err
		}
		standings[g.GroupName] = rows
	}

	// разведение групп идет по всему списку вместе с прямыми посевами
	all, err := brackets.CrossSeed(seeds, standings, input.FromGroups.PerGroup)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughQualifiers) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientTeams, err)
		}
		return nil, err
	}
	return all, nil
}

func (s *bracketService) RecordBracketResult(ctx context.Context, matchID int, winnerName string) ([]*models.BracketMatch, error) {
	current, err := s.store.Brackets().GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	key := stageLockKey(current.Stage)
	unlock := s.locks.Lock(key)
	defer unlock()

	var changed []*models.BracketMatch
	var terminal bool
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}
		m, err := tx.Brackets().GetByID(ctx, matchID)
		if err != nil {
			return handleRepositoryError(err)
		}
		switch {
		case m.IsPlayed:
			return fmt.Errorf("%w: %s", ErrAlreadyPlayed, m.UID)
		case !m.Ready():
			return fmt.Errorf("%w: %s", ErrBracketMatchNotReady, m.UID)
		case !m.HasTeam(winnerName):
			return fmt.Errorf("%w: %q in %s", ErrInvalidWinner, winnerName, m.UID)
		}

		loserName := m.Team1Name
		if loserName == winnerName {
			loserName = m.Team2Name
		}
		playedAt := s.now()
		m.WinnerName = winnerName
		m.LoserName = loserName
		m.IsPlayed = true
		m.PlayedAt = &playedAt
		if err := tx.Brackets().Update(ctx, m); err != nil {
			return err
		}
		changed = append(changed, m)

		if m.NextMatchID != nil && m.WinnerToSlot != nil {
			next, err := advance(ctx, tx, *m.NextMatchID, *m.WinnerToSlot, winnerName)
			if err != nil {
				return err
			}
			changed = append(changed, next)
		}
		if m.LoserNextMatchID != nil && m.LoserToSlot != nil {
			next, err := advance(ctx, tx, *m.LoserNextMatchID, *m.LoserToSlot, loserName)
			if err != nil {
				return err
			}
			changed = append(changed, next)
		}
		terminal = m.IsTerminal()
		return nil
	})
	if err != nil {
		return nil, err
	}

	played := changed[0]
	s.logger.Info("bracket result recorded",
		slog.String("stage", played.Stage),
		slog.String("match", played.UID),
		slog.String("winner", played.WinnerName))
	publish(s.notifier, brackets.StageRoom(played.Stage), brackets.MessageBracketUpdated, changed)

	if terminal {
		s.logger.Info("stage completed", slog.String("stage", played.Stage), slog.String("champion", played.WinnerName))
		publish(s.notifier, brackets.StageRoom(played.Stage), brackets.MessageStageCompleted,
			map[string]string{"stage": played.Stage, "champion": played.WinnerName})
		if s.archiver != nil {
			// ошибка архива не отменяет записанный результат
			if _, err := s.archiver.ArchiveStage(ctx, played.Stage); err != nil {
				s.logger.Error("stage archive failed", slog.String("stage", played.Stage), slog.Any("error", err))
			}
		}
	}
	return changed, nil
}

// advance пишет команду в слот следующего матча в той же транзакции.
func advance(ctx context.Context, tx repositories.Store, matchID, slot int, teamName string) (*models.BracketMatch, error) {
	next, err := tx.Brackets().GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load next bracket match %d: %w", matchID, err)
	}
	if err := next.SetSlot(slot, teamName); err != nil {
		return nil, err
	}
	if err := tx.Brackets().Update(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *bracketService) GetStage(ctx context.Context, stage string) (*StageView, error) {
	matches, err := s.store.Brackets().ListByStage(ctx, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", stage, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStageNotFound, stage)
	}
	return &StageView{Stage: stage, Matches: matches, Champion: championOf(matches)}, nil
}

func (s *bracketService) ListStages(ctx context.Context) ([]string, error) {
	return s.store.Brackets().ListStages(ctx)
}
