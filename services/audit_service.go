package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

// LedgerDrift is a team whose stored row differs from the replay of its
// group's matches. A nil side means the row is missing there.
type LedgerDrift struct {
	GroupName string           `json:"group_name"`
	TeamName  string           `json:"team_name"`
	Persisted *models.Standing `json:"persisted,omitempty"`
	Expected  *models.Standing `json:"expected,omitempty"`
}

type AuditReport struct {
	CheckedAt time.Time     `json:"checked_at"`
	Groups    int           `json:"groups"`
	Drifts    []LedgerDrift `json:"drifts"`
}

func (r *AuditReport) Healthy() bool {
	return len(r.Drifts) == 0
}

type AuditService interface {
	RunAudit(ctx context.Context) (*AuditReport, error)
}

type auditService struct {
	store  repositories.Store
	ledger StandingsLedger
	logger *slog.Logger
	now    func() time.Time
}

func NewAuditService(store repositories.Store, logger *slog.Logger) AuditService {
	return &auditService{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RunAudit сверяет сохраненную таблицу каждой группы с пересчетом ее матчей с нуля.
func (s *auditService) RunAudit(ctx context.Context) (*AuditReport, error) {
	names, err := knownGroupNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{CheckedAt: s.now(), Groups: len(names), Drifts: []LedgerDrift{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			drifts, err := s.auditGroup(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Drifts = append(report.Drifts, drifts...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Drifts, func(i, j int) bool {
		a, b := report.Drifts[i], report.Drifts[j]
		if a.GroupName != b.GroupName {
			return a.GroupName < b.GroupName
		}
		return a.TeamName < b.TeamName
	})

	if report.Healthy() {
		s.logger.Info("ledger audit passed", slog.Int("groups", report.Groups))
	} else {
		s.logger.Warn("ledger audit found drift",
			slog.Int("groups", report.Groups),
			slog.Int("drifts", len(report.Drifts)))
	}
	return report, nil
}

func (s *auditService) auditGroup(ctx context.Context, group string) ([]LedgerDrift, error) {
	var rows []*models.Standing
	var matches []*models.Match
	// читаем в одной транзакции, чтобы таблица и матчи были согласованы
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Lock(ctx, groupLockKey(group)); err != nil {
			return err
		}
		var err error
		if rows, err = tx.Standings().ListByGroup(ctx, group); err != nil {
			return err
		}
		matches, err = tx.Matches().ListByGroup(ctx, group)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read group %s for audit: %w", group, err)
	}
	return compareLedger(group, rows, s.ledger.Replay(group, matches)), nil
}

func compareLedger(group string, rows []*models.Standing, expected map[string]models.Standing) []LedgerDrift {
	var drifts []LedgerDrift
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		seen[row.TeamName] = true
		want, ok := expected[row.TeamName]
		if !ok {
			drifts = append(drifts, LedgerDrift{GroupName: group, TeamName: row.TeamName, Persisted: row})
			continue
		}
		if row.Totals() != want.Totals() || row.Position != want.Position {
			want := want
			drifts = append(drifts, LedgerDrift{GroupName: group, TeamName: row.TeamName, Persisted: row, Expected: &want})
		}
	}
	for team, want := range expected {
		if !seen[team] {
			want := want
			drifts = append(drifts, LedgerDrift{GroupName: group, TeamName: team, Expected: &want})
		}
	}
	return drifts
}
