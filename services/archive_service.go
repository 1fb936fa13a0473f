package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
	"github.com/Dosada05/cs2-arena/storage"
)

// StageArchiver сохраняет итог завершенной стадии.
type StageArchiver interface {
	ArchiveStage(ctx context.Context, stage string) (*storage.UploadResult, error)
}

// StageSnapshot is the archived document of a finished stage.
type StageSnapshot struct {
	Stage      string                 `json:"stage"`
	Champion   string                 `json:"champion"`
	ArchivedAt time.Time              `json:"archived_at"`
	Matches    []*models.BracketMatch `json:"matches"`
	Groups     []GroupStandings       `json:"groups"`
}

type archiveService struct {
	store    repositories.Store
	uploader storage.FileUploader
	breaker  *gobreaker.CircuitBreaker
	logger   *slog.Logger
	now      func() time.Time
}

func NewArchiveService(store repositories.Store, uploader storage.FileUploader, logger *slog.Logger) StageArchiver {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "results-archive",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("archive circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from_state", from.String()),
				slog.String("to_state", to.String()))
		},
	})
	return &archiveService{
		store:    store,
		uploader: uploader,
		breaker:  cb,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func archiveKey(stage string) string {
	return fmt.Sprintf("results/%s/%s.json", stage, uuid.NewString())
}

func (s *archiveService) ArchiveStage(ctx context.Context, stage string) (*storage.UploadResult, error) {
	matches, err := s.store.Brackets().ListByStage(ctx, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", stage, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStageNotFound, stage)
	}

	names, err := knownGroupNames(ctx, s.store)
	if err != nil {
		return nil, err
	}
	groups := make([]GroupStandings, 0, len(names))
	for _, name := range names {
		rows, err := rankedStandings(ctx, s.store, name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, GroupStandings{GroupName: name, Standings: rows})
	}

	snapshot := StageSnapshot{
		Stage:      stage,
		Champion:   championOf(matches),
		ArchivedAt: s.now(),
		Matches:    matches,
		Groups:     groups,
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot of stage %s: %w", stage, err)
	}

	key := archiveKey(stage)
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	})
	if err != nil {
		s.logger.Error("failed to archive stage", slog.String("stage", stage), slog.Any("error", err))
		return nil, fmt.Errorf("failed to archive stage %s: %w", stage, err)
	}

	result := res.(*storage.UploadResult)
	s.logger.Info("stage archived",
		slog.String("stage", stage),
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return result, nil
}
