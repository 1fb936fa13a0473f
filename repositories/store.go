package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/cs2-arena/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name already exists")
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchPairConflict     = errors.New("pair already has a match in this group")
	ErrStandingNotFound      = errors.New("standing not found")
	ErrGroupNotFound         = errors.New("group not found")
	ErrBracketMatchNotFound  = errors.New("bracket match not found")
	ErrLockOutsideTx         = errors.New("lock requested outside of a transaction")
	ErrBracketUIDConflict    = errors.New("bracket match uid already exists in stage")
	ErrStandingTeamNameEmpty = errors.New("standing team name is empty")
)

// Store groups the repositories behind one transactional boundary. Both the
// Postgres and the in-memory backend implement it, so ledger logic lives once
// above this interface.
type Store interface {
	Teams() TeamRepository
	Matches() MatchRepository
	Standings() StandingRepository
	Groups() GroupRepository
	Brackets() BracketRepository

	// WithTx runs fn against a transactional view. Nothing fn writes is visible
	// to other readers until fn returns nil. Nested calls reuse the outer tx.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Lock takes a lock on key held until the surrounding tx ends.
	Lock(ctx context.Context, key string) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByGroup(ctx context.Context, groupName string) ([]*models.Match, error)
	ListByTeam(ctx context.Context, teamName string) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	DeleteByGroup(ctx context.Context, groupName string) error
}

// StandingRepository stores one row per (group, team) key.
type StandingRepository interface {
	Get(ctx context.Context, groupName, teamName string) (*models.Standing, error)
	Upsert(ctx context.Context, standing *models.Standing) error
	Delete(ctx context.Context, groupName, teamName string) error
	// ListByGroup returns rows in insertion order.
	ListByGroup(ctx context.Context, groupName string) ([]*models.Standing, error)
	ListGroupNames(ctx context.Context) ([]string, error)
	DeleteByGroup(ctx context.Context, groupName string) error
}

type GroupRepository interface {
	ReplaceAll(ctx context.Context, groups []models.GroupConfiguration) error
	List(ctx context.Context) ([]models.GroupConfiguration, error)
	Get(ctx context.Context, groupName string) (*models.GroupConfiguration, error)
	RemoveTeam(ctx context.Context, teamName string) error
}

type BracketRepository interface {
	Create(ctx context.Context, match *models.BracketMatch) error
	GetByID(ctx context.Context, id int) (*models.BracketMatch, error)
	ListByStage(ctx context.Context, stage string) ([]*models.BracketMatch, error)
	ListStages(ctx context.Context) ([]string, error)
	Update(ctx context.Context, match *models.BracketMatch) error
	UpdateNextMatchInfo(ctx context.Context, matchID int, nextMatchID, winnerToSlot, loserNextMatchID, loserToSlot *int) error
	DeleteStage(ctx context.Context, stage string) error
}
