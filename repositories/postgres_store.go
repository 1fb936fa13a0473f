package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresStore struct {
	db   *sql.DB
	exec SQLExecutor
	tx   *sql.Tx
}

// NewPostgresStore returns a Store backed by db.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db, exec: db}
}

func (s *postgresStore) Teams() TeamRepository {
	return &postgresTeamRepository{exec: s.exec}
}

func (s *postgresStore) Matches() MatchRepository {
	return &postgresMatchRepository{exec: s.exec}
}

func (s *postgresStore) Standings() StandingRepository {
	return &postgresStandingRepository{exec: s.exec}
}

func (s *postgresStore) Groups() GroupRepository {
	return &postgresGroupRepository{exec: s.exec}
}

func (s *postgresStore) Brackets() BracketRepository {
	return &postgresBracketRepository{exec: s.exec}
}

func (s *postgresStore) WithTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", commitErr)
			}
		}
	}()

	err = fn(&postgresStore{db: s.db, exec: tx, tx: tx})
	return err
}

// Lock берет advisory lock, который Postgres сам отпустит в конце транзакции.
func (s *postgresStore) Lock(ctx context.Context, key string) error {
	if s.tx == nil {
		return ErrLockOutsideTx
	}
	if _, err := s.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to take advisory lock %q: %w", key, err)
	}
	return nil
}
