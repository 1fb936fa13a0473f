package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

const matchColumns = `id, group_name, team1_name, team2_name, team1_score, team2_score, technical_win, technical_winner, created_at`

type postgresMatchRepository struct {
	exec SQLExecutor
}

func NewPostgresMatchRepository(exec SQLExecutor) MatchRepository {
	return &postgresMatchRepository{exec: exec}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(group_name, team1_name, team2_name, team1_score, team2_score, technical_win, technical_winner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.exec.QueryRowContext(ctx, query,
		match.GroupName,
		match.Team1Name,
		match.Team2Name,
		match.Team1Score,
		match.Team2Score,
		match.TechnicalWin,
		match.TechnicalWinner,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return uniqueViolation(err, "matches_group_pair_key", ErrMatchPairConflict)
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.GroupName,
		&m.Team1Name,
		&m.Team2Name,
		&m.Team1Score,
		&m.Team2Score,
		&m.TechnicalWin,
		&m.TechnicalWinner,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := r.scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE group_name = $1 ORDER BY id ASC`
	return r.list(ctx, query, groupName)
}

func (r *postgresMatchRepository) ListByTeam(ctx context.Context, teamName string) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE team1_name = $1 OR team2_name = $1 ORDER BY id ASC`
	return r.list(ctx, query, teamName)
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			team1_name = $1, team2_name = $2, team1_score = $3, team2_score = $4,
			technical_win = $5, technical_winner = $6
		WHERE id = $7`
	result, err := r.exec.ExecContext(ctx, query,
		match.Team1Name,
		match.Team2Name,
		match.Team1Score,
		match.Team2Score,
		match.TechnicalWin,
		match.TechnicalWinner,
		match.ID,
	)
	if err != nil {
		return uniqueViolation(err, "matches_group_pair_key", ErrMatchPairConflict)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByGroup(ctx context.Context, groupName string) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM matches WHERE group_name = $1`, groupName); err != nil {
		return fmt.Errorf("failed to delete matches of group %s: %w", groupName, err)
	}
	return nil
}
