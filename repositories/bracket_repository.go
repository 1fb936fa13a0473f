package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

const bracketColumns = `id, stage, uid, bracket_type, bracket_round, bracket_position,
	team1_name, team2_name, team1_placeholder, team2_placeholder, winner_name, loser_name,
	is_played, played_at, next_match_id, winner_to_slot, loser_next_match_id, loser_to_slot`

type postgresBracketRepository struct {
	exec SQLExecutor
}

func NewPostgresBracketRepository(exec SQLExecutor) BracketRepository {
	return &postgresBracketRepository{exec: exec}
}

func (r *postgresBracketRepository) Create(ctx context.Context, match *models.BracketMatch) error {
	query := `
		INSERT INTO bracket_matches
			(stage, uid, bracket_type, bracket_round, bracket_position,
			 team1_name, team2_name, team1_placeholder, team2_placeholder,
			 next_match_id, winner_to_slot, loser_next_match_id, loser_to_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.exec.QueryRowContext(ctx, query,
		match.Stage,
		match.UID,
		match.BracketType,
		match.BracketRound,
		match.BracketPosition,
		match.Team1Name,
		match.Team2Name,
		match.Team1Placeholder,
		match.Team2Placeholder,
		match.NextMatchID,
		match.WinnerToSlot,
		match.LoserNextMatchID,
		match.LoserToSlot,
	).Scan(&match.ID)
	if err != nil {
		return uniqueViolation(err, "bracket_matches_stage_uid_key", ErrBracketUIDConflict)
	}
	return nil
}

func (r *postgresBracketRepository) scanBracketMatch(row interface{ Scan(...interface{}) error }) (*models.BracketMatch, error) {
	m := &models.BracketMatch{}
	err := row.Scan(
		&m.ID, &m.Stage, &m.UID, &m.BracketType, &m.BracketRound, &m.BracketPosition,
		&m.Team1Name, &m.Team2Name, &m.Team1Placeholder, &m.Team2Placeholder, &m.WinnerName, &m.LoserName,
		&m.IsPlayed, &m.PlayedAt, &m.NextMatchID, &m.WinnerToSlot, &m.LoserNextMatchID, &m.LoserToSlot,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresBracketRepository) GetByID(ctx context.Context, id int) (*models.BracketMatch, error) {
	query := `SELECT ` + bracketColumns + ` FROM bracket_matches WHERE id = $1`
	return r.scanBracketMatch(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresBracketRepository) ListByStage(ctx context.Context, stage string) ([]*models.BracketMatch, error) {
	query := `SELECT ` + bracketColumns + ` FROM bracket_matches WHERE stage = $1 ORDER BY id ASC`
	rows, err := r.exec.QueryContext(ctx, query, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matches of stage %s: %w", stage, err)
	}
	defer rows.Close()

	matches := make([]*models.BracketMatch, 0)
	for rows.Next() {
		m, err := r.scanBracketMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresBracketRepository) ListStages(ctx context.Context) ([]string, error) {
	rows, err := r.exec.QueryContext(ctx, `SELECT DISTINCT stage FROM bracket_matches ORDER BY stage ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	stages := make([]string, 0)
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, rows.Err()
}

func (r *postgresBracketRepository) Update(ctx context.Context, match *models.BracketMatch) error {
	query := `
		UPDATE bracket_matches SET
			team1_name = $1, team2_name = $2, winner_name = $3, loser_name = $4,
			is_played = $5, played_at = $6
		WHERE id = $7`
	result, err := r.exec.ExecContext(ctx, query,
		match.Team1Name, match.Team2Name, match.WinnerName, match.LoserName,
		match.IsPlayed, match.PlayedAt, match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bracket match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) UpdateNextMatchInfo(ctx context.Context, matchID int, nextMatchID, winnerToSlot, loserNextMatchID, loserToSlot *int) error {
	query := `
		UPDATE bracket_matches SET
			next_match_id = $1, winner_to_slot = $2, loser_next_match_id = $3, loser_to_slot = $4
		WHERE id = $5`
	result, err := r.exec.ExecContext(ctx, query, nextMatchID, winnerToSlot, loserNextMatchID, loserToSlot, matchID)
	if err != nil {
		return fmt.Errorf("UpdateNextMatchInfo: failed to execute query for bracket match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketRepository) DeleteStage(ctx context.Context, stage string) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM bracket_matches WHERE stage = $1`, stage); err != nil {
		return fmt.Errorf("failed to delete stage %s: %w", stage, err)
	}
	return nil
}
