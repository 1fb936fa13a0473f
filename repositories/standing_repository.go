package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

const standingColumns = `id, group_name, team_name, matches_played, wins, losses, rounds_won, rounds_lost, round_difference, points, position`

type postgresStandingRepository struct {
	exec SQLExecutor
}

func NewPostgresStandingRepository(exec SQLExecutor) StandingRepository {
	return &postgresStandingRepository{exec: exec}
}

func (r *postgresStandingRepository) scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := rowScanner.Scan(
		&s.ID, &s.GroupName, &s.TeamName, &s.MatchesPlayed, &s.Wins, &s.Losses,
		&s.RoundsWon, &s.RoundsLost, &s.RoundDifference, &s.Points, &s.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) Get(ctx context.Context, groupName, teamName string) (*models.Standing, error) {
	query := `SELECT ` + standingColumns + ` FROM standings WHERE group_name = $1 AND team_name = $2`
	return r.scanStanding(r.exec.QueryRowContext(ctx, query, groupName, teamName))
}

// Upsert пишет строку по ключу (group_name, team_name); id сохраняется при обновлении.
func (r *postgresStandingRepository) Upsert(ctx context.Context, standing *models.Standing) error {
	if standing.TeamName == "" {
		return ErrStandingTeamNameEmpty
	}
	query := `
		INSERT INTO standings
			(group_name, team_name, matches_played, wins, losses, rounds_won, rounds_lost, round_difference, points, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (group_name, team_name) DO UPDATE SET
			matches_played = EXCLUDED.matches_played,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			rounds_won = EXCLUDED.rounds_won,
			rounds_lost = EXCLUDED.rounds_lost,
			round_difference = EXCLUDED.round_difference,
			points = EXCLUDED.points,
			position = EXCLUDED.position,
			updated_at = NOW()
		RETURNING id`
	err := r.exec.QueryRowContext(ctx, query,
		standing.GroupName, standing.TeamName, standing.MatchesPlayed, standing.Wins, standing.Losses,
		standing.RoundsWon, standing.RoundsLost, standing.RoundDifference, standing.Points, standing.Position,
	).Scan(&standing.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert standing %s/%s: %w", standing.GroupName, standing.TeamName, err)
	}
	return nil
}

func (r *postgresStandingRepository) Delete(ctx context.Context, groupName, teamName string) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM standings WHERE group_name = $1 AND team_name = $2`, groupName, teamName)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.Standing, error) {
	query := `SELECT ` + standingColumns + ` FROM standings WHERE group_name = $1 ORDER BY id ASC`
	rows, err := r.exec.QueryContext(ctx, query, groupName)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings of group %s: %w", groupName, err)
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, errScan := r.scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) ListGroupNames(ctx context.Context) ([]string, error) {
	rows, err := r.exec.QueryContext(ctx, `SELECT DISTINCT group_name FROM standings ORDER BY group_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list standing groups: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *postgresStandingRepository) DeleteByGroup(ctx context.Context, groupName string) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM standings WHERE group_name = $1`, groupName); err != nil {
		return fmt.Errorf("failed to delete standings of group %s: %w", groupName, err)
	}
	return nil
}
