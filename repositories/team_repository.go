package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

type postgresTeamRepository struct {
	exec SQLExecutor
}

func NewPostgresTeamRepository(exec SQLExecutor) TeamRepository {
	return &postgresTeamRepository{exec: exec}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, direct_seed)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := r.exec.QueryRowContext(ctx, query, team.Name, team.DirectSeed).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return uniqueViolation(err, "teams_name_key", ErrTeamNameConflict)
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.Name, &t.DirectSeed, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, direct_seed, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.exec.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT id, name, direct_seed, created_at FROM teams WHERE name = $1`
	return r.scanTeam(r.exec.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT id, name, direct_seed, created_at FROM teams ORDER BY id ASC`
	rows, err := r.exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.exec.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
