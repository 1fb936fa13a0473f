package repositories

import (
	"context"
	"fmt"

	"github.com/Dosada05/cs2-arena/models"
)

type postgresGroupRepository struct {
	exec SQLExecutor
}

func NewPostgresGroupRepository(exec SQLExecutor) GroupRepository {
	return &postgresGroupRepository{exec: exec}
}

// ReplaceAll удаляет все текущие группы и записывает новые. Вызывать внутри транзакции.
func (r *postgresGroupRepository) ReplaceAll(ctx context.Context, groups []models.GroupConfiguration) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM group_members`); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}

	query := `INSERT INTO group_members (group_name, team_id, team_name, seat) VALUES ($1, $2, $3, $4)`
	for _, g := range groups {
		for seat, m := range g.Members {
			if _, err := r.exec.ExecContext(ctx, query, g.GroupName, m.TeamID, m.TeamName, seat+1); err != nil {
				return fmt.Errorf("failed to insert member %s into group %s: %w", m.TeamName, g.GroupName, err)
			}
		}
	}
	return nil
}

func (r *postgresGroupRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.GroupConfiguration, error) {
	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	groups := make([]models.GroupConfiguration, 0)
	for rows.Next() {
		var groupName string
		var m models.GroupMember
		if err := rows.Scan(&groupName, &m.TeamID, &m.TeamName); err != nil {
			return nil, err
		}
		if n := len(groups); n == 0 || groups[n-1].GroupName != groupName {
			groups = append(groups, models.GroupConfiguration{GroupName: groupName})
		}
		last := &groups[len(groups)-1]
		last.Members = append(last.Members, m)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) List(ctx context.Context) ([]models.GroupConfiguration, error) {
	return r.query(ctx, `SELECT group_name, team_id, team_name FROM group_members ORDER BY group_name ASC, seat ASC`)
}

func (r *postgresGroupRepository) Get(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	groups, err := r.query(ctx,
		`SELECT group_name, team_id, team_name FROM group_members WHERE group_name = $1 ORDER BY seat ASC`, groupName)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrGroupNotFound
	}
	return &groups[0], nil
}

func (r *postgresGroupRepository) RemoveTeam(ctx context.Context, teamName string) error {
	if _, err := r.exec.ExecContext(ctx, `DELETE FROM group_members WHERE team_name = $1`, teamName); err != nil {
		return fmt.Errorf("failed to remove team %s from groups: %w", teamName, err)
	}
	return nil
}
