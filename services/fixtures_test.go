package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingNotifier collects every published message.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
}

func (n *recordingNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		n.messages = append(n.messages, msg)
	}
}

func (n *recordingNotifier) types(room string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.messages {
		if m.RoomID == room {
			out = append(out, m.Type)
		}
	}
	return out
}

// seedGroup registers teams and puts them into one group in the given order.
func seedGroup(t *testing.T, store repositories.Store, group string, teams ...string) {
	t.Helper()
	ctx := context.Background()

	existing, err := store.Groups().List(ctx)
	require.NoError(t, err)

	cfg := models.GroupConfiguration{GroupName: group}
	for _, name := range teams {
		team, err := store.Teams().GetByName(ctx, name)
		if err != nil {
			team = &models.Team{Name: name}
			require.NoError(t, store.Teams().Create(ctx, team))
		}
		cfg.Members = append(cfg.Members, models.GroupMember{TeamID: team.ID, TeamName: team.Name})
	}
	require.NoError(t, store.Groups().ReplaceAll(ctx, append(existing, cfg)))
}

func registerTeams(t *testing.T, store repositories.Store, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, store.Teams().Create(context.Background(), &models.Team{Name: name}))
	}
}

func result(group, t1, t2 string, s1, s2 int) MatchInput {
	return MatchInput{GroupName: group, Team1Name: t1, Team2Name: t2, Team1Score: s1, Team2Score: s2}
}

func teamOrder(rows []*models.Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TeamName
	}
	return out
}

func rowOf(t *testing.T, rows []*models.Standing, team string) *models.Standing {
	t.Helper()
	for _, r := range rows {
		if r.TeamName == team {
			return r
		}
	}
	t.Fatalf("no standing for %s", team)
	return nil
}

func bracketByUID(t *testing.T, matches []*models.BracketMatch, uid string) *models.BracketMatch {
	t.Helper()
	for _, m := range matches {
		if m.UID == uid {
			return m
		}
	}
	t.Fatalf("no bracket match %s", uid)
	return nil
}
