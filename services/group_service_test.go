package services

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/models"
	"github.com/Dosada05/cs2-arena/repositories"
)

func makeTeams(n, direct int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{ID: i + 1, Name: fmt.Sprintf("T%02d", i+1), DirectSeed: i < direct}
	}
	return teams
}

func TestGroupName(t *testing.T) {
	assert.Equal(t, "A", GroupName(0))
	assert.Equal(t, "H", GroupName(7))
	assert.Equal(t, "Z", GroupName(25))
	assert.Equal(t, "AA", GroupName(26))
	assert.Equal(t, "AB", GroupName(27))
}

func TestDistribute_ExcludesDirectSeeds(t *testing.T) {
	groups, err := Distribute(makeTeams(10, 2), 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	placed := map[string]bool{}
	for _, g := range groups {
		assert.Len(t, g.Members, 4)
		for _, m := range g.Members {
			assert.False(t, placed[m.TeamName], "%s placed twice", m.TeamName)
			placed[m.TeamName] = true
		}
	}
	assert.Len(t, placed, 8)
	assert.False(t, placed["T01"])
	assert.False(t, placed["T02"])
	assert.Equal(t, "A", groups[0].GroupName)
	assert.Equal(t, "B", groups[1].GroupName)
}

func TestDistribute_Deterministic(t *testing.T) {
	first, err := Distribute(makeTeams(12, 0), 3, rand.New(rand.NewSource(2024)))
	require.NoError(t, err)
	second, err := Distribute(makeTeams(12, 0), 3, rand.New(rand.NewSource(2024)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDistribute_UnevenSizes(t *testing.T) {
	groups, err := Distribute(makeTeams(7, 0), 3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Len(t, groups[0].Members, 3)
	assert.Len(t, groups[1].Members, 2)
	assert.Len(t, groups[2].Members, 2)
}

func TestDistribute_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Distribute(makeTeams(4, 0), 0, rng)
	assert.ErrorIs(t, err, ErrInvalidGroupCount)

	_, err = Distribute(makeTeams(4, 2), 3, rng)
	assert.ErrorIs(t, err, ErrInsufficientTeams)

	_, err = Distribute(makeTeams(2, 2), 1, rng)
	assert.ErrorIs(t, err, ErrInsufficientTeams)
}

func TestGroupService_DistributeResetsGroups(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	notifier := &recordingNotifier{}

	for _, team := range makeTeams(10, 2) {
		require.NoError(t, store.Teams().Create(ctx, &models.Team{Name: team.Name, DirectSeed: team.DirectSeed}))
	}
	groupSvc := NewGroupService(store, rand.New(rand.NewSource(5)), notifier, discardLogger())
	matchSvc := NewMatchService(store, DefaultScoringRules(), nil, discardLogger())

	groups, err := groupSvc.DistributeGroups(ctx, 2)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	a := groups[0].TeamNames()
	_, err = matchSvc.SubmitMatchResult(ctx, result("A", a[0], a[1], 16, 8))
	require.NoError(t, err)

	groups, err = groupSvc.DistributeGroups(ctx, 2)
	require.NoError(t, err)

	placed := 0
	for _, g := range groups {
		placed += len(g.Members)
		assert.False(t, g.Has("T01"))
		assert.False(t, g.Has("T02"))

		rows, err := matchSvc.GetStandings(ctx, g.GroupName)
		require.NoError(t, err)
		assert.Empty(t, rows, "group %s keeps standings after redistribution", g.GroupName)

		matches, err := matchSvc.ListMatches(ctx, g.GroupName)
		require.NoError(t, err)
		assert.Empty(t, matches)
	}
	assert.Equal(t, 8, placed)

	stored, err := groupSvc.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, groups, stored)
	assert.Contains(t, notifier.types(brackets.GroupRoom("A")), brackets.MessageGroupsUpdated)

	// прежних групп больше нет
	_, err = groupSvc.DistributeGroups(ctx, 1)
	require.NoError(t, err)
	_, err = groupSvc.GetGroup(ctx, "B")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupService_DistributeFailureKeepsGroups(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	seedGroup(t, store, "A", "X", "Y")
	svc := NewGroupService(store, rand.New(rand.NewSource(1)), nil, discardLogger())

	_, err := svc.DistributeGroups(ctx, 5)
	assert.ErrorIs(t, err, ErrInsufficientTeams)

	g, err := svc.GetGroup(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, g.TeamNames())
}

func TestGroupService_Schedule(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	seedGroup(t, store, "A", "X", "Y", "Z", "W")
	groupSvc := NewGroupService(store, rand.New(rand.NewSource(1)), nil, discardLogger())
	matchSvc := NewMatchService(store, DefaultScoringRules(), nil, discardLogger())

	_, err := matchSvc.SubmitMatchResult(ctx, result("A", "Y", "X", 16, 4))
	require.NoError(t, err)

	fixtures, err := groupSvc.GroupSchedule(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, fixtures, 6)

	played := 0
	for _, f := range fixtures {
		if f.Played {
			played++
			assert.ElementsMatch(t, []string{"X", "Y"}, []string{f.Team1, f.Team2})
			assert.NotZero(t, f.MatchID)
		}
	}
	assert.Equal(t, 1, played)

	_, err = groupSvc.GroupSchedule(ctx, "Q")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupService_SwissPairings(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	seedGroup(t, store, "A", "X", "Y", "Z", "W")
	groupSvc := NewGroupService(store, rand.New(rand.NewSource(1)), nil, discardLogger())
	matchSvc := NewMatchService(store, DefaultScoringRules(), nil, discardLogger())

	// до матчей пары идут по порядку мест
	round, err := groupSvc.SwissPairings(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []brackets.SwissPair{{Team1: "X", Team2: "Y"}, {Team1: "Z", Team2: "W"}}, round.Pairs)

	_, err = matchSvc.SubmitMatchResult(ctx, result("A", "X", "Y", 16, 2))
	require.NoError(t, err)
	_, err = matchSvc.SubmitMatchResult(ctx, result("A", "W", "Z", 16, 10))
	require.NoError(t, err)

	// X и W выиграли, но X-Y и W-Z уже сыграны
	round, err = groupSvc.SwissPairings(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []brackets.SwissPair{{Team1: "X", Team2: "W"}, {Team1: "Z", Team2: "Y"}}, round.Pairs)
}
