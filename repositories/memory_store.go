package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/cs2-arena/models"
)

type standingKey struct {
	group string
	team  string
}

type memoryState struct {
	nextTeamID     int
	nextMatchID    int
	nextStandingID int
	nextBracketID  int

	teams     map[int]models.Team
	matches   map[int]models.Match
	standings map[standingKey]models.Standing
	groups    []models.GroupConfiguration
	brackets  map[int]models.BracketMatch
}

func newMemoryState() *memoryState {
	return &memoryState{
		teams:     make(map[int]models.Team),
		matches:   make(map[int]models.Match),
		standings: make(map[standingKey]models.Standing),
		brackets:  make(map[int]models.BracketMatch),
	}
}

func (st *memoryState) clone() *memoryState {
	c := &memoryState{
		nextTeamID:     st.nextTeamID,
		nextMatchID:    st.nextMatchID,
		nextStandingID: st.nextStandingID,
		nextBracketID:  st.nextBracketID,
		teams:          make(map[int]models.Team, len(st.teams)),
		matches:        make(map[int]models.Match, len(st.matches)),
		standings:      make(map[standingKey]models.Standing, len(st.standings)),
		groups:         cloneGroups(st.groups),
		brackets:       make(map[int]models.BracketMatch, len(st.brackets)),
	}
	for id, t := range st.teams {
		c.teams[id] = t
	}
	for id, m := range st.matches {
		c.matches[id] = m
	}
	for k, s := range st.standings {
		c.standings[k] = s
	}
	for id, b := range st.brackets {
		c.brackets[id] = cloneBracketMatch(b)
	}
	return c
}

func cloneGroups(groups []models.GroupConfiguration) []models.GroupConfiguration {
	out := make([]models.GroupConfiguration, len(groups))
	for i, g := range groups {
		out[i] = models.GroupConfiguration{
			GroupName: g.GroupName,
			Members:   append([]models.GroupMember(nil), g.Members...),
		}
	}
	return out
}

func cloneBracketMatch(b models.BracketMatch) models.BracketMatch {
	b.NextMatchID = copyIntPtr(b.NextMatchID)
	b.WinnerToSlot = copyIntPtr(b.WinnerToSlot)
	b.LoserNextMatchID = copyIntPtr(b.LoserNextMatchID)
	b.LoserToSlot = copyIntPtr(b.LoserToSlot)
	if b.PlayedAt != nil {
		t := *b.PlayedAt
		b.PlayedAt = &t
	}
	return b
}

// memoryStore keeps everything in maps. Transactions work on a private copy of
// the state that replaces the shared one on commit; txMu lets only one writer
// run at a time.
type memoryStore struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state *memoryState
}

// memoryScope is the Store handed to callers. tx is non-nil inside WithTx.
type memoryScope struct {
	root *memoryStore
	tx   *memoryState
}

// NewMemoryStore returns an empty in-process Store.
func NewMemoryStore() Store {
	return &memoryScope{root: &memoryStore{state: newMemoryState()}}
}

func (s *memoryScope) read(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.root.mu.RLock()
	defer s.root.mu.RUnlock()
	return fn(s.root.state)
}

func (s *memoryScope) write(fn func(st *memoryState) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.root.txMu.Lock()
	defer s.root.txMu.Unlock()

	s.root.mu.RLock()
	work := s.root.state.clone()
	s.root.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}
	s.root.mu.Lock()
	s.root.state = work
	s.root.mu.Unlock()
	return nil
}

func (s *memoryScope) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.root.txMu.Lock()
	defer s.root.txMu.Unlock()

	s.root.mu.RLock()
	work := s.root.state.clone()
	s.root.mu.RUnlock()

	if err := fn(&memoryScope{root: s.root, tx: work}); err != nil {
		return err
	}

	s.root.mu.Lock()
	s.root.state = work
	s.root.mu.Unlock()
	return nil
}

// Lock is a no-op: memory transactions already run one at a time.
func (s *memoryScope) Lock(ctx context.Context, key string) error {
	if s.tx == nil {
		return ErrLockOutsideTx
	}
	return ctx.Err()
}

func (s *memoryScope) Teams() TeamRepository         { return memoryTeamRepository{s} }
func (s *memoryScope) Matches() MatchRepository      { return memoryMatchRepository{s} }
func (s *memoryScope) Standings() StandingRepository { return memoryStandingRepository{s} }
func (s *memoryScope) Groups() GroupRepository       { return memoryGroupRepository{s} }
func (s *memoryScope) Brackets() BracketRepository   { return memoryBracketRepository{s} }

// --- teams ---

type memoryTeamRepository struct{ s *memoryScope }

func (r memoryTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.s.write(func(st *memoryState) error {
		for _, t := range st.teams {
			if t.Name == team.Name {
				return ErrTeamNameConflict
			}
		}
		st.nextTeamID++
		team.ID = st.nextTeamID
		team.CreatedAt = time.Now().UTC()
		st.teams[team.ID] = *team
		return nil
	})
}

func (r memoryTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	var out *models.Team
	err := r.s.read(func(st *memoryState) error {
		t, ok := st.teams[id]
		if !ok {
			return ErrTeamNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r memoryTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	var out *models.Team
	err := r.s.read(func(st *memoryState) error {
		for _, t := range st.teams {
			if t.Name == name {
				t := t
				out = &t
				return nil
			}
		}
		return ErrTeamNotFound
	})
	return out, err
}

func (r memoryTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	teams := make([]*models.Team, 0)
	err := r.s.read(func(st *memoryState) error {
		for _, t := range st.teams {
			t := t
			teams = append(teams, &t)
		}
		return nil
	})
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, err
}

func (r memoryTeamRepository) Delete(ctx context.Context, id int) error {
	return r.s.write(func(st *memoryState) error {
		if _, ok := st.teams[id]; !ok {
			return ErrTeamNotFound
		}
		delete(st.teams, id)
		// group_members.team_id ON DELETE CASCADE
		for i := range st.groups {
			st.groups[i].Members = removeMember(st.groups[i].Members, func(m models.GroupMember) bool { return m.TeamID == id })
		}
		st.groups = dropEmptyGroups(st.groups)
		return nil
	})
}

// --- matches ---

type memoryMatchRepository struct{ s *memoryScope }

func pairTaken(st *memoryState, m *models.Match) bool {
	for id, other := range st.matches {
		if id != m.ID && other.GroupName == m.GroupName && other.IsPair(m.Team1Name, m.Team2Name) {
			return true
		}
	}
	return false
}

func (r memoryMatchRepository) Create(ctx context.Context, match *models.Match) error {
	return r.s.write(func(st *memoryState) error {
		if pairTaken(st, match) {
			return ErrMatchPairConflict
		}
		st.nextMatchID++
		match.ID = st.nextMatchID
		match.CreatedAt = time.Now().UTC()
		st.matches[match.ID] = *match
		return nil
	})
}

func (r memoryMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	var out *models.Match
	err := r.s.read(func(st *memoryState) error {
		m, ok := st.matches[id]
		if !ok {
			return ErrMatchNotFound
		}
		out = &m
		return nil
	})
	return out, err
}

func (r memoryMatchRepository) filter(keep func(m *models.Match) bool) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	err := r.s.read(func(st *memoryState) error {
		for _, m := range st.matches {
			m := m
			if keep(&m) {
				matches = append(matches, &m)
			}
		}
		return nil
	})
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, err
}

func (r memoryMatchRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool { return m.GroupName == groupName })
}

func (r memoryMatchRepository) ListByTeam(ctx context.Context, teamName string) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool { return m.Involves(teamName) })
}

func (r memoryMatchRepository) Update(ctx context.Context, match *models.Match) error {
	return r.s.write(func(st *memoryState) error {
		stored, ok := st.matches[match.ID]
		if !ok {
			return ErrMatchNotFound
		}
		if pairTaken(st, match) {
			return ErrMatchPairConflict
		}
		stored.Team1Name = match.Team1Name
		stored.Team2Name = match.Team2Name
		stored.Team1Score = match.Team1Score
		stored.Team2Score = match.Team2Score
		stored.TechnicalWin = match.TechnicalWin
		stored.TechnicalWinner = match.TechnicalWinner
		st.matches[match.ID] = stored
		return nil
	})
}

func (r memoryMatchRepository) Delete(ctx context.Context, id int) error {
	return r.s.write(func(st *memoryState) error {
		if _, ok := st.matches[id]; !ok {
			return ErrMatchNotFound
		}
		delete(st.matches, id)
		return nil
	})
}

func (r memoryMatchRepository) DeleteByGroup(ctx context.Context, groupName string) error {
	return r.s.write(func(st *memoryState) error {
		for id, m := range st.matches {
			if m.GroupName == groupName {
				delete(st.matches, id)
			}
		}
		return nil
	})
}

// --- standings ---

type memoryStandingRepository struct{ s *memoryScope }

func (r memoryStandingRepository) Get(ctx context.Context, groupName, teamName string) (*models.Standing, error) {
	var out *models.Standing
	err := r.s.read(func(st *memoryState) error {
		s, ok := st.standings[standingKey{groupName, teamName}]
		if !ok {
			return ErrStandingNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r memoryStandingRepository) Upsert(ctx context.Context, standing *models.Standing) error {
	if standing.TeamName == "" {
		return ErrStandingTeamNameEmpty
	}
	return r.s.write(func(st *memoryState) error {
		key := standingKey{standing.GroupName, standing.TeamName}
		if existing, ok := st.standings[key]; ok {
			standing.ID = existing.ID
		} else {
			st.nextStandingID++
			standing.ID = st.nextStandingID
		}
		st.standings[key] = *standing
		return nil
	})
}

func (r memoryStandingRepository) Delete(ctx context.Context, groupName, teamName string) error {
	return r.s.write(func(st *memoryState) error {
		key := standingKey{groupName, teamName}
		if _, ok := st.standings[key]; !ok {
			return ErrStandingNotFound
		}
		delete(st.standings, key)
		return nil
	})
}

func (r memoryStandingRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.Standing, error) {
	standings := make([]*models.Standing, 0)
	err := r.s.read(func(st *memoryState) error {
		for k, s := range st.standings {
			if k.group == groupName {
				s := s
				standings = append(standings, &s)
			}
		}
		return nil
	})
	sort.Slice(standings, func(i, j int) bool { return standings[i].ID < standings[j].ID })
	return standings, err
}

func (r memoryStandingRepository) ListGroupNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := r.s.read(func(st *memoryState) error {
		seen := make(map[string]struct{})
		for k := range st.standings {
			if _, ok := seen[k.group]; !ok {
				seen[k.group] = struct{}{}
				names = append(names, k.group)
			}
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

func (r memoryStandingRepository) DeleteByGroup(ctx context.Context, groupName string) error {
	return r.s.write(func(st *memoryState) error {
		for k := range st.standings {
			if k.group == groupName {
				delete(st.standings, k)
			}
		}
		return nil
	})
}

// --- groups ---

type memoryGroupRepository struct{ s *memoryScope }

func (r memoryGroupRepository) ReplaceAll(ctx context.Context, groups []models.GroupConfiguration) error {
	return r.s.write(func(st *memoryState) error {
		st.groups = cloneGroups(groups)
		sort.SliceStable(st.groups, func(i, j int) bool { return st.groups[i].GroupName < st.groups[j].GroupName })
		st.groups = dropEmptyGroups(st.groups)
		return nil
	})
}

func (r memoryGroupRepository) List(ctx context.Context) ([]models.GroupConfiguration, error) {
	var out []models.GroupConfiguration
	err := r.s.read(func(st *memoryState) error {
		out = cloneGroups(st.groups)
		return nil
	})
	return out, err
}

func (r memoryGroupRepository) Get(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	var out *models.GroupConfiguration
	err := r.s.read(func(st *memoryState) error {
		for _, g := range st.groups {
			if g.GroupName == groupName {
				c := cloneGroups([]models.GroupConfiguration{g})[0]
				out = &c
				return nil
			}
		}
		return ErrGroupNotFound
	})
	return out, err
}

func (r memoryGroupRepository) RemoveTeam(ctx context.Context, teamName string) error {
	return r.s.write(func(st *memoryState) error {
		for i := range st.groups {
			st.groups[i].Members = removeMember(st.groups[i].Members, func(m models.GroupMember) bool { return m.TeamName == teamName })
		}
		st.groups = dropEmptyGroups(st.groups)
		return nil
	})
}

func removeMember(members []models.GroupMember, match func(models.GroupMember) bool) []models.GroupMember {
	out := members[:0]
	for _, m := range members {
		if !match(m) {
			out = append(out, m)
		}
	}
	return out
}

// A group exists only as long as it has members, same as group_members rows.
func dropEmptyGroups(groups []models.GroupConfiguration) []models.GroupConfiguration {
	out := groups[:0]
	for _, g := range groups {
		if len(g.Members) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// --- brackets ---

type memoryBracketRepository struct{ s *memoryScope }

func (r memoryBracketRepository) Create(ctx context.Context, match *models.BracketMatch) error {
	return r.s.write(func(st *memoryState) error {
		for _, b := range st.brackets {
			if b.Stage == match.Stage && b.UID == match.UID {
				return ErrBracketUIDConflict
			}
		}
		st.nextBracketID++
		match.ID = st.nextBracketID
		st.brackets[match.ID] = cloneBracketMatch(*match)
		return nil
	})
}

func (r memoryBracketRepository) GetByID(ctx context.Context, id int) (*models.BracketMatch, error) {
	var out *models.BracketMatch
	err := r.s.read(func(st *memoryState) error {
		b, ok := st.brackets[id]
		if !ok {
			return ErrBracketMatchNotFound
		}
		c := cloneBracketMatch(b)
		out = &c
		return nil
	})
	return out, err
}

func (r memoryBracketRepository) ListByStage(ctx context.Context, stage string) ([]*models.BracketMatch, error) {
	matches := make([]*models.BracketMatch, 0)
	err := r.s.read(func(st *memoryState) error {
		for _, b := range st.brackets {
			if b.Stage == stage {
				c := cloneBracketMatch(b)
				matches = append(matches, &c)
			}
		}
		return nil
	})
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, err
}

func (r memoryBracketRepository) ListStages(ctx context.Context) ([]string, error) {
	stages := make([]string, 0)
	err := r.s.read(func(st *memoryState) error {
		seen := make(map[string]struct{})
		for _, b := range st.brackets {
			if _, ok := seen[b.Stage]; !ok {
				seen[b.Stage] = struct{}{}
				stages = append(stages, b.Stage)
			}
		}
		return nil
	})
	sort.Strings(stages)
	return stages, err
}

func (r memoryBracketRepository) Update(ctx context.Context, match *models.BracketMatch) error {
	return r.s.write(func(st *memoryState) error {
		stored, ok := st.brackets[match.ID]
		if !ok {
			return ErrBracketMatchNotFound
		}
		stored.Team1Name = match.Team1Name
		stored.Team2Name = match.Team2Name
		stored.WinnerName = match.WinnerName
		stored.LoserName = match.LoserName
		stored.IsPlayed = match.IsPlayed
		stored.PlayedAt = match.PlayedAt
		st.brackets[match.ID] = cloneBracketMatch(stored)
		return nil
	})
}

func (r memoryBracketRepository) UpdateNextMatchInfo(ctx context.Context, matchID int, nextMatchID, winnerToSlot, loserNextMatchID, loserToSlot *int) error {
	return r.s.write(func(st *memoryState) error {
		stored, ok := st.brackets[matchID]
		if !ok {
			return ErrBracketMatchNotFound
		}
		stored.NextMatchID = copyIntPtr(nextMatchID)
		stored.WinnerToSlot = copyIntPtr(winnerToSlot)
		stored.LoserNextMatchID = copyIntPtr(loserNextMatchID)
		stored.LoserToSlot = copyIntPtr(loserToSlot)
		st.brackets[matchID] = stored
		return nil
	})
}

func (r memoryBracketRepository) DeleteStage(ctx context.Context, stage string) error {
	return r.s.write(func(st *memoryState) error {
		for id, b := range st.brackets {
			if b.Stage == stage {
				delete(st.brackets, id)
			}
		}
		return nil
	})
}
