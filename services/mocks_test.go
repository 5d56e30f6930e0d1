package services

import (
	"context"
	"strings"
	"sync"

	"github.com/avelychko/league-roster/live"
	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/repositories"
)

// In-memory repositories mirroring the Postgres implementations, including
// the row-version check on Update.

type mockSportRepo struct {
	sports map[int]*models.Sport
	nextID int
	inUse  map[int]bool
}

func newMockSportRepo() *mockSportRepo {
	return &mockSportRepo{
		sports: make(map[int]*models.Sport),
		inUse:  make(map[int]bool),
	}
}

func (m *mockSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	for _, existing := range m.sports {
		if existing.Name == sport.Name {
			return repositories.ErrSportNameConflict
		}
	}
	m.nextID++
	sport.ID = m.nextID
	sport.Version = 1
	copied := *sport
	m.sports[sport.ID] = &copied
	return nil
}

func (m *mockSportRepo) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, ok := m.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (m *mockSportRepo) GetAll(ctx context.Context) ([]models.Sport, error) {
	sports := make([]models.Sport, 0, len(m.sports))
	for _, sport := range m.sports {
		sports = append(sports, *sport)
	}
	return sports, nil
}

func (m *mockSportRepo) Update(ctx context.Context, sport *models.Sport) error {
	stored, ok := m.sports[sport.ID]
	if !ok || stored.Version != sport.Version {
		return repositories.ErrSportVersionConflict
	}
	stored.Name = sport.Name
	stored.Version++
	sport.Version++
	return nil
}

func (m *mockSportRepo) Delete(ctx context.Context, id int) error {
	if m.inUse[id] {
		return repositories.ErrSportInUse
	}
	if _, ok := m.sports[id]; !ok {
		return repositories.ErrSportNotFound
	}
	delete(m.sports, id)
	return nil
}

func (m *mockSportRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.sports[id]
	return ok, nil
}

func (m *mockSportRepo) Count(ctx context.Context) (int, error) {
	return len(m.sports), nil
}

func (m *mockSportRepo) UpdateLogoKey(ctx context.Context, id int, logoKey string) error {
	sport, ok := m.sports[id]
	if !ok {
		return repositories.ErrSportNotFound
	}
	sport.LogoKey = &logoKey
	return nil
}

type mockTeamRepo struct {
	teams  map[int]*models.Team
	nextID int
	inUse  map[int]bool
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{
		teams: make(map[int]*models.Team),
		inUse: make(map[int]bool),
	}
}

func (m *mockTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, existing := range m.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	m.nextID++
	team.ID = m.nextID
	team.Version = 1
	copied := *team
	m.teams[team.ID] = &copied
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := m.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (m *mockTeamRepo) GetAll(ctx context.Context) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(m.teams))
	for _, team := range m.teams {
		teams = append(teams, *team)
	}
	return teams, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, team *models.Team) error {
	stored, ok := m.teams[team.ID]
	if !ok || stored.Version != team.Version {
		return repositories.ErrTeamVersionConflict
	}
	stored.Name = team.Name
	stored.SportID = team.SportID
	stored.Version++
	team.Version++
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int) error {
	if m.inUse[id] {
		return repositories.ErrTeamInUse
	}
	if _, ok := m.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(m.teams, id)
	return nil
}

func (m *mockTeamRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.teams[id]
	return ok, nil
}

func (m *mockTeamRepo) Count(ctx context.Context) (int, error) {
	return len(m.teams), nil
}

func (m *mockTeamRepo) UpdateLogoKey(ctx context.Context, id int, logoKey string) error {
	team, ok := m.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = &logoKey
	return nil
}

type mockPlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{players: make(map[int]*models.Player)}
}

func (m *mockPlayerRepo) Create(ctx context.Context, player *models.Player) error {
	m.nextID++
	player.ID = m.nextID
	player.Version = 1
	copied := *player
	m.players[player.ID] = &copied
	return nil
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, ok := m.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (m *mockPlayerRepo) GetAll(ctx context.Context, search string) ([]models.Player, error) {
	needle := strings.ToLower(search)
	players := make([]models.Player, 0, len(m.players))
	for _, player := range m.players {
		if needle != "" &&
			!strings.Contains(strings.ToLower(player.FirstName), needle) &&
			!strings.Contains(strings.ToLower(player.LastName), needle) {
			continue
		}
		players = append(players, *player)
	}
	return players, nil
}

func (m *mockPlayerRepo) Update(ctx context.Context, player *models.Player) error {
	stored, ok := m.players[player.ID]
	if !ok || stored.Version != player.Version {
		return repositories.ErrPlayerVersionConflict
	}
	stored.FirstName = player.FirstName
	stored.LastName = player.LastName
	stored.Number = player.Number
	stored.TeamID = player.TeamID
	stored.Version++
	player.Version++
	return nil
}

func (m *mockPlayerRepo) Delete(ctx context.Context, id int) error {
	if _, ok := m.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(m.players, id)
	return nil
}

func (m *mockPlayerRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := m.players[id]
	return ok, nil
}

func (m *mockPlayerRepo) Count(ctx context.Context) (int, error) {
	return len(m.players), nil
}

type mockUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type roleGrant struct {
	userID int
	role   string
}

type mockRoleRepo struct {
	roles       map[string]int // role name -> times EnsureRole inserted it
	grants      map[roleGrant]int
	ensureCalls int
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{
		roles:  make(map[string]int),
		grants: make(map[roleGrant]int),
	}
}

func (m *mockRoleRepo) EnsureRole(ctx context.Context, name string) error {
	m.ensureCalls++
	if _, ok := m.roles[name]; !ok {
		m.roles[name] = 1
	}
	return nil
}

func (m *mockRoleRepo) AssignRole(ctx context.Context, userID int, roleName string) error {
	if _, ok := m.roles[roleName]; !ok {
		return repositories.ErrRoleNotFound
	}
	key := roleGrant{userID: userID, role: roleName}
	if _, ok := m.grants[key]; !ok {
		m.grants[key] = 1
	}
	return nil
}

func (m *mockRoleRepo) ListRoleNames(ctx context.Context, userID int) ([]string, error) {
	names := make([]string, 0)
	for grant := range m.grants {
		if grant.userID == userID {
			names = append(names, grant.role)
		}
	}
	return names, nil
}

func (m *mockRoleRepo) HasRole(ctx context.Context, userID int, roleName string) (bool, error) {
	_, ok := m.grants[roleGrant{userID: userID, role: roleName}]
	return ok, nil
}

func (m *mockRoleRepo) CountRole(ctx context.Context, name string) (int, error) {
	return m.roles[name], nil
}

func (m *mockRoleRepo) CountUserRole(ctx context.Context, userID int, roleName string) (int, error) {
	return m.grants[roleGrant{userID: userID, role: roleName}], nil
}

// mockFeed records broadcast events for assertions.
type mockFeed struct {
	mu     sync.Mutex
	events []live.Event
}

func (m *mockFeed) BroadcastToTopic(topic string, event live.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockFeed) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, event := range m.events {
		types[i] = event.Type
	}
	return types
}
