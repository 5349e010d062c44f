package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oahornets/crosstrack-api/internal/models"
)

type mockBootstrapUsers struct {
	created []models.User
	known   map[string]bool
}

func (m *mockBootstrapUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.known[username], nil
}

func (m *mockBootstrapUsers) Create(ctx context.Context, user *models.User) error {
	user.ID = len(m.created) + 1
	m.created = append(m.created, *user)
	if m.known == nil {
		m.known = make(map[string]bool)
	}
	m.known[user.Username] = true
	return nil
}

type mockBootstrapSports struct {
	sports []models.Sport
}

func (m *mockBootstrapSports) Count(ctx context.Context) (int, error) {
	return len(m.sports), nil
}

func (m *mockBootstrapSports) List(ctx context.Context, includeInactive bool) ([]models.Sport, error) {
	return m.sports, nil
}

func (m *mockBootstrapSports) Create(ctx context.Context, sport *models.Sport) error {
	sport.ID = len(m.sports) + 1
	sport.IsActive = true
	m.sports = append(m.sports, *sport)
	return nil
}

type mockBootstrapEvents struct {
	events []models.Event
}

func (m *mockBootstrapEvents) Count(ctx context.Context) (int, error) {
	return len(m.events), nil
}

func (m *mockBootstrapEvents) Create(ctx context.Context, event *models.Event) error {
	event.ID = len(m.events) + 1
	m.events = append(m.events, *event)
	return nil
}

func testBootstrapService() (*BootstrapService, *mockBootstrapUsers, *mockBootstrapSports, *mockBootstrapEvents) {
	users := &mockBootstrapUsers{known: make(map[string]bool)}
	sports := &mockBootstrapSports{}
	events := &mockBootstrapEvents{}
	svc := NewBootstrapService(users, sports, events, BootstrapConfig{
		AdminUsername: "admin",
		AdminPassword: "changeme",
		AdminEmail:    "admin@example.org",
		AdminName:     "Site Admin",
	}, zap.NewNop())
	return svc, users, sports, events
}

func TestBootstrapSeedsEmptyDatabase(t *testing.T) {
	svc, users, sports, events := testBootstrapService()

	require.NoError(t, svc.Run(context.Background()))

	require.Len(t, users.created, 1)
	admin := users.created[0]
	assert.Equal(t, "admin", admin.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("changeme")))
	require.NotNil(t, admin.FirstName)
	assert.Equal(t, "Site", *admin.FirstName)
	require.NotNil(t, admin.LastName)
	assert.Equal(t, "Admin", *admin.LastName)

	require.Len(t, sports.sports, 4)
	assert.Equal(t, "Cross Country", sports.sports[0].Name)
	assert.Equal(t, "Dash in the Dark", sports.sports[3].Name)

	assert.NotEmpty(t, events.events)
	for _, e := range events.events {
		assert.NotZero(t, e.SportID)
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc, users, sports, events := testBootstrapService()

	require.NoError(t, svc.Run(context.Background()))
	userCount, sportCount, eventCount := len(users.created), len(sports.sports), len(events.events)

	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, userCount, len(users.created))
	assert.Equal(t, sportCount, len(sports.sports))
	assert.Equal(t, eventCount, len(events.events))
}

func TestBootstrapSkipsAdminWithoutCredentials(t *testing.T) {
	users := &mockBootstrapUsers{known: make(map[string]bool)}
	svc := NewBootstrapService(users, &mockBootstrapSports{}, &mockBootstrapEvents{}, BootstrapConfig{}, zap.NewNop())

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, users.created)
}
