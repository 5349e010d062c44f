package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oahornets/crosstrack-api/internal/models"
)

type bootstrapUserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type bootstrapSportRepository interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, includeInactive bool) ([]models.Sport, error)
	Create(ctx context.Context, sport *models.Sport) error
}

type bootstrapEventRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, event *models.Event) error
}

// BootstrapConfig carries the seed admin credentials.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	AdminName     string
}

// BootstrapService seeds an empty database on startup: the admin account,
// the four sports, and the event catalog. Every step is idempotent so the
// routine is safe to run on every boot.
type BootstrapService struct {
	users  bootstrapUserRepository
	sports bootstrapSportRepository
	events bootstrapEventRepository
	config BootstrapConfig
	logger *zap.Logger
}

// NewBootstrapService constructs the bootstrap service.
func NewBootstrapService(users bootstrapUserRepository, sports bootstrapSportRepository, events bootstrapEventRepository, config BootstrapConfig, logger *zap.Logger) *BootstrapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BootstrapService{users: users, sports: sports, events: events, config: config, logger: logger}
}

// Run executes the seed steps in order. Sports must land before events
// because the catalog references them by name.
func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	if err := s.seedSports(ctx); err != nil {
		return err
	}
	return s.seedEvents(ctx)
}

func (s *BootstrapService) seedAdmin(ctx context.Context) error {
	if s.config.AdminUsername == "" || s.config.AdminPassword == "" {
		s.logger.Info("bootstrap admin credentials not configured, skipping admin seed")
		return nil
	}

	exists, err := s.users.ExistsByUsername(ctx, s.config.AdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     s.config.AdminUsername,
		PasswordHash: string(hash),
	}
	if s.config.AdminEmail != "" {
		email := s.config.AdminEmail
		user.Email = &email
	}
	if s.config.AdminName != "" {
		first, last := splitName(s.config.AdminName)
		if first != "" {
			user.FirstName = &first
		}
		if last != "" {
			user.LastName = &last
		}
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("seeded admin user", zap.String("username", user.Username))
	return nil
}

func (s *BootstrapService) seedSports(ctx context.Context) error {
	count, err := s.sports.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []models.Sport{
		{Name: "Cross Country", Season: "Fall", DisplayOrder: 1},
		{Name: "Indoor Track", Season: "Winter", DisplayOrder: 2},
		{Name: "Outdoor Track", Season: "Spring", DisplayOrder: 3},
		{Name: "Dash in the Dark", Season: "Special", DisplayOrder: 4},
	}
	for i := range seeds {
		if err := s.sports.Create(ctx, &seeds[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded sports", zap.Int("count", len(seeds)))
	return nil
}

func (s *BootstrapService) seedEvents(ctx context.Context) error {
	count, err := s.events.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sports, err := s.sports.List(ctx, true)
	if err != nil {
		return err
	}
	sportIDs := make(map[string]int, len(sports))
	for _, sp := range sports {
		sportIDs[sp.Name] = sp.ID
	}

	type seed struct {
		sport     string
		name      string
		eventType string
		sortOrder int
	}
	seeds := []seed{
		{"Cross Country", "5K", models.EventTypeRunning, 1},
		{"Cross Country", "3 Mile", models.EventTypeRunning, 2},
		{"Cross Country", "2 Mile", models.EventTypeRunning, 3},

		{"Indoor Track", "55m", models.EventTypeRunning, 1},
		{"Indoor Track", "200m", models.EventTypeRunning, 2},
		{"Indoor Track", "400m", models.EventTypeRunning, 3},
		{"Indoor Track", "800m", models.EventTypeRunning, 4},
		{"Indoor Track", "1600m", models.EventTypeRunning, 5},
		{"Indoor Track", "3200m", models.EventTypeRunning, 6},
		{"Indoor Track", "55m Hurdles", models.EventTypeRunning, 7},
		{"Indoor Track", "4x200m Relay", models.EventTypeRelay, 10},
		{"Indoor Track", "4x400m Relay", models.EventTypeRelay, 11},
		{"Indoor Track", "4x800m Relay", models.EventTypeRelay, 12},
		{"Indoor Track", "Distance Medley Relay", models.EventTypeRelay, 13},
		{"Indoor Track", "Shot Put", models.EventTypeField, 20},
		{"Indoor Track", "Long Jump", models.EventTypeField, 21},
		{"Indoor Track", "High Jump", models.EventTypeField, 22},
		{"Indoor Track", "Pole Vault", models.EventTypeField, 23},
		{"Indoor Track", "Triple Jump", models.EventTypeField, 24},

		{"Outdoor Track", "100m", models.EventTypeRunning, 1},
		{"Outdoor Track", "200m", models.EventTypeRunning, 2},
		{"Outdoor Track", "400m", models.EventTypeRunning, 3},
		{"Outdoor Track", "800m", models.EventTypeRunning, 4},
		{"Outdoor Track", "1600m", models.EventTypeRunning, 5},
		{"Outdoor Track", "3200m", models.EventTypeRunning, 6},
		{"Outdoor Track", "100m Hurdles", models.EventTypeRunning, 7},
		{"Outdoor Track", "110m Hurdles", models.EventTypeRunning, 8},
		{"Outdoor Track", "300m Hurdles", models.EventTypeRunning, 9},
		{"Outdoor Track", "400m Hurdles", models.EventTypeRunning, 10},
		{"Outdoor Track", "4x100m Relay", models.EventTypeRelay, 15},
		{"Outdoor Track", "4x400m Relay", models.EventTypeRelay, 16},
		{"Outdoor Track", "4x800m Relay", models.EventTypeRelay, 17},
		{"Outdoor Track", "Shot Put", models.EventTypeField, 20},
		{"Outdoor Track", "Discus", models.EventTypeField, 21},
		{"Outdoor Track", "Javelin", models.EventTypeField, 22},
		{"Outdoor Track", "Long Jump", models.EventTypeField, 23},
		{"Outdoor Track", "High Jump", models.EventTypeField, 24},
		{"Outdoor Track", "Pole Vault", models.EventTypeField, 25},
		{"Outdoor Track", "Triple Jump", models.EventTypeField, 26},

		{"Dash in the Dark", "1 Mile", models.EventTypeRunning, 1},
		{"Dash in the Dark", "5K", models.EventTypeRunning, 2},
	}

	created := 0
	for _, e := range seeds {
		sportID, ok := sportIDs[e.sport]
		if !ok {
			s.logger.Warn("event seed references unknown sport", zap.String("sport", e.sport))
			continue
		}
		event := &models.Event{Name: e.name, SportID: sportID, EventType: e.eventType, SortOrder: e.sortOrder}
		if err := s.events.Create(ctx, event); err != nil {
			return err
		}
		created++
	}
	s.logger.Info("seeded events", zap.Int("count", created))
	return nil
}

func splitName(full string) (string, string) {
	if i := strings.LastIndex(full, " "); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
