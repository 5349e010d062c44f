package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type mockRecordRepo struct {
	records          map[int]models.Record
	nextID           int
	leaderboardCalls int
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[int]models.Record)}
}

func (m *mockRecordRepo) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	out := []models.Record{}
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRecordRepo) FindByID(ctx context.Context, id int) (*models.Record, error) {
	if r, ok := m.records[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRecordRepo) Leaderboard(ctx context.Context, eventID int, gender string, top int) ([]models.Record, error) {
	m.leaderboardCalls++
	out := []models.Record{}
	for _, r := range m.records {
		if r.EventID == eventID && r.Gender == gender && r.IsActive {
			out = append(out, r)
		}
	}
	if len(out) > top {
		out = out[:top]
	}
	return out, nil
}

func (m *mockRecordRepo) Create(ctx context.Context, record *models.Record) error {
	m.nextID++
	record.ID = m.nextID
	record.IsActive = true
	m.records[record.ID] = *record
	return nil
}

func (m *mockRecordRepo) Update(ctx context.Context, record *models.Record) error {
	m.records[record.ID] = *record
	return nil
}

func (m *mockRecordRepo) SoftDelete(ctx context.Context, id int) (bool, error) {
	r, ok := m.records[id]
	if !ok {
		return false, nil
	}
	r.IsActive = false
	m.records[id] = r
	return true, nil
}

type memoryCache struct {
	values map[string][]byte
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := c.values[key]; ok {
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.values == nil {
		c.values = make(map[string][]byte)
	}
	c.values[key] = []byte("cached")
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.values = nil
	return nil
}

func TestLeaderboardRequiresGender(t *testing.T) {
	svc := NewRecordService(newMockRecordRepo(), nil, validator.New(), zap.NewNop())

	_, err := svc.Leaderboard(context.Background(), 1, "", 10)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestLeaderboardDefaultsTopTen(t *testing.T) {
	repo := newMockRecordRepo()
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.Record{EventID: 1, Gender: "M", PerformanceValue: float64(i)}))
	}
	svc := NewRecordService(repo, nil, validator.New(), zap.NewNop())

	records, err := svc.Leaderboard(context.Background(), 1, "M", 0)
	require.NoError(t, err)
	assert.Len(t, records, 10)
}

func TestLeaderboardCachesResult(t *testing.T) {
	repo := newMockRecordRepo()
	cache := &memoryCache{}
	svc := NewRecordService(repo, cache, validator.New(), zap.NewNop())

	_, err := svc.Leaderboard(context.Background(), 1, "F", 5)
	require.NoError(t, err)
	_, err = svc.Leaderboard(context.Background(), 1, "F", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.leaderboardCalls)
}

func TestRecordCreateInvalidatesLeaderboardCache(t *testing.T) {
	repo := newMockRecordRepo()
	cache := &memoryCache{}
	svc := NewRecordService(repo, cache, validator.New(), zap.NewNop())

	_, err := svc.Leaderboard(context.Background(), 1, "F", 5)
	require.NoError(t, err)
	require.NotEmpty(t, cache.values)

	_, err = svc.Create(context.Background(), RecordRequest{
		EventID: 1, AthleteID: 2, Gender: "F", Performance: "17:42.3",
		PerformanceValue: 1062.3, PerformanceDate: time.Now(), RecordType: models.RecordTypeSchool,
	})
	require.NoError(t, err)
	assert.Empty(t, cache.values)
}

func TestRecordCreateRejectsBadType(t *testing.T) {
	svc := NewRecordService(newMockRecordRepo(), nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), RecordRequest{
		EventID: 1, AthleteID: 2, Gender: "F", Performance: "17:42.3",
		PerformanceValue: 1062.3, PerformanceDate: time.Now(), RecordType: "National",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
