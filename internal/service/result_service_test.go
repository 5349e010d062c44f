package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type resultKey struct {
	athleteID, meetID, eventID int
}

type mockResultRepo struct {
	results map[int]models.Result
	active  map[resultKey]bool
	nextID  int
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{results: make(map[int]models.Result), active: make(map[resultKey]bool)}
}

func (m *mockResultRepo) List(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	out := []models.Result{}
	for _, r := range m.results {
		if filter.MeetID != nil && r.MeetID != *filter.MeetID {
			continue
		}
		if filter.EventID != nil && r.EventID != *filter.EventID {
			continue
		}
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockResultRepo) FindByID(ctx context.Context, id int) (*models.Result, error) {
	if r, ok := m.results[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockResultRepo) ExistsActive(ctx context.Context, athleteID, meetID, eventID int) (bool, error) {
	return m.active[resultKey{athleteID, meetID, eventID}], nil
}

func (m *mockResultRepo) Create(ctx context.Context, result *models.Result) error {
	m.nextID++
	result.ID = m.nextID
	result.IsActive = true
	m.results[result.ID] = *result
	if result.AthleteID != nil {
		m.active[resultKey{*result.AthleteID, result.MeetID, result.EventID}] = true
	}
	return nil
}

func (m *mockResultRepo) Update(ctx context.Context, result *models.Result) error {
	m.results[result.ID] = *result
	return nil
}

func (m *mockResultRepo) SoftDelete(ctx context.Context, id int) (bool, error) {
	r, ok := m.results[id]
	if !ok {
		return false, nil
	}
	r.IsActive = false
	m.results[id] = r
	return true, nil
}

func intPtr(v int) *int { return &v }

func TestResultBulkCreateReturnsFullEventResults(t *testing.T) {
	repo := newMockResultRepo()
	svc := NewResultService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), ResultRequest{AthleteID: intPtr(1), MeetID: 10, EventID: 20})
	require.NoError(t, err)

	results, err := svc.BulkCreate(context.Background(), BulkCreateResultsRequest{
		MeetID:  10,
		EventID: 20,
		Results: []BulkResultRow{
			{AthleteID: intPtr(1)},
			{AthleteID: intPtr(2)},
			{AthleteID: intPtr(3)},
		},
	})
	require.NoError(t, err)
	// The duplicate for athlete 1 is skipped, but the response is the
	// whole collection for the meet and event, pre-existing row included.
	assert.Len(t, results, 3)
	athleteIDs := map[int]bool{}
	for _, r := range results {
		require.NotNil(t, r.AthleteID)
		athleteIDs[*r.AthleteID] = true
	}
	assert.True(t, athleteIDs[1])
	assert.True(t, athleteIDs[2])
	assert.True(t, athleteIDs[3])
}

func TestResultBulkCreateScopedToOneRace(t *testing.T) {
	repo := newMockResultRepo()
	svc := NewResultService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), ResultRequest{AthleteID: intPtr(9), MeetID: 11, EventID: 99})
	require.NoError(t, err)

	results, err := svc.BulkCreate(context.Background(), BulkCreateResultsRequest{
		MeetID:  10,
		EventID: 20,
		Results: []BulkResultRow{{AthleteID: intPtr(2)}},
	})
	require.NoError(t, err)
	// Results from other meets and events stay out of the response.
	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].MeetID)
	assert.Equal(t, 20, results[0].EventID)
}

func TestResultBulkCreateRelayRowsAlwaysInsert(t *testing.T) {
	repo := newMockResultRepo()
	svc := NewResultService(repo, validator.New(), zap.NewNop())

	team := "Varsity A"
	results, err := svc.BulkCreate(context.Background(), BulkCreateResultsRequest{
		MeetID:  10,
		EventID: 30,
		Results: []BulkResultRow{
			{RelayTeamName: &team},
			{RelayTeamName: &team},
		},
	})
	require.NoError(t, err)
	// Relay rows carry no athlete, so the duplicate check does not apply.
	assert.Len(t, results, 2)
}

func TestResultBulkCreateRejectsEmptyBatch(t *testing.T) {
	svc := NewResultService(newMockResultRepo(), validator.New(), zap.NewNop())

	_, err := svc.BulkCreate(context.Background(), BulkCreateResultsRequest{MeetID: 10, EventID: 20, Results: []BulkResultRow{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultCreateDuplicateConflicts(t *testing.T) {
	repo := newMockResultRepo()
	svc := NewResultService(repo, validator.New(), zap.NewNop())

	req := ResultRequest{AthleteID: intPtr(1), MeetID: 10, EventID: 20}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestResultCreateRejectsBadStatus(t *testing.T) {
	svc := NewResultService(newMockResultRepo(), validator.New(), zap.NewNop())

	status := "LATE"
	_, err := svc.Create(context.Background(), ResultRequest{AthleteID: intPtr(1), MeetID: 10, EventID: 20, ResultStatus: &status})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
