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

type mockTeamResultRepo struct {
	results map[int]models.TeamMeetResult
	nextID  int
	deleted []int
}

func (m *mockTeamResultRepo) List(ctx context.Context, filter models.TeamMeetResultFilter) ([]models.TeamMeetResult, error) {
	out := []models.TeamMeetResult{}
	for _, r := range m.results {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockTeamResultRepo) FindByID(ctx context.Context, id int) (*models.TeamMeetResult, error) {
	if r, ok := m.results[id]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeamResultRepo) ListForStandings(ctx context.Context, sportID, year int, gender string) ([]models.TeamMeetResult, error) {
	out := []models.TeamMeetResult{}
	for _, r := range m.results {
		if r.SportID == sportID && r.Year == year && r.Gender == gender && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockTeamResultRepo) DistinctTeams(ctx context.Context, sportID, year int) ([]string, error) {
	return []string{}, nil
}

func (m *mockTeamResultRepo) Years(ctx context.Context) ([]int, error) {
	return []int{}, nil
}

func (m *mockTeamResultRepo) Create(ctx context.Context, result *models.TeamMeetResult) error {
	if m.results == nil {
		m.results = make(map[int]models.TeamMeetResult)
	}
	m.nextID++
	result.ID = m.nextID
	result.IsActive = true
	m.results[result.ID] = *result
	return nil
}

func (m *mockTeamResultRepo) Update(ctx context.Context, result *models.TeamMeetResult) error {
	m.results[result.ID] = *result
	return nil
}

func (m *mockTeamResultRepo) SoftDelete(ctx context.Context, id int) (bool, error) {
	r, ok := m.results[id]
	if !ok {
		return false, nil
	}
	r.IsActive = false
	m.results[id] = r
	m.deleted = append(m.deleted, id)
	return true, nil
}

type mockSportLookup struct {
	sports map[int]models.Sport
}

func (m *mockSportLookup) FindByID(ctx context.Context, id int) (*models.Sport, error) {
	if s, ok := m.sports[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func seededTeamResultRepo(results ...models.TeamMeetResult) *mockTeamResultRepo {
	repo := &mockTeamResultRepo{results: make(map[int]models.TeamMeetResult)}
	for _, r := range results {
		repo.nextID++
		r.ID = repo.nextID
		r.IsActive = true
		repo.results[r.ID] = r
	}
	return repo
}

func TestStandingsTieCreditsNeitherTeam(t *testing.T) {
	repo := seededTeamResultRepo(
		models.TeamMeetResult{SportID: 1, Year: 2026, Gender: "M", HomeTeam: "A", AwayTeam: "B", HomeScore: 10, AwayScore: 5, IsDivisionMatch: true, MeetDate: time.Now()},
		models.TeamMeetResult{SportID: 1, Year: 2026, Gender: "M", HomeTeam: "B", AwayTeam: "A", HomeScore: 3, AwayScore: 3, IsDivisionMatch: false, MeetDate: time.Now()},
	)
	svc := NewTeamResultService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	standings, err := svc.Standings(context.Background(), 1, 2026, "M")
	require.NoError(t, err)
	require.Len(t, standings.Standings, 2)

	a := standings.Standings[0]
	assert.Equal(t, "A", a.TeamName)
	assert.Equal(t, 1, a.OverallWins)
	assert.Equal(t, 0, a.OverallLosses)
	assert.Equal(t, 1, a.DivisionWins)
	assert.Equal(t, 0, a.DivisionLosses)

	b := standings.Standings[1]
	assert.Equal(t, "B", b.TeamName)
	assert.Equal(t, 0, b.OverallWins)
	assert.Equal(t, 1, b.OverallLosses)
	assert.Equal(t, 0, b.DivisionWins)
	assert.Equal(t, 1, b.DivisionLosses)
}

func TestStandingsSortsByWinsLossesThenName(t *testing.T) {
	repo := seededTeamResultRepo(
		models.TeamMeetResult{SportID: 1, Year: 2026, Gender: "F", HomeTeam: "Zephyr", AwayTeam: "Canton", HomeScore: 50, AwayScore: 40, MeetDate: time.Now()},
		models.TeamMeetResult{SportID: 1, Year: 2026, Gender: "F", HomeTeam: "Ander", AwayTeam: "Canton", HomeScore: 60, AwayScore: 30, MeetDate: time.Now()},
	)
	svc := NewTeamResultService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	standings, err := svc.Standings(context.Background(), 1, 2026, "F")
	require.NoError(t, err)
	require.Len(t, standings.Standings, 3)
	// Ander and Zephyr both 1-0; alphabetical breaks the tie.
	assert.Equal(t, "Ander", standings.Standings[0].TeamName)
	assert.Equal(t, "Zephyr", standings.Standings[1].TeamName)
	assert.Equal(t, "Canton", standings.Standings[2].TeamName)
	assert.Equal(t, 2, standings.Standings[2].OverallLosses)
}

func TestStandingsEmptySeasonResolvesSportName(t *testing.T) {
	repo := &mockTeamResultRepo{}
	sports := &mockSportLookup{sports: map[int]models.Sport{
		2: {ID: 2, Name: "Indoor Track"},
	}}
	svc := NewTeamResultService(repo, sports, nil, 0, validator.New(), zap.NewNop())

	standings, err := svc.Standings(context.Background(), 2, 2026, "F")
	require.NoError(t, err)
	// No results, so the name cannot come from a result row.
	assert.Empty(t, standings.Standings)
	assert.Equal(t, "Indoor Track", standings.SportName)
	assert.Equal(t, 2, standings.SportID)
}

func TestStandingsRejectsMissingGender(t *testing.T) {
	svc := NewTeamResultService(&mockTeamResultRepo{}, nil, nil, 0, validator.New(), zap.NewNop())

	_, err := svc.Standings(context.Background(), 1, 2026, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestTeamResultDeleteExcludesFromStandings(t *testing.T) {
	repo := seededTeamResultRepo(
		models.TeamMeetResult{SportID: 1, Year: 2026, Gender: "M", HomeTeam: "A", AwayTeam: "B", HomeScore: 10, AwayScore: 5, MeetDate: time.Now()},
	)
	svc := NewTeamResultService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))

	standings, err := svc.Standings(context.Background(), 1, 2026, "M")
	require.NoError(t, err)
	assert.Empty(t, standings.Standings)
}
