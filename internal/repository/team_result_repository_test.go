package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahornets/crosstrack-api/internal/models"
)

var teamResultColumns = []string{"id", "sport_id", "sport_name", "year", "meet_date", "gender", "home_team", "away_team", "home_score", "away_score", "is_division_match", "notes", "is_active", "created_at", "updated_at"}

func TestTeamResultRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamResultRepository(db)

	rows := sqlmock.NewRows(teamResultColumns).
		AddRow(1, 2, "Track & Field", 2026, time.Now(), "M", "Oak Hills", "Ridgeview", 78, 58, true, nil, true, time.Now(), time.Now())
	mock.ExpectQuery(`FROM team_meet_results tr\s+LEFT JOIN sports s ON s.id = tr.sport_id WHERE tr.is_active = TRUE AND tr.sport_id = \$1 AND tr.year = \$2 AND tr.gender = \$3 ORDER BY tr.meet_date DESC`).
		WithArgs(2, 2026, "M").
		WillReturnRows(rows)

	sportID, year := 2, 2026
	results, err := repo.List(context.Background(), models.TeamMeetResultFilter{SportID: &sportID, Year: &year, Gender: "M", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Oak Hills", results[0].HomeTeam)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamResultRepositoryListForStandingsChronological(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamResultRepository(db)

	rows := sqlmock.NewRows(teamResultColumns).
		AddRow(1, 2, "Track & Field", 2026, time.Now(), "F", "Oak Hills", "Ridgeview", 60, 70, false, nil, true, time.Now(), time.Now())
	mock.ExpectQuery(`WHERE tr.is_active = TRUE AND tr.sport_id = \$1 AND tr.year = \$2 AND tr.gender = \$3 ORDER BY tr.meet_date`).
		WithArgs(2, 2026, "F").
		WillReturnRows(rows)

	results, err := repo.ListForStandings(context.Background(), 2, 2026, "F")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ridgeview", results[0].AwayTeam)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamResultRepositoryDistinctTeams(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamResultRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT team FROM`).
		WithArgs(2, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"team"}).AddRow("Oak Hills").AddRow("Ridgeview"))

	teams, err := repo.DistinctTeams(context.Background(), 2, 2026)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oak Hills", "Ridgeview"}, teams)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamResultRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeamResultRepository(db)

	mock.ExpectQuery(`INSERT INTO team_meet_results`).
		WithArgs(2, 2026, sqlmock.AnyArg(), "M", "Oak Hills", "Ridgeview", 78, 58, true, nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	result := &models.TeamMeetResult{SportID: 2, Year: 2026, MeetDate: time.Now(), Gender: "M", HomeTeam: "Oak Hills", AwayTeam: "Ridgeview", HomeScore: 78, AwayScore: 58, IsDivisionMatch: true}
	err := repo.Create(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 11, result.ID)
	assert.True(t, result.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
