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

var meetColumns = []string{"id", "sport_id", "sport_name", "name", "location", "meet_date", "meet_type", "opponent", "is_home", "our_score", "opponent_score", "notes", "is_active", "created_at", "updated_at"}

func TestMeetRepositoryListYearFilterUsesSchoolYearRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetRepository(db)

	rows := sqlmock.NewRows(meetColumns).
		AddRow(1, 2, "Cross Country", "County Invitational", "Miller Park", time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), "Invitational", nil, false, nil, nil, nil, true, time.Now(), time.Now())
	mock.ExpectQuery(`FROM meets m LEFT JOIN sports s ON s.id = m.sport_id WHERE m.is_active = TRUE AND m.meet_date >= \$1 AND m.meet_date <= \$2 ORDER BY m.meet_date`).
		WithArgs(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC)).
		WillReturnRows(rows)

	year := 2026
	meets, err := repo.List(context.Background(), models.MeetFilter{Year: &year, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, meets, 1)
	assert.Equal(t, "County Invitational", meets[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetRepositoryYearsDedupedDescending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetRepository(db)

	rows := sqlmock.NewRows([]string{"meet_date"}).
		AddRow(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)).
		AddRow(time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)).
		AddRow(time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT meet_date FROM meets WHERE is_active = TRUE`).
		WillReturnRows(rows)

	years, err := repo.Years(context.Background())
	require.NoError(t, err)
	// Sep 2025 and Apr 2026 both fall in school year 2026.
	assert.Equal(t, []int{2026, 2025}, years)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetRepository(db)

	mock.ExpectQuery(`INSERT INTO meets`).
		WithArgs(2, "County Invitational", sqlmock.AnyArg(), sqlmock.AnyArg(), "Invitational", nil, false, nil, nil, nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	meet := &models.Meet{SportID: 2, Name: "County Invitational", MeetDate: time.Now(), MeetType: "Invitational"}
	err := repo.Create(context.Background(), meet)
	require.NoError(t, err)
	assert.Equal(t, 5, meet.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
