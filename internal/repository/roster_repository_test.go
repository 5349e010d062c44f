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

func TestRosterRepositoryListFiltersInactiveAthletes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	rows := sqlmock.NewRows([]string{"id", "athlete_id", "athlete_first_name", "athlete_last_name", "athlete_gender", "athlete_graduation_year", "sport_id", "sport_name", "year", "created_at"}).
		AddRow(1, 3, "Avery", "Brooks", "F", 2027, 2, "Cross Country", 2026, time.Now())
	mock.ExpectQuery(`FROM roster_entries ro\s+JOIN athletes a ON a.id = ro.athlete_id\s+JOIN sports s ON s.id = ro.sport_id WHERE a.is_active = TRUE AND ro.sport_id = \$1 AND ro.year = \$2`).
		WithArgs(2, 2026).
		WillReturnRows(rows)

	sportID, year := 2, 2026
	entries, err := repo.List(context.Background(), models.RosterFilter{SportID: &sportID, Year: &year})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].AthleteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM roster_entries WHERE athlete_id = \$1 AND sport_id = \$2 AND year = \$3`).
		WithArgs(3, 2, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 3, 2, 2026)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectExec(`DELETE FROM roster_entries WHERE id = \$1`).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryBulkDeleteCountsRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectExec(`DELETE FROM roster_entries WHERE sport_id = \$1 AND year = \$2 AND athlete_id = ANY\(\$3\)`).
		WithArgs(2, 2026, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	removed, err := repo.BulkDelete(context.Background(), 2, 2026, []int{3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryYearsDescending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT year FROM roster_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"year"}).AddRow(2024).AddRow(2026).AddRow(2025))

	years, err := repo.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2025, 2024}, years)
	assert.NoError(t, mock.ExpectationsWereMet())
}
