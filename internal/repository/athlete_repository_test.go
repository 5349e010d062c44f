package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahornets/crosstrack-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAthleteRepositoryListExcludesInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "graduation_year", "gender", "is_active", "created_at", "updated_at"}).
		AddRow(1, "Avery", "Brooks", 2027, "F", true, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM athletes WHERE is_active = TRUE ORDER BY last_name, first_name`).
		WillReturnRows(rows)

	athletes, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, athletes, 1)
	assert.Equal(t, "Brooks", athletes[0].LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM athletes WHERE LOWER\(first_name\) = LOWER\(\$1\)`).
		WithArgs("Avery", "Brooks", 2027).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "Avery", "Brooks", 2027, 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositoryExistsNoMatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM athletes`).
		WithArgs("Avery", "Brooks", 2027, 5).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), "Avery", "Brooks", 2027, 5)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	mock.ExpectQuery(`INSERT INTO athletes`).
		WithArgs("Avery", "Brooks", 2027, "F", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	athlete := &models.Athlete{FirstName: "Avery", LastName: "Brooks", GraduationYear: 2027, Gender: "F"}
	err := repo.Create(context.Background(), athlete)
	require.NoError(t, err)
	assert.Equal(t, 42, athlete.ID)
	assert.True(t, athlete.IsActive)
	assert.False(t, athlete.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	mock.ExpectExec(`UPDATE athletes SET is_active = FALSE`).
		WithArgs(sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.SoftDelete(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAthleteRepositorySoftDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAthleteRepository(db)

	mock.ExpectExec(`UPDATE athletes SET is_active = FALSE`).
		WithArgs(sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.SoftDelete(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
