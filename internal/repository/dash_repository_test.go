package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahornets/crosstrack-api/internal/models"
)

func TestDashRepositoryFindByYearOnlyActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashRepository(db)

	mock.ExpectQuery(`FROM dash_content WHERE year = \$1 AND is_active = TRUE`).
		WithArgs(2026).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByYear(context.Background(), 2026, true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashRepositoryCreateFileAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashRepository(db)

	mock.ExpectQuery(`INSERT INTO dash_files`).
		WithArgs(4, "course-map.pdf", sqlmock.AnyArg(), "application/pdf", int64(2048), models.DashCategoryCourseMap, nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	file := &models.DashFile{
		DashContentID:    4,
		OriginalFileName: "course-map.pdf",
		StoredFileName:   "b3b1c0de.pdf",
		ContentType:      "application/pdf",
		FileSize:         2048,
		Category:         models.DashCategoryCourseMap,
	}
	err := repo.CreateFile(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 9, file.ID)
	assert.True(t, file.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashRepositoryFindFileJoinsYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashRepository(db)

	rows := sqlmock.NewRows([]string{"id", "dash_content_id", "year", "original_file_name", "stored_file_name", "content_type", "file_size", "category", "description", "is_active", "created_at", "updated_at"}).
		AddRow(9, 4, 2026, "course-map.pdf", "b3b1c0de.pdf", "application/pdf", int64(2048), models.DashCategoryCourseMap, nil, true, time.Now(), time.Now())
	mock.ExpectQuery(`FROM dash_files f\s+JOIN dash_content c ON c.id = f.dash_content_id WHERE f.id = \$1 AND f.is_active = TRUE`).
		WithArgs(9).
		WillReturnRows(rows)

	file, err := repo.FindFile(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 2026, file.Year)
	assert.Equal(t, "b3b1c0de.pdf", file.StoredFileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashRepositorySoftDeleteFileMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDashRepository(db)

	mock.ExpectExec(`UPDATE dash_files SET is_active = FALSE`).
		WithArgs(sqlmock.AnyArg(), 77).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.SoftDeleteFile(context.Background(), 77)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
