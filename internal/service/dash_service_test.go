package service

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/storage"
)

type mockDashRepo struct {
	pages  map[int]models.DashContent
	files  map[int]models.DashFile
	nextID int
}

func newMockDashRepo() *mockDashRepo {
	return &mockDashRepo{pages: make(map[int]models.DashContent), files: make(map[int]models.DashFile)}
}

func (m *mockDashRepo) ListActive(ctx context.Context) ([]models.DashContent, error) {
	out := []models.DashContent{}
	for _, p := range m.pages {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockDashRepo) FindByYear(ctx context.Context, year int, onlyActive bool) (*models.DashContent, error) {
	for _, p := range m.pages {
		if p.Year == year && (!onlyActive || p.IsActive) {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockDashRepo) Years(ctx context.Context) ([]int, error) {
	return []int{}, nil
}

func (m *mockDashRepo) Create(ctx context.Context, page *models.DashContent) error {
	m.nextID++
	page.ID = m.nextID
	page.IsActive = true
	m.pages[page.ID] = *page
	return nil
}

func (m *mockDashRepo) Update(ctx context.Context, page *models.DashContent) error {
	page.IsActive = true
	m.pages[page.ID] = *page
	return nil
}

func (m *mockDashRepo) CreateFile(ctx context.Context, file *models.DashFile) error {
	m.nextID++
	file.ID = m.nextID
	file.IsActive = true
	m.files[file.ID] = *file
	return nil
}

func (m *mockDashRepo) ListFilesByContent(ctx context.Context, dashContentID int) ([]models.DashFile, error) {
	out := []models.DashFile{}
	for _, f := range m.files {
		if f.DashContentID == dashContentID && f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockDashRepo) FindFile(ctx context.Context, id int) (*models.DashFile, error) {
	if f, ok := m.files[id]; ok && f.IsActive {
		return &f, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDashRepo) SoftDeleteFile(ctx context.Context, id int) (bool, error) {
	f, ok := m.files[id]
	if !ok || !f.IsActive {
		return false, nil
	}
	f.IsActive = false
	m.files[id] = f
	return true, nil
}

func testDashService(t *testing.T) (*DashService, *mockDashRepo) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := newMockDashRepo()
	svc := NewDashService(repo, store, 10<<20, []string{"application/pdf", "image/png"}, validator.New(), zap.NewNop())
	return svc, repo
}

func TestDashUploadStoresFileUnderOpaqueName(t *testing.T) {
	svc, repo := testDashService(t)

	file, err := svc.UploadFile(context.Background(), UploadDashFileRequest{
		Year: 2026, FileName: "course map.pdf", ContentType: "application/pdf",
		Size: 11, Category: models.DashCategoryCourseMap,
		Body: bytes.NewReader([]byte("pdf content")),
	})
	require.NoError(t, err)
	assert.Equal(t, "course map.pdf", file.OriginalFileName)
	assert.NotEqual(t, file.OriginalFileName, file.StoredFileName)
	assert.True(t, strings.HasSuffix(file.StoredFileName, ".pdf"))
	// The upload lazily created the year's page.
	assert.Len(t, repo.pages, 1)

	meta, handle, err := svc.OpenFile(context.Background(), file.ID)
	require.NoError(t, err)
	defer handle.Close()
	assert.Equal(t, file.ID, meta.ID)
}

func TestDashUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := testDashService(t)

	_, err := svc.UploadFile(context.Background(), UploadDashFileRequest{
		Year: 2026, FileName: "huge.pdf", ContentType: "application/pdf",
		Size: (10 << 20) + 1, Category: models.DashCategoryRegistration,
		Body: bytes.NewReader([]byte("x")),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDashUploadRejectsDisallowedType(t *testing.T) {
	svc, _ := testDashService(t)

	_, err := svc.UploadFile(context.Background(), UploadDashFileRequest{
		Year: 2026, FileName: "script.sh", ContentType: "application/x-sh",
		Size: 4, Category: models.DashCategoryRegistration,
		Body: bytes.NewReader([]byte("#!sh")),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDashUploadRejectsBadCategory(t *testing.T) {
	svc, _ := testDashService(t)

	_, err := svc.UploadFile(context.Background(), UploadDashFileRequest{
		Year: 2026, FileName: "a.pdf", ContentType: "application/pdf",
		Size: 1, Category: "Gallery",
		Body: bytes.NewReader([]byte("x")),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDashUpsertCreatesThenUpdates(t *testing.T) {
	svc, repo := testDashService(t)

	page, err := svc.Upsert(context.Background(), 2026, UpsertDashRequest{RegistrationMarkdown: "# Sign up"})
	require.NoError(t, err)
	assert.Equal(t, "# Sign up", page.RegistrationMarkdown)
	assert.Len(t, repo.pages, 1)

	page, err = svc.Upsert(context.Background(), 2026, UpsertDashRequest{RegistrationMarkdown: "# Updated"})
	require.NoError(t, err)
	assert.Equal(t, "# Updated", page.RegistrationMarkdown)
	assert.Len(t, repo.pages, 1)
}

func TestDashOpenFileMissingRow(t *testing.T) {
	svc, _ := testDashService(t)

	_, _, err := svc.OpenFile(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDashDeleteFileMakesItInvisible(t *testing.T) {
	svc, _ := testDashService(t)

	file, err := svc.UploadFile(context.Background(), UploadDashFileRequest{
		Year: 2026, FileName: "a.pdf", ContentType: "application/pdf",
		Size: 1, Category: models.DashCategoryPastResults,
		Body: bytes.NewReader([]byte("x")),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), file.ID))

	_, _, err = svc.OpenFile(context.Background(), file.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
