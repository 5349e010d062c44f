package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/schoolyear"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type dashRepository interface {
	ListActive(ctx context.Context) ([]models.DashContent, error)
	FindByYear(ctx context.Context, year int, onlyActive bool) (*models.DashContent, error)
	Years(ctx context.Context) ([]int, error)
	Create(ctx context.Context, page *models.DashContent) error
	Update(ctx context.Context, page *models.DashContent) error
	CreateFile(ctx context.Context, file *models.DashFile) error
	ListFilesByContent(ctx context.Context, dashContentID int) ([]models.DashFile, error)
	FindFile(ctx context.Context, id int) (*models.DashFile, error)
	SoftDeleteFile(ctx context.Context, id int) (bool, error)
}

type fileStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// UpsertDashRequest holds payload for writing a year's dash page.
type UpsertDashRequest struct {
	RegistrationMarkdown string `json:"registration_markdown"`
	PastResultsMarkdown  string `json:"past_results_markdown"`
	CourseMapMarkdown    string `json:"course_map_markdown"`
}

// UploadDashFileRequest describes one uploaded document.
type UploadDashFileRequest struct {
	Year        int     `validate:"required,min=1900,max=2200"`
	FileName    string  `validate:"required"`
	ContentType string  `validate:"required"`
	Size        int64   `validate:"required,min=1"`
	Category    string  `validate:"required,oneof=Registration PastResults CourseMap"`
	Description *string
	Body        io.Reader `validate:"required"`
}

// DashService handles the Dash in the Dark pages and their uploaded
// documents. Pages are keyed by year and created lazily the first time
// content or a file is written for that year.
type DashService struct {
	repo        dashRepository
	store       fileStore
	maxSize     int64
	allowedMIME map[string]bool
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewDashService constructs the dash service.
func NewDashService(repo dashRepository, store fileStore, maxSize int64, allowedMIMEs []string, validate *validator.Validate, logger *zap.Logger) *DashService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedMIMEs))
	for _, m := range allowedMIMEs {
		allowed[m] = true
	}
	return &DashService{repo: repo, store: store, maxSize: maxSize, allowedMIME: allowed, validator: validate, logger: logger}
}

// List returns the active dash pages with their files, newest year first.
func (s *DashService) List(ctx context.Context) ([]models.DashContent, error) {
	pages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dash pages")
	}
	for i := range pages {
		files, err := s.repo.ListFilesByContent(ctx, pages[i].ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dash files")
		}
		pages[i].Files = files
	}
	return pages, nil
}

// Get returns the active dash page for one year with its files.
func (s *DashService) Get(ctx context.Context, year int) (*models.DashContent, error) {
	page, err := s.repo.FindByYear(ctx, year, true)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "dash page not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dash page")
	}
	files, err := s.repo.ListFilesByContent(ctx, page.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dash files")
	}
	page.Files = files
	return page, nil
}

// Years returns the years with active dash pages, the current school year
// always included.
func (s *DashService) Years(ctx context.Context) ([]int, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dash years")
	}
	return withUpcomingYears(years, schoolyear.Current(), false), nil
}

// Upsert writes the dash page for one year, creating it on first write.
func (s *DashService) Upsert(ctx context.Context, year int, req UpsertDashRequest) (*models.DashContent, error) {
	page, err := s.getOrCreate(ctx, year)
	if err != nil {
		return nil, err
	}
	page.RegistrationMarkdown = req.RegistrationMarkdown
	page.PastResultsMarkdown = req.PastResultsMarkdown
	page.CourseMapMarkdown = req.CourseMapMarkdown
	if err := s.repo.Update(ctx, page); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update dash page")
	}
	return s.Get(ctx, year)
}

// UploadFile validates, stores and records one uploaded document. The
// on-disk name is an opaque UUID; the original name only survives in the
// database row.
func (s *DashService) UploadFile(ctx context.Context, req UploadDashFileRequest) (*models.DashFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload payload")
	}
	if s.maxSize > 0 && req.Size > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}
	if len(s.allowedMIME) > 0 && !s.allowedMIME[req.ContentType] {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file type not allowed")
	}

	page, err := s.getOrCreate(ctx, req.Year)
	if err != nil {
		return nil, err
	}

	stored := uuid.NewString() + filepath.Ext(req.FileName)
	relative := filepath.Join("dash", fmt.Sprintf("%d", req.Year), stored)
	if _, err := s.store.SaveStream(relative, req.Body); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}

	file := &models.DashFile{
		DashContentID:    page.ID,
		Year:             req.Year,
		OriginalFileName: req.FileName,
		StoredFileName:   stored,
		ContentType:      req.ContentType,
		FileSize:         req.Size,
		Category:         req.Category,
		Description:      req.Description,
	}
	if err := s.repo.CreateFile(ctx, file); err != nil {
		if remove := s.store.Delete(relative); remove != nil {
			s.logger.Warn("orphaned upload left on disk", zap.String("file", relative), zap.Error(remove))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record upload")
	}
	return file, nil
}

// OpenFile returns the metadata and a read handle for one stored file.
// A database row whose bytes are missing on disk reports not-found the
// same way a missing row does.
func (s *DashService) OpenFile(ctx context.Context, id int) (*models.DashFile, *os.File, error) {
	file, err := s.repo.FindFile(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "file not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load file")
	}

	handle, err := s.store.Open(s.relativePath(file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "file not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	return file, handle, nil
}

// DeleteFile marks a file inactive. The bytes stay on disk so an
// accidental delete can be recovered out of band.
func (s *DashService) DeleteFile(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDeleteFile(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete file")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "file not found")
	}
	return nil
}

func (s *DashService) getOrCreate(ctx context.Context, year int) (*models.DashContent, error) {
	page, err := s.repo.FindByYear(ctx, year, false)
	if err == nil {
		return page, nil
	}
	if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dash page")
	}
	page = &models.DashContent{Year: year}
	if err := s.repo.Create(ctx, page); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create dash page")
	}
	return page, nil
}

func (s *DashService) relativePath(file *models.DashFile) string {
	return filepath.Join("dash", fmt.Sprintf("%d", file.Year), file.StoredFileName)
}
