package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type historyRepository interface {
	ListActive(ctx context.Context) ([]models.HistoryContent, error)
	FindBySport(ctx context.Context, sportID int, onlyActive bool) (*models.HistoryContent, error)
	Create(ctx context.Context, page *models.HistoryContent) error
	Update(ctx context.Context, page *models.HistoryContent) error
	SoftDelete(ctx context.Context, sportID int) (bool, error)
}

// UpsertHistoryRequest holds payload for writing a sport's history page.
type UpsertHistoryRequest struct {
	MarkdownContent string `json:"markdown_content" validate:"required"`
}

// HistoryService handles the per-sport history pages. Writes are an
// upsert keyed on sport: the first PUT creates the row, later PUTs
// replace it, and a PUT after a delete revives it.
type HistoryService struct {
	repo      historyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHistoryService constructs the history service.
func NewHistoryService(repo historyRepository, validate *validator.Validate, logger *zap.Logger) *HistoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{repo: repo, validator: validate, logger: logger}
}

// List returns the active history pages in sport display order.
func (s *HistoryService) List(ctx context.Context) ([]models.HistoryContent, error) {
	pages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list history pages")
	}
	return pages, nil
}

// Get returns the active history page for one sport.
func (s *HistoryService) Get(ctx context.Context, sportID int) (*models.HistoryContent, error) {
	page, err := s.repo.FindBySport(ctx, sportID, true)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "history page not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load history page")
	}
	return page, nil
}

// Upsert writes the history page for one sport, creating it on first
// write.
func (s *HistoryService) Upsert(ctx context.Context, sportID int, req UpsertHistoryRequest) (*models.HistoryContent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid history payload")
	}

	page, err := s.repo.FindBySport(ctx, sportID, false)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load history page")
		}
		page = &models.HistoryContent{SportID: sportID, MarkdownContent: req.MarkdownContent}
		if err := s.repo.Create(ctx, page); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create history page")
		}
		return page, nil
	}

	page.MarkdownContent = req.MarkdownContent
	if err := s.repo.Update(ctx, page); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update history page")
	}
	return page, nil
}

// Delete marks a sport's history page inactive.
func (s *HistoryService) Delete(ctx context.Context, sportID int) error {
	deleted, err := s.repo.SoftDelete(ctx, sportID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete history page")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "history page not found")
	}
	return nil
}
