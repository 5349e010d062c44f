package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type sportRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Sport, error)
	FindByID(ctx context.Context, id int) (*models.Sport, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, sport *models.Sport) error
	Update(ctx context.Context, sport *models.Sport) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// CreateSportRequest holds payload for creating sports.
type CreateSportRequest struct {
	Name         string `json:"name" validate:"required"`
	Season       string `json:"season" validate:"required,oneof=Fall Winter Spring Special"`
	DisplayOrder int    `json:"display_order"`
}

// UpdateSportRequest holds payload for updating sports.
type UpdateSportRequest struct {
	Name         string `json:"name" validate:"required"`
	Season       string `json:"season" validate:"required,oneof=Fall Winter Spring Special"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// SportService handles sport use-cases.
type SportService struct {
	repo      sportRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSportService constructs the sport service.
func NewSportService(repo sportRepository, validate *validator.Validate, logger *zap.Logger) *SportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SportService{repo: repo, validator: validate, logger: logger}
}

// List returns sports in display order.
func (s *SportService) List(ctx context.Context, includeInactive bool) ([]models.Sport, error) {
	sports, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sports")
	}
	return sports, nil
}

// Get returns one sport.
func (s *SportService) Get(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sport not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sport")
	}
	return sport, nil
}

// Create registers a new sport.
func (s *SportService) Create(ctx context.Context, req CreateSportRequest) (*models.Sport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sport payload")
	}
	exists, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate sport name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "sport name already used")
	}
	sport := &models.Sport{
		Name:         req.Name,
		Season:       req.Season,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.repo.Create(ctx, sport); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create sport")
	}
	return sport, nil
}

// Update modifies an existing sport.
func (s *SportService) Update(ctx context.Context, id int, req UpdateSportRequest) (*models.Sport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sport payload")
	}
	sport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "sport not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sport")
	}
	exists, err := s.repo.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate sport name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "sport name already used")
	}
	sport.Name = req.Name
	sport.Season = req.Season
	sport.DisplayOrder = req.DisplayOrder
	sport.IsActive = req.IsActive
	if err := s.repo.Update(ctx, sport); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update sport")
	}
	return sport, nil
}

// Delete marks a sport inactive.
func (s *SportService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete sport")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "sport not found")
	}
	return nil
}
