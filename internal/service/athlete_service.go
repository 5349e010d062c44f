package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/schoolyear"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type athleteRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Athlete, error)
	FindByID(ctx context.Context, id int) (*models.Athlete, error)
	Exists(ctx context.Context, firstName, lastName string, graduationYear, excludeID int) (bool, error)
	Create(ctx context.Context, athlete *models.Athlete) error
	Update(ctx context.Context, athlete *models.Athlete) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// CreateAthleteRequest holds payload for creating athletes.
type CreateAthleteRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	GraduationYear int    `json:"graduation_year" validate:"required,min=1900,max=2200"`
	Gender         string `json:"gender" validate:"required,oneof=M F"`
}

// UpdateAthleteRequest holds payload for updating athletes.
type UpdateAthleteRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	GraduationYear int    `json:"graduation_year" validate:"required,min=1900,max=2200"`
	Gender         string `json:"gender" validate:"required,oneof=M F"`
	IsActive       bool   `json:"is_active"`
}

// AthleteService handles athlete use-cases.
type AthleteService struct {
	repo      athleteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAthleteService constructs the athlete service.
func NewAthleteService(repo athleteRepository, validate *validator.Validate, logger *zap.Logger) *AthleteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AthleteService{repo: repo, validator: validate, logger: logger}
}

// List returns athletes with their derived grade level.
func (s *AthleteService) List(ctx context.Context, includeInactive bool) ([]models.Athlete, error) {
	athletes, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list athletes")
	}
	now := time.Now()
	for i := range athletes {
		athletes[i].GradeLevel = schoolyear.GradeLevel(athletes[i].GraduationYear, now)
	}
	return athletes, nil
}

// Get returns one athlete.
func (s *AthleteService) Get(ctx context.Context, id int) (*models.Athlete, error) {
	athlete, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "athlete not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load athlete")
	}
	athlete.GradeLevel = schoolyear.GradeLevel(athlete.GraduationYear, time.Now())
	return athlete, nil
}

// Create registers a new athlete.
func (s *AthleteService) Create(ctx context.Context, req CreateAthleteRequest) (*models.Athlete, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid athlete payload")
	}
	exists, err := s.repo.Exists(ctx, req.FirstName, req.LastName, req.GraduationYear, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate athlete")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "athlete already exists")
	}
	athlete := &models.Athlete{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		GraduationYear: req.GraduationYear,
		Gender:         req.Gender,
	}
	if err := s.repo.Create(ctx, athlete); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create athlete")
	}
	athlete.GradeLevel = schoolyear.GradeLevel(athlete.GraduationYear, time.Now())
	return athlete, nil
}

// Update modifies an existing athlete.
func (s *AthleteService) Update(ctx context.Context, id int, req UpdateAthleteRequest) (*models.Athlete, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid athlete payload")
	}
	athlete, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "athlete not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load athlete")
	}
	exists, err := s.repo.Exists(ctx, req.FirstName, req.LastName, req.GraduationYear, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate athlete")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "athlete already exists")
	}
	athlete.FirstName = req.FirstName
	athlete.LastName = req.LastName
	athlete.GraduationYear = req.GraduationYear
	athlete.Gender = req.Gender
	athlete.IsActive = req.IsActive
	if err := s.repo.Update(ctx, athlete); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update athlete")
	}
	athlete.GradeLevel = schoolyear.GradeLevel(athlete.GraduationYear, time.Now())
	return athlete, nil
}

// Delete marks an athlete inactive.
func (s *AthleteService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete athlete")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "athlete not found")
	}
	return nil
}
