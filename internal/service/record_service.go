package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

const (
	leaderboardDefaultTop = 10
	leaderboardCacheTTL   = 5 * time.Minute
)

type recordRepository interface {
	List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)
	FindByID(ctx context.Context, id int) (*models.Record, error)
	Leaderboard(ctx context.Context, eventID int, gender string, top int) ([]models.Record, error)
	Create(ctx context.Context, record *models.Record) error
	Update(ctx context.Context, record *models.Record) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// RecordRequest holds payload for creating or updating a record.
type RecordRequest struct {
	EventID          int       `json:"event_id" validate:"required"`
	AthleteID        int       `json:"athlete_id" validate:"required"`
	Gender           string    `json:"gender" validate:"required,oneof=M F"`
	Performance      string    `json:"performance" validate:"required"`
	PerformanceValue float64   `json:"performance_value" validate:"required"`
	GradeAtTime      *string   `json:"grade_at_time"`
	PerformanceDate  time.Time `json:"performance_date" validate:"required"`
	Location         *string   `json:"location"`
	MeetName         *string   `json:"meet_name"`
	RecordType       string    `json:"record_type" validate:"required,oneof=School Conference State"`
}

// RecordService handles all-time record use-cases. Leaderboards are
// cached because they back the public records page.
type RecordService struct {
	repo      recordRepository
	cache     cacheStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRecordService constructs the record service.
func NewRecordService(repo recordRepository, cache cacheStore, validate *validator.Validate, logger *zap.Logger) *RecordService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns records matching the filter.
func (s *RecordService) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list records")
	}
	return records, nil
}

// Get returns one record.
func (s *RecordService) Get(ctx context.Context, id int) (*models.Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load record")
	}
	return record, nil
}

// Leaderboard returns the best performances for an event and gender.
// Gender is mandatory; a leaderboard mixing genders is meaningless.
func (s *RecordService) Leaderboard(ctx context.Context, eventID int, gender string, top int) ([]models.Record, error) {
	if gender == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gender is required")
	}
	if gender != "M" && gender != "F" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gender must be M or F")
	}
	if top <= 0 {
		top = leaderboardDefaultTop
	}

	key := fmt.Sprintf("leaderboard:%d:%s:%d", eventID, gender, top)
	if s.cache != nil {
		var cached []models.Record
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	records, err := s.repo.Leaderboard(ctx, eventID, gender, top)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leaderboard")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, records, leaderboardCacheTTL); err != nil {
			s.logger.Warn("leaderboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return records, nil
}

// Create registers a new record.
func (s *RecordService) Create(ctx context.Context, req RecordRequest) (*models.Record, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload")
	}
	record := recordFromRequest(req)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create record")
	}
	s.invalidateLeaderboards(ctx)
	return record, nil
}

// Update modifies an existing record.
func (s *RecordService) Update(ctx context.Context, id int, req RecordRequest) (*models.Record, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load record")
	}
	record.EventID = req.EventID
	record.AthleteID = req.AthleteID
	record.Gender = req.Gender
	record.Performance = req.Performance
	record.PerformanceValue = req.PerformanceValue
	record.GradeAtTime = req.GradeAtTime
	record.PerformanceDate = req.PerformanceDate
	record.Location = req.Location
	record.MeetName = req.MeetName
	record.RecordType = req.RecordType
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update record")
	}
	s.invalidateLeaderboards(ctx)
	return record, nil
}

// Delete marks a record inactive.
func (s *RecordService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete record")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}
	s.invalidateLeaderboards(ctx)
	return nil
}

func (s *RecordService) invalidateLeaderboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "leaderboard:*"); err != nil {
		s.logger.Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
}

func recordFromRequest(req RecordRequest) *models.Record {
	return &models.Record{
		EventID:          req.EventID,
		AthleteID:        req.AthleteID,
		Gender:           req.Gender,
		Performance:      req.Performance,
		PerformanceValue: req.PerformanceValue,
		GradeAtTime:      req.GradeAtTime,
		PerformanceDate:  req.PerformanceDate,
		Location:         req.Location,
		MeetName:         req.MeetName,
		RecordType:       req.RecordType,
	}
}
