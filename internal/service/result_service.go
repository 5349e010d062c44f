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

type resultRepository interface {
	List(ctx context.Context, filter models.ResultFilter) ([]models.Result, error)
	FindByID(ctx context.Context, id int) (*models.Result, error)
	ExistsActive(ctx context.Context, athleteID, meetID, eventID int) (bool, error)
	Create(ctx context.Context, result *models.Result) error
	Update(ctx context.Context, result *models.Result) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// ResultRequest holds payload for creating or updating a result. Relay
// entries omit the athlete and carry a team name instead.
type ResultRequest struct {
	AthleteID          *int     `json:"athlete_id"`
	MeetID             int      `json:"meet_id" validate:"required"`
	EventID            int      `json:"event_id" validate:"required"`
	RelayTeamName      *string  `json:"relay_team_name"`
	HeatNumber         *int     `json:"heat_number"`
	ResultStatus       *string  `json:"result_status" validate:"omitempty,oneof=DQ DNS DNF SCR"`
	Wind               *float64 `json:"wind"`
	Performance        *float64 `json:"performance"`
	PerformanceDisplay *string  `json:"performance_display"`
	Place              *int     `json:"place"`
	Points             *int     `json:"points"`
	IsPR               bool     `json:"is_pr"`
	Notes              *string  `json:"notes"`
}

// BulkResultRow is one performance inside a bulk upload. The meet and
// event come from the enclosing request, so a batch covers exactly one
// race.
type BulkResultRow struct {
	AthleteID          *int     `json:"athlete_id"`
	RelayTeamName      *string  `json:"relay_team_name"`
	HeatNumber         *int     `json:"heat_number"`
	ResultStatus       *string  `json:"result_status" validate:"omitempty,oneof=DQ DNS DNF SCR"`
	Wind               *float64 `json:"wind"`
	Performance        *float64 `json:"performance"`
	PerformanceDisplay *string  `json:"performance_display"`
	Place              *int     `json:"place"`
	Points             *int     `json:"points"`
	IsPR               bool     `json:"is_pr"`
	Notes              *string  `json:"notes"`
}

// BulkCreateResultsRequest carries one meet and event's batch of results.
type BulkCreateResultsRequest struct {
	MeetID  int             `json:"meet_id" validate:"required"`
	EventID int             `json:"event_id" validate:"required"`
	Results []BulkResultRow `json:"results" validate:"required,min=1,dive"`
}

// ResultService handles meet result use-cases.
type ResultService struct {
	repo      resultRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs the result service.
func NewResultService(repo resultRepository, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{repo: repo, validator: validate, logger: logger}
}

// List returns results with derived athlete grade levels.
func (s *ResultService) List(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	results, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	now := time.Now()
	for i := range results {
		if results[i].AthleteGradYear != nil {
			results[i].AthleteGradeLevel = schoolyear.GradeLevel(*results[i].AthleteGradYear, now)
		}
	}
	return results, nil
}

// Get returns one result.
func (s *ResultService) Get(ctx context.Context, id int) (*models.Result, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	if result.AthleteGradYear != nil {
		result.AthleteGradeLevel = schoolyear.GradeLevel(*result.AthleteGradYear, time.Now())
	}
	return result, nil
}

// Create registers a single result.
func (s *ResultService) Create(ctx context.Context, req ResultRequest) (*models.Result, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	if req.AthleteID != nil {
		exists, err := s.repo.ExistsActive(ctx, *req.AthleteID, req.MeetID, req.EventID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate result")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "result already recorded for athlete at meet and event")
		}
	}
	result := resultFromRequest(req)
	if err := s.repo.Create(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result")
	}
	return result, nil
}

// BulkCreate inserts a batch of results for one meet and event, skipping
// athletes who already have an active result there. Partial success is
// the intended behavior for meet-day uploads that get retried. The
// response is the full set of active results for that meet and event,
// pre-existing rows included.
func (s *ResultService) BulkCreate(ctx context.Context, req BulkCreateResultsRequest) ([]models.Result, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid results payload")
	}

	for _, row := range req.Results {
		if row.AthleteID != nil {
			exists, err := s.repo.ExistsActive(ctx, *row.AthleteID, req.MeetID, req.EventID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate result batch")
			}
			if exists {
				continue
			}
		}
		result := resultFromRow(req.MeetID, req.EventID, row)
		if err := s.repo.Create(ctx, result); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result batch")
		}
	}

	return s.List(ctx, models.ResultFilter{MeetID: &req.MeetID, EventID: &req.EventID, ActiveOnly: true})
}

// Update modifies an existing result.
func (s *ResultService) Update(ctx context.Context, id int, req ResultRequest) (*models.Result, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	result.AthleteID = req.AthleteID
	result.MeetID = req.MeetID
	result.EventID = req.EventID
	result.RelayTeamName = req.RelayTeamName
	result.HeatNumber = req.HeatNumber
	result.ResultStatus = req.ResultStatus
	result.Wind = req.Wind
	result.Performance = req.Performance
	result.PerformanceDisplay = req.PerformanceDisplay
	result.Place = req.Place
	result.Points = req.Points
	result.IsPR = req.IsPR
	result.Notes = req.Notes
	if err := s.repo.Update(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update result")
	}
	return result, nil
}

// Delete marks a result inactive.
func (s *ResultService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete result")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "result not found")
	}
	return nil
}

func resultFromRow(meetID, eventID int, row BulkResultRow) *models.Result {
	return &models.Result{
		AthleteID:          row.AthleteID,
		MeetID:             meetID,
		EventID:            eventID,
		RelayTeamName:      row.RelayTeamName,
		HeatNumber:         row.HeatNumber,
		ResultStatus:       row.ResultStatus,
		Wind:               row.Wind,
		Performance:        row.Performance,
		PerformanceDisplay: row.PerformanceDisplay,
		Place:              row.Place,
		Points:             row.Points,
		IsPR:               row.IsPR,
		Notes:              row.Notes,
	}
}

func resultFromRequest(req ResultRequest) *models.Result {
	return &models.Result{
		AthleteID:          req.AthleteID,
		MeetID:             req.MeetID,
		EventID:            req.EventID,
		RelayTeamName:      req.RelayTeamName,
		HeatNumber:         req.HeatNumber,
		ResultStatus:       req.ResultStatus,
		Wind:               req.Wind,
		Performance:        req.Performance,
		PerformanceDisplay: req.PerformanceDisplay,
		Place:              req.Place,
		Points:             req.Points,
		IsPR:               req.IsPR,
		Notes:              req.Notes,
	}
}
