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

type meetRepository interface {
	List(ctx context.Context, filter models.MeetFilter) ([]models.Meet, error)
	FindByID(ctx context.Context, id int) (*models.Meet, error)
	Years(ctx context.Context) ([]int, error)
	Create(ctx context.Context, meet *models.Meet) error
	Update(ctx context.Context, meet *models.Meet) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// CreateMeetRequest holds payload for creating meets.
type CreateMeetRequest struct {
	SportID       int       `json:"sport_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Location      *string   `json:"location"`
	MeetDate      time.Time `json:"meet_date" validate:"required"`
	MeetType      string    `json:"meet_type" validate:"required"`
	Opponent      *string   `json:"opponent"`
	IsHome        bool      `json:"is_home"`
	OurScore      *int      `json:"our_score"`
	OpponentScore *int      `json:"opponent_score"`
	Notes         *string   `json:"notes"`
}

// UpdateMeetRequest holds payload for updating meets.
type UpdateMeetRequest struct {
	SportID       int       `json:"sport_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Location      *string   `json:"location"`
	MeetDate      time.Time `json:"meet_date" validate:"required"`
	MeetType      string    `json:"meet_type" validate:"required"`
	Opponent      *string   `json:"opponent"`
	IsHome        bool      `json:"is_home"`
	OurScore      *int      `json:"our_score"`
	OpponentScore *int      `json:"opponent_score"`
	Notes         *string   `json:"notes"`
	IsActive      bool      `json:"is_active"`
}

// MeetService handles meet use-cases.
type MeetService struct {
	repo      meetRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMeetService constructs the meet service.
func NewMeetService(repo meetRepository, validate *validator.Validate, logger *zap.Logger) *MeetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetService{repo: repo, validator: validate, logger: logger}
}

// List returns meets matching the filter.
func (s *MeetService) List(ctx context.Context, filter models.MeetFilter) ([]models.Meet, error) {
	meets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list meets")
	}
	return meets, nil
}

// Get returns one meet.
func (s *MeetService) Get(ctx context.Context, id int) (*models.Meet, error) {
	meet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "meet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meet")
	}
	return meet, nil
}

// Years returns the school years with scheduled meets. The current and
// next school years are always present so the schedule can be built ahead
// of the first meet.
func (s *MeetService) Years(ctx context.Context) ([]int, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list meet years")
	}
	return withUpcomingYears(years, schoolyear.Current(), true), nil
}

// Create registers a new meet.
func (s *MeetService) Create(ctx context.Context, req CreateMeetRequest) (*models.Meet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meet payload")
	}
	meet := &models.Meet{
		SportID:       req.SportID,
		Name:          req.Name,
		Location:      req.Location,
		MeetDate:      req.MeetDate,
		MeetType:      req.MeetType,
		Opponent:      req.Opponent,
		IsHome:        req.IsHome,
		OurScore:      req.OurScore,
		OpponentScore: req.OpponentScore,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, meet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create meet")
	}
	return meet, nil
}

// Update modifies an existing meet.
func (s *MeetService) Update(ctx context.Context, id int, req UpdateMeetRequest) (*models.Meet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meet payload")
	}
	meet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "meet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meet")
	}
	meet.SportID = req.SportID
	meet.Name = req.Name
	meet.Location = req.Location
	meet.MeetDate = req.MeetDate
	meet.MeetType = req.MeetType
	meet.Opponent = req.Opponent
	meet.IsHome = req.IsHome
	meet.OurScore = req.OurScore
	meet.OpponentScore = req.OpponentScore
	meet.Notes = req.Notes
	meet.IsActive = req.IsActive
	if err := s.repo.Update(ctx, meet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update meet")
	}
	return meet, nil
}

// Delete marks a meet inactive.
func (s *MeetService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete meet")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "meet not found")
	}
	return nil
}

// withUpcomingYears prepends the current school year, and optionally the
// next one, to a descending year list without duplicating entries already
// present.
func withUpcomingYears(years []int, current int, includeNext bool) []int {
	seen := make(map[int]bool, len(years))
	for _, y := range years {
		seen[y] = true
	}

	prepend := []int{}
	if includeNext && !seen[current+1] {
		prepend = append(prepend, current+1)
	}
	if !seen[current] {
		prepend = append(prepend, current)
	}
	return append(prepend, years...)
}
