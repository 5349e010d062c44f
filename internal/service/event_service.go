package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Event, error)
	ListBySport(ctx context.Context, sportID int, includeInactive bool) ([]models.Event, error)
	FindByID(ctx context.Context, id int) (*models.Event, error)
	ExistsByName(ctx context.Context, sportID int, name string, excludeID int) (bool, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	SoftDelete(ctx context.Context, id int) (bool, error)
}

// CreateEventRequest holds payload for creating events.
type CreateEventRequest struct {
	Name      string `json:"name" validate:"required"`
	SportID   int    `json:"sport_id" validate:"required"`
	EventType string `json:"event_type" validate:"required,oneof=Running Field Relay"`
	SortOrder int    `json:"sort_order"`
}

// UpdateEventRequest holds payload for updating events.
type UpdateEventRequest struct {
	Name      string `json:"name" validate:"required"`
	SportID   int    `json:"sport_id" validate:"required"`
	EventType string `json:"event_type" validate:"required,oneof=Running Field Relay"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// EventService handles event catalog use-cases.
type EventService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, validator: validate, logger: logger}
}

// List returns events, optionally narrowed to one sport.
func (s *EventService) List(ctx context.Context, sportID *int, includeInactive bool) ([]models.Event, error) {
	var events []models.Event
	var err error
	if sportID != nil {
		events, err = s.repo.ListBySport(ctx, *sportID, includeInactive)
	} else {
		events, err = s.repo.List(ctx, includeInactive)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// Create registers a new event.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	exists, err := s.repo.ExistsByName(ctx, req.SportID, req.Name, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate event name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "event name already used for sport")
	}
	event := &models.Event{
		Name:      req.Name,
		SportID:   req.SportID,
		EventType: req.EventType,
		SortOrder: req.SortOrder,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil
}

// Update modifies an existing event.
func (s *EventService) Update(ctx context.Context, id int, req UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	exists, err := s.repo.ExistsByName(ctx, req.SportID, req.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate event name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "event name already used for sport")
	}
	event.Name = req.Name
	event.SportID = req.SportID
	event.EventType = req.EventType
	event.SortOrder = req.SortOrder
	event.IsActive = req.IsActive
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil
}

// Delete marks an event inactive.
func (s *EventService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}
