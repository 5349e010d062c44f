package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/schoolyear"
	appErrors "github.com/oahornets/crosstrack-api/pkg/errors"
	"github.com/oahornets/crosstrack-api/pkg/export"
)

type rosterRepository interface {
	List(ctx context.Context, filter models.RosterFilter) ([]models.RosterEntry, error)
	FindByID(ctx context.Context, id int) (*models.RosterEntry, error)
	Exists(ctx context.Context, athleteID, sportID, year int) (bool, error)
	Create(ctx context.Context, entry *models.RosterEntry) error
	Delete(ctx context.Context, id int) (bool, error)
	BulkDelete(ctx context.Context, sportID, year int, athleteIDs []int) (int, error)
	Years(ctx context.Context) ([]int, error)
}

// AddRosterEntryRequest holds payload for adding one athlete to a roster.
type AddRosterEntryRequest struct {
	AthleteID int `json:"athlete_id" validate:"required"`
	SportID   int `json:"sport_id" validate:"required"`
	Year      int `json:"year" validate:"required,min=1900,max=2200"`
}

// BulkRosterRequest holds payload for adding or removing a set of
// athletes on one sport's roster for a school year.
type BulkRosterRequest struct {
	SportID    int   `json:"sport_id" validate:"required"`
	Year       int   `json:"year" validate:"required,min=1900,max=2200"`
	AthleteIDs []int `json:"athlete_ids" validate:"required,min=1"`
}

// RosterService handles roster use-cases.
type RosterService struct {
	repo      rosterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs the roster service.
func NewRosterService(repo rosterRepository, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{repo: repo, validator: validate, logger: logger}
}

// List returns roster entries with derived grade levels.
func (s *RosterService) List(ctx context.Context, filter models.RosterFilter) ([]models.RosterEntry, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	now := time.Now()
	for i := range entries {
		entries[i].AthleteGradeLevel = schoolyear.GradeLevel(entries[i].AthleteGradYear, now)
	}
	return entries, nil
}

// Get returns a single roster entry.
func (s *RosterService) Get(ctx context.Context, id int) (*models.RosterEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "roster entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster entry")
	}
	entry.AthleteGradeLevel = schoolyear.GradeLevel(entry.AthleteGradYear, time.Now())
	return entry, nil
}

// Years returns the school years with roster activity. The current and
// next school years are always present so rosters can be built before
// the season starts.
func (s *RosterService) Years(ctx context.Context) ([]int, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster years")
	}
	return withUpcomingYears(years, schoolyear.Current(), true), nil
}

// Add puts one athlete on a roster.
func (s *RosterService) Add(ctx context.Context, req AddRosterEntryRequest) (*models.RosterEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	exists, err := s.repo.Exists(ctx, req.AthleteID, req.SportID, req.Year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate roster entry")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "athlete already on roster")
	}
	entry := &models.RosterEntry{AthleteID: req.AthleteID, SportID: req.SportID, Year: req.Year}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create roster entry")
	}
	return entry, nil
}

// BulkAdd puts a set of athletes on one roster, skipping athletes already
// present. Partial success is intentional so a retried import does not
// fail on the rows that landed the first time. The response is the full
// roster for that sport and year, pre-existing entries included.
func (s *RosterService) BulkAdd(ctx context.Context, req BulkRosterRequest) ([]models.RosterEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}

	for _, athleteID := range req.AthleteIDs {
		exists, err := s.repo.Exists(ctx, athleteID, req.SportID, req.Year)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate roster batch")
		}
		if exists {
			continue
		}
		entry := &models.RosterEntry{AthleteID: athleteID, SportID: req.SportID, Year: req.Year}
		if err := s.repo.Create(ctx, entry); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create roster batch")
		}
	}

	return s.List(ctx, models.RosterFilter{SportID: &req.SportID, Year: &req.Year})
}

// Remove takes one entry off a roster.
func (s *RosterService) Remove(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roster entry")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "roster entry not found")
	}
	return nil
}

// BulkRemove takes a set of athletes off one roster and returns how many
// entries were removed.
func (s *RosterService) BulkRemove(ctx context.Context, req BulkRosterRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	removed, err := s.repo.BulkDelete(ctx, req.SportID, req.Year, req.AthleteIDs)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roster batch")
	}
	return removed, nil
}

// Export renders a sport's roster for one school year as CSV or PDF.
func (s *RosterService) Export(ctx context.Context, sportID, year int, format string) ([]byte, string, error) {
	if format != "csv" && format != "pdf" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	entries, err := s.List(ctx, models.RosterFilter{SportID: &sportID, Year: &year})
	if err != nil {
		return nil, "", err
	}

	sportName := ""
	if len(entries) > 0 {
		sportName = entries[0].SportName
	}
	table := export.Table{
		Title:   fmt.Sprintf("%s Roster %d-%d", sportName, year-1, year),
		Columns: []string{"Last Name", "First Name", "Grade", "Gender"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{e.AthleteLastName, e.AthleteFirstName, e.AthleteGradeLevel, e.AthleteGender})
	}

	var payload []byte
	var contentType string
	switch format {
	case "csv":
		payload, err = export.RenderCSV(table)
		contentType = "text/csv"
	case "pdf":
		payload, err = export.RenderPDF(table)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster export")
	}
	return payload, contentType, nil
}
