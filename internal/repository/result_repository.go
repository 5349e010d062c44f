package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const resultSelect = `SELECT r.id, r.athlete_id, COALESCE(a.first_name, '') AS athlete_first_name, COALESCE(a.last_name, '') AS athlete_last_name, a.graduation_year AS athlete_graduation_year,
	r.meet_id, COALESCE(m.name, '') AS meet_name, m.meet_date, r.event_id, COALESCE(e.name, '') AS event_name, COALESCE(e.event_type, '') AS event_type,
	r.relay_team_name, r.heat_number, r.result_status, r.wind, r.performance, r.performance_display, r.place, r.points, r.is_pr, r.notes, r.is_active, r.created_at, r.updated_at
	FROM results r
	LEFT JOIN athletes a ON a.id = r.athlete_id
	JOIN meets m ON m.id = r.meet_id
	JOIN events e ON e.id = r.event_id`

// ResultRepository handles persistence for meet results.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new repository instance.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// List returns results matching the filter ordered by meet date, event
// name, then place.
func (r *ResultRepository) List(ctx context.Context, filter models.ResultFilter) ([]models.Result, error) {
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "r.is_active = TRUE")
	}
	if filter.AthleteID != nil {
		conditions = append(conditions, fmt.Sprintf("r.athlete_id = $%d", len(args)+1))
		args = append(args, *filter.AthleteID)
	}
	if filter.MeetID != nil {
		conditions = append(conditions, fmt.Sprintf("r.meet_id = $%d", len(args)+1))
		args = append(args, *filter.MeetID)
	}
	if filter.EventID != nil {
		conditions = append(conditions, fmt.Sprintf("r.event_id = $%d", len(args)+1))
		args = append(args, *filter.EventID)
	}
	if filter.SportID != nil {
		conditions = append(conditions, fmt.Sprintf("e.sport_id = $%d", len(args)+1))
		args = append(args, *filter.SportID)
	}

	query := resultSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.meet_date, e.name, r.place"

	results := []models.Result{}
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// FindByID returns a result by id.
func (r *ResultRepository) FindByID(ctx context.Context, id int) (*models.Result, error) {
	query := resultSelect + " WHERE r.id = $1"
	var result models.Result
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExistsActive reports whether an active result already exists for the
// athlete at the given meet and event.
func (r *ResultRepository) ExistsActive(ctx context.Context, athleteID, meetID, eventID int) (bool, error) {
	const query = `SELECT 1 FROM results WHERE athlete_id = $1 AND meet_id = $2 AND event_id = $3 AND is_active = TRUE LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, athleteID, meetID, eventID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check result uniqueness: %w", err)
	}
	return true, nil
}

// Create persists a new result and assigns its identity.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	now := time.Now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now
	result.IsActive = true

	const query = `INSERT INTO results (athlete_id, meet_id, event_id, relay_team_name, heat_number, result_status, wind, performance, performance_display, place, points, is_pr, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query,
		result.AthleteID, result.MeetID, result.EventID, result.RelayTeamName, result.HeatNumber,
		result.ResultStatus, result.Wind, result.Performance, result.PerformanceDisplay,
		result.Place, result.Points, result.IsPR, result.Notes,
		result.IsActive, result.CreatedAt, result.UpdatedAt); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a result.
func (r *ResultRepository) Update(ctx context.Context, result *models.Result) error {
	result.UpdatedAt = time.Now().UTC()
	const query = `UPDATE results SET athlete_id = $1, meet_id = $2, event_id = $3, relay_team_name = $4, heat_number = $5, result_status = $6, wind = $7, performance = $8, performance_display = $9, place = $10, points = $11, is_pr = $12, notes = $13, updated_at = $14 WHERE id = $15`
	if _, err := r.db.ExecContext(ctx, query,
		result.AthleteID, result.MeetID, result.EventID, result.RelayTeamName, result.HeatNumber,
		result.ResultStatus, result.Wind, result.Performance, result.PerformanceDisplay,
		result.Place, result.Points, result.IsPR, result.Notes, result.UpdatedAt, result.ID); err != nil {
		return fmt.Errorf("update result: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *ResultRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE results SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete result: %w", err)
	}
	return affected > 0, nil
}
