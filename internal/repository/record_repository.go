package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const recordSelect = `SELECT rec.id, rec.event_id, COALESCE(e.name, '') AS event_name, e.sport_id, COALESCE(s.name, '') AS sport_name,
	rec.athlete_id, COALESCE(a.first_name, '') AS athlete_first_name, COALESCE(a.last_name, '') AS athlete_last_name,
	rec.gender, rec.performance, rec.performance_value, rec.grade_at_time, rec.performance_date, rec.location, rec.meet_name, rec.record_type, rec.is_active, rec.created_at, rec.updated_at
	FROM records rec
	JOIN events e ON e.id = rec.event_id
	LEFT JOIN sports s ON s.id = e.sport_id
	LEFT JOIN athletes a ON a.id = rec.athlete_id`

// RecordRepository handles persistence for all-time records.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new repository instance.
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// List returns records matching the filter ordered by event name then
// performance value ascending.
func (r *RecordRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "rec.is_active = TRUE")
	}
	if filter.EventID != nil {
		conditions = append(conditions, fmt.Sprintf("rec.event_id = $%d", len(args)+1))
		args = append(args, *filter.EventID)
	}
	if filter.SportID != nil {
		conditions = append(conditions, fmt.Sprintf("e.sport_id = $%d", len(args)+1))
		args = append(args, *filter.SportID)
	}
	if filter.AthleteID != nil {
		conditions = append(conditions, fmt.Sprintf("rec.athlete_id = $%d", len(args)+1))
		args = append(args, *filter.AthleteID)
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("rec.gender = $%d", len(args)+1))
		args = append(args, filter.Gender)
	}
	if filter.RecordType != "" {
		conditions = append(conditions, fmt.Sprintf("rec.record_type = $%d", len(args)+1))
		args = append(args, filter.RecordType)
	}

	query := recordSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.name, rec.performance_value"

	records := []models.Record{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// FindByID returns a record by id.
func (r *RecordRepository) FindByID(ctx context.Context, id int) (*models.Record, error) {
	query := recordSelect + " WHERE rec.id = $1"
	var record models.Record
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Leaderboard returns the top active records for one event and gender,
// best performance value first.
func (r *RecordRepository) Leaderboard(ctx context.Context, eventID int, gender string, top int) ([]models.Record, error) {
	query := recordSelect + " WHERE rec.event_id = $1 AND rec.gender = $2 AND rec.is_active = TRUE ORDER BY rec.performance_value LIMIT $3"
	records := []models.Record{}
	if err := r.db.SelectContext(ctx, &records, query, eventID, gender, top); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return records, nil
}

// Create persists a new record and assigns its identity.
func (r *RecordRepository) Create(ctx context.Context, record *models.Record) error {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	record.IsActive = true

	const query = `INSERT INTO records (event_id, athlete_id, gender, performance, performance_value, grade_at_time, performance_date, location, meet_name, record_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if err := r.db.GetContext(ctx, &record.ID, query,
		record.EventID, record.AthleteID, record.Gender, record.Performance, record.PerformanceValue,
		record.GradeAtTime, record.PerformanceDate, record.Location, record.MeetName, record.RecordType,
		record.IsActive, record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a record.
func (r *RecordRepository) Update(ctx context.Context, record *models.Record) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE records SET event_id = $1, athlete_id = $2, gender = $3, performance = $4, performance_value = $5, grade_at_time = $6, performance_date = $7, location = $8, meet_name = $9, record_type = $10, updated_at = $11 WHERE id = $12`
	if _, err := r.db.ExecContext(ctx, query,
		record.EventID, record.AthleteID, record.Gender, record.Performance, record.PerformanceValue,
		record.GradeAtTime, record.PerformanceDate, record.Location, record.MeetName, record.RecordType,
		record.UpdatedAt, record.ID); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *RecordRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE records SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete record: %w", err)
	}
	return affected > 0, nil
}
