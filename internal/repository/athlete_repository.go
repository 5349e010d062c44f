package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const athleteColumns = "id, first_name, last_name, graduation_year, gender, is_active, created_at, updated_at"

// AthleteRepository handles persistence for athletes.
type AthleteRepository struct {
	db *sqlx.DB
}

// NewAthleteRepository creates a new repository instance.
func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

// List returns athletes ordered by last then first name.
func (r *AthleteRepository) List(ctx context.Context, includeInactive bool) ([]models.Athlete, error) {
	query := "SELECT " + athleteColumns + " FROM athletes"
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY last_name, first_name"

	athletes := []models.Athlete{}
	if err := r.db.SelectContext(ctx, &athletes, query); err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return athletes, nil
}

// FindByID returns an athlete by id.
func (r *AthleteRepository) FindByID(ctx context.Context, id int) (*models.Athlete, error) {
	const query = "SELECT " + athleteColumns + " FROM athletes WHERE id = $1"
	var athlete models.Athlete
	if err := r.db.GetContext(ctx, &athlete, query, id); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Exists checks the (first, last, graduation year) uniqueness constraint.
func (r *AthleteRepository) Exists(ctx context.Context, firstName, lastName string, graduationYear, excludeID int) (bool, error) {
	query := "SELECT 1 FROM athletes WHERE LOWER(first_name) = LOWER($1) AND LOWER(last_name) = LOWER($2) AND graduation_year = $3"
	args := []interface{}{firstName, lastName, graduationYear}
	if excludeID > 0 {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check athlete uniqueness: %w", err)
	}
	return true, nil
}

// Create persists a new athlete and assigns its identity.
func (r *AthleteRepository) Create(ctx context.Context, athlete *models.Athlete) error {
	now := time.Now().UTC()
	athlete.CreatedAt = now
	athlete.UpdatedAt = now
	athlete.IsActive = true

	const query = `INSERT INTO athletes (first_name, last_name, graduation_year, gender, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &athlete.ID, query,
		athlete.FirstName, athlete.LastName, athlete.GraduationYear, athlete.Gender,
		athlete.IsActive, athlete.CreatedAt, athlete.UpdatedAt); err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an athlete.
func (r *AthleteRepository) Update(ctx context.Context, athlete *models.Athlete) error {
	athlete.UpdatedAt = time.Now().UTC()
	const query = `UPDATE athletes SET first_name = $1, last_name = $2, graduation_year = $3, gender = $4, is_active = $5, updated_at = $6 WHERE id = $7`
	if _, err := r.db.ExecContext(ctx, query,
		athlete.FirstName, athlete.LastName, athlete.GraduationYear, athlete.Gender,
		athlete.IsActive, athlete.UpdatedAt, athlete.ID); err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *AthleteRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE athletes SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete athlete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete athlete: %w", err)
	}
	return affected > 0, nil
}
