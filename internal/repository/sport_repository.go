package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const sportColumns = "id, name, season, display_order, is_active, created_at, updated_at"

// SportRepository handles persistence for sports.
type SportRepository struct {
	db *sqlx.DB
}

// NewSportRepository creates a new repository instance.
func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

// List returns sports in display order.
func (r *SportRepository) List(ctx context.Context, includeInactive bool) ([]models.Sport, error) {
	query := "SELECT " + sportColumns + " FROM sports"
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY display_order, name"

	sports := []models.Sport{}
	if err := r.db.SelectContext(ctx, &sports, query); err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	return sports, nil
}

// FindByID returns a sport by id.
func (r *SportRepository) FindByID(ctx context.Context, id int) (*models.Sport, error) {
	const query = "SELECT " + sportColumns + " FROM sports WHERE id = $1"
	var sport models.Sport
	if err := r.db.GetContext(ctx, &sport, query, id); err != nil {
		return nil, err
	}
	return &sport, nil
}

// ExistsByName checks name uniqueness.
func (r *SportRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := "SELECT 1 FROM sports WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check sport name: %w", err)
	}
	return true, nil
}

// Count returns the total number of sports, active or not.
func (r *SportRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sports"); err != nil {
		return 0, fmt.Errorf("count sports: %w", err)
	}
	return count, nil
}

// Create persists a new sport and assigns its identity.
func (r *SportRepository) Create(ctx context.Context, sport *models.Sport) error {
	now := time.Now().UTC()
	sport.CreatedAt = now
	sport.UpdatedAt = now
	sport.IsActive = true

	const query = `INSERT INTO sports (name, season, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.GetContext(ctx, &sport.ID, query,
		sport.Name, sport.Season, sport.DisplayOrder, sport.IsActive, sport.CreatedAt, sport.UpdatedAt); err != nil {
		return fmt.Errorf("create sport: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a sport.
func (r *SportRepository) Update(ctx context.Context, sport *models.Sport) error {
	sport.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sports SET name = $1, season = $2, display_order = $3, is_active = $4, updated_at = $5 WHERE id = $6`
	if _, err := r.db.ExecContext(ctx, query,
		sport.Name, sport.Season, sport.DisplayOrder, sport.IsActive, sport.UpdatedAt, sport.ID); err != nil {
		return fmt.Errorf("update sport: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *SportRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE sports SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete sport: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete sport: %w", err)
	}
	return affected > 0, nil
}
