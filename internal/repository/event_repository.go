package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const eventSelect = `SELECT e.id, e.name, e.sport_id, COALESCE(s.name, '') AS sport_name, e.event_type, e.sort_order, e.is_active, e.created_at, e.updated_at
	FROM events e LEFT JOIN sports s ON s.id = e.sport_id`

// EventRepository handles persistence for competition events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new repository instance.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events ordered by sport, sort order, then name.
func (r *EventRepository) List(ctx context.Context, includeInactive bool) ([]models.Event, error) {
	query := eventSelect
	if !includeInactive {
		query += " WHERE e.is_active = TRUE"
	}
	query += " ORDER BY e.sport_id, e.sort_order, e.name"

	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListBySport returns a single sport's events in sort order.
func (r *EventRepository) ListBySport(ctx context.Context, sportID int, includeInactive bool) ([]models.Event, error) {
	query := eventSelect + " WHERE e.sport_id = $1"
	if !includeInactive {
		query += " AND e.is_active = TRUE"
	}
	query += " ORDER BY e.sort_order, e.name"

	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query, sportID); err != nil {
		return nil, fmt.Errorf("list events by sport: %w", err)
	}
	return events, nil
}

// FindByID returns an event by id.
func (r *EventRepository) FindByID(ctx context.Context, id int) (*models.Event, error) {
	query := eventSelect + " WHERE e.id = $1"
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// ExistsByName checks the (sport, name) uniqueness constraint.
func (r *EventRepository) ExistsByName(ctx context.Context, sportID int, name string, excludeID int) (bool, error) {
	query := "SELECT 1 FROM events WHERE sport_id = $1 AND LOWER(name) = LOWER($2)"
	args := []interface{}{sportID, name}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check event name: %w", err)
	}
	return true, nil
}

// Count returns the total number of events, active or not.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// Create persists a new event and assigns its identity.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.IsActive = true

	const query = `INSERT INTO events (name, sport_id, event_type, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &event.ID, query,
		event.Name, event.SportID, event.EventType, event.SortOrder,
		event.IsActive, event.CreatedAt, event.UpdatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET name = $1, sport_id = $2, event_type = $3, sort_order = $4, is_active = $5, updated_at = $6 WHERE id = $7`
	if _, err := r.db.ExecContext(ctx, query,
		event.Name, event.SportID, event.EventType, event.SortOrder,
		event.IsActive, event.UpdatedAt, event.ID); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *EventRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE events SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete event: %w", err)
	}
	return affected > 0, nil
}
