package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const rosterSelect = `SELECT ro.id, ro.athlete_id, COALESCE(a.first_name, '') AS athlete_first_name, COALESCE(a.last_name, '') AS athlete_last_name,
	COALESCE(a.gender, '') AS athlete_gender, a.graduation_year AS athlete_graduation_year, ro.sport_id, COALESCE(s.name, '') AS sport_name, ro.year, ro.created_at
	FROM roster_entries ro
	JOIN athletes a ON a.id = ro.athlete_id
	JOIN sports s ON s.id = ro.sport_id`

// RosterRepository handles persistence for roster memberships. Roster
// entries are hard-deleted rather than flagged inactive.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new repository instance.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// List returns roster entries matching the filter. Entries whose athlete
// has been deactivated are excluded.
func (r *RosterRepository) List(ctx context.Context, filter models.RosterFilter) ([]models.RosterEntry, error) {
	conditions := []string{"a.is_active = TRUE"}
	var args []interface{}

	if filter.SportID != nil {
		conditions = append(conditions, fmt.Sprintf("ro.sport_id = $%d", len(args)+1))
		args = append(args, *filter.SportID)
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("ro.year = $%d", len(args)+1))
		args = append(args, *filter.Year)
	}
	if filter.AthleteID != nil {
		conditions = append(conditions, fmt.Sprintf("ro.athlete_id = $%d", len(args)+1))
		args = append(args, *filter.AthleteID)
	}

	query := rosterSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY a.last_name, a.first_name"

	entries := []models.RosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}
	return entries, nil
}

// FindByID returns a roster entry by id.
func (r *RosterRepository) FindByID(ctx context.Context, id int) (*models.RosterEntry, error) {
	query := rosterSelect + " WHERE ro.id = $1"
	var entry models.RosterEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Exists reports whether the athlete is already on the sport's roster for
// the given school year.
func (r *RosterRepository) Exists(ctx context.Context, athleteID, sportID, year int) (bool, error) {
	const query = `SELECT 1 FROM roster_entries WHERE athlete_id = $1 AND sport_id = $2 AND year = $3 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, athleteID, sportID, year)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check roster entry: %w", err)
	}
	return true, nil
}

// Create persists a new roster entry and assigns its identity.
func (r *RosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	entry.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO roster_entries (athlete_id, sport_id, year, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &entry.ID, query, entry.AthleteID, entry.SportID, entry.Year, entry.CreatedAt); err != nil {
		return fmt.Errorf("create roster entry: %w", err)
	}
	return nil
}

// Delete removes a roster entry, reporting whether the row existed.
func (r *RosterRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roster_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete roster entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete roster entry: %w", err)
	}
	return affected > 0, nil
}

// BulkDelete removes the given athletes from the sport's roster for one
// school year and returns the number of rows removed.
func (r *RosterRepository) BulkDelete(ctx context.Context, sportID, year int, athleteIDs []int) (int, error) {
	const query = `DELETE FROM roster_entries WHERE sport_id = $1 AND year = $2 AND athlete_id = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, sportID, year, pq.Array(athleteIDs))
	if err != nil {
		return 0, fmt.Errorf("bulk delete roster entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk delete roster entries: %w", err)
	}
	return int(affected), nil
}

// Years returns the distinct school years with at least one roster entry,
// newest first.
func (r *RosterRepository) Years(ctx context.Context) ([]int, error) {
	years := []int{}
	if err := r.db.SelectContext(ctx, &years, `SELECT DISTINCT year FROM roster_entries`); err != nil {
		return nil, fmt.Errorf("list roster years: %w", err)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
