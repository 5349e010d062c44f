package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
	"github.com/oahornets/crosstrack-api/internal/schoolyear"
)

const meetSelect = `SELECT m.id, m.sport_id, COALESCE(s.name, '') AS sport_name, m.name, m.location, m.meet_date, m.meet_type, m.opponent, m.is_home, m.our_score, m.opponent_score, m.notes, m.is_active, m.created_at, m.updated_at
	FROM meets m LEFT JOIN sports s ON s.id = m.sport_id`

// MeetRepository handles persistence for meets.
type MeetRepository struct {
	db *sqlx.DB
}

// NewMeetRepository creates a new repository instance.
func NewMeetRepository(db *sqlx.DB) *MeetRepository {
	return &MeetRepository{db: db}
}

// List returns meets matching the filter, ordered by date. A year filter
// selects meets dated inside that school year.
func (r *MeetRepository) List(ctx context.Context, filter models.MeetFilter) ([]models.Meet, error) {
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "m.is_active = TRUE")
	}
	if filter.SportID != nil {
		conditions = append(conditions, fmt.Sprintf("m.sport_id = $%d", len(args)+1))
		args = append(args, *filter.SportID)
	}
	if filter.Year != nil {
		start, end := schoolyear.Range(*filter.Year)
		conditions = append(conditions, fmt.Sprintf("m.meet_date >= $%d AND m.meet_date <= $%d", len(args)+1, len(args)+2))
		args = append(args, start, end)
	}

	query := meetSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.meet_date"

	meets := []models.Meet{}
	if err := r.db.SelectContext(ctx, &meets, query, args...); err != nil {
		return nil, fmt.Errorf("list meets: %w", err)
	}
	return meets, nil
}

// FindByID returns a meet by id.
func (r *MeetRepository) FindByID(ctx context.Context, id int) (*models.Meet, error) {
	query := meetSelect + " WHERE m.id = $1"
	var meet models.Meet
	if err := r.db.GetContext(ctx, &meet, query, id); err != nil {
		return nil, err
	}
	return &meet, nil
}

// Years returns the distinct school years of active meets, newest first.
func (r *MeetRepository) Years(ctx context.Context) ([]int, error) {
	dates := []time.Time{}
	if err := r.db.SelectContext(ctx, &dates, "SELECT meet_date FROM meets WHERE is_active = TRUE"); err != nil {
		return nil, fmt.Errorf("list meet dates: %w", err)
	}

	seen := map[int]struct{}{}
	years := []int{}
	for _, d := range dates {
		y := schoolyear.Year(d)
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// Create persists a new meet and assigns its identity.
func (r *MeetRepository) Create(ctx context.Context, meet *models.Meet) error {
	now := time.Now().UTC()
	meet.CreatedAt = now
	meet.UpdatedAt = now
	meet.IsActive = true

	const query = `INSERT INTO meets (sport_id, name, location, meet_date, meet_type, opponent, is_home, our_score, opponent_score, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if err := r.db.GetContext(ctx, &meet.ID, query,
		meet.SportID, meet.Name, meet.Location, meet.MeetDate, meet.MeetType, meet.Opponent,
		meet.IsHome, meet.OurScore, meet.OpponentScore, meet.Notes,
		meet.IsActive, meet.CreatedAt, meet.UpdatedAt); err != nil {
		return fmt.Errorf("create meet: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a meet.
func (r *MeetRepository) Update(ctx context.Context, meet *models.Meet) error {
	meet.UpdatedAt = time.Now().UTC()
	const query = `UPDATE meets SET sport_id = $1, name = $2, location = $3, meet_date = $4, meet_type = $5, opponent = $6, is_home = $7, our_score = $8, opponent_score = $9, notes = $10, updated_at = $11 WHERE id = $12`
	if _, err := r.db.ExecContext(ctx, query,
		meet.SportID, meet.Name, meet.Location, meet.MeetDate, meet.MeetType, meet.Opponent,
		meet.IsHome, meet.OurScore, meet.OpponentScore, meet.Notes, meet.UpdatedAt, meet.ID); err != nil {
		return fmt.Errorf("update meet: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *MeetRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE meets SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete meet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete meet: %w", err)
	}
	return affected > 0, nil
}
