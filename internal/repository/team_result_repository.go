package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const teamResultSelect = `SELECT tr.id, tr.sport_id, COALESCE(s.name, '') AS sport_name, tr.year, tr.meet_date,
	tr.gender, tr.home_team, tr.away_team, tr.home_score, tr.away_score, tr.is_division_match, tr.notes, tr.is_active, tr.created_at, tr.updated_at
	FROM team_meet_results tr
	LEFT JOIN sports s ON s.id = tr.sport_id`

// TeamResultRepository handles persistence for head-to-head team meet
// results.
type TeamResultRepository struct {
	db *sqlx.DB
}

// NewTeamResultRepository creates a new repository instance.
func NewTeamResultRepository(db *sqlx.DB) *TeamResultRepository {
	return &TeamResultRepository{db: db}
}

// List returns team meet results matching the filter, most recent meet
// first.
func (r *TeamResultRepository) List(ctx context.Context, filter models.TeamMeetResultFilter) ([]models.TeamMeetResult, error) {
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "tr.is_active = TRUE")
	}
	if filter.SportID != nil {
		conditions = append(conditions, fmt.Sprintf("tr.sport_id = $%d", len(args)+1))
		args = append(args, *filter.SportID)
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("tr.year = $%d", len(args)+1))
		args = append(args, *filter.Year)
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("tr.gender = $%d", len(args)+1))
		args = append(args, filter.Gender)
	}

	query := teamResultSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY tr.meet_date DESC, tr.home_team"

	results := []models.TeamMeetResult{}
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list team results: %w", err)
	}
	return results, nil
}

// FindByID returns a team meet result by id.
func (r *TeamResultRepository) FindByID(ctx context.Context, id int) (*models.TeamMeetResult, error) {
	query := teamResultSelect + " WHERE tr.id = $1"
	var result models.TeamMeetResult
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListForStandings returns the active results feeding the standings table
// for one sport, school year and gender, ordered by meet date so the
// aggregation walks the season chronologically.
func (r *TeamResultRepository) ListForStandings(ctx context.Context, sportID, year int, gender string) ([]models.TeamMeetResult, error) {
	query := teamResultSelect + ` WHERE tr.is_active = TRUE AND tr.sport_id = $1 AND tr.year = $2 AND tr.gender = $3 ORDER BY tr.meet_date`
	results := []models.TeamMeetResult{}
	if err := r.db.SelectContext(ctx, &results, query, sportID, year, gender); err != nil {
		return nil, fmt.Errorf("list standings results: %w", err)
	}
	return results, nil
}

// DistinctTeams returns every team name seen in active results for one
// sport and school year, home and away sides combined, alphabetically.
func (r *TeamResultRepository) DistinctTeams(ctx context.Context, sportID, year int) ([]string, error) {
	const query = `SELECT DISTINCT team FROM (
		SELECT home_team AS team FROM team_meet_results WHERE is_active = TRUE AND sport_id = $1 AND year = $2
		UNION
		SELECT away_team AS team FROM team_meet_results WHERE is_active = TRUE AND sport_id = $1 AND year = $2
	) t ORDER BY team`
	teams := []string{}
	if err := r.db.SelectContext(ctx, &teams, query, sportID, year); err != nil {
		return nil, fmt.Errorf("list team names: %w", err)
	}
	return teams, nil
}

// Years returns the distinct school years with active team results,
// newest first.
func (r *TeamResultRepository) Years(ctx context.Context) ([]int, error) {
	years := []int{}
	if err := r.db.SelectContext(ctx, &years, `SELECT DISTINCT year FROM team_meet_results WHERE is_active = TRUE ORDER BY year DESC`); err != nil {
		return nil, fmt.Errorf("list team result years: %w", err)
	}
	return years, nil
}

// Create persists a new team meet result and assigns its identity.
func (r *TeamResultRepository) Create(ctx context.Context, result *models.TeamMeetResult) error {
	now := time.Now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now
	result.IsActive = true

	const query = `INSERT INTO team_meet_results (sport_id, year, meet_date, gender, home_team, away_team, home_score, away_score, is_division_match, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query,
		result.SportID, result.Year, result.MeetDate, result.Gender, result.HomeTeam, result.AwayTeam,
		result.HomeScore, result.AwayScore, result.IsDivisionMatch, result.Notes,
		result.IsActive, result.CreatedAt, result.UpdatedAt); err != nil {
		return fmt.Errorf("create team result: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a team meet result.
func (r *TeamResultRepository) Update(ctx context.Context, result *models.TeamMeetResult) error {
	result.UpdatedAt = time.Now().UTC()
	const query = `UPDATE team_meet_results SET sport_id = $1, year = $2, meet_date = $3, gender = $4, home_team = $5, away_team = $6, home_score = $7, away_score = $8, is_division_match = $9, notes = $10, updated_at = $11 WHERE id = $12`
	if _, err := r.db.ExecContext(ctx, query,
		result.SportID, result.Year, result.MeetDate, result.Gender, result.HomeTeam, result.AwayTeam,
		result.HomeScore, result.AwayScore, result.IsDivisionMatch, result.Notes,
		result.UpdatedAt, result.ID); err != nil {
		return fmt.Errorf("update team result: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *TeamResultRepository) SoftDelete(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE team_meet_results SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete team result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete team result: %w", err)
	}
	return affected > 0, nil
}
