package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const dashColumns = `id, year, registration_markdown, past_results_markdown, course_map_markdown, is_active, created_at, updated_at`

const dashFileSelect = `SELECT f.id, f.dash_content_id, c.year, f.original_file_name, f.stored_file_name, f.content_type, f.file_size, f.category, f.description, f.is_active, f.created_at, f.updated_at
	FROM dash_files f
	JOIN dash_content c ON c.id = f.dash_content_id`

// DashRepository handles persistence for Dash in the Dark pages and their
// uploaded files.
type DashRepository struct {
	db *sqlx.DB
}

// NewDashRepository creates a new repository instance.
func NewDashRepository(db *sqlx.DB) *DashRepository {
	return &DashRepository{db: db}
}

// ListActive returns the active dash pages, newest year first. Files are
// not attached; callers hydrate them per page.
func (r *DashRepository) ListActive(ctx context.Context) ([]models.DashContent, error) {
	query := `SELECT ` + dashColumns + ` FROM dash_content WHERE is_active = TRUE ORDER BY year DESC`
	pages := []models.DashContent{}
	if err := r.db.SelectContext(ctx, &pages, query); err != nil {
		return nil, fmt.Errorf("list dash content: %w", err)
	}
	return pages, nil
}

// FindByYear returns the dash page for one year. When onlyActive is set,
// an inactive page is treated as absent.
func (r *DashRepository) FindByYear(ctx context.Context, year int, onlyActive bool) (*models.DashContent, error) {
	query := `SELECT ` + dashColumns + ` FROM dash_content WHERE year = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	var page models.DashContent
	if err := r.db.GetContext(ctx, &page, query, year); err != nil {
		return nil, err
	}
	return &page, nil
}

// Years returns the distinct years with active dash pages, newest first.
func (r *DashRepository) Years(ctx context.Context) ([]int, error) {
	years := []int{}
	if err := r.db.SelectContext(ctx, &years, `SELECT year FROM dash_content WHERE is_active = TRUE ORDER BY year DESC`); err != nil {
		return nil, fmt.Errorf("list dash years: %w", err)
	}
	return years, nil
}

// Create persists a new dash page and assigns its identity.
func (r *DashRepository) Create(ctx context.Context, page *models.DashContent) error {
	now := time.Now().UTC()
	page.CreatedAt = now
	page.UpdatedAt = now
	page.IsActive = true

	const query = `INSERT INTO dash_content (year, registration_markdown, past_results_markdown, course_map_markdown, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.GetContext(ctx, &page.ID, query,
		page.Year, page.RegistrationMarkdown, page.PastResultsMarkdown, page.CourseMapMarkdown,
		page.IsActive, page.CreatedAt, page.UpdatedAt); err != nil {
		return fmt.Errorf("create dash content: %w", err)
	}
	return nil
}

// Update replaces the page bodies and reactivates the row.
func (r *DashRepository) Update(ctx context.Context, page *models.DashContent) error {
	page.UpdatedAt = time.Now().UTC()
	page.IsActive = true
	const query = `UPDATE dash_content SET registration_markdown = $1, past_results_markdown = $2, course_map_markdown = $3, is_active = TRUE, updated_at = $4 WHERE id = $5`
	if _, err := r.db.ExecContext(ctx, query,
		page.RegistrationMarkdown, page.PastResultsMarkdown, page.CourseMapMarkdown,
		page.UpdatedAt, page.ID); err != nil {
		return fmt.Errorf("update dash content: %w", err)
	}
	return nil
}

// CreateFile persists a new file row and assigns its identity.
func (r *DashRepository) CreateFile(ctx context.Context, file *models.DashFile) error {
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now
	file.IsActive = true

	const query = `INSERT INTO dash_files (dash_content_id, original_file_name, stored_file_name, content_type, file_size, category, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.GetContext(ctx, &file.ID, query,
		file.DashContentID, file.OriginalFileName, file.StoredFileName, file.ContentType,
		file.FileSize, file.Category, file.Description, file.IsActive, file.CreatedAt, file.UpdatedAt); err != nil {
		return fmt.Errorf("create dash file: %w", err)
	}
	return nil
}

// ListFilesByContent returns the active files attached to one dash page,
// grouped by category then upload order.
func (r *DashRepository) ListFilesByContent(ctx context.Context, dashContentID int) ([]models.DashFile, error) {
	query := dashFileSelect + ` WHERE f.dash_content_id = $1 AND f.is_active = TRUE ORDER BY f.category, f.created_at`
	files := []models.DashFile{}
	if err := r.db.SelectContext(ctx, &files, query, dashContentID); err != nil {
		return nil, fmt.Errorf("list dash files: %w", err)
	}
	return files, nil
}

// FindFile returns an active file row by id, with its page's year joined
// in so the caller can locate the bytes on disk.
func (r *DashRepository) FindFile(ctx context.Context, id int) (*models.DashFile, error) {
	query := dashFileSelect + ` WHERE f.id = $1 AND f.is_active = TRUE`
	var file models.DashFile
	if err := r.db.GetContext(ctx, &file, query, id); err != nil {
		return nil, err
	}
	return &file, nil
}

// SoftDeleteFile flips the file's active flag, reporting whether the row
// existed.
func (r *DashRepository) SoftDeleteFile(ctx context.Context, id int) (bool, error) {
	const query = `UPDATE dash_files SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete dash file: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete dash file: %w", err)
	}
	return affected > 0, nil
}
