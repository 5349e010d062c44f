package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oahornets/crosstrack-api/internal/models"
)

const historySelect = `SELECT h.id, h.sport_id, COALESCE(s.name, '') AS sport_name, h.markdown_content, h.is_active, h.created_at, h.updated_at
	FROM history_content h
	LEFT JOIN sports s ON s.id = h.sport_id`

// HistoryRepository handles persistence for per-sport history pages. At
// most one row exists per sport.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new repository instance.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ListActive returns the active history pages in sport display order.
func (r *HistoryRepository) ListActive(ctx context.Context) ([]models.HistoryContent, error) {
	query := historySelect + " WHERE h.is_active = TRUE ORDER BY s.display_order, s.name"
	pages := []models.HistoryContent{}
	if err := r.db.SelectContext(ctx, &pages, query); err != nil {
		return nil, fmt.Errorf("list history content: %w", err)
	}
	return pages, nil
}

// FindBySport returns the history page for one sport. When onlyActive is
// set, an inactive page is treated as absent.
func (r *HistoryRepository) FindBySport(ctx context.Context, sportID int, onlyActive bool) (*models.HistoryContent, error) {
	query := historySelect + " WHERE h.sport_id = $1"
	if onlyActive {
		query += " AND h.is_active = TRUE"
	}
	var page models.HistoryContent
	if err := r.db.GetContext(ctx, &page, query, sportID); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create persists a new history page and assigns its identity.
func (r *HistoryRepository) Create(ctx context.Context, page *models.HistoryContent) error {
	now := time.Now().UTC()
	page.CreatedAt = now
	page.UpdatedAt = now
	page.IsActive = true

	const query = `INSERT INTO history_content (sport_id, markdown_content, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &page.ID, query, page.SportID, page.MarkdownContent, page.IsActive, page.CreatedAt, page.UpdatedAt); err != nil {
		return fmt.Errorf("create history content: %w", err)
	}
	return nil
}

// Update replaces the page body and reactivates the row, so a PUT against
// a previously deleted sport page revives it.
func (r *HistoryRepository) Update(ctx context.Context, page *models.HistoryContent) error {
	page.UpdatedAt = time.Now().UTC()
	page.IsActive = true
	const query = `UPDATE history_content SET markdown_content = $1, is_active = TRUE, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, page.MarkdownContent, page.UpdatedAt, page.ID); err != nil {
		return fmt.Errorf("update history content: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag, reporting whether the row existed.
func (r *HistoryRepository) SoftDelete(ctx context.Context, sportID int) (bool, error) {
	const query = `UPDATE history_content SET is_active = FALSE, updated_at = $1 WHERE sport_id = $2 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), sportID)
	if err != nil {
		return false, fmt.Errorf("soft delete history content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("soft delete history content: %w", err)
	}
	return affected > 0, nil
}
