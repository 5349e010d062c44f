package models

import "time"

// HistoryContent is the markdown history page for one sport.
type HistoryContent struct {
	ID              int       `db:"id" json:"id"`
	SportID         int       `db:"sport_id" json:"sport_id"`
	SportName       string    `db:"sport_name" json:"sport_name"`
	MarkdownContent string    `db:"markdown_content" json:"markdown_content"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
