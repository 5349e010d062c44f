package models

import "time"

// Sport is one of the program's sports (cross country, indoor/outdoor track,
// plus the special-event race).
type Sport struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Season       string    `db:"season" json:"season"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
