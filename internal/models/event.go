package models

import "time"

// Event types.
const (
	EventTypeRunning = "Running"
	EventTypeField   = "Field"
	EventTypeRelay   = "Relay"
)

// Event is a competition event belonging to a sport. Unique on (sport, name).
type Event struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SportID   int       `db:"sport_id" json:"sport_id"`
	SportName string    `db:"sport_name" json:"sport_name"`
	EventType string    `db:"event_type" json:"event_type"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
