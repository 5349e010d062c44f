package models

import "time"

// Meet is a scheduled competition for a sport.
type Meet struct {
	ID            int       `db:"id" json:"id"`
	SportID       int       `db:"sport_id" json:"sport_id"`
	SportName     string    `db:"sport_name" json:"sport_name"`
	Name          string    `db:"name" json:"name"`
	Location      *string   `db:"location" json:"location"`
	MeetDate      time.Time `db:"meet_date" json:"meet_date"`
	MeetType      string    `db:"meet_type" json:"meet_type"`
	Opponent      *string   `db:"opponent" json:"opponent"`
	IsHome        bool      `db:"is_home" json:"is_home"`
	OurScore      *int      `db:"our_score" json:"our_score"`
	OpponentScore *int      `db:"opponent_score" json:"opponent_score"`
	Notes         *string   `db:"notes" json:"notes"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// MeetFilter captures supported filters for listing meets. Year selects
// meets whose date falls inside that school year.
type MeetFilter struct {
	SportID    *int
	Year       *int
	ActiveOnly bool
}
