package models

import "time"

// Record types.
const (
	RecordTypeSchool     = "School"
	RecordTypeConference = "Conference"
	RecordTypeState      = "State"
)

// Record is an all-time best performance for an event and gender.
// PerformanceValue is the numeric sort key; the leaderboard orders it
// ascending regardless of event type.
type Record struct {
	ID               int       `db:"id" json:"id"`
	EventID          int       `db:"event_id" json:"event_id"`
	EventName        string    `db:"event_name" json:"event_name"`
	SportID          int       `db:"sport_id" json:"sport_id"`
	SportName        string    `db:"sport_name" json:"sport_name"`
	AthleteID        int       `db:"athlete_id" json:"athlete_id"`
	AthleteFirstName string    `db:"athlete_first_name" json:"athlete_first_name"`
	AthleteLastName  string    `db:"athlete_last_name" json:"athlete_last_name"`
	Gender           string    `db:"gender" json:"gender"`
	Performance      string    `db:"performance" json:"performance"`
	PerformanceValue float64   `db:"performance_value" json:"performance_value"`
	GradeAtTime      *string   `db:"grade_at_time" json:"grade_at_time"`
	PerformanceDate  time.Time `db:"performance_date" json:"performance_date"`
	Location         *string   `db:"location" json:"location"`
	MeetName         *string   `db:"meet_name" json:"meet_name"`
	RecordType       string    `db:"record_type" json:"record_type"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// RecordFilter captures supported filters for listing records.
type RecordFilter struct {
	EventID    *int
	SportID    *int
	AthleteID  *int
	Gender     string
	RecordType string
	ActiveOnly bool
}
