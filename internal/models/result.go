package models

import "time"

// Result statuses beyond a normal finish.
const (
	ResultStatusDQ  = "DQ"
	ResultStatusDNS = "DNS"
	ResultStatusDNF = "DNF"
	ResultStatusSCR = "SCR"
)

// Result is a single performance at a meet. AthleteID is nil for relay
// entries, which carry a team name instead.
type Result struct {
	ID                 int       `db:"id" json:"id"`
	AthleteID          *int      `db:"athlete_id" json:"athlete_id"`
	AthleteFirstName   string    `db:"athlete_first_name" json:"athlete_first_name"`
	AthleteLastName    string    `db:"athlete_last_name" json:"athlete_last_name"`
	AthleteGradeLevel  string    `db:"-" json:"athlete_grade_level"`
	AthleteGradYear    *int      `db:"athlete_graduation_year" json:"-"`
	MeetID             int       `db:"meet_id" json:"meet_id"`
	MeetName           string    `db:"meet_name" json:"meet_name"`
	MeetDate           time.Time `db:"meet_date" json:"meet_date"`
	EventID            int       `db:"event_id" json:"event_id"`
	EventName          string    `db:"event_name" json:"event_name"`
	EventType          string    `db:"event_type" json:"event_type"`
	RelayTeamName      *string   `db:"relay_team_name" json:"relay_team_name"`
	HeatNumber         *int      `db:"heat_number" json:"heat_number"`
	ResultStatus       *string   `db:"result_status" json:"result_status"`
	Wind               *float64  `db:"wind" json:"wind"`
	Performance        *float64  `db:"performance" json:"performance"`
	PerformanceDisplay *string   `db:"performance_display" json:"performance_display"`
	Place              *int      `db:"place" json:"place"`
	Points             *int      `db:"points" json:"points"`
	IsPR               bool      `db:"is_pr" json:"is_pr"`
	Notes              *string   `db:"notes" json:"notes"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ResultFilter captures supported filters for listing results.
type ResultFilter struct {
	AthleteID  *int
	MeetID     *int
	EventID    *int
	SportID    *int
	ActiveOnly bool
}
