package models

import "time"

// TeamMeetResult is a dual-meet scoreline between two named teams.
type TeamMeetResult struct {
	ID              int       `db:"id" json:"id"`
	SportID         int       `db:"sport_id" json:"sport_id"`
	SportName       string    `db:"sport_name" json:"sport_name"`
	Year            int       `db:"year" json:"year"`
	MeetDate        time.Time `db:"meet_date" json:"meet_date"`
	Gender          string    `db:"gender" json:"gender"`
	HomeTeam        string    `db:"home_team" json:"home_team"`
	AwayTeam        string    `db:"away_team" json:"away_team"`
	HomeScore       int       `db:"home_score" json:"home_score"`
	AwayScore       int       `db:"away_score" json:"away_score"`
	IsDivisionMatch bool      `db:"is_division_match" json:"is_division_match"`
	Notes           *string   `db:"notes" json:"notes"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// TeamMeetResultFilter captures supported filters for listing team results.
type TeamMeetResultFilter struct {
	SportID    *int
	Year       *int
	Gender     string
	ActiveOnly bool
}

// TeamStanding is one team's win/loss tally for a season.
type TeamStanding struct {
	TeamName       string `json:"team_name"`
	OverallWins    int    `json:"overall_wins"`
	OverallLosses  int    `json:"overall_losses"`
	DivisionWins   int    `json:"division_wins"`
	DivisionLosses int    `json:"division_losses"`
}

// Standings is the aggregated season table for a sport, year and gender.
type Standings struct {
	SportID   int            `json:"sport_id"`
	SportName string         `json:"sport_name"`
	Year      int            `json:"year"`
	Gender    string         `json:"gender"`
	Standings []TeamStanding `json:"standings"`
}
