package models

import "time"

// RosterEntry links an athlete to a sport for a school year. Unlike the
// other entities roster rows are hard-deleted, so there is no active flag.
type RosterEntry struct {
	ID                int       `db:"id" json:"id"`
	AthleteID         int       `db:"athlete_id" json:"athlete_id"`
	AthleteFirstName  string    `db:"athlete_first_name" json:"athlete_first_name"`
	AthleteLastName   string    `db:"athlete_last_name" json:"athlete_last_name"`
	AthleteGender     string    `db:"athlete_gender" json:"athlete_gender"`
	AthleteGradYear   int       `db:"athlete_graduation_year" json:"-"`
	AthleteGradeLevel string    `db:"-" json:"athlete_grade_level"`
	SportID           int       `db:"sport_id" json:"sport_id"`
	SportName         string    `db:"sport_name" json:"sport_name"`
	Year              int       `db:"year" json:"year"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// RosterFilter captures supported filters for listing roster entries.
type RosterFilter struct {
	SportID   *int
	Year      *int
	AthleteID *int
}
