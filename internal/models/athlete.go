package models

import "time"

// Athlete represents a program athlete. The pair of name fields plus
// graduation year is unique across the table.
type Athlete struct {
	ID             int       `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	GraduationYear int       `db:"graduation_year" json:"graduation_year"`
	Gender         string    `db:"gender" json:"gender"`
	GradeLevel     string    `db:"-" json:"grade_level"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
