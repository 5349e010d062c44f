package models

import "time"

// Dash file categories.
const (
	DashCategoryRegistration = "Registration"
	DashCategoryPastResults  = "PastResults"
	DashCategoryCourseMap    = "CourseMap"
)

// DashContent is the informational page for one year of the Dash in the
// Dark event. Exactly one row exists per year.
type DashContent struct {
	ID                   int        `db:"id" json:"id"`
	Year                 int        `db:"year" json:"year"`
	RegistrationMarkdown string     `db:"registration_markdown" json:"registration_markdown"`
	PastResultsMarkdown  string     `db:"past_results_markdown" json:"past_results_markdown"`
	CourseMapMarkdown    string     `db:"course_map_markdown" json:"course_map_markdown"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
	Files                []DashFile `db:"-" json:"files"`
}

// DashFile is an uploaded document attached to a year's dash content.
// StoredFileName is the opaque on-disk name and never leaves the server.
type DashFile struct {
	ID               int       `db:"id" json:"id"`
	DashContentID    int       `db:"dash_content_id" json:"dash_content_id"`
	Year             int       `db:"year" json:"-"`
	OriginalFileName string    `db:"original_file_name" json:"original_file_name"`
	StoredFileName   string    `db:"stored_file_name" json:"-"`
	ContentType      string    `db:"content_type" json:"content_type"`
	FileSize         int64     `db:"file_size" json:"file_size"`
	Category         string    `db:"category" json:"category"`
	Description      *string   `db:"description" json:"description"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
