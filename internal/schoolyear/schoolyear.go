// Package schoolyear derives academic-year values from calendar dates.
// The school year runs August through July, labelled by the calendar year
// in which it ends: August 2024 through July 2025 is school year 2025.
package schoolyear

import "time"

// Grade labels returned by GradeLevel.
const (
	GradeSenior    = "Senior"
	GradeJunior    = "Junior"
	GradeSophomore = "Sophomore"
	GradeFreshman  = "Freshman"
	GradeAlumni    = "Alumni"
	GradeFuture    = "Future"
)

// Year returns the school year the given date falls into.
func Year(t time.Time) int {
	if t.Month() >= time.August {
		return t.Year() + 1
	}
	return t.Year()
}

// Current returns the school year for the present moment.
func Current() int {
	return Year(time.Now())
}

// Range returns the inclusive UTC date range covered by a school year.
func Range(year int) (time.Time, time.Time) {
	start := time.Date(year-1, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.July, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}

// GradeLevel maps a graduation year to a class label relative to today.
func GradeLevel(graduationYear int, today time.Time) string {
	delta := graduationYear - Year(today)
	switch {
	case delta == 0:
		return GradeSenior
	case delta == 1:
		return GradeJunior
	case delta == 2:
		return GradeSophomore
	case delta == 3:
		return GradeFreshman
	case delta < 0:
		return GradeAlumni
	default:
		return GradeFuture
	}
}
