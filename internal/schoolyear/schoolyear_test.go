package schoolyear

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestYearBoundary(t *testing.T) {
	assert.Equal(t, 2025, Year(date(2024, time.August, 1)))
	assert.Equal(t, 2024, Year(date(2024, time.July, 31)))
	assert.Equal(t, 2025, Year(date(2025, time.January, 15)))
	assert.Equal(t, 2025, Year(date(2024, time.December, 31)))
}

func TestRange(t *testing.T) {
	start, end := Range(2025)
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC), end)

	assert.Equal(t, 2025, Year(start))
	assert.Equal(t, 2025, Year(end))
}

func TestGradeLevel(t *testing.T) {
	today := date(2024, time.October, 1) // school year 2025

	cases := []struct {
		gradYear int
		want     string
	}{
		{2025, GradeSenior},
		{2026, GradeJunior},
		{2027, GradeSophomore},
		{2028, GradeFreshman},
		{2024, GradeAlumni},
		{2019, GradeAlumni},
		{2029, GradeFuture},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeLevel(tc.gradYear, today), "graduation year %d", tc.gradYear)
	}
}

func TestGradeLevelSpringSemester(t *testing.T) {
	// April 2025 is still school year 2025, so class labels match the fall.
	spring := date(2025, time.April, 10)
	assert.Equal(t, GradeSenior, GradeLevel(2025, spring))
	assert.Equal(t, GradeFreshman, GradeLevel(2028, spring))
}

func TestGradeLevelMonotonic(t *testing.T) {
	today := date(2024, time.November, 5)
	order := map[string]int{
		GradeAlumni:    0,
		GradeSenior:    1,
		GradeJunior:    2,
		GradeSophomore: 3,
		GradeFreshman:  4,
		GradeFuture:    5,
	}
	prev := -1
	for g := 2018; g <= 2032; g++ {
		rank := order[GradeLevel(g, today)]
		assert.GreaterOrEqual(t, rank, prev, "graduation year %d", g)
		prev = rank
	}
}
