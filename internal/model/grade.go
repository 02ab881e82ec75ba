package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseScore converts a stored numeric string to a float64. Empty,
// non-numeric and non-finite values count as 0, which is how the table
// treats absent data everywhere (grading and averages alike). NaN and
// infinity parse as floats but are not scores.
func ParseScore(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatScore renders a score the way it is stored in the table.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CalculateGrade maps marks to a letter grade. Thresholds are
// inclusive lower bounds checked from highest to lowest; anything
// that does not parse as a number grades as 0.
func CalculateGrade(marks string) string {
	m := ParseScore(marks)
	switch {
	case m >= 90:
		return "A"
	case m >= 75:
		return "B"
	case m >= 60:
		return "C"
	case m >= 40:
		return "D"
	default:
		return "F"
	}
}
