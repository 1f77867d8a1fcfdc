package utils

import "time"

// MealLabelFor buckets a timestamp into the coarse meal of day. Boundaries
// are half-open: before 11 is breakfast, before 15 lunch, before 18 snack,
// the rest of the day dinner. The label is advisory context for the
// estimator and the fallback entry title.
func MealLabelFor(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return "Breakfast"
	case h < 15:
		return "Lunch"
	case h < 18:
		return "Snack"
	default:
		return "Dinner"
	}
}
