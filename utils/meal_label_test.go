package utils

import (
	"testing"
	"time"
)

func TestMealLabelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour int
		want string
	}{
		{0, "Breakfast"},
		{9, "Breakfast"},
		{10, "Breakfast"},
		{11, "Lunch"}, // boundary is half-open
		{13, "Lunch"},
		{14, "Lunch"},
		{15, "Snack"},
		{17, "Snack"},
		{18, "Dinner"},
		{20, "Dinner"},
		{23, "Dinner"},
	}

	for _, tt := range tests {
		ts := time.Date(2025, 3, 10, tt.hour, 30, 0, 0, time.UTC)
		if got := MealLabelFor(ts); got != tt.want {
			t.Errorf("MealLabelFor(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
