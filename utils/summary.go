package utils

import (
	"fmt"
	"math"
	"strings"

	"platelog/models"
)

// SummarizeEntry renders the assistant's transcript line for a logged entry:
// the item list (or just the title when there are none), rounded macros, and
// the confidence as a percentage or "n/a".
func SummarizeEntry(e models.MealEntry) string {
	head := e.Title
	if len(e.Items) > 0 {
		parts := make([]string, 0, len(e.Items))
		for _, it := range e.Items {
			parts = append(parts, fmt.Sprintf("%s (%s)", it.Name, it.Quantity))
		}
		head = fmt.Sprintf("%s: %s", e.Title, strings.Join(parts, ", "))
	}

	conf := "Confidence: n/a"
	if e.Confidence != nil {
		conf = fmt.Sprintf("Confidence: %d%%", round(*e.Confidence*100))
	}

	return fmt.Sprintf("%s\n%d kcal — P%dg C%dg F%dg\n%s",
		head,
		round(e.Macros.Kcal), round(e.Macros.Protein), round(e.Macros.Carbs), round(e.Macros.Fat),
		conf)
}

func round(v float64) int {
	return int(math.Round(v))
}
