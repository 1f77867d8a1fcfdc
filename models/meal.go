package models

// MealItem is one food component of a meal. Quantity is a free-text portion
// description ("1 cup", "100g"). The macro fields are flattened into the
// item's JSON (name, quantity, kcal, protein, carbs, fat).
type MealItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	MacroBreakdown
}

// MealEntry is one logged meal occurrence. An entry is created in a single
// step once an estimate arrives and is never edited or deleted afterwards.
type MealEntry struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Time       string         `json:"time"`
	Macros     MacroBreakdown `json:"macros"`
	Items      []MealItem     `json:"items"`
	Image      string         `json:"image,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
}
