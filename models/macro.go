package models

// MacroBreakdown is the four-number nutrition snapshot used throughout the
// log: calories plus grams of protein, carbs and fat. Aggregates are always
// derived by summing item-level values, never edited independently.
type MacroBreakdown struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Add accumulates o into m element-wise.
func (m *MacroBreakdown) Add(o MacroBreakdown) {
	m.Kcal += o.Kcal
	m.Protein += o.Protein
	m.Carbs += o.Carbs
	m.Fat += o.Fat
}

// IsZero reports whether every field is zero.
func (m MacroBreakdown) IsZero() bool {
	return m == MacroBreakdown{}
}

// SumItems folds the macro fields of items into one breakdown.
func SumItems(items []MealItem) MacroBreakdown {
	var total MacroBreakdown
	for _, it := range items {
		total.Add(it.MacroBreakdown)
	}
	return total
}
