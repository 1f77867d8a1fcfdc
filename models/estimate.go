package models

// AnalyzeRequest is the gateway's inbound wire shape. ImageBase64 carries a
// data-URL encoded image; it is passed through to the estimator untouched.
type AnalyzeRequest struct {
	Message     string `json:"message"`
	ImageBase64 string `json:"imageBase64"`
	MealLabel   string `json:"mealLabel"`
}

// Estimate is a normalized estimation result: every item macro field is
// numeric and Total is recomputed from the items, so callers never have to
// re-validate the shape.
type Estimate struct {
	MealTitle  string         `json:"mealTitle"`
	Items      []MealItem     `json:"items"`
	Notes      string         `json:"notes,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
	Total      MacroBreakdown `json:"total"`
}
