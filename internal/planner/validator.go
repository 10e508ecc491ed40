package planner

import (
	"encoding/json"
	"strings"
)

// Validate is a shallow check of the top-level shape. It stops at the first
// missing or empty field.
func Validate(obj map[string]any) error {
	for _, field := range []string{"title", "description"} {
		s, ok := obj[field].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return &ValidationError{Field: field, Reason: "is missing or empty"}
		}
	}

	breakdown, ok := obj["budgetBreakdown"].(map[string]any)
	if !ok || len(breakdown) == 0 {
		return &ValidationError{Field: "budgetBreakdown", Reason: "is missing or empty"}
	}

	days, ok := obj["days"].([]any)
	if !ok || len(days) == 0 {
		return &ValidationError{Field: "days", Reason: "must be a non-empty list"}
	}
	return nil
}

// Decode converts a validated object into the typed itinerary.
func Decode(obj map[string]any) (*GeneratedItinerary, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, &ValidationError{Field: "root", Reason: "could not be re-encoded: " + err.Error()}
	}
	var it GeneratedItinerary
	if err := json.Unmarshal(data, &it); err != nil {
		field := "root"
		if te, ok := err.(*json.UnmarshalTypeError); ok && te.Field != "" {
			field = te.Field
		}
		return nil, &ValidationError{Field: field, Reason: "has the wrong type"}
	}
	return &it, nil
}
