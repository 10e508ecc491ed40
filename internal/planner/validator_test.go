package planner

import (
	"errors"
	"testing"
)

func validObject() map[string]any {
	return map[string]any{
		"title":           "Trip",
		"description":     "Three days",
		"budgetBreakdown": map[string]any{"accommodation": 100.0},
		"days":            []any{map[string]any{"dayNumber": 1.0}},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validObject()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(map[string]any)
	}{
		{"title", func(m map[string]any) { delete(m, "title") }},
		{"title", func(m map[string]any) { m["title"] = 42.0 }},
		{"description", func(m map[string]any) { m["description"] = "  " }},
		{"budgetBreakdown", func(m map[string]any) { m["budgetBreakdown"] = map[string]any{} }},
		{"budgetBreakdown", func(m map[string]any) { m["budgetBreakdown"] = "lots" }},
		{"days", func(m map[string]any) { m["days"] = []any{} }},
		{"days", func(m map[string]any) { delete(m, "days") }},
	}
	for _, tt := range tests {
		obj := validObject()
		tt.mutate(obj)
		err := Validate(obj)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %s, got %v", tt.field, err)
		}
		if ve.Field != tt.field {
			t.Fatalf("expected field %s, got %s", tt.field, ve.Field)
		}
	}
}

func TestValidateReportsFirstFailure(t *testing.T) {
	err := Validate(map[string]any{})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("expected title to fail first, got %v", err)
	}
}

func TestDecodeWrongDayShape(t *testing.T) {
	obj := validObject()
	obj["days"] = []any{"day one"}
	_, err := Decode(obj)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
