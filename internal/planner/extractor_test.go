package planner

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestExtractFencedWithTrailingCommas(t *testing.T) {
	raw := "```json\n{\"title\": \"Trip\", \"days\": [1, 2,],}\n```"
	obj, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["title"] != "Trip" {
		t.Fatalf("expected title Trip, got %v", obj["title"])
	}
	if days, ok := obj["days"].([]any); !ok || len(days) != 2 {
		t.Fatalf("expected two days, got %v", obj["days"])
	}
}

func TestExtractIgnoresBracesInStrings(t *testing.T) {
	raw := `Sure! Here it is: {"title": "a } b", "note": "say \"{hi}\"", "x": {"y": "{"}} and {"other": 1}`
	obj, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["title"] != "a } b" || obj["note"] != `say "{hi}"` {
		t.Fatalf("unexpected object %v", obj)
	}
	if _, ok := obj["other"]; ok {
		t.Fatalf("extraction ran past the first object")
	}
}

func TestExtractKeepsCommasInsideStrings(t *testing.T) {
	obj, err := Extract(`{"a": "x, }", "b": "y,]"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["a"] != "x, }" || obj["b"] != "y,]" {
		t.Fatalf("string contents were altered: %v", obj)
	}
}

func TestExtractStopsAtFirstObject(t *testing.T) {
	tests := []struct {
		raw  string
		want map[string]any
	}{
		{`{"a":1} some trailing prose with a stray }`, map[string]any{"a": float64(1)}},
		{`prefix {"a":1}} }`, map[string]any{"a": float64(1)}},
		{"{\"a\": {\"b\": 2}}\n}\n```", map[string]any{"a": map[string]any{"b": float64(2)}}},
	}
	for _, tt := range tests {
		got, err := Extract(tt.raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.raw, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		raw    string
		reason string
	}{
		{"I could not build an itinerary.", "no JSON object found"},
		{`{"title": "open`, "unbalanced JSON"},
		{`{"title" "missing colon"}`, "invalid JSON"},
	}
	for _, tt := range tests {
		_, err := Extract(tt.raw)
		var ee *ExtractionError
		if !errors.As(err, &ee) {
			t.Fatalf("%q: expected ExtractionError, got %v", tt.raw, err)
		}
		if ee.Reason != tt.reason {
			t.Fatalf("%q: expected reason %q, got %q", tt.raw, tt.reason, ee.Reason)
		}
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	first, err := Extract("```\n{\"title\": \"T\", \"n\": [1, {\"k\": \"v\"},],}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Extract(string(encoded))
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected %v, got %v", first, second)
	}
}
