package utils

import (
	"math"
	"strings"
	"testing"
	"time"

	"yatra/internal/planner"
)

func TestBuildItineraryPromptMentionsTripAndDestinations(t *testing.T) {
	profile := planner.TripProfile{
		Duration:    4,
		StartDate:   time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		GroupSize:   3,
		GroupType:   "family",
		TotalBudget: 40000,
		BudgetType:  "mid-range",
		Interests:   []string{"nature", "wildlife"},
	}
	prompt := BuildItineraryPrompt(profile, []planner.CandidateDestination{
		{ID: "d-1", Name: "Betla National Park", District: "Latehar", Category: "wildlife"},
	})

	for _, want := range []string{"4-day", "2025-12-01", "INR 40000", "nature, wildlife", "ID:d-1", "Betla National Park", `"budgetBreakdown"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	cases := map[string]string{
		"hi":              "hi",
		" \"EN\". ":       "en",
		"bn (Bengali)":    "bn",
		"":                "en",
		"somethinglonger": "en",
	}
	for in, want := range cases {
		if got := normalizeLanguageCode(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestHashEmbeddingIsUnitLengthAndStable(t *testing.T) {
	a := HashEmbedding("Waterfalls and tribal culture")
	b := HashEmbedding("waterfalls AND tribal culture")

	va, vb := a.Slice(), b.Slice()
	if len(va) != EmbeddingDimensions {
		t.Fatalf("expected %d dimensions, got %d", EmbeddingDimensions, len(va))
	}
	var norm float64
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("expected case-insensitive embedding, differs at %d", i)
		}
		norm += float64(va[i]) * float64(va[i])
	}
	if math.Abs(norm-1) > 1e-3 {
		t.Fatalf("expected unit vector, got norm %f", norm)
	}
}
