package planner

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGenerator struct {
	raw   string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateItinerary(context.Context, TripProfile, []CandidateDestination) (string, error) {
	f.calls++
	return f.raw, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }
func (f *fakeGenerator) Model() string    { return "fake-1" }

func tripProfile() TripProfile {
	return TripProfile{
		Duration:    3,
		StartDate:   time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC),
		GroupSize:   2,
		GroupType:   "couple",
		TotalBudget: 15000,
		BudgetType:  "mid-range",
		Interests:   []string{"nature"},
	}
}

func candidates() []CandidateDestination {
	return []CandidateDestination{
		{ID: "a", Name: "Hundru Falls", District: "Ranchi", Rating: 4.5, Tags: []string{"nature", "waterfall"}},
		{ID: "b", Name: "Betla National Park", District: "Latehar", Rating: 4.2, Tags: []string{"wildlife"}, Featured: true},
		{ID: "c", Name: "Baidyanath Dham", District: "Deoghar", Rating: 4.8, CulturalSignificance: "Jyotirlinga"},
		{ID: "d", Name: "Dassam Falls", District: "Ranchi", Tags: []string{"nature"}},
	}
}

func TestGenerateFallsBackWithoutAI(t *testing.T) {
	res, err := NewEngine(nil, nil).Generate(context.Background(), tripProfile(), candidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != MethodBasic || res.Confidence != ConfidenceBasic || res.GeneratedBy() != "basic" {
		t.Fatalf("expected basic result, got %s/%v", res.Method, res.Confidence)
	}

	it := res.Itinerary
	if it.Title != "3-Day Jharkhand Cultural & Natural Heritage Tour" {
		t.Fatalf("unexpected title %q", it.Title)
	}
	if len(it.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(it.Days))
	}
	if it.BudgetBreakdown.Total() != 15000 {
		t.Fatalf("breakdown sums to %d", it.BudgetBreakdown.Total())
	}
	var sum Cost
	for _, d := range it.Days {
		sum += d.TotalDayCost
	}
	if it.TotalEstimatedCost != sum {
		t.Fatalf("expected total %d, got %d", sum, it.TotalEstimatedCost)
	}
	if len(it.EmergencyInfo.ImportantNumbers) != 4 || it.EmergencyInfo.ImportantNumbers[2] != "Tourist Helpline: 1363" {
		t.Fatalf("unexpected emergency info %+v", it.EmergencyInfo)
	}
	if len(it.CulturalNotes) != 5 || len(it.TravelTips) != 5 {
		t.Fatalf("expected five notes and tips")
	}
}

func TestGenerateFallsBackOnEveryAIFailure(t *testing.T) {
	tests := map[string]*fakeGenerator{
		"provider error":   {err: errors.New("quota exceeded")},
		"no json":          {raw: "Sorry, I cannot help with that."},
		"unbalanced":       {raw: `{"title": "x"`},
		"missing days":     {raw: `{"title": "x", "description": "y", "budgetBreakdown": {"food": 1}}`},
		"empty breakdown":  {raw: `{"title": "x", "description": "y", "budgetBreakdown": {}, "days": [{}]}`},
		"wrong day shapes": {raw: `{"title": "x", "description": "y", "budgetBreakdown": {"food": 1}, "days": [3]}`},
	}
	for name, gen := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := NewEngine(gen, nil).Generate(context.Background(), tripProfile(), candidates())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Method != MethodBasic {
				t.Fatalf("expected fallback, got %s", res.Method)
			}
			if gen.calls != 1 {
				t.Fatalf("expected exactly one AI attempt, got %d", gen.calls)
			}
		})
	}
}

func TestGenerateUsesAIResponse(t *testing.T) {
	gen := &fakeGenerator{raw: "Here you go:\n```json\n" + `{
		"title": "Waterfalls of Ranchi",
		"description": "Chasing falls",
		"totalEstimatedCost": 1,
		"budgetBreakdown": {"accommodation": 5000, "transport": "3,000", "food": 2000, "activities": 1000, "miscellaneous": 42},
		"days": [
			{"dayNumber": 1, "date": "2025-11-10", "title": "Hundru", "location": "Ranchi",
			 "activities": [{"timeSlot": "morning", "startTime": "08:00", "endTime": "11:00",
			   "activity": {"type": "sightseeing", "title": "Hundru Falls", "description": "Falls", "location": {"name": "Hundru"}, "estimatedCost": "1,200", "estimatedDuration": 180}}],
			 "accommodation": {"type": "hotel", "name": "Hotel", "location": "Ranchi", "estimatedCost": 2500.75},
			 "meals": [{"type": "lunch", "cuisine": "Local", "estimatedCost": 300}],
			 "totalDayCost": 99},
		],
	}` + "\n```"}

	res, err := NewEngine(gen, nil).Generate(context.Background(), tripProfile(), candidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != MethodAI || res.Confidence != ConfidenceAI || res.GeneratedBy() != "ai" {
		t.Fatalf("expected ai result, got %s", res.Method)
	}
	it := res.Itinerary
	if it.Title != "Waterfalls of Ranchi" {
		t.Fatalf("unexpected title %q", it.Title)
	}
	if it.Days[0].TotalDayCost != 4000 {
		t.Fatalf("expected recomputed day cost 4000, got %d", it.Days[0].TotalDayCost)
	}
	if it.TotalEstimatedCost != 4000 {
		t.Fatalf("expected total 4000, got %d", it.TotalEstimatedCost)
	}
	if it.BudgetBreakdown.Transport != 3000 || it.BudgetBreakdown.Miscellaneous != 4000 {
		t.Fatalf("expected reconciled breakdown, got %+v", it.BudgetBreakdown)
	}
}

func TestGenerateWithOversizedAICosts(t *testing.T) {
	gen := &fakeGenerator{raw: `{
		"title": "Big Spender",
		"description": "Everything at once",
		"budgetBreakdown": {"accommodation": 9e18, "transport": 9e18, "food": 1e30, "activities": 500},
		"days": [
			{"dayNumber": 1, "date": "2025-11-10", "title": "Ranchi", "location": "Ranchi",
			 "activities": [{"timeSlot": "morning", "startTime": "08:00", "endTime": "11:00",
			   "activity": {"type": "sightseeing", "title": "Hundru Falls", "description": "Falls", "location": {"name": "Hundru"}, "estimatedCost": 9e18, "estimatedDuration": 180}}],
			 "accommodation": {"type": "hotel", "name": "Hotel", "location": "Ranchi", "estimatedCost": 1e30},
			 "meals": [{"type": "lunch", "cuisine": "Local", "estimatedCost": 300}]}
		]
	}`}

	res, err := NewEngine(gen, nil).Generate(context.Background(), tripProfile(), candidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := res.Itinerary
	b := it.BudgetBreakdown
	for _, c := range []Cost{b.Accommodation, b.Transport, b.Food, b.Activities, b.Miscellaneous} {
		if c < 0 {
			t.Fatalf("negative bucket in %+v", b)
		}
	}
	if b.Total() != 15000 {
		t.Fatalf("breakdown sums to %d", b.Total())
	}
	if it.Days[0].TotalDayCost != 300 || it.TotalEstimatedCost != 300 {
		t.Fatalf("expected oversized costs dropped, got day %d total %d", it.Days[0].TotalDayCost, it.TotalEstimatedCost)
	}
}

func TestGenerateRejectsZeroDuration(t *testing.T) {
	p := tripProfile()
	p.Duration = 0
	if _, err := NewEngine(nil, nil).Generate(context.Background(), p, candidates()); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestBasicItineraryIsDeterministic(t *testing.T) {
	a := BuildBasicItinerary(tripProfile(), candidates())
	b := BuildBasicItinerary(tripProfile(), candidates())
	if a.Days[0].Title != b.Days[0].Title || a.TotalEstimatedCost != b.TotalEstimatedCost {
		t.Fatalf("expected identical output")
	}
	// scores: c 5.3, a 5.0, b 5.2, d 3.5 -> c, b, a, d; target floor(4.5)=4
	if a.Days[0].Title != "Day 1: Baidyanath Dham & Betla National Park" {
		t.Fatalf("unexpected first day %q", a.Days[0].Title)
	}
}
