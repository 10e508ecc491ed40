package planner

import (
	"testing"
	"time"
)

func sampleSelection() []ScoredDestination {
	return []ScoredDestination{
		{CandidateDestination: CandidateDestination{ID: "d1", Name: "Hundru Falls", District: "Ranchi", EntryFee: 50, Longitude: 85.65, Latitude: 23.45}},
		{CandidateDestination: CandidateDestination{ID: "d2", Name: "Patratu Valley", District: "Ramgarh", ShortDescription: "Winding valley road"}},
		{CandidateDestination: CandidateDestination{ID: "d3", Name: "Netarhat", District: "Latehar", CulturalSignificance: "Home of the Asur community"}},
	}
}

func TestSynthesizeDaysCountAndDates(t *testing.T) {
	start := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	days := SynthesizeDays(sampleSelection(), TripProfile{Duration: 5, StartDate: start, TotalBudget: 25000})

	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	wantDates := []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02", "2026-01-03"}
	for i, d := range days {
		if d.DayNumber != i+1 {
			t.Fatalf("day %d: expected number %d, got %d", i, i+1, d.DayNumber)
		}
		if d.Date != wantDates[i] {
			t.Fatalf("day %d: expected date %s, got %s", i, wantDates[i], d.Date)
		}
		if d.TotalDayCost != RecomputeDayCost(d) {
			t.Fatalf("day %d: total %d does not match children", i, d.TotalDayCost)
		}
	}
}

func TestSynthesizeDaysWindows(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	days := SynthesizeDays(sampleSelection(), TripProfile{Duration: 4, StartDate: start, TotalBudget: 20000})

	if got := len(days[0].Activities); got != 2 {
		t.Fatalf("day 1: expected 2 activities, got %d", got)
	}
	if days[0].Title != "Day 1: Hundru Falls & Patratu Valley" {
		t.Fatalf("day 1: unexpected title %q", days[0].Title)
	}
	if days[1].Activities[0].Activity.DestinationID != "d2" {
		t.Fatalf("day 2 should start with the second destination")
	}
	if got := len(days[2].Activities); got != 1 {
		t.Fatalf("day 3: expected 1 activity, got %d", got)
	}
	if len(days[3].Activities) != 0 || days[3].Title != "Day 4: Free exploration" || days[3].Location != "Jharkhand" {
		t.Fatalf("day 4: expected a free day, got %+v", days[3])
	}
	if days[0].Accommodation.Type != "hotel" || days[1].Accommodation.Type != "homestay" {
		t.Fatalf("expected hotel then homestay")
	}
}

func TestSynthesizeDaysActivityDetails(t *testing.T) {
	days := SynthesizeDays(sampleSelection(), TripProfile{Duration: 2, StartDate: time.Now(), TotalBudget: 10000})

	first := days[0].Activities[0]
	if first.TimeSlot != SlotMorning || first.StartTime != "09:00" || first.EndTime != "12:00" {
		t.Fatalf("unexpected slot %+v", first)
	}
	if first.Activity.EstimatedCost != 50 || first.Activity.EstimatedDuration != 180 {
		t.Fatalf("unexpected cost/duration %+v", first.Activity)
	}
	if c := first.Activity.Location.Coordinates; len(c) != 2 || c[0] != 85.65 || c[1] != 23.45 {
		t.Fatalf("expected [lng, lat], got %v", c)
	}

	second := days[0].Activities[1]
	if second.TimeSlot != SlotAfternoon || second.Activity.EstimatedCost != 100 {
		t.Fatalf("expected afternoon slot at default cost, got %+v", second)
	}
	if second.Activity.Description != "Winding valley road" {
		t.Fatalf("expected short description fallback, got %q", second.Activity.Description)
	}

	// daily 5000: 2000 + 500 + 750 + 750 + 1000 + 50 + 100
	if days[0].TotalDayCost != 5150 {
		t.Fatalf("expected day cost 5150, got %d", days[0].TotalDayCost)
	}
}
