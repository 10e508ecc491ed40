package planner

import (
	"fmt"
	"strings"
)

const (
	dateLayout          = "2006-01-02"
	defaultActivityCost = 100
	activityMinutes     = 180
	destinationsPerDay  = 2
	defaultRegion       = "Jharkhand"
	defaultCulturalTip  = "Respect local customs and environment"
)

type slotWindow struct {
	slot       TimeSlot
	start, end string
}

var daySlots = []slotWindow{
	{SlotMorning, "09:00", "12:00"},
	{SlotAfternoon, "14:00", "17:00"},
	{SlotEvening, "17:00", "19:00"},
}

var activityAlternatives = []string{
	"Photography session",
	"Local guide interaction",
	"Cultural performance if available",
}

// SynthesizeDays lays the selected destinations out over the trip. Day i
// visits selected[i:i+2], so a destination can show up on two consecutive
// days and short lists leave later days without sightseeing.
func SynthesizeDays(selected []ScoredDestination, profile TripProfile) []ItineraryDay {
	if profile.Duration <= 0 {
		return []ItineraryDay{}
	}
	daily := profile.TotalBudget / int64(profile.Duration)
	if daily < 0 {
		daily = 0
	}

	days := make([]ItineraryDay, 0, profile.Duration)
	for i := 0; i < profile.Duration; i++ {
		window := dayWindow(selected, i)
		district := defaultRegion
		stay := "Local area"
		if len(window) > 0 && window[0].District != "" {
			district = window[0].District
			stay = window[0].District
		}

		accommodationType := "homestay"
		if i == 0 {
			accommodationType = "hotel"
		}

		day := ItineraryDay{
			DayNumber:  i + 1,
			Date:       profile.StartDate.AddDate(0, 0, i).Format(dateLayout),
			Title:      dayTitle(i+1, window),
			Location:   district,
			Weather:    "Pleasant",
			Activities: buildActivities(window),
			Accommodation: &Accommodation{
				Type:          accommodationType,
				Name:          "Local accommodation",
				Location:      stay,
				EstimatedCost: percentOf(daily, 40),
				Description:   "Comfortable local accommodation with basic amenities",
			},
			Meals: []Meal{
				{Type: "breakfast", Cuisine: "Continental/Local", EstimatedCost: percentOf(daily, 10), Recommendations: "Local breakfast specialties"},
				{Type: "lunch", Cuisine: "Traditional Jharkhandi", EstimatedCost: percentOf(daily, 15), Recommendations: "Try Litti-chokha, Dhuska, or local tribal cuisine"},
				{Type: "dinner", Cuisine: "Local", EstimatedCost: percentOf(daily, 15), Recommendations: "Traditional dinner with local family or restaurant"},
			},
			Transport: &Transport{
				Mode:          "Local taxi/bus",
				EstimatedCost: percentOf(daily, 20),
				Duration:      "2-3 hours",
				Notes:         "Local transportation between destinations",
			},
		}
		day.TotalDayCost = RecomputeDayCost(day)
		days = append(days, day)
	}
	return days
}

// RecomputeDayCost sums every cost-bearing child of the day.
func RecomputeDayCost(day ItineraryDay) Cost {
	var total Cost
	for _, a := range day.Activities {
		total = total.Plus(a.Activity.EstimatedCost)
	}
	if day.Accommodation != nil {
		total = total.Plus(day.Accommodation.EstimatedCost)
	}
	for _, m := range day.Meals {
		total = total.Plus(m.EstimatedCost)
	}
	if day.Transport != nil {
		total = total.Plus(day.Transport.EstimatedCost)
	}
	return total
}

func dayWindow(selected []ScoredDestination, i int) []ScoredDestination {
	if i >= len(selected) {
		return nil
	}
	end := i + destinationsPerDay
	if end > len(selected) {
		end = len(selected)
	}
	return selected[i:end]
}

func dayTitle(n int, window []ScoredDestination) string {
	if len(window) == 0 {
		return fmt.Sprintf("Day %d: Free exploration", n)
	}
	names := make([]string, len(window))
	for i, d := range window {
		names[i] = d.Name
	}
	return fmt.Sprintf("Day %d: %s", n, strings.Join(names, " & "))
}

func buildActivities(window []ScoredDestination) []ScheduledActivity {
	activities := make([]ScheduledActivity, 0, len(window))
	for i, dest := range window {
		slot := daySlots[i%len(daySlots)]

		cost := Cost(defaultActivityCost)
		if dest.EntryFee > 0 {
			cost = Cost(dest.EntryFee)
		}
		description := dest.Description
		if description == "" {
			description = dest.ShortDescription
		}
		tips := dest.CulturalSignificance
		if tips == "" {
			tips = defaultCulturalTip
		}

		activities = append(activities, ScheduledActivity{
			TimeSlot:  slot.slot,
			StartTime: slot.start,
			EndTime:   slot.end,
			Activity: Activity{
				Type:          "destination",
				DestinationID: dest.ID,
				Title:         "Explore " + dest.Name,
				Description:   description,
				Location: ActivityLocation{
					Name:        dest.Name,
					Coordinates: []float64{dest.Longitude, dest.Latitude},
					District:    dest.District,
				},
				EstimatedCost:     cost,
				EstimatedDuration: activityMinutes,
				CulturalTips:      tips,
				Alternatives:      append([]string(nil), activityAlternatives...),
			},
			Notes: "Visit timing may vary based on weather conditions and local customs",
		})
	}
	return activities
}

func percentOf(amount int64, pct int64) Cost {
	return Cost(amount * pct / 100)
}
