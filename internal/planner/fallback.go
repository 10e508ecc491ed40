package planner

import "fmt"

var (
	basicCulturalNotes = []string{
		"Respect local tribal customs and traditions",
		"Seek permission before photographing tribal people",
		"Dress modestly when visiting religious sites and tribal villages",
		`Learn basic greetings: "Johar" for tribal communities, "Namaskar" in Hindi`,
		"Remove shoes before entering temples and traditional homes",
	}
	basicTravelTips = []string{
		"Carry sufficient cash as card acceptance is limited in rural areas",
		"Book accommodation in advance during peak winter season (Nov-Feb)",
		"Hire local guides for authentic tribal cultural experiences",
		"Pack warm clothes for hill stations like Netarhat",
		"Carry insect repellent for forest areas and waterfalls",
	}
	basicLocalExperiences = []string{
		"Tribal village visits with proper permissions",
		"Traditional handicraft workshops",
		"Local festival participation opportunities",
		"Authentic cooking classes with tribal families",
	}
	basicSeasonalConsiderations = []string{
		"Best time: October to March (winter season)",
		"Avoid: Heavy monsoons July to September",
		"Wildlife viewing: March to May",
		"Festival seasons: Various throughout year",
	}
)

// DefaultEmergencyInfo is the contact block attached to every basic itinerary.
func DefaultEmergencyInfo() EmergencyInfo {
	return EmergencyInfo{
		ImportantNumbers: []string{
			"Police: 100",
			"Medical: 108",
			"Tourist Helpline: 1363",
			"Jharkhand Tourism: +91-651-2446781",
		},
		NearestHospitals: []string{"Contact district hospitals in major cities"},
		EmbassyContacts:  "Contact respective embassies for international tourists",
	}
}

// BuildBasicItinerary is the deterministic path: select, allocate, lay out.
func BuildBasicItinerary(profile TripProfile, candidates []CandidateDestination) GeneratedItinerary {
	selected := SelectDestinations(candidates, profile.Duration, profile.Interests)
	days := SynthesizeDays(selected, profile)

	it := GeneratedItinerary{
		Title:                  fmt.Sprintf("%d-Day Jharkhand Cultural & Natural Heritage Tour", profile.Duration),
		Description:            "A carefully crafted journey through Jharkhand's pristine natural beauty, rich tribal culture, and spiritual heritage",
		BudgetBreakdown:        AllocateBudget(profile.TotalBudget),
		Days:                   days,
		CulturalNotes:          cloneStrings(basicCulturalNotes),
		TravelTips:             cloneStrings(basicTravelTips),
		EmergencyInfo:          DefaultEmergencyInfo(),
		LocalExperiences:       cloneStrings(basicLocalExperiences),
		SeasonalConsiderations: cloneStrings(basicSeasonalConsiderations),
	}
	it.TotalEstimatedCost = sumDayCosts(days)
	return it
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}
