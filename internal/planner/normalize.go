package planner

// Normalize brings an itinerary from either path into a consistent state:
// every day cost is recomputed from its children, the breakdown is
// reconciled against total and the headline cost is the sum of the days.
func Normalize(it *GeneratedItinerary, total int64) {
	if it == nil {
		return
	}
	for i := range it.Days {
		it.Days[i].TotalDayCost = RecomputeDayCost(it.Days[i])
	}
	if total > 0 {
		it.BudgetBreakdown = ReconcileBudget(it.BudgetBreakdown, total)
	}
	it.TotalEstimatedCost = sumDayCosts(it.Days)
	if it.CulturalNotes == nil {
		it.CulturalNotes = []string{}
	}
	if it.TravelTips == nil {
		it.TravelTips = []string{}
	}
	if it.LocalExperiences == nil {
		it.LocalExperiences = []string{}
	}
	if it.SeasonalConsiderations == nil {
		it.SeasonalConsiderations = []string{}
	}
}

func sumDayCosts(days []ItineraryDay) Cost {
	var total Cost
	for _, d := range days {
		total = total.Plus(d.TotalDayCost)
	}
	return total
}
