package planner

// Share of the total, in percent.
const (
	accommodationShare = 35
	transportShare     = 25
	foodShare          = 20
	activitiesShare    = 15
)

// AllocateBudget splits total into the five buckets. Miscellaneous takes
// whatever flooring left over, so the buckets always sum to total.
func AllocateBudget(total int64) BudgetBreakdown {
	if total <= 0 {
		return BudgetBreakdown{}
	}
	b := BudgetBreakdown{
		Accommodation: Cost(total * accommodationShare / 100),
		Transport:     Cost(total * transportShare / 100),
		Food:          Cost(total * foodShare / 100),
		Activities:    Cost(total * activitiesShare / 100),
	}
	return ReconcileBudget(b, total)
}

// ReconcileBudget forces miscellaneous to close the gap to total. When a
// main bucket is out of range, or the four together exceed total, they are
// replaced by a fresh split.
func ReconcileBudget(b BudgetBreakdown, total int64) BudgetBreakdown {
	if total <= 0 {
		return b
	}
	for _, c := range []Cost{b.Accommodation, b.Transport, b.Food, b.Activities} {
		if c < 0 || int64(c) > total {
			return AllocateBudget(total)
		}
	}
	main := int64(b.Accommodation + b.Transport + b.Food + b.Activities)
	if main > total {
		return AllocateBudget(total)
	}
	b.Miscellaneous = Cost(total - main)
	return b
}
