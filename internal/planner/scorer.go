package planner

import "sort"

const defaultRating = 3.0

// ScoreDestination ranks a destination against the traveller's interests.
func ScoreDestination(dest CandidateDestination, interests []string) float64 {
	score := dest.Rating
	if score <= 0 {
		score = defaultRating
	}

	wanted := make(map[string]struct{}, len(interests))
	for _, tag := range interests {
		wanted[tag] = struct{}{}
	}
	for _, tag := range dest.Tags {
		if _, ok := wanted[tag]; ok {
			score += 0.5
		}
	}

	if dest.Featured {
		score += 1
	}
	if dest.CulturalSignificance != "" {
		score += 0.5
	}
	return score
}

// SelectDestinations scores every candidate and keeps the best
// floor(min(duration*1.5, len(candidates))) of them. Ties keep input order.
func SelectDestinations(candidates []CandidateDestination, duration int, interests []string) []ScoredDestination {
	if len(candidates) == 0 || duration <= 0 {
		return []ScoredDestination{}
	}

	scored := make([]ScoredDestination, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoredDestination{CandidateDestination: c, Score: ScoreDestination(c, interests)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored[:targetCount(duration, len(scored))]
}

func targetCount(duration, available int) int {
	// floor(duration*1.5) without touching floats
	target := duration * 3 / 2
	if target > available {
		target = available
	}
	return target
}
