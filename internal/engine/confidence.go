package engine

// Confidence scoring is a point heuristic over input completeness, not a
// statistical model. Identical inputs always yield identical ratings.
const (
	weightPoints        = 2
	distancePoints      = 2
	fuelDataPoints      = 2
	loadFactorPoints    = 1
	wtwScopePoints      = 1
	regionPoints        = 1
	highConfidenceMin   = 7
	mediumConfidenceMin = 4
)

// ConfidenceScore totals the completeness points for an activity and the
// factor that was applied to it.
func ConfidenceScore(activity ActivityData, factor EmissionFactor) int {
	score := 0
	if activity.Weight > 0 {
		score += weightPoints
	}
	if activity.Distance > 0 {
		score += distancePoints
	}
	if activity.FuelConsumed > 0 {
		score += fuelDataPoints
	}
	if activity.LoadFactor != nil {
		score += loadFactorPoints
	}
	if factor.Scope == ScopeWTW {
		score += wtwScopePoints
	}
	if factor.Region != "" {
		score += regionPoints
	}
	return score
}

// ConfidenceLevel maps a completeness score to a qualitative rating.
func ConfidenceLevel(score int) Confidence {
	switch {
	case score >= highConfidenceMin:
		return ConfidenceHigh
	case score >= mediumConfidenceMin:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
