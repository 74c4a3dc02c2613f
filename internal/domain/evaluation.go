package domain

import "time"

// Transit commute to a single office. A nil duration means the upstream
// call failed or returned no route; the office still appears in the result.
type CommuteResult struct {
	DurationMinutes *int
	MeetsPreference bool
}

// Nearest subway station to the evaluated address. Found is false when no
// station data was available, in which case the other fields are zero.
type SubwayResult struct {
	Found           bool
	StationName     string
	Lines           []string
	DistanceMiles   float64
	WalkTimeMinutes int
	MeetsPreference bool
}

// Counts of amenities within the search radius, by category, plus a
// density score on a fixed 0-10 scale.
type AmenityResult struct {
	Restaurants  int
	Cafes        int
	Bars         int
	BubbleTea    int
	Total        int
	DensityScore float64
}

// The four weighted sub-scores making up the overall score. Each value is
// already weight-applied and rounded to two decimals, so they sum to the
// overall score exactly.
type ScoreBreakdown struct {
	Commute         float64
	Subway          float64
	Amenities       float64
	Bonus           float64
	RequirementsMet bool
}

// Optional listing attributes checked against the configured hard
// requirements. Nil / empty fields are not checked.
type ListingDetails struct {
	Bedrooms    *int
	Laundry     string
	CatsAllowed *bool
}

// One full scoring run for a single address. This is the response payload
// and the unit stored in the evaluation cache.
type Evaluation struct {
	InputAddress     string
	FormattedAddress string
	Coordinates      Coordinates
	Commutes         map[string]CommuteResult
	Subway           SubwayResult
	Amenities        AmenityResult
	Score            float64
	Breakdown        ScoreBreakdown
	Explanation      string
	Cached           bool
	CreatedAt        time.Time
}
