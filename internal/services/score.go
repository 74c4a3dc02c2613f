package services

import (
	"fmt"
	"math"

	"apartment-eval-service/internal/config"
	"apartment-eval-service/internal/domain"
)

// Scorer combines commute, subway, amenity and requirement-bonus
// sub-scores into one weighted 0.00-5.00 result. Pure computation;
// weights and thresholds are validated at startup.
type Scorer struct {
	weights           config.Weights
	maxCommuteMinutes float64
	maxWalkMinutes    float64
}

func NewScorer(cfg config.Config) *Scorer {
	return &Scorer{
		weights:           cfg.Weights,
		maxCommuteMinutes: float64(cfg.MaxCommuteMinutes),
		maxWalkMinutes:    float64(cfg.MaxSubwayWalkMinutes),
	}
}

// Score returns the overall score and its breakdown. Each sub-score is
// weight-applied and rounded to two decimals before summing, so the
// breakdown always sums to the overall exactly. A listing failing the
// hard requirements scores 0.00 across the board regardless of the other
// sub-scores; this all-or-nothing gating is deliberate.
func (s *Scorer) Score(
	commutes map[string]domain.CommuteResult,
	subway domain.SubwayResult,
	amenities domain.AmenityResult,
	requirementsMet bool,
) (float64, domain.ScoreBreakdown) {
	if !requirementsMet {
		return 0.0, domain.ScoreBreakdown{RequirementsMet: false}
	}

	breakdown := domain.ScoreBreakdown{
		Commute:         round2(s.commuteSubScore(commutes) * s.weights.Commute),
		Subway:          round2(s.subwaySubScore(subway) * s.weights.Subway),
		Amenities:       round2(amenities.DensityScore / 10.0 * s.weights.Amenities),
		Bonus:           round2(s.weights.Bonus),
		RequirementsMet: true,
	}

	overall := breakdown.Commute + breakdown.Subway + breakdown.Amenities + breakdown.Bonus
	overall = round2(math.Min(5.0, math.Max(0.0, overall)))

	return overall, breakdown
}

// Explain renders a one-line human-readable reading of a scored
// evaluation, reporting each sub-score against its weight ceiling.
func (s *Scorer) Explain(score float64, b domain.ScoreBreakdown) string {
	if !b.RequirementsMet {
		return "Does not meet basic requirements"
	}

	rating := "Poor"
	switch {
	case score >= 0.9:
		rating = "Excellent"
	case score >= 0.8:
		rating = "Great"
	case score >= 0.6:
		rating = "Good"
	case score >= 0.4:
		rating = "Fair"
	}

	return fmt.Sprintf(
		"%s location with commute score %.2f/%.2f, subway %.2f/%.2f, amenities %.2f/%.2f",
		rating,
		b.Commute, s.weights.Commute,
		b.Subway, s.weights.Subway,
		b.Amenities, s.weights.Amenities,
	)
}

// commuteSubScore averages the per-office decay values. Offices with no
// usable duration contribute 0.
func (s *Scorer) commuteSubScore(commutes map[string]domain.CommuteResult) float64 {
	if len(commutes) == 0 {
		return 0.0
	}

	var sum float64
	for _, c := range commutes {
		if c.DurationMinutes == nil {
			continue
		}
		sum += decay(float64(*c.DurationMinutes), s.maxCommuteMinutes)
	}

	return sum / float64(len(commutes))
}

func (s *Scorer) subwaySubScore(subway domain.SubwayResult) float64 {
	if !subway.Found {
		return 0.0
	}
	return decay(float64(subway.WalkTimeMinutes), s.maxWalkMinutes)
}

// decay maps a duration to [0,1]: 1.0 at or below the threshold, falling
// linearly to 0.0 at twice the threshold. Monotonically non-increasing.
func decay(value, threshold float64) float64 {
	if value <= threshold {
		return 1.0
	}
	return math.Max(0.0, 1.0-(value-threshold)/threshold)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MeetsRequirements checks the optional listing details against the
// configured hard requirements. Fields the listing does not carry are not
// checked, so an address-only evaluation passes.
func MeetsRequirements(req config.Requirements, listing *domain.ListingDetails) bool {
	if listing == nil {
		return true
	}

	if listing.Bedrooms != nil && len(req.AllowedBedrooms) > 0 {
		if !containsInt(req.AllowedBedrooms, *listing.Bedrooms) {
			return false
		}
	}

	if listing.Laundry != "" && len(req.AllowedLaundry) > 0 {
		if !containsString(req.AllowedLaundry, listing.Laundry) {
			return false
		}
	}

	if req.RequireCatsAllowed && listing.CatsAllowed != nil && !*listing.CatsAllowed {
		return false
	}

	return true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
