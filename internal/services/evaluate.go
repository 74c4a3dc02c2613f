package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"apartment-eval-service/internal/config"
	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/platform/obs"
	"apartment-eval-service/internal/ports"
)

const metersPerMile = 1609.34

// The fixed amenity categories the proximity analysis searches for.
var amenityQueries = []ports.AmenityQuery{
	{Category: "restaurants", PlaceType: "restaurant"},
	{Category: "cafes", PlaceType: "cafe"},
	{Category: "bars", PlaceType: "bar"},
	{Category: "bubble_tea", Keyword: "bubble tea"},
}

type officeCommute struct {
	office string
	result domain.CommuteResult
}

type amenityCount struct {
	category string
	count    int
}

// EvaluationService orchestrates one full scoring run per address:
// normalize -> cache lookup -> geocode -> parallel commute/proximity
// fan-out -> score -> cache write. The cache is injected; the service
// holds no other state across requests.
type EvaluationService struct {
	cfg      config.Config
	geocoder ports.Geocoder
	transit  ports.TransitProvider
	places   ports.PlacesProvider
	stations ports.StationLocator
	cache    ports.EvaluationCache
	scorer   *Scorer
	now      func() time.Time
}

func NewEvaluationService(
	cfg config.Config,
	geocoder ports.Geocoder,
	transit ports.TransitProvider,
	places ports.PlacesProvider,
	stations ports.StationLocator,
	cache ports.EvaluationCache,
) *EvaluationService {
	return &EvaluationService{
		cfg:      cfg,
		geocoder: geocoder,
		transit:  transit,
		places:   places,
		stations: stations,
		cache:    cache,
		scorer:   NewScorer(cfg),
		now:      time.Now,
	}
}

// Evaluate scores a single address. Geocoding failure is fatal; commute
// and proximity sub-call failures degrade their own fields instead of
// aborting the evaluation. On a cache miss the completed evaluation is
// written back keyed by the normalized address (last writer wins).
func (s *EvaluationService) Evaluate(
	ctx context.Context,
	address string,
	listing *domain.ListingDetails,
) (_ *domain.Evaluation, err error) {
	defer obs.Time(ctx, "evaluate")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return nil, fmt.Errorf("evaluate: %w", domain.ErrInvalidAddress)
	}

	if cached, ok, cerr := s.cache.Get(ctx, norm); cerr != nil {
		log.Printf("evaluation cache read failed: %v", cerr)
	} else if ok {
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	// Ceiling over the full fan-out-and-join; sub-calls carry their own
	// shorter timeouts underneath it.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.EvaluateTimeout)
	defer cancel()

	geo, err := s.geocode(ctx, norm)
	if err != nil {
		// No cache write on an aborted evaluation.
		return nil, fmt.Errorf("evaluate %q: %w", norm, err)
	}

	commutes, amenities := s.fanOut(ctx, geo.Coordinates)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", norm, err)
	}

	subway := s.stations.NearestStation(geo.Coordinates)
	if subway.Found {
		subway.MeetsPreference = subway.WalkTimeMinutes <= s.cfg.MaxSubwayWalkMinutes
	}

	requirementsMet := MeetsRequirements(s.cfg.Requirements, listing)
	score, breakdown := s.scorer.Score(commutes, subway, amenities, requirementsMet)

	eval := &domain.Evaluation{
		InputAddress:     address,
		FormattedAddress: geo.FormattedAddress,
		Coordinates:      geo.Coordinates,
		Commutes:         commutes,
		Subway:           subway,
		Amenities:        amenities,
		Score:            score,
		Breakdown:        breakdown,
		Explanation:      s.scorer.Explain(score, breakdown),
		Cached:           false,
		CreatedAt:        s.now(),
	}

	if err := s.cache.Put(ctx, norm, eval); err != nil {
		log.Printf("evaluation cache write failed: %v", err)
	}

	return eval, nil
}

func (s *EvaluationService) geocode(ctx context.Context, norm string) (ports.GeocodeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SubCallTimeout)
	defer cancel()

	geo, err := s.geocoder.Geocode(ctx, norm)
	if err != nil {
		return ports.GeocodeResult{}, err
	}
	return geo, nil
}

// fanOut issues one transit call per office and one places call per
// amenity category, all concurrent. A failed sub-call degrades its own
// field (nil duration, zero count) and is logged; siblings are never
// cancelled.
func (s *EvaluationService) fanOut(
	ctx context.Context,
	origin domain.Coordinates,
) (map[string]domain.CommuteResult, domain.AmenityResult) {
	commuteCh := make(chan officeCommute, len(s.cfg.Offices))
	amenityCh := make(chan amenityCount, len(amenityQueries))
	var wg sync.WaitGroup

	for _, office := range s.cfg.Offices {
		wg.Add(1)
		go func(office domain.OfficeTarget) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, s.cfg.SubCallTimeout)
			defer cancel()

			minutes, err := s.transit.TransitMinutes(callCtx, origin, office.Address)
			if err != nil {
				log.Printf("commute to %q degraded: %v", office.Name, err)
				commuteCh <- officeCommute{office: office.Name, result: domain.CommuteResult{}}
				return
			}

			commuteCh <- officeCommute{
				office: office.Name,
				result: domain.CommuteResult{
					DurationMinutes: &minutes,
					MeetsPreference: minutes <= s.cfg.MaxCommuteMinutes,
				},
			}
		}(office)
	}

	radiusMeters := int(s.cfg.AmenityRadiusMiles * metersPerMile)
	for _, q := range amenityQueries {
		wg.Add(1)
		go func(q ports.AmenityQuery) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, s.cfg.SubCallTimeout)
			defer cancel()

			n, err := s.places.CountNearby(callCtx, origin, radiusMeters, q)
			if err != nil {
				log.Printf("amenity count %q degraded: %v", q.Category, err)
				amenityCh <- amenityCount{category: q.Category, count: 0}
				return
			}

			amenityCh <- amenityCount{category: q.Category, count: n}
		}(q)
	}

	wg.Wait()
	close(commuteCh)
	close(amenityCh)

	commutes := make(map[string]domain.CommuteResult, len(s.cfg.Offices))
	for c := range commuteCh {
		commutes[c.office] = c.result
	}

	counts := make(map[string]int, len(amenityQueries))
	for a := range amenityCh {
		counts[a.category] = a.count
	}

	return commutes, buildAmenityResult(counts)
}

// Density score on a 0-10 scale: 50+ amenities in range scores 10.
func buildAmenityResult(counts map[string]int) domain.AmenityResult {
	result := domain.AmenityResult{
		Restaurants: counts["restaurants"],
		Cafes:       counts["cafes"],
		Bars:        counts["bars"],
		BubbleTea:   counts["bubble_tea"],
	}
	result.Total = result.Restaurants + result.Cafes + result.Bars + result.BubbleTea

	density := float64(result.Total) / 50.0 * 10.0
	if density > 10.0 {
		density = 10.0
	}
	result.DensityScore = round1(density)

	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// IsTimeout reports whether an evaluation failed on the overall ceiling.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
