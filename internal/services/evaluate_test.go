package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"apartment-eval-service/internal/adapters/cache"
	"apartment-eval-service/internal/adapters/maps"
	"apartment-eval-service/internal/adapters/stations"
	"apartment-eval-service/internal/config"
	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Offices = []domain.OfficeTarget{
		{ID: "office_1", Name: "Office 1", Address: "A"},
		{ID: "office_2", Name: "Office 2", Address: "B"},
	}
	return cfg
}

func testStationIndex() *stations.Index {
	return stations.NewIndex([]stations.Station{
		{Name: "Court Sq", Lat: 40.7470, Lon: -73.9454, Lines: []string{"E", "M", "7", "G"}},
	})
}

type testDeps struct {
	geocoder *maps.MockGeocoder
	transit  *maps.MockTransitProvider
	places   *maps.MockPlacesProvider
	cache    ports.EvaluationCache
}

func defaultDeps() testDeps {
	return testDeps{
		geocoder: &maps.MockGeocoder{
			Result: ports.GeocodeResult{
				Coordinates:      domain.Coordinates{Lat: 40.7470, Lon: -73.9454},
				FormattedAddress: "123 Main St, Queens, NY 11101, USA",
			},
		},
		transit: &maps.MockTransitProvider{Minutes: map[string]int{"A": 25, "B": 28}},
		places: &maps.MockPlacesProvider{Counts: map[string]int{
			"restaurants": 10, "cafes": 8, "bars": 5, "bubble_tea": 2,
		}},
		cache: cache.NewMemoryEvaluationCache(24 * time.Hour),
	}
}

func newTestService(d testDeps) *EvaluationService {
	return NewEvaluationService(testConfig(), d.geocoder, d.transit, d.places, testStationIndex(), d.cache)
}

func TestEvaluateFullRun(t *testing.T) {
	d := defaultDeps()
	svc := newTestService(d)

	eval, err := svc.Evaluate(context.Background(), "123 Main St, Queens, NY 11101", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Cached {
		t.Error("first evaluation must not be flagged cached")
	}
	if eval.FormattedAddress != "123 Main St, Queens, NY 11101, USA" {
		t.Errorf("formatted address = %q", eval.FormattedAddress)
	}

	if len(eval.Commutes) != 2 {
		t.Fatalf("commutes = %d, want 2", len(eval.Commutes))
	}
	c1 := eval.Commutes["Office 1"]
	if c1.DurationMinutes == nil || *c1.DurationMinutes != 25 || !c1.MeetsPreference {
		t.Errorf("office 1 commute = %+v, want 25 min meeting preference", c1)
	}

	if !eval.Subway.Found || eval.Subway.StationName != "Court Sq" {
		t.Errorf("subway = %+v, want Court Sq", eval.Subway)
	}
	if !eval.Subway.MeetsPreference {
		t.Errorf("subway a block away should meet the walk preference: %+v", eval.Subway)
	}

	if eval.Amenities.Total != 25 {
		t.Errorf("amenity total = %d, want 25", eval.Amenities.Total)
	}
	if eval.Amenities.DensityScore != 5.0 {
		t.Errorf("density = %v, want 5.0", eval.Amenities.DensityScore)
	}

	// Worked example: commute 0.40, subway 0.30, amenities 0.10, bonus
	// 0.10 => 0.90.
	if eval.Score != 0.90 {
		t.Errorf("score = %v, want 0.90", eval.Score)
	}
}

func TestEvaluateSecondCallIsCached(t *testing.T) {
	d := defaultDeps()
	svc := newTestService(d)
	ctx := context.Background()

	first, err := svc.Evaluate(ctx, "123 Main St", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.Evaluate(ctx, "  123  MAIN St ", nil) // same normalized key
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Cached || !second.Cached {
		t.Fatalf("cached flags = %v/%v, want false/true", first.Cached, second.Cached)
	}
	if d.geocoder.Calls() != 1 {
		t.Errorf("geocoder calls = %d, want 1 (second call served from cache)", d.geocoder.Calls())
	}

	// Identical apart from the cached flag.
	if second.Score != first.Score || second.FormattedAddress != first.FormattedAddress {
		t.Errorf("cached result differs: %v vs %v", second.Score, first.Score)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("cached CreatedAt differs: %v vs %v", second.CreatedAt, first.CreatedAt)
	}
}

func TestEvaluateInvalidAddress(t *testing.T) {
	svc := newTestService(defaultDeps())

	for _, addr := range []string{"", "   ", "\t\n"} {
		_, err := svc.Evaluate(context.Background(), addr, nil)
		if !errors.Is(err, domain.ErrInvalidAddress) {
			t.Errorf("Evaluate(%q) err = %v, want ErrInvalidAddress", addr, err)
		}
	}
}

func TestEvaluateGeocodeFailureIsFatalAndUncached(t *testing.T) {
	d := defaultDeps()
	d.geocoder.Err = domain.ErrNoRouteFound
	svc := newTestService(d)
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, "zzz-not-a-real-place", nil)
	if !errors.Is(err, domain.ErrNoRouteFound) {
		t.Fatalf("err = %v, want ErrNoRouteFound", err)
	}

	stats, _ := d.cache.Stats(ctx)
	if stats.Entries != 0 {
		t.Fatalf("cache entries = %d, want 0 after aborted evaluation", stats.Entries)
	}

	// A retry must trigger a fresh geocode attempt, not a cache hit.
	_, _ = svc.Evaluate(ctx, "zzz-not-a-real-place", nil)
	if d.geocoder.Calls() != 2 {
		t.Errorf("geocoder calls = %d, want 2", d.geocoder.Calls())
	}
}

func TestEvaluateUpstreamFailureIsFatal(t *testing.T) {
	d := defaultDeps()
	d.geocoder.Err = domain.ErrUpstreamUnavailable
	svc := newTestService(d)

	_, err := svc.Evaluate(context.Background(), "123 Main St", nil)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestEvaluateDegradesSingleCommuteFailure(t *testing.T) {
	d := defaultDeps()
	d.transit.Errs = map[string]error{"B": domain.ErrUpstreamUnavailable}
	svc := newTestService(d)

	eval, err := svc.Evaluate(context.Background(), "123 Main St", nil)
	if err != nil {
		t.Fatalf("one office failing must not abort the evaluation: %v", err)
	}

	degraded := eval.Commutes["Office 2"]
	if degraded.DurationMinutes != nil {
		t.Errorf("office 2 duration = %v, want nil", *degraded.DurationMinutes)
	}
	if degraded.MeetsPreference {
		t.Error("degraded commute must not meet preference")
	}

	healthy := eval.Commutes["Office 1"]
	if healthy.DurationMinutes == nil || *healthy.DurationMinutes != 25 {
		t.Errorf("office 1 commute = %+v, want intact 25 min", healthy)
	}
}

func TestEvaluateDegradesAmenityFailure(t *testing.T) {
	d := defaultDeps()
	d.places.Errs = map[string]error{"bars": domain.ErrUpstreamUnavailable}
	svc := newTestService(d)

	eval, err := svc.Evaluate(context.Background(), "123 Main St", nil)
	if err != nil {
		t.Fatalf("one category failing must not abort the evaluation: %v", err)
	}

	if eval.Amenities.Bars != 0 {
		t.Errorf("bars = %d, want 0 when the sub-call failed", eval.Amenities.Bars)
	}
	if eval.Amenities.Restaurants != 10 {
		t.Errorf("restaurants = %d, want intact count", eval.Amenities.Restaurants)
	}
	if eval.Amenities.Total != 20 {
		t.Errorf("total = %d, want 20", eval.Amenities.Total)
	}
}

func TestEvaluateRequirementsGating(t *testing.T) {
	d := defaultDeps()
	svc := newTestService(d)

	three := 3
	eval, err := svc.Evaluate(context.Background(), "123 Main St", &domain.ListingDetails{Bedrooms: &three})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Score != 0.0 {
		t.Errorf("score = %v, want 0.00 when hard requirements fail", eval.Score)
	}
	if eval.Breakdown.RequirementsMet {
		t.Error("RequirementsMet should be false")
	}
}

func TestEvaluateCeilingTimeout(t *testing.T) {
	d := defaultDeps()
	cfg := testConfig()
	cfg.EvaluateTimeout = 30 * time.Millisecond
	cfg.SubCallTimeout = time.Second

	svc := NewEvaluationService(cfg, d.geocoder, stalledTransit{}, d.places, testStationIndex(), d.cache)

	_, err := svc.Evaluate(context.Background(), "123 Main St", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded from the ceiling", err)
	}
	if !IsTimeout(err) {
		t.Error("IsTimeout must report the ceiling deadline")
	}

	stats, _ := d.cache.Stats(context.Background())
	if stats.Entries != 0 {
		t.Errorf("cache entries = %d, want 0 after a timed-out evaluation", stats.Entries)
	}
}

// Blocks every call until its context is cancelled.
type stalledTransit struct{}

func (stalledTransit) TransitMinutes(ctx context.Context, origin domain.Coordinates, destination string) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestEvaluateExpiredEntryRecomputes(t *testing.T) {
	d := defaultDeps()
	expiring := &expiringCache{inner: cache.NewMemoryEvaluationCache(24 * time.Hour)}
	d.cache = expiring
	svc := newTestService(d)
	ctx := context.Background()

	if _, err := svc.Evaluate(ctx, "123 Main St", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate the clock moving past the TTL: the store reports a miss.
	expiring.expired = true

	eval, err := svc.Evaluate(ctx, "123 Main St", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Cached {
		t.Error("expired entry must be recomputed, not served as a hit")
	}
	if d.geocoder.Calls() != 2 {
		t.Errorf("geocoder calls = %d, want 2 after expiry", d.geocoder.Calls())
	}
}

// Wraps the memory cache and force-expires everything once flipped.
type expiringCache struct {
	inner   *cache.MemoryEvaluationCache
	expired bool
}

func (c *expiringCache) Get(ctx context.Context, key string) (*domain.Evaluation, bool, error) {
	if c.expired {
		return nil, false, nil
	}
	return c.inner.Get(ctx, key)
}

func (c *expiringCache) Put(ctx context.Context, key string, eval *domain.Evaluation) error {
	return c.inner.Put(ctx, key, eval)
}

func (c *expiringCache) Clear(ctx context.Context) error { return c.inner.Clear(ctx) }

func (c *expiringCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	return c.inner.Stats(ctx)
}
