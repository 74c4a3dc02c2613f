package maps

import (
	"context"
	"fmt"
	"sync"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"
)

// Scripted Geocoder for service tests. Counts calls so cache behavior is
// observable.
type MockGeocoder struct {
	Result ports.GeocodeResult
	Err    error

	mu    sync.Mutex
	calls int
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return ports.GeocodeResult{}, m.Err
	}
	return m.Result, nil
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Scripted TransitProvider keyed by destination address.
type MockTransitProvider struct {
	Minutes map[string]int
	Errs    map[string]error
}

func (m *MockTransitProvider) TransitMinutes(ctx context.Context, origin domain.Coordinates, destination string) (int, error) {
	if err, ok := m.Errs[destination]; ok {
		return 0, err
	}
	mins, ok := m.Minutes[destination]
	if !ok {
		return 0, fmt.Errorf("missing destination %q", destination)
	}
	return mins, nil
}

// Scripted PlacesProvider keyed by amenity category.
type MockPlacesProvider struct {
	Counts map[string]int
	Errs   map[string]error
}

func (m *MockPlacesProvider) CountNearby(ctx context.Context, origin domain.Coordinates, radiusMeters int, query ports.AmenityQuery) (int, error) {
	if err, ok := m.Errs[query.Category]; ok {
		return 0, err
	}
	return m.Counts[query.Category], nil
}
