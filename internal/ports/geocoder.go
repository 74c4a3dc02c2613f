package ports

import (
	"context"

	"apartment-eval-service/internal/domain"
)

// Resolved location for a free-text address.
type GeocodeResult struct {
	Coordinates      domain.Coordinates
	FormattedAddress string
}

// Contract for resolving a free-text address to geographic coordinates.
type Geocoder interface {
	// Resolve an address to a coordinate. Returns domain.ErrNoRouteFound
	// when the address yields no result and domain.ErrUpstreamUnavailable
	// on transport failure.
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}
