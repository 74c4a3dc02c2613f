package ports

import (
	"context"

	"apartment-eval-service/internal/domain"
)

// Contract for retrieving transit travel time between a coordinate and a
// destination address.
type TransitProvider interface {
	// Return the transit duration in whole minutes from origin to
	// destination. Returns domain.ErrNoRouteFound when no transit route
	// exists.
	TransitMinutes(ctx context.Context, origin domain.Coordinates, destination string) (int, error)
}
