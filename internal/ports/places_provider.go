package ports

import (
	"context"

	"apartment-eval-service/internal/domain"
)

// One amenity category search. Exactly one of PlaceType or Keyword is set
// (the Places API distinguishes typed searches from keyword searches).
type AmenityQuery struct {
	Category  string
	PlaceType string
	Keyword   string
}

// Contract for counting nearby places of a given category.
type PlacesProvider interface {
	// Return the number of places matching the query within radiusMeters
	// of origin.
	CountNearby(ctx context.Context, origin domain.Coordinates, radiusMeters int, query AmenityQuery) (int, error)
}
