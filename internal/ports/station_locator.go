package ports

import "apartment-eval-service/internal/domain"

// Contract for finding the nearest subway station to a coordinate.
// Station data is local, so lookups never touch the network.
type StationLocator interface {
	// Return the nearest station with distance and estimated walk time.
	// A zero-value result with Found=false means no station data exists.
	NearestStation(origin domain.Coordinates) domain.SubwayResult
}
