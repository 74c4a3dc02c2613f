package ports

import "context"

// Port: persistent cache mapping normalized addresses to geocode
// results, placed in front of the external geocoding capability.
// Geocodes are stable, so entries carry no TTL. The formatted address
// is stored with the coordinates so a cache hit reproduces the same
// response as a cold lookup.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (result GeocodeResult, ok bool, err error)
	Put(ctx context.Context, address string, result GeocodeResult) error
}
