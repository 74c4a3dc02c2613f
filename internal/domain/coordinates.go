package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as "lat,lng" for Google Maps API compatibility.
func (c Coordinates) LatLng() string { return fmt.Sprintf("%f,%f", c.Lat, c.Lon) }
