package stations

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"apartment-eval-service/internal/domain"
)

const (
	earthRadiusMiles = 3958.8
	walkingSpeedMPH  = 3.0
)

// One subway station from the local dataset.
type Station struct {
	Name  string   `json:"name"`
	Lat   float64  `json:"latitude"`
	Lon   float64  `json:"longitude"`
	Lines []string `json:"lines"`
}

// Index over the local subway-station dataset. Lookups are pure
// computation; no network calls.
type Index struct {
	stations []Station
}

func NewIndex(stations []Station) *Index {
	return &Index{stations: stations}
}

// LoadIndex reads the station dataset from a JSON seed file.
func LoadIndex(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stations: read %q: %w", path, err)
	}

	var stations []Station
	if err := json.Unmarshal(b, &stations); err != nil {
		return nil, fmt.Errorf("load stations: decode %q: %w", path, err)
	}

	return &Index{stations: stations}, nil
}

func (i *Index) Len() int { return len(i.stations) }

// NearestStation scans all stations for the smallest great-circle
// distance and derives a walk time at 3 mph. The preference flag is left
// for the caller, which owns the threshold.
func (i *Index) NearestStation(origin domain.Coordinates) domain.SubwayResult {
	if len(i.stations) == 0 {
		return domain.SubwayResult{}
	}

	var nearest Station
	minDistance := math.Inf(1)

	for _, s := range i.stations {
		d := haversineMiles(origin, domain.Coordinates{Lat: s.Lat, Lon: s.Lon})
		if d < minDistance {
			minDistance = d
			nearest = s
		}
	}

	walkMinutes := minDistance / walkingSpeedMPH * 60

	return domain.SubwayResult{
		Found:           true,
		StationName:     nearest.Name,
		Lines:           nearest.Lines,
		DistanceMiles:   math.Round(minDistance*100) / 100,
		WalkTimeMinutes: int(math.Round(walkMinutes)),
	}
}

func haversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
