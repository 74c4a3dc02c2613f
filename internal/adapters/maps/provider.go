package maps

import (
	"errors"
	"net/http"
	"time"

	"apartment-eval-service/internal/ports"
)

// GoogleMapsProvider implements Geocoder, TransitProvider and
// PlacesProvider against the Google Maps Web Service APIs.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//   - Translation of transport failures into typed domain errors
//
// The provider is safe for concurrent use.
type GoogleMapsProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	geocodeCache ports.GeocodeCache
	now          func() time.Time
}

func NewGoogleMapsProvider(apiKey string, geocodeCache ports.GeocodeCache) (*GoogleMapsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	provider := &GoogleMapsProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		geocodeCache: geocodeCache,
		now:          time.Now,
	}

	return provider, nil
}

// nextWeekdayMorning returns the next weekday at 09:00 local time, used as
// the commute arrival target.
func (g *GoogleMapsProvider) nextWeekdayMorning() time.Time {
	day := g.now().AddDate(0, 0, 1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
}
