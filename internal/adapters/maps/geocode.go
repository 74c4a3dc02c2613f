package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/platform/obs"
	"apartment-eval-service/internal/ports"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address via the Geocoding API (/maps/api/geocode/json),
// consulting the persistent geocode cache first.
func (g *GoogleMapsProvider) Geocode(
	ctx context.Context,
	address string,
) (_ ports.GeocodeResult, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return ports.GeocodeResult{}, domain.ErrInvalidAddress
	}

	if g.geocodeCache != nil {
		cached, ok, cerr := g.geocodeCache.Get(ctx, norm)
		if cerr != nil {
			log.Printf("geocode cache read failed: %v", cerr)
		} else if ok {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("address", norm)

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, "/maps/api/geocode/json", cloneValues(params))
	})
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", norm, domain.ErrNoRouteFound)
	}
	if decoded.Status != "OK" {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: status %s: %w", norm, decoded.Status, domain.ErrUpstreamUnavailable)
	}

	loc := decoded.Results[0].Geometry.Location
	result := ports.GeocodeResult{
		Coordinates:      domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng},
		FormattedAddress: decoded.Results[0].FormattedAddress,
	}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.Put(ctx, norm, result); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return result, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
