package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/platform/obs"
	"apartment-eval-service/internal/ports"
)

type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name string `json:"name"`
	} `json:"results"`
}

// CountNearby counts places matching the query within radiusMeters of
// origin via the Places Nearby Search API.
func (g *GoogleMapsProvider) CountNearby(
	ctx context.Context,
	origin domain.Coordinates,
	radiusMeters int,
	query ports.AmenityQuery,
) (_ int, err error) {
	defer obs.Time(ctx, "maps.CountNearby."+query.Category)(&err)

	params := url.Values{}
	params.Set("location", origin.LatLng())
	params.Set("radius", strconv.Itoa(radiusMeters))
	if query.PlaceType != "" {
		params.Set("type", query.PlaceType)
	}
	if query.Keyword != "" {
		params.Set("keyword", query.Keyword)
	}

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, "/maps/api/place/nearbysearch/json", cloneValues(params))
	})
	if err != nil {
		return 0, fmt.Errorf("count nearby %q: %w", query.Category, err)
	}
	defer resp.Body.Close()

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode places response: %w", err)
	}

	switch decoded.Status {
	case "OK":
		return len(decoded.Results), nil
	case "ZERO_RESULTS":
		return 0, nil
	default:
		return 0, fmt.Errorf("count nearby %q: status %s: %w", query.Category, decoded.Status, domain.ErrUpstreamUnavailable)
	}
}
