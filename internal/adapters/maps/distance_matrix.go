package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/platform/obs"
)

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// TransitMinutes fetches the transit travel time from origin to one
// destination via the Distance Matrix API, targeting arrival on the next
// weekday at 09:00.
func (g *GoogleMapsProvider) TransitMinutes(
	ctx context.Context,
	origin domain.Coordinates,
	destination string,
) (_ int, err error) {
	defer obs.Time(ctx, "maps.TransitMinutes")(&err)

	if destination == "" {
		return 0, fmt.Errorf("transit minutes: destination must be non-empty")
	}

	params := url.Values{}
	params.Set("origins", origin.LatLng())
	params.Set("destinations", destination)
	params.Set("mode", "transit")
	params.Set("arrival_time", strconv.FormatInt(g.nextWeekdayMorning().Unix(), 10))
	params.Set("units", "imperial")

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, "/maps/api/distancematrix/json", cloneValues(params))
	})
	if err != nil {
		return 0, fmt.Errorf("transit minutes to %q: %w", destination, err)
	}
	defer resp.Body.Close()

	var decoded distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if decoded.Status != "OK" {
		return 0, fmt.Errorf("transit minutes to %q: status %s: %w", destination, decoded.Status, domain.ErrUpstreamUnavailable)
	}
	if len(decoded.Rows) != 1 || len(decoded.Rows[0].Elements) != 1 {
		return 0, fmt.Errorf(
			"expected a 1x1 matrix; got rows=%d",
			len(decoded.Rows),
		)
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("transit minutes to %q: %w", destination, domain.ErrNoRouteFound)
	}

	return int(math.Round(float64(element.Duration.Value) / 60.0)), nil
}
