package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"apartment-eval-service/internal/api/dto"
	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/services"
)

type EvaluateHandler struct {
	Service *services.EvaluationService
}

// Evaluate scores a single address: decode and validate the request, run
// the evaluation service, and map the domain result (or a typed domain
// error) onto the wire.
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	eval, err := h.Service.Evaluate(r.Context(), req.Address, toListingDetails(req.Listing))
	if err != nil {
		status, detail := mapEvaluateError(err)
		if status >= 500 {
			log.Printf("evaluate failed: %v", err)
		}
		writeError(w, r, status, detail)
		return
	}

	writeJSON(w, r, http.StatusOK, toEvaluationResponse(eval))
}

func mapEvaluateError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest, "address is empty or unusable"
	case errors.Is(err, domain.ErrNoRouteFound):
		return http.StatusBadRequest, "address not found"
	case services.IsTimeout(err):
		return http.StatusGatewayTimeout, "evaluation timed out"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "maps service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func toListingDetails(in *dto.ListingDetails) *domain.ListingDetails {
	if in == nil {
		return nil
	}
	return &domain.ListingDetails{
		Bedrooms:    in.Bedrooms,
		Laundry:     in.Laundry,
		CatsAllowed: in.CatsAllowed,
	}
}

func toEvaluationResponse(eval *domain.Evaluation) dto.EvaluationResponse {
	commutes := make(map[string]dto.CommuteResponse, len(eval.Commutes))
	for office, c := range eval.Commutes {
		commutes[office] = dto.CommuteResponse{
			DurationMinutes: c.DurationMinutes,
			MeetsPreference: c.MeetsPreference,
		}
	}

	subway := dto.SubwayResponse{MeetsPreference: eval.Subway.MeetsPreference}
	if eval.Subway.Found {
		name := eval.Subway.StationName
		miles := eval.Subway.DistanceMiles
		walk := eval.Subway.WalkTimeMinutes
		subway.StationName = &name
		subway.DistanceMiles = &miles
		subway.WalkTimeMinutes = &walk
		subway.Lines = eval.Subway.Lines
	} else {
		subway.Lines = []string{}
	}

	requirements := "PASSED"
	if !eval.Breakdown.RequirementsMet {
		requirements = "FAILED"
	}

	return dto.EvaluationResponse{
		Address:      eval.FormattedAddress,
		InputAddress: eval.InputAddress,
		Timestamp:    eval.CreatedAt,
		Coordinates: dto.CoordinatesResponse{
			Latitude:  eval.Coordinates.Lat,
			Longitude: eval.Coordinates.Lon,
		},
		Commutes: commutes,
		Subway:   subway,
		Amenities: dto.AmenitiesResponse{
			Restaurants:  eval.Amenities.Restaurants,
			Cafes:        eval.Amenities.Cafes,
			Bars:         eval.Amenities.Bars,
			BubbleTea:    eval.Amenities.BubbleTea,
			Total:        eval.Amenities.Total,
			DensityScore: eval.Amenities.DensityScore,
		},
		Score: eval.Score,
		Breakdown: dto.BreakdownResponse{
			Requirements: requirements,
			Commute:      eval.Breakdown.Commute,
			Subway:       eval.Breakdown.Subway,
			Amenities:    eval.Breakdown.Amenities,
			Bonus:        eval.Breakdown.Bonus,
		},
		Explanation: eval.Explanation,
		Cached:      eval.Cached,
	}
}
