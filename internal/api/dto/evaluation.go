package dto

import "time"

type ListingDetails struct {
	Bedrooms    *int   `json:"bedrooms,omitempty"`
	Laundry     string `json:"laundry,omitempty"`
	CatsAllowed *bool  `json:"cats_allowed,omitempty"`
}

type EvaluateRequest struct {
	Address string          `json:"address"`
	Listing *ListingDetails `json:"listing,omitempty"`
}

type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CommuteResponse struct {
	DurationMinutes *int `json:"duration_minutes"`
	MeetsPreference bool `json:"meets_preference"`
}

type SubwayResponse struct {
	StationName     *string  `json:"station_name"`
	Lines           []string `json:"lines"`
	DistanceMiles   *float64 `json:"distance_miles"`
	WalkTimeMinutes *int     `json:"walk_time_minutes"`
	MeetsPreference bool     `json:"meets_preference"`
}

type AmenitiesResponse struct {
	Restaurants  int     `json:"restaurants"`
	Cafes        int     `json:"cafes"`
	Bars         int     `json:"bars"`
	BubbleTea    int     `json:"bubble_tea"`
	Total        int     `json:"total"`
	DensityScore float64 `json:"density_score"`
}

type BreakdownResponse struct {
	Requirements string  `json:"requirements"`
	Commute      float64 `json:"commute"`
	Subway       float64 `json:"subway"`
	Amenities    float64 `json:"amenities"`
	Bonus        float64 `json:"bonus"`
}

type EvaluationResponse struct {
	Address      string                     `json:"address"`
	InputAddress string                     `json:"input_address"`
	Timestamp    time.Time                  `json:"timestamp"`
	Coordinates  CoordinatesResponse        `json:"coordinates"`
	Commutes     map[string]CommuteResponse `json:"commutes"`
	Subway       SubwayResponse             `json:"subway"`
	Amenities    AmenitiesResponse          `json:"amenities"`
	Score        float64                    `json:"score"`
	Breakdown    BreakdownResponse          `json:"breakdown"`
	Explanation  string                     `json:"explanation"`
	Cached       bool                       `json:"cached"`
}

type CacheStatsResponse struct {
	CachedAddresses int      `json:"cached_addresses"`
	Addresses       []string `json:"addresses"`
}
