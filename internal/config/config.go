package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"apartment-eval-service/internal/domain"
)

// Scoring weights for the four sub-scores. Must sum to 1.0.
type Weights struct {
	Commute   float64
	Subway    float64
	Amenities float64
	Bonus     float64
}

func (w Weights) Sum() float64 { return w.Commute + w.Subway + w.Amenities + w.Bonus }

// Hard requirements. A listing failing any configured rule zeroes the
// overall score. Empty slices / false flags disable the corresponding check.
type Requirements struct {
	AllowedBedrooms    []int
	AllowedLaundry     []string
	RequireCatsAllowed bool
}

// Immutable process configuration, built once at startup and validated
// before the server accepts traffic.
type Config struct {
	Offices []domain.OfficeTarget

	Weights              Weights
	MaxCommuteMinutes    int
	MaxSubwayWalkMinutes int
	AmenityRadiusMiles   float64
	Requirements         Requirements

	CacheTTL        time.Duration
	SubCallTimeout  time.Duration
	EvaluateTimeout time.Duration
}

// Default returns the configuration the original tool shipped with:
// four NYC offices, 40/30/20/10 weights, 30 min commute and 5 min subway
// walk preferences, 24h cache TTL.
func Default() Config {
	return Config{
		Offices: []domain.OfficeTarget{
			{ID: "office_1", Name: "Office 1 (Midtown East)", Address: "110 E 59th St, New York, NY 10022"},
			{ID: "office_2", Name: "Office 2 (Midtown)", Address: "767 5th Ave, New York, NY 10153"},
			{ID: "office_3", Name: "Office 3 (SoHo)", Address: "130 Prince St, New York, NY 10012"},
			{ID: "office_4", Name: "Office 4 (Chelsea)", Address: "40 W 23rd St, New York, NY 10010"},
		},
		Weights: Weights{
			Commute:   0.40,
			Subway:    0.30,
			Amenities: 0.20,
			Bonus:     0.10,
		},
		MaxCommuteMinutes:    30,
		MaxSubwayWalkMinutes: 5,
		AmenityRadiusMiles:   0.5,
		Requirements: Requirements{
			AllowedBedrooms:    []int{1, 2},
			AllowedLaundry:     []string{"in_unit", "in_building"},
			RequireCatsAllowed: true,
		},
		CacheTTL:        24 * time.Hour,
		SubCallTimeout:  8 * time.Second,
		EvaluateTimeout: 15 * time.Second,
	}
}

// FromEnv overlays environment variables onto the defaults. A set but
// malformed variable is an error, not a silent fallback.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error

	set := func(dst *float64, key string) {
		if err == nil {
			*dst, err = getFloat(key, *dst)
		}
	}
	setInt := func(dst *int, key string) {
		if err == nil {
			*dst, err = getInt(key, *dst)
		}
	}

	set(&cfg.Weights.Commute, "WEIGHT_COMMUTE")
	set(&cfg.Weights.Subway, "WEIGHT_SUBWAY")
	set(&cfg.Weights.Amenities, "WEIGHT_AMENITIES")
	set(&cfg.Weights.Bonus, "WEIGHT_BONUS")

	setInt(&cfg.MaxCommuteMinutes, "MAX_COMMUTE_MINUTES")
	setInt(&cfg.MaxSubwayWalkMinutes, "MAX_SUBWAY_WALK_MINUTES")
	set(&cfg.AmenityRadiusMiles, "AMENITY_RADIUS_MILES")

	var hours, subSecs, evalSecs int
	setInt(&hours, "CACHE_TTL_HOURS")
	setInt(&subSecs, "SUBCALL_TIMEOUT_SECONDS")
	setInt(&evalSecs, "EVALUATE_TIMEOUT_SECONDS")
	if err != nil {
		return Config{}, err
	}

	if hours > 0 {
		cfg.CacheTTL = time.Duration(hours) * time.Hour
	}
	if subSecs > 0 {
		cfg.SubCallTimeout = time.Duration(subSecs) * time.Second
	}
	if evalSecs > 0 {
		cfg.EvaluateTimeout = time.Duration(evalSecs) * time.Second
	}

	return cfg, nil
}

// Validate fails fast on configuration that would only break at use time.
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("config: scoring weights must sum to 1.0, got %.4f", c.Weights.Sum())
	}

	if len(c.Offices) == 0 {
		return fmt.Errorf("config: office list must not be empty")
	}
	for _, o := range c.Offices {
		if o.Name == "" || o.Address == "" {
			return fmt.Errorf("config: office %q must have a name and address", o.ID)
		}
	}

	if c.MaxCommuteMinutes <= 0 {
		return fmt.Errorf("config: max commute minutes must be positive, got %d", c.MaxCommuteMinutes)
	}
	if c.MaxSubwayWalkMinutes <= 0 {
		return fmt.Errorf("config: max subway walk minutes must be positive, got %d", c.MaxSubwayWalkMinutes)
	}
	if c.AmenityRadiusMiles <= 0 {
		return fmt.Errorf("config: amenity radius must be positive, got %.2f", c.AmenityRadiusMiles)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: cache TTL must be positive, got %s", c.CacheTTL)
	}

	return nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", key, v)
	}
	return i, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number", key, v)
	}
	return f, nil
}
