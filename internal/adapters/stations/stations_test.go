package stations

import (
	"os"
	"path/filepath"
	"testing"

	"apartment-eval-service/internal/domain"
)

func testStations() []Station {
	return []Station{
		{Name: "Court Sq", Lat: 40.7470, Lon: -73.9454, Lines: []string{"E", "M", "7", "G"}},
		{Name: "Queensboro Plaza", Lat: 40.7508, Lon: -73.9401, Lines: []string{"N", "W", "7"}},
		{Name: "Bedford Av", Lat: 40.7172, Lon: -73.9567, Lines: []string{"L"}},
	}
}

func TestNearestStation(t *testing.T) {
	idx := NewIndex(testStations())

	// Just south of Court Sq.
	got := idx.NearestStation(domain.Coordinates{Lat: 40.7450, Lon: -73.9460})
	if !got.Found {
		t.Fatal("expected a station to be found")
	}
	if got.StationName != "Court Sq" {
		t.Errorf("station = %q, want Court Sq", got.StationName)
	}
	if len(got.Lines) != 4 {
		t.Errorf("lines = %v, want 4 lines", got.Lines)
	}
	if got.DistanceMiles <= 0 || got.DistanceMiles > 0.5 {
		t.Errorf("distance = %v miles, want small positive value", got.DistanceMiles)
	}
	if got.WalkTimeMinutes <= 0 {
		t.Errorf("walk time = %d, want positive", got.WalkTimeMinutes)
	}
}

func TestNearestStationEmptyIndex(t *testing.T) {
	idx := NewIndex(nil)

	got := idx.NearestStation(domain.Coordinates{Lat: 40.75, Lon: -73.94})
	if got.Found {
		t.Fatal("expected Found=false with no station data")
	}
}

func TestWalkTimeAtThreeMPH(t *testing.T) {
	// One station exactly 0.25 miles north of the origin is a 5 minute
	// walk at 3 mph. 0.25 miles of latitude is about 0.003617 degrees.
	idx := NewIndex([]Station{{Name: "Only", Lat: 40.75 + 0.0036169, Lon: -73.94}})

	got := idx.NearestStation(domain.Coordinates{Lat: 40.75, Lon: -73.94})
	if got.WalkTimeMinutes != 5 {
		t.Errorf("walk time = %d, want 5", got.WalkTimeMinutes)
	}
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stations.json")

	data := `[{"name": "Court Sq", "latitude": 40.747, "longitude": -73.9454, "lines": ["E", "M"]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("len = %d, want 1", idx.Len())
	}
}

func TestLoadIndexMissingFile(t *testing.T) {
	if _, err := LoadIndex("does/not/exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
