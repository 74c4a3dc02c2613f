package cache

import (
	"context"
	"database/sql"
	"testing"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"

	_ "modernc.org/sqlite"
)

func newTestGeocodeCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gc := NewSqliteGeocodeCache(db)
	if err := gc.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return gc
}

func TestSqliteGeocodeCachePutGet(t *testing.T) {
	gc := newTestGeocodeCache(t)
	ctx := context.Background()

	want := ports.GeocodeResult{
		Coordinates:      domain.Coordinates{Lat: 40.7470, Lon: -73.9454},
		FormattedAddress: "123 Main St, Queens, NY 11101, USA",
	}
	if err := gc.Put(ctx, "123 main st, queens, ny 11101", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := gc.Get(ctx, "123 main st, queens, ny 11101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Coordinates != want.Coordinates {
		t.Errorf("coords = %+v, want %+v", got.Coordinates, want.Coordinates)
	}
	if got.FormattedAddress != want.FormattedAddress {
		t.Errorf("formatted address = %q, want %q", got.FormattedAddress, want.FormattedAddress)
	}
}

func TestSqliteGeocodeCacheMiss(t *testing.T) {
	gc := newTestGeocodeCache(t)

	_, ok, err := gc.Get(context.Background(), "never stored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected cache miss")
	}
}

func TestSqliteGeocodeCacheReplace(t *testing.T) {
	gc := newTestGeocodeCache(t)
	ctx := context.Background()

	first := ports.GeocodeResult{Coordinates: domain.Coordinates{Lat: 1, Lon: 2}, FormattedAddress: "Old"}
	second := ports.GeocodeResult{Coordinates: domain.Coordinates{Lat: 3, Lon: 4}, FormattedAddress: "New"}

	if err := gc.Put(ctx, "addr", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gc.Put(ctx, "addr", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := gc.Get(ctx, "addr")
	if err != nil || !ok {
		t.Fatalf("get after replace: ok=%v err=%v", ok, err)
	}
	if got != second {
		t.Errorf("result = %+v, want replaced value", got)
	}
}

func TestSqliteGeocodeCacheEmptyAddress(t *testing.T) {
	gc := newTestGeocodeCache(t)
	ctx := context.Background()

	if err := gc.Put(ctx, "   ", ports.GeocodeResult{}); err == nil {
		t.Error("expected error for empty address key")
	}

	_, ok, err := gc.Get(ctx, "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("empty address must never hit")
	}
}
