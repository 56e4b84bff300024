package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"collie/internal/core"
)

func newTestCache(t *testing.T, ttl time.Duration) *GeodataCache {
	t.Helper()
	cache, err := NewGeodataCache(filepath.Join(t.TempDir(), "geodata.db"), ttl)
	if err != nil {
		t.Fatalf("NewGeodataCache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, time.Minute)

	_, _, _, hit, err := cache.GetGeocode(ctx, "geocode:Porto")
	if err != nil {
		t.Fatalf("GetGeocode empty: %v", err)
	}
	if hit {
		t.Fatal("expected miss on empty cache")
	}

	if err := cache.SetGeocode(ctx, "geocode:Porto", 41.1579, -8.6291, true); err != nil {
		t.Fatalf("SetGeocode: %v", err)
	}

	lat, lon, found, hit, err := cache.GetGeocode(ctx, "geocode:Porto")
	if err != nil {
		t.Fatalf("GetGeocode: %v", err)
	}
	if !hit || !found || lat != 41.1579 || lon != -8.6291 {
		t.Fatalf("GetGeocode = %v %v found=%v hit=%v", lat, lon, found, hit)
	}
}

func TestGeocodeCacheNegativeResult(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, time.Minute)

	if err := cache.SetGeocode(ctx, "geocode:Atlantis", 0, 0, false); err != nil {
		t.Fatalf("SetGeocode: %v", err)
	}

	_, _, found, hit, err := cache.GetGeocode(ctx, "geocode:Atlantis")
	if err != nil {
		t.Fatalf("GetGeocode: %v", err)
	}
	if !hit || found {
		t.Fatalf("negative result should cache: hit=%v found=%v", hit, found)
	}
}

func TestPlaceCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, time.Minute)

	places := []core.Place{
		{Name: "Quiet Park", Lat: 41.15, Lon: -8.62, Category: core.CategoryPark, DistanceFromCenter: 1.2},
	}
	if err := cache.SetPlaces(ctx, "places:41.16,-8.63:3000", places); err != nil {
		t.Fatalf("SetPlaces: %v", err)
	}

	got, hit, err := cache.GetPlaces(ctx, "places:41.16,-8.63:3000")
	if err != nil {
		t.Fatalf("GetPlaces: %v", err)
	}
	if !hit || len(got) != 1 || got[0].Name != "Quiet Park" {
		t.Fatalf("GetPlaces = %v hit=%v", got, hit)
	}
}

func TestExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, -time.Second) // everything expires immediately

	if err := cache.SetGeocode(ctx, "k", 1, 2, true); err != nil {
		t.Fatalf("SetGeocode: %v", err)
	}
	if err := cache.SetPlaces(ctx, "k", nil); err != nil {
		t.Fatalf("SetPlaces: %v", err)
	}

	if _, _, _, hit, _ := cache.GetGeocode(ctx, "k"); hit {
		t.Fatal("expired geocode row should miss")
	}
	if _, hit, _ := cache.GetPlaces(ctx, "k"); hit {
		t.Fatal("expired place row should miss")
	}

	purged, err := cache.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 2 {
		t.Fatalf("purged = %d, want 2", purged)
	}
}
