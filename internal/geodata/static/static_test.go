package static

import (
	"context"
	"testing"
)

func TestGeocodeKnownCity(t *testing.T) {
	s := New()
	lat, lon, found, err := s.Geocode(context.Background(), "Lisbon")
	if err != nil || !found {
		t.Fatalf("Geocode: found=%v err=%v", found, err)
	}
	if lat != 38.7223 || lon != -9.1393 {
		t.Fatalf("coords = %v, %v", lat, lon)
	}
}

func TestGeocodeCaseInsensitive(t *testing.T) {
	s := New()
	_, _, found, _ := s.Geocode(context.Background(), "  porto ")
	if !found {
		t.Fatal("expected case-insensitive match")
	}
}

func TestGeocodeUnknownCity(t *testing.T) {
	s := New()
	_, _, found, err := s.Geocode(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unknown city should not error: %v", err)
	}
	if found {
		t.Fatal("unknown city should not be found")
	}
}

func TestSuggestions(t *testing.T) {
	s := New()

	t.Run("curated city", func(t *testing.T) {
		picks := s.Suggestions("London", 2)
		if len(picks) != 2 {
			t.Fatalf("expected 2 picks, got %v", picks)
		}
		if picks[0].Destination != "Little Venice canal walk" {
			t.Errorf("unexpected first pick: %+v", picks[0])
		}
	})

	t.Run("unknown city falls back to generic", func(t *testing.T) {
		picks := s.Suggestions("Atlantis", 6)
		if len(picks) != 3 {
			t.Fatalf("expected generic picks, got %v", picks)
		}
	})
}
