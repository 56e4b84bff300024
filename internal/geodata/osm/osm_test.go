package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"collie/internal/core"
)

func TestGeocodeAgainstFakeNominatim(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"lat": "41.1579", "lon": "-8.6291"}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{NominatimURL: srv.URL, UserAgent: "test-agent"})
	lat, lon, found, err := client.Geocode(context.Background(), "Porto")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if !found || lat != 41.1579 || lon != -8.6291 {
		t.Fatalf("Geocode = %v, %v, %v", lat, lon, found)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotQuery != "Porto" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestGeocodeBlankDestination(t *testing.T) {
	client := NewClient(Config{})
	_, _, found, err := client.Geocode(context.Background(), "   ")
	if err != nil || found {
		t.Fatalf("blank destination: found=%v err=%v", found, err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{NominatimURL: srv.URL})
	if _, _, _, err := client.Geocode(context.Background(), "Porto"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestFetchNearbyAgainstFakeOverpass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.Write([]byte(overpassFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{OverpassURL: srv.URL})
	places, err := client.FetchNearby(context.Background(), 51.5074, -0.1278, 3.0, nil)
	if err != nil {
		t.Fatalf("FetchNearby: %v", err)
	}
	if len(places) != 3 {
		t.Fatalf("expected 3 places, got %d", len(places))
	}
}

func TestFetchNearbyNoUsableCategories(t *testing.T) {
	client := NewClient(Config{OverpassURL: "http://invalid.invalid"})
	places, err := client.FetchNearby(context.Background(), 0, 0, 1.0, []core.Category{core.CategoryOther})
	if err != nil || places != nil {
		t.Fatalf("expected empty no-op, got %v, %v", places, err)
	}
}
