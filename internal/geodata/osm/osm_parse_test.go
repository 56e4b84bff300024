package osm

import (
	"math"
	"strings"
	"testing"

	"collie/internal/core"
)

const overpassFixture = `{
  "elements": [
    {
      "type": "node",
      "lat": 51.5080,
      "lon": -0.1281,
      "tags": {"name": "Blue Door Cafe", "amenity": "cafe"}
    },
    {
      "type": "node",
      "lat": 51.5090,
      "lon": -0.1290,
      "tags": {"name": "Starbucks", "brand": "Starbucks", "amenity": "cafe"}
    },
    {
      "type": "way",
      "center": {"lat": 51.5100, "lon": -0.1300},
      "tags": {"name": "Old Fort", "tourism": "attraction", "historic": "fort"}
    },
    {
      "type": "node",
      "lat": 51.5110,
      "lon": -0.1310,
      "tags": {"amenity": "restaurant"}
    },
    {
      "type": "relation",
      "tags": {"name": "No Center Park", "leisure": "park"}
    },
    {
      "type": "node",
      "lat": 51.5080,
      "lon": -0.1281,
      "tags": {"name": "blue door cafe", "amenity": "cafe"}
    }
  ]
}`

func TestParsePlaces(t *testing.T) {
	places, err := parsePlaces([]byte(overpassFixture), 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("parsePlaces: %v", err)
	}

	// Nameless and center-less elements are skipped; the case-folded
	// duplicate collapses.
	if len(places) != 3 {
		t.Fatalf("expected 3 places, got %d: %v", len(places), places)
	}

	byName := map[string]int{}
	for i, p := range places {
		byName[p.Name] = i
	}

	cafe := places[byName["Blue Door Cafe"]]
	if cafe.Category != "cafe" || cafe.IsChain || cafe.IsTouristAttraction {
		t.Errorf("cafe classified wrong: %+v", cafe)
	}
	if cafe.DistanceFromCenter <= 0 || cafe.DistanceFromCenter > 1 {
		t.Errorf("cafe distance = %v, want small positive", cafe.DistanceFromCenter)
	}

	chain := places[byName["Starbucks"]]
	if !chain.IsChain {
		t.Errorf("Starbucks should classify as chain: %+v", chain)
	}

	fort := places[byName["Old Fort"]]
	if !fort.IsTouristAttraction {
		t.Errorf("historic attraction not flagged: %+v", fort)
	}
	if fort.OSMType != "way" {
		t.Errorf("way element type lost: %+v", fort)
	}
	// Ways take coordinates from their center.
	if math.Abs(fort.Lat-51.51) > 1e-9 {
		t.Errorf("fort lat = %v", fort.Lat)
	}
}

func TestParsePlacesInvalidJSON(t *testing.T) {
	if _, err := parsePlaces([]byte("not json"), 0, 0); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseGeocode(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		lat, lon, found, err := parseGeocode([]byte(`[{"lat": "38.7223", "lon": "-9.1393"}]`))
		if err != nil || !found {
			t.Fatalf("parseGeocode: found=%v err=%v", found, err)
		}
		if lat != 38.7223 || lon != -9.1393 {
			t.Fatalf("coords = %v, %v", lat, lon)
		}
	})

	t.Run("miss", func(t *testing.T) {
		_, _, found, err := parseGeocode([]byte(`[]`))
		if err != nil {
			t.Fatalf("empty result should not error: %v", err)
		}
		if found {
			t.Fatal("empty result should report not found")
		}
	})

	t.Run("bad coordinates", func(t *testing.T) {
		if _, _, _, err := parseGeocode([]byte(`[{"lat": "x", "lon": "y"}]`)); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestBuildOverpassQuery(t *testing.T) {
	query := buildOverpassQuery(51.5, -0.12, 3.0, []core.Category{core.CategoryCafe, core.CategoryPark})
	for _, want := range []string{
		`node(around:3000,`,
		`way(around:3000,`,
		`relation(around:3000,`,
		`["amenity"="cafe"]["name"];`,
		`["leisure"="park"]["name"];`,
		"out center;",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}

	if got := buildOverpassQuery(51.5, -0.12, 3.0, []core.Category{core.CategoryOther}); got != "" {
		t.Errorf("untagged category should yield empty query, got %q", got)
	}
}
