// Package osm implements the geodata ports against OpenStreetMap:
// Nominatim for geocoding and Overpass for nearby POI queries. Both
// are public, rate-limited endpoints; callers are expected to cache
// results and keep request volume polite.
package osm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"collie/internal/core"
	"collie/internal/geodata"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	defaultUserAgent    = "collie-trip-coordinator/1.0"

	geocodeTimeout = 8 * time.Second
	fetchTimeout   = 25 * time.Second

	// maxResponseBytes bounds reads from the public endpoints.
	maxResponseBytes = 8 << 20
)

// Config holds client configuration; zero values use the public
// endpoints.
type Config struct {
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	HTTPClient   *http.Client
}

type Client struct {
	httpClient   *http.Client
	nominatimURL string
	overpassURL  string
	userAgent    string
}

var _ geodata.Source = (*Client)(nil)

func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient:   cfg.HTTPClient,
		nominatimURL: strings.TrimRight(cfg.NominatimURL, "/"),
		overpassURL:  cfg.OverpassURL,
		userAgent:    cfg.UserAgent,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: fetchTimeout}
	}
	if c.nominatimURL == "" {
		c.nominatimURL = defaultNominatimURL
	}
	if c.overpassURL == "" {
		c.overpassURL = defaultOverpassURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	return c
}

// Geocode resolves a destination via Nominatim search. Unknown
// destinations report found=false.
func (c *Client) Geocode(ctx context.Context, destination string) (float64, float64, bool, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return 0, 0, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", destination)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nominatimURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	body, err := c.do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode %q: %w", destination, err)
	}

	lat, lon, found, err := parseGeocode(body)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse geocode response: %w", err)
	}

	slog.DebugContext(ctx, "Geocoded destination",
		"destination", destination,
		"found", found,
		"lat", lat,
		"lon", lon)

	return lat, lon, found, nil
}

// FetchNearby queries Overpass for named POIs around the center,
// covering nodes, ways and relations for every requested category in
// one combined query. Results are classified, deduplicated and
// annotated with their distance from the center.
func (c *Client) FetchNearby(ctx context.Context, lat, lon, radiusKM float64, categories []core.Category) ([]core.Place, error) {
	if len(categories) == 0 {
		categories = core.AllCategories()
	}

	query := buildOverpassQuery(lat, lon, radiusKM, categories)
	if query == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "text/plain")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch nearby places: %w", err)
	}

	places, err := parsePlaces(body, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("parse overpass response: %w", err)
	}

	slog.InfoContext(ctx, "Fetched nearby places",
		"lat", lat,
		"lon", lon,
		"radius_km", radiusKM,
		"place_count", len(places))

	return places, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// buildOverpassQuery assembles one Overpass QL query selecting named
// elements for each category tag within the radius.
func buildOverpassQuery(lat, lon, radiusKM float64, categories []core.Category) string {
	radiusM := int(radiusKM * 1000)

	var parts []string
	for _, cat := range categories {
		tag, ok := core.CategoryTags[cat]
		if !ok {
			continue
		}
		for _, elem := range []string{"node", "way", "relation"} {
			parts = append(parts, fmt.Sprintf(`%s(around:%d,%f,%f)["%s"="%s"]["name"];`,
				elem, radiusM, lat, lon, tag.Key, tag.Value))
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return fmt.Sprintf("[out:json][timeout:25];\n(\n%s\n);\nout center;", strings.Join(parts, "\n"))
}
