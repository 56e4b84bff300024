// Package static is the offline geodata fallback: a fixed table of
// city centers for geocoding and curated anti-touristy picks used when
// the live source is unreachable or knows nothing about a destination.
package static

import (
	"context"
	"strings"

	"collie/internal/core"
	"collie/internal/geodata"
)

// cityCenters maps well-known destinations to their central
// coordinates.
var cityCenters = map[string][2]float64{
	"London":    {51.5074, -0.1278},
	"Paris":     {48.8566, 2.3522},
	"Barcelona": {41.3851, 2.1734},
	"Amsterdam": {52.3676, 4.9041},
	"Rome":      {41.9028, 12.4964},
	"Berlin":    {52.5200, 13.4050},
	"Lisbon":    {38.7223, -9.1393},
	"Vienna":    {48.2082, 16.3738},
	"Prague":    {50.0755, 14.4378},
	"Zurich":    {47.3769, 8.5417},
	"Valencia":  {39.4699, -0.3763},
	"Porto":     {41.1579, -8.6291},
}

// curated holds per-city fallback suggestions.
var curated = map[string][]core.Suggestion{
	"London": {
		{Destination: "Little Venice canal walk", Reason: "Calm waterside walk, less touristy"},
		{Destination: "Victoria Park", Reason: "Big local park with a relaxed vibe"},
		{Destination: "Columbia Road Flower Market (early)", Reason: "Local scene if you go early"},
	},
	"Paris": {
		{Destination: "Parc des Buttes-Chaumont", Reason: "Local hill-park views, less crowded"},
		{Destination: "Canal Saint-Martin stroll", Reason: "Local hangout area"},
		{Destination: "Marché d'Aligre", Reason: "Food market energy, not a mega-attraction"},
	},
	"Barcelona": {
		{Destination: "Poblenou Rambla", Reason: "Local neighbourhood energy"},
		{Destination: "Parc del Clot", Reason: "Chill park away from the main hotspots"},
		{Destination: "Sant Andreu streets", Reason: "Small-town feel inside the city"},
	},
	"Amsterdam": {
		{Destination: "Oosterpark", Reason: "More local than the central canal loop"},
		{Destination: "De Pijp cafés (side streets)", Reason: "Great vibe, less tourist flow"},
		{Destination: "Noord waterfront", Reason: "Different side of the city"},
	},
}

var generic = []core.Suggestion{
	{Destination: "Local neighbourhood café", Reason: "Anti-touristy pick"},
	{Destination: "Less central park", Reason: "Quiet, local vibe"},
	{Destination: "Independent food market", Reason: "Local scene"},
}

// Source serves the static tables.
type Source struct{}

var _ geodata.Source = (*Source)(nil)

func New() *Source {
	return &Source{}
}

// Geocode resolves destinations from the fixed city-center table.
// Lookup is case-insensitive on the trimmed name.
func (s *Source) Geocode(_ context.Context, destination string) (float64, float64, bool, error) {
	destination = strings.TrimSpace(destination)
	if center, ok := cityCenters[destination]; ok {
		return center[0], center[1], true, nil
	}
	for city, center := range cityCenters {
		if strings.EqualFold(city, destination) {
			return center[0], center[1], true, nil
		}
	}
	return 0, 0, false, nil
}

// FetchNearby reports no places. The static tables carry suggestions,
// not raw POIs, so callers degrade to the curated picks.
func (s *Source) FetchNearby(context.Context, float64, float64, float64, []core.Category) ([]core.Place, error) {
	return nil, nil
}

// Suggestions returns curated picks for the city, or generic ones when
// the city is unknown, capped at limit.
func (s *Source) Suggestions(city string, limit int) []core.Suggestion {
	picks, ok := curated[strings.TrimSpace(city)]
	if !ok {
		picks = generic
	}
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	return append([]core.Suggestion(nil), picks...)
}
