// Package geodata defines the outbound ports for the external geodata
// collaborator: destination-name-to-coordinate resolution and the
// nearby point-of-interest fetch. The core depends only on the output
// shapes, never on a provider.
package geodata

import (
	"context"

	"collie/internal/core"
)

type (
	// Geocoder resolves a destination name to coordinates. A miss is
	// reported through found=false, not an error; errors are reserved
	// for transport failures.
	Geocoder interface {
		Geocode(ctx context.Context, destination string) (lat, lon float64, found bool, err error)
	}

	// PlaceFetcher returns nearby tagged points of interest around a
	// center, already classified and deduplicated, with distances
	// filled in. An empty result is valid and must not be an error.
	PlaceFetcher interface {
		FetchNearby(ctx context.Context, lat, lon, radiusKM float64, categories []core.Category) ([]core.Place, error)
	}

	// Source combines both collaborator capabilities.
	Source interface {
		Geocoder
		PlaceFetcher
	}
)
