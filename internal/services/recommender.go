// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"collie/internal/cache"
	"collie/internal/core"
	"collie/internal/geodata"
	"collie/internal/geodata/static"
	"collie/internal/log"
	"collie/internal/storage"
)

const (
	// DefaultSuggestionLimit caps how many suggestions a single
	// recommendations call returns.
	DefaultSuggestionLimit = 6

	// DefaultRadiusKM is the nearby-place search radius around a
	// geocoded destination.
	DefaultRadiusKM = 3.0

	defaultCacheSize = 256
	defaultCacheTTL  = time.Hour
)

type geoPoint struct {
	Lat   float64
	Lon   float64
	Found bool
}

// RecommenderConfig tunes caching and search behavior. Zero values fall
// back to defaults.
type RecommenderConfig struct {
	RadiusKM  float64
	CacheSize int
	CacheTTL  time.Duration
}

// Recommender wraps the geodata source with layered caching and
// fallbacks. Lookups go LRU -> sqlite -> live source, concurrent
// identical fetches are collapsed through singleflight, and the static
// tables keep the feature alive when the live source fails.
type Recommender struct {
	source   geodata.Source
	fallback *static.Source
	db       *storage.GeodataCache

	geoCache   *cache.LRUCache[geoPoint]
	placeCache *cache.LRUCache[[]core.Place]
	group      singleflight.Group

	radiusKM float64
	logger   *log.Logger
}

// NewRecommender creates a recommender around the given live source.
// db may be nil; the sqlite layer is then skipped.
func NewRecommender(source geodata.Source, db *storage.GeodataCache, logger *log.Logger, cfg RecommenderConfig) *Recommender {
	if cfg.RadiusKM <= 0 {
		cfg.RadiusKM = DefaultRadiusKM
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentRecommender)
	}

	return &Recommender{
		source:     source,
		fallback:   static.New(),
		db:         db,
		geoCache:   cache.NewLRUCache[geoPoint](cfg.CacheSize, cfg.CacheTTL),
		placeCache: cache.NewLRUCache[[]core.Place](cfg.CacheSize, cfg.CacheTTL),
		radiusKM:   cfg.RadiusKM,
		logger:     logger,
	}
}

// Caches returns the in-process caches so a cache.Manager can own
// their cleanup.
func (r *Recommender) Caches() []cache.Cleaner {
	return []cache.Cleaner{r.geoCache, r.placeCache}
}

func geocodeKey(destination string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(destination))
}

func placesKey(lat, lon, radiusKM float64) string {
	return fmt.Sprintf("places:%.4f,%.4f:%.1f", lat, lon, radiusKM)
}

// resolve geocodes a destination through the cache layers. The static
// city table covers both live misses and live failures.
func (r *Recommender) resolve(ctx context.Context, destination string) (geoPoint, error) {
	key := geocodeKey(destination)

	if point, ok := r.geoCache.Get(key); ok {
		return point, nil
	}

	if r.db != nil {
		lat, lon, found, hit, err := r.db.GetGeocode(ctx, key)
		if err != nil {
			r.logger.WarnContext(ctx, "Geocode cache read failed", log.FieldError, err, log.FieldCacheKey, key)
		} else if hit {
			point := geoPoint{Lat: lat, Lon: lon, Found: found}
			r.geoCache.Set(key, point)
			return point, nil
		}
	}

	result, err, _ := r.group.Do(key, func() (any, error) {
		lat, lon, found, err := r.source.Geocode(ctx, destination)
		if err != nil || !found {
			if err != nil {
				r.logger.WarnContext(ctx, "Live geocode failed, trying static table",
					log.FieldError, err, log.FieldDestination, destination)
			}
			if sLat, sLon, sFound, _ := r.fallback.Geocode(ctx, destination); sFound {
				lat, lon, found, err = sLat, sLon, true, nil
			}
		}
		if err != nil {
			return geoPoint{}, err
		}

		point := geoPoint{Lat: lat, Lon: lon, Found: found}
		r.geoCache.Set(key, point)
		if r.db != nil {
			if dbErr := r.db.SetGeocode(ctx, key, lat, lon, found); dbErr != nil {
				r.logger.WarnContext(ctx, "Geocode cache write failed", log.FieldError, dbErr, log.FieldCacheKey, key)
			}
		}
		return point, nil
	})
	if err != nil {
		return geoPoint{}, err
	}
	return result.(geoPoint), nil
}

// fetchPlaces returns nearby places around a resolved center, through
// the cache layers.
func (r *Recommender) fetchPlaces(ctx context.Context, lat, lon float64) ([]core.Place, error) {
	key := placesKey(lat, lon, r.radiusKM)

	if places, ok := r.placeCache.Get(key); ok {
		return places, nil
	}

	if r.db != nil {
		places, hit, err := r.db.GetPlaces(ctx, key)
		if err != nil {
			r.logger.WarnContext(ctx, "Place cache read failed", log.FieldError, err, log.FieldCacheKey, key)
		} else if hit {
			r.placeCache.Set(key, places)
			return places, nil
		}
	}

	result, err, _ := r.group.Do(key, func() (any, error) {
		places, err := r.source.FetchNearby(ctx, lat, lon, r.radiusKM, core.AllCategories())
		if err != nil {
			return nil, err
		}

		r.placeCache.Set(key, places)
		if r.db != nil {
			if dbErr := r.db.SetPlaces(ctx, key, places); dbErr != nil {
				r.logger.WarnContext(ctx, "Place cache write failed", log.FieldError, dbErr, log.FieldCacheKey, key)
			}
		}
		return places, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]core.Place), nil
}

// RankedPlaces geocodes the destination, fetches nearby places and
// ranks them least crowded first. A destination that cannot be resolved
// yields an empty slice, not an error.
func (r *Recommender) RankedPlaces(ctx context.Context, destination string) ([]core.Place, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, nil
	}

	point, err := r.resolve(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", destination, err)
	}
	if !point.Found {
		return nil, nil
	}

	places, err := r.fetchPlaces(ctx, point.Lat, point.Lon)
	if err != nil {
		return nil, fmt.Errorf("fetch places near %q: %w", destination, err)
	}

	ranked := core.RankPlaces(append([]core.Place(nil), places...), true)
	r.logger.InfoContext(ctx, "Ranked nearby places",
		log.FieldDestination, destination,
		log.FieldPlaceCount, len(ranked),
		log.FieldRadiusKM, r.radiusKM)
	return ranked, nil
}

// Suggestions returns up to limit anti-touristy picks for a
// destination. Any geodata failure or empty result degrades to the
// curated static picks so the endpoint never breaks the product flow.
func (r *Recommender) Suggestions(ctx context.Context, destination string, limit int) []core.Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	ranked, err := r.RankedPlaces(ctx, destination)
	if err != nil {
		r.logger.WarnContext(ctx, "Falling back to static suggestions",
			log.FieldError, err, log.FieldDestination, destination)
		return r.fallback.Suggestions(destination, limit)
	}

	suggestions := make([]core.Suggestion, 0, limit)
	for _, p := range ranked {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		suggestions = append(suggestions, core.Suggestion{
			Destination: p.Name,
			Reason:      suggestionReason(p),
		})
		if len(suggestions) >= limit {
			break
		}
	}

	if len(suggestions) == 0 {
		return r.fallback.Suggestions(destination, limit)
	}
	return suggestions
}

// suggestionReason buckets a ranked place into a human-readable vibe.
func suggestionReason(p core.Place) string {
	switch {
	case p.CrowdScore < 0.3:
		return fmt.Sprintf("Hidden gem • %s", p.Category)
	case p.CrowdScore < 0.6:
		return fmt.Sprintf("Local vibe • %s", p.Category)
	default:
		return fmt.Sprintf("Busier • %s", p.Category)
	}
}

// Prefetch warms both cache layers for a destination. Used by the
// worker when a trip's destination winner changes.
func (r *Recommender) Prefetch(ctx context.Context, destination string) error {
	ranked, err := r.RankedPlaces(ctx, destination)
	if err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Prefetched destination geodata",
		log.FieldDestination, destination,
		log.FieldPlaceCount, len(ranked))
	return nil
}
