// Package storage provides the sqlite-backed geodata cache. The trip
// ledger itself is never persisted; only geocode and nearby-place
// results are, so restarts and multiple processes stay polite to the
// public OSM endpoints.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"collie/internal/core"

	_ "modernc.org/sqlite"
)

type GeodataCache struct {
	db  *sql.DB
	ttl time.Duration
}

func NewGeodataCache(dbPath string, ttl time.Duration) (*GeodataCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &GeodataCache{db: db, ttl: ttl}, nil
}

func (c *GeodataCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// GetGeocode returns a cached geocode result. hit is false when the
// key is absent or expired; found mirrors what the upstream lookup
// reported, so negative results are cached too.
func (c *GeodataCache) GetGeocode(ctx context.Context, key string) (lat, lon float64, found, hit bool, err error) {
	var foundInt int64
	row := c.db.QueryRowContext(ctx,
		`SELECT lat, lon, found FROM geocode_cache WHERE cache_key = ? AND expires_at > ?`,
		key, time.Now().Unix())
	if err := row.Scan(&lat, &lon, &foundInt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, false, nil
		}
		return 0, 0, false, false, fmt.Errorf("query geocode cache: %w", err)
	}
	return lat, lon, foundInt != 0, true, nil
}

// SetGeocode stores a geocode result with the cache TTL.
func (c *GeodataCache) SetGeocode(ctx context.Context, key string, lat, lon float64, found bool) error {
	foundInt := 0
	if found {
		foundInt = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO geocode_cache (cache_key, lat, lon, found, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET lat = excluded.lat, lon = excluded.lon,
		 found = excluded.found, expires_at = excluded.expires_at`,
		key, lat, lon, foundInt, time.Now().Add(c.ttl).Unix())
	if err != nil {
		return fmt.Errorf("store geocode result: %w", err)
	}
	return nil
}

// GetPlaces returns a cached nearby-place result.
func (c *GeodataCache) GetPlaces(ctx context.Context, key string) ([]core.Place, bool, error) {
	var payload string
	row := c.db.QueryRowContext(ctx,
		`SELECT payload FROM place_cache WHERE cache_key = ? AND expires_at > ?`,
		key, time.Now().Unix())
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query place cache: %w", err)
	}

	var places []core.Place
	if err := json.Unmarshal([]byte(payload), &places); err != nil {
		return nil, false, fmt.Errorf("decode cached places: %w", err)
	}
	return places, true, nil
}

// SetPlaces stores a nearby-place result with the cache TTL.
func (c *GeodataCache) SetPlaces(ctx context.Context, key string, places []core.Place) error {
	payload, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("encode places: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO place_cache (cache_key, payload, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, string(payload), time.Now().Add(c.ttl).Unix())
	if err != nil {
		return fmt.Errorf("store places: %w", err)
	}
	return nil
}

// PurgeExpired drops expired rows from both cache tables and returns
// how many were removed.
func (c *GeodataCache) PurgeExpired(ctx context.Context) (int64, error) {
	now := time.Now().Unix()

	var purged int64
	for _, table := range []string{"geocode_cache", "place_cache"} {
		res, err := c.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= ?`, table), now)
		if err != nil {
			return purged, fmt.Errorf("purge %s: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			purged += n
		}
	}

	if purged > 0 {
		slog.InfoContext(ctx, "Purged expired geodata cache rows", "rows", purged)
	}
	return purged, nil
}
