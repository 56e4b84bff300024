package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Geodata cache database
	GeodataDBPath string
	GeodataTTL    time.Duration

	// AMQP (optional; empty URL disables the prefetch pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// OSM endpoints
	NominatimURL string
	OverpassURL  string
	UserAgent    string

	// Recommendation search
	RadiusKM float64

	// Geodata backend selection
	GeodataBackend string

	// Worker
	PurgeInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GeodataDBPath: getEnv("GEODATA_DB_PATH", "./data/geodata.db"),
		GeodataTTL:    getEnvDuration("GEODATA_TTL", time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "collie"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "prefetch_geodata"),

		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OverpassURL:  getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		UserAgent:    getEnv("GEODATA_USER_AGENT", "collie-trip-coordinator/1.0"),

		RadiusKM: getEnvFloat("SEARCH_RADIUS_KM", 3.0),

		GeodataBackend: getEnv("GEODATA_BACKEND", "osm"),

		PurgeInterval: getEnvDuration("PURGE_INTERVAL", 15*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"osm", "static"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.GeodataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid geodata backend '%s': must be one of %v", c.GeodataBackend, validBackends))
	}

	if c.GeodataDBPath == "" {
		errors = append(errors, "geodata database path cannot be empty")
	} else {
		dir := filepath.Dir(c.GeodataDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create geodata database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	for name, raw := range map[string]string{"Nominatim": c.NominatimURL, "Overpass": c.OverpassURL} {
		if parsedURL, err := url.Parse(raw); err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
			errors = append(errors, fmt.Sprintf("invalid %s URL '%s'", name, raw))
		}
	}

	if c.RadiusKM <= 0 || c.RadiusKM > 50 {
		errors = append(errors, fmt.Sprintf("invalid search radius %v km: must be in (0, 50]", c.RadiusKM))
	}

	if c.GeodataTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid geodata TTL %v: must be at least 1 minute", c.GeodataTTL))
	}

	if c.PurgeInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid purge interval %v: must be at least 1 minute", c.PurgeInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
