package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache backend names accepted in GEOCODE_CACHE.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheNone     = "none"
)

// Location provider names accepted in LOCATION_PROVIDER.
const (
	LocationStatic = "static"
	LocationIPAPI  = "ipapi"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	UserAgent       string

	// Geocoding (Nominatim) configuration.
	NominatimBaseURL string
	NominatimTimeout time.Duration

	// Encyclopedia summary (Wikipedia REST) configuration.
	WikipediaBaseURL string
	WikipediaTimeout time.Duration

	// External map service used for route URLs.
	MapsBaseURL string

	// Origin location provider: "", "static", or "ipapi". Empty means no
	// position source is granted; searches then require a caller-supplied
	// origin.
	LocationProvider string
	OriginLat        float64
	OriginLon        float64
	IPAPIBaseURL     string
	LocationTimeout  time.Duration

	// Geocode cache configuration.
	GeocodeCache     string
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
	RedisAddr        string
	PostgresDSN      string

	// Kafka audit stream configuration.
	AuditEnabled    bool
	KafkaBrokers    []string
	KafkaAuditTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	nominatimTimeout, err := durationEnv("NOMINATIM_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	wikipediaTimeout, err := durationEnv("WIKIPEDIA_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	locationTimeout, err := durationEnv("LOCATION_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := durationEnv("GEOCODE_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	auditEnabled := len(brokers) > 0
	if v := os.Getenv("AUDIT_ENABLED"); v != "" {
		auditEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		UserAgent:       envOrDefault("USER_AGENT", "place-search-service/1.0"),

		NominatimBaseURL: envOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimTimeout: nominatimTimeout,

		WikipediaBaseURL: envOrDefault("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org/api/rest_v1"),
		WikipediaTimeout: wikipediaTimeout,

		MapsBaseURL: envOrDefault("MAPS_BASE_URL", "https://www.google.com"),

		LocationProvider: os.Getenv("LOCATION_PROVIDER"),
		IPAPIBaseURL:     envOrDefault("IPAPI_BASE_URL", "http://ip-api.com"),
		LocationTimeout:  locationTimeout,

		GeocodeCache:     envOrDefault("GEOCODE_CACHE", CacheMemory),
		GeocodeCacheSize: intEnvOrDefault("GEOCODE_CACHE_SIZE", 1000),
		GeocodeCacheTTL:  cacheTTL,
		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),

		AuditEnabled:    auditEnabled,
		KafkaBrokers:    brokers,
		KafkaAuditTopic: envOrDefault("KAFKA_AUDIT_TOPIC", "search-outcomes"),
	}

	switch cfg.LocationProvider {
	case "", LocationIPAPI:
	case LocationStatic:
		lat, errLat := strconv.ParseFloat(os.Getenv("ORIGIN_LAT"), 64)
		lon, errLon := strconv.ParseFloat(os.Getenv("ORIGIN_LON"), 64)
		if errLat != nil || errLon != nil {
			return nil, errors.New("LOCATION_PROVIDER is static but ORIGIN_LAT/ORIGIN_LON are not valid floats")
		}
		cfg.OriginLat = lat
		cfg.OriginLon = lon
	default:
		return nil, fmt.Errorf("invalid LOCATION_PROVIDER %q", cfg.LocationProvider)
	}

	switch cfg.GeocodeCache {
	case CacheMemory, CacheRedis, CacheNone:
	case CachePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("GEOCODE_CACHE is postgres but POSTGRES_DSN is not set")
		}
	default:
		return nil, fmt.Errorf("invalid GEOCODE_CACHE %q", cfg.GeocodeCache)
	}

	if cfg.GeocodeCacheSize <= 0 {
		return nil, errors.New("GEOCODE_CACHE_SIZE must be positive")
	}
	if cfg.AuditEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("AUDIT_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnvOrDefault(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return -1 // force the positive-value check to fail loudly
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
