package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lodestar-geo/place-search-service/internal/adapter/geocache"
	"github.com/lodestar-geo/place-search-service/internal/adapter/httpapi"
	kafkaadapter "github.com/lodestar-geo/place-search-service/internal/adapter/kafka"
	"github.com/lodestar-geo/place-search-service/internal/adapter/location"
	"github.com/lodestar-geo/place-search-service/internal/adapter/nominatim"
	"github.com/lodestar-geo/place-search-service/internal/adapter/wikipedia"
	"github.com/lodestar-geo/place-search-service/internal/config"
	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
	"github.com/lodestar-geo/place-search-service/internal/search"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	locations := buildLocationProvider(cfg, logger)
	geocoder, cleanup, err := buildGeocoder(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to build geocoder", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	summaries := wikipedia.NewClient(cfg.WikipediaBaseURL, cfg.UserAgent, cfg.WikipediaTimeout, metrics, logger)

	// Audit stream is feature-flagged via KAFKA_BROKERS / AUDIT_ENABLED.
	var publisher search.OutcomePublisher
	if cfg.AuditEnabled {
		kp := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, logger)
		defer kp.Close() //nolint:errcheck
		publisher = kp
		metrics.AuditEnabled.Set(1)
		logger.Info("audit stream enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAuditTopic)
	} else {
		logger.Info("audit stream disabled")
	}

	svc := search.New(locations, geocoder, summaries, publisher, cfg.MapsBaseURL, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// buildLocationProvider wires the configured origin source. A nil return
// means no position source is granted and searches must carry their own
// origin.
func buildLocationProvider(cfg *config.Config, logger *slog.Logger) domain.LocationProvider {
	switch cfg.LocationProvider {
	case config.LocationStatic:
		origin := domain.Coordinate{Lat: cfg.OriginLat, Lon: cfg.OriginLon}
		logger.Info("location provider: static", "origin", origin.String())
		return location.NewStaticProvider(origin)
	case config.LocationIPAPI:
		logger.Info("location provider: ip-api", "base_url", cfg.IPAPIBaseURL)
		return location.NewIPAPIProvider(cfg.IPAPIBaseURL, cfg.LocationTimeout)
	default:
		logger.Info("location provider: none, searches require a caller-supplied origin")
		return nil
	}
}

// buildGeocoder wires the Nominatim client behind the configured cache
// backend. The returned cleanup closes any backing connections.
func buildGeocoder(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (domain.Geocoder, func(), error) {
	client := nominatim.NewClient(cfg.NominatimBaseURL, cfg.UserAgent, cfg.NominatimTimeout, metrics, logger)
	noop := func() {}

	switch cfg.GeocodeCache {
	case config.CacheNone:
		logger.Info("geocode cache disabled")
		return client, noop, nil

	case config.CacheMemory:
		logger.Info("geocode cache: memory", "size", cfg.GeocodeCacheSize)
		store := geocache.NewMemoryStore(cfg.GeocodeCacheSize)
		return geocache.New(client, store, metrics, logger), noop, nil

	case config.CacheRedis:
		logger.Info("geocode cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.GeocodeCacheTTL)
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store := geocache.NewRedisStore(rdb, cfg.GeocodeCacheTTL)
		return geocache.New(client, store, metrics, logger), func() { _ = rdb.Close() }, nil

	case config.CachePostgres:
		logger.Info("geocode cache: postgres")
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		store := geocache.NewPostgresStore(pool)
		if err := store.InitSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return geocache.New(client, store, metrics, logger), pool.Close, nil

	default:
		// config.Load validated the value already.
		return client, noop, nil
	}
}
