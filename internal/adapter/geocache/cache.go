// Package geocache decorates a domain.Geocoder with a pluggable result
// cache. Backends: in-memory LRU (default), Redis, Postgres.
//
// Only found results are cached so transient "not found" responses can be
// retried. Cache failures degrade to a direct geocoder call; they are logged
// but never surface to the search.
package geocache

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
)

// Store persists geocode results keyed by normalized query text.
type Store interface {
	Get(ctx context.Context, key string) (domain.PlaceResult, bool, error)
	Put(ctx context.Context, key string, result domain.PlaceResult) error
}

// Cached is a cache decorator around a geocoder.
type Cached struct {
	inner   domain.Geocoder
	store   Store
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New wraps a geocoder with the given store.
func New(inner domain.Geocoder, store Store, metrics *observability.Metrics, logger *slog.Logger) *Cached {
	return &Cached{
		inner:   inner,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode serves from the store when possible, falling through to the inner
// geocoder and caching found results.
func (c *Cached) Geocode(ctx context.Context, query string) (domain.PlaceResult, error) {
	key := normalizeKey(query)

	cached, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("geocode cache get failed", "key", key, "error", err)
	} else if ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.Geocode(ctx, query)
	if err != nil {
		return result, err
	}

	if result.Found {
		if err := c.store.Put(ctx, key, result); err != nil {
			c.logger.Warn("geocode cache put failed", "key", key, "error", err)
		}
	}
	return result, nil
}

// normalizeKey folds case and whitespace so trivially different spellings of
// the same query share a cache entry.
func normalizeKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
