// Package search orchestrates a place search: origin lookup, forward
// geocode, distance computation, and a best-effort encyclopedia summary.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
)

// OutcomePublisher sends completed search outcomes to the audit stream.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, outcome domain.SearchOutcome) error
}

// Service runs the sequential search chain. Each invocation is independent
// and stateless; overlapping searches race and the caller keeps whichever
// outcome arrives last.
type Service struct {
	locations   domain.LocationProvider
	geocoder    domain.Geocoder
	summaries   domain.SummaryProvider
	publisher   OutcomePublisher
	mapsBaseURL string
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a search service. A nil locations provider means no position
// source was granted; searches then require a caller-supplied origin. A nil
// publisher disables the audit stream. mapsBaseURL is the external map host
// used for route URLs.
func New(locations domain.LocationProvider, geocoder domain.Geocoder, summaries domain.SummaryProvider,
	publisher OutcomePublisher, mapsBaseURL string, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		locations:   locations,
		geocoder:    geocoder,
		summaries:   summaries,
		publisher:   publisher,
		mapsBaseURL: mapsBaseURL,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness reports whether the service can serve searches. The service
// is request-driven and holds no warm-up state, so it is ready as soon as
// its providers are wired.
func (s *Service) CheckReadiness(_ context.Context) error {
	return nil
}

// Search executes the chain for one query. origin, when non-nil, is the
// caller-supplied position and takes precedence over the configured
// provider. Steps 1 and 2 failing abort the search; the summary fetch never
// does.
func (s *Service) Search(ctx context.Context, query string, origin *domain.Coordinate) (domain.SearchOutcome, error) {
	if strings.TrimSpace(query) == "" {
		s.metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return domain.SearchOutcome{}, domain.ErrEmptyQuery
	}

	start := time.Now()
	outcome, err := s.search(ctx, query, origin)
	s.metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.SearchesTotal.WithLabelValues("error").Inc()
		return domain.SearchOutcome{}, err
	}
	s.metrics.SearchesTotal.WithLabelValues(string(outcome.Status)).Inc()

	s.publish(ctx, outcome)
	return outcome, nil
}

func (s *Service) search(ctx context.Context, query string, origin *domain.Coordinate) (domain.SearchOutcome, error) {
	from, err := s.resolveOrigin(ctx, origin)
	if err != nil {
		return domain.SearchOutcome{}, err
	}

	place, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("geocode %q: %w", query, err)
	}

	outcome := domain.SearchOutcome{
		Query:      query,
		Origin:     from,
		SearchedAt: domain.Now(),
	}

	if !place.Found {
		outcome.Status = domain.StatusNotFound
		return outcome, nil
	}

	outcome.Status = domain.StatusOK
	outcome.Place = place
	outcome.DistanceKm = domain.DistanceKm(from, place.Coordinate)
	outcome.RouteURL = domain.RouteURL(s.mapsBaseURL, from, place.Coordinate)
	outcome.Summary = s.fetchSummary(ctx, query)

	return outcome, nil
}

// resolveOrigin picks the caller-supplied origin when present, otherwise
// asks the configured provider.
func (s *Service) resolveOrigin(ctx context.Context, origin *domain.Coordinate) (domain.Coordinate, error) {
	if origin != nil {
		return *origin, nil
	}
	if s.locations == nil {
		return domain.Coordinate{}, domain.ErrPermissionDenied
	}

	from, err := s.locations.CurrentLocation(ctx)
	if err != nil {
		s.metrics.LocationRequests.WithLabelValues("error").Inc()
		s.logger.Warn("location lookup failed", "error", err)
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	s.metrics.LocationRequests.WithLabelValues("success").Inc()
	return from, nil
}

// fetchSummary is best-effort: any failure degrades to an empty summary and
// never aborts the search.
func (s *Service) fetchSummary(ctx context.Context, query string) domain.SummaryInfo {
	info, err := s.summaries.Summarize(ctx, query)
	if err != nil {
		s.logger.Warn("summary fetch failed", "query", query, "error", err)
		return domain.SummaryInfo{}
	}
	return info
}

// publish sends the outcome to the audit stream when one is configured.
// Publish failures are logged and never fail the search.
func (s *Service) publish(ctx context.Context, outcome domain.SearchOutcome) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOutcome(ctx, outcome); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("audit publish failed", "query", outcome.Query, "error", err)
		return
	}
	s.metrics.OutcomesPublished.Inc()
}
