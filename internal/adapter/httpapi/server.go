// Package httpapi exposes the search service over HTTP alongside health,
// readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// Searcher runs one place search. origin, when non-nil, overrides the
// configured location provider.
type Searcher interface {
	Search(ctx context.Context, query string, origin *domain.Coordinate) (domain.SearchOutcome, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the search API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	searcher   Searcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/search, /v1/distance, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, searcher Searcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		searcher: searcher,
		logger:   logger,
	}

	mux.HandleFunc("GET /v1/search", s.handleSearch)
	mux.HandleFunc("GET /v1/distance", s.handleDistance)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	origin, err := parseOrigin(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	outcome, err := s.searcher.Search(r.Context(), query, origin)
	if err != nil {
		s.writeSearchError(w, query, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		SearchOutcome: outcome,
		Message:       outcome.RenderText(),
	})
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	from, err := parseCoordinate(r, "from_lat", "from_lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := parseCoordinate(r, "to_lat", "to_lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, distanceResponse{
		From:       from,
		To:         to,
		DistanceKm: domain.DistanceKm(from, to),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.searcher.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeSearchError maps search failures onto HTTP statuses: rejected input is
// the client's fault, a missing origin means the service cannot serve, and
// anything else is an upstream failure.
func (s *Server) writeSearchError(w http.ResponseWriter, query string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrLocationUnavailable):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error("search failed", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, err)
	}
}

type searchResponse struct {
	domain.SearchOutcome
	Message string `json:"message"`
}

type distanceResponse struct {
	From       domain.Coordinate `json:"from"`
	To         domain.Coordinate `json:"to"`
	DistanceKm float64           `json:"distance_km"`
}

// parseOrigin reads the optional lat/lon pair. Supplying only one half of
// the pair is a client error.
func parseOrigin(r *http.Request) (*domain.Coordinate, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be supplied together")
	}

	coord, err := parseCoordinate(r, "lat", "lon")
	if err != nil {
		return nil, err
	}
	return &coord, nil
}

func parseCoordinate(r *http.Request, latKey, lonKey string) (domain.Coordinate, error) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get(latKey), 64)
	if err != nil {
		return domain.Coordinate{}, errors.New("invalid " + latKey)
	}
	lon, err := strconv.ParseFloat(q.Get(lonKey), 64)
	if err != nil {
		return domain.Coordinate{}, errors.New("invalid " + lonKey)
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error":   err.Error(),
		"message": domain.RenderError(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
