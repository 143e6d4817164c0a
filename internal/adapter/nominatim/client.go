// Package nominatim implements domain.Geocoder against the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
)

// Client implements domain.Geocoder using the Nominatim /search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client. The user agent identifies
// the service per the Nominatim usage policy; requests without one are
// rejected by the public instance.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		metrics:    metrics,
		logger:     logger,
	}
}

// Geocode resolves a free-text place name to at most one candidate.
// A zero PlaceResult with a nil error means no match was found.
func (c *Client) Geocode(ctx context.Context, query string) (domain.PlaceResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.PlaceResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.PlaceResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return domain.PlaceResult{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.PlaceResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(candidates) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return domain.PlaceResult{}, nil
	}

	first := candidates[0]
	lat, errLat := strconv.ParseFloat(first.Lat, 64)
	lon, errLon := strconv.ParseFloat(first.Lon, 64)
	if errLat != nil || errLon != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.PlaceResult{}, fmt.Errorf("invalid coordinates %q, %q for %q", first.Lat, first.Lon, query)
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return domain.PlaceResult{
		Coordinate:  domain.Coordinate{Lat: lat, Lon: lon},
		DisplayName: first.DisplayName,
		Found:       true,
	}, nil
}

// Nominatim API response types. Coordinates arrive as strings.

type candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
