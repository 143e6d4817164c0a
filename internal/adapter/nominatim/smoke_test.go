//go:build nominatim

package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real public Nominatim instance and are rate limited to
// one request per second. Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "place-search-service-smoke/1.0",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_Geocode(t *testing.T) {
	c := smokeClient()

	result, err := c.Geocode(context.Background(), "Rio de Janeiro")
	require.NoError(t, err)

	require.True(t, result.Found)
	assert.InDelta(t, -22.91, result.Coordinate.Lat, 0.2, "lat should be near Rio")
	assert.InDelta(t, -43.18, result.Coordinate.Lon, 0.2, "lon should be near Rio")
	assert.Contains(t, result.DisplayName, "Rio de Janeiro")
}

func TestSmoke_Geocode_NoMatch(t *testing.T) {
	c := smokeClient()
	time.Sleep(1100 * time.Millisecond)

	result, err := c.Geocode(context.Background(), "qwxzv gibberish place 00000")
	require.NoError(t, err)
	assert.False(t, result.Found)
}
