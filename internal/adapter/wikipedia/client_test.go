package wikipedia

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		userAgent:  "place-search-test/1.0",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Summarize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page/summary/Rio_de_Janeiro", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"title": "Rio de Janeiro",
			"extract": "Rio de Janeiro is a city in Brazil.",
			"thumbnail": {"source": "https://upload.wikimedia.org/rio.jpg"}
		}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	info, err := c.Summarize(context.Background(), "Rio de Janeiro")
	require.NoError(t, err)

	assert.Equal(t, "Rio de Janeiro", info.Title)
	assert.Equal(t, "Rio de Janeiro is a city in Brazil.", info.Extract)
	assert.Equal(t, "https://upload.wikimedia.org/rio.jpg", info.ThumbnailURL)
}

func TestClient_Summarize_NoPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"https://mediawiki.org/wiki/HyperSwitch/errors/not_found"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	info, err := c.Summarize(context.Background(), "qwxzv gibberish")
	require.NoError(t, err, "a missing page is not an error")
	assert.True(t, info.Empty())
}

func TestClient_Summarize_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Summarize(context.Background(), "Berlin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Summarize_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Summarize(context.Background(), "Berlin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_Summarize_MissingOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "Stub"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	info, err := c.Summarize(context.Background(), "Stub")
	require.NoError(t, err)
	assert.Equal(t, "Stub", info.Title)
	assert.Empty(t, info.Extract)
	assert.Empty(t, info.ThumbnailURL)
}
