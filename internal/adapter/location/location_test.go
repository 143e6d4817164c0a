package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	origin := domain.Coordinate{Lat: -23.55, Lon: -46.63}
	p := NewStaticProvider(origin)

	got, err := p.CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, origin, got)
}

func TestIPAPIProvider_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "lat")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":-23.5505,"lon":-46.6333}`))
	}))
	defer srv.Close()

	p := NewIPAPIProvider(srv.URL, 5*time.Second)
	got, err := p.CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -23.5505, got.Lat)
	assert.Equal(t, -46.6333, got.Lon)
}

func TestIPAPIProvider_LookupFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	p := NewIPAPIProvider(srv.URL, 5*time.Second)
	_, err := p.CurrentLocation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestIPAPIProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewIPAPIProvider(srv.URL, 5*time.Second)
	_, err := p.CurrentLocation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestIPAPIProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`garbage`))
	}))
	defer srv.Close()

	p := NewIPAPIProvider(srv.URL, 5*time.Second)
	_, err := p.CurrentLocation(context.Background())
	require.Error(t, err)
}
