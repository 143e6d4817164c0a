package geocache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for decorator tests ---

type countingGeocoder struct {
	calls  int
	result domain.PlaceResult
	err    error
}

func (m *countingGeocoder) Geocode(_ context.Context, _ string) (domain.PlaceResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func foundPlace(name string) domain.PlaceResult {
	return domain.PlaceResult{
		Coordinate:  domain.Coordinate{Lat: -22.9, Lon: -43.17},
		DisplayName: name,
		Found:       true,
	}
}

// --- decorator tests ---

func TestCached_SecondLookupHits(t *testing.T) {
	inner := &countingGeocoder{result: foundPlace("Rio de Janeiro, Brazil")}
	cached := New(inner, NewMemoryStore(10), observability.NewMetricsForTesting(), discardLogger())

	r1, err := cached.Geocode(context.Background(), "Rio de Janeiro")
	require.NoError(t, err)
	assert.Equal(t, "Rio de Janeiro, Brazil", r1.DisplayName)

	r2, err := cached.Geocode(context.Background(), "Rio de Janeiro")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCached_KeyNormalization(t *testing.T) {
	inner := &countingGeocoder{result: foundPlace("Rio de Janeiro, Brazil")}
	cached := New(inner, NewMemoryStore(10), observability.NewMetricsForTesting(), discardLogger())

	_, _ = cached.Geocode(context.Background(), "Rio de Janeiro")
	_, _ = cached.Geocode(context.Background(), "  rio   DE janeiro ")

	assert.Equal(t, 1, inner.calls, "case and whitespace variants should share an entry")
}

func TestCached_DifferentQueriesMiss(t *testing.T) {
	inner := &countingGeocoder{result: foundPlace("Place")}
	cached := New(inner, NewMemoryStore(10), observability.NewMetricsForTesting(), discardLogger())

	_, _ = cached.Geocode(context.Background(), "Rio de Janeiro")
	_, _ = cached.Geocode(context.Background(), "Berlin")

	assert.Equal(t, 2, inner.calls)
}

func TestCached_NotFoundIsNotCached(t *testing.T) {
	inner := &countingGeocoder{} // zero result: not found
	cached := New(inner, NewMemoryStore(10), observability.NewMetricsForTesting(), discardLogger())

	r, err := cached.Geocode(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.False(t, r.Found)

	_, _ = cached.Geocode(context.Background(), "xyzzy")
	assert.Equal(t, 2, inner.calls, "not-found responses should be retried")
}

func TestCached_InnerErrorPropagates(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("API timeout")}
	cached := New(inner, NewMemoryStore(10), observability.NewMetricsForTesting(), discardLogger())

	_, err := cached.Geocode(context.Background(), "Berlin")
	require.Error(t, err)
}

type failingStore struct{}

func (failingStore) Get(_ context.Context, _ string) (domain.PlaceResult, bool, error) {
	return domain.PlaceResult{}, false, errors.New("store down")
}

func (failingStore) Put(_ context.Context, _ string, _ domain.PlaceResult) error {
	return errors.New("store down")
}

func TestCached_StoreFailureFallsThrough(t *testing.T) {
	inner := &countingGeocoder{result: foundPlace("Berlin, Germany")}
	cached := New(inner, failingStore{}, observability.NewMetricsForTesting(), discardLogger())

	r, err := cached.Geocode(context.Background(), "Berlin")
	require.NoError(t, err, "cache failures must not surface")
	assert.True(t, r.Found)
	assert.Equal(t, 1, inner.calls)
}

// --- memory LRU store tests ---

func TestMemoryStore_BasicGetPut(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a", foundPlace("A")))
	require.NoError(t, s.Put(ctx, "b", foundPlace("B")))

	result, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A", result.DisplayName)

	_, ok, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Eviction(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	_ = s.Put(ctx, "a", foundPlace("A"))
	_ = s.Put(ctx, "b", foundPlace("B"))
	_ = s.Put(ctx, "c", foundPlace("C")) // evicts "a"

	_, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok, "a should have been evicted")

	result, ok, _ := s.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "B", result.DisplayName)

	result, ok, _ = s.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.DisplayName)
}

func TestMemoryStore_AccessPromotesEntry(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	_ = s.Put(ctx, "a", foundPlace("A"))
	_ = s.Put(ctx, "b", foundPlace("B"))

	// Access "a" to promote it
	_, _, _ = s.Get(ctx, "a")

	// Insert "c", which should evict "b" (LRU), not "a"
	_ = s.Put(ctx, "c", foundPlace("C"))

	_, ok, _ := s.Get(ctx, "a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok, _ = s.Get(ctx, "b")
	assert.False(t, ok, "b should have been evicted")
}

func TestMemoryStore_UpdateExisting(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	_ = s.Put(ctx, "a", foundPlace("A1"))
	_ = s.Put(ctx, "a", foundPlace("A2"))

	result, ok, _ := s.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "A2", result.DisplayName)
}
