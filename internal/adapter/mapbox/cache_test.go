package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadrisk/internal/domain"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Whitefield", FormattedAddress: "Whitefield, Bengaluru"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	r1, err := cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.NoError(t, err)
	assert.Equal(t, "Whitefield", r1.PlaceName)

	r2, err := cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.NoError(t, err)
	assert.Equal(t, "Whitefield", r2.PlaceName)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedGeocoder_NearbyCoordinatesShareABucket(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Whitefield"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	// Sub-microdegree differences quantize to the same key.
	_, err := cached.ReverseGeocode(context.Background(), 12.96980004, 77.74990002)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 12.96979996, 77.74989998)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_DifferentCoordinatesMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Place"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	_, _ = cached.ReverseGeocode(context.Background(), 13.0358, 77.5970)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty results should be retried")
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("rate limited")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 12.9698, 77.7499)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

// --- LRU cache unit tests ---

func key(lat, lon float64) coordKey { return quantize(lat, lon) }

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put(key(1, 1), domain.GeocodingResult{PlaceName: "A"})
	c.put(key(2, 2), domain.GeocodingResult{PlaceName: "B"})

	result, ok := c.get(key(1, 1))
	assert.True(t, ok)
	assert.Equal(t, "A", result.PlaceName)

	_, ok = c.get(key(9, 9))
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put(key(1, 1), domain.GeocodingResult{PlaceName: "A"})
	c.put(key(2, 2), domain.GeocodingResult{PlaceName: "B"})
	c.put(key(3, 3), domain.GeocodingResult{PlaceName: "C"}) // evicts A

	_, ok := c.get(key(1, 1))
	assert.False(t, ok, "oldest entry should have been evicted")

	result, ok := c.get(key(2, 2))
	assert.True(t, ok)
	assert.Equal(t, "B", result.PlaceName)

	result, ok = c.get(key(3, 3))
	assert.True(t, ok)
	assert.Equal(t, "C", result.PlaceName)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put(key(1, 1), domain.GeocodingResult{PlaceName: "A"})
	c.put(key(2, 2), domain.GeocodingResult{PlaceName: "B"})

	// Touch A so B becomes least recently used.
	c.get(key(1, 1))

	c.put(key(3, 3), domain.GeocodingResult{PlaceName: "C"})

	_, ok := c.get(key(1, 1))
	assert.True(t, ok, "recently accessed entry should survive")

	_, ok = c.get(key(2, 2))
	assert.False(t, ok, "least recently used entry should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put(key(1, 1), domain.GeocodingResult{PlaceName: "A1"})
	c.put(key(1, 1), domain.GeocodingResult{PlaceName: "A2"})

	result, ok := c.get(key(1, 1))
	assert.True(t, ok)
	assert.Equal(t, "A2", result.PlaceName)
}
