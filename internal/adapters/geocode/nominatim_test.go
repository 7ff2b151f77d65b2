package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delivery-map-service/internal/ports"
)

type stubCache struct {
	hits map[string]ports.GeocodeResult
	puts map[string]ports.GeocodeResult
}

func newStubCache() *stubCache {
	return &stubCache{
		hits: map[string]ports.GeocodeResult{},
		puts: map[string]ports.GeocodeResult{},
	}
}

func (c *stubCache) Get(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	if r, ok := c.hits[address]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *stubCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	c.puts[address] = result
	return nil
}

func TestGeocodeSuccess(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "Hauptstraße 5, 80331 München", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"48.1371","lon":"11.5754","display_name":"München, Bayern, Deutschland"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "Hauptstraße 5,  80331   München")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 48.1371, got.Lat)
	assert.Equal(t, 11.5754, got.Lon)
	assert.Equal(t, "München, Bayern, Deutschland", got.Name)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeBlankAddressSkipsLookup(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "Nirgendwostraße 1, 00000 Nirgendwo")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "Hauptstraße 5")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestGeocodeBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	_, err := g.Geocode(context.Background(), "Hauptstraße 5")
	assert.Error(t, err)
}

func TestGeocodeNameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1.5","lon":"2.5","display_name":"","name":"Kurzname"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "irgendwo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kurzname", got.Name)
}

func TestGeocodeNameFallsBackToQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1.5","lon":"2.5"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "Musterweg 1, 12345 Althausen")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Musterweg 1, 12345 Althausen", got.Name)
}

func TestGeocodeUsesCache(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"lat":"48.1","lon":"11.5","display_name":"München"}]`))
	}))
	defer srv.Close()

	cache := newStubCache()
	cache.hits["bekannte Adresse"] = ports.GeocodeResult{Lat: 1, Lon: 2, Name: "cached"}

	g := NewNominatimGeocoder(srv.URL, cache, zap.NewNop())
	ctx := context.Background()

	// Cache hit short-circuits the lookup.
	got, err := g.Geocode(ctx, "bekannte Adresse")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cached", got.Name)
	assert.Equal(t, int32(0), calls.Load())

	// Cache miss performs the lookup and stores the result.
	got, err = g.Geocode(ctx, "neue Adresse")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, cache.puts, "neue Adresse")
}
