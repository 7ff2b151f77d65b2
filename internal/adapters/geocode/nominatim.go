package geocode

import (
	"context"
	"delivery-map-service/internal/platform/obs"
	"delivery-map-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NominatimGeocoder implements the Geocoder port against the OpenStreetMap
// Nominatim search API.
//
// It issues exactly one query per lookup (result cap 1) and never retries;
// resolving an address is best effort and the caller degrades gracefully.
// An optional persistent cache avoids repeated lookups for the same address.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     ports.GeocodeCache
	log       *zap.Logger
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

func NewNominatimGeocoder(baseURL string, cache ports.GeocodeCache, log *zap.Logger) *NominatimGeocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	return &NominatimGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		// Nominatim's usage policy requires an identifying user agent.
		userAgent: "delivery-map-service/1.0",
		cache:     cache,
		log:       log,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *NominatimGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves an address to coordinates and a display name.
// A blank address returns nil without issuing a lookup. An empty result set
// returns nil as well; only transport and decode problems are errors.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ *ports.GeocodeResult, err error) {
	defer obs.Time(g.log, "geocode.nominatim")(&err)

	addr := g.normalize(address)
	if addr == "" {
		return nil, nil
	}

	if g.cache != nil {
		hit, err := g.cache.Get(ctx, addr)
		if err != nil {
			g.log.Warn("geocode cache read failed", zap.Error(err))
		} else if hit != nil {
			return hit, nil
		}
	}

	endpoint := g.baseURL + "/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: create request: %w", err)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", addr)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status: %d", resp.StatusCode)
	}

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(decoded) == 0 {
		return nil, nil
	}

	first := decoded[0]

	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: invalid latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: invalid longitude %q: %w", first.Lon, err)
	}

	result := ports.GeocodeResult{
		Lat:  lat,
		Lon:  lon,
		Name: displayName(first, addr),
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, addr, result); err != nil {
			g.log.Warn("geocode cache write failed", zap.Error(err))
		}
	}

	return &result, nil
}

// displayName picks the first usable name field, falling back to the
// queried address.
func displayName(r nominatimResult, fallback string) string {
	if strings.TrimSpace(r.DisplayName) != "" {
		return r.DisplayName
	}
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return fallback
}
