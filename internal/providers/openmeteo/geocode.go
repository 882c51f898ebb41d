// internal/providers/openmeteo/geocode.go
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weatherchat/internal/common/cache"
	"weatherchat/internal/common/config"
	"weatherchat/internal/common/httpclient"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/common/metrics"
	"weatherchat/internal/geo"
)

// GeocodeClient talks to the Open-Meteo geocoding API. Responses are cached
// for the configured TTL since place coordinates do not move.
type GeocodeClient struct {
	baseURL string
	client  *httpclient.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  logger.Logger
}

func NewGeocodeClient(cfg config.ProviderConfig, store cache.Cache, ttl time.Duration, log logger.Logger) *GeocodeClient {
	return &GeocodeClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpclient.New(config.GetDuration(cfg.Timeout), cfg.MaxRetries),
		cache:   store,
		ttl:     ttl,
		logger:  log.With(map[string]interface{}{"provider": "openmeteo-geocoding"}),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a place name to ranked candidates. An empty result list
// is returned as-is; mapping that to NotFound is the resolver's job.
func (c *GeocodeClient) Geocode(ctx context.Context, name string) ([]geo.Candidate, error) {
	key := "geo:" + strings.ToLower(strings.TrimSpace(name))
	if data, ok := c.cache.Get(ctx, key); ok {
		metrics.CacheHits.WithLabelValues("geocoding", "hit").Inc()
		var cached []geo.Candidate
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}
	metrics.CacheHits.WithLabelValues("geocoding", "miss").Inc()

	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	started := time.Now()
	resp, err := c.client.Do(ctx, req)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ProviderRequestDuration.WithLabelValues("geocoding", status).Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read geocode response: %w", err)
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	candidates := make([]geo.Candidate, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		display := r.Name
		if r.Country != "" {
			display = fmt.Sprintf("%s, %s", r.Name, r.Country)
		}
		candidates = append(candidates, geo.Candidate{
			Lat:         r.Latitude,
			Lon:         r.Longitude,
			DisplayName: display,
		})
	}

	if data, err := json.Marshal(candidates); err == nil {
		c.cache.Set(ctx, key, data, c.ttl)
	}

	return candidates, nil
}
