// internal/providers/openmeteo/forecast.go
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherchat/internal/common/cache"
	"weatherchat/internal/common/config"
	"weatherchat/internal/common/httpclient"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/common/metrics"
	"weatherchat/internal/weather"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,rain,snowfall,wind_speed_10m,weather_code"
	hourlyFields  = "temperature_2m,precipitation_probability,rain,snowfall,relative_humidity_2m,wind_speed_10m,weather_code"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max,rain_sum,snowfall_sum"
	forecastDays  = 7
)

// ForecastClient talks to the Open-Meteo forecast API.
type ForecastClient struct {
	baseURL string
	client  *httpclient.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  logger.Logger
}

func NewForecastClient(cfg config.ProviderConfig, store cache.Cache, ttl time.Duration, log logger.Logger) *ForecastClient {
	return &ForecastClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpclient.New(config.GetDuration(cfg.Timeout), cfg.MaxRetries),
		cache:   store,
		ttl:     ttl,
		logger:  log.With(map[string]interface{}{"provider": "openmeteo-forecast"}),
	}
}

// forecastResponse mirrors the wire format. Series entries may be null, so
// everything numeric is a pointer.
type forecastResponse struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`

	Current struct {
		Time          string   `json:"time"`
		Temperature   *float64 `json:"temperature_2m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Apparent      *float64 `json:"apparent_temperature"`
		Precipitation *float64 `json:"precipitation"`
		Rain          *float64 `json:"rain"`
		Snowfall      *float64 `json:"snowfall"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		WeatherCode   *int     `json:"weather_code"`
	} `json:"current"`

	Hourly struct {
		Time          []string   `json:"time"`
		Temperature   []*float64 `json:"temperature_2m"`
		PrecipProb    []*float64 `json:"precipitation_probability"`
		Rain          []*float64 `json:"rain"`
		Snowfall      []*float64 `json:"snowfall"`
		Humidity      []*float64 `json:"relative_humidity_2m"`
		WindSpeed     []*float64 `json:"wind_speed_10m"`
		WeatherCode   []*int     `json:"weather_code"`
	} `json:"hourly"`

	Daily struct {
		Time        []string   `json:"time"`
		WeatherCode []*int     `json:"weather_code"`
		TMax        []*float64 `json:"temperature_2m_max"`
		TMin        []*float64 `json:"temperature_2m_min"`
		PrecipProb  []*float64 `json:"precipitation_probability_max"`
		RainSum     []*float64 `json:"rain_sum"`
		SnowSum     []*float64 `json:"snowfall_sum"`
	} `json:"daily"`
}

// Forecast retrieves and parses the forecast bundle for the coordinates.
func (c *ForecastClient) Forecast(ctx context.Context, lat, lon float64) (*weather.Bundle, error) {
	key := fmt.Sprintf("wx:%.4f,%.4f", lat, lon)
	if data, ok := c.cache.Get(ctx, key); ok {
		metrics.CacheHits.WithLabelValues("forecast", "hit").Inc()
		var cached weather.Bundle
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}
	metrics.CacheHits.WithLabelValues("forecast", "miss").Inc()

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("timezone", "auto")
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("forecast_days", strconv.Itoa(forecastDays))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	started := time.Now()
	resp, err := c.client.Do(ctx, req)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ProviderRequestDuration.WithLabelValues("forecast", status).Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response: %w", err)
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	bundle := parseBundle(&parsed)

	if data, err := json.Marshal(bundle); err == nil {
		c.cache.Set(ctx, key, data, c.ttl)
	}

	return bundle, nil
}

func parseBundle(r *forecastResponse) *weather.Bundle {
	loc := zoneOf(r)

	bundle := &weather.Bundle{Timezone: r.Timezone}

	bundle.Current = weather.Current{
		Time:         parseLocalTime(r.Current.Time, loc),
		TemperatureC: r.Current.Temperature,
		ApparentC:    r.Current.Apparent,
		HumidityPct:  r.Current.Humidity,
		PrecipMM:     r.Current.Precipitation,
		RainMM:       r.Current.Rain,
		SnowMM:       r.Current.Snowfall,
		WindKMH:      r.Current.WindSpeed,
		WeatherCode:  r.Current.WeatherCode,
	}

	for i, iso := range r.Daily.Time {
		bundle.Daily = append(bundle.Daily, weather.Day{
			Date:          parseLocalDate(iso, loc),
			WeatherCode:   at(r.Daily.WeatherCode, i),
			TMaxC:         at(r.Daily.TMax, i),
			TMinC:         at(r.Daily.TMin, i),
			PrecipProbMax: at(r.Daily.PrecipProb, i),
			RainMM:        at(r.Daily.RainSum, i),
			SnowMM:        at(r.Daily.SnowSum, i),
		})
	}

	for i, iso := range r.Hourly.Time {
		bundle.Hourly = append(bundle.Hourly, weather.Hour{
			Time:         parseLocalTime(iso, loc),
			TemperatureC: at(r.Hourly.Temperature, i),
			PrecipProb:   at(r.Hourly.PrecipProb, i),
			RainMM:       at(r.Hourly.Rain, i),
			SnowMM:       at(r.Hourly.Snowfall, i),
			WindKMH:      at(r.Hourly.WindSpeed, i),
			HumidityPct:  at(r.Hourly.Humidity, i),
			WeatherCode:  at(r.Hourly.WeatherCode, i),
		})
	}

	return bundle
}

// zoneOf prefers the IANA zone named in the response and falls back to the
// reported fixed offset.
func zoneOf(r *forecastResponse) *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone("forecast", r.UTCOffsetSeconds)
}

func parseLocalTime(iso string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", iso, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseLocalDate(iso string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation("2006-01-02", iso, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// at indexes a wire series; short or null series read as nil.
func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}
