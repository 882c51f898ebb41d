// internal/weather/fetcher.go
package weather

import (
	"context"

	"weatherchat/internal/common/errors"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/entities"
	"weatherchat/internal/geo"
)

// Provider is the external weather collaborator, keyed by coordinates.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64) (*Bundle, error)
}

// Result is the slice of the forecast relevant to one query: current
// conditions, the days overlapping the window, and the hours inside it.
// Hours may be empty when the provider's granularity is coarser than the
// requested window; the composer then falls back to the enclosing days.
type Result struct {
	Window  entities.TimeWindow
	Current Current
	Days    []Day
	Hours   []Hour
}

// Fetcher retrieves the forecast for a resolved location and time window.
type Fetcher struct {
	provider Provider
	logger   logger.Logger
}

func NewFetcher(provider Provider, log logger.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		logger:   log.With(map[string]interface{}{"component": "fetcher"}),
	}
}

// Fetch asks the provider for the location's forecast and selects the
// periods covering the window. Transport errors, malformed responses and
// empty results all map to ErrWeatherUnavailable, including timeouts.
func (f *Fetcher) Fetch(ctx context.Context, loc geo.ResolvedLocation, window entities.TimeWindow) (*Result, error) {
	bundle, err := f.provider.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		f.logger.Warn("forecast fetch failed", map[string]interface{}{
			"lat":   loc.Lat,
			"lon":   loc.Lon,
			"error": err.Error(),
		})
		return nil, errors.Wrap(errors.ErrWeatherUnavailable, "forecast %.4f,%.4f: %v", loc.Lat, loc.Lon, err)
	}
	if bundle == nil || (len(bundle.Daily) == 0 && len(bundle.Hourly) == 0 && bundle.Current.Time.IsZero()) {
		return nil, errors.Wrap(errors.ErrWeatherUnavailable, "empty forecast for %.4f,%.4f", loc.Lat, loc.Lon)
	}

	result := &Result{
		Window:  window,
		Current: bundle.Current,
		Days:    selectDays(bundle.Daily, window),
		Hours:   selectHours(bundle.Hourly, window),
	}

	// Provider granularity may be coarser than asked. A sub-day window with
	// no hourly data still gets the closest enclosing daily period.
	if len(result.Hours) == 0 && len(result.Days) == 0 && len(bundle.Daily) > 0 {
		result.Days = closestDay(bundle.Daily, window)
	}

	return result, nil
}

// selectDays keeps the days whose date overlaps [Start, End).
func selectDays(days []Day, w entities.TimeWindow) []Day {
	var out []Day
	for _, d := range days {
		dayStart := d.Date
		dayEnd := d.Date.AddDate(0, 0, 1)
		if dayStart.Before(w.End) && w.Start.Before(dayEnd) {
			out = append(out, d)
		}
	}
	return out
}

// selectHours keeps the hours inside [Start, End).
func selectHours(hours []Hour, w entities.TimeWindow) []Hour {
	var out []Hour
	for _, h := range hours {
		if w.Contains(h.Time) {
			out = append(out, h)
		}
	}
	return out
}

// closestDay returns the single day nearest to the window start.
func closestDay(days []Day, w entities.TimeWindow) []Day {
	best := 0
	bestDist := w.Start.Sub(days[0].Date)
	if bestDist < 0 {
		bestDist = -bestDist
	}
	for i, d := range days[1:] {
		dist := w.Start.Sub(d.Date)
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best = i + 1
			bestDist = dist
		}
	}
	return []Day{days[best]}
}
