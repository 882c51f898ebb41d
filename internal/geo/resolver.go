// internal/geo/resolver.go
package geo

import (
	"context"

	"weatherchat/internal/common/errors"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/entities"
)

// OverrideDisplayName labels coordinates supplied by geolocation, where no
// place name is known.
const OverrideDisplayName = "your location"

// Candidate is one geocoding match, ranked by the collaborator.
type Candidate struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Geocoder is the external geocoding collaborator.
type Geocoder interface {
	Geocode(ctx context.Context, name string) ([]Candidate, error)
}

// ResolvedLocation is a validated coordinate pair with a display name. It is
// only ever built from an explicit override or exactly one best-ranked
// geocoding candidate; an ambiguous or unresolved phrase never produces one.
type ResolvedLocation struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Resolver turns a location phrase or raw coordinates into a
// ResolvedLocation.
type Resolver struct {
	geocoder Geocoder
	logger   logger.Logger
}

func NewResolver(geocoder Geocoder, log logger.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   log.With(map[string]interface{}{"component": "resolver"}),
	}
}

// Resolve resolves the query's location. An override short-circuits without
// touching the geocoder. An empty phrase or zero candidates yields
// ErrLocationNotFound, which is recoverable and user-facing.
func (r *Resolver) Resolve(ctx context.Context, phrase string, override *entities.Coordinates) (ResolvedLocation, error) {
	if override != nil {
		loc := ResolvedLocation{Lat: override.Lat, Lon: override.Lon, DisplayName: OverrideDisplayName}
		if !valid(loc.Lat, loc.Lon) {
			return ResolvedLocation{}, errors.Wrap(errors.ErrLocationNotFound,
				"override coordinates out of range: %.4f,%.4f", loc.Lat, loc.Lon)
		}
		return loc, nil
	}

	if phrase == "" {
		return ResolvedLocation{}, errors.Wrap(errors.ErrLocationNotFound, "no location phrase")
	}

	candidates, err := r.geocoder.Geocode(ctx, phrase)
	if err != nil {
		r.logger.Warn("geocoding failed", map[string]interface{}{
			"phrase": phrase,
			"error":  err.Error(),
		})
		return ResolvedLocation{}, errors.Wrap(errors.ErrLocationNotFound, "geocode %q: %v", phrase, err)
	}
	if len(candidates) == 0 {
		return ResolvedLocation{}, errors.Wrap(errors.ErrLocationNotFound, "no matches for %q", phrase)
	}

	best := candidates[0]
	if !valid(best.Lat, best.Lon) {
		return ResolvedLocation{}, errors.Wrap(errors.ErrLocationNotFound,
			"candidate coordinates out of range: %.4f,%.4f", best.Lat, best.Lon)
	}

	return ResolvedLocation{Lat: best.Lat, Lon: best.Lon, DisplayName: best.DisplayName}, nil
}

func valid(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
