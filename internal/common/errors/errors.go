// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the query pipeline. Everything below the orchestrator
// returns one of these (wrapped with %w); the orchestrator converts them into
// user-facing replies, so none of them ever crosses the transport boundary
// as a fault.
var (
	// ErrModelUnavailable means the trained intent model could not be loaded
	// or refused to classify. Internal only: the rule matcher takes over and
	// the user never sees it.
	ErrModelUnavailable = errors.New("MODEL_UNAVAILABLE")

	// ErrLocationNotFound means the location phrase was empty or the
	// geocoding collaborator returned zero matches. Recoverable and
	// user-facing.
	ErrLocationNotFound = errors.New("LOCATION_NOT_FOUND")

	// ErrWeatherUnavailable means the weather collaborator failed: transport
	// error, malformed response, empty result, or timeout. Recoverable and
	// user-facing.
	ErrWeatherUnavailable = errors.New("WEATHER_UNAVAILABLE")
)

// Code returns the stable error code for logs and metrics labels.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrModelUnavailable):
		return "MODEL_UNAVAILABLE"
	case errors.Is(err, ErrLocationNotFound):
		return "LOCATION_NOT_FOUND"
	case errors.Is(err, ErrWeatherUnavailable):
		return "WEATHER_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// Retryable reports whether a single bounded retry may help. Only the
// weather collaborator is considered transient; a location that did not
// geocode will not geocode a second time.
func Retryable(err error) bool {
	return errors.Is(err, ErrWeatherUnavailable)
}

// Wrap annotates err with context while keeping the sentinel matchable.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// Is re-exports the stdlib helper so callers only import one errors package.
func Is(err, target error) bool { return errors.Is(err, target) }
