// internal/weather/models.go
package weather

import "time"

// Bundle is the full forecast returned by a provider: current conditions
// plus hourly and daily series. Fields the provider omitted are nil, and
// consumers must treat them as unknown, never as zero.
type Bundle struct {
	Current  Current
	Hourly   []Hour
	Daily    []Day
	Timezone string
}

// Current holds present-moment observations.
type Current struct {
	Time         time.Time
	TemperatureC *float64
	ApparentC    *float64
	HumidityPct  *float64
	PrecipMM     *float64
	RainMM       *float64
	SnowMM       *float64
	WindKMH      *float64
	WeatherCode  *int
}

// Day is one day of the daily series.
type Day struct {
	Date          time.Time
	TMinC         *float64
	TMaxC         *float64
	PrecipProbMax *float64
	RainMM        *float64
	SnowMM        *float64
	WeatherCode   *int
}

// Hour is one hour of the hourly series.
type Hour struct {
	Time         time.Time
	TemperatureC *float64
	PrecipProb   *float64
	RainMM       *float64
	SnowMM       *float64
	WindKMH      *float64
	HumidityPct  *float64
	WeatherCode  *int
}

// Float returns a pointer to v; used when building bundles by hand.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
