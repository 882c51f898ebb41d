// internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weatherchat/internal/common/logger"
	"weatherchat/internal/entities"
	"weatherchat/internal/geo"
	"weatherchat/internal/intent"
	"weatherchat/internal/models"
	"weatherchat/internal/weather"
)

// ==========================
// Fakes
// ==========================

type fakeGeocoder struct {
	candidates []geo.Candidate
	err        error
	calls      int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) ([]geo.Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeProvider struct {
	bundle *weather.Bundle
	err    error
	calls  int
}

func (f *fakeProvider) Forecast(_ context.Context, _, _ float64) (*weather.Bundle, error) {
	f.calls++
	return f.bundle, f.err
}

var testNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func lisbonCandidates() []geo.Candidate {
	return []geo.Candidate{{Lat: 38.7167, Lon: -9.1333, DisplayName: "Lisbon, Portugal"}}
}

func forecastBundle() *weather.Bundle {
	midnight := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	b := &weather.Bundle{
		Current: weather.Current{
			Time:         testNow,
			TemperatureC: weather.Float(17.5),
			HumidityPct:  weather.Float(68),
			WindKMH:      weather.Float(14),
			RainMM:       weather.Float(0),
			WeatherCode:  weather.Int(3),
		},
	}
	for i := 0; i < 7; i++ {
		b.Daily = append(b.Daily, weather.Day{
			Date:          midnight.AddDate(0, 0, i),
			TMinC:         weather.Float(10),
			TMaxC:         weather.Float(18),
			PrecipProbMax: weather.Float(60),
			RainMM:        weather.Float(2.4),
			WeatherCode:   weather.Int(61),
		})
	}
	for h := 0; h < 48; h++ {
		b.Hourly = append(b.Hourly, weather.Hour{
			Time:       midnight.Add(time.Duration(h) * time.Hour),
			PrecipProb: weather.Float(60),
			RainMM:     weather.Float(0.4),
		})
	}
	return b
}

func newOrchestrator(geocoder *fakeGeocoder, provider *fakeProvider) *Orchestrator {
	log := logger.Nop()
	classifier := intent.NewClassifier(nil, 0.55, log)
	resolver := geo.NewResolver(geocoder, log)
	fetcher := weather.NewFetcher(provider, log)
	return New(classifier, resolver, fetcher, log).WithClock(func() time.Time { return testNow })
}

// ==========================
// End-to-end pipeline paths
// ==========================

func TestHandle_RainTomorrowMorning(t *testing.T) {
	geocoder := &fakeGeocoder{candidates: lisbonCandidates()}
	provider := &fakeProvider{bundle: forecastBundle()}
	o := newOrchestrator(geocoder, provider)

	reply := o.Handle(context.Background(), models.Query{Text: "Will it rain in Lisbon tomorrow morning?"})

	assert.Contains(t, reply.Text, "Lisbon, Portugal")
	assert.Contains(t, reply.Text, "tomorrow morning")
	assert.Contains(t, reply.Text, "**60%**")
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 1, provider.calls)
}

func TestHandle_CurrentTemperature(t *testing.T) {
	o := newOrchestrator(&fakeGeocoder{candidates: lisbonCandidates()}, &fakeProvider{bundle: forecastBundle()})

	reply := o.Handle(context.Background(), models.Query{Text: "what's the temperature in Lisbon?"})

	assert.Contains(t, reply.Text, "right now")
	assert.Contains(t, reply.Text, "**17.5°C**")
}

func TestHandle_GreetingSkipsLookups(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("must not be called")}
	provider := &fakeProvider{err: fmt.Errorf("must not be called")}
	o := newOrchestrator(geocoder, provider)

	reply := o.Handle(context.Background(), models.Query{Text: "hello"})

	assert.Contains(t, reply.Text, "Ask me about the weather")
	assert.Zero(t, geocoder.calls)
	assert.Zero(t, provider.calls)
}

func TestHandle_HelpSkipsLookups(t *testing.T) {
	geocoder := &fakeGeocoder{}
	o := newOrchestrator(geocoder, &fakeProvider{})

	reply := o.Handle(context.Background(), models.Query{Text: "what can you do?"})

	assert.Contains(t, reply.Text, "You can ask about")
	assert.Zero(t, geocoder.calls)
}

func TestHandle_CoordinatesSkipGeocoding(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("must not be called")}
	provider := &fakeProvider{bundle: forecastBundle()}
	o := newOrchestrator(geocoder, provider)

	reply := o.Handle(context.Background(), models.Query{
		Text:        "what's the weather",
		Coordinates: &entities.Coordinates{Lat: 38.7167, Lon: -9.1333},
	})

	assert.Contains(t, reply.Text, "your location")
	assert.Zero(t, geocoder.calls)
	assert.Equal(t, 1, provider.calls)
}

// ==========================
// Failure branches always compose a reply
// ==========================

func TestHandle_UnknownIntent(t *testing.T) {
	o := newOrchestrator(&fakeGeocoder{}, &fakeProvider{})

	reply := o.Handle(context.Background(), models.Query{Text: "tell me a joke"})

	assert.Contains(t, reply.Text, "I can help with weather")
}

func TestHandle_EmptyText(t *testing.T) {
	o := newOrchestrator(&fakeGeocoder{}, &fakeProvider{})

	reply := o.Handle(context.Background(), models.Query{Text: "   "})

	assert.NotEmpty(t, reply.Text)
	assert.Contains(t, reply.Text, "I can help with weather")
}

func TestHandle_NoLocation(t *testing.T) {
	geocoder := &fakeGeocoder{}
	o := newOrchestrator(geocoder, &fakeProvider{})

	reply := o.Handle(context.Background(), models.Query{Text: "is it raining?"})

	assert.Contains(t, reply.Text, "Which location")
	assert.Zero(t, geocoder.calls)
}

func TestHandle_LocationNotFound(t *testing.T) {
	geocoder := &fakeGeocoder{candidates: []geo.Candidate{}}
	provider := &fakeProvider{}
	o := newOrchestrator(geocoder, provider)

	reply := o.Handle(context.Background(), models.Query{Text: "weather in Atlantis"})

	assert.Contains(t, reply.Text, "**Atlantis**")
	assert.Contains(t, reply.Text, "Try a different city name")
	assert.Zero(t, provider.calls)
}

func TestHandle_WeatherUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"provider down", fmt.Errorf("connection refused")},
		{"timeout", context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(
				&fakeGeocoder{candidates: lisbonCandidates()},
				&fakeProvider{err: tt.err},
			)

			reply := o.Handle(context.Background(), models.Query{Text: "weather in Lisbon"})

			assert.Contains(t, reply.Text, "temporarily unavailable")
			assert.Contains(t, reply.Text, "try again")
		})
	}
}

// ==========================
// Determinism
// ==========================

func TestHandle_SameQuerySameReply(t *testing.T) {
	o := newOrchestrator(
		&fakeGeocoder{candidates: lisbonCandidates()},
		&fakeProvider{bundle: forecastBundle()},
	)

	q := models.Query{Text: "Will it rain in Lisbon tomorrow morning?"}
	first := o.Handle(context.Background(), q)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, o.Handle(context.Background(), q))
	}
}
