// internal/weather/fetcher_test.go
package weather

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherchat/internal/common/errors"
	"weatherchat/internal/common/logger"
	"weatherchat/internal/entities"
	"weatherchat/internal/geo"
)

type fakeProvider struct {
	bundle *Bundle
	err    error
}

func (f *fakeProvider) Forecast(_ context.Context, _, _ float64) (*Bundle, error) {
	return f.bundle, f.err
}

var testLoc = geo.ResolvedLocation{Lat: 38.7167, Lon: -9.1333, DisplayName: "Lisbon, Portugal"}

// testBundle builds seven daily periods and hourly periods for the first
// two days, starting at base midnight.
func testBundle(base time.Time) *Bundle {
	midnight := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	b := &Bundle{
		Current: Current{
			Time:         base,
			TemperatureC: Float(17.5),
			WeatherCode:  Int(3),
		},
	}
	for i := 0; i < 7; i++ {
		b.Daily = append(b.Daily, Day{
			Date:  midnight.AddDate(0, 0, i),
			TMinC: Float(10 + float64(i)),
			TMaxC: Float(18 + float64(i)),
		})
	}
	for h := 0; h < 48; h++ {
		b.Hourly = append(b.Hourly, Hour{
			Time:       midnight.Add(time.Duration(h) * time.Hour),
			PrecipProb: Float(float64(h)),
		})
	}
	return b
}

func TestFetcher_Fetch_SelectsWindow(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	provider := &fakeProvider{bundle: testBundle(now)}
	f := NewFetcher(provider, logger.Nop())

	t.Run("tomorrow selects one day and its hours", func(t *testing.T) {
		window := entities.EntitySet{Horizon: entities.HorizonTomorrow}.Window(now)
		result, err := f.Fetch(context.Background(), testLoc, window)
		require.NoError(t, err)

		require.Len(t, result.Days, 1)
		assert.Equal(t, window.Start, result.Days[0].Date)
		assert.Len(t, result.Hours, 24)
	})

	t.Run("tomorrow morning selects the bucket hours", func(t *testing.T) {
		window := entities.EntitySet{
			Horizon:   entities.HorizonTomorrow,
			TimeOfDay: entities.TimeOfDayMorning,
		}.Window(now)
		result, err := f.Fetch(context.Background(), testLoc, window)
		require.NoError(t, err)

		assert.Len(t, result.Hours, 6)
		for _, h := range result.Hours {
			assert.True(t, window.Contains(h.Time))
		}
	})

	t.Run("week selects all seven days", func(t *testing.T) {
		window := entities.EntitySet{Horizon: entities.HorizonWeek}.Window(now)
		result, err := f.Fetch(context.Background(), testLoc, window)
		require.NoError(t, err)
		assert.Len(t, result.Days, 7)
	})

	t.Run("current conditions ride along", func(t *testing.T) {
		window := entities.EntitySet{}.Window(now)
		result, err := f.Fetch(context.Background(), testLoc, window)
		require.NoError(t, err)
		require.NotNil(t, result.Current.TemperatureC)
		assert.Equal(t, 17.5, *result.Current.TemperatureC)
	})
}

func TestFetcher_Fetch_CoarserGranularityFallsBackToDay(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	bundle := testBundle(now)
	bundle.Hourly = nil // provider without an hourly series
	f := NewFetcher(&fakeProvider{bundle: bundle}, logger.Nop())

	window := entities.EntitySet{
		Horizon:   entities.HorizonTomorrow,
		TimeOfDay: entities.TimeOfDayMorning,
	}.Window(now)

	result, err := f.Fetch(context.Background(), testLoc, window)
	require.NoError(t, err)

	assert.Empty(t, result.Hours)
	require.Len(t, result.Days, 1)
	assert.Equal(t, now.AddDate(0, 0, 1).Day(), result.Days[0].Date.Day())
}

func TestFetcher_Fetch_Unavailable(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	window := entities.EntitySet{}.Window(now)

	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{err: fmt.Errorf("503")}},
		{"timeout", &fakeProvider{err: context.DeadlineExceeded}},
		{"nil bundle", &fakeProvider{}},
		{"empty bundle", &fakeProvider{bundle: &Bundle{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(tt.provider, logger.Nop())
			_, err := f.Fetch(context.Background(), testLoc, window)
			assert.True(t, errors.Is(err, errors.ErrWeatherUnavailable))
			assert.True(t, errors.Retryable(err))
		})
	}
}
