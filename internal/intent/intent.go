// internal/intent/intent.go
package intent

// Intent is the coarse category of what the user wants.
type Intent string

const (
	TemperatureNow   Intent = "temperature_now"
	ConditionsNow    Intent = "conditions_now"
	WindNow          Intent = "wind_now"
	HumidityNow      Intent = "humidity_now"
	RainNow          Intent = "rain_now"
	SnowNow          Intent = "snow_now"
	TomorrowSummary  Intent = "tomorrow_summary"
	TomorrowRain     Intent = "tomorrow_rain"
	Next3DaysSummary Intent = "next3days_summary"
	WeekSummary      Intent = "week_summary"
	Greeting         Intent = "greeting"
	Help             Intent = "help"
	Unknown          Intent = "unknown"
)

// Labels lists every intent the classifier may produce, in a fixed order.
var Labels = []Intent{
	TemperatureNow, ConditionsNow, WindNow, HumidityNow, RainNow, SnowNow,
	TomorrowSummary, TomorrowRain, Next3DaysSummary, WeekSummary,
	Greeting, Help, Unknown,
}

// Valid reports whether s is a known intent label.
func Valid(s string) bool {
	for _, l := range Labels {
		if Intent(s) == l {
			return true
		}
	}
	return false
}

// NeedsForecast reports whether the intent requires location resolution and
// a weather fetch. Greeting, help and unknown short-circuit to composition.
func (i Intent) NeedsForecast() bool {
	switch i {
	case Greeting, Help, Unknown:
		return false
	}
	return true
}

// Prediction is the classifier output. Confidence is advisory: it routes the
// model-versus-rules decision and is never shown to the user.
type Prediction struct {
	Intent     Intent
	Confidence float64
	Source     string // "model" or "rules"
}
