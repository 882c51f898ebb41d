// internal/composer/composer.go
//
// Turns (intent, entities, forecast-or-failure) into one natural-language
// reply. Templates are keyed by intent; forecast fields the provider
// omitted are skipped entirely rather than rendered as zero.
package composer

import (
	"fmt"
	"strings"

	"weatherchat/internal/entities"
	"weatherchat/internal/geo"
	"weatherchat/internal/intent"
	"weatherchat/internal/sentiment"
	"weatherchat/internal/weather"
)

type Composer struct{}

func New() *Composer {
	return &Composer{}
}

// tonePrefix softens the reply when the user sounded upset. Decoration
// only; the factual content is identical.
func tonePrefix(tone sentiment.Label) string {
	if tone == sentiment.Negative {
		return "I've got you. "
	}
	return ""
}

// Greeting composes the canned greeting reply, independent of entities and
// forecast.
func (c *Composer) Greeting() string {
	return "Hi there! Ask me about the weather anywhere. Try: *\"Will it rain in Lisbon tomorrow morning?\"*"
}

// Help composes the canned capability overview.
func (c *Composer) Help() string {
	return "You can ask about:\n" +
		"- temperature, conditions (sunny/cloudy), wind, humidity, rain/snow\n" +
		"- tomorrow's forecast, next 3 days, or weekly outlook\n\n" +
		"Examples:\n" +
		"- *What's the wind speed in Tokyo?*\n" +
		"- *Will it rain in Lisbon tomorrow morning?*\n" +
		"- *3-day forecast for New York*"
}

// Unknown composes a generic clarification request.
func (c *Composer) Unknown() string {
	return "I can help with weather like temperature, conditions, wind, humidity, rain/snow, " +
		"and forecasts (tomorrow / 3-day / week). Try: **\"weather in Berlin\"**."
}

// NeedLocation asks which place to use when no phrase and no coordinates
// were supplied.
func (c *Composer) NeedLocation() string {
	return "Which location should I use? Example: **\"Will it rain in Lisbon tomorrow morning?\"**"
}

// LocationNotFound composes the recoverable geocoding-failure reply with a
// suggested next action.
func (c *Composer) LocationNotFound(phrase string) string {
	if phrase == "" {
		return c.NeedLocation()
	}
	return fmt.Sprintf("I couldn't find **%s**. Try a different city name, ideally city + country (e.g., *Lisbon, Portugal*).", phrase)
}

// WeatherUnavailable composes the recoverable fetch-failure reply. Timeouts
// land here too.
func (c *Composer) WeatherUnavailable(displayName string, tone sentiment.Label) string {
	where := ""
	if displayName != "" {
		where = fmt.Sprintf(" for **%s**", displayName)
	}
	return tonePrefix(tone) + fmt.Sprintf("The weather service is temporarily unavailable%s. Please try again in a moment.", where)
}

// Forecast composes the success reply for a weather intent.
func (c *Composer) Forecast(pred intent.Prediction, ents entities.EntitySet, loc geo.ResolvedLocation, result *weather.Result, tone sentiment.Label) string {
	prefix := tonePrefix(tone)

	if result.Window.IsNow() {
		return prefix + c.currentReply(pred.Intent, loc.DisplayName, result.Current)
	}

	switch ents.Horizon {
	case entities.HorizonTomorrow:
		return prefix + c.tomorrowReply(pred.Intent, ents, loc.DisplayName, result)

	case entities.HorizonNext3Days:
		return prefix + c.outlookReply(loc.DisplayName, "next 3 days", result.Days, result.Window.Days())

	case entities.HorizonWeek:
		return prefix + c.outlookReply(loc.DisplayName, "7-day outlook", result.Days, result.Window.Days())

	default:
		// today, tonight, weekend, weekday: a ranged summary over the
		// selected periods.
		return prefix + c.rangeReply(loc.DisplayName, result)
	}
}

// currentReply renders present conditions, picking bullets per intent.
func (c *Composer) currentReply(label intent.Intent, place string, cur weather.Current) string {
	parts := []string{fmt.Sprintf("**%s** right now:", place)}

	switch label {
	case intent.TemperatureNow, intent.ConditionsNow, intent.Unknown:
		if cur.TemperatureC != nil {
			parts = append(parts, fmt.Sprintf("- Temperature: **%.1f°C**", *cur.TemperatureC))
		}
		parts = append(parts, fmt.Sprintf("- Conditions: **%s**", describeCode(cur.WeatherCode)))
	case intent.WindNow:
		if cur.WindKMH != nil {
			parts = append(parts, fmt.Sprintf("- Wind: **%.0f km/h**", *cur.WindKMH))
		}
	case intent.HumidityNow:
		if cur.HumidityPct != nil {
			parts = append(parts, fmt.Sprintf("- Humidity: **%.0f%%**", *cur.HumidityPct))
		}
	case intent.RainNow:
		if cur.RainMM != nil {
			parts = append(parts, fmt.Sprintf("- Rain (last hour): **%.1f mm**", *cur.RainMM))
		}
	case intent.SnowNow:
		if cur.SnowMM != nil {
			parts = append(parts, fmt.Sprintf("- Snowfall (last hour): **%.1f mm**", *cur.SnowMM))
		}
	default:
		if cur.TemperatureC != nil {
			parts = append(parts, fmt.Sprintf("- Temperature: **%.1f°C**", *cur.TemperatureC))
		}
		parts = append(parts, fmt.Sprintf("- Conditions: **%s**", describeCode(cur.WeatherCode)))
	}

	if len(parts) == 1 {
		parts = append(parts, "- I have no data for that right now.")
	}
	return strings.Join(parts, "\n")
}

func (c *Composer) tomorrowReply(label intent.Intent, ents entities.EntitySet, place string, result *weather.Result) string {
	if len(result.Days) == 0 && len(result.Hours) == 0 {
		return "I couldn't get tomorrow's forecast right now. Please try again."
	}

	// Sub-day windows aggregate the hourly series when the provider gave
	// one; otherwise the daily figures below answer at day granularity.
	if ents.TimeOfDay != entities.TimeOfDayNone && len(result.Hours) > 0 {
		var probSum, rainSum float64
		probCount := 0
		for _, h := range result.Hours {
			if h.PrecipProb != nil {
				probSum += *h.PrecipProb
				probCount++
			}
			if h.RainMM != nil {
				rainSum += *h.RainMM
			}
		}
		msg := fmt.Sprintf("**%s** tomorrow %s:", place, ents.TimeOfDay)
		if probCount > 0 {
			msg += fmt.Sprintf(" avg precipitation probability ~ **%.0f%%**,", probSum/float64(probCount))
		}
		msg += fmt.Sprintf(" rain sum ~ **%.1f mm**.", rainSum)
		return msg
	}

	if len(result.Days) == 0 {
		return "I couldn't get tomorrow's forecast right now. Please try again."
	}
	d := result.Days[0]
	date := d.Date.Format("2006-01-02")

	if label == intent.TomorrowRain {
		msg := fmt.Sprintf("**%s** tomorrow (%s): ", place, date)
		if d.PrecipProbMax != nil {
			msg += fmt.Sprintf("precipitation probability up to **%.0f%%**. ", *d.PrecipProbMax)
		}
		if d.RainMM != nil {
			msg += fmt.Sprintf("expected rain ~ **%.1f mm**.", *d.RainMM)
		}
		if d.PrecipProbMax == nil && d.RainMM == nil {
			msg += "no precipitation data available."
		}
		return strings.TrimSpace(msg)
	}

	lines := []string{fmt.Sprintf("**%s** tomorrow (%s): **%s**", place, date, describeCode(d.WeatherCode))}
	if d.TMinC != nil && d.TMaxC != nil {
		lines = append(lines, fmt.Sprintf("- Min/Max: **%.1f°C / %.1f°C**", *d.TMinC, *d.TMaxC))
	}
	if d.RainMM != nil || d.SnowMM != nil {
		var precip []string
		if d.RainMM != nil {
			precip = append(precip, fmt.Sprintf("Rain: **%.1f mm**", *d.RainMM))
		}
		if d.SnowMM != nil {
			precip = append(precip, fmt.Sprintf("Snow: **%.1f mm**", *d.SnowMM))
		}
		lines = append(lines, "- "+strings.Join(precip, ", "))
	}
	if d.PrecipProbMax != nil {
		lines = append(lines, fmt.Sprintf("- Precipitation probability (max): **%.0f%%**", *d.PrecipProbMax))
	}
	return strings.Join(lines, "\n")
}

// outlookReply lists up to wantDays daily lines.
func (c *Composer) outlookReply(place, title string, days []weather.Day, wantDays int) string {
	if len(days) == 0 {
		return fmt.Sprintf("I couldn't get the %s right now. Please try again.", title)
	}
	if len(days) > wantDays {
		days = days[:wantDays]
	}

	lines := []string{fmt.Sprintf("**%s**, %s:", place, title)}
	for _, d := range days {
		lines = append(lines, dayLine(d))
	}
	return strings.Join(lines, "\n")
}

// rangeReply summarizes whatever periods the fetcher selected.
func (c *Composer) rangeReply(place string, result *weather.Result) string {
	if len(result.Days) == 0 {
		return fmt.Sprintf("I couldn't get the forecast for %s right now. Please try again.", result.Window.Label)
	}

	lines := []string{fmt.Sprintf("**%s**, %s:", place, result.Window.Label)}
	for _, d := range result.Days {
		lines = append(lines, dayLine(d))
	}
	return strings.Join(lines, "\n")
}

func dayLine(d weather.Day) string {
	line := fmt.Sprintf("- %s: %s", d.Date.Format("2006-01-02"), describeCode(d.WeatherCode))
	if d.TMinC != nil && d.TMaxC != nil {
		line += fmt.Sprintf(", %.1f-%.1f°C", *d.TMinC, *d.TMaxC)
	}
	if d.RainMM != nil {
		line += fmt.Sprintf(", rain %.1f mm", *d.RainMM)
	}
	return line
}
