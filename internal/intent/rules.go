// internal/intent/rules.go
package intent

import "strings"

// ruleConfidence is reported for keyword hits; defaultConfidence for the
// generic fallthrough. The values only matter relative to each other.
const (
	ruleConfidence    = 0.9
	defaultConfidence = 0.3
)

var greetingWords = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"howdy", "yo",
}

// MatchRules classifies by keyword cascade. The order below is the fixed
// tie-break priority: specific intents win over generic ones, and the
// cascade always produces a label, so the rule matcher never fails.
func MatchRules(text string) Prediction {
	t := strings.ToLower(strings.TrimSpace(text))

	if t == "" {
		return Prediction{Intent: Unknown, Confidence: 0, Source: "rules"}
	}

	if isGreeting(t) {
		return rulePrediction(Greeting)
	}

	if containsAny(t, "help", "what can you do", "commands", "examples") {
		return rulePrediction(Help)
	}

	// Time horizons steer the per-variable intents below.
	hasTomorrow := strings.Contains(t, "tomorrow")
	hasWeek := containsAny(t, "this week", "next 7", "7 day", "week forecast", "weekly", "this weekend")
	has3Day := containsAny(t, "next 3", "3 day", "three day", "next three")

	if containsAny(t, "temperature", "temp", "how hot", "how cold", "degrees") {
		return rulePrediction(TemperatureNow)
	}
	if containsAny(t, "wind", "windy", "gust") {
		return rulePrediction(WindNow)
	}
	if containsAny(t, "humidity", "humid") {
		return rulePrediction(HumidityNow)
	}
	if containsAny(t, "snow", "snowfall") {
		if hasTomorrow {
			return rulePrediction(TomorrowSummary)
		}
		return rulePrediction(SnowNow)
	}
	if containsAny(t, "rain", "raining", "precip", "shower", "drizzle") {
		if hasTomorrow {
			return rulePrediction(TomorrowRain)
		}
		return rulePrediction(RainNow)
	}
	if containsAny(t, "condition", "weather like", "sunny", "cloudy", "clear", "overcast") {
		return rulePrediction(ConditionsNow)
	}

	if hasTomorrow {
		return rulePrediction(TomorrowSummary)
	}
	if has3Day {
		return rulePrediction(Next3DaysSummary)
	}
	if hasWeek {
		return rulePrediction(WeekSummary)
	}

	if strings.Contains(t, "weather") || strings.Contains(t, "forecast") {
		return rulePrediction(ConditionsNow)
	}

	return Prediction{Intent: Unknown, Confidence: defaultConfidence, Source: "rules"}
}

func isGreeting(t string) bool {
	trimmed := strings.TrimRight(t, "!.? ")
	for _, g := range greetingWords {
		if trimmed == g {
			return true
		}
	}
	return false
}

func containsAny(t string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

func rulePrediction(i Intent) Prediction {
	return Prediction{Intent: i, Confidence: ruleConfidence, Source: "rules"}
}
