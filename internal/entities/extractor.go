// internal/entities/extractor.go
//
// Rule-based extraction of the location phrase and time expression from raw
// query text. This is ordered pattern matching, not a parser: when a query
// names several locations or times, the first recognized phrase wins. That
// is a documented precision limit of the extractor, not a defect.
package entities

import (
	"regexp"
	"strings"
	"time"
)

// Coordinates is an explicit latitude/longitude pair supplied out of band
// (browser geolocation). When present it always beats the location phrase.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Horizon is the coarse time range the user asked about.
type Horizon string

const (
	HorizonNow       Horizon = "now"
	HorizonToday     Horizon = "today"
	HorizonTonight   Horizon = "tonight"
	HorizonTomorrow  Horizon = "tomorrow"
	HorizonWeekend   Horizon = "weekend"
	HorizonWeekday   Horizon = "weekday"
	HorizonNext3Days Horizon = "next3days"
	HorizonWeek      Horizon = "week"
)

// TimeOfDay narrows a day horizon to a bucket of hours.
type TimeOfDay string

const (
	TimeOfDayNone      TimeOfDay = ""
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// EntitySet holds at most one location phrase and one time expression.
type EntitySet struct {
	LocationPhrase string
	Horizon        Horizon
	Weekday        time.Weekday
	TimeOfDay      TimeOfDay
	Override       *Coordinates
}

// HasLocation reports whether resolution has anything to work with.
func (e EntitySet) HasLocation() bool {
	return e.Override != nil || e.LocationPhrase != ""
}

var (
	// "in Berlin", "at New York", "near Tokyo", "for Lisbon, Portugal" at
	// the end of the sentence.
	cueRe = regexp.MustCompile(`(?i)\b(?:in|at|near|for)\s+([a-zA-Z\s,.'-]{2,})$`)

	// "weather in Berlin today" with trailing words after the place.
	weatherRe = regexp.MustCompile(`(?i)\bweather\s+(?:in|at|for)\s+([a-zA-Z\s,.'-]{2,})`)

	// A trailing capitalized span such as "New York" or "Lisbon, Portugal".
	properRe = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}(?:\s*,\s*[A-Z][a-z]+)?)\s*$`)
)

// weekdayNames lists lowercase weekday words in a fixed order; matching
// scans the text for the earliest occurrence, so the first weekday the user
// wrote wins.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// timeWords are stripped off the tail of a captured location phrase and
// rejected as stand-alone "places".
var timeWords = map[string]struct{}{
	"today": {}, "tonight": {}, "tomorrow": {}, "weekend": {}, "week": {},
	"morning": {}, "afternoon": {}, "evening": {}, "night": {}, "now": {},
	"this": {}, "next": {}, "the": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
}

// Extract scans the raw query text for a location phrase and a time
// expression. Casing is ignored for matching; trailing punctuation is
// tolerated.
func Extract(rawText string) EntitySet {
	text := strings.TrimSpace(rawText)
	text = strings.TrimRight(text, " \t?!.")

	set := EntitySet{Horizon: HorizonNow}
	set.Horizon, set.Weekday = extractHorizon(text)
	set.TimeOfDay = extractTimeOfDay(text)
	set.LocationPhrase = extractLocation(text)
	return set
}

func extractLocation(text string) string {
	if m := cueRe.FindStringSubmatch(text); m != nil {
		if phrase := cleanPhrase(m[1]); phrase != "" {
			return phrase
		}
	}
	if m := weatherRe.FindStringSubmatch(text); m != nil {
		if phrase := cleanPhrase(m[1]); phrase != "" {
			return phrase
		}
	}
	// One-word messages like "Tomorrow" must not become places.
	if len(strings.Fields(text)) >= 2 {
		if m := properRe.FindStringSubmatch(text); m != nil {
			if phrase := cleanPhrase(m[1]); phrase != "" {
				return phrase
			}
		}
	}
	return ""
}

// cleanPhrase trims time expressions off the tail of a captured phrase, so
// "Lisbon tomorrow morning" becomes "Lisbon". Returns "" when nothing
// place-like remains.
func cleanPhrase(raw string) string {
	words := strings.Fields(strings.Trim(raw, " ,.'-"))
	for len(words) > 0 {
		last := strings.ToLower(strings.Trim(words[len(words)-1], ",.?!'"))
		if _, isTime := timeWords[last]; !isTime {
			break
		}
		words = words[:len(words)-1]
	}
	phrase := strings.Trim(strings.Join(words, " "), " ,.'-")
	if len(phrase) < 2 {
		return ""
	}
	return phrase
}

// extractHorizon matches the time-expression vocabulary in a fixed priority
// order; the first hit wins.
func extractHorizon(text string) (Horizon, time.Weekday) {
	t := strings.ToLower(text)

	switch {
	case strings.Contains(t, "tomorrow"):
		return HorizonTomorrow, 0
	case strings.Contains(t, "tonight"):
		return HorizonTonight, 0
	case strings.Contains(t, "this weekend"), strings.Contains(t, "weekend"):
		return HorizonWeekend, 0
	case containsAny(t, "next 3", "3 day", "three day", "next three"):
		return HorizonNext3Days, 0
	case containsAny(t, "this week", "next 7", "7 day", "week forecast", "weekly"):
		return HorizonWeek, 0
	case strings.Contains(t, "today"):
		return HorizonToday, 0
	}

	if day, ok := earliestWeekday(t); ok {
		return HorizonWeekday, day
	}

	return HorizonNow, 0
}

func extractTimeOfDay(text string) TimeOfDay {
	// "tonight" is a horizon of its own, not a bucket of some other day.
	t := strings.ReplaceAll(strings.ToLower(text), "tonight", "")
	switch {
	case strings.Contains(t, "morning"):
		return TimeOfDayMorning
	case strings.Contains(t, "afternoon"):
		return TimeOfDayAfternoon
	case strings.Contains(t, "evening"):
		return TimeOfDayEvening
	case strings.Contains(t, "night"):
		return TimeOfDayNight
	}
	return TimeOfDayNone
}

func containsAny(t string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

var wordBoundRe = map[string]*regexp.Regexp{}

func init() {
	for _, wd := range weekdayNames {
		wordBoundRe[wd.name] = regexp.MustCompile(`\b` + wd.name + `\b`)
	}
}

// earliestWeekday returns the weekday mentioned first in the text. A query
// naming several weekdays keeps the one the user wrote first.
func earliestWeekday(t string) (time.Weekday, bool) {
	best := -1
	var day time.Weekday
	for _, wd := range weekdayNames {
		loc := wordBoundRe[wd.name].FindStringIndex(t)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best = loc[0]
			day = wd.day
		}
	}
	return day, best != -1
}
