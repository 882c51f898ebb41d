// internal/entities/timewindow.go
package entities

import (
	"fmt"
	"time"
)

// TimeWindow is a concrete half-open [Start, End) range resolved from the
// extracted time expression. Both ends carry the reference time's zone.
type TimeWindow struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// IsNow reports whether the window represents the current moment rather
// than a future range.
func (w TimeWindow) IsNow() bool {
	return w.Label == "right now"
}

// Days returns the window span in whole days, at least 1.
func (w TimeWindow) Days() int {
	d := int(w.End.Sub(w.Start).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}

// todHours maps a time-of-day bucket to its [start, end) hours.
func todHours(tod TimeOfDay) (int, int, bool) {
	switch tod {
	case TimeOfDayMorning:
		return 6, 12, true
	case TimeOfDayAfternoon:
		return 12, 18, true
	case TimeOfDayEvening:
		return 18, 24, true
	case TimeOfDayNight:
		return 0, 6, true
	}
	return 0, 0, false
}

// Window resolves the entity set's time expression against a reference
// instant. The policy is fixed: day horizons run local midnight to local
// midnight, so "tomorrow" starts exactly at the next midnight in now's
// zone. Absent or unparseable expressions resolve to "right now".
func (e EntitySet) Window(now time.Time) TimeWindow {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := 24 * time.Hour

	switch e.Horizon {
	case HorizonToday:
		return narrow(TimeWindow{Start: midnight, End: midnight.Add(day), Label: "today"}, e.TimeOfDay)

	case HorizonTonight:
		return TimeWindow{Start: midnight.Add(18 * time.Hour), End: midnight.Add(day), Label: "tonight"}

	case HorizonTomorrow:
		w := TimeWindow{Start: midnight.Add(day), End: midnight.Add(2 * day), Label: "tomorrow"}
		w = narrow(w, e.TimeOfDay)
		if e.TimeOfDay != TimeOfDayNone {
			w.Label = "tomorrow " + string(e.TimeOfDay)
		}
		return w

	case HorizonWeekend:
		start := midnight
		switch now.Weekday() {
		case time.Saturday:
			// already inside the weekend
		case time.Sunday:
			start = midnight.Add(-day)
		default:
			start = midnight.Add(time.Duration(time.Saturday-now.Weekday()) * day)
		}
		return TimeWindow{Start: start, End: start.Add(2 * day), Label: "this weekend"}

	case HorizonWeekday:
		delta := (int(e.Weekday) - int(now.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		start := midnight.Add(time.Duration(delta) * day)
		w := TimeWindow{Start: start, End: start.Add(day), Label: fmt.Sprintf("on %s", e.Weekday)}
		return narrow(w, e.TimeOfDay)

	case HorizonNext3Days:
		return TimeWindow{Start: midnight, End: midnight.Add(3 * day), Label: "the next 3 days"}

	case HorizonWeek:
		return TimeWindow{Start: midnight, End: midnight.Add(7 * day), Label: "this week"}
	}

	return TimeWindow{Start: now, End: now.Add(time.Hour), Label: "right now"}
}

// narrow restricts a single-day window to a time-of-day bucket.
func narrow(w TimeWindow, tod TimeOfDay) TimeWindow {
	startHour, endHour, ok := todHours(tod)
	if !ok {
		return w
	}
	base := w.Start
	w.Start = base.Add(time.Duration(startHour) * time.Hour)
	w.End = base.Add(time.Duration(endHour) * time.Hour)
	return w
}
