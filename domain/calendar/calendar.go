package calendar

import "time"

// Business window applied on every non-weekend calendar day (24-hour clock).
const (
	WorkStartHour = 9
	WorkEndHour   = 17
)

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// atHour returns t's calendar day at the given hour, with minutes, seconds and
// sub-second precision zeroed. The location is kept as-is.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// WorkingHoursBetween returns the business hours elapsed between start and end:
// only time inside the 09:00-17:00 window on weekdays counts. Fractional hours
// are kept. Zero-value instants and inverted ranges yield 0 rather than an
// error; a genuinely empty span and a malformed one are indistinguishable to
// the caller.
func WorkingHoursBetween(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}

	current := start
	if current.Hour() < WorkStartHour {
		current = atHour(current, WorkStartHour)
	} else if current.Hour() >= WorkEndHour {
		// Past closing: nothing left today, resume next calendar day.
		current = atHour(current.AddDate(0, 0, 1), WorkStartHour)
	}

	if end.Hour() > WorkEndHour {
		end = atHour(end, WorkEndHour)
	} else if end.Hour() < WorkStartHour {
		end = atHour(end, WorkStartHour)
	}

	// Walk one calendar day at a time, summing the overlap of
	// [current, end] with each day's window.
	var total time.Duration
	for current.Before(end) {
		if !IsWeekend(current) {
			intervalStart := current
			if dayStart := atHour(current, WorkStartHour); dayStart.After(current) {
				intervalStart = dayStart
			}
			intervalEnd := end
			if dayEnd := atHour(current, WorkEndHour); dayEnd.Before(end) {
				intervalEnd = dayEnd
			}
			if intervalEnd.After(intervalStart) {
				total += intervalEnd.Sub(intervalStart)
			}
		}
		current = atHour(current.AddDate(0, 0, 1), WorkStartHour)
	}

	return total.Hours()
}
