package issue

import (
	"fmt"
	"math"
	"time"

	"linear-stats/domain/calendar"
)

// HoursPerDay is the display convention used by FormatDaysHours: a day shown
// to the reader is 8 worked hours. This is independent of the 09:00-17:00
// window the duration math runs on.
const HoursPerDay = 8

// Issue is one ticket from a Linear export. Started and Completed are always
// valid once an issue comes out of the loader; Created may be the zero time
// when the export omitted it.
type Issue struct {
	ID            string
	Title         string
	Assignee      string
	Team          string
	State         string
	Created       time.Time
	Started       time.Time
	Completed     time.Time
	DurationHours float64
	InProgress    bool
}

// Metrics is the derived per-ticket record. Computed once, never mutated.
type Metrics struct {
	Issue
	CycleTimeHours float64
	LeadTimeHours  float64
	Month          string
}

// CycleTime returns the business hours from when work started to completion.
func CycleTime(is Issue) float64 {
	if is.Started.IsZero() || is.Completed.IsZero() {
		return 0
	}
	return calendar.WorkingHoursBetween(is.Started, is.Completed)
}

// LeadTime returns the business hours from ticket creation to completion.
// Issues without a creation timestamp yield 0.
func LeadTime(is Issue) float64 {
	if is.Created.IsZero() || is.Completed.IsZero() {
		return 0
	}
	return calendar.WorkingHoursBetween(is.Created, is.Completed)
}

// ComputeMetrics derives the metrics record for a single issue. DurationHours
// is the cycle time; Month buckets the issue by its completion date.
func ComputeMetrics(is Issue) Metrics {
	cycle := calendar.WorkingHoursBetween(is.Started, is.Completed)
	lead := calendar.WorkingHoursBetween(is.Created, is.Completed)

	m := Metrics{
		Issue:          is,
		CycleTimeHours: cycle,
		LeadTimeHours:  lead,
		Month:          is.Completed.Format("2006-01"),
	}
	m.DurationHours = cycle
	return m
}

// FormatDaysHours renders a working-hours figure as "<days>d <hours>h" using
// the 8-hour display day, e.g. 20 -> "2d 4.00h". Negative or NaN input
// returns "Invalid input"; upstream only produces non-negative values.
func FormatDaysHours(hours float64) string {
	if math.IsNaN(hours) || hours < 0 {
		return "Invalid input"
	}
	days := int(math.Floor(hours / HoursPerDay))
	leftover := math.Mod(hours, HoursPerDay)
	return fmt.Sprintf("%dd %.2fh", days, leftover)
}
