package issue_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linear-stats/domain/issue"
)

func monday(hour int) time.Time {
	return time.Date(2024, time.May, 6, hour, 0, 0, 0, time.UTC)
}

func TestComputeMetrics(t *testing.T) {
	is := issue.Issue{
		ID:        "LIN-1",
		Title:     "Fix login",
		Assignee:  "alice",
		Team:      "Platform",
		Created:   monday(9),
		Started:   monday(10),
		Completed: monday(15),
	}

	m := issue.ComputeMetrics(is)

	assert.InDelta(t, 5.0, m.CycleTimeHours, 1e-9)
	assert.InDelta(t, 6.0, m.LeadTimeHours, 1e-9)
	assert.InDelta(t, 5.0, m.DurationHours, 1e-9)
	assert.Equal(t, "2024-05", m.Month)
	assert.Equal(t, "LIN-1", m.ID)
}

func TestComputeMetrics_MissingCreated(t *testing.T) {
	is := issue.Issue{ID: "LIN-2", Started: monday(10), Completed: monday(15)}

	m := issue.ComputeMetrics(is)

	assert.InDelta(t, 5.0, m.CycleTimeHours, 1e-9)
	assert.Zero(t, m.LeadTimeHours)
}

func TestCycleTimeAndLeadTime(t *testing.T) {
	full := issue.Issue{Created: monday(9), Started: monday(11), Completed: monday(16)}
	assert.InDelta(t, 5.0, issue.CycleTime(full), 1e-9)
	assert.InDelta(t, 7.0, issue.LeadTime(full), 1e-9)

	noCreated := issue.Issue{Started: monday(11), Completed: monday(16)}
	assert.Zero(t, issue.LeadTime(noCreated))

	noStarted := issue.Issue{Completed: monday(16)}
	assert.Zero(t, issue.CycleTime(noStarted))
}

func TestFormatDaysHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  string
	}{
		{"zero", 0, "0d 0.00h"},
		{"exactly one day", 8, "1d 0.00h"},
		{"two and a half days", 20, "2d 4.00h"},
		{"fractional leftover", 12.5, "1d 4.50h"},
		{"under a day", 3.25, "0d 3.25h"},
		{"negative", -1, "Invalid input"},
		{"not a number", math.NaN(), "Invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, issue.FormatDaysHours(tt.hours))
		})
	}
}
