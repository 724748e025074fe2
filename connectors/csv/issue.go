package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linear-stats/domain/calendar"
	"linear-stats/domain/issue"
)

// timeLayouts are tried in order when normalizing export timestamps. Linear
// writes ISO 8601; the fallbacks cover hand-edited files.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Load reads a Linear CSV export and returns the completed issues. Rows
// without a parseable Started or Completed timestamp are dropped; Created is
// optional and left as the zero time when missing. Column lookup is by
// header name, case-insensitive, and ragged rows are tolerated.
func Load(path string) ([]issue.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Linear wraps text fields in quotes and occasionally emits short rows.
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", filepath.Base(path), err)
	}
	idx := indexMap(head)
	required := []string{"id", "started", "completed"}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s missing column %s", filepath.Base(path), col)
		}
	}

	var issues []issue.Issue
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				continue
			}
			return nil, err
		}

		started, ok := parseTime(field(rec, idx, "started"))
		if !ok {
			continue
		}
		completed, ok := parseTime(field(rec, idx, "completed"))
		if !ok {
			continue
		}
		created, _ := parseTime(field(rec, idx, "created"))

		issues = append(issues, issue.Issue{
			ID:            field(rec, idx, "id"),
			Title:         defaultString(field(rec, idx, "title"), "(No title)"),
			Assignee:      defaultString(field(rec, idx, "assignee"), "Unassigned"),
			Team:          field(rec, idx, "team"),
			State:         field(rec, idx, "state"),
			Created:       created,
			Started:       started,
			Completed:     completed,
			DurationHours: calendar.WorkingHoursBetween(started, completed),
			InProgress:    false,
		})
	}
	return issues, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return m
}

// field returns the trimmed cell for a named column, or "" when the column is
// absent or the row is too short.
func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
