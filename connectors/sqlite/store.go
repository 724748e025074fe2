package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"linear-stats/domain/issue"
)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	id TEXT PRIMARY KEY,
	title TEXT,
	assignee TEXT,
	team TEXT,
	state TEXT,
	created_at TEXT,
	started_at TEXT,
	completed_at TEXT,
	duration_hours REAL,
	cycle_time_hours REAL,
	lead_time_hours REAL,
	month TEXT
);`

// Store is the embedded metrics database. Callers open it explicitly and
// close it when done; nothing is initialized as an import side effect.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures the
// issues table exists. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating issues table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveIssues upserts one row per metrics record, keyed by issue id, inside a
// single transaction. Re-importing an id overwrites the prior row.
func (s *Store) SaveIssues(metrics []issue.Metrics) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO issues (
			id, title, assignee, team, state,
			created_at, started_at, completed_at,
			duration_hours, cycle_time_hours, lead_time_hours, month
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, m := range metrics {
		if _, err := stmt.Exec(
			m.ID, m.Title, m.Assignee, m.Team, m.State,
			formatTime(m.Created), formatTime(m.Started), formatTime(m.Completed),
			m.DurationHours, m.CycleTimeHours, m.LeadTimeHours, m.Month,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("saving issue %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// MonthlyStat is one month+team rollup row.
type MonthlyStat struct {
	Month        string  `json:"month"`
	Team         string  `json:"team"`
	IssuesDone   int     `json:"issues_done"`
	AvgCycleTime float64 `json:"avg_cycle_time"`
	AvgLeadTime  float64 `json:"avg_lead_time"`
}

// PerformerStat is one month+team+assignee rollup row.
type PerformerStat struct {
	Month        string  `json:"month"`
	Team         string  `json:"team"`
	Assignee     string  `json:"assignee"`
	IssuesDone   int     `json:"issues_done"`
	AvgCycleTime float64 `json:"avg_cycle_time"`
	AvgLeadTime  float64 `json:"avg_lead_time"`
}

// MonthlyStats returns the month+team rollups, averages rounded to 2
// decimals, newest month first.
func (s *Store) MonthlyStats() ([]MonthlyStat, error) {
	rows, err := s.db.Query(`
		SELECT month, team,
		       COUNT(*) AS issues_done,
		       ROUND(AVG(cycle_time_hours), 2) AS avg_cycle_time,
		       ROUND(AVG(lead_time_hours), 2) AS avg_lead_time
		FROM issues
		WHERE completed_at != ''
		GROUP BY month, team
		ORDER BY month DESC, team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []MonthlyStat
	for rows.Next() {
		var st MonthlyStat
		if err := rows.Scan(&st.Month, &st.Team, &st.IssuesDone, &st.AvgCycleTime, &st.AvgLeadTime); err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

// MonthlyPerformerStats returns the month+team+assignee rollups, averages
// rounded to 2 decimals, newest month first.
func (s *Store) MonthlyPerformerStats() ([]PerformerStat, error) {
	rows, err := s.db.Query(`
		SELECT month, team, assignee,
		       COUNT(*) AS issues_done,
		       ROUND(AVG(cycle_time_hours), 2) AS avg_cycle_time,
		       ROUND(AVG(lead_time_hours), 2) AS avg_lead_time
		FROM issues
		WHERE completed_at != ''
		GROUP BY month, team, assignee
		ORDER BY month DESC, team, assignee`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []PerformerStat
	for rows.Next() {
		var st PerformerStat
		if err := rows.Scan(&st.Month, &st.Team, &st.Assignee, &st.IssuesDone, &st.AvgCycleTime, &st.AvgLeadTime); err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

// IssueRow mirrors one persisted issues row as served by the web API.
type IssueRow struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Assignee       string  `json:"assignee"`
	Team           string  `json:"team"`
	State          string  `json:"state"`
	Month          string  `json:"month"`
	CompletedAt    string  `json:"completed_at"`
	DurationHours  float64 `json:"duration_hours"`
	CycleTimeHours float64 `json:"cycle_time_hours"`
	LeadTimeHours  float64 `json:"lead_time_hours"`
}

// ListIssues returns all persisted issue metrics, newest month first, longest
// duration first within a month.
func (s *Store) ListIssues() ([]IssueRow, error) {
	rows, err := s.db.Query(`
		SELECT id, title, assignee, team, state, month, completed_at,
		       duration_hours, cycle_time_hours, lead_time_hours
		FROM issues
		ORDER BY month DESC, duration_hours DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []IssueRow
	for rows.Next() {
		var ir IssueRow
		if err := rows.Scan(&ir.ID, &ir.Title, &ir.Assignee, &ir.Team, &ir.State, &ir.Month,
			&ir.CompletedAt, &ir.DurationHours, &ir.CycleTimeHours, &ir.LeadTimeHours); err != nil {
			return nil, err
		}
		res = append(res, ir)
	}
	return res, rows.Err()
}
