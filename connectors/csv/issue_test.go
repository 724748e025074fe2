package csv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ccsv "linear-stats/connectors/csv"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `ID,Title,Assignee,Team,State,Created,Started,Completed
LIN-1,Fix login,alice,Platform,Done,2024-05-06T09:00:00Z,2024-05-06T10:00:00Z,2024-05-06T15:00:00Z
LIN-2,Never started,bob,Platform,Todo,2024-05-06T09:00:00Z,,2024-05-06T15:00:00Z
LIN-3,Still open,bob,Platform,In Progress,2024-05-06T09:00:00Z,2024-05-06T10:00:00Z,
LIN-4,,,,Done,,2024-05-06T11:00:00Z,2024-05-06T13:00:00Z
`)

	issues, err := ccsv.Load(path)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, "LIN-1", first.ID)
	assert.Equal(t, "Fix login", first.Title)
	assert.Equal(t, "alice", first.Assignee)
	assert.Equal(t, "Platform", first.Team)
	assert.Equal(t, "Done", first.State)
	assert.False(t, first.Created.IsZero())
	assert.InDelta(t, 5.0, first.DurationHours, 1e-9)
	assert.False(t, first.InProgress)

	// empty optional fields get defaults, missing created stays zero
	second := issues[1]
	assert.Equal(t, "LIN-4", second.ID)
	assert.Equal(t, "(No title)", second.Title)
	assert.Equal(t, "Unassigned", second.Assignee)
	assert.Equal(t, "", second.Team)
	assert.True(t, second.Created.IsZero())
	assert.InDelta(t, 2.0, second.DurationHours, 1e-9)
}

func TestLoad_RaggedRowsAndHeaderCase(t *testing.T) {
	path := writeCSV(t, `id,title,assignee,team,state,created,started,completed
LIN-1,Short row only
LIN-2,Full row,alice,Platform,Done,2024-05-06T09:00:00Z,2024-05-06T10:00:00Z,2024-05-06T12:00:00Z
`)

	issues, err := ccsv.Load(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "LIN-2", issues[0].ID)
}

func TestLoad_FallbackTimestampLayouts(t *testing.T) {
	path := writeCSV(t, `ID,Title,Assignee,Team,State,Created,Started,Completed
LIN-1,Spaced timestamps,alice,Platform,Done,2024-05-06 08:00:00,2024-05-06 10:00:00,2024-05-06 14:00:00
`)

	issues, err := ccsv.Load(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.InDelta(t, 4.0, issues[0].DurationHours, 1e-9)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, `ID,Title,Assignee,Team,State,Created,Completed
LIN-1,No started column,alice,Platform,Done,2024-05-06T09:00:00Z,2024-05-06T15:00:00Z
`)

	_, err := ccsv.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column started")
}

func TestLoad_EmptyFileBeyondHeader(t *testing.T) {
	path := writeCSV(t, "ID,Title,Assignee,Team,State,Created,Started,Completed\n")

	issues, err := ccsv.Load(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := ccsv.Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
