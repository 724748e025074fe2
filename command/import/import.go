package cmdimport

import (
	"flag"
	"log/slog"
	"os"

	lo "github.com/samber/lo"

	"linear-stats/connectors/config"
	ccsv "linear-stats/connectors/csv"
	"linear-stats/connectors/sqlite"
	"linear-stats/domain/issue"
)

// Run executes the import subcommand: load the CSV export, compute per-ticket
// metrics and upsert them into the SQLite store.
func Run(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	csvPath := fs.String("csv", "", "path to the Linear CSV export (default: config, then linear-export.csv)")
	dbPath := fs.String("db", "", "path to the SQLite metrics database (default: config, then db/metrics.db)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadOptional()
	in := config.Resolve(*csvPath, cfg.CSV, config.DefaultCSV)
	out := config.Resolve(*dbPath, cfg.DB, config.DefaultDB)

	slog.Info("import.start", "csv", in, "db", out)

	issues, err := ccsv.Load(in)
	if err != nil {
		slog.Error("import.load.error", "csv", in, "error", err)
		return err
	}

	metrics := lo.Map(issues, func(is issue.Issue, _ int) issue.Metrics { return issue.ComputeMetrics(is) })

	store, err := sqlite.Open(out)
	if err != nil {
		slog.Error("import.store.open.error", "db", out, "error", err)
		return err
	}
	defer store.Close()

	if err := store.SaveIssues(metrics); err != nil {
		slog.Error("import.store.save.error", "db", out, "error", err)
		return err
	}

	slog.Info("import.done", "count", len(metrics), "db", out)
	return nil
}
