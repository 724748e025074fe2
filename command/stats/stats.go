package stats

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"linear-stats/connectors/config"
	"linear-stats/connectors/sqlite"
)

// Run executes the stats subcommand: print the persisted month+team and
// month+team+assignee rollups from the metrics store.
func Run(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dbPath := fs.String("db", "", "path to the SQLite metrics database (default: config, then db/metrics.db)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadOptional()
	db := config.Resolve(*dbPath, cfg.DB, config.DefaultDB)

	store, err := sqlite.Open(db)
	if err != nil {
		slog.Error("stats.store.open.error", "db", db, "error", err)
		return err
	}
	defer store.Close()

	monthly, err := store.MonthlyStats()
	if err != nil {
		return err
	}
	performers, err := store.MonthlyPerformerStats()
	if err != nil {
		return err
	}

	if len(monthly) == 0 {
		fmt.Println("No persisted metrics found. Run the import command first.")
		return nil
	}

	fmt.Println("## Monthly Team Stats")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tTEAM\tDONE\tAVG CYCLE\tAVG LEAD")
	for _, st := range monthly {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fh\t%.2fh\n", st.Month, st.Team, st.IssuesDone, st.AvgCycleTime, st.AvgLeadTime)
	}
	w.Flush()

	fmt.Println("\n## Monthly Performer Stats")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tTEAM\tASSIGNEE\tDONE\tAVG CYCLE\tAVG LEAD")
	for _, st := range performers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fh\t%.2fh\n", st.Month, st.Team, st.Assignee, st.IssuesDone, st.AvgCycleTime, st.AvgLeadTime)
	}
	w.Flush()

	slog.Info("stats.done", "monthly", len(monthly), "performers", len(performers))
	return nil
}
