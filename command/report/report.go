package report

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	lo "github.com/samber/lo"

	"linear-stats/connectors/config"
	ccsv "linear-stats/connectors/csv"
	"linear-stats/domain/issue"
	"linear-stats/domain/summary"
)

// Run executes the report subcommand: load the CSV export, compute per-ticket
// metrics and print the summary to stdout.
func Run(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	csvPath := fs.String("csv", "", "path to the Linear CSV export (default: config, then linear-export.csv)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadOptional()
	in := config.Resolve(*csvPath, cfg.CSV, config.DefaultCSV)

	issues, err := ccsv.Load(in)
	if err != nil {
		slog.Error("report.load.error", "csv", in, "error", err)
		return err
	}

	if len(issues) == 0 {
		fmt.Println("No completed tickets found.")
		return nil
	}

	metrics := lo.Map(issues, func(is issue.Issue, _ int) issue.Metrics { return issue.ComputeMetrics(is) })
	sum := summary.Aggregate(metrics)

	fmt.Println("## Linear Metrics Summary 📊")
	fmt.Println()
	fmt.Println("------------------------")
	fmt.Println()
	fmt.Printf("Tickets solved: %d\n\n", sum.Count)
	fmt.Printf("Average resolution time: %.2fh\n\n", sum.AverageHours)
	fmt.Printf("Median resolution time: %.2fh\n\n", sum.MedianHours)
	fmt.Printf("Shortest: %.2fh | Longest: %.2fh\n\n", sum.MinHours, sum.MaxHours)
	fmt.Printf("Average Lead Time: %.2fh\n\n", sum.AverageLeadTimeHours)
	fmt.Printf("Average Cycle Time: %.2fh\n", sum.AverageCycleTimeHours)

	fmt.Println("\n## Tickets Done 📃")
	fmt.Println("------------------------")
	for i, m := range sum.Ranked {
		fmt.Printf("%d. %s — (%s) (%s)\n", i+1, m.Title, issue.FormatDaysHours(m.DurationHours), m.Assignee)
	}

	fmt.Println("\n## Highest Contributors ⭐️")
	fmt.Println("------------------------")
	for i, c := range sum.Contributions {
		fmt.Printf("%d. %s %d\n", i+1, c.Assignee, c.Count)
	}

	slog.Info("report.done", "count", sum.Count)
	return nil
}
