package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	cmdimport "linear-stats/command/import"
	cmdreport "linear-stats/command/report"
	cmdstats "linear-stats/command/stats"
	cmdweb "linear-stats/command/web"
)

// linear-stats computes business-hours productivity metrics from a Linear
// CSV export.
// Usage:
//   linear-stats report [-csv linear-export.csv]
//   linear-stats import [-csv linear-export.csv] [-db db/metrics.db]
//   linear-stats stats  [-db db/metrics.db]
//   linear-stats web    [-addr :8080] [-db db/metrics.db]
// Notes:
// - Durations count business hours only: 09:00-17:00, Monday to Friday.
// - Tickets without valid Started and Completed timestamps are skipped.

func main() {
	args := os.Args
	// Initialize slog logger (text to stderr)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	// Pick up CONFIG_PATH and friends from a local .env if present
	_ = godotenv.Load()

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		switch sub {
		case "report":
			if err := cmdreport.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "import":
			if err := cmdimport.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "stats":
			if err := cmdstats.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "web":
			if err := cmdweb.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: linear-stats report [-csv <path>] | import [-csv <path>] [-db <path>] | stats [-db <path>] | web [-addr :8080] [-db <path>]\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)")
	os.Exit(2)
}
