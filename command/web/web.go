package web

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"linear-stats/connectors/config"
	"linear-stats/connectors/sqlite"
)

// Run starts a small Echo web server exposing the metrics store as JSON APIs.
//
// Usage:
//
//	linear-stats web [-addr :8080] [-db db/metrics.db]
//
// Endpoints:
//
//	GET /api/stats/monthly     -> month+team rollups
//	GET /api/stats/performers  -> month+team+assignee rollups
//	GET /api/issues            -> persisted per-issue metrics
func Run(args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addr := fs.String("addr", "", "http listen address (host:port)")
	dbPath := fs.String("db", "", "path to the SQLite metrics database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadOptional()
	listen := config.Resolve(*addr, cfg.Addr, config.DefaultAddr)
	db := config.Resolve(*dbPath, cfg.DB, config.DefaultDB)

	store, err := sqlite.Open(db)
	if err != nil {
		slog.Error("web.store.open.error", "db", db, "error", err)
		return err
	}
	defer store.Close()

	e := echo.New()
	e.HideBanner = true

	// Helper to register a GET endpoint serving one store query
	serveQuery := func(route string, query func() (any, error)) {
		e.GET(route, func(c echo.Context) error {
			res, err := query()
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]any{
					"error":   err.Error(),
					"message": "failed to query metrics store",
				})
			}
			return c.JSON(http.StatusOK, res)
		})
	}

	serveQuery("/api/stats/monthly", func() (any, error) { return store.MonthlyStats() })
	serveQuery("/api/stats/performers", func() (any, error) { return store.MonthlyPerformerStats() })
	serveQuery("/api/issues", func() (any, error) { return store.ListIssues() })

	slog.Info("web.start", "addr", listen, "db", db)
	return e.Start(listen)
}
