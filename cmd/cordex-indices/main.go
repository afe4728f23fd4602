package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/frostline/cordex-indices/internal/app"
	"github.com/frostline/cordex-indices/internal/log"
	"github.com/frostline/cordex-indices/internal/store"
	"github.com/frostline/cordex-indices/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration (built-in defaults when empty)")
	dbPath := flag.String("db", "", "Path to SQLite results database (overrides config)")
	workers := flag.Int("workers", 0, "Parallel worker count (overrides config)")
	histStart := flag.Int("hist-start", 1976, "First year of the synthetic historical period")
	histEnd := flag.Int("hist-end", 2005, "Last year of the synthetic historical period")
	projStart := flag.Int("proj-start", 2006, "First year of the synthetic projection period")
	projEnd := flag.Int("proj-end", 2035, "Last year of the synthetic projection period")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cordex-indices %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	db, err := sql.Open("sqlite", cfg.Database)
	if err != nil {
		log.Errorf("Failed to open results database %s: %v", cfg.Database, err)
		os.Exit(1)
	}
	defer db.Close()
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Errorf("Failed to migrate results database: %v", err)
		os.Exit(1)
	}

	// The gridded-archive reader is an external collaborator; this
	// binary ships a deterministic synthetic source so full runs can
	// be exercised without it.
	source := &app.SyntheticSource{
		Lats:    axis(54.0, 0.5, 40),
		Lons:    axis(-170.0, 0.5, 70),
		Periods: periods(cfg, *histStart, *histEnd, *projStart, *projEnd),
	}
	log.Infof("using synthetic grid source (%d x %d cells)", len(source.Lats), len(source.Lons))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, log.GetSugaredLogger(), source, st)
	if err := application.Run(ctx); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.Config, error) {
	if cfgFile == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewYAMLProvider(cfgFile).LoadConfig()
}

// axis builds a regularly spaced coordinate vector.
func axis(start, step float64, n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	return vals
}

// periods maps the baseline scenario to the historical period and
// every other scenario to the projection period.
func periods(cfg *config.Config, histStart, histEnd, projStart, projEnd int) map[string]app.Period {
	p := make(map[string]app.Period, len(cfg.Scenarios))
	for _, s := range cfg.Scenarios {
		if s == cfg.BaselineScenario {
			p[s] = app.Period{StartYear: histStart, EndYear: histEnd}
		} else {
			p[s] = app.Period{StartYear: projStart, EndYear: projEnd}
		}
	}
	return p
}
