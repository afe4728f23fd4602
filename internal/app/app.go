// Package app drives the index computation across every configured
// (model, scenario, variable) combination, persisting results as it
// goes. Each combination is independent: failures are logged per
// tuple and never abort the rest of the run.
package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/frostline/cordex-indices/internal/grid"
	"github.com/frostline/cordex-indices/internal/indices"
	"github.com/frostline/cordex-indices/internal/store"
	"github.com/frostline/cordex-indices/pkg/config"
)

// GridSource supplies daily gridded time series. Reading gridded
// archives is not this program's concern; anything that can produce a
// TimeSeries for a (model, scenario, variable) tuple can drive the
// engine.
type GridSource interface {
	Load(ctx context.Context, model, scenario, variable string) (*grid.TimeSeries, error)
}

// App owns one driver invocation.
type App struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	source GridSource
	store  *store.Store
}

// New creates the application with its collaborators.
func New(cfg *config.Config, logger *zap.SugaredLogger, source GridSource, st *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		source: source,
		store:  st,
	}
}

// Run computes every configured index for every (model, scenario,
// variable) combination. Combinations are processed by a bounded pool
// of workers; each worker holds only its own combination's grids in
// memory and releases them before picking up the next.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	if err := a.store.CreateRun(runID, "annual extreme index computation"); err != nil {
		return err
	}
	start := time.Now()
	a.logger.Infof("run %s: %d models x %d scenarios x %d variables, %d workers",
		runID, len(a.cfg.Models), len(a.cfg.Scenarios), len(a.cfg.Variables), a.cfg.Workers)

	var computed, failed atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.cfg.Workers)
	for _, model := range a.cfg.Models {
		for _, scenario := range a.cfg.Scenarios {
			for _, variable := range a.cfg.Variables {
				if len(a.cfg.IndicesFor(variable)) == 0 {
					continue
				}
				model, scenario, variable := model, scenario, variable
				eg.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					ok, bad := a.processCombination(ctx, runID, model, scenario, variable)
					computed.Add(int64(ok))
					failed.Add(int64(bad))
					return nil
				})
			}
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if err := a.store.FinishRun(runID); err != nil {
		return err
	}
	a.logger.Infof("run %s finished in %s: %d grids computed, %d failed",
		runID, time.Since(start).Round(time.Second), computed.Load(), failed.Load())
	return nil
}

// processCombination computes all indices mapped to one variable for
// one model and scenario, returning how many succeeded and failed.
func (a *App) processCombination(ctx context.Context, runID, model, scenario, variable string) (ok, failed int) {
	names := a.cfg.IndicesFor(variable)

	ts, err := a.source.Load(ctx, model, scenario, variable)
	if err != nil {
		a.logger.Errorf("loading %s/%s/%s: %v", model, scenario, variable, err)
		return 0, len(names)
	}

	// Loaded lazily: only the percentile-based indices need it, and
	// only once per combination.
	var baseline *grid.TimeSeries

	for _, name := range names {
		def, found := indices.Lookup(name)
		if !found {
			a.logger.Errorf("index %q configured for %s but not registered", name, variable)
			failed++
			continue
		}

		req := indices.Request{Grid: ts, Model: model, Scenario: scenario}
		if def.NeedsBaseline {
			if baseline == nil {
				baseline, err = a.source.Load(ctx, model, a.cfg.BaselineScenario, variable)
				if err != nil {
					a.logger.Errorf("loading baseline %s/%s/%s: %v",
						model, a.cfg.BaselineScenario, variable, err)
					failed++
					continue
				}
			}
			req.Baseline = baseline
		}

		annual, err := indices.ComputeIndex(name, req)
		if err != nil {
			a.logger.Errorf("computing %s for %s/%s: %v", name, model, scenario, err)
			failed++
			continue
		}

		if err := a.store.SaveIndexGrid(runID, annual); err != nil {
			a.logger.Errorf("saving %s for %s/%s: %v", name, model, scenario, err)
			failed++
			continue
		}
		if len(a.cfg.Locations) > 0 {
			pvs := ExtractPoints(annual, a.cfg.Locations)
			if err := a.store.SavePointValues(runID, pvs); err != nil {
				a.logger.Errorf("saving point values for %s %s/%s: %v", name, model, scenario, err)
			}
		}

		a.logger.Debugf("computed %s for %s/%s (%d years)", name, model, scenario, len(annual.Years))
		ok++
	}
	return ok, failed
}
