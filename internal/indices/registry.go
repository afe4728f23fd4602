// Package indices implements the annual climate extreme index engine:
// order statistics, threshold counts, run-length extremes, and
// percentile-climatology spell detection over daily gridded model
// output, dispatched through a static registry.
package indices

import (
	"fmt"
	"sort"

	"github.com/frostline/cordex-indices/internal/grid"
)

// Defaults for the percentile-climatology spell detector. The minimum
// run length is 6 days: the nominal WSDI/CSDI definition says five or
// more, but the established implementation counts runs of at least
// six, and existing products depend on that behavior.
const (
	DefaultSpellMinRun = 6
	DefaultClimWindow  = 5
)

// Params carries the per-call tunables of the spell detector. The zero
// value selects the defaults; there is no shared mutable default
// state between calls.
type Params struct {
	// SpellMinRun is the minimum consecutive-day run length for a
	// spell to qualify.
	SpellMinRun int
	// ClimWindow is the centered calendar-day window pooled when
	// building the percentile baseline.
	ClimWindow int
}

func (p Params) withDefaults() Params {
	if p.SpellMinRun == 0 {
		p.SpellMinRun = DefaultSpellMinRun
	}
	if p.ClimWindow == 0 {
		p.ClimWindow = DefaultClimWindow
	}
	return p
}

// Request is the explicit per-call input to ComputeIndex. Baseline is
// only consulted by indices whose Definition declares NeedsBaseline.
type Request struct {
	Grid     *grid.TimeSeries
	Baseline *grid.TimeSeries
	Model    string
	Scenario string
	Params   Params
}

// Definition describes one registered index: the base variable it
// consumes, the unit it emits, and whether it needs a historical
// baseline grid. The driver reads these to validate availability
// before loading any data.
type Definition struct {
	Name          string
	Description   string
	Variable      string
	Unit          string
	Counts        bool
	NeedsBaseline bool

	compute func(Request) (*grid.AnnualGrid, error)
}

// registry is the static mapping from index name to its definition.
// Indices are added here and nowhere else; dispatch never resolves
// names dynamically.
var registry = map[string]Definition{
	"hd": {
		Name:        "hd",
		Description: "hot day: 6th hottest day of the year",
		Variable:    "tasmax",
		Unit:        UnitCelsius,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return orderStatistic(req.Grid, rankFromTop, 6, UnitCelsius)
		},
	},
	"cd": {
		Name:        "cd",
		Description: "cold day: 6th coldest day of the year",
		Variable:    "tasmin",
		Unit:        UnitCelsius,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return orderStatistic(req.Grid, rankFromBottom, 6, UnitCelsius)
		},
	},
	"rx1day": {
		Name:        "rx1day",
		Description: "maximum 1-day precipitation",
		Variable:    "pr",
		Unit:        UnitMM,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return orderStatistic(req.Grid, rankFromTop, 1, UnitMM)
		},
	},
	"rx5day": {
		Name:        "rx5day",
		Description: "maximum consecutive 5-day precipitation",
		Variable:    "pr",
		Unit:        UnitMM,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return rollingSumMax(req.Grid, 5, UnitMM)
		},
	},
	"hsd": {
		Name:        "hsd",
		Description: "heavy snow days: mean snowfall of the 5 snowiest days",
		Variable:    "prsn",
		Unit:        UnitCM,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return orderStatistic(req.Grid, meanOfTopK, 5, UnitCM)
		},
	},
	"su": {
		Name:        "su",
		Description: "summer days: days with daily max temperature above 25 degC",
		Variable:    "tasmax",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return thresholdCount(req.Grid, 25, UnitCelsius, true)
		},
	},
	"dw": {
		Name:        "dw",
		Description: "deep winter days: days with daily min temperature below -30 degC",
		Variable:    "tasmin",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return thresholdCount(req.Grid, -30, UnitCelsius, false)
		},
	},
	"r10mm": {
		Name:        "r10mm",
		Description: "heavy precipitation days: days with precipitation above 10 mm",
		Variable:    "pr",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return thresholdCount(req.Grid, 10, UnitMMDay, true)
		},
	},
	"wndd": {
		Name:        "wndd",
		Description: "windy days: days with daily mean wind speed above 10 m/s",
		Variable:    "sfcWind",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return thresholdCount(req.Grid, 10, UnitMS, true)
		},
	},
	"cwd": {
		Name:        "cwd",
		Description: "consecutive wet days: longest run of days with precipitation above 1 mm",
		Variable:    "pr",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return longestRun(req.Grid, 1, UnitMMDay, true)
		},
	},
	"cdd": {
		Name:        "cdd",
		Description: "consecutive dry days: longest run of days with precipitation below 1 mm",
		Variable:    "pr",
		Unit:        UnitDays,
		Counts:      true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			return longestRun(req.Grid, 1, UnitMMDay, false)
		},
	},
	"wsdi": {
		Name:          "wsdi",
		Description:   "warm spell duration index: days in runs of 6+ days above the 90th percentile baseline",
		Variable:      "tasmax",
		Unit:          UnitDays,
		Counts:        true,
		NeedsBaseline: true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			cl, err := BuildClimatology(req.Baseline, 0.90, req.Params.ClimWindow)
			if err != nil {
				return nil, err
			}
			return spellDays(req.Grid, cl, true, req.Params.SpellMinRun)
		},
	},
	"csdi": {
		Name:          "csdi",
		Description:   "cold spell duration index: days in runs of 6+ days below the 10th percentile baseline",
		Variable:      "tasmin",
		Unit:          UnitDays,
		Counts:        true,
		NeedsBaseline: true,
		compute: func(req Request) (*grid.AnnualGrid, error) {
			cl, err := BuildClimatology(req.Baseline, 0.10, req.Params.ClimWindow)
			if err != nil {
				return nil, err
			}
			return spellDays(req.Grid, cl, false, req.Params.SpellMinRun)
		},
	},
}

// Lookup returns the definition for an index name.
func Lookup(name string) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Names returns every registered index name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComputeIndex dispatches one index computation: it validates the
// request against the registry entry, runs the algorithm, and
// normalizes the result. All validation happens before any computation
// starts, so a failed dispatch performs no partial work.
func ComputeIndex(name string, req Request) (*grid.AnnualGrid, error) {
	def, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndex, name)
	}
	if req.Grid == nil {
		return nil, fmt.Errorf("index %q: no input grid supplied", name)
	}
	if err := req.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("index %q: %w", name, err)
	}
	if req.Grid.Variable != "" && req.Grid.Variable != def.Variable {
		return nil, fmt.Errorf("index %q requires variable %q, grid holds %q",
			name, def.Variable, req.Grid.Variable)
	}
	if def.NeedsBaseline {
		if req.Baseline == nil {
			return nil, fmt.Errorf("%w: index %q requires a historical baseline grid",
				ErrMissingBaseline, name)
		}
		if err := req.Baseline.Validate(); err != nil {
			return nil, fmt.Errorf("index %q baseline: %w", name, err)
		}
	}
	req.Params = req.Params.withDefaults()

	raw, err := def.compute(req)
	if err != nil {
		return nil, fmt.Errorf("index %q: %w", name, err)
	}
	return normalize(raw, req.Grid, def, req.Model, req.Scenario), nil
}
