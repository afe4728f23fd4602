package grid

import (
	"errors"
	"fmt"
)

// ErrGridMismatch is returned when annual grids being combined do not
// share an identical spatial grid.
var ErrGridMismatch = errors.New("grid mismatch")

// Dataset is the combination of annual index grids across models and
// scenarios, one entry per (model, scenario, index) triple. Every
// entry shares the same latitude/longitude grid.
type Dataset struct {
	Lats    []float64
	Lons    []float64
	Entries []*AnnualGrid
}

// Combine assembles annual grids into a Dataset, verifying that every
// constituent shares an identical spatial grid. Year axes may differ
// between scenarios (historical runs cover a different period than
// projections), so only the spatial axes are checked.
func Combine(grids []*AnnualGrid) (*Dataset, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("combine: no grids supplied")
	}
	ds := &Dataset{
		Lats: grids[0].Lats,
		Lons: grids[0].Lons,
	}
	for _, g := range grids {
		if !sameAxis(g.Lats, ds.Lats) || !sameAxis(g.Lons, ds.Lons) {
			return nil, fmt.Errorf("%w: %s %s/%s has a %dx%d spatial grid, dataset has %dx%d",
				ErrGridMismatch, g.Index, g.Model, g.Scenario,
				len(g.Lats), len(g.Lons), len(ds.Lats), len(ds.Lons))
		}
		ds.Entries = append(ds.Entries, g)
	}
	return ds, nil
}

// Lookup returns the entry for a (model, scenario, index) triple, or
// nil if the dataset holds no such entry.
func (ds *Dataset) Lookup(model, scenario, index string) *AnnualGrid {
	for _, g := range ds.Entries {
		if g.Model == model && g.Scenario == scenario && g.Index == index {
			return g
		}
	}
	return nil
}
