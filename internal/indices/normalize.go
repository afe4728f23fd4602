package indices

import (
	"math"

	"github.com/frostline/cordex-indices/internal/grid"
)

// normalize finalizes a raw annual grid: it re-derives the nodata mask
// from the source series and writes the proper sentinel into every
// year slice, tags the result with its index, unit, model and
// scenario, and leaves the axes in (year, lat, lon) order with plain
// integer years. Auxiliary per-cell fields on the source (elevation
// and the like) are deliberately not carried over.
//
// The mask is re-derived rather than trusted: statistical routines
// differ in what they leave behind at invalid cells (zero fill, NaN,
// or stale values), so the source grid is the only authority on which
// cells are outside the domain.
func normalize(raw *grid.AnnualGrid, src *grid.TimeSeries, def Definition, model, scenario string) *grid.AnnualGrid {
	raw.Index = def.Name
	raw.Unit = def.Unit
	raw.Model = model
	raw.Scenario = scenario
	raw.Counts = def.Counts

	ncells := src.NCells()
	mask := make([]bool, ncells)
	for c := 0; c < ncells; c++ {
		mask[c] = src.NoData[c] || math.IsNaN(src.At(0, c))
	}
	raw.NoData = mask

	sentinel := math.NaN()
	if raw.Counts {
		sentinel = grid.NoDataValue
	}
	for y := range raw.Years {
		for c := 0; c < ncells; c++ {
			if mask[c] {
				raw.Values[y*ncells+c] = sentinel
			}
		}
	}
	return raw
}
