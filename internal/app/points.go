package app

import (
	"math"

	"github.com/frostline/cordex-indices/internal/grid"
	"github.com/frostline/cordex-indices/internal/store"
	"github.com/frostline/cordex-indices/pkg/config"
)

// nearestIndex returns the index of the axis value closest to v.
func nearestIndex(axis []float64, v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, a := range axis {
		if d := math.Abs(a - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ExtractPoints pulls the annual series at the grid cell nearest each
// configured location. Locations falling on nodata cells, and years
// carrying the nodata sentinel, are omitted rather than stored.
func ExtractPoints(g *grid.AnnualGrid, locations map[string]config.Location) []store.PointValue {
	ncells := g.NCells()
	var out []store.PointValue
	for name, loc := range locations {
		i := nearestIndex(g.Lats, loc.Lat)
		j := nearestIndex(g.Lons, loc.Lon)
		c := i*len(g.Lons) + j
		if g.NoData[c] {
			continue
		}
		for yi, year := range g.Years {
			v := g.Values[yi*ncells+c]
			if g.IsNoData(v) {
				continue
			}
			out = append(out, store.PointValue{
				Location: name,
				Index:    g.Index,
				Model:    g.Model,
				Scenario: g.Scenario,
				Year:     year,
				Value:    v,
			})
		}
	}
	return out
}
