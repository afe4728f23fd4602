package indices

import (
	"github.com/frostline/cordex-indices/internal/grid"
)

// thresholdCount counts, per year and per cell, the days whose value
// lies strictly above (or strictly below) a threshold. The threshold
// arrives in its natural unit and is converted into the grid's unit
// before comparison; values equal to the threshold never count.
func thresholdCount(ts *grid.TimeSeries, threshold float64, unit string, above bool) (*grid.AnnualGrid, error) {
	thr, err := thresholdInGridUnit(threshold, unit, ts.Unit)
	if err != nil {
		return nil, err
	}

	segs := ts.YearSegments()
	out := newAnnual(ts, segs)
	out.Counts = true
	ncells := ts.NCells()

	for yi, seg := range segs {
		for c := 0; c < ncells; c++ {
			if ts.NoData[c] {
				continue
			}
			n := 0
			for t := seg.Start; t < seg.End; t++ {
				v := ts.At(t, c)
				if (above && v > thr) || (!above && v < thr) {
					n++
				}
			}
			out.Values[yi*ncells+c] = float64(n)
		}
	}
	return out, nil
}
