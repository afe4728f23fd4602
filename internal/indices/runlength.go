package indices

import (
	"github.com/frostline/cordex-indices/internal/grid"
)

// longestRun computes, per year and per cell, the length of the
// longest maximal run of consecutive days whose value lies strictly
// above (or below) a threshold given in its natural unit. Runs never
// cross a year boundary: each year is scanned independently, matching
// an annual resample rather than a rolling window. A year with no
// qualifying day yields 0.
func longestRun(ts *grid.TimeSeries, threshold float64, unit string, above bool) (*grid.AnnualGrid, error) {
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
			longest, run := 0, 0
			for t := seg.Start; t < seg.End; t++ {
				v := ts.At(t, c)
				if (above && v > thr) || (!above && v < thr) {
					run++
					if run > longest {
						longest = run
					}
				} else {
					run = 0
				}
			}
			out.Values[yi*ncells+c] = float64(longest)
		}
	}
	return out, nil
}
