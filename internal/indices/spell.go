package indices

import (
	"fmt"
	"math"

	"github.com/frostline/cordex-indices/internal/grid"
)

// spellDays computes, per year and per cell, the total number of days
// belonging to a qualifying spell: a maximal run of at least minRun
// consecutive days strictly above (warm) or strictly below (cold) the
// day-of-year percentile baseline. Years are scanned independently, so
// a run straddling a year boundary contributes days only to the years
// it actually falls in, and must reach minRun within each year to
// qualify there.
//
// Days whose calendar slot has no defined baseline never qualify and
// break any run in progress. If no day of the whole target series has
// a defined baseline, the historical period had zero calendar overlap
// and the computation fails rather than returning all zeros.
func spellDays(ts *grid.TimeSeries, cl *Climatology, above bool, minRun int) (*grid.AnnualGrid, error) {
	if cl.ncells != ts.NCells() {
		return nil, fmt.Errorf("%w: baseline has %d cells, target grid has %d",
			grid.ErrGridMismatch, cl.ncells, ts.NCells())
	}

	covered := false
	for _, tm := range ts.Times {
		if cl.Defined(calendarDay(tm)) {
			covered = true
			break
		}
	}
	if !covered {
		return nil, fmt.Errorf("%w: historical period shares no calendar days with the target period",
			ErrBaselineUnavailable)
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
			total, run := 0, 0
			flush := func() {
				if run >= minRun {
					total += run
				}
				run = 0
			}
			for t := seg.Start; t < seg.End; t++ {
				base := cl.At(calendarDay(ts.Times[t]), c)
				if math.IsNaN(base) {
					flush()
					continue
				}
				v := ts.At(t, c)
				if (above && v > base) || (!above && v < base) {
					run++
				} else {
					flush()
				}
			}
			flush()
			out.Values[yi*ncells+c] = float64(total)
		}
	}
	return out, nil
}
