package indices

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/frostline/cordex-indices/internal/grid"
)

// Cumulative day counts for a leap year. Every date maps onto a fixed
// 366-slot calendar so that March 1 is day 61 in leap and non-leap
// years alike, keeping day-of-year baselines aligned across years.
var leapCumDays = [12]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}

const calendarDays = 366

// calendarDay returns the 1-based position of t in the fixed 366-slot
// calendar (Feb 29 = 60).
func calendarDay(t time.Time) int {
	return leapCumDays[t.Month()-1] + t.Day()
}

// Climatology is a per-cell, per-calendar-day percentile baseline
// built from a historical reference period. It is read-only once
// built: the spell detector consumes it and discards it.
type Climatology struct {
	Percentile float64
	Window     int

	ncells int
	// values holds one baseline per (calendar day, cell), NaN where the
	// historical period contributed no samples for that slot.
	values []float64
	// defined[d] reports whether calendar day d (1-based) had any
	// pooled historical samples at all.
	defined [calendarDays + 1]bool
}

// Defined reports whether calendar day d (1-based) has a baseline.
func (cl *Climatology) Defined(d int) bool {
	return cl.defined[d]
}

// At returns the baseline for calendar day d (1-based) at flat cell
// index c. NaN means no baseline is defined for that slot.
func (cl *Climatology) At(d, c int) float64 {
	return cl.values[(d-1)*cl.ncells+c]
}

// BuildClimatology computes the pct percentile (0-1) of all historical
// values falling within a centered window of calendar days around each
// day of year, pooled across every year of the historical period,
// independently per grid cell. Feb 29 needs no special casing: its
// window pools the surrounding late-February and early-March days,
// which exist in every year. The window wraps across the year end so
// early-January baselines pool late-December days.
func BuildClimatology(hist *grid.TimeSeries, pct float64, window int) (*Climatology, error) {
	if hist == nil || len(hist.Times) == 0 {
		return nil, fmt.Errorf("%w: historical period is empty", ErrBaselineUnavailable)
	}
	if window < 1 {
		return nil, fmt.Errorf("climatology window must be at least 1 day, got %d", window)
	}

	ncells := hist.NCells()
	cl := &Climatology{
		Percentile: pct,
		Window:     window,
		ncells:     ncells,
		values:     make([]float64, calendarDays*ncells),
	}

	// Bucket time steps by calendar day, then expand each bucket into
	// the pooled window of steps once; the pooling is identical for
	// every cell.
	var buckets [calendarDays + 1][]int
	for t, tm := range hist.Times {
		buckets[calendarDay(tm)] = append(buckets[calendarDay(tm)], t)
	}

	half := window / 2
	pooled := make([][]int, calendarDays+1)
	for d := 1; d <= calendarDays; d++ {
		for off := -half; off <= half; off++ {
			dd := d + off
			if dd < 1 {
				dd += calendarDays
			} else if dd > calendarDays {
				dd -= calendarDays
			}
			pooled[d] = append(pooled[d], buckets[dd]...)
		}
		cl.defined[d] = len(pooled[d]) > 0
	}

	sample := make([]float64, 0, len(hist.Times))
	for c := 0; c < ncells; c++ {
		if hist.NoData[c] {
			for d := 1; d <= calendarDays; d++ {
				cl.values[(d-1)*ncells+c] = math.NaN()
			}
			continue
		}
		for d := 1; d <= calendarDays; d++ {
			steps := pooled[d]
			if len(steps) == 0 {
				cl.values[(d-1)*ncells+c] = math.NaN()
				continue
			}
			sample = sample[:0]
			for _, t := range steps {
				sample = append(sample, hist.At(t, c))
			}
			sort.Float64s(sample)
			cl.values[(d-1)*ncells+c] = stat.Quantile(pct, stat.Empirical, sample, nil)
		}
	}
	return cl, nil
}
