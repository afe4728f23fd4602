// Package grid defines the in-memory grid shapes shared by every index
// algorithm: daily time series grids, annual result grids, and the
// combined multi-model dataset.
package grid

import (
	"fmt"
	"math"
	"time"
)

// NoDataValue is the integer sentinel written into count-valued outputs
// at cells that are permanently outside the variable's valid domain.
// Float-valued outputs use NaN instead.
const NoDataValue = -9999

// TimeSeries is a daily gridded time series for a single (model,
// scenario, variable) combination. Values are stored time-major: the
// value for time step t at cell c is Values[t*NCells()+c], where
// c = latIdx*len(Lons)+lonIdx.
//
// NoData marks cells that are permanently outside the variable's valid
// domain (ocean cells for a land variable, and so on). The mask is
// geography, not transient missingness: it applies identically to
// every time step.
type TimeSeries struct {
	Times    []time.Time
	Lats     []float64
	Lons     []float64
	Values   []float64
	NoData   []bool
	Unit     string
	Variable string

	// Aux carries incidental per-cell coordinate fields attached to the
	// source data (elevation, land fraction). The normalizer strips
	// these; they never appear on an AnnualGrid.
	Aux map[string][]float64
}

// NCells returns the number of spatial cells in one time slice.
func (ts *TimeSeries) NCells() int {
	return len(ts.Lats) * len(ts.Lons)
}

// At returns the value at time step t and flat cell index c.
func (ts *TimeSeries) At(t, c int) float64 {
	return ts.Values[t*ts.NCells()+c]
}

// Validate checks the internal consistency of the series: value length
// must match times × cells, the mask must cover exactly one time
// slice, and the time axis must be strictly increasing.
func (ts *TimeSeries) Validate() error {
	ncells := ts.NCells()
	if ncells == 0 {
		return fmt.Errorf("time series has an empty spatial grid")
	}
	if len(ts.Values) != len(ts.Times)*ncells {
		return fmt.Errorf("value count %d does not match %d time steps x %d cells",
			len(ts.Values), len(ts.Times), ncells)
	}
	if len(ts.NoData) != ncells {
		return fmt.Errorf("nodata mask covers %d cells, grid has %d", len(ts.NoData), ncells)
	}
	for i := 1; i < len(ts.Times); i++ {
		if !ts.Times[i].After(ts.Times[i-1]) {
			return fmt.Errorf("time axis not strictly increasing at step %d (%s)",
				i, ts.Times[i].Format("2006-01-02"))
		}
	}
	for name, field := range ts.Aux {
		if len(field) != ncells {
			return fmt.Errorf("auxiliary field %q covers %d cells, grid has %d", name, len(field), ncells)
		}
	}
	return nil
}

// YearSegment is a contiguous [Start,End) range of time-step indices
// all falling in the same calendar year.
type YearSegment struct {
	Year  int
	Start int
	End   int
}

// Days returns the number of daily steps in the segment.
func (s YearSegment) Days() int { return s.End - s.Start }

// YearSegments groups the time axis by calendar year. Grouping follows
// the calendar embedded in the time axis, so leap years and shortened
// model calendars fall out naturally; nothing assumes 365 days.
func (ts *TimeSeries) YearSegments() []YearSegment {
	var segs []YearSegment
	for i := 0; i < len(ts.Times); i++ {
		y := ts.Times[i].Year()
		if len(segs) == 0 || segs[len(segs)-1].Year != y {
			segs = append(segs, YearSegment{Year: y, Start: i})
		}
		segs[len(segs)-1].End = i + 1
	}
	return segs
}

// AnnualGrid holds one annual value per grid cell for a computed
// index. Values are stored year-major, mirroring the TimeSeries
// layout: Values[y*len(Lats)*len(Lons)+c].
type AnnualGrid struct {
	Years  []int
	Lats   []float64
	Lons   []float64
	Values []float64
	NoData []bool

	Index    string
	Unit     string
	Model    string
	Scenario string

	// Counts marks outputs whose natural representation is an integer
	// (day counts, run lengths). These carry the NoDataValue sentinel
	// at masked cells; float outputs carry NaN.
	Counts bool
}

// NCells returns the number of spatial cells in one year slice.
func (g *AnnualGrid) NCells() int {
	return len(g.Lats) * len(g.Lons)
}

// At returns the value for year index y at flat cell index c.
func (g *AnnualGrid) At(y, c int) float64 {
	return g.Values[y*g.NCells()+c]
}

// IsNoData reports whether v is the sentinel for the grid's
// representation.
func (g *AnnualGrid) IsNoData(v float64) bool {
	if g.Counts {
		return v == NoDataValue
	}
	return math.IsNaN(v)
}

// sameAxis reports whether two coordinate vectors are identical.
func sameAxis(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
