package indices

import (
	"math"
	"testing"
	"time"

	"github.com/frostline/cordex-indices/internal/grid"
)

// maskedSeries builds a 2x2 grid over two years with one masked cell.
func maskedSeries(unit, variable string, fill float64) *grid.TimeSeries {
	var times []time.Time
	day := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2001, time.December, 31, 12, 0, 0, 0, time.UTC)
	for !day.After(end) {
		times = append(times, day)
		day = day.AddDate(0, 0, 1)
	}

	values := make([]float64, len(times)*4)
	for i := range values {
		values[i] = fill
	}
	return &grid.TimeSeries{
		Times:    times,
		Lats:     []float64{60, 61},
		Lons:     []float64{-150, -149},
		Values:   values,
		NoData:   []bool{false, true, false, false},
		Unit:     unit,
		Variable: variable,
		Aux:      map[string][]float64{"elevation": {12, 40, 200, 7}},
	}
}

func TestNormalizeCountSentinel(t *testing.T) {
	ts := maskedSeries(UnitKelvin, "tasmax", 300)
	out, err := ComputeIndex("su", Request{Grid: ts, Model: "m", Scenario: "s"})
	if err != nil {
		t.Fatalf("ComputeIndex: %v", err)
	}

	// The source mask must reappear bit for bit in every year slice.
	for c := range ts.NoData {
		if out.NoData[c] != ts.NoData[c] {
			t.Errorf("mask differs from source at cell %d", c)
		}
	}
	for y := range out.Years {
		for c := range ts.NoData {
			v := out.At(y, c)
			if ts.NoData[c] {
				if v != grid.NoDataValue {
					t.Errorf("year %d cell %d = %v, want sentinel %d", out.Years[y], c, v, grid.NoDataValue)
				}
			} else if v == grid.NoDataValue {
				t.Errorf("year %d cell %d carries the sentinel on a valid cell", out.Years[y], c)
			}
		}
	}
}

func TestNormalizeFloatSentinel(t *testing.T) {
	ts := maskedSeries(UnitKelvin, "tasmax", 300)
	out, err := ComputeIndex("hd", Request{Grid: ts, Model: "m", Scenario: "s"})
	if err != nil {
		t.Fatalf("ComputeIndex: %v", err)
	}

	for y := range out.Years {
		for c := range ts.NoData {
			v := out.At(y, c)
			if ts.NoData[c] && !math.IsNaN(v) {
				t.Errorf("year %d cell %d = %v, want NaN", out.Years[y], c, v)
			}
			if !ts.NoData[c] && math.IsNaN(v) {
				t.Errorf("year %d cell %d is NaN on a valid cell", out.Years[y], c)
			}
		}
	}
}

func TestNormalizeRederivesMaskFromFirstSlice(t *testing.T) {
	// A cell that is NaN in the first time slice counts as nodata even
	// when the declared mask misses it.
	ts := maskedSeries(UnitKelvin, "tasmax", 300)
	ts.NoData = []bool{false, false, false, false}
	ts.Values[3] = math.NaN() // first slice, last cell
	for t0 := 1; t0 < len(ts.Times); t0++ {
		ts.Values[t0*4+3] = math.NaN()
	}

	out, err := ComputeIndex("su", Request{Grid: ts, Model: "m", Scenario: "s"})
	if err != nil {
		t.Fatalf("ComputeIndex: %v", err)
	}
	if !out.NoData[3] {
		t.Error("NaN cell in the first time slice was not remasked")
	}
	for y := range out.Years {
		if v := out.At(y, 3); v != grid.NoDataValue {
			t.Errorf("year %d: remasked cell = %v, want sentinel", out.Years[y], v)
		}
	}
}
