package indices

import (
	"time"

	"github.com/frostline/cordex-indices/internal/grid"
)

// singleCellSeries builds a one-cell daily series spanning whole
// calendar years, filling each day from the supplied function of the
// overall step index and date.
func singleCellSeries(startYear, endYear int, unit, variable string, fill func(step int, day time.Time) float64) *grid.TimeSeries {
	var times []time.Time
	day := time.Date(startYear, time.January, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 12, 0, 0, 0, time.UTC)
	for !day.After(end) {
		times = append(times, day)
		day = day.AddDate(0, 0, 1)
	}

	values := make([]float64, len(times))
	for i, tm := range times {
		values[i] = fill(i, tm)
	}
	return &grid.TimeSeries{
		Times:    times,
		Lats:     []float64{60},
		Lons:     []float64{-150},
		Values:   values,
		NoData:   []bool{false},
		Unit:     unit,
		Variable: variable,
	}
}

// constantSeries is a singleCellSeries holding the same value every day.
func constantSeries(startYear, endYear int, unit, variable string, v float64) *grid.TimeSeries {
	return singleCellSeries(startYear, endYear, unit, variable, func(int, time.Time) float64 { return v })
}
