package indices

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/frostline/cordex-indices/internal/grid"
)

// rankMode selects which end of the sorted annual sample an order
// statistic is taken from.
type rankMode int

const (
	rankFromTop rankMode = iota
	rankFromBottom
	meanOfTopK
)

// newAnnual allocates the annual result grid for a computation over
// the given year segments, inheriting the spatial axes and mask.
func newAnnual(ts *grid.TimeSeries, segs []grid.YearSegment) *grid.AnnualGrid {
	years := make([]int, len(segs))
	for i, s := range segs {
		years[i] = s.Year
	}
	return &grid.AnnualGrid{
		Years:  years,
		Lats:   ts.Lats,
		Lons:   ts.Lons,
		Values: make([]float64, len(segs)*ts.NCells()),
		NoData: ts.NoData,
	}
}

// orderStatistic computes, per year and per cell, either the k-th
// ranked daily value from one end of the sorted sample or the mean of
// the top k values, then converts the result to outUnit.
//
// A year with fewer days than k fails the whole computation: the
// partial final year of a series must surface as an error, never as a
// silently lower-ranked value.
func orderStatistic(ts *grid.TimeSeries, mode rankMode, k int, outUnit string) (*grid.AnnualGrid, error) {
	conv, err := unitConversion(ts.Unit, outUnit)
	if err != nil {
		return nil, err
	}

	segs := ts.YearSegments()
	out := newAnnual(ts, segs)
	ncells := ts.NCells()
	sample := make([]float64, 0, 366)

	for yi, seg := range segs {
		if seg.Days() < k {
			return nil, fmt.Errorf("%w: year %d has %d days, rank %d requested",
				ErrInsufficientSamples, seg.Year, seg.Days(), k)
		}
		for c := 0; c < ncells; c++ {
			if ts.NoData[c] {
				continue
			}
			sample = sample[:0]
			for t := seg.Start; t < seg.End; t++ {
				sample = append(sample, ts.At(t, c))
			}
			sort.Float64s(sample)

			var v float64
			switch mode {
			case rankFromTop:
				v = sample[len(sample)-k]
			case rankFromBottom:
				v = sample[k-1]
			case meanOfTopK:
				v = stat.Mean(sample[len(sample)-k:], nil)
			}
			out.Values[yi*ncells+c] = conv.apply(v)
		}
	}
	return out, nil
}

// rollingSumMax computes, per year and per cell, the maximum sum over
// any window consecutive days within the year, converted to outUnit.
// Windows never straddle a year boundary. A year shorter than the
// window fails with insufficient samples, consistent with the ranked
// extractors.
func rollingSumMax(ts *grid.TimeSeries, window int, outUnit string) (*grid.AnnualGrid, error) {
	conv, err := unitConversion(ts.Unit, outUnit)
	if err != nil {
		return nil, err
	}

	segs := ts.YearSegments()
	out := newAnnual(ts, segs)
	ncells := ts.NCells()

	for yi, seg := range segs {
		if seg.Days() < window {
			return nil, fmt.Errorf("%w: year %d has %d days, %d-day window requested",
				ErrInsufficientSamples, seg.Year, seg.Days(), window)
		}
		for c := 0; c < ncells; c++ {
			if ts.NoData[c] {
				continue
			}
			sum := 0.0
			for t := seg.Start; t < seg.Start+window; t++ {
				sum += ts.At(t, c)
			}
			max := sum
			for t := seg.Start + window; t < seg.End; t++ {
				sum += ts.At(t, c) - ts.At(t-window, c)
				if sum > max {
					max = sum
				}
			}
			out.Values[yi*ncells+c] = conv.apply(max)
		}
	}
	return out, nil
}
