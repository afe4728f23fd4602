package app

import (
	"math"
	"testing"

	"github.com/frostline/cordex-indices/internal/grid"
	"github.com/frostline/cordex-indices/pkg/config"
)

func TestNearestIndex(t *testing.T) {
	axis := []float64{55, 56, 57, 58}
	tests := []struct {
		v    float64
		want int
	}{
		{55.0, 0},
		{56.4, 1},
		{56.6, 2},
		{70.0, 3},
		{-10.0, 0},
	}
	for _, tt := range tests {
		if got := nearestIndex(axis, tt.v); got != tt.want {
			t.Errorf("nearestIndex(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestExtractPoints(t *testing.T) {
	g := &grid.AnnualGrid{
		Years: []int{2006, 2007},
		Lats:  []float64{60, 61},
		Lons:  []float64{-150, -149},
		Values: []float64{
			1, 2, grid.NoDataValue, 4, // 2006
			5, 6, grid.NoDataValue, 8, // 2007
		},
		NoData:   []bool{false, false, true, false},
		Index:    "su",
		Model:    "m1",
		Scenario: "rcp45",
		Counts:   true,
	}

	locations := map[string]config.Location{
		"near-first-cell":  {Lat: 60.1, Lon: -150.2},
		"near-masked-cell": {Lat: 61.0, Lon: -150.0},
		"near-last-cell":   {Lat: 61.4, Lon: -148.7},
	}

	out := ExtractPoints(g, locations)

	got := map[string][]float64{}
	for _, pv := range out {
		got[pv.Location] = append(got[pv.Location], pv.Value)
	}

	if _, ok := got["near-masked-cell"]; ok {
		t.Error("masked cell produced point values")
	}
	if want := []float64{1, 5}; !equalFloats(got["near-first-cell"], want) {
		t.Errorf("near-first-cell = %v, want %v", got["near-first-cell"], want)
	}
	if want := []float64{4, 8}; !equalFloats(got["near-last-cell"], want) {
		t.Errorf("near-last-cell = %v, want %v", got["near-last-cell"], want)
	}
}

func TestExtractPointsSkipsSentinelYears(t *testing.T) {
	g := &grid.AnnualGrid{
		Years:    []int{2006, 2007},
		Lats:     []float64{60},
		Lons:     []float64{-150},
		Values:   []float64{math.NaN(), 3.5},
		NoData:   []bool{false},
		Index:    "hd",
		Model:    "m1",
		Scenario: "rcp45",
	}

	out := ExtractPoints(g, map[string]config.Location{"p": {Lat: 60, Lon: -150}})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Year != 2007 || out[0].Value != 3.5 {
		t.Errorf("out[0] = %+v", out[0])
	}
}

func equalFloats(a, b []float64) bool {
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
