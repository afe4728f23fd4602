package store

import (
	"database/sql"
	"math"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/frostline/cordex-indices/internal/grid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func sampleGrid() *grid.AnnualGrid {
	return &grid.AnnualGrid{
		Years:    []int{2006, 2007, 2008},
		Lats:     []float64{60, 61},
		Lons:     []float64{-150, -149},
		Values:   []float64{1, 2, math.NaN(), 4, 5, 6, math.NaN(), 8, 9, 10, math.NaN(), 12},
		NoData:   []bool{false, false, true, false},
		Index:    "hd",
		Unit:     "degC",
		Model:    "CCCma-CanESM2_CCCma-CanRCM4",
		Scenario: "rcp45",
	}
}

func TestSaveLoadIndexGrid(t *testing.T) {
	s := setupTestStore(t)
	if err := s.CreateRun("run-1", "test"); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	g := sampleGrid()
	if err := s.SaveIndexGrid("run-1", g); err != nil {
		t.Fatalf("SaveIndexGrid: %v", err)
	}

	got, err := s.LoadIndexGrid("run-1", g.Model, g.Scenario, g.Index)
	if err != nil {
		t.Fatalf("LoadIndexGrid: %v", err)
	}

	if !reflect.DeepEqual(got.Years, g.Years) {
		t.Errorf("years = %v, want %v", got.Years, g.Years)
	}
	if !reflect.DeepEqual(got.Lats, g.Lats) || !reflect.DeepEqual(got.Lons, g.Lons) {
		t.Errorf("axes differ after round trip")
	}
	if !reflect.DeepEqual(got.NoData, g.NoData) {
		t.Errorf("mask = %v, want %v", got.NoData, g.NoData)
	}
	if got.Unit != g.Unit || got.Counts != g.Counts {
		t.Errorf("unit/counts = %q/%v, want %q/%v", got.Unit, got.Counts, g.Unit, g.Counts)
	}
	// NaN sentinels must survive the round trip.
	for i, v := range g.Values {
		w := got.Values[i]
		if math.IsNaN(v) != math.IsNaN(w) || (!math.IsNaN(v) && v != w) {
			t.Errorf("value %d = %v, want %v", i, w, v)
		}
	}
}

func TestSaveIndexGridUpsert(t *testing.T) {
	s := setupTestStore(t)
	if err := s.CreateRun("run-1", "test"); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	g := sampleGrid()
	if err := s.SaveIndexGrid("run-1", g); err != nil {
		t.Fatalf("first save: %v", err)
	}
	g.Values[0] = 99
	if err := s.SaveIndexGrid("run-1", g); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.LoadIndexGrid("run-1", g.Model, g.Scenario, g.Index)
	if err != nil {
		t.Fatalf("LoadIndexGrid: %v", err)
	}
	if got.Values[0] != 99 {
		t.Errorf("value after upsert = %v, want 99", got.Values[0])
	}

	triples, err := s.ListIndexGrids("run-1")
	if err != nil {
		t.Fatalf("ListIndexGrids: %v", err)
	}
	if len(triples) != 1 {
		t.Errorf("stored grids = %d, want 1 after upsert", len(triples))
	}
}

func TestPointValues(t *testing.T) {
	s := setupTestStore(t)
	if err := s.CreateRun("run-1", "test"); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	values := []PointValue{
		{Location: "Valdez", Index: "su", Model: "m1", Scenario: "rcp45", Year: 2006, Value: 3},
		{Location: "Valdez", Index: "su", Model: "m1", Scenario: "rcp45", Year: 2007, Value: 5},
		{Location: "Cordova", Index: "su", Model: "m1", Scenario: "rcp45", Year: 2006, Value: 1},
	}
	if err := s.SavePointValues("run-1", values); err != nil {
		t.Fatalf("SavePointValues: %v", err)
	}

	series, err := s.PointSeries("run-1", "Valdez", "su")
	if err != nil {
		t.Fatalf("PointSeries: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %d, want 2", len(series))
	}
	if series[0].Year != 2006 || series[0].Value != 3 {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Year != 2007 || series[1].Value != 5 {
		t.Errorf("series[1] = %+v", series[1])
	}
}
