package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/frostline/cordex-indices/internal/grid"
)

// gridBlob is the msgpack wire form of an annual grid's array data.
// Metadata lives in ordinary columns so it stays queryable.
type gridBlob struct {
	Years  []int     `msgpack:"years"`
	Lats   []float64 `msgpack:"lats"`
	Lons   []float64 `msgpack:"lons"`
	Values []float64 `msgpack:"values"`
	NoData []bool    `msgpack:"nodata"`
}

// SaveIndexGrid persists one computed annual grid under a run.
func (s *Store) SaveIndexGrid(runID string, g *grid.AnnualGrid) error {
	blob, err := msgpack.Marshal(gridBlob{
		Years:  g.Years,
		Lats:   g.Lats,
		Lons:   g.Lons,
		Values: g.Values,
		NoData: g.NoData,
	})
	if err != nil {
		return fmt.Errorf("encoding grid %s %s/%s: %w", g.Index, g.Model, g.Scenario, err)
	}

	yearStart, yearEnd := 0, 0
	if len(g.Years) > 0 {
		yearStart, yearEnd = g.Years[0], g.Years[len(g.Years)-1]
	}

	_, err = s.db.Exec(`
		INSERT INTO index_grids (run_id, model, scenario, index_name, unit, counts, year_start, year_end, grid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, model, scenario, index_name) DO UPDATE SET
			unit = excluded.unit,
			counts = excluded.counts,
			year_start = excluded.year_start,
			year_end = excluded.year_end,
			grid = excluded.grid
	`, runID, g.Model, g.Scenario, g.Index, g.Unit, g.Counts, yearStart, yearEnd, blob)
	return err
}

// LoadIndexGrid retrieves a previously saved annual grid.
func (s *Store) LoadIndexGrid(runID, model, scenario, index string) (*grid.AnnualGrid, error) {
	var (
		unit   string
		counts bool
		blob   []byte
	)
	err := s.db.QueryRow(`
		SELECT unit, counts, grid FROM index_grids
		WHERE run_id = ? AND model = ? AND scenario = ? AND index_name = ?
	`, runID, model, scenario, index).Scan(&unit, &counts, &blob)
	if err != nil {
		return nil, err
	}

	var gb gridBlob
	if err := msgpack.Unmarshal(blob, &gb); err != nil {
		return nil, fmt.Errorf("decoding grid %s %s/%s: %w", index, model, scenario, err)
	}

	return &grid.AnnualGrid{
		Years:    gb.Years,
		Lats:     gb.Lats,
		Lons:     gb.Lons,
		Values:   gb.Values,
		NoData:   gb.NoData,
		Index:    index,
		Unit:     unit,
		Model:    model,
		Scenario: scenario,
		Counts:   counts,
	}, nil
}

// ListIndexGrids returns the (model, scenario, index) triples stored
// for a run.
func (s *Store) ListIndexGrids(runID string) ([][3]string, error) {
	rows, err := s.db.Query(`
		SELECT model, scenario, index_name FROM index_grids
		WHERE run_id = ?
		ORDER BY model, scenario, index_name
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triples [][3]string
	for rows.Next() {
		var t [3]string
		if err := rows.Scan(&t[0], &t[1], &t[2]); err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, rows.Err()
}
