package store

import (
	"fmt"
)

// PointValue is one annual index value extracted at a named location.
type PointValue struct {
	Location string
	Index    string
	Model    string
	Scenario string
	Year     int
	Value    float64
}

// SavePointValues inserts extracted point values in one transaction.
// Nodata years should be omitted by the caller rather than stored.
func (s *Store) SavePointValues(runID string, values []PointValue) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO point_values (run_id, location, index_name, model, scenario, year, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, location, index_name, model, scenario, year) DO UPDATE SET
			value = excluded.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, pv := range values {
		if _, err := stmt.Exec(runID, pv.Location, pv.Index, pv.Model, pv.Scenario, pv.Year, pv.Value); err != nil {
			return fmt.Errorf("inserting point value %s/%s/%d: %w", pv.Location, pv.Index, pv.Year, err)
		}
	}
	return tx.Commit()
}

// PointSeries returns the stored annual series for one location and
// index across all models and scenarios of a run, ordered by model,
// scenario, year.
func (s *Store) PointSeries(runID, location, index string) ([]PointValue, error) {
	rows, err := s.db.Query(`
		SELECT location, index_name, model, scenario, year, value
		FROM point_values
		WHERE run_id = ? AND location = ? AND index_name = ?
		ORDER BY model, scenario, year
	`, runID, location, index)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []PointValue
	for rows.Next() {
		var pv PointValue
		if err := rows.Scan(&pv.Location, &pv.Index, &pv.Model, &pv.Scenario, &pv.Year, &pv.Value); err != nil {
			return nil, err
		}
		series = append(series, pv)
	}
	return series, rows.Err()
}
