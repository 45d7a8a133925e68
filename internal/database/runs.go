package database

import "database/sql"

// InsertRun records a completed pipeline run.
func (db *DB) InsertRun(r *Run) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, survey_path, layout_path, events_path, panel_path,
			reference_year, survey_records, event_records, panel_rows,
			dropped_events, regions_matched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SurveyPath, r.LayoutPath, r.EventsPath, r.PanelPath,
		r.ReferenceYear, r.SurveyRecords, r.EventRecords, r.PanelRows,
		r.DroppedEvents, r.RegionsMatched,
	)
	return err
}

// GetRun returns a run by ID, or nil if it does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, created_at, survey_path, layout_path, events_path, panel_path,
			reference_year, survey_records, event_records, panel_rows,
			dropped_events, regions_matched
		FROM runs WHERE id = ?`, id,
	)
	return scanRun(row)
}

// GetLatestRun returns the most recent run, or nil if none exist.
func (db *DB) GetLatestRun() (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, created_at, survey_path, layout_path, events_path, panel_path,
			reference_year, survey_records, event_records, panel_rows,
			dropped_events, regions_matched
		FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.SurveyPath, &r.LayoutPath, &r.EventsPath,
		&r.PanelPath, &r.ReferenceYear, &r.SurveyRecords, &r.EventRecords,
		&r.PanelRows, &r.DroppedEvents, &r.RegionsMatched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetStats returns aggregate archive statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&s.Runs); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM panel_rows").Scan(&s.PanelRows); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM region_profiles").Scan(&s.RegionProfiles); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COALESCE(SUM(dropped_events), 0) FROM runs").Scan(&s.TotalDroppedEvents); err != nil {
		return nil, err
	}
	var last *string
	if err := db.conn.QueryRow("SELECT MAX(created_at) FROM runs").Scan(&last); err != nil {
		return nil, err
	}
	if last != nil {
		s.LastRunAt = *last
	}
	return s, nil
}

// GetRegionCoverage returns per-region event counts and observed year
// spans for a run, ordered by region name.
func (db *DB) GetRegionCoverage(runID string) ([]RegionCoverage, error) {
	rows, err := db.conn.Query(
		`SELECT name, COUNT(*), MIN(year), MAX(year)
		FROM panel_rows WHERE run_id = ?
		GROUP BY name ORDER BY name`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegionCoverage
	for rows.Next() {
		var c RegionCoverage
		if err := rows.Scan(&c.Region, &c.Events, &c.FirstYear, &c.LastYear); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
