package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT DEFAULT (datetime('now')),
    survey_path TEXT NOT NULL,
    layout_path TEXT NOT NULL,
    events_path TEXT NOT NULL,
    panel_path TEXT NOT NULL,
    reference_year INTEGER NOT NULL,
    survey_records INTEGER DEFAULT 0,
    event_records INTEGER DEFAULT 0,
    panel_rows INTEGER DEFAULT 0,
    dropped_events INTEGER DEFAULT 0,
    regions_matched INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS region_profiles (
    run_id TEXT NOT NULL REFERENCES runs(id),
    region TEXT NOT NULL,
    religion REAL,
    governance REAL,
    employment REAL,
    std_living REAL,
    clubs INTEGER DEFAULT 0,
    PRIMARY KEY (run_id, region)
);

CREATE TABLE IF NOT EXISTS panel_rows (
    run_id TEXT NOT NULL REFERENCES runs(id),
    name TEXT NOT NULL,
    year INTEGER NOT NULL,
    event_id TEXT NOT NULL,
    lat REAL,
    long REAL,
    date TEXT,
    area_sq_km REAL,
    boundary INTEGER DEFAULT 0,
    init_govt INTEGER DEFAULT 0,
    init_rebel INTEGER DEFAULT 0,
    init_civ INTEGER DEFAULT 0,
    init_other INTEGER DEFAULT 0,
    target_govt INTEGER DEFAULT 0,
    target_rebel INTEGER DEFAULT 0,
    target_civ INTEGER DEFAULT 0,
    target_other INTEGER DEFAULT 0,
    direct INTEGER DEFAULT 0,
    religion REAL,
    governance REAL,
    employment REAL,
    std_living REAL,
    clubs INTEGER DEFAULT 0,
    years_since_reference INTEGER DEFAULT 0,
    govt_attacks_lag REAL,
    rebel_attacks_lag REAL,
    loyalist_attacks_lag REAL,
    govt_all REAL,
    rebel_all REAL,
    loyalist_all REAL
);

CREATE INDEX IF NOT EXISTS idx_panel_rows_run ON panel_rows(run_id);
CREATE INDEX IF NOT EXISTS idx_panel_rows_region_year ON panel_rows(run_id, name, year);
CREATE INDEX IF NOT EXISTS idx_region_profiles_run ON region_profiles(run_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
