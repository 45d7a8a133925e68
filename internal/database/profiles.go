package database

import (
	"database/sql"
	"math"

	"github.com/dmcgrath/conflictpanel/internal/aggregate"
)

// InsertProfiles stores the region profiles for a run in one transaction.
func (db *DB) InsertProfiles(runID string, profiles []aggregate.Profile) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO region_profiles (run_id, region, religion, governance, employment, std_living, clubs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range profiles {
		_, err := stmt.Exec(runID, p.Region,
			nullable(p.Religion), nullable(p.Governance),
			nullable(p.Employment), nullable(p.StdLiving), p.Clubs)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetProfiles returns the stored region profiles for a run, ordered by
// region name.
func (db *DB) GetProfiles(runID string) ([]aggregate.Profile, error) {
	rows, err := db.conn.Query(
		`SELECT region, religion, governance, employment, std_living, clubs
		FROM region_profiles WHERE run_id = ? ORDER BY region`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []aggregate.Profile
	for rows.Next() {
		var p aggregate.Profile
		var religion, governance, employment, stdLiving sql.NullFloat64
		if err := rows.Scan(&p.Region, &religion, &governance, &employment, &stdLiving, &p.Clubs); err != nil {
			return nil, err
		}
		p.Religion = floatOrNaN(religion)
		p.Governance = floatOrNaN(governance)
		p.Employment = floatOrNaN(employment)
		p.StdLiving = floatOrNaN(stdLiving)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// nullable maps the NaN missing sentinel to SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
