package database

import (
	"database/sql"

	"github.com/dmcgrath/conflictpanel/internal/panel"
)

// InsertPanelRows stores a run's panel rows in one transaction.
func (db *DB) InsertPanelRows(runID string, rows []panel.Row) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO panel_rows (run_id, name, year, event_id, lat, long, date,
			area_sq_km, boundary, init_govt, init_rebel, init_civ, init_other,
			target_govt, target_rebel, target_civ, target_other, direct,
			religion, governance, employment, std_living, clubs,
			years_since_reference, govt_attacks_lag, rebel_attacks_lag,
			loyalist_attacks_lag, govt_all, rebel_all, loyalist_all)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]
		_, err := stmt.Exec(runID, r.Region, r.Year, r.ID,
			nullable(r.Lat), nullable(r.Long), r.Date,
			nullable(r.AreaSqKm), r.Boundary,
			r.InitGovt, r.InitRebel, r.InitCiv, r.InitOther,
			r.TargetGovt, r.TargetRebel, r.TargetCiv, r.TargetOther, r.Direct,
			nullable(r.Religion), nullable(r.Governance),
			nullable(r.Employment), nullable(r.StdLiving), r.Clubs,
			r.YearsSinceReference,
			nullable(r.GovtAttacksLag), nullable(r.RebelAttacksLag),
			nullable(r.LoyalistAttacksLag),
			nullable(r.GovtAll), nullable(r.RebelAll), nullable(r.LoyalistAll))
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetPanelRows returns a run's panel ordered by (region, year, event id),
// matching the CSV row order.
func (db *DB) GetPanelRows(runID string) ([]panel.Row, error) {
	rows, err := db.conn.Query(
		`SELECT name, year, event_id, lat, long, date, area_sq_km, boundary,
			init_govt, init_rebel, init_civ, init_other,
			target_govt, target_rebel, target_civ, target_other, direct,
			religion, governance, employment, std_living, clubs,
			years_since_reference, govt_attacks_lag, rebel_attacks_lag,
			loyalist_attacks_lag, govt_all, rebel_all, loyalist_all
		FROM panel_rows WHERE run_id = ?
		ORDER BY name, year, event_id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []panel.Row
	for rows.Next() {
		var r panel.Row
		var lat, long, area, religion, governance, employment, stdLiving sql.NullFloat64
		var govtLag, rebelLag, loyalistLag, govtAll, rebelAll, loyalistAll sql.NullFloat64
		err := rows.Scan(&r.Region, &r.Year, &r.ID, &lat, &long, &r.Date, &area, &r.Boundary,
			&r.InitGovt, &r.InitRebel, &r.InitCiv, &r.InitOther,
			&r.TargetGovt, &r.TargetRebel, &r.TargetCiv, &r.TargetOther, &r.Direct,
			&religion, &governance, &employment, &stdLiving, &r.Clubs,
			&r.YearsSinceReference, &govtLag, &rebelLag, &loyalistLag,
			&govtAll, &rebelAll, &loyalistAll)
		if err != nil {
			return nil, err
		}
		r.Lat = floatOrNaN(lat)
		r.Long = floatOrNaN(long)
		r.AreaSqKm = floatOrNaN(area)
		r.Religion = floatOrNaN(religion)
		r.Governance = floatOrNaN(governance)
		r.Employment = floatOrNaN(employment)
		r.StdLiving = floatOrNaN(stdLiving)
		r.GovtAttacksLag = floatOrNaN(govtLag)
		r.RebelAttacksLag = floatOrNaN(rebelLag)
		r.LoyalistAttacksLag = floatOrNaN(loyalistLag)
		r.GovtAll = floatOrNaN(govtAll)
		r.RebelAll = floatOrNaN(rebelAll)
		r.LoyalistAll = floatOrNaN(loyalistAll)
		out = append(out, r)
	}
	return out, rows.Err()
}
