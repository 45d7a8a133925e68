// Package export serializes the final panel as delimited text.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmcgrath/conflictpanel/internal/panel"
)

// Columns is the output column order. Consumers depend on it; do not
// reorder.
var Columns = []string{
	"name", "year", "id", "lat", "long", "date", "areaSqKm", "boundary",
	"initGovt", "initRebel", "initCiv", "initOther",
	"targetGovt", "targetRebel", "targetCiv", "targetOther", "direct",
	"religion", "governance", "employment", "stdLiving", "clubs",
	"yearsSinceReference",
	"govtAttacksLag", "rebelAttacksLag", "loyalistAttacksLag",
	"govtAll", "rebelAll", "loyalistAll",
}

// WritePanel writes rows to path as CSV. The file appears atomically: a
// failed run leaves no partial output behind.
func WritePanel(path string, rows []panel.Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".panel-*.csv")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range rows {
		if err := w.Write(record(&rows[i])); err != nil {
			tmp.Close()
			return fmt.Errorf("writing panel row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}

func record(r *panel.Row) []string {
	return []string{
		r.Region,
		strconv.Itoa(r.Year),
		r.ID,
		num(r.Lat),
		num(r.Long),
		r.Date,
		num(r.AreaSqKm),
		strconv.Itoa(r.Boundary),
		strconv.Itoa(r.InitGovt),
		strconv.Itoa(r.InitRebel),
		strconv.Itoa(r.InitCiv),
		strconv.Itoa(r.InitOther),
		strconv.Itoa(r.TargetGovt),
		strconv.Itoa(r.TargetRebel),
		strconv.Itoa(r.TargetCiv),
		strconv.Itoa(r.TargetOther),
		strconv.Itoa(r.Direct),
		num(r.Religion),
		num(r.Governance),
		num(r.Employment),
		num(r.StdLiving),
		strconv.Itoa(r.Clubs),
		strconv.Itoa(r.YearsSinceReference),
		num(r.GovtAttacksLag),
		num(r.RebelAttacksLag),
		num(r.LoyalistAttacksLag),
		num(r.GovtAll),
		num(r.RebelAll),
		num(r.LoyalistAll),
	}
}

// num formats a float column, serializing missing as an empty field.
func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
