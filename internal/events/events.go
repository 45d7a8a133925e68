// Package events loads the delimited violent-event log.
package events

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Event is one incident row from the event log. Continuous attributes use
// NaN for unparseable values; indicator columns default to 0.
type Event struct {
	ID       string
	Lat      float64
	Long     float64
	Date     string
	Region   string // the name column; join key against region profiles
	AreaSqKm float64
	Boundary int
	Year     int // derived from Date

	InitGovt  int
	InitRebel int
	InitCiv   int
	InitOther int

	TargetGovt  int
	TargetRebel int
	TargetCiv   int
	TargetOther int

	Direct int
}

// required lists the named columns the loader expects in the header.
// initCiv is accepted when present but the historical files omit it.
var required = []string{
	"id", "lat", "long", "date", "name", "areaSqKm", "boundary",
	"initGovt", "initRebel", "initOther",
	"targetGovt", "targetRebel", "targetCiv", "targetOther", "direct",
}

// Load reads the event log at path. dateFormats are tried in order when
// deriving the year; a date matching none of them makes the file malformed
// and aborts the load.
func Load(path string, dateFormats []string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading event log header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("event log missing column %q", name)
		}
	}
	civCol, hasCiv := cols["initCiv"]

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}

	evts := make([]Event, 0, len(records))
	for i, rec := range records {
		e := Event{
			ID:          rec[cols["id"]],
			Lat:         parseFloat(rec[cols["lat"]]),
			Long:        parseFloat(rec[cols["long"]]),
			Date:        rec[cols["date"]],
			Region:      rec[cols["name"]],
			AreaSqKm:    parseFloat(rec[cols["areaSqKm"]]),
			Boundary:    parseIndicator(rec[cols["boundary"]]),
			InitGovt:    parseIndicator(rec[cols["initGovt"]]),
			InitRebel:   parseIndicator(rec[cols["initRebel"]]),
			InitOther:   parseIndicator(rec[cols["initOther"]]),
			TargetGovt:  parseIndicator(rec[cols["targetGovt"]]),
			TargetRebel: parseIndicator(rec[cols["targetRebel"]]),
			TargetCiv:   parseIndicator(rec[cols["targetCiv"]]),
			TargetOther: parseIndicator(rec[cols["targetOther"]]),
			Direct:      parseIndicator(rec[cols["direct"]]),
		}
		if hasCiv {
			e.InitCiv = parseIndicator(rec[civCol])
		}

		year, err := parseYear(e.Date, dateFormats)
		if err != nil {
			return nil, fmt.Errorf("event log row %d: %w", i+2, err)
		}
		e.Year = year

		evts = append(evts, e)
	}

	return evts, nil
}

func parseYear(date string, formats []string) (int, error) {
	for _, layout := range formats {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), nil
		}
	}
	return 0, fmt.Errorf("unparseable date %q", date)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseIndicator coerces a 0/1 flag column. Anything non-numeric counts
// as absent rather than failing the load.
func parseIndicator(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return 0
	}
	return 1
}
