package panel

import (
	"math"
	"testing"

	"github.com/dmcgrath/conflictpanel/internal/aggregate"
	"github.com/dmcgrath/conflictpanel/internal/events"
)

func evt(id, region string, year, initGovt, initRebel, targetCiv int) events.Event {
	return events.Event{
		ID: id, Region: region, Year: year,
		InitGovt: initGovt, InitRebel: initRebel, TargetCiv: targetCiv,
	}
}

func TestMergeIsStrictInner(t *testing.T) {
	evts := []events.Event{
		evt("e1", "Armagh", 1971, 1, 0, 1),
		evt("e2", "Armagh", 1971, 0, 1, 0),
		evt("e3", "Atlantis", 1971, 1, 0, 1), // no profile, dropped
	}
	profiles := []aggregate.Profile{
		{Region: "Armagh", Governance: 3.5, Clubs: 4},
		{Region: "Down South", Governance: 2}, // no events, never appears
	}

	rows, dropped := Merge(evts, profiles)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if dropped != 1 {
		t.Errorf("expected 1 dropped event, got %d", dropped)
	}
	for _, r := range rows {
		if r.Region != "Armagh" {
			t.Errorf("unexpected region %q in panel", r.Region)
		}
		if r.Governance != 3.5 || r.Clubs != 4 {
			t.Errorf("profile fields not broadcast: %+v", r)
		}
	}
}

func TestMergeBroadcastCardinality(t *testing.T) {
	evts := []events.Event{
		evt("e1", "Armagh", 1970, 1, 0, 0),
		evt("e2", "Armagh", 1971, 1, 0, 0),
		evt("e3", "Armagh", 1971, 0, 1, 0),
	}
	profiles := []aggregate.Profile{{Region: "Armagh"}}

	rows, _ := Merge(evts, profiles)
	if len(rows) != 3 {
		t.Errorf("N events x 1 profile must yield N rows, got %d", len(rows))
	}
}

func TestMergeOrdersRows(t *testing.T) {
	evts := []events.Event{
		evt("e2", "Down South", 1972, 0, 0, 0),
		evt("e1", "Armagh", 1973, 0, 0, 0),
		evt("e0", "Armagh", 1971, 0, 0, 0),
	}
	profiles := []aggregate.Profile{{Region: "Armagh"}, {Region: "Down South"}}

	rows, _ := Merge(evts, profiles)
	want := []string{"e0", "e1", "e2"}
	for i, id := range want {
		if rows[i].ID != id {
			t.Errorf("row %d = %s, expected %s", i, rows[i].ID, id)
		}
	}
}

// Years 1970-1972 with civilian-targeted government sums [2, 0, 5] must
// produce a lag series [missing, 2, 0].
func TestLagContiguousYears(t *testing.T) {
	series := map[groupKey]float64{
		{"Armagh", 1970}: 2,
		{"Armagh", 1971}: 0,
		{"Armagh", 1972}: 5,
	}
	lag := lagWithinRegion(series)

	if !math.IsNaN(lag[groupKey{"Armagh", 1970}]) {
		t.Errorf("first observed year must lag to missing, got %v", lag[groupKey{"Armagh", 1970}])
	}
	if lag[groupKey{"Armagh", 1971}] != 2 {
		t.Errorf("1971 lag = %v, expected 2", lag[groupKey{"Armagh", 1971}])
	}
	if lag[groupKey{"Armagh", 1972}] != 0 {
		t.Errorf("1972 lag = %v, expected 0", lag[groupKey{"Armagh", 1972}])
	}
}

// A region observed only in 1970 and 1972 lags 1972 to the 1970 value:
// the gap year is skipped, not treated as zero.
func TestLagSkipsGapYears(t *testing.T) {
	series := map[groupKey]float64{
		{"Armagh", 1970}: 2,
		{"Armagh", 1972}: 5,
	}
	lag := lagWithinRegion(series)

	if !math.IsNaN(lag[groupKey{"Armagh", 1970}]) {
		t.Errorf("expected missing lag for first year, got %v", lag[groupKey{"Armagh", 1970}])
	}
	if lag[groupKey{"Armagh", 1972}] != 2 {
		t.Errorf("gap year must be invisible: 1972 lag = %v, expected 2", lag[groupKey{"Armagh", 1972}])
	}
}

func TestLagRegionsAreIndependent(t *testing.T) {
	series := map[groupKey]float64{
		{"Armagh", 1970}:     7,
		{"Mid Ulster", 1971}: 3,
		{"Mid Ulster", 1972}: 9,
	}
	lag := lagWithinRegion(series)

	if !math.IsNaN(lag[groupKey{"Mid Ulster", 1971}]) {
		t.Error("Mid Ulster's first year must not see Armagh's 1970 value")
	}
	if lag[groupKey{"Mid Ulster", 1972}] != 3 {
		t.Errorf("Mid Ulster 1972 lag = %v, expected 3", lag[groupKey{"Mid Ulster", 1972}])
	}
}

func TestSumByRegionYearCivilianFilter(t *testing.T) {
	rows := []Row{
		{Event: evt("a", "Armagh", 1970, 1, 0, 1)},
		{Event: evt("b", "Armagh", 1970, 1, 0, 0)}, // not civilian-targeted
		{Event: evt("c", "Armagh", 1971, 1, 0, 0)}, // whole year filtered away
	}

	sums := sumByRegionYear(rows, func(r *Row) int { return r.InitGovt }, true)
	if sums[groupKey{"Armagh", 1970}] != 1 {
		t.Errorf("1970 civilian sum = %v, expected 1", sums[groupKey{"Armagh", 1970}])
	}
	if _, ok := sums[groupKey{"Armagh", 1971}]; ok {
		t.Error("a region-year with no civilian-targeted events must have no entry")
	}
}

func TestAddFeaturesTotalsAndLags(t *testing.T) {
	rows := []Row{
		{Event: evt("a", "Armagh", 1970, 1, 0, 1)},
		{Event: evt("b", "Armagh", 1970, 0, 1, 1)},
		{Event: evt("c", "Armagh", 1971, 1, 1, 1)},
	}
	AddFeatures(rows, 1969)

	for _, r := range rows {
		switch r.Year {
		case 1970:
			if r.GovtAll != 1 || r.RebelAll != 1 {
				t.Errorf("1970 totals: govt %v rebel %v, expected 1 and 1", r.GovtAll, r.RebelAll)
			}
			if !math.IsNaN(r.GovtAttacksLag) {
				t.Errorf("1970 lag must be missing, got %v", r.GovtAttacksLag)
			}
			if r.YearsSinceReference != 1 {
				t.Errorf("yearsSinceReference = %d, expected 1", r.YearsSinceReference)
			}
		case 1971:
			if r.GovtAttacksLag != 1 || r.RebelAttacksLag != 1 {
				t.Errorf("1971 lags: govt %v rebel %v, expected 1 and 1", r.GovtAttacksLag, r.RebelAttacksLag)
			}
			if r.LoyalistAttacksLag != 0 {
				t.Errorf("1971 loyalist lag = %v, expected 0 (prior year observed with zero events)", r.LoyalistAttacksLag)
			}
		}
	}
}

// Rows that fall outside a civilian-filtered series must keep their place
// in the panel with a missing lag, not be dropped by the attachment.
func TestAddFeaturesKeepsRowsOutsideFilteredSeries(t *testing.T) {
	rows := []Row{
		{Event: evt("a", "Armagh", 1970, 1, 0, 0)}, // no civilian-targeted events at all
	}
	AddFeatures(rows, 1969)

	if len(rows) != 1 {
		t.Fatal("attachment must never drop panel rows")
	}
	if !math.IsNaN(rows[0].GovtAttacksLag) {
		t.Errorf("expected missing lag for key absent from filtered series, got %v", rows[0].GovtAttacksLag)
	}
	if rows[0].GovtAll != 1 {
		t.Errorf("unfiltered total = %v, expected 1", rows[0].GovtAll)
	}
}

// A class with zero events in a region's first year still gets a defined
// zero total and a missing lag.
func TestAddFeaturesZeroTotalFirstYear(t *testing.T) {
	rows := []Row{
		{Event: evt("a", "Armagh", 1970, 0, 1, 1)},
	}
	AddFeatures(rows, 1969)

	if rows[0].GovtAll != 0 {
		t.Errorf("expected defined zero total, got %v", rows[0].GovtAll)
	}
	if !math.IsNaN(rows[0].GovtAttacksLag) {
		t.Errorf("expected missing lag, got %v", rows[0].GovtAttacksLag)
	}
}
