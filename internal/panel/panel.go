// Package panel builds the final region-year panel: the inner join of
// event rows onto region profiles, annotated with lagged and total event
// counts per actor class.
package panel

import (
	"sort"

	"github.com/dmcgrath/conflictpanel/internal/aggregate"
	"github.com/dmcgrath/conflictpanel/internal/events"
	"github.com/dmcgrath/conflictpanel/internal/recode"
)

// Row is one panel row: one event with its region's survey profile
// broadcast onto it, plus the derived temporal and event-count columns.
// Lag columns use NaN for "no prior observation".
type Row struct {
	events.Event

	Religion   float64
	Governance float64
	Employment float64
	StdLiving  float64
	Clubs      int

	YearsSinceReference int

	GovtAttacksLag     float64
	RebelAttacksLag    float64
	LoyalistAttacksLag float64
	GovtAll            float64
	RebelAll           float64
	LoyalistAll        float64
}

// Merge inner-joins events onto region profiles by exact region name.
// Events whose region has no profile are dropped; the count of dropped
// rows is returned so callers can surface it. A region with N events and
// one profile yields N rows. Rows come back ordered by (region, year, id).
func Merge(evts []events.Event, profiles []aggregate.Profile) ([]Row, int) {
	byRegion := make(map[string]aggregate.Profile, len(profiles))
	for _, p := range profiles {
		byRegion[p.Region] = p
	}

	rows := make([]Row, 0, len(evts))
	dropped := 0
	for _, e := range evts {
		p, ok := byRegion[e.Region]
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, Row{
			Event:      e,
			Religion:   p.Religion,
			Governance: p.Governance,
			Employment: p.Employment,
			StdLiving:  p.StdLiving,
			Clubs:      p.Clubs,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.ID < b.ID
	})
	return rows, dropped
}

// AddFeatures derives the temporal column and the six per-actor-class
// event-count columns in place.
func AddFeatures(rows []Row, referenceYear int) {
	for i := range rows {
		rows[i].YearsSinceReference = rows[i].Year - referenceYear
	}
	for _, f := range features {
		applyFeature(rows, f)
	}
}

// feature parametrizes one event-count column: which actor-class
// indicator to sum, whether to restrict to civilian-targeted events, and
// whether the per-region series is shifted back one observed year.
type feature struct {
	name         string
	indicator    func(*Row) int
	civilianOnly bool
	lagged       bool
	assign       func(*Row, float64)
}

var features = []feature{
	{"govtAttacksLag", func(r *Row) int { return r.InitGovt }, true, true,
		func(r *Row, v float64) { r.GovtAttacksLag = v }},
	{"rebelAttacksLag", func(r *Row) int { return r.InitRebel }, true, true,
		func(r *Row, v float64) { r.RebelAttacksLag = v }},
	{"loyalistAttacksLag", func(r *Row) int { return r.InitOther }, true, true,
		func(r *Row, v float64) { r.LoyalistAttacksLag = v }},
	{"govtAll", func(r *Row) int { return r.InitGovt }, false, false,
		func(r *Row, v float64) { r.GovtAll = v }},
	{"rebelAll", func(r *Row) int { return r.InitRebel }, false, false,
		func(r *Row, v float64) { r.RebelAll = v }},
	{"loyalistAll", func(r *Row) int { return r.InitOther }, false, false,
		func(r *Row, v float64) { r.LoyalistAll = v }},
}

type groupKey struct {
	region string
	year   int
}

// applyFeature computes the feature's (region, year) series and attaches
// it to every row sharing the key. The attachment keeps left-join
// semantics toward the panel: a key absent from the series (possible for
// civilian-filtered features) becomes missing instead of dropping the row.
func applyFeature(rows []Row, f feature) {
	series := sumByRegionYear(rows, f.indicator, f.civilianOnly)
	if f.lagged {
		series = lagWithinRegion(series)
	}

	for i := range rows {
		r := &rows[i]
		v, ok := series[groupKey{r.Region, r.Year}]
		if !ok {
			v = recode.Missing
		}
		f.assign(r, v)
	}
}

// sumByRegionYear groups rows by (region, year) and sums the indicator,
// optionally over civilian-targeted rows only. With the filter active,
// region-years with no civilian-targeted events have no entry at all and
// are invisible to the lag computation.
func sumByRegionYear(rows []Row, indicator func(*Row) int, civilianOnly bool) map[groupKey]float64 {
	sums := make(map[groupKey]float64)
	for i := range rows {
		r := &rows[i]
		if civilianOnly && r.TargetCiv == 0 {
			continue
		}
		sums[groupKey{r.Region, r.Year}] += float64(indicator(r))
	}
	return sums
}

// lagWithinRegion shifts each region's year series back by one observed
// year: the value at a year becomes the total of the previous year present
// in the series. The first observed year per region has no prior
// observation and maps to missing; gap years are skipped, not zero-filled.
func lagWithinRegion(totals map[groupKey]float64) map[groupKey]float64 {
	yearsByRegion := make(map[string][]int)
	for k := range totals {
		yearsByRegion[k.region] = append(yearsByRegion[k.region], k.year)
	}

	lagged := make(map[groupKey]float64, len(totals))
	for region, years := range yearsByRegion {
		sort.Ints(years)
		for i, year := range years {
			if i == 0 {
				lagged[groupKey{region, year}] = recode.Missing
				continue
			}
			lagged[groupKey{region, year}] = totals[groupKey{region, years[i-1]}]
		}
	}
	return lagged
}
