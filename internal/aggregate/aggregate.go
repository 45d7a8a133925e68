// Package aggregate summarizes recoded survey records into one profile per
// region.
package aggregate

import (
	"sort"

	"github.com/dmcgrath/conflictpanel/internal/recode"
	"github.com/dmcgrath/conflictpanel/internal/survey"
)

// Profile is the per-region survey summary. Numeric attributes are
// missing-aware means of the recoded respondent codes; Clubs counts
// distinct organisation affiliations mentioned in the region.
type Profile struct {
	Region     string
	Religion   float64
	Governance float64
	Employment float64
	StdLiving  float64
	Clubs      int
}

// CountDistinctOrgs returns, per region, the number of distinct
// organisation affiliations across all four mention columns of all
// respondents. The "no further mentions" sentinel and blank mentions are
// excluded; the same affiliation mentioned by several respondents (or in
// several columns) counts once.
func CountDistinctOrgs(records []survey.Respondent) map[string]int {
	orgs := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		for _, org := range r.Orgs {
			if org == "" || org == recode.NoFurtherMentions {
				continue
			}
			if orgs[r.Region] == nil {
				orgs[r.Region] = make(map[string]struct{})
			}
			orgs[r.Region][org] = struct{}{}
		}
	}

	counts := make(map[string]int, len(orgs))
	for region, set := range orgs {
		counts[region] = len(set)
	}
	return counts
}

// ProfilesByRegion partitions records by region and computes missing-aware
// means of each numeric attribute. Regions with no records are absent from
// the result; a partition whose values are all missing yields a missing
// mean. Profiles come back sorted by region name so runs are reproducible.
func ProfilesByRegion(records []survey.Respondent) []Profile {
	type sums struct {
		religion, governance, employment, stdLiving meanAcc
	}
	byRegion := make(map[string]*sums)

	for _, r := range records {
		if r.Region == "" {
			continue
		}
		s := byRegion[r.Region]
		if s == nil {
			s = &sums{}
			byRegion[r.Region] = s
		}
		s.religion.add(r.Religion)
		s.governance.add(r.Governance)
		s.employment.add(r.Employment)
		s.stdLiving.add(r.StdLiving)
	}

	clubs := CountDistinctOrgs(records)

	profiles := make([]Profile, 0, len(byRegion))
	for region, s := range byRegion {
		profiles = append(profiles, Profile{
			Region:     region,
			Religion:   s.religion.mean(),
			Governance: s.governance.mean(),
			Employment: s.employment.mean(),
			StdLiving:  s.stdLiving.mean(),
			Clubs:      clubs[region],
		})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Region < profiles[j].Region })
	return profiles
}

// meanAcc accumulates a mean that skips missing values in both numerator
// and denominator.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	if recode.IsMissing(v) {
		return
	}
	a.sum += v
	a.n++
}

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return recode.Missing
	}
	return a.sum / float64(a.n)
}
