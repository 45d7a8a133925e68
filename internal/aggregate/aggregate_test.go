package aggregate

import (
	"testing"

	"github.com/dmcgrath/conflictpanel/internal/recode"
	"github.com/dmcgrath/conflictpanel/internal/survey"
)

func TestCountDistinctOrgs(t *testing.T) {
	records := []survey.Respondent{
		{Region: "Armagh", Orgs: [4]string{"A", "B", recode.NoFurtherMentions, ""}},
		{Region: "Armagh", Orgs: [4]string{"B", "C", "", ""}},
		{Region: "Armagh", Orgs: [4]string{"", "", "", ""}},
		{Region: "Armagh", Orgs: [4]string{recode.NoFurtherMentions, "", "", ""}},
	}

	counts := CountDistinctOrgs(records)
	if counts["Armagh"] != 3 {
		t.Errorf("expected 3 distinct orgs (A, B, C), got %d", counts["Armagh"])
	}
}

func TestCountDistinctOrgsPerRegion(t *testing.T) {
	records := []survey.Respondent{
		{Region: "Armagh", Orgs: [4]string{"A", "", "", ""}},
		{Region: "Mid Ulster", Orgs: [4]string{"A", "B", "", ""}},
		{Region: "", Orgs: [4]string{"X", "Y", "Z", ""}}, // unmapped region, excluded
	}

	counts := CountDistinctOrgs(records)
	if counts["Armagh"] != 1 {
		t.Errorf("Armagh count = %d, expected 1", counts["Armagh"])
	}
	if counts["Mid Ulster"] != 2 {
		t.Errorf("Mid Ulster count = %d, expected 2", counts["Mid Ulster"])
	}
	if _, ok := counts[""]; ok {
		t.Error("unmapped region must not appear in counts")
	}
}

func TestProfilesByRegionMeanIgnoresMissing(t *testing.T) {
	records := []survey.Respondent{
		{Region: "Armagh", Governance: 1, Religion: recode.Missing, Employment: recode.Missing, StdLiving: recode.Missing},
		{Region: "Armagh", Governance: 3, Religion: recode.Missing, Employment: recode.Missing, StdLiving: recode.Missing},
		{Region: "Armagh", Governance: recode.Missing, Religion: recode.Missing, Employment: recode.Missing, StdLiving: recode.Missing},
	}

	profiles := ProfilesByRegion(records)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	p := profiles[0]
	if p.Governance != 2 {
		t.Errorf("governance mean = %v, expected 2 (missing excluded from both sides)", p.Governance)
	}
	if !recode.IsMissing(p.Religion) {
		t.Errorf("all-missing partition must yield missing mean, got %v", p.Religion)
	}
}

func TestProfilesByRegionOnePerObservedRegion(t *testing.T) {
	records := []survey.Respondent{
		{Region: "Armagh", Governance: 2},
		{Region: "Armagh", Governance: 4},
		{Region: "Down South", Governance: 5},
		{Region: ""}, // excluded entirely
	}

	profiles := ProfilesByRegion(records)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	// Sorted by region name
	if profiles[0].Region != "Armagh" || profiles[1].Region != "Down South" {
		t.Errorf("unexpected profile order: %v, %v", profiles[0].Region, profiles[1].Region)
	}
	if profiles[0].Governance != 3 {
		t.Errorf("Armagh governance = %v, expected 3", profiles[0].Governance)
	}
}

func TestProfilesByRegionAttachesClubs(t *testing.T) {
	records := []survey.Respondent{
		{Region: "Armagh", Governance: 2, Orgs: [4]string{"A", "B", "", ""}},
		{Region: "Armagh", Governance: 2, Orgs: [4]string{"B", "", "", ""}},
	}

	profiles := ProfilesByRegion(records)
	if profiles[0].Clubs != 2 {
		t.Errorf("clubs = %d, expected 2", profiles[0].Clubs)
	}
}

func TestProfilesByRegionEmptyInput(t *testing.T) {
	if got := ProfilesByRegion(nil); len(got) != 0 {
		t.Errorf("expected no profiles for empty input, got %d", len(got))
	}
}
