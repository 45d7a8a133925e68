package recode

import (
	"math"
	"testing"
)

func TestRecodeMapped(t *testing.T) {
	m := map[string]float64{"LOW": 1, "HIGH": 3}
	if got := Recode("HIGH", m, Missing); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestRecodeUnmappedYieldsDefault(t *testing.T) {
	m := map[string]float64{"LOW": 1}
	got := Recode("MEDIUM", m, Missing)
	if !math.IsNaN(got) {
		t.Errorf("expected missing for unmapped value, got %v", got)
	}
}

func TestRecodeCaseSensitive(t *testing.T) {
	m := map[string]float64{"LOW": 1}
	if got := Recode("low", m, Missing); !math.IsNaN(got) {
		t.Errorf("lookup must be case-sensitive, got %v", got)
	}
}

func TestRecodeStringCodes(t *testing.T) {
	if got := Recode("07", Constituency, ""); got != "Belfast West" {
		t.Errorf("expected Belfast West, got %q", got)
	}
	if got := Recode("99", Constituency, ""); got != "" {
		t.Errorf("expected empty default for unknown code, got %q", got)
	}
}

func TestRecodeEmptyRaw(t *testing.T) {
	// Blank fields are just another unmapped value
	if got := Recode("", Governance, Missing); !math.IsNaN(got) {
		t.Errorf("expected missing for blank raw value, got %v", got)
	}
}

func TestConstituencyCoversCanonicalSet(t *testing.T) {
	if len(Constituency) != len(Regions) {
		t.Fatalf("constituency table has %d entries, expected %d", len(Constituency), len(Regions))
	}
	seen := make(map[string]bool)
	for _, name := range Constituency {
		seen[name] = true
	}
	for _, r := range Regions {
		if !seen[r] {
			t.Errorf("region %q missing from constituency table", r)
		}
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing(Missing) {
		t.Error("Missing must report as missing")
	}
	if IsMissing(0) {
		t.Error("zero is a real value, not missing")
	}
}
