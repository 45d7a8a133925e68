package recode

// Regions is the canonical twelve-constituency set. Constituency codes
// outside this set recode to "" and drop out of all downstream grouping
// and joins.
var Regions = []string{
	"Antrim North",
	"Antrim South",
	"Armagh",
	"Belfast East",
	"Belfast North",
	"Belfast South",
	"Belfast West",
	"Down North",
	"Down South",
	"Fermanagh and South Tyrone",
	"Londonderry",
	"Mid Ulster",
}

// Constituency maps raw two-digit constituency codes to canonical region
// names. The event log carries the same names in its name column, so this
// table fixes the join key spelling.
var Constituency = map[string]string{
	"01": "Antrim North",
	"02": "Antrim South",
	"03": "Armagh",
	"04": "Belfast East",
	"05": "Belfast North",
	"06": "Belfast South",
	"07": "Belfast West",
	"08": "Down North",
	"09": "Down South",
	"10": "Fermanagh and South Tyrone",
	"11": "Londonderry",
	"12": "Mid Ulster",
}

// Religion collapses denomination codes to a Catholic indicator, so the
// per-region mean reads as the Catholic share of respondents.
var Religion = map[string]float64{
	"ROMAN CATHOLIC":    1,
	"CHURCH OF IRELAND": 0,
	"PRESBYTERIAN":      0,
	"METHODIST":         0,
	"BAPTIST":           0,
	"BRETHREN":          0,
	"OTHER PROTESTANT":  0,
	"NONE":              0,
}

// Governance codes approval of how the regional government does its job,
// high = approves.
var Governance = map[string]float64{
	"VERY GOOD JOB": 5,
	"GOOD JOB":      4,
	"NEITHER":       3,
	"POOR JOB":      2,
	"VERY POOR JOB": 1,
}

// Employment codes reported difficulty of finding work in the area,
// high = harder.
var Employment = map[string]float64{
	"VERY DIFFICULT":     3,
	"FAIRLY DIFFICULT":   2,
	"NOT VERY DIFFICULT": 1,
	"NOT AT ALL":         0,
}

// StdLiving codes satisfaction with the household's standard of living,
// high = satisfied.
var StdLiving = map[string]float64{
	"VERY SATISFIED":      4,
	"FAIRLY SATISFIED":    3,
	"FAIRLY DISSATISFIED": 2,
	"VERY DISSATISFIED":   1,
}
