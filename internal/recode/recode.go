// Package recode maps raw categorical survey codes to the ordinal values
// used downstream. Recoding is total: a raw value absent from a mapping
// yields the missing default, never an error, and flows through later
// aggregation as an ignorable missing observation.
package recode

import "math"

// Missing is the numeric missing sentinel. Aggregation skips NaN values;
// storage and export translate NaN to NULL / empty.
var Missing = math.NaN()

// NoFurtherMentions marks the end of a respondent's organisation mentions
// and is excluded from diversity counts.
const NoFurtherMentions = "NO FURTHER MENTIONS"

// Recode looks up raw in mapping with exact, case-sensitive matching and
// returns def when raw is not a key.
func Recode[C comparable](raw string, mapping map[string]C, def C) C {
	if code, ok := mapping[raw]; ok {
		return code
	}
	return def
}

// IsMissing reports whether a recoded numeric value is the missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
