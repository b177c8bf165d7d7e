// Package reference normalizes raw tabular reference data (sovereign bond
// yields, equity risk premia, synthetic credit-rating bands) into the typed
// lookup structures the rate calculators consume.
package reference

import "sort"

// =============================================================================
// LOOKUP STRUCTURES
// =============================================================================

// SizeClass selects which synthetic-rating table applies to a company.
type SizeClass string

const (
	LargeCap  SizeClass = "large_cap"
	SmallCap  SizeClass = "small_cap"
	Financial SizeClass = "financial"
)

// RatingBand is one row of a synthetic-rating table: a closed coverage-ratio
// interval mapped to a rating label and a credit spread (decimal fraction).
type RatingBand struct {
	MinRatio float64
	MaxRatio float64
	Rating   string
	Spread   float64
}

// Contains reports whether the coverage ratio falls inside the band.
// Both ends are inclusive; boundary values match the first band scanned.
func (b RatingBand) Contains(ratio float64) bool {
	return b.MinRatio <= ratio && ratio <= b.MaxRatio
}

// RatingTable is an ordered sequence of bands, worst rating first.
// The first entry doubles as the fallback when no band contains the ratio.
type RatingTable []RatingBand

// RatingTableSet holds the three category tables parsed from one sheet.
type RatingTableSet struct {
	LargeCap  RatingTable
	SmallCap  RatingTable
	Financial RatingTable

	// SkippedRows counts raw rows rejected during parsing (stray headers,
	// annotation rows, non-numeric bounds).
	SkippedRows int
}

// ForClass returns the table matching a size class.
func (s *RatingTableSet) ForClass(class SizeClass) RatingTable {
	switch class {
	case SmallCap:
		return s.SmallCap
	case Financial:
		return s.Financial
	default:
		return s.LargeCap
	}
}

// CountryYieldTable maps a normalized country key (upper-cased, trimmed) to a
// decimal yield fraction. The same structure serves 10Y bond yields and
// equity risk premia; only the source column differs.
type CountryYieldTable struct {
	values map[string]float64

	// SkippedRows counts raw rows rejected during parsing.
	SkippedRows int
}

// Get returns the yield stored under an exact normalized key.
func (t *CountryYieldTable) Get(key string) (float64, bool) {
	v, ok := t.values[NormalizeCountry(key)]
	return v, ok
}

// Lookup resolves a country name to its yield, trying the exact key first and
// the static alias map second. It returns the key that actually matched so
// callers can report which row served the request.
func (t *CountryYieldTable) Lookup(country string) (yield float64, matched string, ok bool) {
	key := NormalizeCountry(country)
	if v, found := t.values[key]; found {
		return v, key, true
	}
	for _, alt := range CountryAliases(key) {
		if v, found := t.values[alt]; found {
			return v, alt, true
		}
	}
	return 0, "", false
}

// Len returns the number of countries stored.
func (t *CountryYieldTable) Len() int {
	return len(t.values)
}

// Countries returns the stored keys in sorted order, for presentation layers
// that list the available choices.
func (t *CountryYieldTable) Countries() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
