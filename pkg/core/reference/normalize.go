package reference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// RAW ROW NORMALIZATION
// Strict schema-first parsing with row-level skip+continue. Rejected rows are
// counted and surfaced on the parsed table instead of disappearing silently.
// =============================================================================

// Parsing failures that callers are expected to branch on.
var (
	ErrMissingColumn = errors.New("reference: required column not found")
	ErrEmptyTable    = errors.New("reference: no valid rows parsed")
)

// Header aliases accepted for the value column, in priority order.
// The first alias present in the header row wins.
var (
	BondYieldColumns = []string{"Yield 10y", "10Y Yield", "Yield", "10 Year Yield"}
	ERPColumns       = []string{"Total Equity Risk Premium", "Equity Risk Premium", "ERP"}
)

// CountryColumn is the mandatory key column for yield and ERP tables.
const CountryColumn = "Country"

// NormalizeCountry produces the canonical lookup key for a country cell.
func NormalizeCountry(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// normalizeFraction converts a raw numeric value to a decimal fraction.
// Values above 1 are whole percentages and are divided by 100; this is the
// single place that conversion happens, so stored values are never rescaled.
func normalizeFraction(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// findColumn locates the first alias present in the header row.
func findColumn(header []string, aliases []string) (int, bool) {
	for _, alias := range aliases {
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), alias) {
				return i, true
			}
		}
	}
	return 0, false
}

func parseCell(cell string) (float64, bool) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(cell, "%", ""))
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BuildYieldTable parses rows into a country→fraction lookup. The first row
// is the header; the value column is chosen from valueAliases in priority
// order. Rows with a blank country or non-numeric value are skipped and
// counted. Duplicate countries overwrite, last row wins.
func BuildYieldTable(rows [][]string, valueAliases []string) (*CountryYieldTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	header := rows[0]

	countryIdx, ok := findColumn(header, []string{CountryColumn})
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, CountryColumn)
	}
	valueIdx, ok := findColumn(header, valueAliases)
	if !ok {
		return nil, fmt.Errorf("%w: none of %v", ErrMissingColumn, valueAliases)
	}

	table := &CountryYieldTable{values: make(map[string]float64)}
	for _, row := range rows[1:] {
		if countryIdx >= len(row) || valueIdx >= len(row) {
			table.SkippedRows++
			continue
		}
		country := NormalizeCountry(row[countryIdx])
		value, numeric := parseCell(row[valueIdx])
		if country == "" || !numeric {
			table.SkippedRows++
			continue
		}
		table.values[country] = normalizeFraction(value)
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: yield table", ErrEmptyTable)
	}
	return table, nil
}

// Column offsets of the three category blocks within one ratings sheet.
// Matches the original workbook layout: large cap 0-3, small cap 5-8,
// financial services 10-13, with spacer columns between blocks.
var ratingBlocks = []struct {
	class SizeClass
	start int
}{
	{LargeCap, 0},
	{SmallCap, 5},
	{Financial, 10},
}

// BuildRatingTables parses the synthetic-rating sheet into its three category
// tables. Each block contributes rows of (min ratio, max ratio, rating label,
// spread); rows whose bounds or spread fail to parse are skipped per block.
// Returns ErrEmptyTable only when every category came out empty.
func BuildRatingTables(rows [][]string) (*RatingTableSet, error) {
	set := &RatingTableSet{}

	for _, row := range rows {
		for _, block := range ratingBlocks {
			band, ok := parseBand(row, block.start)
			if !ok {
				set.SkippedRows++
				continue
			}
			switch block.class {
			case LargeCap:
				set.LargeCap = append(set.LargeCap, band)
			case SmallCap:
				set.SmallCap = append(set.SmallCap, band)
			case Financial:
				set.Financial = append(set.Financial, band)
			}
		}
	}

	if len(set.LargeCap) == 0 && len(set.SmallCap) == 0 && len(set.Financial) == 0 {
		return nil, fmt.Errorf("%w: rating tables", ErrEmptyTable)
	}
	return set, nil
}

func parseBand(row []string, start int) (RatingBand, bool) {
	if start+3 >= len(row) {
		return RatingBand{}, false
	}
	min, okMin := parseCell(row[start])
	max, okMax := parseCell(row[start+1])
	rating := strings.TrimSpace(row[start+2])
	spread, okSpread := parseCell(row[start+3])
	if !okMin || !okMax || !okSpread || rating == "" {
		return RatingBand{}, false
	}
	return RatingBand{MinRatio: min, MaxRatio: max, Rating: rating, Spread: spread}, true
}
