package reference

import (
	"errors"
	"math"
	"testing"
)

func TestBuildYieldTableNormalizesOnce(t *testing.T) {
	rows := [][]string{
		{"Country", "Yield 10y"},
		{"United States", "4.25"},  // whole percentage, divided by 100
		{"Germany", "0.0235"},      // already a fraction, kept as-is
		{"Japan", "1"},             // exactly 1 is a fraction, not 100%
		{"  France  ", " 3.10% "},  // trimmed, percent sign stripped
	}

	table, err := BuildYieldTable(rows, BondYieldColumns)
	if err != nil {
		t.Fatalf("BuildYieldTable: %v", err)
	}

	cases := map[string]float64{
		"UNITED STATES": 0.0425,
		"GERMANY":       0.0235,
		"JAPAN":         1.0,
		"FRANCE":        0.031,
	}
	for key, want := range cases {
		got, ok := table.Get(key)
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
	if table.SkippedRows != 0 {
		t.Errorf("expected 0 skipped rows, got %d", table.SkippedRows)
	}
}

func TestBuildYieldTableHeaderAliasPriority(t *testing.T) {
	// Both "Yield" and "Yield 10y" present; "Yield 10y" is first in the
	// alias list and must win even though "Yield" comes first in the row.
	rows := [][]string{
		{"Country", "Yield", "Yield 10y"},
		{"Italy", "9.99", "4.50"},
	}
	table, err := BuildYieldTable(rows, BondYieldColumns)
	if err != nil {
		t.Fatalf("BuildYieldTable: %v", err)
	}
	got, _ := table.Get("Italy")
	if math.Abs(got-0.045) > 1e-12 {
		t.Errorf("expected 0.045 from the Yield 10y column, got %v", got)
	}
}

func TestBuildYieldTableSkipsAndLastWins(t *testing.T) {
	rows := [][]string{
		{"Country", "ERP"},
		{"", "5.0"},            // blank country
		{"Spain", "n/a"},       // non-numeric value
		{"Spain"},              // short row
		{"Brazil", "8.0"},
		{"Brazil", "9.0"},      // duplicate, overwrites
	}
	table, err := BuildYieldTable(rows, ERPColumns)
	if err != nil {
		t.Fatalf("BuildYieldTable: %v", err)
	}
	if table.SkippedRows != 3 {
		t.Errorf("expected 3 skipped rows, got %d", table.SkippedRows)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 country, got %d", table.Len())
	}
	got, _ := table.Get("BRAZIL")
	if math.Abs(got-0.09) > 1e-12 {
		t.Errorf("expected last row to win with 0.09, got %v", got)
	}
}

func TestBuildYieldTableMissingColumn(t *testing.T) {
	rows := [][]string{
		{"Nation", "Yield 10y"},
		{"Canada", "3.3"},
	}
	if _, err := BuildYieldTable(rows, BondYieldColumns); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn for missing country column, got %v", err)
	}

	rows = [][]string{
		{"Country", "Rate"},
		{"Canada", "3.3"},
	}
	if _, err := BuildYieldTable(rows, BondYieldColumns); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn for missing value column, got %v", err)
	}
}

func TestBuildYieldTableEmpty(t *testing.T) {
	rows := [][]string{
		{"Country", "Yield"},
		{"", ""},
	}
	if _, err := BuildYieldTable(rows, BondYieldColumns); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestBuildRatingTablesBlocks(t *testing.T) {
	// One sheet row carries one band per category block, with spacer
	// columns at offsets 4 and 9.
	rows := [][]string{
		{"Min", "Max", "Rating", "Spread", "", "Min", "Max", "Rating", "Spread", "", "Min", "Max", "Rating", "Spread"},
		{"8.5", "100", "AAA", "0.0069", "", "12.5", "100", "AAA", "0.0069", "", "3", "100", "A", "0.012"},
		{"-100", "8.5", "BB", "0.03", "", "-100", "12.5", "BB", "0.03", "", "-100", "3", "C", "0.09"},
	}

	set, err := BuildRatingTables(rows)
	if err != nil {
		t.Fatalf("BuildRatingTables: %v", err)
	}

	if len(set.LargeCap) != 2 || len(set.SmallCap) != 2 || len(set.Financial) != 2 {
		t.Fatalf("expected 2 bands per category, got %d/%d/%d",
			len(set.LargeCap), len(set.SmallCap), len(set.Financial))
	}
	// Header row fails in all three blocks.
	if set.SkippedRows != 3 {
		t.Errorf("expected 3 skipped block parses, got %d", set.SkippedRows)
	}
	if set.LargeCap[0].Rating != "AAA" || set.LargeCap[0].Spread != 0.0069 {
		t.Errorf("unexpected large-cap first band: %+v", set.LargeCap[0])
	}
	if set.Financial[1].Rating != "C" || set.Financial[1].MaxRatio != 3 {
		t.Errorf("unexpected financial second band: %+v", set.Financial[1])
	}
}

func TestBuildRatingTablesEmpty(t *testing.T) {
	rows := [][]string{
		{"Min", "Max", "Rating", "Spread"},
		{"a", "b", "", "c"},
	}
	if _, err := BuildRatingTables(rows); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestRatingBandContains(t *testing.T) {
	band := RatingBand{MinRatio: 1.5, MaxRatio: 3}
	if !band.Contains(1.5) || !band.Contains(3) {
		t.Error("interval ends must be inclusive")
	}
	if band.Contains(1.4999) || band.Contains(3.0001) {
		t.Error("values outside the interval must not match")
	}
}

func TestForClass(t *testing.T) {
	set := &RatingTableSet{
		LargeCap:  RatingTable{{Rating: "L"}},
		SmallCap:  RatingTable{{Rating: "S"}},
		Financial: RatingTable{{Rating: "F"}},
	}
	if set.ForClass(SmallCap)[0].Rating != "S" {
		t.Error("ForClass(SmallCap) returned the wrong table")
	}
	if set.ForClass(Financial)[0].Rating != "F" {
		t.Error("ForClass(Financial) returned the wrong table")
	}
	if set.ForClass(LargeCap)[0].Rating != "L" {
		t.Error("ForClass(LargeCap) returned the wrong table")
	}
}
