package scenario

import (
	"errors"
	"math"
	"testing"
)

func TestParseScalesUnits(t *testing.T) {
	// HJSON: comments and unquoted keys are allowed.
	input := []byte(`{
		// Acme Corp, FY2025 inputs
		ticker: ACME
		index_symbol: ^GSPC
		country: United States
		ebit: 9000        // millions
		interest_expense: 1000
		tax_rate: 25      // percent
		book_value_of_debt: 15000
		debt_maturity: 8.5
	}`)

	s, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Ticker != "ACME" || s.IndexSymbol != "^GSPC" || s.Country != "United States" {
		t.Errorf("unexpected identity fields: %+v", s)
	}
	if got := *s.EBIT(); math.Abs(got-9_000_000_000) > 1e-6 {
		t.Errorf("expected EBIT 9e9, got %v", got)
	}
	if got := *s.InterestExpense(); math.Abs(got-1_000_000_000) > 1e-6 {
		t.Errorf("expected interest 1e9, got %v", got)
	}
	if got := *s.BookDebt(); math.Abs(got-15_000_000_000) > 1e-6 {
		t.Errorf("expected book debt 1.5e10, got %v", got)
	}
	if got := *s.TaxRate(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected tax rate 0.25, got %v", got)
	}
	if *s.DebtMaturityYears != 8.5 {
		t.Errorf("maturity is not scaled, expected 8.5, got %v", *s.DebtMaturityYears)
	}
}

func TestAbsentFieldsStayNil(t *testing.T) {
	// Quoteless HJSON values run to end of line, so the brace gets its own.
	s, err := Parse([]byte("{\n\tticker: ACME\n}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.EBIT() != nil || s.CostOfEquity() != nil || s.EquityRiskPremium() != nil {
		t.Error("absent fields must stay nil after scaling")
	}
}

func TestRequireFields(t *testing.T) {
	v := 1.0
	if err := RequireFields(map[string]*float64{"ebit": &v}); err != nil {
		t.Errorf("expected nil for present field, got %v", err)
	}
	err := RequireFields(map[string]*float64{"ebit": &v, "tax_rate": nil})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}
