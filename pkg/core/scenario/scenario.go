// Package scenario parses the user-supplied financial inputs for one
// analysis run. The file format is HJSON so analysts can keep commented,
// loosely-quoted input files; monetary figures are entered in millions and
// scaled on load, matching the original prompts.
package scenario

import (
	"errors"
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// ErrMissingField flags a scenario that lacks a value the requested
// calculation needs.
var ErrMissingField = errors.New("scenario: required field missing")

const million = 1_000_000

// Scenario is one company's analysis inputs. Pointer fields distinguish
// "absent" from zero; monetary fields are in millions in the file.
type Scenario struct {
	Ticker      string `json:"ticker"`
	IndexSymbol string `json:"index_symbol"`
	Country     string `json:"country"`

	EBITMillions            *float64 `json:"ebit"`
	InterestExpenseMillions *float64 `json:"interest_expense"`
	TaxRatePercent          *float64 `json:"tax_rate"`

	// WACC inputs.
	CostOfEquityPercent      *float64 `json:"cost_of_equity"`
	CostOfDebtPercent        *float64 `json:"cost_of_debt"`
	BookDebtMillions         *float64 `json:"book_value_of_debt"`
	BookEquityMillions       *float64 `json:"book_value_of_equity"`
	DebtMaturityYears        *float64 `json:"debt_maturity"`
	EquityRiskPremiumPercent *float64 `json:"equity_risk_premium"`
}

// Load parses a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes HJSON scenario content.
func Parse(data []byte) (Scenario, error) {
	var s Scenario
	if err := hjson.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("scenario: parse: %w", err)
	}
	return s, nil
}

func scaled(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v * factor
	return &scaled
}

// EBIT returns EBIT in absolute currency units.
func (s Scenario) EBIT() *float64 { return scaled(s.EBITMillions, million) }

// InterestExpense returns interest expense in absolute currency units.
func (s Scenario) InterestExpense() *float64 { return scaled(s.InterestExpenseMillions, million) }

// BookDebt returns the book value of debt in absolute currency units.
func (s Scenario) BookDebt() *float64 { return scaled(s.BookDebtMillions, million) }

// BookEquity returns the book value of equity in absolute currency units.
func (s Scenario) BookEquity() *float64 { return scaled(s.BookEquityMillions, million) }

// TaxRate returns the tax rate as a decimal fraction.
func (s Scenario) TaxRate() *float64 { return scaled(s.TaxRatePercent, 0.01) }

// CostOfEquity returns the cost of equity as a decimal fraction.
func (s Scenario) CostOfEquity() *float64 { return scaled(s.CostOfEquityPercent, 0.01) }

// CostOfDebt returns the cost of debt as a decimal fraction.
func (s Scenario) CostOfDebt() *float64 { return scaled(s.CostOfDebtPercent, 0.01) }

// EquityRiskPremium returns the manual ERP as a decimal fraction, or nil.
func (s Scenario) EquityRiskPremium() *float64 { return scaled(s.EquityRiskPremiumPercent, 0.01) }

// RequireFields fails with ErrMissingField naming the first absent field.
func RequireFields(fields map[string]*float64) error {
	for name, v := range fields {
		if v == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}
