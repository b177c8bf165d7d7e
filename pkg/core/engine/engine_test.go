package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"costofcapital/pkg/core/credit"
	"costofcapital/pkg/core/rates"
	"costofcapital/pkg/models"
)

func fixtureRefs(t *testing.T) *ReferenceSet {
	t.Helper()

	bondRows := [][]string{
		{"Country", "Yield 10y"},
		{"United States", "4.00"},
		{"Germany", "2.50"},
	}
	erpRows := [][]string{
		{"Country", "Total Equity Risk Premium"},
		{"United States", "5.00"},
		{"Germany", "5.80"},
	}
	ratingRows := [][]string{
		{"Min", "Max", "Rating", "Spread", "", "Min", "Max", "Rating", "Spread", "", "Min", "Max", "Rating", "Spread"},
		{"4.25", "100", "AAA", "0.0069", "", "6", "100", "AAA", "0.0069", "", "3", "100", "A", "0.012"},
		{"0.2", "4.25", "BB", "0.0322", "", "0.2", "6", "BB", "0.0322", "", "0.5", "3", "C", "0.09"},
		{"-100", "0.2", "D", "0.19", "", "-100", "0.2", "D", "0.19", "", "-100", "0.5", "D", "0.19"},
	}

	refs, err := LoadReferenceSet(bondRows, erpRows, ratingRows)
	if err != nil {
		t.Fatalf("LoadReferenceSet: %v", err)
	}
	return refs
}

func TestRunCostOfDebt(t *testing.T) {
	refs := fixtureRefs(t)
	profile := credit.ClassifyCompany("ACME", 12_000_000_000, "Technology", "Software")

	analysis, err := RunCostOfDebt(refs, profile, CostOfDebtInputs{
		EBIT:            9_000_000_000,
		InterestExpense: 1_000_000_000,
		Country:         "USA", // resolves via alias
		TaxRate:         0.25,
	})
	if err != nil {
		t.Fatalf("RunCostOfDebt: %v", err)
	}

	// Coverage 9.0 lands in the large-cap AAA band.
	if analysis.Credit.CoverageRatio != 9.0 {
		t.Errorf("expected coverage 9.0, got %v", analysis.Credit.CoverageRatio)
	}
	if analysis.Rating.Rating != "AAA" || analysis.Rating.Fallback {
		t.Errorf("expected AAA, got %+v", analysis.Rating)
	}
	if analysis.MatchedCountry != "UNITED STATES" {
		t.Errorf("expected alias to resolve to UNITED STATES, got %q", analysis.MatchedCountry)
	}
	// (0.04 + 0.0069) × 0.75 = 0.0351750
	if math.Abs(analysis.Result.AfterTax-0.0351750) > 1e-9 {
		t.Errorf("expected after-tax 0.035175, got %v", analysis.Result.AfterTax)
	}
}

func TestRunCostOfDebtFinancialCategory(t *testing.T) {
	refs := fixtureRefs(t)
	profile := credit.ClassifyCompany("BANK", 1_000_000_000, "Financial Services", "Banks")

	analysis, err := RunCostOfDebt(refs, profile, CostOfDebtInputs{
		EBIT:            200_000_000,
		InterestExpense: 100_000_000,
		Country:         "Germany",
		TaxRate:         0.30,
	})
	if err != nil {
		t.Fatalf("RunCostOfDebt: %v", err)
	}
	// Coverage 2.0 is C in the financial table, BB in the others.
	if analysis.Rating.Rating != "C" {
		t.Errorf("expected financial-table rating C, got %q", analysis.Rating.Rating)
	}
}

func TestRunCostOfDebtUnknownCountry(t *testing.T) {
	refs := fixtureRefs(t)
	profile := credit.ClassifyCompany("ACME", 1, "Technology", "Software")
	_, err := RunCostOfDebt(refs, profile, CostOfDebtInputs{
		EBIT: 1, InterestExpense: 1, Country: "Atlantis", TaxRate: 0.2,
	})
	if !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("expected ErrUnknownCountry, got %v", err)
	}
}

func priceHistory(symbol string, closes ...float64) models.PriceHistory {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := models.PriceHistory{Symbol: symbol}
	for i := range closes {
		c := closes[i]
		h.Points = append(h.Points, models.PricePoint{Date: start.AddDate(0, i, 0), Close: &c})
	}
	return h
}

func TestRunCostOfEquity(t *testing.T) {
	refs := fixtureRefs(t)
	// Stock log returns are exactly twice the index's (prices squared/100).
	index := priceHistory("^GSPC", 100, 102, 101, 105)
	stock := priceHistory("ACME", 100, 104.04, 102.01, 110.25)

	analysis, err := RunCostOfEquity(refs, stock, index, CostOfEquityInputs{
		BondCountry: "United States",
		ERPCountry:  "United States",
	})
	if err != nil {
		t.Fatalf("RunCostOfEquity: %v", err)
	}
	if math.Abs(analysis.Regression.Beta-2) > 1e-9 {
		t.Errorf("expected beta ≈ 2, got %v", analysis.Regression.Beta)
	}
	// 0.04 + 2 × 0.05 = 0.14
	if math.Abs(analysis.Result.CostOfEquity-0.14) > 1e-9 {
		t.Errorf("expected cost of equity 0.14, got %v", analysis.Result.CostOfEquity)
	}
}

func TestRunCostOfEquityERPOverride(t *testing.T) {
	refs := fixtureRefs(t)
	index := priceHistory("^GSPC", 100, 102, 101, 105)
	stock := priceHistory("ACME", 100, 104.04, 102.01, 110.25)

	analysis, err := RunCostOfEquity(refs, stock, index, CostOfEquityInputs{
		BondCountry: "United States",
		ERPCountry:  "ignored",
		ERPOverride: rates.Float(0.07),
	})
	if err != nil {
		t.Fatalf("RunCostOfEquity: %v", err)
	}
	if analysis.ERPCountry != "manual" {
		t.Errorf("expected manual ERP source, got %q", analysis.ERPCountry)
	}
	// 0.04 + 2 × 0.07 = 0.18
	if math.Abs(analysis.Result.CostOfEquity-0.18) > 1e-9 {
		t.Errorf("expected 0.18 with ERP override, got %v", analysis.Result.CostOfEquity)
	}
}

func TestRunWACCMarketMethod(t *testing.T) {
	analysis, err := RunWACC(WACCInputs{
		Method:          MarketValues,
		CostOfEquity:    0.10,
		CostOfDebt:      0.05,
		MarketCap:       30_000_000_000,
		BookValueOfDebt: 15_000_000_000,
		InterestExpense: 500_000_000,
		Maturity:        8.5,
	})
	if err != nil {
		t.Fatalf("RunWACC: %v", err)
	}
	if analysis.DebtValuation == nil {
		t.Fatal("expected debt valuation for the market method")
	}
	if math.Abs(analysis.DebtValuation.MarketValue-10384104217.86) > 0.01 {
		t.Errorf("expected MVD 10384104217.86, got %v", analysis.DebtValuation.MarketValue)
	}
	// Weights come from market cap and the PV-based debt value.
	total := 30_000_000_000 + analysis.DebtValuation.MarketValue
	wantWACC := 0.10*(30_000_000_000/total) + 0.05*(analysis.DebtValuation.MarketValue/total)
	if math.Abs(analysis.Result.WACC-wantWACC) > 1e-12 {
		t.Errorf("expected WACC %v, got %v", wantWACC, analysis.Result.WACC)
	}
}

func TestRunWACCBookMethod(t *testing.T) {
	analysis, err := RunWACC(WACCInputs{
		Method:            BookValues,
		CostOfEquity:      0.10,
		CostOfDebt:        0.05,
		BookValueOfDebt:   250,
		BookValueOfEquity: 750,
	})
	if err != nil {
		t.Fatalf("RunWACC: %v", err)
	}
	if analysis.DebtValuation != nil {
		t.Error("book method must not produce a debt valuation")
	}
	// 0.10 × 0.75 + 0.05 × 0.25 = 0.0875
	if math.Abs(analysis.Result.WACC-0.0875) > 1e-12 {
		t.Errorf("expected WACC 0.0875, got %v", analysis.Result.WACC)
	}
}

func TestRunWACCUnknownMethod(t *testing.T) {
	if _, err := RunWACC(WACCInputs{Method: "guess"}); !errors.Is(err, rates.ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for unknown method, got %v", err)
	}
}
