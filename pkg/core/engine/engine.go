// Package engine wires the calculation stages into the three analyses the
// original workbook-driven workflow produces: cost of debt, cost of equity,
// and WACC. Each stage returns an immutable result struct that feeds the
// next; nothing is accumulated on the engine itself, so stages can be run
// and tested in isolation.
package engine

import (
	"errors"
	"fmt"

	"costofcapital/pkg/core/credit"
	"costofcapital/pkg/core/rates"
	"costofcapital/pkg/core/reference"
	"costofcapital/pkg/core/regression"
	"costofcapital/pkg/models"
)

// ErrUnknownCountry means neither the exact key nor any alias matched.
var ErrUnknownCountry = errors.New("engine: country not in reference table")

// ReferenceSet bundles the three normalized reference tables one analysis
// session works from. Built once at load time, read-only afterwards.
type ReferenceSet struct {
	BondYields       *reference.CountryYieldTable
	EquityRiskPremia *reference.CountryYieldTable
	Ratings          *reference.RatingTableSet
}

// LoadReferenceSet normalizes the three raw reference sheets.
func LoadReferenceSet(bondRows, erpRows, ratingRows [][]string) (*ReferenceSet, error) {
	bonds, err := reference.BuildYieldTable(bondRows, reference.BondYieldColumns)
	if err != nil {
		return nil, fmt.Errorf("bond yields: %w", err)
	}
	erp, err := reference.BuildYieldTable(erpRows, reference.ERPColumns)
	if err != nil {
		return nil, fmt.Errorf("equity risk premia: %w", err)
	}
	ratings, err := reference.BuildRatingTables(ratingRows)
	if err != nil {
		return nil, fmt.Errorf("synthetic ratings: %w", err)
	}
	return &ReferenceSet{BondYields: bonds, EquityRiskPremia: erp, Ratings: ratings}, nil
}

// RiskFreeRate resolves a country to its 10Y sovereign yield.
func (r *ReferenceSet) RiskFreeRate(country string) (float64, string, error) {
	yield, matched, ok := r.BondYields.Lookup(country)
	if !ok {
		return 0, "", fmt.Errorf("%w: %q (bond yields)", ErrUnknownCountry, country)
	}
	return yield, matched, nil
}

// EquityRiskPremium resolves a country to its equity risk premium.
func (r *ReferenceSet) EquityRiskPremium(country string) (float64, string, error) {
	erp, matched, ok := r.EquityRiskPremia.Lookup(country)
	if !ok {
		return 0, "", fmt.Errorf("%w: %q (equity risk premia)", ErrUnknownCountry, country)
	}
	return erp, matched, nil
}

// =============================================================================
// COST OF DEBT
// classify -> coverage -> synthetic rating -> risk-free rate -> formula
// =============================================================================

// CostOfDebtInputs are the user-supplied financials for the debt analysis.
type CostOfDebtInputs struct {
	EBIT            float64
	InterestExpense float64
	Country         string
	TaxRate         float64
}

// CostOfDebtAnalysis is the full staged result of a cost-of-debt run.
type CostOfDebtAnalysis struct {
	Profile        credit.CompanyProfile
	Credit         credit.CreditProfile
	Rating         credit.RatingResult
	MatchedCountry string
	Result         rates.CostOfDebtResult
}

// RunCostOfDebt executes the cost-of-debt pipeline for a classified company.
func RunCostOfDebt(refs *ReferenceSet, profile credit.CompanyProfile, in CostOfDebtInputs) (CostOfDebtAnalysis, error) {
	creditProfile := credit.NewCreditProfile(in.EBIT, in.InterestExpense)

	table := refs.Ratings.ForClass(profile.SizeClass)
	rating, err := credit.AssignRating(table, creditProfile.CoverageRatio)
	if err != nil {
		return CostOfDebtAnalysis{}, fmt.Errorf("assign rating (%s): %w", profile.SizeClass, err)
	}

	riskFree, matched, err := refs.RiskFreeRate(in.Country)
	if err != nil {
		return CostOfDebtAnalysis{}, err
	}

	result, err := rates.CostOfDebt(rates.Float(riskFree), rates.Float(rating.Spread), rates.Float(in.TaxRate))
	if err != nil {
		return CostOfDebtAnalysis{}, err
	}

	return CostOfDebtAnalysis{
		Profile:        profile,
		Credit:         creditProfile,
		Rating:         rating,
		MatchedCountry: matched,
		Result:         result,
	}, nil
}

// =============================================================================
// COST OF EQUITY
// log returns -> OLS beta -> risk-free rate + ERP -> CAPM
// =============================================================================

// CostOfEquityInputs selects the risk-free country and the ERP source.
// ERPOverride, when set, replaces the country lookup (manual entry in the
// original workflow).
type CostOfEquityInputs struct {
	BondCountry string
	ERPCountry  string
	ERPOverride *float64
}

// CostOfEquityAnalysis is the full staged result of a CAPM run.
type CostOfEquityAnalysis struct {
	Regression     regression.Result
	MatchedCountry string
	ERPCountry     string
	Result         rates.CostOfEquityResult
}

// RunCostOfEquity estimates beta from the two price histories and applies CAPM.
func RunCostOfEquity(refs *ReferenceSet, stock, index models.PriceHistory, in CostOfEquityInputs) (CostOfEquityAnalysis, error) {
	reg, err := regression.Estimate(stock, index)
	if err != nil {
		return CostOfEquityAnalysis{}, fmt.Errorf("beta estimation: %w", err)
	}

	riskFree, matchedBond, err := refs.RiskFreeRate(in.BondCountry)
	if err != nil {
		return CostOfEquityAnalysis{}, err
	}

	var erp float64
	var matchedERP string
	if in.ERPOverride != nil {
		erp = *in.ERPOverride
		matchedERP = "manual"
	} else {
		erp, matchedERP, err = refs.EquityRiskPremium(in.ERPCountry)
		if err != nil {
			return CostOfEquityAnalysis{}, err
		}
	}

	result, err := rates.CostOfEquity(rates.Float(riskFree), rates.Float(reg.Beta), rates.Float(erp))
	if err != nil {
		return CostOfEquityAnalysis{}, err
	}

	return CostOfEquityAnalysis{
		Regression:     reg,
		MatchedCountry: matchedBond,
		ERPCountry:     matchedERP,
		Result:         result,
	}, nil
}

// =============================================================================
// WACC
// rates + capital values (market or book) -> weights -> blended rate
// =============================================================================

// ValuationMethod selects how the capital-structure values are sourced.
type ValuationMethod string

const (
	MarketValues ValuationMethod = "market"
	BookValues   ValuationMethod = "book"
)

// WACCInputs carries the rates plus either market inputs (market cap and the
// bullet-bond debt inputs) or book values, per Method.
type WACCInputs struct {
	Method       ValuationMethod
	CostOfEquity float64
	CostOfDebt   float64

	// Market method
	MarketCap       float64
	BookValueOfDebt float64
	InterestExpense float64
	Maturity        float64

	// Book method
	BookValueOfEquity float64
}

// WACCAnalysis is the full staged result of a WACC run. DebtValuation is only
// populated for the market method.
type WACCAnalysis struct {
	Method        ValuationMethod
	DebtValuation *rates.MarketValueOfDebtResult
	Result        rates.WACCResult
}

// RunWACC computes capital weights and the blended rate. The market method
// estimates the market value of debt by discounting interest and principal at
// the pre-computed cost of debt; the book method uses balance-sheet values.
func RunWACC(in WACCInputs) (WACCAnalysis, error) {
	analysis := WACCAnalysis{Method: in.Method}

	var equityValue, debtValue float64
	switch in.Method {
	case BookValues:
		equityValue = in.BookValueOfEquity
		debtValue = in.BookValueOfDebt
	case MarketValues:
		mvd, err := rates.MarketValueOfDebt(
			rates.Float(in.InterestExpense),
			rates.Float(in.CostOfDebt),
			rates.Float(in.BookValueOfDebt),
			rates.Float(in.Maturity),
		)
		if err != nil {
			return WACCAnalysis{}, fmt.Errorf("market value of debt: %w", err)
		}
		analysis.DebtValuation = &mvd
		equityValue = in.MarketCap
		debtValue = mvd.MarketValue
	default:
		return WACCAnalysis{}, fmt.Errorf("%w: valuation method %q", rates.ErrInvalidValue, in.Method)
	}

	result, err := rates.WACC(
		rates.Float(in.CostOfEquity),
		rates.Float(in.CostOfDebt),
		rates.Float(equityValue),
		rates.Float(debtValue),
	)
	if err != nil {
		return WACCAnalysis{}, err
	}
	analysis.Result = result
	return analysis, nil
}
