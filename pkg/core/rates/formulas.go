// Package rates implements the discount-rate formulas: after-tax cost of
// debt, CAPM cost of equity, present-value market value of debt, and WACC.
// Every function is pure; inputs are pointers so an absent value is
// distinguishable from zero and fails fast with ErrMissingInput.
package rates

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMissingInput    = errors.New("rates: required input is absent")
	ErrInvalidValue    = errors.New("rates: input value out of domain")
	ErrDivideByZero    = errors.New("rates: cost of debt must be positive")
	ErrInvalidMaturity = errors.New("rates: maturity must be positive")
)

// BreakdownLine is one labeled intermediate quantity of a calculation,
// ordered for a reporting layer to render.
type BreakdownLine struct {
	Label string
	Value float64
}

func require(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	return *v, nil
}

// =============================================================================
// COST OF DEBT
// Kd = (Rf + Spread) × (1 − Tax Rate)
// =============================================================================

// CostOfDebtResult holds the after-tax cost of debt and its components.
type CostOfDebtResult struct {
	RiskFreeRate float64
	Spread       float64
	TaxRate      float64
	PreTax       float64
	AfterTax     float64
	Breakdown    []BreakdownLine
}

// CostOfDebt computes the after-tax cost of debt. Values outside [0,1] pass
// through untouched; range validation belongs to the input layer.
func CostOfDebt(riskFreeRate, spread, taxRate *float64) (CostOfDebtResult, error) {
	rf, err := require("risk-free rate", riskFreeRate)
	if err != nil {
		return CostOfDebtResult{}, err
	}
	sp, err := require("credit spread", spread)
	if err != nil {
		return CostOfDebtResult{}, err
	}
	tax, err := require("tax rate", taxRate)
	if err != nil {
		return CostOfDebtResult{}, err
	}

	preTax := rf + sp
	afterTax := preTax * (1 - tax)
	return CostOfDebtResult{
		RiskFreeRate: rf,
		Spread:       sp,
		TaxRate:      tax,
		PreTax:       preTax,
		AfterTax:     afterTax,
		Breakdown: []BreakdownLine{
			{"Risk-free Rate (Rf)", rf},
			{"Credit Spread", sp},
			{"Pre-tax Cost of Debt", preTax},
			{"Marginal Tax Rate", tax},
			{"Tax Shield (1 - Tax Rate)", 1 - tax},
			{"After-tax Cost of Debt", afterTax},
		},
	}, nil
}

// =============================================================================
// COST OF EQUITY (CAPM)
// Re = Rf + β × ERP
// =============================================================================

// CostOfEquityResult holds the CAPM rate and its components.
type CostOfEquityResult struct {
	RiskFreeRate      float64
	Beta              float64
	EquityRiskPremium float64
	CostOfEquity      float64
	Breakdown         []BreakdownLine
}

// CostOfEquity computes the CAPM cost of equity. Beta may be negative or
// arbitrarily large; no clamping is applied.
func CostOfEquity(riskFreeRate, beta, equityRiskPremium *float64) (CostOfEquityResult, error) {
	rf, err := require("risk-free rate", riskFreeRate)
	if err != nil {
		return CostOfEquityResult{}, err
	}
	b, err := require("beta", beta)
	if err != nil {
		return CostOfEquityResult{}, err
	}
	erp, err := require("equity risk premium", equityRiskPremium)
	if err != nil {
		return CostOfEquityResult{}, err
	}

	riskPremium := b * erp
	re := rf + riskPremium
	return CostOfEquityResult{
		RiskFreeRate:      rf,
		Beta:              b,
		EquityRiskPremium: erp,
		CostOfEquity:      re,
		Breakdown: []BreakdownLine{
			{"Risk-free Rate (Rf)", rf},
			{"Beta (β)", b},
			{"Equity Risk Premium (ERP)", erp},
			{"Beta × ERP", riskPremium},
			{"Cost of Equity (Re)", re},
		},
	}, nil
}

// =============================================================================
// MARKET VALUE OF DEBT
// PV of interest + PV of principal, treating total debt as one bullet bond.
// The PV-of-interest term uses the single-period form (1 − 1/(1+Kd))/Kd,
// not a full coupon annuity over the maturity.
// =============================================================================

// MarketValueOfDebtResult holds the PV estimate and its two components.
type MarketValueOfDebtResult struct {
	PVInterest  float64
	PVPrincipal float64
	MarketValue float64
	Breakdown   []BreakdownLine
}

// MarketValueOfDebt estimates the market value of total debt from the annual
// interest expense, the pre-computed cost of debt, the book value of debt and
// the weighted average maturity in years.
func MarketValueOfDebt(interestExpense, costOfDebt, bookValueOfDebt, maturity *float64) (MarketValueOfDebtResult, error) {
	interest, err := require("interest expense", interestExpense)
	if err != nil {
		return MarketValueOfDebtResult{}, err
	}
	kd, err := require("cost of debt", costOfDebt)
	if err != nil {
		return MarketValueOfDebtResult{}, err
	}
	book, err := require("book value of debt", bookValueOfDebt)
	if err != nil {
		return MarketValueOfDebtResult{}, err
	}
	years, err := require("maturity", maturity)
	if err != nil {
		return MarketValueOfDebtResult{}, err
	}

	if kd <= 0 {
		return MarketValueOfDebtResult{}, fmt.Errorf("%w: got %v", ErrDivideByZero, kd)
	}
	if years <= 0 {
		return MarketValueOfDebtResult{}, fmt.Errorf("%w: got %v", ErrInvalidMaturity, years)
	}

	pvInterest := interest * (1 - 1/(1+kd)) / kd
	pvPrincipal := book / math.Pow(1+kd, years)
	mv := pvInterest + pvPrincipal

	return MarketValueOfDebtResult{
		PVInterest:  pvInterest,
		PVPrincipal: pvPrincipal,
		MarketValue: mv,
		Breakdown: []BreakdownLine{
			{"Interest Expense", interest},
			{"Cost of Debt (Kd)", kd},
			{"Book Value of Debt", book},
			{"Maturity (years)", years},
			{"PV of Interest Payments", pvInterest},
			{"PV of Principal Repayment", pvPrincipal},
			{"Market Value of Debt", mv},
		},
	}, nil
}

// =============================================================================
// WACC
// WACC = Re × We + Kd × Wd, weights from the chosen capital values.
// =============================================================================

// WACCResult holds the blended rate, the weights, and the values behind them.
type WACCResult struct {
	CostOfEquity float64
	CostOfDebt   float64
	EquityValue  float64
	DebtValue    float64
	TotalValue   float64
	WeightEquity float64
	WeightDebt   float64
	WACC         float64
	Breakdown    []BreakdownLine
}

// WACC computes the weighted average cost of capital from the two rates and
// the equity/debt values (market or book, caller's choice).
func WACC(costOfEquity, costOfDebt, equityValue, debtValue *float64) (WACCResult, error) {
	ke, err := require("cost of equity", costOfEquity)
	if err != nil {
		return WACCResult{}, err
	}
	kd, err := require("cost of debt", costOfDebt)
	if err != nil {
		return WACCResult{}, err
	}
	ev, err := require("equity value", equityValue)
	if err != nil {
		return WACCResult{}, err
	}
	dv, err := require("debt value", debtValue)
	if err != nil {
		return WACCResult{}, err
	}

	total := ev + dv
	if total <= 0 {
		return WACCResult{}, fmt.Errorf("%w: equity + debt = %v", ErrInvalidValue, total)
	}

	we := ev / total
	wd := dv / total
	wacc := ke*we + kd*wd

	return WACCResult{
		CostOfEquity: ke,
		CostOfDebt:   kd,
		EquityValue:  ev,
		DebtValue:    dv,
		TotalValue:   total,
		WeightEquity: we,
		WeightDebt:   wd,
		WACC:         wacc,
		Breakdown: []BreakdownLine{
			{"Value of Equity", ev},
			{"Value of Debt", dv},
			{"Total Value", total},
			{"Weight of Equity", we},
			{"Weight of Debt", wd},
			{"Cost of Equity", ke},
			{"Cost of Debt", kd},
			{"Equity Component (Re × We)", ke * we},
			{"Debt Component (Kd × Wd)", kd * wd},
			{"WACC", wacc},
		},
	}, nil
}

// Float returns a pointer to v, for building optional formula inputs.
func Float(v float64) *float64 { return &v }
