// Package credit classifies companies into synthetic-rating categories and
// assigns a rating band from an interest coverage ratio.
package credit

import (
	"strings"

	"costofcapital/pkg/core/reference"
)

// LargeCapThreshold splits non-financial companies into large and small cap.
const LargeCapThreshold = 5_000_000_000

// financialKeywords flag a company as financial services when any of them
// appears in the sector or industry text.
var financialKeywords = []string{
	"financial", "bank", "insurance", "credit",
	"mortgage", "investment", "securities", "asset management",
}

// CompanyProfile describes a classified company.
type CompanyProfile struct {
	Ticker      string
	MarketCap   float64
	Sector      string
	Industry    string
	IsFinancial bool
	SizeClass   reference.SizeClass
}

// ClassifyCompany determines the rating category for a company. Financial
// services firms always use the financial table regardless of market cap;
// everyone else splits on the large-cap threshold.
func ClassifyCompany(ticker string, marketCap float64, sector, industry string) CompanyProfile {
	profile := CompanyProfile{
		Ticker:    strings.ToUpper(strings.TrimSpace(ticker)),
		MarketCap: marketCap,
		Sector:    sector,
		Industry:  industry,
	}
	profile.IsFinancial = containsFinancialKeyword(sector) || containsFinancialKeyword(industry)

	switch {
	case profile.IsFinancial:
		profile.SizeClass = reference.Financial
	case marketCap > LargeCapThreshold:
		profile.SizeClass = reference.LargeCap
	default:
		profile.SizeClass = reference.SmallCap
	}
	return profile
}

func containsFinancialKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NoDebtCoverageRatio is the sentinel coverage assigned when interest expense
// is zero or negative, modeling a company with effectively no debt burden.
const NoDebtCoverageRatio = 20.0

// CreditProfile holds the debt-servicing inputs and the derived coverage.
type CreditProfile struct {
	EBIT            float64
	InterestExpense float64
	CoverageRatio   float64
}

// NewCreditProfile derives the interest coverage ratio. When interest expense
// is not positive the ratio is pinned at NoDebtCoverageRatio rather than
// dividing by zero.
func NewCreditProfile(ebit, interestExpense float64) CreditProfile {
	profile := CreditProfile{EBIT: ebit, InterestExpense: interestExpense}
	if interestExpense > 0 {
		profile.CoverageRatio = ebit / interestExpense
	} else {
		profile.InterestExpense = 0
		profile.CoverageRatio = NoDebtCoverageRatio
	}
	return profile
}
