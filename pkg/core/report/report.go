// Package report renders analysis results into Markdown documents the way
// the original tool exported Excel workbooks: one main results section plus
// a step-by-step calculation section per formula.
package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"costofcapital/pkg/core/engine"
	"costofcapital/pkg/core/rates"
)

// Report is one rendered analysis document.
type Report struct {
	RunID     string
	Ticker    string
	Title     string
	Generated time.Time
	Markdown  string
}

// builder accumulates Markdown sections.
type builder struct {
	buf bytes.Buffer
}

func newReport(title, ticker string) (*Report, *builder) {
	r := &Report{
		RunID:     uuid.NewString(),
		Ticker:    ticker,
		Title:     title,
		Generated: time.Now().UTC(),
	}
	b := &builder{}
	b.printf("# %s\n\n", title)
	if ticker != "" {
		b.printf("- Company: **%s**\n", ticker)
	}
	b.printf("- Run: `%s`\n", r.RunID)
	b.printf("- Generated: %s\n\n", r.Generated.Format(time.RFC3339))
	return r, b
}

func (b *builder) printf(format string, args ...interface{}) {
	fmt.Fprintf(&b.buf, format, args...)
}

func (b *builder) section(title string) {
	b.printf("## %s\n\n", title)
}

func (b *builder) breakdown(lines []rates.BreakdownLine) {
	b.printf("| Step | Value |\n|---|---|\n")
	for _, line := range lines {
		b.printf("| %s | %s |\n", line.Label, formatValue(line.Label, line.Value))
	}
	b.printf("\n")
}

// formatValue renders each breakdown quantity per what its label names:
// monetary amounts with separators, betas and year counts as plain numbers,
// everything else as a percentage. Keyed on the label, not the magnitude, so
// an extreme rate or ratio never masquerades as a dollar amount.
func formatValue(label string, v float64) string {
	switch {
	case isMonetaryLabel(label):
		return fmt.Sprintf("$%s", withCommas(v))
	case strings.Contains(label, "β") || strings.Contains(label, "Beta"):
		return fmt.Sprintf("%.4f", v)
	case strings.Contains(label, "Maturity"):
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f%%", v*100)
	}
}

func isMonetaryLabel(label string) bool {
	for _, marker := range []string{"Value", "Expense", "PV of"} {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}

func withCommas(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// CostOfDebt renders a cost-of-debt analysis.
func CostOfDebt(a engine.CostOfDebtAnalysis) Report {
	r, b := newReport("Cost of Debt Analysis", a.Profile.Ticker)

	b.section("Company Classification")
	b.printf("| Field | Value |\n|---|---|\n")
	b.printf("| Market Cap | $%s |\n", withCommas(a.Profile.MarketCap))
	b.printf("| Sector | %s |\n", a.Profile.Sector)
	b.printf("| Industry | %s |\n", a.Profile.Industry)
	b.printf("| Financial Services | %v |\n", a.Profile.IsFinancial)
	b.printf("| Rating Category | %s |\n\n", a.Profile.SizeClass)

	b.section("Synthetic Rating")
	b.printf("| Field | Value |\n|---|---|\n")
	b.printf("| EBIT | $%s |\n", withCommas(a.Credit.EBIT))
	b.printf("| Interest Expense | $%s |\n", withCommas(a.Credit.InterestExpense))
	b.printf("| Interest Coverage Ratio | %.2f |\n", a.Credit.CoverageRatio)
	b.printf("| Assigned Rating | %s |\n", a.Rating.Rating)
	b.printf("| Credit Spread | %.2f%% |\n", a.Rating.Spread*100)
	if a.Rating.Fallback {
		b.printf("| Note | coverage outside all bands, worst rating applied |\n")
	}
	b.printf("\n")

	b.section("Calculation — Kd = (Rf + Spread) × (1 − Tax Rate)")
	b.breakdown(a.Result.Breakdown)

	r.Markdown = b.buf.String()
	return *r
}

// CostOfEquity renders a CAPM analysis.
func CostOfEquity(a engine.CostOfEquityAnalysis, ticker string) Report {
	r, b := newReport("Cost of Equity Analysis (CAPM)", ticker)

	b.section("Beta Regression")
	reg := a.Regression
	b.printf("| Statistic | Value |\n|---|---|\n")
	b.printf("| Beta | %.4f |\n", reg.Beta)
	b.printf("| Alpha | %.6f |\n", reg.Alpha)
	b.printf("| R-squared | %.4f |\n", reg.RSquared)
	b.printf("| Correlation | %.4f |\n", reg.Correlation)
	b.printf("| Standard Error | %.6f |\n", reg.StdError)
	if reg.ExactFit {
		b.printf("| T-statistic | undefined (exact fit) |\n")
	} else {
		b.printf("| T-statistic | %.4f |\n", reg.TStatistic)
		b.printf("| P-value | %.6f |\n", reg.PValue)
	}
	b.printf("| Observations | %d |\n\n", reg.Observations)

	b.section("Calculation — Re = Rf + β × ERP")
	b.breakdown(a.Result.Breakdown)

	r.Markdown = b.buf.String()
	return *r
}

// WACC renders a WACC analysis.
func WACC(a engine.WACCAnalysis, ticker string) Report {
	r, b := newReport("WACC Analysis", ticker)

	b.section("Valuation Method")
	b.printf("Using **%s values** for capital weights.\n\n", a.Method)

	if a.DebtValuation != nil {
		b.section("Market Value of Debt")
		b.breakdown(a.DebtValuation.Breakdown)
	}

	b.section("Calculation — WACC = Re × We + Kd × Wd")
	b.breakdown(a.Result.Breakdown)

	r.Markdown = b.buf.String()
	return *r
}

// WriteFiles saves the report under dir as Markdown, plus HTML when asked.
// Filenames follow the original's ticker+timestamp convention.
func (r Report) WriteFiles(dir string, renderHTML bool) ([]string, error) {
	stem := strings.ToLower(strings.ReplaceAll(r.Title, " ", "_"))
	if r.Ticker != "" {
		stem = fmt.Sprintf("%s_%s", stem, strings.ToLower(r.Ticker))
	}
	stem = fmt.Sprintf("%s_%s", stem, r.Generated.Format("20060102_150405"))

	mdPath := filepath.Join(dir, stem+".md")
	if err := os.WriteFile(mdPath, []byte(r.Markdown), 0o644); err != nil {
		return nil, fmt.Errorf("report: write %s: %w", mdPath, err)
	}
	written := []string{mdPath}

	if renderHTML {
		var html bytes.Buffer
		if err := goldmark.Convert([]byte(r.Markdown), &html); err != nil {
			return written, fmt.Errorf("report: render html: %w", err)
		}
		htmlPath := filepath.Join(dir, stem+".html")
		if err := os.WriteFile(htmlPath, html.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("report: write %s: %w", htmlPath, err)
		}
		written = append(written, htmlPath)
	}
	return written, nil
}
