package regression

import (
	"math"

	"costofcapital/pkg/models"
)

// Result holds the beta regression estimates and diagnostics.
// It is derived once from an aligned return pair and never mutated.
type Result struct {
	Beta         float64
	Alpha        float64
	RSquared     float64
	Correlation  float64
	PValue       float64
	StdError     float64
	TStatistic   float64
	Observations int

	// ExactFit is set when the residuals are zero and the slope standard
	// error vanishes. TStatistic is then a signed infinity and PValue is 0;
	// the flag tells callers the t-statistic is formally undefined rather
	// than letting an unflagged Inf leak through.
	ExactFit bool
}

// Estimate runs the full beta pipeline: extract price series, compute log
// returns, align on shared dates, and regress stock returns on index returns.
func Estimate(stock, index models.PriceHistory) (Result, error) {
	stockReturns, err := LogReturns(stock)
	if err != nil {
		return Result{}, err
	}
	indexReturns, err := LogReturns(index)
	if err != nil {
		return Result{}, err
	}
	x, y := Align(indexReturns, stockReturns)
	return Regress(x, y)
}

// Regress fits y = alpha + beta*x by ordinary least squares.
// x is the index return series, y the stock return series.
func Regress(x, y []float64) (Result, error) {
	n := len(x)
	if n < 2 || len(y) != n {
		return Result{}, ErrInsufficientData
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 {
		return Result{}, ErrDegenerateRegression
	}

	beta := sxy / sxx
	alpha := meanY - beta*meanX

	res := Result{
		Beta:         beta,
		Alpha:        alpha,
		Observations: n,
	}

	if syy > 0 {
		res.Correlation = sxy / math.Sqrt(sxx*syy)
		res.RSquared = res.Correlation * res.Correlation
	} else {
		// Constant stock returns: the fit is a flat line with no spread to
		// explain. Correlation is undefined; report zero.
		res.Correlation = 0
		res.RSquared = 0
	}

	// Residual sum of squares for the slope standard error.
	var sse float64
	for i := 0; i < n; i++ {
		resid := y[i] - (alpha + beta*x[i])
		sse += resid * resid
	}

	df := float64(n - 2)
	if df <= 0 || sse == 0 {
		// Two points, or a perfect fit. The slope is exact; its standard
		// error is zero and t = beta/stderr is undefined.
		res.StdError = 0
		res.TStatistic = math.Inf(sign(beta))
		res.PValue = 0
		res.ExactFit = true
		return res, nil
	}

	res.StdError = math.Sqrt(sse / df / sxx)
	res.TStatistic = beta / res.StdError
	res.PValue = StudentTPValue(res.TStatistic, n-2)
	return res, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
