// Package regression estimates market beta by ordinary least squares on
// aligned logarithmic return series, with the standard diagnostics
// (correlation, R², slope standard error, t-statistic, two-sided p-value).
package regression

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"costofcapital/pkg/models"
)

var (
	// ErrNoPriceSeries means neither adjusted close nor close is present.
	ErrNoPriceSeries = errors.New("regression: no usable price series")
	// ErrInsufficientData means fewer than 2 aligned return observations.
	ErrInsufficientData = errors.New("regression: insufficient aligned observations")
	// ErrDegenerateRegression means the index returns have zero variance.
	ErrDegenerateRegression = errors.New("regression: index returns have zero variance")
)

// Return is one dated logarithmic return.
type Return struct {
	Date  time.Time
	Value float64
}

// closePrices extracts the usable price series from a history, preferring the
// adjusted close. A point missing both fields is dropped; a history where no
// point carries either field fails with ErrNoPriceSeries.
func closePrices(history models.PriceHistory) ([]models.PricePoint, []float64, error) {
	dates := make([]models.PricePoint, 0, len(history.Points))
	prices := make([]float64, 0, len(history.Points))
	for _, p := range history.Points {
		switch {
		case p.AdjClose != nil:
			dates = append(dates, p)
			prices = append(prices, *p.AdjClose)
		case p.Close != nil:
			dates = append(dates, p)
			prices = append(prices, *p.Close)
		}
	}
	if len(prices) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoPriceSeries, history.Symbol)
	}
	return dates, prices, nil
}

// LogReturns computes r_t = ln(p_t / p_{t-1}) for a price history, sorted by
// date. The first observation has no predecessor and is dropped.
func LogReturns(history models.PriceHistory) ([]Return, error) {
	points, prices, err := closePrices(history)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return points[order[a]].Date.Before(points[order[b]].Date)
	})

	returns := make([]Return, 0, len(prices)-1)
	for i := 1; i < len(order); i++ {
		prev := prices[order[i-1]]
		curr := prices[order[i]]
		returns = append(returns, Return{
			Date:  points[order[i]].Date,
			Value: math.Log(curr / prev),
		})
	}
	return returns, nil
}

// Align intersects two return series on their timestamps. Observations
// present in only one series are discarded.
func Align(a, b []Return) (x, y []float64) {
	byDate := make(map[time.Time]float64, len(b))
	for _, r := range b {
		byDate[r.Date] = r.Value
	}
	for _, r := range a {
		if v, ok := byDate[r.Date]; ok {
			x = append(x, r.Value)
			y = append(y, v)
		}
	}
	return x, y
}
