// Package models defines the market-data value types shared between the
// fetch layer and the calculation engine.
package models

import "time"

// PricePoint is one dated observation of an asset's price. Either close may
// be absent (nil); the beta estimator prefers the adjusted close and falls
// back to the raw close.
type PricePoint struct {
	Date     time.Time `json:"date"`
	Close    *float64  `json:"close,omitempty"`
	AdjClose *float64  `json:"adj_close,omitempty"`
}

// PriceHistory is an ordered series of price points for one symbol.
type PriceHistory struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// CompanyInfo carries the fundamentals the credit classifier needs.
type CompanyInfo struct {
	Ticker    string  `json:"ticker"`
	LongName  string  `json:"long_name"`
	MarketCap float64 `json:"market_cap"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
}
