package types

import "math"

// Quote is a point-in-time snapshot of a symbol's market state and the
// fundamental fields the dashboard shows alongside the chart. Missing numeric
// fields are NaN, mirroring the undefined convention used for indicator
// columns.
type Quote struct {
	Symbol         string
	CompanyName    string
	Exchange       string
	Sector         string
	Industry       string
	Summary        string
	Currency       string
	Price          float64
	PreviousClose  float64
	Change         float64
	ChangePercent  float64
	MarketCap      float64
	TrailingPE     float64
	ForwardPE      float64
	EPS            float64
	PriceToBook    float64
	DividendYield  float64
	PayoutRatio    float64
	Beta           float64
	ReturnOnEquity float64
	ProfitMargin   float64
	DebtToEquity   float64
	Volume         float64
}

// MissingQuoteField is the sentinel for a fundamental field the provider did
// not supply.
func MissingQuoteField() float64 {
	return math.NaN()
}

// HasField reports whether a quote field carries a real value.
func HasField(v float64) bool {
	return !math.IsNaN(v)
}

// Article is one news search hit shown in the dashboard and fed into the
// narrative prompt.
type Article struct {
	Title     string
	Link      string
	Source    string
	Published string
}
