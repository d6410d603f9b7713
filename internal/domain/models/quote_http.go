package models

// QuoteRequest is bound from the /api/stock query string.
// Timeframe is deliberately not validated: unknown tokens fall back to 5D.
type QuoteRequest struct {
	Symbol    string `query:"symbol" json:"symbol" default:"AAPL" validate:"required,max=32"`
	Timeframe string `query:"timeframe" json:"timeframe" default:"5D"`
}

// TimeframeInfo describes one supported timeframe token resolved for today.
type TimeframeInfo struct {
	Token      string `json:"token"`
	From       string `json:"from"`
	To         string `json:"to"`
	Multiplier int    `json:"multiplier"`
	Unit       string `json:"unit"`
}
