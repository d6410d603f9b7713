package models

import "time"

// Bar is a single OHLCV sample as returned by the upstream aggregates API.
// Ticker is only present on some endpoints; it must stay declared so "T"
// never folds onto the timestamp key.
type Bar struct {
	Ticker    string  `json:"T,omitempty"`
	Timestamp int64   `json:"t"` // epoch millis
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
}

// Time returns the bar start as a time.Time in UTC.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// ChartPoint is one entry of the chart series.
type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// QuoteSummary is the payload served for a symbol/timeframe pair.
// Price-change fields derive from the latest bar only; ChartData is sourced
// from the historical range and may be empty.
type QuoteSummary struct {
	Symbol        string       `json:"symbol"`
	CurrentPrice  float64      `json:"currentPrice"`
	ChangePercent float64      `json:"changePercent"`
	ChangeAmount  float64      `json:"changeAmount"`
	Open          float64      `json:"open"`
	High          float64      `json:"high"`
	Low           float64      `json:"low"`
	Volume        float64      `json:"volume"`
	ChartData     []ChartPoint `json:"chartData"`
	Timeframe     string       `json:"timeframe"`
}
