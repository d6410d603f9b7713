package repository

import (
	"context"

	"QuoteDesk/internal/domain/models"
)

// BarQuery identifies whose bars to fetch and with which credential.
type BarQuery struct {
	APIKey string
	Symbol string
}

// MarketData is the upstream provider port.
type MarketData interface {
	// PreviousClose returns the most recent bar(s) for the symbol.
	PreviousClose(ctx context.Context, q BarQuery) ([]models.Bar, error)
	// Aggregates returns bars for the range, oldest first, split-adjusted.
	Aggregates(ctx context.Context, q BarQuery, spec TimeframeSpec) ([]models.Bar, error)
}

type Metrics interface {
	RecordUpstream(call, result string, seconds float64)
	RecordDegraded(reason string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
}
