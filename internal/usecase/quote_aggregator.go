package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"QuoteDesk/internal/domain/models"
	drepo "QuoteDesk/internal/domain/repository"
	applogger "QuoteDesk/pkg/logger"
)

// DefaultSymbol is served when the caller omits the ticker.
const DefaultSymbol = "AAPL"

const (
	labelIntraday = "3:04 PM"
	labelDaily    = "Jan 2"
)

// QuoteAggregator builds a QuoteSummary from the latest bar and a
// historical range fetched from the market data provider.
type QuoteAggregator struct {
	md      drepo.MarketData
	metrics drepo.Metrics
	apiKey  string
	logger  *applogger.Logger
	now     func() time.Time
	loc     *time.Location
}

type QuoteOption func(*QuoteAggregator)

// WithClock overrides the time source used to resolve "today".
func WithClock(now func() time.Time) QuoteOption {
	return func(a *QuoteAggregator) { a.now = now }
}

// WithLocation sets the calendar used for date ranges and chart labels.
func WithLocation(loc *time.Location) QuoteOption {
	return func(a *QuoteAggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func WithLogger(l *applogger.Logger) QuoteOption {
	return func(a *QuoteAggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewQuoteAggregator(md drepo.MarketData, metrics drepo.Metrics, apiKey string, opts ...QuoteOption) *QuoteAggregator {
	a := &QuoteAggregator{
		md:      md,
		metrics: metrics,
		apiKey:  apiKey,
		logger:  applogger.Nop(),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// latestResult is fatal on error: the summary cannot exist without it.
type latestResult struct {
	bar models.Bar
	err error
}

// historyResult degrades to an empty chart on error.
type historyResult struct {
	bars []models.Bar
	err  error
}

// Summary returns the quote summary for symbol over the timeframe token.
// Unknown tokens resolve to the default range but are echoed as given.
func (a *QuoteAggregator) Summary(ctx context.Context, symbol, timeframe string) (*models.QuoteSummary, error) {
	symbol = NormalizeSymbol(symbol)
	if timeframe == "" {
		timeframe = string(drepo.DefaultTimeframe())
	}
	if a.apiKey == "" {
		a.recordError("config")
		return nil, models.ErrMissingCredential
	}

	if !drepo.IsValidTimeframe(drepo.Timeframe(timeframe)) {
		a.logger.Debug("unknown timeframe, using default range",
			applogger.String("timeframe", timeframe),
			applogger.String("default", string(drepo.DefaultTimeframe())),
		)
	}
	spec := drepo.ResolveTimeframe(timeframe, a.now().In(a.loc))
	q := drepo.BarQuery{APIKey: a.apiKey, Symbol: symbol}

	var (
		latest  latestResult
		history historyResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		latest = a.fetchLatest(gctx, q)
		return latest.err
	})
	g.Go(func() error {
		bars, err := a.md.Aggregates(gctx, q, spec)
		history = historyResult{bars: bars, err: err}
		return nil
	})
	_ = g.Wait()

	summary, err := a.merge(symbol, timeframe, latest, history)
	if err != nil {
		a.logFailure(symbol, timeframe, err)
		return nil, err
	}

	if history.err != nil || len(history.bars) == 0 {
		reason := "history_empty"
		fields := []applogger.Field{
			applogger.String("symbol", symbol),
			applogger.String("timeframe", timeframe),
			applogger.String("from", spec.From()),
			applogger.String("to", spec.To()),
		}
		if history.err != nil {
			reason = "history_error"
			fields = append(fields, applogger.Error(history.err))
		}
		a.logger.Warn("chart data unavailable, serving summary without history", fields...)
		if a.metrics != nil {
			a.metrics.RecordDegraded(reason)
		}
	}

	a.logger.Debug("quote summary built",
		applogger.String("symbol", symbol),
		applogger.String("timeframe", timeframe),
		applogger.Float64("price", summary.CurrentPrice),
		applogger.Float64("change_percent", summary.ChangePercent),
		applogger.Int("points", len(summary.ChartData)),
	)
	if a.metrics != nil {
		a.metrics.RecordLastPrice(symbol, summary.CurrentPrice)
	}
	return summary, nil
}

func (a *QuoteAggregator) fetchLatest(ctx context.Context, q drepo.BarQuery) latestResult {
	bars, err := a.md.PreviousClose(ctx, q)
	if err != nil {
		return latestResult{err: err}
	}
	if len(bars) == 0 {
		return latestResult{err: models.ErrNotFound}
	}
	return latestResult{bar: bars[0]}
}

// merge combines both results. Only the latest result can fail the summary.
func (a *QuoteAggregator) merge(symbol, timeframe string, latest latestResult, history historyResult) (*models.QuoteSummary, error) {
	if latest.err != nil {
		if errors.Is(latest.err, models.ErrNotFound) || models.IsUpstream(latest.err) {
			return nil, latest.err
		}
		return nil, fmt.Errorf("fetch latest bar for %s: %w", symbol, latest.err)
	}

	bar := latest.bar
	amount, percent := change(bar.Close, bar.Open)

	chart := []models.ChartPoint{}
	if history.err == nil {
		chart = a.chartSeries(history.bars, timeframe)
	}

	return &models.QuoteSummary{
		Symbol:        symbol,
		CurrentPrice:  bar.Close,
		ChangePercent: percent,
		ChangeAmount:  amount,
		Open:          bar.Open,
		High:          bar.High,
		Low:           bar.Low,
		Volume:        bar.Volume,
		ChartData:     chart,
		Timeframe:     timeframe,
	}, nil
}

// change returns close-open and the same as a percentage of open.
// A zero open yields a zero percentage.
func change(closePrice, openPrice float64) (float64, float64) {
	c := decimal.NewFromFloat(closePrice)
	o := decimal.NewFromFloat(openPrice)
	amount := c.Sub(o)
	if o.IsZero() {
		return amount.InexactFloat64(), 0
	}
	percent := amount.Mul(decimal.NewFromInt(100)).Div(o)
	return amount.InexactFloat64(), percent.InexactFloat64()
}

func (a *QuoteAggregator) chartSeries(bars []models.Bar, timeframe string) []models.ChartPoint {
	layout := labelDaily
	if timeframe == string(drepo.TF1D) {
		layout = labelIntraday
	}

	points := make([]models.ChartPoint, 0, len(bars))
	seen := make(map[string]struct{}, len(bars))
	for _, b := range bars {
		label := b.Time().In(a.loc).Format(layout)
		seen[label] = struct{}{}
		points = append(points, models.ChartPoint{Date: label, Price: b.Close})
	}
	if len(seen) < len(points) {
		a.logger.Debug("chart labels are not unique",
			applogger.String("timeframe", timeframe),
			applogger.Int("points", len(points)),
			applogger.Int("labels", len(seen)),
		)
	}
	return points
}

func (a *QuoteAggregator) logFailure(symbol, timeframe string, err error) {
	kind := "unexpected"
	switch {
	case errors.Is(err, models.ErrNotFound):
		kind = "not_found"
	case models.IsUpstream(err):
		kind = "upstream"
	}
	a.recordError(kind)
	a.logger.Error("quote summary failed",
		applogger.String("symbol", symbol),
		applogger.String("timeframe", timeframe),
		applogger.String("kind", kind),
		applogger.Error(err),
	)
}

func (a *QuoteAggregator) recordError(kind string) {
	if a.metrics != nil {
		a.metrics.RecordError(kind)
	}
}

// Timeframes lists the supported tokens resolved against today.
func (a *QuoteAggregator) Timeframes() []models.TimeframeInfo {
	now := a.now().In(a.loc)
	tfs := drepo.Timeframes()
	out := make([]models.TimeframeInfo, 0, len(tfs))
	for _, tf := range tfs {
		spec := drepo.ResolveTimeframe(string(tf), now)
		out = append(out, models.TimeframeInfo{
			Token:      string(tf),
			From:       spec.From(),
			To:         spec.To(),
			Multiplier: spec.Multiplier,
			Unit:       string(spec.Unit),
		})
	}
	return out
}

// NormalizeSymbol trims and uppercases a ticker, defaulting to AAPL.
func NormalizeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultSymbol
	}
	return s
}
