package repository

import (
	"time"

	"QuoteDesk/pkg/util"
)

// Timeframe is a user-facing chart period token.
type Timeframe string

const (
	TF1D  Timeframe = "1D"
	TF5D  Timeframe = "5D"
	TF1M  Timeframe = "1M"
	TF6M  Timeframe = "6M"
	TFYTD Timeframe = "YTD"
	TF1Y  Timeframe = "1Y"
	TF5Y  Timeframe = "5Y"
	TFMax Timeframe = "MAX"
)

// SamplingUnit is the bar granularity requested from the provider.
type SamplingUnit string

const (
	UnitMinute SamplingUnit = "minute"
	UnitDay    SamplingUnit = "day"
	UnitWeek   SamplingUnit = "week"
	UnitMonth  SamplingUnit = "month"
)

// TimeframeSpec is a concrete date range plus sampling for one request.
// Both dates are calendar days (midnight) and inclusive.
type TimeframeSpec struct {
	StartDate  time.Time
	EndDate    time.Time
	Multiplier int
	Unit       SamplingUnit
}

// From returns the start date as YYYY-MM-DD.
func (s TimeframeSpec) From() string { return util.FormatDate(s.StartDate) }

// To returns the end date as YYYY-MM-DD.
func (s TimeframeSpec) To() string { return util.FormatDate(s.EndDate) }

type timeframeEntry struct {
	start      func(today time.Time) time.Time
	multiplier int
	unit       SamplingUnit
}

func daysBack(n int) func(time.Time) time.Time {
	return func(today time.Time) time.Time { return today.AddDate(0, 0, -n) }
}

func monthsBack(n int) func(time.Time) time.Time {
	return func(today time.Time) time.Time { return today.AddDate(0, -n, 0) }
}

func yearsBack(n int) func(time.Time) time.Time {
	return func(today time.Time) time.Time { return today.AddDate(-n, 0, 0) }
}

func startOfYear(today time.Time) time.Time {
	return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
}

// AddDate normalizes overflowing days (Mar 31 - 1 month = Mar 3); that is accepted.
var timeframes = map[Timeframe]timeframeEntry{
	TF1D:  {start: daysBack(1), multiplier: 5, unit: UnitMinute},
	TF5D:  {start: daysBack(5), multiplier: 1, unit: UnitDay},
	TF1M:  {start: monthsBack(1), multiplier: 1, unit: UnitDay},
	TF6M:  {start: monthsBack(6), multiplier: 1, unit: UnitDay},
	TFYTD: {start: startOfYear, multiplier: 1, unit: UnitDay},
	TF1Y:  {start: yearsBack(1), multiplier: 1, unit: UnitDay},
	TF5Y:  {start: yearsBack(5), multiplier: 1, unit: UnitWeek},
	TFMax: {start: yearsBack(10), multiplier: 1, unit: UnitMonth},
}

// fallbackTimeframe is used for absent or unknown tokens.
var fallbackTimeframe = timeframeEntry{start: daysBack(5), multiplier: 1, unit: UnitDay}

var timeframeOrder = []Timeframe{TF1D, TF5D, TF1M, TF6M, TFYTD, TF1Y, TF5Y, TFMax}

// Timeframes returns the supported tokens in display order.
func Timeframes() []Timeframe {
	out := make([]Timeframe, len(timeframeOrder))
	copy(out, timeframeOrder)
	return out
}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	_, ok := timeframes[tf]
	return ok
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF5D }

// ResolveTimeframe maps a token onto a date range ending on now's calendar
// day (in now's location). It never fails: unknown tokens resolve like 5D.
func ResolveTimeframe(token string, now time.Time) TimeframeSpec {
	entry, ok := timeframes[Timeframe(token)]
	if !ok {
		entry = fallbackTimeframe
	}
	today := util.StartOfDay(now)
	return TimeframeSpec{
		StartDate:  entry.start(today),
		EndDate:    today,
		Multiplier: entry.multiplier,
		Unit:       entry.unit,
	}
}
