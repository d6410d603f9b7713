package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTimeframe_Table(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 17, 15, 4, 5, 0, time.UTC)

	cases := []struct {
		token      string
		from       string
		multiplier int
		unit       SamplingUnit
	}{
		{"1D", "2026-10-16", 5, UnitMinute},
		{"5D", "2026-10-12", 1, UnitDay},
		{"1M", "2026-09-17", 1, UnitDay},
		{"6M", "2026-04-17", 1, UnitDay},
		{"YTD", "2026-01-01", 1, UnitDay},
		{"1Y", "2025-10-17", 1, UnitDay},
		{"5Y", "2021-10-17", 1, UnitWeek},
		{"MAX", "2016-10-17", 1, UnitMonth},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			spec := ResolveTimeframe(tc.token, now)
			assert.Equal(t, tc.from, spec.From())
			assert.Equal(t, "2026-10-17", spec.To())
			assert.Equal(t, tc.multiplier, spec.Multiplier)
			assert.Equal(t, tc.unit, spec.Unit)
		})
	}
}

func TestResolveTimeframe_UnknownFallsBackTo5D(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	want := ResolveTimeframe("5D", now)

	for _, token := range []string{"", "5d", "1d", "10Y", "max", "  5D"} {
		got := ResolveTimeframe(token, now)
		require.Equalf(t, want, got, "token %q", token)
	}
}

func TestResolveTimeframe_YTDAlwaysJanuaryFirst(t *testing.T) {
	t.Parallel()

	for _, now := range []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
	} {
		spec := ResolveTimeframe("YTD", now)
		assert.Equal(t, time.January, spec.StartDate.Month())
		assert.Equal(t, 1, spec.StartDate.Day())
		assert.Equal(t, now.Year(), spec.StartDate.Year())
		assert.Equal(t, now.Format("2006-01-02"), spec.To())
	}
}

func TestResolveTimeframe_MaxIsTenYearsMonthly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	spec := ResolveTimeframe("MAX", now)

	assert.Equal(t, UnitMonth, spec.Unit)
	assert.Equal(t, 1, spec.Multiplier)
	assert.True(t, spec.StartDate.Equal(now.AddDate(-10, 0, 0)))
}

func TestResolveTimeframe_MonthRolloverNormalizes(t *testing.T) {
	t.Parallel()

	// Feb 31 does not exist and normalizes forward into March.
	now := time.Date(2026, time.March, 31, 10, 0, 0, 0, time.UTC)
	spec := ResolveTimeframe("1M", now)

	assert.Equal(t, "2026-03-03", spec.From())
	assert.Equal(t, "2026-03-31", spec.To())
}

func TestResolveTimeframe_UsesLocationOfNow(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 02:00 UTC on the 18th is still the 17th in New York.
	now := time.Date(2026, time.October, 18, 2, 0, 0, 0, time.UTC).In(ny)
	spec := ResolveTimeframe("5D", now)

	assert.Equal(t, "2026-10-17", spec.To())
	assert.Equal(t, "2026-10-12", spec.From())
}

func TestTimeframeCatalog(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidTimeframe(TFYTD))
	assert.False(t, IsValidTimeframe("ytd"))
	assert.False(t, IsValidTimeframe("2W"))
	assert.Equal(t, TF5D, DefaultTimeframe())
	assert.Len(t, Timeframes(), 8)
	assert.Equal(t, TF1D, Timeframes()[0])
}
