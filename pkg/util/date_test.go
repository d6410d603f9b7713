package util

import (
    "testing"
    "time"
)

func TestStartOfDayKeepsLocation(t *testing.T) {
    ny, err := time.LoadLocation("America/New_York")
    if err != nil {
        t.Skipf("tzdata unavailable: %v", err)
    }
    in := time.Date(2024, 10, 10, 23, 59, 59, 999, ny)
    got := StartOfDay(in)
    want := time.Date(2024, 10, 10, 0, 0, 0, 0, ny)
    if !got.Equal(want) || got.Location() != ny {
        t.Fatalf("unexpected start of day %v", got)
    }
}

func TestFormatDate(t *testing.T) {
    got := FormatDate(time.Date(2024, 3, 5, 10, 10, 10, 0, time.UTC))
    if got != "2024-03-05" {
        t.Fatalf("unexpected date %q", got)
    }
}
