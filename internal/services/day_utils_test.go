package services

import (
	"testing"
	"time"
)

func TestLocalDayUsesLocationCalendarDay(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	got := LocalDay(raw, location)

	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Fatalf("expected UTC midnight, got %s", got.Format(time.RFC3339))
	}
	if DayKey(got) != "2026-02-02" {
		t.Fatalf("expected local day 2026-02-02, got %s", DayKey(got))
	}
}

func TestDateAtLocationDefaultsToUTC(t *testing.T) {
	raw := time.Date(2025, 3, 9, 23, 59, 0, 0, time.FixedZone("UTC-5", -5*3600))
	got := DateAtLocation(raw, nil)
	if got.Location() != time.UTC || DayKey(got) != "2025-03-10" {
		t.Fatalf("expected 2025-03-10 UTC, got %s", got.Format(time.RFC3339))
	}
}

func TestDaysBetweenCountsCalendarDays(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want int
	}{
		{from: "2025-01-01", to: "2025-01-29", want: 28},
		{from: "2025-02-26", to: "2025-03-01", want: 3},
		{from: "2024-02-28", to: "2024-03-01", want: 2},
		{from: "2025-01-10", to: "2025-01-05", want: -5},
	}

	for _, tt := range tests {
		if got := daysBetween(mustParseDay(tt.from), mustParseDay(tt.to)); got != tt.want {
			t.Fatalf("daysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestBetweenCalendarDaysInclusive(t *testing.T) {
	start := mustParseDay("2025-01-10")
	end := mustParseDay("2025-01-12")

	if !betweenCalendarDaysInclusive(start, start, end) || !betweenCalendarDaysInclusive(end, start, end) {
		t.Fatal("expected range bounds to be inclusive")
	}
	if betweenCalendarDaysInclusive(mustParseDay("2025-01-13"), start, end) {
		t.Fatal("expected day after range to be excluded")
	}
	if betweenCalendarDaysInclusive(start, time.Time{}, end) {
		t.Fatal("expected open range to match nothing")
	}
}

func TestDayKey(t *testing.T) {
	if DayKey(time.Time{}) != "" {
		t.Fatal("expected empty key for zero time")
	}
	if _, err := ParseDayKey("2025-13-01"); err == nil {
		t.Fatal("expected invalid month to fail")
	}
	day, err := ParseDayKey("2025-06-30")
	if err != nil || DayKey(day) != "2025-06-30" {
		t.Fatalf("expected round trip, got %q (%v)", DayKey(day), err)
	}
}
