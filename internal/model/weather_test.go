package model

import (
	"testing"
	"time"
)

func TestForecastDays_GroupsByUTCDate(t *testing.T) {
	f := &Forecast{
		Entries: []ForecastEntry{
			{At: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC), TempMin: 1},
			{At: time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC), TempMin: 2},
			{At: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), TempMin: 3},
			{At: time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC), TempMin: 4},
			{At: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), TempMin: 5},
		},
	}

	days := f.Days()
	if len(days) != 3 {
		t.Fatalf("Expected 3 day buckets, got %d", len(days))
	}
	if got := len(days[0].Entries); got != 2 {
		t.Errorf("Expected 2 entries in the first bucket, got %d", got)
	}
	if got := len(days[1].Entries); got != 2 {
		t.Errorf("Expected 2 entries in the second bucket, got %d", got)
	}
	if got := len(days[2].Entries); got != 1 {
		t.Errorf("Expected 1 entry in the third bucket, got %d", got)
	}

	wantDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !days[1].Date.Equal(wantDate) {
		t.Errorf("Expected second bucket date %v, got %v", wantDate, days[1].Date)
	}

	// Entry order within a bucket must follow the provider order.
	if days[0].Entries[0].TempMin != 1 || days[0].Entries[1].TempMin != 2 {
		t.Error("Expected first bucket to keep entry order")
	}
}

func TestForecastDays_NonUTCTimestamps(t *testing.T) {
	// Grouping works on the UTC date even when entries carry an offset.
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	f := &Forecast{
		Entries: []ForecastEntry{
			// 01:00 UTC+3 is 22:00 UTC the previous day.
			{At: time.Date(2026, 3, 15, 1, 0, 0, 0, plus3)},
			{At: time.Date(2026, 3, 15, 4, 0, 0, 0, plus3)},
		},
	}

	days := f.Days()
	if len(days) != 2 {
		t.Fatalf("Expected 2 day buckets, got %d", len(days))
	}
	wantDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !days[0].Date.Equal(wantDate) {
		t.Errorf("Expected first bucket date %v, got %v", wantDate, days[0].Date)
	}
}

func TestForecastDays_Empty(t *testing.T) {
	f := &Forecast{}
	if days := f.Days(); len(days) != 0 {
		t.Errorf("Expected no buckets for empty forecast, got %d", len(days))
	}
}

func TestForecastDay(t *testing.T) {
	f := &Forecast{
		Entries: []ForecastEntry{
			{At: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)},
			{At: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		},
	}

	today, err := f.Day(0)
	if err != nil {
		t.Fatalf("Expected day 0, got error %v", err)
	}
	if !today.Date.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected day 0 to be the first forecast date, got %v", today.Date)
	}

	tomorrow, err := f.Day(1)
	if err != nil {
		t.Fatalf("Expected day 1, got error %v", err)
	}
	if !tomorrow.Date.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected day 1 to be the second forecast date, got %v", tomorrow.Date)
	}
}

func TestForecastDay_OutOfRange(t *testing.T) {
	f := &Forecast{
		Entries: []ForecastEntry{
			{At: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)},
		},
	}

	if _, err := f.Day(1); err == nil {
		t.Error("Expected error for day past the forecast horizon, got nil")
	}
	if _, err := f.Day(-1); err == nil {
		t.Error("Expected error for negative day, got nil")
	}
}

func TestDayForecastMinMaxTemperature(t *testing.T) {
	day := DayForecast{
		Entries: []ForecastEntry{
			{TempMin: -2.5, TempMax: 1.0},
			{TempMin: -4.0, TempMax: 3.5},
			{TempMin: 0.5, TempMax: 2.0},
		},
	}

	if got := day.MinTemperature(); got != -4.0 {
		t.Errorf("Expected min temperature -4.0, got %v", got)
	}
	if got := day.MaxTemperature(); got != 3.5 {
		t.Errorf("Expected max temperature 3.5, got %v", got)
	}
}
