package model

import (
	"fmt"
	"time"
)

// WeatherReading is a single point-in-time weather observation for a
// location. It is built once from a provider response and never mutated.
type WeatherReading struct {
	City           string
	Country        string
	ObservedAt     time.Time // provider data calculation time, UTC
	Temperature    float64
	FeelsLike      float64
	TempMin        float64
	TempMax        float64
	Condition      string // provider condition group, e.g. "Clouds"
	Description    string // human-readable description
	Pressure       float64
	Humidity       float64
	WindSpeed      float64
	Clouds         float64
	IconURL        string
	Sunrise        time.Time     // UTC
	Sunset         time.Time     // UTC
	TimezoneOffset time.Duration // local time shift from UTC
}

// ForecastEntry is a weather reading scoped to one 3-hour forecast period.
type ForecastEntry struct {
	At          time.Time // start of the forecast period, UTC
	Temperature float64
	FeelsLike   float64
	TempMin     float64
	TempMax     float64
	Condition   string
	Description string
	Pressure    float64
	Humidity    float64
	WindSpeed   float64
	Clouds      float64
	IconURL     string
}

// Forecast is the 5-day/3-hour forecast for a location. Entries are
// ordered ascending in time, the way the provider returns them.
type Forecast struct {
	City           string
	Country        string
	Sunrise        time.Time
	Sunset         time.Time
	TimezoneOffset time.Duration
	Entries        []ForecastEntry
}

// DayForecast groups the forecast entries that fall on one UTC calendar
// day. Buckets produced by Days always hold at least one entry.
type DayForecast struct {
	Date    time.Time // midnight UTC of the day
	Entries []ForecastEntry
}

// Days splits the forecast into per-day buckets, preserving entry order.
// Consecutive entries sharing a UTC date land in the same bucket; the
// 40-period response usually yields five buckets but can span six dates.
func (f *Forecast) Days() []DayForecast {
	var days []DayForecast
	for _, e := range f.Entries {
		date := e.At.UTC().Truncate(24 * time.Hour)
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, DayForecast{Date: date, Entries: []ForecastEntry{e}})
	}
	return days
}

// Day returns the bucket shift days into the forecast: 0 is the first
// forecast day (today), 1 is tomorrow.
func (f *Forecast) Day(shift int) (DayForecast, error) {
	days := f.Days()
	if shift < 0 || shift >= len(days) {
		return DayForecast{}, fmt.Errorf("forecast covers %d days, day %d requested", len(days), shift)
	}
	return days[shift], nil
}

// MinTemperature is the lowest per-period minimum of the day.
func (d DayForecast) MinTemperature() float64 {
	min := d.Entries[0].TempMin
	for _, e := range d.Entries[1:] {
		if e.TempMin < min {
			min = e.TempMin
		}
	}
	return min
}

// MaxTemperature is the highest per-period maximum of the day.
func (d DayForecast) MaxTemperature() float64 {
	max := d.Entries[0].TempMax
	for _, e := range d.Entries[1:] {
		if e.TempMax > max {
			max = e.TempMax
		}
	}
	return max
}
