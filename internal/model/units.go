package model

import "strings"

// Units selects the measurement system used for provider requests and for
// rendering replies.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Symbols that do not vary between measurement systems.
const (
	PressureSymbol = "hPa"
	HumiditySymbol = "%"
	CloudsSymbol   = "%"
)

// ParseUnits maps a configured units name to a Units value, falling back
// to metric for anything unrecognized.
func ParseUnits(s string) Units {
	if strings.EqualFold(s, string(UnitsImperial)) {
		return UnitsImperial
	}
	return UnitsMetric
}

// TemperatureSymbol is the temperature symbol for the units.
func (u Units) TemperatureSymbol() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedSymbol is the wind speed symbol for the units.
func (u Units) WindSpeedSymbol() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}
