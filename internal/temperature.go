package internal

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Unit selects the temperature scale of a conversion table
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Symbol returns the degree suffix for display
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// ParseUnit accepts c, celsius, f or fahrenheit
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unknown temperature unit %q", s)
	}
}

// levelEntry maps a raw heating level to a whole degree
type levelEntry struct {
	raw  int
	temp int
}

// Tables are sparse and unevenly spaced. Both are kept sorted by raw level;
// the Fahrenheit table has plateaus where two levels share one degree.
var rawToCelsius = []levelEntry{
	{-100, 13}, {-97, 14}, {-94, 15}, {-91, 16}, {-83, 17}, {-75, 18},
	{-67, 19}, {-58, 20}, {-50, 21}, {-42, 22}, {-33, 23}, {-25, 24},
	{-17, 25}, {-8, 26}, {0, 27}, {6, 28}, {11, 29}, {17, 30},
	{22, 31}, {28, 32}, {33, 33}, {39, 34}, {44, 35}, {50, 36},
	{56, 37}, {61, 38}, {67, 39}, {72, 40}, {78, 41}, {83, 42},
	{89, 43}, {100, 44},
}

var rawToFahrenheit = []levelEntry{
	{-100, 55}, {-99, 56}, {-97, 57}, {-95, 58}, {-94, 59}, {-92, 60},
	{-90, 61}, {-86, 62}, {-81, 63}, {-77, 64}, {-72, 65}, {-68, 66},
	{-63, 67}, {-58, 68}, {-54, 69}, {-49, 70}, {-44, 71}, {-40, 72},
	{-35, 73}, {-31, 74}, {-26, 75}, {-21, 76}, {-18, 77}, {-17, 77},
	{-12, 78}, {-7, 79}, {-3, 80}, {1, 81}, {4, 82}, {7, 83},
	{10, 84}, {14, 85}, {16, 86}, {17, 86}, {20, 87}, {23, 88},
	{26, 89}, {29, 90}, {32, 91}, {35, 92}, {38, 93}, {41, 94},
	{44, 95}, {48, 96}, {51, 97}, {54, 98}, {57, 99}, {60, 100},
	{63, 101}, {66, 102}, {69, 103}, {72, 104}, {75, 105}, {78, 106},
	{80, 107}, {81, 107}, {85, 108}, {88, 109}, {92, 110}, {100, 111},
}

func levelTable(unit Unit) []levelEntry {
	if unit == Fahrenheit {
		return rawToFahrenheit
	}
	return rawToCelsius
}

// RawToTemperature converts a raw heating level into degrees of unit.
// Levels between table keys are linearly interpolated; levels outside the
// table return false.
func RawToTemperature(raw int, unit Unit) (float64, bool) {
	table := levelTable(unit)

	for _, e := range table {
		if e.raw == raw {
			return float64(e.temp), true
		}
	}

	for i := 0; i < len(table)-1; i++ {
		lower, upper := table[i], table[i+1]
		if raw > lower.raw && raw < upper.raw {
			ratio := float64(raw-lower.raw) / float64(upper.raw-lower.raw)
			return float64(lower.temp) + ratio*float64(upper.temp-lower.temp), true
		}
	}

	return 0, false
}

// TemperatureToRaw converts degrees of unit into the nearest raw heating
// level. Out-of-range temperatures clamp to the table's end levels. NaN has
// no level and maps to 0.
func TemperatureToRaw(temp float64, unit Unit) int {
	if math.IsNaN(temp) {
		return 0
	}
	table := levelTable(unit)

	// lowest raw level wins on plateaus
	for _, e := range table {
		if float64(e.temp) == temp {
			return e.raw
		}
	}

	byTemp := make([]levelEntry, len(table))
	copy(byTemp, table)
	sort.SliceStable(byTemp, func(i, j int) bool { return byTemp[i].temp < byTemp[j].temp })

	first, last := byTemp[0], byTemp[len(byTemp)-1]
	if temp < float64(first.temp) {
		return first.raw
	}
	if temp > float64(last.temp) {
		return last.raw
	}

	for i := 0; i < len(byTemp)-1; i++ {
		lower, upper := byTemp[i], byTemp[i+1]
		if lower.temp == upper.temp {
			continue
		}
		if temp >= float64(lower.temp) && temp <= float64(upper.temp) {
			ratio := (temp - float64(lower.temp)) / float64(upper.temp-lower.temp)
			return int(math.Round(float64(lower.raw) + ratio*float64(upper.raw-lower.raw)))
		}
	}

	// unreachable for a non-empty table
	return last.raw
}

// CelsiusToFahrenheit converts °C to °F
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// FahrenheitToCelsius converts °F to °C
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}
