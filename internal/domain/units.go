package domain

import (
	"fmt"
	"math"
	"strings"
)

// MetricValue is the user's preferred unit system.
type MetricValue string

const (
	Metric   MetricValue = "metric"
	Imperial MetricValue = "imperial"
)

// Verbosity selects how much of the unit label is rendered.
type Verbosity string

const (
	VerbosityShort Verbosity = "short"
	VerbosityFull  Verbosity = "full"
	VerbosityNone  Verbosity = "none"
)

// mpsToMph converts meters per second to miles per hour.
const mpsToMph = 2.23694

// ParseMetric maps a configuration or request value to a MetricValue.
func ParseMetric(s string) (MetricValue, error) {
	switch m := MetricValue(strings.ToLower(strings.TrimSpace(s))); m {
	case Metric, Imperial:
		return m, nil
	default:
		return "", fmt.Errorf("parse metric %q: %w", s, ErrInvalidMetric)
	}
}

// ConvertTemperature converts a Kelvin temperature into whole display degrees.
func ConvertTemperature(kelvin float64, metric MetricValue, verbosity Verbosity) (ConvertedValue, error) {
	if !IsFinite(kelvin) {
		return ConvertedValue{}, fmt.Errorf("convert temperature %v: %w", kelvin, ErrInvalidInput)
	}

	celsius := kelvin - 273.15
	var value float64
	var full string
	switch metric {
	case Metric:
		value = roundHalfUp(celsius)
		full = "°C"
	case Imperial:
		value = roundHalfUp(celsius*9/5 + 32)
		full = "°F"
	default:
		return ConvertedValue{}, fmt.Errorf("convert temperature: metric %q: %w", metric, ErrInvalidMetric)
	}
	if !IsFinite(value) {
		return ConvertedValue{}, fmt.Errorf("convert temperature %v: out of range: %w", kelvin, ErrInvalidInput)
	}

	switch verbosity {
	case VerbosityShort:
		return ConvertedValue{Value: value, Units: "°"}, nil
	case VerbosityFull:
		return ConvertedValue{Value: value, Units: full}, nil
	case VerbosityNone:
		return ConvertedValue{Value: value}, nil
	default:
		return ConvertedValue{}, fmt.Errorf("convert temperature: verbosity %q: %w", verbosity, ErrInvalidInput)
	}
}

// ConvertSpeed converts a wind speed in m/s. Metric values pass through
// untouched; imperial values are rounded to one decimal.
func ConvertSpeed(metersPerSecond float64, metric MetricValue, withUnits bool) (ConvertedValue, error) {
	if !IsFinite(metersPerSecond) {
		return ConvertedValue{}, fmt.Errorf("convert speed %v: %w", metersPerSecond, ErrInvalidInput)
	}

	var out ConvertedValue
	switch metric {
	case Metric:
		out = ConvertedValue{Value: metersPerSecond, Units: "m/s"}
	case Imperial:
		out = ConvertedValue{Value: roundHalfUp(metersPerSecond*mpsToMph*10) / 10, Units: "mph"}
	default:
		return ConvertedValue{}, fmt.Errorf("convert speed: metric %q: %w", metric, ErrInvalidMetric)
	}
	if !IsFinite(out.Value) {
		return ConvertedValue{}, fmt.Errorf("convert speed %v: out of range: %w", metersPerSecond, ErrInvalidInput)
	}
	if !withUnits {
		out.Units = ""
	}
	return out, nil
}

// ConvertTemperatures applies ConvertTemperature element-wise, preserving order.
func ConvertTemperatures(kelvins []float64, metric MetricValue, verbosity Verbosity) ([]ConvertedValue, error) {
	out := make([]ConvertedValue, len(kelvins))
	for i, k := range kelvins {
		v, err := ConvertTemperature(k, metric, verbosity)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ConvertSpeeds applies ConvertSpeed element-wise, preserving order.
func ConvertSpeeds(speeds []float64, metric MetricValue, withUnits bool) ([]ConvertedValue, error) {
	out := make([]ConvertedValue, len(speeds))
	for i, s := range speeds {
		v, err := ConvertSpeed(s, metric, withUnits)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// roundHalfUp rounds to the nearest integer with .5 going toward +Inf, so
// -0.5 becomes 0 rather than -1.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
