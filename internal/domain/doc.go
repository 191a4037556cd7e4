// Package domain models weather observations and the chart primitives derived
// from them.
//
// # Data Source
//
// Forecast snapshots follow the OpenWeather One Call layout. The upstream
// collector publishes one snapshot per location to the Kafka source topic:
//
//	hourly:   48 samples, temperature in Kelvin, wind speed in m/s
//	minutely: 60 samples, precipitation intensity in mm/h
//	daily:    8 profiles, temperature in Kelvin for morn/day/eve/night
//
// Timestamps are Unix epoch seconds (UTC). The snapshot carries the location's
// UTC offset in seconds so time labels can be rendered in local time.
//
// # Unit Conventions
//
// Raw values stay in SI units until display:
//
//	Temperature: Kelvin → °C (round(k - 273.15)) or °F (round((k - 273.15) * 9/5 + 32))
//	Wind speed:  m/s → m/s (unchanged) or mph (mps * 2.23694, one decimal)
//
// Rounding is half-up: 0.5 rounds toward positive infinity. Unit strings depend
// on the requested verbosity: short "°", full "°C"/"°F", none "".
//
// # Band Tables
//
// Bands are ordered, immutable value intervals with a label and a color.
// Temperature bands are declared in Kelvin with two-decimal boundaries
// (e.g. [273.15, 288.14], [288.15, 293.14]) so adjacent bands never overlap.
// Precipitation bands are keyed by their lower bounds:
//
//	0      none
//	0.01   light      (≤ 2.5 mm/h)
//	2.51   moderate   (≤ 5.0 mm/h)
//	5.01   heavy      (≤ 7.5 mm/h)
//	7.51   very heavy
//
// Two lookups exist and must not be conflated. Overlap lookups select every
// band intersecting a [lo, hi] range (gradients spanning a day's min/max).
// Cumulative lookups select every band whose lower bound has been reached by a
// single intensity (progressive precipitation gradients).
//
// # Errors
//
// Non-finite numbers and unknown unit systems are programmer errors and fail
// with [ErrInvalidInput] or [ErrInvalidMetric]. Missing or degenerate data
// (empty series, zero-span domains) is never an error.
package domain
