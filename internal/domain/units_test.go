package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTemperature(t *testing.T) {
	tests := []struct {
		name      string
		kelvin    float64
		metric    MetricValue
		verbosity Verbosity
		expected  ConvertedValue
	}{
		{"freezing metric short", 273.15, Metric, VerbosityShort, ConvertedValue{Value: 0, Units: "°"}},
		{"freezing imperial full", 273.15, Imperial, VerbosityFull, ConvertedValue{Value: 32, Units: "°F"}},
		{"metric full", 294.15, Metric, VerbosityFull, ConvertedValue{Value: 21, Units: "°C"}},
		{"metric none", 293.15, Metric, VerbosityNone, ConvertedValue{Value: 20}},
		{"imperial boiling", 373.15, Imperial, VerbosityShort, ConvertedValue{Value: 212, Units: "°"}},
		{"just below freezing", 272.75, Metric, VerbosityNone, ConvertedValue{Value: 0}},
		{"deep cold", 233.15, Imperial, VerbosityNone, ConvertedValue{Value: -40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ConvertTemperature(tt.kelvin, tt.metric, tt.verbosity)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConvertTemperature_Errors(t *testing.T) {
	t.Run("NaN", func(t *testing.T) {
		_, err := ConvertTemperature(math.NaN(), Metric, VerbosityShort)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("infinity", func(t *testing.T) {
		_, err := ConvertTemperature(math.Inf(1), Imperial, VerbosityShort)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("finite input overflowing on conversion", func(t *testing.T) {
		_, err := ConvertTemperature(1e308, Imperial, VerbosityShort)
		require.ErrorIs(t, err, ErrInvalidInput)

		got, err := ConvertTemperature(1e308, Metric, VerbosityNone)
		require.NoError(t, err)
		assert.True(t, IsFinite(got.Value))
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := ConvertTemperature(280, MetricValue("kelvin"), VerbosityShort)
		require.ErrorIs(t, err, ErrInvalidMetric)
	})

	t.Run("unknown verbosity", func(t *testing.T) {
		_, err := ConvertTemperature(280, Metric, Verbosity("loud"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestConvertTemperature_RoundingBound(t *testing.T) {
	for k := 200.0; k < 330; k += 0.37 {
		metric, err := ConvertTemperature(k, Metric, VerbosityNone)
		require.NoError(t, err)
		assert.Less(t, math.Abs(metric.Value-(k-273.15)), 1.0, "metric k=%v", k)

		imperial, err := ConvertTemperature(k, Imperial, VerbosityNone)
		require.NoError(t, err)
		assert.Less(t, math.Abs(imperial.Value-((k-273.15)*9/5+32)), 1.0, "imperial k=%v", k)
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name      string
		mps       float64
		metric    MetricValue
		withUnits bool
		expected  ConvertedValue
	}{
		{"metric identity", 3.7, Metric, true, ConvertedValue{Value: 3.7, Units: "m/s"}},
		{"metric without units", 3.7, Metric, false, ConvertedValue{Value: 3.7}},
		{"imperial", 10, Imperial, true, ConvertedValue{Value: 22.4, Units: "mph"}},
		{"imperial without units", 1, Imperial, false, ConvertedValue{Value: 2.2}},
		{"calm", 0, Imperial, true, ConvertedValue{Value: 0, Units: "mph"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ConvertSpeed(tt.mps, tt.metric, tt.withUnits)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConvertSpeed_MetricIdentity(t *testing.T) {
	for _, v := range []float64{0, 0.1, 1, 5.55, 12.34, 40} {
		result, err := ConvertSpeed(v, Metric, true)
		require.NoError(t, err)
		assert.Equal(t, ConvertedValue{Value: v, Units: "m/s"}, result)
	}
}

func TestConvertSpeed_Errors(t *testing.T) {
	_, err := ConvertSpeed(math.NaN(), Metric, true)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConvertSpeed(math.Inf(-1), Imperial, true)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConvertSpeed(1, MetricValue(""), true)
	require.ErrorIs(t, err, ErrInvalidMetric)

	_, err = ConvertSpeed(1e308, Imperial, true)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertBatch(t *testing.T) {
	t.Run("temperatures preserve order", func(t *testing.T) {
		result, err := ConvertTemperatures([]float64{273.15, 283.15, 293.15}, Metric, VerbosityShort)
		require.NoError(t, err)
		assert.Equal(t, []ConvertedValue{
			{Value: 0, Units: "°"},
			{Value: 10, Units: "°"},
			{Value: 20, Units: "°"},
		}, result)
	})

	t.Run("speeds preserve order", func(t *testing.T) {
		result, err := ConvertSpeeds([]float64{1, 2}, Imperial, true)
		require.NoError(t, err)
		assert.Equal(t, []ConvertedValue{
			{Value: 2.2, Units: "mph"},
			{Value: 4.5, Units: "mph"},
		}, result)
	})

	t.Run("first invalid element fails", func(t *testing.T) {
		_, err := ConvertTemperatures([]float64{280, math.NaN()}, Metric, VerbosityShort)
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "index 1")
	})

	t.Run("empty", func(t *testing.T) {
		result, err := ConvertSpeeds(nil, Metric, true)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric(" Imperial ")
	require.NoError(t, err)
	assert.Equal(t, Imperial, m)

	m, err = ParseMetric("metric")
	require.NoError(t, err)
	assert.Equal(t, Metric, m)

	_, err = ParseMetric("si")
	require.ErrorIs(t, err, ErrInvalidMetric)
}
