package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

func TestBuildAxis(t *testing.T) {
	ticks, err := BuildAxis(0, 100, 5, 100, IdentityConvert)
	require.NoError(t, err)
	require.Len(t, ticks, 5)

	wantValues := []float64{112.5, 81.25, 50, 18.75, -12.5}
	wantPixels := []float64{0, 25, 50, 75, 100}
	for i, tick := range ticks {
		assert.InDelta(t, wantValues[i], tick.Value, 1e-9, "tick %d value", i)
		assert.InDelta(t, wantPixels[i], tick.PixelY, 1e-9, "tick %d pixel", i)
	}
}

func TestBuildAxis_PaddingKeepsSamplesInside(t *testing.T) {
	lo, hi := PadDomain(0, 100, DefaultPadding)
	assert.InDelta(t, 10, ProjectValueToPixel(100, lo, hi, 100), 1e-9)
	assert.InDelta(t, 90, ProjectValueToPixel(0, lo, hi, 100), 1e-9)
}

func TestBuildAxis_Degenerate(t *testing.T) {
	tests := []struct {
		name      string
		min, max  float64
		ticks     int
		wantValue float64
	}{
		{"equal bounds", 5, 5, 5, 5},
		{"both NaN", math.NaN(), math.NaN(), 5, 0},
		{"both infinite", math.Inf(-1), math.Inf(1), 5, 0},
		{"single tick", 0, 10, 1, 5},
		{"one finite bound", math.NaN(), 7, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, err := BuildAxis(tt.min, tt.max, tt.ticks, 200, IdentityConvert)
			require.NoError(t, err)
			require.Len(t, ticks, 1)
			assert.InDelta(t, tt.wantValue, ticks[0].Value, 1e-9)
			assert.InDelta(t, 100, ticks[0].PixelY, 1e-9)
			assert.False(t, math.IsNaN(ticks[0].PixelY))
		})
	}
}

func TestBuildAxis_ExtremeFiniteBounds(t *testing.T) {
	t.Run("span overflows", func(t *testing.T) {
		ticks, err := BuildAxis(-1e308, 1e308, 5, 200, IdentityConvert)
		require.NoError(t, err)
		require.Len(t, ticks, 1)
		assert.InDelta(t, 0, ticks[0].Value, 1e-9)
		assert.InDelta(t, 100, ticks[0].PixelY, 1e-9)
	})

	t.Run("padding overflows", func(t *testing.T) {
		ticks, err := BuildAxis(0, math.MaxFloat64, 5, 100, IdentityConvert)
		require.NoError(t, err)
		require.Len(t, ticks, 5)
		for i, tick := range ticks {
			assert.True(t, domain.IsFinite(tick.Value), "tick %d value", i)
			assert.True(t, domain.IsFinite(tick.PixelY), "tick %d pixel", i)
		}
		assert.InDelta(t, 0, ticks[0].PixelY, 1e-9)
		assert.InDelta(t, 100, ticks[4].PixelY, 1e-9)
	})
}

func TestBuildAxis_ReversedBounds(t *testing.T) {
	a, err := BuildAxis(100, 0, 5, 100, IdentityConvert)
	require.NoError(t, err)
	b, err := BuildAxis(0, 100, 5, 100, IdentityConvert)
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestBuildAxis_ConvertError(t *testing.T) {
	boom := errors.New("boom")
	_, err := BuildAxis(0, 10, 5, 100, func(float64) (domain.ConvertedValue, error) {
		return domain.ConvertedValue{}, boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestBuildAxis_TemperatureUnits(t *testing.T) {
	ticks, err := BuildAxis(263.15, 283.15, 3, 90, temperatureConvert(domain.Metric))
	require.NoError(t, err)
	require.Len(t, ticks, 3)
	for _, tick := range ticks {
		assert.Equal(t, "°", tick.Units)
	}
	assert.Greater(t, ticks[0].Value, ticks[2].Value)
}

func TestProjectValueToPixel_RoundTrip(t *testing.T) {
	for _, v := range []float64{-40, 0, 10, 17.5, 30, 1e3} {
		y := ProjectValueToPixel(v, 10, 30, 200)
		assert.InDelta(t, v, InvertPixelToValue(y, 10, 30, 200), 1e-9)
	}
}

func TestProjectValueToPixel_ZeroSpan(t *testing.T) {
	assert.Equal(t, 50.0, ProjectValueToPixel(3, 3, 3, 100))
	assert.Equal(t, 50.0, ProjectValueToPixel(math.NaN(), 0, 10, 100))
	assert.Equal(t, 5.0, InvertPixelToValue(20, 0, 10, 0))
}

func TestProjectLinear(t *testing.T) {
	assert.Equal(t, 150.0, ProjectLinear(5, 0, 10, 0, 300))
	assert.Equal(t, 150.0, ProjectLinear(5, 5, 5, 0, 300))
}

func TestExtent(t *testing.T) {
	lo, hi, ok := Extent([]float64{3, math.NaN(), -2, math.Inf(1), 8})
	require.True(t, ok)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 8.0, hi)

	_, _, ok = Extent([]float64{math.NaN()})
	assert.False(t, ok)
	_, _, ok = Extent(nil)
	assert.False(t, ok)
}

func TestPadDomain_ClampsPadding(t *testing.T) {
	lo, hi := PadDomain(0, 10, 0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)

	lo, hi = PadDomain(0, 10, 0.9)
	assert.True(t, domain.IsFinite(lo))
	assert.True(t, domain.IsFinite(hi))
	assert.Less(t, lo, 0.0)
}

func TestPadDomain_OverflowKeepsBounds(t *testing.T) {
	lo, hi := PadDomain(-math.MaxFloat64, math.MaxFloat64, DefaultPadding)
	assert.Equal(t, -math.MaxFloat64, lo)
	assert.Equal(t, math.MaxFloat64, hi)
}
