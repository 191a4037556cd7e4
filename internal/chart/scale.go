package chart

import (
	"fmt"
	"math"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

const (
	// DefaultTickCount is the number of gridlines on a value axis.
	DefaultTickCount = 5

	// DefaultPadding is the share of the pixel height kept free at the top and
	// bottom of a value axis.
	DefaultPadding = 0.1

	// maxPadding keeps the usable band strictly positive.
	maxPadding = 0.45
)

// ConvertFunc turns a raw axis value into its display form.
type ConvertFunc func(float64) (domain.ConvertedValue, error)

// IdentityConvert displays raw values unchanged and without units.
func IdentityConvert(v float64) (domain.ConvertedValue, error) {
	return domain.ConvertedValue{Value: v}, nil
}

// AxisBuilder generates value axes with a fixed tick count and edge padding.
type AxisBuilder struct {
	TickCount int
	Padding   float64
}

// BuildAxis generates tickCount ticks over [minValue, maxValue] using
// DefaultPadding.
func BuildAxis(minValue, maxValue float64, tickCount int, pixelHeight float64, convert ConvertFunc) ([]domain.AxisTick, error) {
	return AxisBuilder{TickCount: tickCount, Padding: DefaultPadding}.Build(minValue, maxValue, pixelHeight, convert)
}

// Build pads the domain, spreads TickCount values evenly across it (both ends
// included) and maps each to a pixel row. Ticks are ordered top to bottom, so
// the highest value comes first. A degenerate domain yields one tick at the
// vertical center. Errors only come from convert.
func (b AxisBuilder) Build(minValue, maxValue, pixelHeight float64, convert ConvertFunc) ([]domain.AxisTick, error) {
	if convert == nil {
		convert = IdentityConvert
	}
	h := sanitizeExtent(pixelHeight)

	lo, hi, ok := orderedDomain(minValue, maxValue)
	if !ok {
		return []domain.AxisTick{{PixelY: h / 2}}, nil
	}
	if lo == hi || b.TickCount < 2 || !domain.IsFinite(hi-lo) {
		return centerTick(lo, hi, h, convert)
	}

	lo, hi = PadDomain(lo, hi, b.Padding)
	ticks := make([]domain.AxisTick, b.TickCount)
	step := (hi - lo) / float64(b.TickCount-1)
	for i := range ticks {
		v := hi - float64(i)*step
		if i == b.TickCount-1 {
			v = lo
		}
		cv, err := convert(v)
		if err != nil {
			return nil, fmt.Errorf("axis tick %d: %w", i, err)
		}
		ticks[i] = domain.AxisTick{
			Value:  cv.Value,
			Units:  cv.Units,
			PixelY: ProjectValueToPixel(v, lo, hi, h),
		}
	}
	return ticks, nil
}

func centerTick(lo, hi, h float64, convert ConvertFunc) ([]domain.AxisTick, error) {
	cv, err := convert(lo/2 + hi/2)
	if err != nil {
		return nil, fmt.Errorf("axis tick 0: %w", err)
	}
	return []domain.AxisTick{{Value: cv.Value, Units: cv.Units, PixelY: h / 2}}, nil
}

// PadDomain widens [lo, hi] symmetrically so that, once projected, the
// original bounds sit padding*height pixels inside the chart edges. padding is
// clamped to [0, 0.45]. Bounds that would overflow float64 are returned as is.
func PadDomain(lo, hi, padding float64) (float64, float64) {
	if math.IsNaN(padding) || padding <= 0 {
		return lo, hi
	}
	padding = math.Min(padding, maxPadding)
	pad := (hi - lo) * padding / (1 - 2*padding)
	plo, phi := lo-pad, hi+pad
	if !domain.IsFinite(plo) || !domain.IsFinite(phi) {
		return lo, hi
	}
	return plo, phi
}

// PadTop raises the top of a zero-based domain [0, hi] so that hi sits
// padding*height pixels below the top edge while zero stays on the bottom edge.
// padding is clamped like PadDomain.
func PadTop(hi, padding float64) float64 {
	if math.IsNaN(padding) || padding <= 0 || hi <= 0 {
		return hi
	}
	top := hi / (1 - math.Min(padding, maxPadding))
	if !domain.IsFinite(top) {
		return hi
	}
	return top
}

// ProjectValueToPixel maps value onto an inverted vertical axis: maxValue
// lands on 0 and minValue on pixelHeight. A zero-span domain maps everything
// to the vertical center.
func ProjectValueToPixel(value, minValue, maxValue, pixelHeight float64) float64 {
	span := maxValue - minValue
	if span == 0 || !domain.IsFinite(span) || !domain.IsFinite(value) {
		return pixelHeight / 2
	}
	return (maxValue - value) / span * pixelHeight
}

// InvertPixelToValue is the inverse of ProjectValueToPixel.
func InvertPixelToValue(pixelY, minValue, maxValue, pixelHeight float64) float64 {
	if pixelHeight == 0 || !domain.IsFinite(pixelHeight) || !domain.IsFinite(pixelY) {
		return minValue + (maxValue-minValue)/2
	}
	return maxValue - pixelY/pixelHeight*(maxValue-minValue)
}

// ProjectLinear maps v from [d0, d1] onto [r0, r1]. A zero-span domain maps to
// the middle of the range.
func ProjectLinear(v, d0, d1, r0, r1 float64) float64 {
	span := d1 - d0
	if span == 0 || !domain.IsFinite(span) || !domain.IsFinite(v) {
		return r0 + (r1-r0)/2
	}
	return r0 + (v-d0)/span*(r1-r0)
}

// Extent returns the finite minimum and maximum of values. ok is false when no
// finite value exists.
func Extent(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !domain.IsFinite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// orderedDomain returns the bounds in ascending order, substituting one bound
// for the other when only one is finite.
func orderedDomain(a, b float64) (float64, float64, bool) {
	aOK, bOK := domain.IsFinite(a), domain.IsFinite(b)
	switch {
	case !aOK && !bOK:
		return 0, 0, false
	case !aOK:
		a = b
	case !bOK:
		b = a
	}
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

func sanitizeExtent(v float64) float64 {
	if !domain.IsFinite(v) || v < 0 {
		return 0
	}
	return v
}
