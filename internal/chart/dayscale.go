package chart

import (
	"fmt"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// DayScale is the popup chart of one day's temperature profile, resampled
// between its morning, day, evening and night anchors.
type DayScale struct {
	DayIndex   int                     `json:"day_index"`
	Axis       []domain.AxisTick       `json:"axis"`
	Curve      domain.CurveDescriptor  `json:"curve"`
	Points     []domain.Point2D        `json:"points"`
	Values     []domain.ConvertedValue `json:"values"`
	Timestamps []int64                 `json:"timestamps,omitempty"`
	Gradient   []GradientStop          `json:"gradient"`
}

// Sampled returns the pointer-projection view of the scale.
func (d DayScale) Sampled() *SampledCurve {
	return &SampledCurve{Points: d.Points, Values: d.Values, Timestamps: d.Timestamps}
}

// WithDayTime stamps every sample with its time of day, given the day's daily
// timestamp and the subdivisions the scale was built with.
func (d DayScale) WithDayTime(dayTime int64, subdivisions int) DayScale {
	d.Timestamps = DayTimestamps(dayTime, subdivisions)
	return d
}

// BuildDayScale expands days[dayIndex] with layout.Subdivisions steps between
// anchors and spreads the result evenly across the width. The curve's area is
// closed against the bottom edge as the back fill. The scale carries no
// timestamps; see WithDayTime. An out-of-range dayIndex fails with
// domain.ErrInvalidInput.
func BuildDayScale(dayIndex int, days []domain.DayProfile, metric domain.MetricValue, layout Layout) (DayScale, error) {
	if dayIndex < 0 || dayIndex >= len(days) {
		return DayScale{}, fmt.Errorf("day scale: index %d of %d days: %w", dayIndex, len(days), domain.ErrInvalidInput)
	}
	layout = layout.withDefaults()

	series := Expand(dayIndex, days, layout.Subdivisions)
	values, err := domain.ConvertTemperatures(series, metric, domain.VerbosityShort)
	if err != nil {
		return DayScale{}, fmt.Errorf("day scale %d: %w", dayIndex, err)
	}

	lo, hi, _ := Extent(series)
	axis, err := layout.axis().Build(lo, hi, layout.Height, temperatureConvert(metric))
	if err != nil {
		return DayScale{}, fmt.Errorf("day scale %d axis: %w", dayIndex, err)
	}

	plo, phi := PadDomain(lo, hi, layout.Padding)
	xs := indexPositions(len(series), layout.Width)
	points := make([]domain.Point2D, len(series))
	for i, k := range series {
		points[i] = domain.Point2D{X: xs[i], Y: ProjectValueToPixel(k, plo, phi, layout.Height)}
	}

	return DayScale{
		DayIndex: dayIndex,
		Axis:     axis,
		Curve:    BuildCurve(points, CloseAgainst(layout.Height)),
		Points:   points,
		Values:   values,
		Gradient: GradientStops(domain.TemperatureBands.Overlapping(plo, phi), plo, phi),
	}, nil
}
