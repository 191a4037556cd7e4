package chart

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

const (
	// PrecipitationFloor is the smallest top of the precipitation axis in mm/h,
	// so drizzle does not fill the whole chart.
	PrecipitationFloor = 2.5

	precipitationUnits = "mm/h"
)

// PrecipitationChart is the minute-level precipitation curve, its filled area
// and intensity bars.
type PrecipitationChart struct {
	Axis       []domain.AxisTick       `json:"axis"`
	Curve      domain.CurveDescriptor  `json:"curve"`
	Points     []domain.Point2D        `json:"points"`
	Values     []domain.ConvertedValue `json:"values"`
	Timestamps []int64                 `json:"timestamps"`
	Rects      []domain.Rect           `json:"rects"`
	TimeLabels []TimeLabel             `json:"time_labels"`
	Gradient   []GradientStop          `json:"gradient"`
	Max        float64                 `json:"max"`
}

// Sampled returns the pointer-projection view of the chart.
func (c PrecipitationChart) Sampled() *SampledCurve {
	return &SampledCurve{Points: c.Points, Values: c.Values, Timestamps: c.Timestamps}
}

// BuildPrecipitationChart lays out minute precipitation samples in mm/h. The
// value axis always starts at zero on the bottom edge and reaches at least
// PrecipitationFloor. Only the top is padded, so the peak sits
// layout.Padding*Height below the top edge. Bars rise from the bottom edge.
// Negative or non-finite values fail with domain.ErrInvalidInput.
func BuildPrecipitationChart(samples []domain.Sample, layout Layout) (PrecipitationChart, error) {
	layout = layout.withDefaults()

	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b domain.Sample) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	values := make([]float64, len(sorted))
	timestamps := make([]int64, len(sorted))
	display := make([]domain.ConvertedValue, len(sorted))
	for i, s := range sorted {
		cv, err := precipitationConvert(s.Value)
		if err != nil {
			return PrecipitationChart{}, fmt.Errorf("precipitation chart: index %d: %w", i, err)
		}
		values[i] = s.Value
		timestamps[i] = s.Timestamp
		display[i] = cv
	}

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	top := math.Max(PadTop(peak, layout.Padding), PrecipitationFloor)

	axis, err := AxisBuilder{TickCount: layout.TickCount}.Build(0, top, layout.Height, precipitationConvert)
	if err != nil {
		return PrecipitationChart{}, fmt.Errorf("precipitation chart axis: %w", err)
	}

	chart := PrecipitationChart{
		Axis:       axis,
		Values:     display,
		Timestamps: timestamps,
		Max:        peak,
		Points:     make([]domain.Point2D, len(sorted)),
		Gradient:   GradientStops(domain.PrecipitationBands.Reached(peak), 0, top),
	}

	xs := xPositions(timestamps, layout.Width)
	bottoms := make([]domain.Point2D, len(sorted))
	for i, v := range values {
		chart.Points[i] = domain.Point2D{X: xs[i], Y: ProjectValueToPixel(v, 0, top, layout.Height)}
		bottoms[i] = domain.Point2D{X: xs[i], Y: layout.Height}
	}
	chart.Curve = BuildCurve(chart.Points, CloseAgainst(layout.Height))
	chart.Rects = BuildRects(bottoms, values, layout.BarBaseline)
	chart.TimeLabels = timeLabels(chart.Points, timestamps, layout.LabelEvery, layout.Location)
	return chart, nil
}

func precipitationConvert(v float64) (domain.ConvertedValue, error) {
	if !domain.IsFinite(v) || v < 0 {
		return domain.ConvertedValue{}, fmt.Errorf("convert precipitation %v: %w", v, domain.ErrInvalidInput)
	}
	r := math.Round(v*100) / 100
	if !domain.IsFinite(r) {
		r = v
	}
	return domain.ConvertedValue{Value: r, Units: precipitationUnits}, nil
}
