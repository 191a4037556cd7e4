package chart

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// HourlyChart is the hourly temperature curve with its axis, wind speeds and
// band gradient.
type HourlyChart struct {
	Axis       []domain.AxisTick       `json:"axis"`
	Curve      domain.CurveDescriptor  `json:"curve"`
	Points     []domain.Point2D        `json:"points"`
	Values     []domain.ConvertedValue `json:"values"`
	WindSpeeds []domain.ConvertedValue `json:"wind_speeds"`
	Timestamps []int64                 `json:"timestamps"`
	TimeLabels []TimeLabel             `json:"time_labels"`
	Gradient   []GradientStop          `json:"gradient"`
}

// Sampled returns the pointer-projection view of the chart.
func (c HourlyChart) Sampled() *SampledCurve {
	return &SampledCurve{Points: c.Points, Values: c.Values, Timestamps: c.Timestamps}
}

// BuildHourlyChart lays out hourly Kelvin samples. Samples are ordered by
// timestamp first. Non-finite temperatures or wind speeds fail with
// domain.ErrInvalidInput.
func BuildHourlyChart(samples []domain.Sample, metric domain.MetricValue, layout Layout) (HourlyChart, error) {
	if _, err := domain.ConvertTemperature(0, metric, domain.VerbosityShort); err != nil {
		return HourlyChart{}, fmt.Errorf("hourly chart: %w", err)
	}
	layout = layout.withDefaults()

	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b domain.Sample) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	kelvins := make([]float64, len(sorted))
	winds := make([]float64, len(sorted))
	timestamps := make([]int64, len(sorted))
	for i, s := range sorted {
		kelvins[i] = s.Value
		winds[i] = s.Aux[domain.AuxWindSpeed]
		timestamps[i] = s.Timestamp
	}

	values, err := domain.ConvertTemperatures(kelvins, metric, domain.VerbosityShort)
	if err != nil {
		return HourlyChart{}, fmt.Errorf("hourly chart: %w", err)
	}
	windSpeeds, err := domain.ConvertSpeeds(winds, metric, true)
	if err != nil {
		return HourlyChart{}, fmt.Errorf("hourly chart wind: %w", err)
	}

	chart := HourlyChart{
		Values:     values,
		WindSpeeds: windSpeeds,
		Timestamps: timestamps,
		Points:     []domain.Point2D{},
		TimeLabels: []TimeLabel{},
		Gradient:   []GradientStop{},
	}

	lo, hi, ok := Extent(kelvins)
	if !ok {
		chart.Axis, _ = layout.axis().Build(math.NaN(), math.NaN(), layout.Height, nil)
		return chart, nil
	}
	chart.Axis, err = layout.axis().Build(lo, hi, layout.Height, temperatureConvert(metric))
	if err != nil {
		return HourlyChart{}, fmt.Errorf("hourly chart axis: %w", err)
	}

	plo, phi := PadDomain(lo, hi, layout.Padding)
	xs := xPositions(timestamps, layout.Width)
	chart.Points = make([]domain.Point2D, len(sorted))
	for i, k := range kelvins {
		chart.Points[i] = domain.Point2D{X: xs[i], Y: ProjectValueToPixel(k, plo, phi, layout.Height)}
	}
	chart.Curve = BuildCurve(chart.Points, CloseAgainst(layout.Height))
	chart.TimeLabels = timeLabels(chart.Points, timestamps, layout.LabelEvery, layout.Location)
	chart.Gradient = GradientStops(domain.TemperatureBands.Overlapping(plo, phi), plo, phi)
	return chart, nil
}

func temperatureConvert(metric domain.MetricValue) ConvertFunc {
	return func(k float64) (domain.ConvertedValue, error) {
		return domain.ConvertTemperature(k, metric, domain.VerbosityShort)
	}
}
