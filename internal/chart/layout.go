package chart

import (
	"time"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// Layout is the pixel geometry and tuning shared by the chart assemblers.
// Zero fields fall back to DefaultLayout.
type Layout struct {
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	TickCount    int            `json:"tick_count"`
	Padding      float64        `json:"padding"`
	Subdivisions int            `json:"subdivisions"`
	LabelEvery   int            `json:"label_every"`
	BarBaseline  float64        `json:"bar_baseline"`
	Location     *time.Location `json:"-"`
}

// DefaultLayout returns the layout used when nothing is configured. Its
// Location is nil, so bundles label times in each forecast's own offset.
func DefaultLayout() Layout {
	return Layout{
		Width:        600,
		Height:       160,
		TickCount:    DefaultTickCount,
		Padding:      DefaultPadding,
		Subdivisions: DefaultSubdivisions,
		LabelEvery:   3,
	}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if !domain.IsFinite(l.Width) || l.Width <= 0 {
		l.Width = d.Width
	}
	if !domain.IsFinite(l.Height) || l.Height <= 0 {
		l.Height = d.Height
	}
	if l.TickCount <= 0 {
		l.TickCount = d.TickCount
	}
	if !domain.IsFinite(l.Padding) || l.Padding <= 0 {
		l.Padding = d.Padding
	}
	if l.Subdivisions <= 0 {
		l.Subdivisions = d.Subdivisions
	}
	if l.LabelEvery <= 0 {
		l.LabelEvery = d.LabelEvery
	}
	if !domain.IsFinite(l.BarBaseline) {
		l.BarBaseline = d.BarBaseline
	}
	if l.Location == nil {
		l.Location = time.UTC
	}
	return l
}

func (l Layout) axis() AxisBuilder {
	return AxisBuilder{TickCount: l.TickCount, Padding: l.Padding}
}

// TimeLabel is a horizontal axis label.
type TimeLabel struct {
	X         float64 `json:"x"`
	Text      string  `json:"text"`
	Timestamp int64   `json:"timestamp"`
}

// timeLabels labels every nth point, starting with the first.
func timeLabels(points []domain.Point2D, timestamps []int64, every int, loc *time.Location) []TimeLabel {
	p := PointerProjector{Layout: DefaultLabelLayout, Location: loc}
	labels := make([]TimeLabel, 0, len(points)/every+1)
	for i := 0; i < len(points) && i < len(timestamps); i += every {
		labels = append(labels, TimeLabel{
			X:         points[i].X,
			Text:      p.label(timestamps[i]),
			Timestamp: timestamps[i],
		})
	}
	return labels
}

// xPositions spreads timestamps across [0, width]. A single timestamp, or a
// series with no time span, is spread evenly by index instead.
func xPositions(timestamps []int64, width float64) []float64 {
	xs := make([]float64, len(timestamps))
	if len(timestamps) == 0 {
		return xs
	}
	first, last := float64(timestamps[0]), float64(timestamps[len(timestamps)-1])
	if first == last {
		return indexPositions(len(timestamps), width)
	}
	for i, ts := range timestamps {
		xs[i] = ProjectLinear(float64(ts), first, last, 0, width)
	}
	return xs
}

// indexPositions spreads n points evenly across [0, width]. One point sits in
// the middle.
func indexPositions(n int, width float64) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = width / 2
		return xs
	}
	for i := range xs {
		xs[i] = ProjectLinear(float64(i), 0, float64(n-1), 0, width)
	}
	return xs
}
