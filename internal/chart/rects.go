package chart

import (
	"math"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// BarLayout holds the data-independent geometry of intensity bars.
type BarLayout struct {
	Width        float64 `json:"width"`
	MaxHeight    float64 `json:"max_height"`
	CornerRadius float64 `json:"corner_radius"`
}

// DefaultBarLayout matches the minute-precipitation chart.
var DefaultBarLayout = BarLayout{Width: 3, MaxHeight: 40, CornerRadius: 1.5}

// BuildRects builds bars with DefaultBarLayout.
func BuildRects(points []domain.Point2D, values []float64, baselineOffset float64) []domain.Rect {
	return DefaultBarLayout.BuildRects(points, values, baselineOffset)
}

// BuildRects returns one bar per positive value. Each bar is centered on its
// curve point, its bottom edge sits baselineOffset pixels below the point and
// its height is the value's share of the series maximum times MaxHeight. Bars
// that would have no height are left out.
func (l BarLayout) BuildRects(points []domain.Point2D, values []float64, baselineOffset float64) []domain.Rect {
	n := min(len(points), len(values))
	peak := 0.0
	for _, v := range values[:n] {
		if domain.IsFinite(v) {
			peak = math.Max(peak, v)
		}
	}
	if peak == 0 || l.MaxHeight <= 0 || !domain.IsFinite(baselineOffset) {
		return []domain.Rect{}
	}

	rects := make([]domain.Rect, 0, n)
	for i := 0; i < n; i++ {
		v, p := values[i], points[i]
		if !domain.IsFinite(v) || v <= 0 || !domain.IsFinite(p.X) || !domain.IsFinite(p.Y) {
			continue
		}
		height := v / peak * l.MaxHeight
		if height <= 0 {
			continue
		}
		bottom := p.Y + baselineOffset
		rects = append(rects, domain.Rect{
			X:      p.X - l.Width/2,
			Y:      bottom - height,
			Width:  l.Width,
			Height: height,
		})
	}
	return rects
}
