package chart

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// FillAlpha is the opacity of gradient fills under a curve.
const FillAlpha uint8 = 102

// GradientStop is one color stop of a vertical gradient. Offset runs from 0 at
// the top of the chart to 1 at the bottom.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
	Fill   string  `json:"fill"`
	Label  string  `json:"label"`
}

// GradientStops places one stop per band at the band's midpoint within
// [lo, hi], clamped to the chart. Stops are returned top first. A zero-span
// range puts every stop at the vertical center.
func GradientStops(bands []domain.Band, lo, hi float64) []GradientStop {
	stops := make([]GradientStop, 0, len(bands))
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := len(bands) - 1; i >= 0; i-- {
		b := bands[i]
		mid := b.Min + (b.Max-b.Min)/2
		mid = clamp(mid, lo, hi)
		offset := ProjectValueToPixel(mid, lo, hi, 1)
		stops = append(stops, GradientStop{
			Offset: clamp(offset, 0, 1),
			Color:  b.Color,
			Fill:   fillColor(b.Color),
			Label:  b.Label,
		})
	}
	return stops
}

func fillColor(hex string) string {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#")).WithAlpha(FillAlpha).String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
