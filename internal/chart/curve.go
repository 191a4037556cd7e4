package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// CurveOption configures BuildCurve.
type CurveOption func(*curveOptions)

type curveOptions struct {
	baseline    float64
	hasBaseline bool
}

// CloseAgainst requests an area path closed against the horizontal line
// y = baseline.
func CloseAgainst(baseline float64) CurveOption {
	return func(o *curveOptions) {
		if domain.IsFinite(baseline) {
			o.baseline = baseline
			o.hasBaseline = true
		}
	}
}

// BuildCurve returns a smooth SVG path through points, in order. Fewer than two
// finite points produce an empty path. Segments are cubic Béziers with
// monotone (Fritsch–Carlson) tangents shared at every joint, so the curve is
// C1 continuous and never overshoots a sample vertically.
func BuildCurve(points []domain.Point2D, opts ...CurveOption) domain.CurveDescriptor {
	var o curveOptions
	for _, opt := range opts {
		opt(&o)
	}

	pts := finitePoints(points)
	if len(pts) < 2 {
		return domain.CurveDescriptor{}
	}

	var sb strings.Builder
	writeCurve(&sb, pts, monotoneTangents(pts))
	desc := domain.CurveDescriptor{Path: sb.String()}

	if o.hasBaseline {
		first, last := pts[0], pts[len(pts)-1]
		sb.WriteString(" L")
		writePoint(&sb, last.X, o.baseline)
		sb.WriteString(" L")
		writePoint(&sb, first.X, o.baseline)
		sb.WriteString(" Z")
		desc.AreaPath = sb.String()
	}
	return desc
}

func writeCurve(sb *strings.Builder, pts []domain.Point2D, m []float64) {
	sb.WriteString("M")
	writePoint(sb, pts[0].X, pts[0].Y)
	for i := 0; i+1 < len(pts); i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := (p1.X - p0.X) / 3
		sb.WriteString(" C")
		writePoint(sb, p0.X+dx, p0.Y+dx*m[i])
		sb.WriteByte(' ')
		writePoint(sb, p1.X-dx, p1.Y-dx*m[i+1])
		sb.WriteByte(' ')
		writePoint(sb, p1.X, p1.Y)
	}
}

// monotoneTangents returns dy/dx at every point. Interior tangents are zero at
// local extrema and otherwise the weighted harmonic mean of the neighbouring
// secants; end tangents follow their only secant.
func monotoneTangents(pts []domain.Point2D) []float64 {
	n := len(pts)
	h := make([]float64, n-1)
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = pts[i+1].X - pts[i].X
		if h[i] != 0 {
			d[i] = (pts[i+1].Y - pts[i].Y) / h[i]
		}
	}

	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			continue
		}
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		m[i] = (w1 + w2) / (w1/d[i-1] + w2/d[i])
		if !domain.IsFinite(m[i]) {
			m[i] = 0
		}
	}
	return m
}

func finitePoints(points []domain.Point2D) []domain.Point2D {
	out := make([]domain.Point2D, 0, len(points))
	for _, p := range points {
		if domain.IsFinite(p.X) && domain.IsFinite(p.Y) {
			out = append(out, p)
		}
	}
	return out
}

func writePoint(sb *strings.Builder, x, y float64) {
	sb.WriteString(formatCoord(x))
	sb.WriteByte(',')
	sb.WriteString(formatCoord(y))
}

// formatCoord prints v with at most two decimals and no trailing zeros.
func formatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
