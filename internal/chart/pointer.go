package chart

import (
	"math"
	"sort"
	"time"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// DefaultLabelLayout formats pointer and axis time labels.
const DefaultLabelLayout = "15:04"

// SampledCurve is the backing data of a rendered curve: pixel points in
// ascending x order, their display values and their sample timestamps.
type SampledCurve struct {
	Points     []domain.Point2D        `json:"points"`
	Values     []domain.ConvertedValue `json:"values"`
	Timestamps []int64                 `json:"timestamps,omitempty"`
}

// PointerProjector snaps pointer positions onto the nearest curve sample.
type PointerProjector struct {
	Layout   string
	Location *time.Location
}

// NewPointerProjector returns a projector labelling samples in loc.
func NewPointerProjector(loc *time.Location) PointerProjector {
	return PointerProjector{Layout: DefaultLabelLayout, Location: loc}
}

// ProjectPointer projects without time labels.
func ProjectPointer(pointerX float64, points []domain.Point2D, values []domain.ConvertedValue) domain.PointerState {
	return PointerProjector{}.Project(pointerX, &SampledCurve{Points: points, Values: values})
}

// Project returns the sample nearest to pointerX. The state is invisible when
// the curve is missing or empty, when pointerX is outside the curve's
// horizontal extent, or when the nearest point has no value.
func (p PointerProjector) Project(pointerX float64, curve *SampledCurve) domain.PointerState {
	if curve == nil || len(curve.Points) == 0 || math.IsNaN(pointerX) {
		return domain.PointerState{}
	}
	pts := curve.Points
	if pointerX < pts[0].X || pointerX > pts[len(pts)-1].X {
		return domain.PointerState{}
	}

	i := nearestIndex(pts, pointerX)
	if i >= len(curve.Values) {
		return domain.PointerState{}
	}

	state := domain.PointerState{
		Position: pts[i],
		Value:    curve.Values[i],
		Visible:  true,
	}
	if i < len(curve.Timestamps) {
		state.Label = p.label(curve.Timestamps[i])
	}
	return state
}

func (p PointerProjector) label(ts int64) string {
	layout := p.Layout
	if layout == "" {
		layout = DefaultLabelLayout
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(ts, 0).In(loc).Format(layout)
}

// nearestIndex binary-searches the first point at or right of x and picks the
// closer of it and its left neighbour. Ties go left.
func nearestIndex(pts []domain.Point2D, x float64) int {
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	switch {
	case i == 0:
		return 0
	case i == len(pts):
		return len(pts) - 1
	}
	if x-pts[i-1].X <= pts[i].X-x {
		return i - 1
	}
	return i
}
