// Command validate checks a chart bundle fixture against the geometry rules
// the chart package guarantees: finite coordinates, ordered axes, resampled
// day lengths, bar sizes and pointer snapping. With -forecasts it also
// re-renders the source snapshots and diffs them against the fixture.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -bundles data/mock/chart_bundles.json \
//	  -forecasts data/mock/forecast_snapshots.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// renderedAt matches the clock chartgen stamps bundles with.
var renderedAt = time.Date(2026, time.May, 1, 6, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	bundlesPath := flag.String("bundles", "", "path to chart bundle JSON fixture")
	forecastsPath := flag.String("forecasts", "", "optional path to the forecast snapshot fixture the bundles were rendered from")
	flag.Parse()

	if *bundlesPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*bundlesPath, *forecastsPath))
}

func run(bundlesPath, forecastsPath string) int {
	fmt.Println("=== Chart Bundle Validation ===")
	fmt.Println()

	bundles, err := loadJSON[chart.Bundle](bundlesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load bundles: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateGeometry(bundles),
		validateAxes(bundles),
		validateDayScales(bundles),
		validateBars(bundles),
		validatePointer(bundles),
	}

	if forecastsPath != "" {
		forecasts, err := loadJSON[domain.RawForecast](forecastsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load forecasts: %v\n", err)
			return 1
		}
		phases = append(phases, validateRender(bundles, forecasts))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Bundles: %d\n", len(bundles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Geometry ──

func validateGeometry(bundles []chart.Bundle) *phase {
	p := &phase{name: "Phase 1: Geometry (finite, ordered points)"}
	for i := range bundles {
		b := &bundles[i]
		if b.Hourly != nil {
			checkSeries(p, b.LocationID+" hourly", b.Hourly.Points, b.Hourly.Curve, b.Layout)
			if len(b.Hourly.Values) != len(b.Hourly.Points) {
				p.errorf("%s hourly: %d values for %d points", b.LocationID, len(b.Hourly.Values), len(b.Hourly.Points))
			}
			if len(b.Hourly.WindSpeeds) != len(b.Hourly.Points) {
				p.errorf("%s hourly: %d wind speeds for %d points", b.LocationID, len(b.Hourly.WindSpeeds), len(b.Hourly.Points))
			}
		}
		if b.Precipitation != nil {
			checkSeries(p, b.LocationID+" precipitation", b.Precipitation.Points, b.Precipitation.Curve, b.Layout)
		}
		for _, d := range b.Days {
			checkSeries(p, fmt.Sprintf("%s day %d", b.LocationID, d.DayIndex), d.Points, d.Curve, b.Layout)
		}
	}
	return p
}

func checkSeries(p *phase, name string, pts []domain.Point2D, curve domain.CurveDescriptor, layout chart.Layout) {
	for i, pt := range pts {
		if !domain.IsFinite(pt.X) || !domain.IsFinite(pt.Y) {
			p.errorf("%s point %d: non-finite (%g, %g)", name, i, pt.X, pt.Y)
			continue
		}
		if pt.X < 0 || pt.X > layout.Width || pt.Y < 0 || pt.Y > layout.Height {
			p.errorf("%s point %d: (%g, %g) outside %gx%g", name, i, pt.X, pt.Y, layout.Width, layout.Height)
		}
		if i > 0 && pt.X <= pts[i-1].X {
			p.errorf("%s point %d: x %g not after %g", name, i, pt.X, pts[i-1].X)
		}
	}

	switch {
	case len(pts) < 2 && curve.Path != "":
		p.errorf("%s: path %q for %d points", name, curve.Path, len(pts))
	case len(pts) >= 2 && !strings.HasPrefix(curve.Path, "M"):
		p.errorf("%s: path does not start with M", name)
	}
	for _, path := range []string{curve.Path, curve.AreaPath} {
		if strings.Contains(path, "NaN") || strings.Contains(path, "Inf") {
			p.errorf("%s: non-finite coordinate in path", name)
		}
	}
	if curve.AreaPath != "" && !strings.HasSuffix(curve.AreaPath, "Z") {
		p.errorf("%s: area path is not closed", name)
	}
}

// ── Phase 2: Axes ──

func validateAxes(bundles []chart.Bundle) *phase {
	p := &phase{name: "Phase 2: Axes (ordered ticks)"}
	for i := range bundles {
		b := &bundles[i]
		if b.Hourly != nil {
			checkAxis(p, b.LocationID+" hourly", b.Hourly.Axis, b.Layout.Height)
		}
		if b.Precipitation != nil {
			checkAxis(p, b.LocationID+" precipitation", b.Precipitation.Axis, b.Layout.Height)
		}
		for _, d := range b.Days {
			checkAxis(p, fmt.Sprintf("%s day %d", b.LocationID, d.DayIndex), d.Axis, b.Layout.Height)
		}
	}
	return p
}

func checkAxis(p *phase, name string, ticks []domain.AxisTick, height float64) {
	if len(ticks) == 0 {
		p.errorf("%s: empty axis", name)
		return
	}
	for i, t := range ticks {
		if !domain.IsFinite(t.PixelY) || t.PixelY < 0 || t.PixelY > height {
			p.errorf("%s tick %d: pixel y %g outside [0, %g]", name, i, t.PixelY, height)
		}
		if i == 0 {
			continue
		}
		if t.PixelY < ticks[i-1].PixelY {
			p.errorf("%s tick %d: pixel y %g above previous %g", name, i, t.PixelY, ticks[i-1].PixelY)
		}
		if t.Value > ticks[i-1].Value {
			p.errorf("%s tick %d: value %g above previous %g", name, i, t.Value, ticks[i-1].Value)
		}
	}
}

// ── Phase 3: Day scales ──

func validateDayScales(bundles []chart.Bundle) *phase {
	p := &phase{name: "Phase 3: Day scales (resampled length)"}
	for i := range bundles {
		b := &bundles[i]
		want := (chart.AnchorsPerDay-1)*b.Layout.Subdivisions + 1
		for j, d := range b.Days {
			if d.DayIndex != j {
				p.errorf("%s: day %d has index %d", b.LocationID, j, d.DayIndex)
			}
			if len(d.Points) != want {
				p.errorf("%s day %d: %d points, want %d", b.LocationID, j, len(d.Points), want)
			}
			if len(d.Values) != len(d.Points) {
				p.errorf("%s day %d: %d values for %d points", b.LocationID, j, len(d.Values), len(d.Points))
			}
		}
	}
	return p
}

// ── Phase 4: Precipitation bars ──

func validateBars(bundles []chart.Bundle) *phase {
	p := &phase{name: "Phase 4: Precipitation bars"}
	for i := range bundles {
		b := &bundles[i]
		pc := b.Precipitation
		if pc == nil {
			continue
		}
		if len(pc.Rects) > len(pc.Points) {
			p.errorf("%s: %d rects for %d points", b.LocationID, len(pc.Rects), len(pc.Points))
		}
		if pc.Max < 0 || math.IsNaN(pc.Max) {
			p.errorf("%s: max intensity %g", b.LocationID, pc.Max)
		}
		for j, r := range pc.Rects {
			if r.Height <= 0 || r.Height > chart.DefaultBarLayout.MaxHeight+1e-9 {
				p.errorf("%s rect %d: height %g outside (0, %g]", b.LocationID, j, r.Height, chart.DefaultBarLayout.MaxHeight)
			}
			if r.Width <= 0 {
				p.errorf("%s rect %d: width %g", b.LocationID, j, r.Width)
			}
		}
	}
	return p
}

// ── Phase 5: Pointer projection ──
// Every sample position must snap onto itself.

func validatePointer(bundles []chart.Bundle) *phase {
	p := &phase{name: "Phase 5: Pointer projection (self-snap)"}
	for i := range bundles {
		b := &bundles[i]
		if b.Hourly != nil {
			checkSnap(p, b.LocationID+" hourly", b.Hourly.Sampled())
		}
		if b.Precipitation != nil {
			checkSnap(p, b.LocationID+" precipitation", b.Precipitation.Sampled())
		}
		for _, d := range b.Days {
			checkSnap(p, fmt.Sprintf("%s day %d", b.LocationID, d.DayIndex), d.Sampled())
		}
	}
	return p
}

func checkSnap(p *phase, name string, curve *chart.SampledCurve) {
	projector := chart.NewPointerProjector(time.UTC)
	for i, pt := range curve.Points {
		if i >= len(curve.Values) {
			break
		}
		state := projector.Project(pt.X, curve)
		if !state.Visible {
			p.errorf("%s point %d: pointer at x=%g not visible", name, i, pt.X)
			continue
		}
		if state.Position != pt {
			p.errorf("%s point %d: snapped to (%g, %g)", name, i, state.Position.X, state.Position.Y)
		}
		if state.Value != curve.Values[i] {
			p.errorf("%s point %d: value %v, want %v", name, i, state.Value, curve.Values[i])
		}
		if i < len(curve.Timestamps) && state.Label == "" {
			p.errorf("%s point %d: no time label", name, i)
		}
	}
}

// ── Phase 6: Re-render ──
// Re-renders the source forecasts and diffs them against the fixture.

func validateRender(bundles []chart.Bundle, forecasts []domain.RawForecast) *phase {
	p := &phase{name: "Phase 6: Re-render parity"}

	domain.SetClock(clockwork.NewFakeClockAt(renderedAt))
	defer domain.SetClock(nil)

	if len(forecasts) != len(bundles) {
		p.errorf("%d forecasts, %d bundles", len(forecasts), len(bundles))
		return p
	}

	for i := range forecasts {
		want, err := rerender(forecasts[i], bundles[i].Units)
		if err != nil {
			p.errorf("forecast %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(want, bundles[i]); diff != "" {
			p.errorf("%s: bundle differs from re-render (-want +got):\n%s", bundles[i].LocationID, diff)
		}
	}
	return p
}

// rerender builds a bundle and passes it through JSON so it compares like a
// fixture entry.
func rerender(rec domain.RawForecast, metric domain.MetricValue) (chart.Bundle, error) {
	snap, err := domain.NewForecastSnapshot(rec, time.Time{})
	if err != nil {
		return chart.Bundle{}, err
	}
	b, err := chart.BuildBundle(snap, metric, chart.DefaultLayout())
	if err != nil {
		return chart.Bundle{}, err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return chart.Bundle{}, err
	}
	var out chart.Bundle
	if err := json.Unmarshal(data, &out); err != nil {
		return chart.Bundle{}, err
	}
	return out, nil
}
