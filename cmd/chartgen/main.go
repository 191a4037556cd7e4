// Command chartgen renders forecast snapshot fixtures into chart bundle
// fixtures. It runs the same chart package as the service, with a fixed clock
// so RenderedAt stamps are reproducible.
//
// Usage:
//
//	go run ./cmd/chartgen \
//	  -in data/mock/forecast_snapshots.json \
//	  -out data/mock/chart_bundles.json \
//	  -units metric
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// renderedAt is the fixed render time stamped on generated bundles.
var renderedAt = time.Date(2026, time.May, 1, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "path to forecast snapshot JSON fixture")
	out := flag.String("out", "", "output path for chart bundle JSON fixture")
	units := flag.String("units", string(domain.Metric), "metric or imperial")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -out")
	}

	metric, err := domain.ParseMetric(*units)
	if err != nil {
		return err
	}

	forecasts, err := readForecasts(*in)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	domain.SetClock(clockwork.NewFakeClockAt(renderedAt))
	defer domain.SetClock(nil)

	bundles, err := renderAll(forecasts, metric, chart.DefaultLayout())
	if err != nil {
		return err
	}

	if err := writeJSON(*out, bundles); err != nil {
		return fmt.Errorf("writing bundle fixture: %w", err)
	}
	log.Printf("wrote %d bundles: %s", len(bundles), *out)

	printStats(bundles)
	return nil
}

func readForecasts(path string) ([]domain.RawForecast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []domain.RawForecast
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// renderAll builds one bundle per forecast. Snapshots are issued at their first
// sample time so IDs depend only on fixture contents.
func renderAll(forecasts []domain.RawForecast, metric domain.MetricValue, layout chart.Layout) ([]chart.Bundle, error) {
	bundles := make([]chart.Bundle, 0, len(forecasts))
	for i := range forecasts {
		snap, err := domain.NewForecastSnapshot(forecasts[i], time.Time{})
		if err != nil {
			return nil, fmt.Errorf("forecast %d: %w", i, err)
		}
		b, err := chart.BuildBundle(snap, metric, layout)
		if err != nil {
			return nil, fmt.Errorf("forecast %d: %w", i, err)
		}
		bundles = append(bundles, b)
		log.Printf("%s: hourly=%t precipitation=%t days=%d", b.LocationID, b.Hourly != nil, b.Precipitation != nil, len(b.Days))
	}
	return bundles, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(bundles []chart.Bundle) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Bundles: %d\n", len(bundles))
	for i := range bundles {
		b := &bundles[i]
		fmt.Printf("\n%s (%s)\n", b.LocationID, b.ID)
		if b.Hourly != nil {
			fmt.Printf("  Hourly: %d points, axis %s..%s, %d gradient stops\n",
				len(b.Hourly.Points), tickText(b.Hourly.Axis, len(b.Hourly.Axis)-1), tickText(b.Hourly.Axis, 0), len(b.Hourly.Gradient))
			if len(b.Hourly.TimeLabels) > 0 {
				fmt.Printf("  First label: %s\n", b.Hourly.TimeLabels[0].Text)
			}
		}
		if b.Precipitation != nil {
			fmt.Printf("  Precipitation: %d points, %d rects, max %g mm/h\n",
				len(b.Precipitation.Points), len(b.Precipitation.Rects), b.Precipitation.Max)
		}
		for _, d := range b.Days {
			fmt.Printf("  Day %d: %d points, axis %s..%s\n",
				d.DayIndex, len(d.Points), tickText(d.Axis, len(d.Axis)-1), tickText(d.Axis, 0))
		}
	}
}

func tickText(ticks []domain.AxisTick, i int) string {
	if i < 0 || i >= len(ticks) {
		return "-"
	}
	return fmt.Sprintf("%g%s", ticks[i].Value, ticks[i].Units)
}
