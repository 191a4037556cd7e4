package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
	"github.com/couchcryptid/storm-data-charts/internal/observability"
)

// Header keys set on chart bundle events.
const (
	HeaderBundleID   = "bundle_id"
	HeaderLocationID = "location_id"
	HeaderUnits      = "units"
	HeaderRenderedAt = "rendered_at"
)

// ChartTransformer implements Transformer by rendering every series of a
// forecast snapshot into a chart.Bundle.
type ChartTransformer struct {
	metric  domain.MetricValue
	layout  chart.Layout
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a ChartTransformer rendering in metric units unless a
// snapshot's "units" header asks otherwise.
func NewTransformer(metric domain.MetricValue, layout chart.Layout, logger *slog.Logger, metrics *observability.Metrics) *ChartTransformer {
	return &ChartTransformer{
		metric:  metric,
		layout:  layout,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *ChartTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	snap, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	metric := t.metric
	if h, ok := raw.Headers[HeaderUnits]; ok {
		if metric, err = domain.ParseMetric(h); err != nil {
			return domain.OutputEvent{}, fmt.Errorf("snapshot %s: %w", snap.ID, err)
		}
	}

	start := time.Now()
	bundle, err := chart.BuildBundle(snap, metric, t.layout)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	t.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	t.countCharts(bundle)

	out, err := SerializeBundle(bundle)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	t.metrics.BundleSizeBytes.Observe(float64(len(out.Value)))

	t.logger.Debug("bundle rendered",
		"bundle_id", bundle.ID,
		"location_id", bundle.LocationID,
		"days", len(bundle.Days),
		"bytes", len(out.Value),
	)
	return out, nil
}

func (t *ChartTransformer) countCharts(b chart.Bundle) {
	if b.Hourly != nil {
		t.metrics.ChartsRendered.WithLabelValues("hourly").Inc()
	}
	if b.Precipitation != nil {
		t.metrics.ChartsRendered.WithLabelValues("precipitation").Inc()
	}
	if len(b.Days) > 0 {
		t.metrics.ChartsRendered.WithLabelValues("day").Add(float64(len(b.Days)))
	}
}

// SerializeBundle encodes a bundle as a sink event keyed by location.
func SerializeBundle(b chart.Bundle) (domain.OutputEvent, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize bundle %s: %w", b.ID, err)
	}
	return domain.OutputEvent{
		Key:   []byte(b.LocationID),
		Value: data,
		Headers: map[string]string{
			HeaderBundleID:   b.ID,
			HeaderLocationID: b.LocationID,
			HeaderUnits:      string(b.Units),
			HeaderRenderedAt: b.RenderedAt.Format(time.RFC3339),
		},
	}, nil
}
