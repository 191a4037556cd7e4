package chart

import (
	"fmt"
	"time"

	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

// Bundle holds every chart rendered from one forecast snapshot.
type Bundle struct {
	ID            string              `json:"id"`
	LocationID    string              `json:"location_id"`
	Units         domain.MetricValue  `json:"units"`
	IssuedAt      time.Time           `json:"issued_at"`
	RenderedAt    time.Time           `json:"rendered_at"`
	Layout        Layout              `json:"layout"`
	Hourly        *HourlyChart        `json:"hourly,omitempty"`
	Precipitation *PrecipitationChart `json:"precipitation,omitempty"`
	Days          []DayScale          `json:"days"`
}

// BuildBundle renders every series present in snap. Series with no samples are
// skipped. Time labels use the snapshot's own UTC offset unless layout sets a
// location.
func BuildBundle(snap domain.ForecastSnapshot, metric domain.MetricValue, layout Layout) (Bundle, error) {
	if layout.Location == nil {
		layout.Location = snap.Location()
	}
	layout = layout.withDefaults()

	b := Bundle{
		ID:         snap.ID,
		LocationID: snap.LocationID,
		Units:      metric,
		IssuedAt:   snap.IssuedAt,
		RenderedAt: domain.Now().UTC(),
		Layout:     layout,
		Days:       make([]DayScale, 0, len(snap.Daily)),
	}

	if len(snap.Hourly) > 0 {
		hourly, err := BuildHourlyChart(snap.Hourly, metric, layout)
		if err != nil {
			return Bundle{}, fmt.Errorf("bundle %s: %w", snap.ID, err)
		}
		b.Hourly = &hourly
	}
	if len(snap.Minutely) > 0 {
		precip, err := BuildPrecipitationChart(snap.Minutely, layout)
		if err != nil {
			return Bundle{}, fmt.Errorf("bundle %s: %w", snap.ID, err)
		}
		b.Precipitation = &precip
	}
	for i := range snap.Daily {
		day, err := BuildDayScale(i, snap.Daily, metric, layout)
		if err != nil {
			return Bundle{}, fmt.Errorf("bundle %s: %w", snap.ID, err)
		}
		if i < len(snap.DailyTimes) {
			day = day.WithDayTime(snap.DailyTimes[i], layout.Subdivisions)
		}
		b.Days = append(b.Days, day)
	}
	return b, nil
}
