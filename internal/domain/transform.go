package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Aux keys carried on hourly samples.
const (
	AuxWindSpeed = "wind_speed"
	AuxPop       = "pop"
	AuxRain      = "rain"
)

// RawForecast is the One Call shaped JSON produced by the collector.
type RawForecast struct {
	LocationID     string        `json:"location_id"`
	Lat            float64       `json:"lat"`
	Lon            float64       `json:"lon"`
	TimezoneOffset int           `json:"timezone_offset"` // seconds east of UTC
	Hourly         []RawHour     `json:"hourly"`
	Minutely       []RawMinute   `json:"minutely"`
	Daily          []RawDayEntry `json:"daily"`
}

// RawHour is one hourly forecast entry.
type RawHour struct {
	Dt        int64    `json:"dt"`
	Temp      float64  `json:"temp"`       // Kelvin
	WindSpeed float64  `json:"wind_speed"` // m/s
	Pop       float64  `json:"pop"`        // 0..1
	Rain      *RawRain `json:"rain,omitempty"`
}

// RawRain holds the rain volume of the last hour in mm.
type RawRain struct {
	OneHour float64 `json:"1h"`
}

// RawMinute is one minute-level precipitation entry in mm/h.
type RawMinute struct {
	Dt            int64   `json:"dt"`
	Precipitation float64 `json:"precipitation"`
}

// RawDayEntry is one daily forecast entry.
type RawDayEntry struct {
	Dt   int64       `json:"dt"`
	Temp RawDayTemps `json:"temp"`
}

// RawDayTemps holds the canonical daily readings in Kelvin.
type RawDayTemps struct {
	Morn  float64 `json:"morn"`
	Day   float64 `json:"day"`
	Eve   float64 `json:"eve"`
	Night float64 `json:"night"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ForecastSnapshot is the parsed, ordered input for chart assembly.
type ForecastSnapshot struct {
	ID         string
	LocationID string
	UTCOffset  int
	IssuedAt   time.Time
	Hourly     []Sample
	Minutely   []Sample
	Daily      []DayProfile
	DailyTimes []int64
}

// Location returns a fixed zone for the snapshot's UTC offset.
func (f ForecastSnapshot) Location() *time.Location {
	return time.FixedZone(f.LocationID, f.UTCOffset)
}

// ErrEmptyForecast reports a snapshot with no series to chart.
var ErrEmptyForecast = errors.New("forecast has no hourly, minutely or daily data")

// ParseRawEvent deserializes a RawEvent's value into a ForecastSnapshot.
func ParseRawEvent(raw RawEvent) (ForecastSnapshot, error) {
	var rec RawForecast
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return ForecastSnapshot{}, fmt.Errorf("parse raw event: %w", err)
	}
	if rec.LocationID == "" {
		rec.LocationID = strings.TrimSpace(string(raw.Key))
	}
	return NewForecastSnapshot(rec, raw.Timestamp)
}

// NewForecastSnapshot orders and normalizes a raw forecast. issuedAt falls back
// to the first sample time when zero.
func NewForecastSnapshot(rec RawForecast, issuedAt time.Time) (ForecastSnapshot, error) {
	if len(rec.Hourly) == 0 && len(rec.Minutely) == 0 && len(rec.Daily) == 0 {
		return ForecastSnapshot{}, fmt.Errorf("location %q: %w", rec.LocationID, ErrEmptyForecast)
	}

	snap := ForecastSnapshot{
		LocationID: rec.LocationID,
		UTCOffset:  rec.TimezoneOffset,
		Hourly:     hourlySamples(rec.Hourly),
		Minutely:   minutelySamples(rec.Minutely),
	}
	snap.Daily, snap.DailyTimes = dayProfiles(rec.Daily)

	if issuedAt.IsZero() {
		issuedAt = firstSampleTime(snap)
	}
	snap.IssuedAt = issuedAt.UTC()
	snap.ID = generateID(snap.LocationID, snap.IssuedAt)
	return snap, nil
}

func hourlySamples(hours []RawHour) []Sample {
	out := make([]Sample, 0, len(hours))
	for _, h := range hours {
		aux := map[string]float64{
			AuxWindSpeed: h.WindSpeed,
			AuxPop:       h.Pop,
		}
		if h.Rain != nil {
			aux[AuxRain] = h.Rain.OneHour
		}
		out = append(out, Sample{Timestamp: h.Dt, Value: h.Temp, Aux: aux})
	}
	sortSamples(out)
	return out
}

func minutelySamples(minutes []RawMinute) []Sample {
	out := make([]Sample, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, Sample{Timestamp: m.Dt, Value: m.Precipitation})
	}
	sortSamples(out)
	return out
}

// dayProfiles maps daily entries to profiles. NextNight is the midpoint
// between this night and the next morning; the last day keeps its own night.
func dayProfiles(days []RawDayEntry) ([]DayProfile, []int64) {
	sorted := make([]RawDayEntry, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Dt < sorted[j].Dt })

	profiles := make([]DayProfile, len(sorted))
	times := make([]int64, len(sorted))
	for i, d := range sorted {
		next := d.Temp.Night
		if i+1 < len(sorted) {
			next = (d.Temp.Night + sorted[i+1].Temp.Morn) / 2
		}
		profiles[i] = DayProfile{
			Morning:   d.Temp.Morn,
			Day:       d.Temp.Day,
			Evening:   d.Temp.Eve,
			Night:     d.Temp.Night,
			NextNight: next,
		}
		times[i] = d.Dt
	}
	return profiles, times
}

func sortSamples(s []Sample) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Timestamp < s[j].Timestamp })
}

func firstSampleTime(f ForecastSnapshot) time.Time {
	switch {
	case len(f.Hourly) > 0:
		return f.Hourly[0].Time()
	case len(f.Minutely) > 0:
		return f.Minutely[0].Time()
	case len(f.DailyTimes) > 0:
		return time.Unix(f.DailyTimes[0], 0).UTC()
	default:
		return time.Time{}
	}
}

// generateID produces a deterministic ID from the location and issue time, so
// replaying a snapshot yields the same bundle key.
func generateID(locationID string, issuedAt time.Time) string {
	input := fmt.Sprintf("%s|%d", locationID, issuedAt.Unix())
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if locationID == "" {
		return short
	}
	return locationID + "-" + short
}
