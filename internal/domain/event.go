package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Sample is one observation: a temperature, a precipitation intensity, etc.
type Sample struct {
	Timestamp int64              `json:"timestamp"`
	Value     float64            `json:"value"`
	Aux       map[string]float64 `json:"aux,omitempty"`
}

// Time returns the sample timestamp as a UTC time.
func (s Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// DayProfile holds the canonical temperature readings of one calendar day.
// NextNight bridges into the following day.
type DayProfile struct {
	Morning   float64 `json:"morning"`
	Day       float64 `json:"day"`
	Evening   float64 `json:"evening"`
	Night     float64 `json:"night"`
	NextNight float64 `json:"next_night"`
}

// ConvertedValue is a display-ready value with its unit label.
type ConvertedValue struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// AxisTick is one gridline. Smaller PixelY is closer to the top of the chart.
type AxisTick struct {
	Value  float64 `json:"value"`
	Units  string  `json:"units"`
	PixelY float64 `json:"pixel_y"`
}

// Point2D is a coordinate in chart-local pixel space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CurveDescriptor holds SVG path data for a smooth curve and, optionally, the
// same curve closed against a baseline.
type CurveDescriptor struct {
	Path     string `json:"path"`
	AreaPath string `json:"area_path,omitempty"`
}

// Rect is intensity-bar geometry.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerState is the projection of a pointer onto a curve. It is recomputed
// on every pointer move and never persisted.
type PointerState struct {
	Position Point2D        `json:"position"`
	Value    ConvertedValue `json:"value"`
	Label    string         `json:"label"`
	Visible  bool           `json:"visible"`
}
