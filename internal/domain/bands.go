package domain

import (
	"fmt"
	"math"
	"regexp"
)

// hexColorRe matches a #rrggbb color.
var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Band is one labeled, colored value interval. Both bounds are inclusive.
type Band struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// BandTable is an ordered list of non-overlapping bands. Treat it as read-only;
// the lookups return fresh slices so callers never alias the table.
type BandTable []Band

// TemperatureBands classifies temperatures in Kelvin.
var TemperatureBands = mustBandTable(
	Band{Min: 0, Max: 253.14, Label: "frigid", Color: "#5e4fa2"},
	Band{Min: 253.15, Max: 263.14, Label: "very cold", Color: "#3288bd"},
	Band{Min: 263.15, Max: 273.14, Label: "cold", Color: "#66c2a5"},
	Band{Min: 273.15, Max: 288.14, Label: "cool", Color: "#abdda4"},
	Band{Min: 288.15, Max: 293.14, Label: "mild", Color: "#e6f598"},
	Band{Min: 293.15, Max: 298.14, Label: "warm", Color: "#fee08b"},
	Band{Min: 298.15, Max: 303.14, Label: "hot", Color: "#fdae61"},
	Band{Min: 303.15, Max: 308.14, Label: "very hot", Color: "#f46d43"},
	Band{Min: 308.15, Max: 373.15, Label: "extreme heat", Color: "#d53e4f"},
)

// PrecipitationBands classifies precipitation intensity in mm/h.
var PrecipitationBands = mustBandTable(
	Band{Min: 0, Max: 0, Label: "none", Color: "#e3f2fd"},
	Band{Min: 0.01, Max: 2.5, Label: "light", Color: "#90caf9"},
	Band{Min: 2.51, Max: 5.0, Label: "moderate", Color: "#42a5f5"},
	Band{Min: 5.01, Max: 7.5, Label: "heavy", Color: "#1e88e5"},
	Band{Min: 7.51, Max: 500, Label: "very heavy", Color: "#0d47a1"},
)

// NewBandTable validates and copies bands into a table. Bands must be finite,
// ascending and non-overlapping, each with a #rrggbb color.
func NewBandTable(bands ...Band) (BandTable, error) {
	table := make(BandTable, len(bands))
	for i, b := range bands {
		if !IsFinite(b.Min) || !IsFinite(b.Max) || b.Min > b.Max {
			return nil, fmt.Errorf("band %d (%s): bounds [%v, %v]: %w", i, b.Label, b.Min, b.Max, ErrInvalidInput)
		}
		if i > 0 && b.Min <= bands[i-1].Max {
			return nil, fmt.Errorf("band %d (%s) overlaps %s: %w", i, b.Label, bands[i-1].Label, ErrInvalidInput)
		}
		if !hexColorRe.MatchString(b.Color) {
			return nil, fmt.Errorf("band %d (%s): color %q: %w", i, b.Label, b.Color, ErrInvalidInput)
		}
		table[i] = b
	}
	return table, nil
}

func mustBandTable(bands ...Band) BandTable {
	t, err := NewBandTable(bands...)
	if err != nil {
		panic(err)
	}
	return t
}

// Overlapping returns every band b with b.Min <= hi and b.Max >= lo, in table
// order. Bounds are taken as given: an inverted query (lo > hi) only matches
// bands wide enough to contain both ends.
func (t BandTable) Overlapping(lo, hi float64) []Band {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return []Band{}
	}
	out := []Band{}
	for _, b := range t {
		if b.Min <= hi && b.Max >= lo {
			out = append(out, b)
		}
	}
	return out
}

// Reached returns every band whose lower bound is at or below v, in table
// order. Non-finite and negative values reach nothing.
func (t BandTable) Reached(v float64) []Band {
	if !IsFinite(v) || v < 0 {
		return []Band{}
	}
	out := []Band{}
	for _, b := range t {
		if b.Min <= v {
			out = append(out, b)
		}
	}
	return out
}

// Classify returns the highest band reached by v.
func (t BandTable) Classify(v float64) (Band, bool) {
	if !IsFinite(v) {
		return Band{}, false
	}
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Min <= v {
			return t[i], true
		}
	}
	return Band{}, false
}

// Domain returns the lowest and highest bound covered by the table.
func (t BandTable) Domain() (float64, float64) {
	if len(t) == 0 {
		return 0, 0
	}
	return t[0].Min, t[len(t)-1].Max
}
