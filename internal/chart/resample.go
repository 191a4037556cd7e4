package chart

import "github.com/couchcryptid/storm-data-charts/internal/domain"

const (
	// AnchorsPerDay is the length of a day's anchor sequence: the borrowed
	// start, morning, day, evening, night, and the borrowed end.
	AnchorsPerDay = 6

	// DefaultSubdivisions is the number of steps between adjacent anchors.
	DefaultSubdivisions = 5
)

// dayAnchorOffsets places each anchor relative to the daily timestamp, which
// marks local noon: the borrowed start at 03:00, morning 06:00, day 12:00,
// evening 18:00, night at midnight and the borrowed end at 06:00 next day.
var dayAnchorOffsets = [AnchorsPerDay]int64{-9 * 3600, -6 * 3600, 0, 6 * 3600, 12 * 3600, 18 * 3600}

// DayAnchors returns the anchor sequence for days[dayIndex]. The first anchor
// is the previous day's NextNight and the last is the next day's Morning, so
// neighbouring curves meet around midnight. A day with a successor never uses
// its own NextNight: its curve ends on the successor's Morning, and its
// NextNight only becomes the start of the successor's curve. Missing
// neighbours are clamped to the day's own Morning and NextNight. Returns nil
// for an out-of-range index.
func DayAnchors(dayIndex int, days []domain.DayProfile) []float64 {
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil
	}
	d := days[dayIndex]

	start := d.Morning
	if dayIndex > 0 {
		start = days[dayIndex-1].NextNight
	}
	end := d.NextNight
	if dayIndex+1 < len(days) {
		end = days[dayIndex+1].Morning
	}

	return fillNonFinite([]float64{start, d.Morning, d.Day, d.Evening, d.Night, end})
}

// Expand resamples one day's anchors into a dense, evenly spaced series of
// (AnchorsPerDay-1)*subdivisions+1 values.
func Expand(dayIndex int, days []domain.DayProfile, subdivisions int) []float64 {
	return Subdivide(DayAnchors(dayIndex, days), subdivisions)
}

// DayTimestamps returns the Unix time of every value Expand produces with the
// same subdivisions, for a day whose daily timestamp is dayTime.
func DayTimestamps(dayTime int64, subdivisions int) []int64 {
	k := int64(max(subdivisions, 1))
	out := make([]int64, 0, (AnchorsPerDay-1)*int(k)+1)
	for i := 0; i+1 < AnchorsPerDay; i++ {
		a, b := dayTime+dayAnchorOffsets[i], dayTime+dayAnchorOffsets[i+1]
		for j := range k {
			out = append(out, a+(b-a)*j/k)
		}
	}
	return append(out, dayTime+dayAnchorOffsets[AnchorsPerDay-1])
}

// Subdivide linearly interpolates k steps between each pair of adjacent
// anchors. The output has (len(anchors)-1)*k+1 values and always ends on the
// last anchor. k below 1 is treated as 1.
func Subdivide(anchors []float64, k int) []float64 {
	if len(anchors) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}

	out := make([]float64, 0, (len(anchors)-1)*k+1)
	for i := 0; i+1 < len(anchors); i++ {
		a, b := anchors[i], anchors[i+1]
		for j := 0; j < k; j++ {
			out = append(out, a+(b-a)*float64(j)/float64(k))
		}
	}
	return append(out, anchors[len(anchors)-1])
}

// fillNonFinite replaces NaN and ±Inf entries with the nearest finite entry,
// preferring the earlier one on ties. A sequence with no finite entry becomes
// all zeros.
func fillNonFinite(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	for i, v := range out {
		if domain.IsFinite(v) {
			continue
		}
		out[i] = 0
		for dist := 1; dist < len(values); dist++ {
			if j := i - dist; j >= 0 && domain.IsFinite(values[j]) {
				out[i] = values[j]
				break
			}
			if j := i + dist; j < len(values) && domain.IsFinite(values[j]) {
				out[i] = values[j]
				break
			}
		}
	}
	return out
}
