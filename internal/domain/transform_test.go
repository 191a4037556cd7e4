package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLocation = "zurich"

func TestParseRawEvent(t *testing.T) {
	issued := time.Date(2024, 4, 26, 6, 0, 0, 0, time.UTC)

	t.Run("one call payload", func(t *testing.T) {
		data := []byte(`{
			"location_id": "zurich",
			"timezone_offset": 7200,
			"hourly": [
				{"dt": 1714118400, "temp": 285.2, "wind_speed": 3.1, "pop": 0.2},
				{"dt": 1714114800, "temp": 284.1, "wind_speed": 2.5, "pop": 0, "rain": {"1h": 0.4}}
			],
			"minutely": [{"dt": 1714114860, "precipitation": 0.5}, {"dt": 1714114800, "precipitation": 0}],
			"daily": [
				{"dt": 1714186800, "temp": {"morn": 280, "day": 290, "eve": 286, "night": 282}},
				{"dt": 1714100400, "temp": {"morn": 278, "day": 288, "eve": 284, "night": 281}}
			]
		}`)
		result, err := ParseRawEvent(RawEvent{Value: data, Timestamp: issued})
		require.NoError(t, err)

		assert.Equal(t, testLocation, result.LocationID)
		assert.Equal(t, 7200, result.UTCOffset)
		assert.Equal(t, issued, result.IssuedAt)
		assert.True(t, strings.HasPrefix(result.ID, "zurich-"))

		require.Len(t, result.Hourly, 2)
		assert.Equal(t, int64(1714114800), result.Hourly[0].Timestamp, "hourly sorted by time")
		assert.Equal(t, 284.1, result.Hourly[0].Value)
		assert.Equal(t, 0.4, result.Hourly[0].Aux[AuxRain])
		assert.Equal(t, 3.1, result.Hourly[1].Aux[AuxWindSpeed])
		_, hasRain := result.Hourly[1].Aux[AuxRain]
		assert.False(t, hasRain)

		require.Len(t, result.Minutely, 2)
		assert.Equal(t, 0.0, result.Minutely[0].Value)

		require.Len(t, result.Daily, 2)
		assert.Equal(t, []int64{1714100400, 1714186800}, result.DailyTimes)
		assert.Equal(t, DayProfile{Morning: 278, Day: 288, Evening: 284, Night: 281, NextNight: 280.5}, result.Daily[0])
		assert.Equal(t, 282.0, result.Daily[1].NextNight, "last day keeps its own night")
	})

	t.Run("location from key", func(t *testing.T) {
		data := []byte(`{"minutely": [{"dt": 1714114800, "precipitation": 1}]}`)
		result, err := ParseRawEvent(RawEvent{Key: []byte(" bern "), Value: data})
		require.NoError(t, err)
		assert.Equal(t, "bern", result.LocationID)
		assert.Equal(t, time.Unix(1714114800, 0).UTC(), result.IssuedAt, "issued at falls back to first sample")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("{invalid json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw event")
	})

	t.Run("empty forecast", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"location_id":"zurich"}`)})
		require.ErrorIs(t, err, ErrEmptyForecast)
	})

	t.Run("deterministic ID", func(t *testing.T) {
		data := []byte(`{"location_id":"zurich","hourly":[{"dt":1714114800,"temp":280}]}`)
		raw := RawEvent{Value: data, Timestamp: issued}

		r1, err := ParseRawEvent(raw)
		require.NoError(t, err)
		r2, err := ParseRawEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, r1.ID, r2.ID)
	})
}

func TestGenerateID(t *testing.T) {
	issued := time.Date(2024, 4, 26, 6, 0, 0, 0, time.UTC)

	t.Run("includes location prefix", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(generateID(testLocation, issued), "zurich-"))
	})

	t.Run("different issue times produce different IDs", func(t *testing.T) {
		assert.NotEqual(t, generateID(testLocation, issued), generateID(testLocation, issued.Add(time.Hour)))
	})

	t.Run("empty location", func(t *testing.T) {
		id := generateID("", issued)
		assert.Len(t, id, 16)
	})
}

func TestForecastSnapshot_Location(t *testing.T) {
	snap := ForecastSnapshot{LocationID: testLocation, UTCOffset: 3600}
	ts := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 13, ts.In(snap.Location()).Hour())
}

func TestNow_UsesClock(t *testing.T) {
	fixed := time.Date(2024, 4, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	assert.Equal(t, fixed, Now())
}

func TestSample_Time(t *testing.T) {
	s := Sample{Timestamp: 1714114800}
	assert.Equal(t, time.Date(2024, 4, 26, 7, 0, 0, 0, time.UTC), s.Time())
}
