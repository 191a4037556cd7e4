package httpadapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

func TestBundleCache_GetPut(t *testing.T) {
	c := newBundleCache(2)

	c.put("a", []byte("1"))
	c.put("b", []byte("2"))

	body, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), body)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestBundleCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newBundleCache(2)

	c.put("a", []byte("1"))
	c.put("b", []byte("2"))
	c.get("a")
	c.put("c", []byte("3"))

	_, ok := c.get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestBundleCache_UpdateExisting(t *testing.T) {
	c := newBundleCache(2)

	c.put("a", []byte("1"))
	c.put("a", []byte("2"))

	body, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("2"), body)
	assert.Equal(t, 1, c.len())
}

func TestBundleCache_SingleEntry(t *testing.T) {
	c := newBundleCache(1)

	c.put("a", []byte("1"))
	c.put("b", []byte("2"))

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.True(t, ok)
}

func TestBundleCache_ZeroCapacityStoresNothing(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		c := newBundleCache(capacity)
		c.put("a", []byte("1"))
		_, ok := c.get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.len())
	}
}

func TestBundleKey(t *testing.T) {
	forecast := domain.RawForecast{
		LocationID: "berlin",
		Hourly:     []domain.RawHour{{Dt: 1, Temp: 280}},
	}
	layout := chart.DefaultLayout()

	base, err := bundleKey(domain.Metric, layout, forecast)
	require.NoError(t, err)

	same, err := bundleKey(domain.Metric, layout, forecast)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	imperial, err := bundleKey(domain.Imperial, layout, forecast)
	require.NoError(t, err)
	assert.NotEqual(t, base, imperial)

	wide := layout
	wide.Width = 900
	widened, err := bundleKey(domain.Metric, wide, forecast)
	require.NoError(t, err)
	assert.NotEqual(t, base, widened)

	zoned := layout
	zoned.Location = time.FixedZone("X", 3600)
	located, err := bundleKey(domain.Metric, zoned, forecast)
	require.NoError(t, err)
	assert.NotEqual(t, base, located)

	forecast.Hourly[0].Temp = 281
	changed, err := bundleKey(domain.Metric, layout, forecast)
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)
}
