package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-energy-trader/internal/model"
)

func TestNewSeriesStoreValidation(t *testing.T) {
	da, rt := testSeries(nil, nil)

	t.Run("empty day-ahead", func(t *testing.T) {
		_, err := NewSeriesStore(testDate, nil, rt)
		require.Error(t, err)
		assert.Equal(t, CodeDataUnavailable, CodeOf(err))
	})

	t.Run("empty real-time", func(t *testing.T) {
		_, err := NewSeriesStore(testDate, da, nil)
		require.Error(t, err)
		assert.Equal(t, CodeDataUnavailable, CodeOf(err))
	})

	t.Run("missing hour", func(t *testing.T) {
		gapped := append([]model.PricePoint{}, da[:14]...)
		gapped = append(gapped, da[15:]...)
		_, err := NewSeriesStore(testDate, gapped, rt)
		require.Error(t, err)
		assert.Equal(t, CodeDataUnavailable, CodeOf(err))
		assert.Contains(t, err.Error(), "hour 14")
	})

	t.Run("complete day", func(t *testing.T) {
		store, err := NewSeriesStore(testDate, da, rt)
		require.NoError(t, err)
		assert.Len(t, store.DayAhead(), 24)
		assert.Len(t, store.RealTime(), 288)
	})
}

func TestSeriesStoreSortsInput(t *testing.T) {
	da, rt := testSeries(map[int]float64{0: 10, 23: 99}, nil)
	// Reverse both series; the store must still index by hour.
	for i, j := 0, len(da)-1; i < j; i, j = i+1, j-1 {
		da[i], da[j] = da[j], da[i]
	}
	for i, j := 0, len(rt)-1; i < j; i, j = i+1, j-1 {
		rt[i], rt[j] = rt[j], rt[i]
	}

	store, err := NewSeriesStore(testDate, da, rt)
	require.NoError(t, err)

	first, err := store.DayAheadFor(0)
	require.NoError(t, err)
	assert.True(t, first.Equal(decimal.NewFromInt(10)))
	last, err := store.DayAheadFor(23)
	require.NoError(t, err)
	assert.True(t, last.Equal(decimal.NewFromInt(99)))

	sorted := store.RealTime()
	for i := 1; i < len(sorted); i++ {
		assert.True(t, sorted[i].Timestamp.After(sorted[i-1].Timestamp))
	}
}

func TestRealTimeThrough(t *testing.T) {
	da, rt := testSeries(nil, nil)
	store, err := NewSeriesStore(testDate, da, rt)
	require.NoError(t, err)

	assert.Empty(t, store.RealTimeThrough(testDate.Add(-time.Minute)))
	// Boundary point is included.
	assert.Len(t, store.RealTimeThrough(testDate), 1)
	assert.Len(t, store.RealTimeThrough(testDate.Add(2*time.Hour)), 25)
	assert.Len(t, store.RealTimeThrough(testDate.Add(48*time.Hour)), 288)
}

func TestRealTimeForHour(t *testing.T) {
	da, rt := testSeries(nil, map[int]float64{7: 61})
	store, err := NewSeriesStore(testDate, da, rt)
	require.NoError(t, err)

	full := store.RealTimeForHour(7, time.Time{})
	require.Len(t, full, 12)
	for _, p := range full {
		assert.Equal(t, 7, p.Timestamp.Hour())
		assert.True(t, p.Price.Equal(decimal.NewFromInt(61)))
	}

	partial := store.RealTimeForHour(7, testDate.Add(7*time.Hour+20*time.Minute))
	assert.Len(t, partial, 5)

	assert.Empty(t, store.RealTimeForHour(7, testDate.Add(3*time.Hour)))
}

func TestStats(t *testing.T) {
	empty := Stats(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.Mean.IsZero())

	points := []model.PricePoint{
		{Timestamp: testDate, Price: decimal.NewFromInt(30)},
		{Timestamp: testDate.Add(5 * time.Minute), Price: decimal.NewFromInt(60)},
		{Timestamp: testDate.Add(10 * time.Minute), Price: decimal.NewFromInt(45)},
	}
	st := Stats(points)
	assert.Equal(t, 3, st.Count)
	assert.True(t, st.Latest.Equal(decimal.NewFromInt(45)))
	assert.True(t, st.Min.Equal(decimal.NewFromInt(30)))
	assert.True(t, st.Max.Equal(decimal.NewFromInt(60)))
	assert.True(t, st.Mean.Equal(decimal.NewFromInt(45)))
}
