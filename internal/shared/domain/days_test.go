package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholeDays(t *testing.T) {
	assert.Equal(t, 0, WholeDays(23*time.Hour))
	assert.Equal(t, 2, WholeDays(2*Day+time.Hour))
	assert.Equal(t, -1, WholeDays(-time.Hour))
	assert.Equal(t, -2, WholeDays(-Day-time.Minute))
	assert.Equal(t, -1, WholeDays(-Day))
}

func TestMeanAndSum(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, math.NaN(), 3}))
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN()})))
	assert.Equal(t, 4.0, Sum([]float64{1, math.NaN(), 3}))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestClampPositive(t *testing.T) {
	assert.Equal(t, 0.0, ClampPositive(-3))
	assert.Equal(t, 2.5, ClampPositive(2.5))
	assert.True(t, math.IsNaN(ClampPositive(math.NaN())))
}

func TestDateRange(t *testing.T) {
	day1 := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	day61 := day1.AddDate(0, 0, 60)

	dr, err := NewDateRange(day1, day61)
	require.NoError(t, err)
	assert.Equal(t, 2, dr.RoundedMonths())
	assert.InDelta(t, 1.971, dr.Months(), 0.001)

	_, err = NewDateRange(day61, day1)
	assert.Error(t, err)

	extended := dr.Extend(day1.AddDate(0, 0, -10)).Extend(day1.AddDate(0, 0, 5))
	assert.Equal(t, day1.AddDate(0, 0, -10), extended.Start())
	assert.Equal(t, day61, extended.End())
}
