package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shareddomain "olist/internal/shared/domain"
)

func TestGeoIndex_FirstValidOccurrenceWins(t *testing.T) {
	index := NewGeoIndex([]GeoPoint{
		{ZipCodePrefix: "01310", Coordinates: shareddomain.NewCoordinates(math.NaN(), -46.6)},
		{ZipCodePrefix: "01310", Coordinates: shareddomain.NewCoordinates(-23.56, -46.65)},
		{ZipCodePrefix: "01310", Coordinates: shareddomain.NewCoordinates(-10, -10)},
		{ZipCodePrefix: "20040", Coordinates: shareddomain.NewCoordinates(-22.90, -43.17)},
	})

	assert.Equal(t, 2, index.Len())

	c, ok := index.Lookup("01310")
	require.True(t, ok)
	assert.Equal(t, -23.56, c.Lat())
	assert.Equal(t, -46.65, c.Lng())

	_, ok = index.Lookup("99999")
	assert.False(t, ok)
}

func TestNewReviewScore(t *testing.T) {
	assert.Equal(t, ReviewScore{OrderID: "o", DimIsFiveStar: 1, ReviewScore: 5}, NewReviewScore("o", 5))
	assert.Equal(t, ReviewScore{OrderID: "o", DimIsOneStar: 1, ReviewScore: 1}, NewReviewScore("o", 1))
	assert.Equal(t, ReviewScore{OrderID: "o", ReviewScore: 3}, NewReviewScore("o", 3))
}

func TestNewOrder_RequiresID(t *testing.T) {
	_, err := NewOrder("", "c1", OrderStatusDelivered, OrderTimestamps{})
	assert.Error(t, err)
}
