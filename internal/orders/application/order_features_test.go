package application

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	datasetdomain "olist/internal/dataset/domain"
	"olist/internal/orders/domain"
	"olist/internal/orders/infrastructure"
	shareddomain "olist/internal/shared/domain"
	"olist/internal/testhelpers"
)

func newTestBuilder(t *testing.T) *OrderFeatureBuilder {
	t.Helper()
	snapshot := testhelpers.MarketplaceFixture().Snapshot(t)
	return NewOrderFeatureBuilder(infrastructure.NewSnapshotRepository(snapshot), nil, nil)
}

func TestWaitTime_Delivered(t *testing.T) {
	b := newTestBuilder(t)

	rows, err := b.WaitTime(true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.OrderID("o1"), rows[0].OrderID)
	assert.Equal(t, 9.0, rows[0].WaitTime)
	assert.Equal(t, 6.0, rows[0].ExpectedWaitTime)
	assert.Equal(t, 3.0, rows[0].DelayVsExpected)

	assert.Equal(t, domain.OrderID("o2"), rows[1].OrderID)
	assert.Equal(t, 4.0, rows[1].WaitTime)
	assert.Equal(t, 9.0, rows[1].ExpectedWaitTime)
	assert.Equal(t, 0.0, rows[1].DelayVsExpected)

	for _, r := range rows {
		assert.GreaterOrEqual(t, r.DelayVsExpected, 0.0)
		assert.Equal(t, domain.OrderStatusDelivered, r.OrderStatus)
	}
}

func TestWaitTime_AllStatuses(t *testing.T) {
	b := newTestBuilder(t)

	rows, err := b.WaitTime(false)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	shipped := rows[2]
	assert.Equal(t, domain.OrderID("o3"), shipped.OrderID)
	assert.True(t, math.IsNaN(shipped.WaitTime))
	assert.True(t, math.IsNaN(shipped.DelayVsExpected))
	assert.Equal(t, 19.0, shipped.ExpectedWaitTime)
}

func TestReviewScore(t *testing.T) {
	b := newTestBuilder(t)

	rows, err := b.ReviewScore()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, domain.ReviewScore{OrderID: "o1", DimIsFiveStar: 1, ReviewScore: 5}, rows[0])
	assert.Equal(t, domain.ReviewScore{OrderID: "o2", DimIsOneStar: 1, ReviewScore: 1}, rows[1])
	assert.Equal(t, domain.ReviewScore{OrderID: "o3", ReviewScore: 4}, rows[2])
}

func TestCounts_TwoSellerOrder(t *testing.T) {
	b := newTestBuilder(t)

	products, err := b.NumberOfProducts()
	require.NoError(t, err)
	sellers, err := b.NumberOfSellers()
	require.NoError(t, err)
	prices, err := b.PriceAndFreight()
	require.NoError(t, err)

	require.Len(t, products, 4)
	require.Len(t, sellers, 4)
	require.Len(t, prices, 4)

	assert.Equal(t, domain.ProductCount{OrderID: "o1", NumberOfProducts: 2}, products[0])
	assert.Equal(t, domain.SellerCount{OrderID: "o1", NumberOfSellers: 2}, sellers[0])
	assert.Equal(t, domain.PriceFreight{OrderID: "o1", Price: 150, FreightValue: 15}, prices[0])

	// o2: deux items du même vendeur
	assert.Equal(t, 2, products[1].NumberOfProducts)
	assert.Equal(t, 1, sellers[1].NumberOfSellers)

	for i := range products {
		assert.GreaterOrEqual(t, products[i].NumberOfProducts, 1)
		assert.GreaterOrEqual(t, sellers[i].NumberOfSellers, 1)
	}
}

func TestDistanceSellerCustomer_FirstZipOccurrence(t *testing.T) {
	b := newTestBuilder(t)

	rows, err := b.DistanceSellerCustomer()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// o1: s1 (01310, premier point) et s2 (même zip que le client)
	expected := (shareddomain.HaversineDistance(-46.6559, -23.5614, -43.1750, -22.9035) + 0) / 2
	assert.Equal(t, domain.OrderID("o1"), rows[0].OrderID)
	assert.InDelta(t, expected, rows[0].DistanceSellerCustomer, 1e-9)

	assert.Equal(t, 0.0, rows[1].DistanceSellerCustomer)
}

func TestTrainingData(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.TrainingData(DefaultOrderOptions())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.True(t, table.WithDistance())

	rows := table.Rows()
	assert.Equal(t, []domain.OrderID{"o1", "o2", "o4"}, []domain.OrderID{rows[0].OrderID, rows[1].OrderID, rows[2].OrderID})
	assert.Equal(t, 2, rows[0].NumberOfSellers)
	assert.Equal(t, 150.0, rows[0].Price)
	for _, r := range rows {
		assert.False(t, r.HasMissing(true))
	}

	df := table.DataFrame()
	require.NoError(t, df.Err)
	assert.Equal(t, table.Columns(), df.Names())
	assert.Equal(t, 3, df.Nrow())
}

func TestTrainingData_MissingReviewScore(t *testing.T) {
	snapshot := testhelpers.MarketplaceFixture().RawReview("o4", "").Snapshot(t)
	b := NewOrderFeatureBuilder(infrastructure.NewSnapshotRepository(snapshot), nil, nil)

	reviews, err := b.ReviewScore()
	require.NoError(t, err)
	require.Len(t, reviews, 5)
	assert.Equal(t, domain.NewMissingReviewScore("o4"), reviews[4])

	// la review sans note est supprimée, celle à 4 étoiles reste
	table, err := b.TrainingData(DefaultOrderOptions())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	for _, r := range table.Rows() {
		assert.NotZero(t, r.ReviewScore)
	}
}

func TestTrainingData_InvalidReviewScore(t *testing.T) {
	snapshot := testhelpers.MarketplaceFixture().RawReview("o4", "abc").Snapshot(t)
	b := NewOrderFeatureBuilder(infrastructure.NewSnapshotRepository(snapshot), nil, nil)

	_, err := b.TrainingData(DefaultOrderOptions())
	assert.ErrorIs(t, err, datasetdomain.ErrInvalidNumber)
}

func TestTrainingData_Options(t *testing.T) {
	b := newTestBuilder(t)

	table, err := b.TrainingData(OrderOptions{IsDelivered: false, WithDistanceSellerCustomer: false})
	require.NoError(t, err)

	// o3 n'a pas de date de livraison: la ligne est supprimée
	assert.Equal(t, 3, table.Len())
	assert.NotContains(t, table.Columns(), "distance_seller_customer")
	assert.Len(t, table.Columns(), 12)
}

func TestTrainingData_SyntheticInvariants(t *testing.T) {
	snapshot := testhelpers.SyntheticMarketplace(500).Snapshot(t)
	b := NewOrderFeatureBuilder(infrastructure.NewSnapshotRepository(snapshot), nil, nil)

	table, err := b.TrainingData(DefaultOrderOptions())
	require.NoError(t, err)
	require.NotZero(t, table.Len())

	for _, r := range table.Rows() {
		assert.False(t, r.HasMissing(true))
		assert.GreaterOrEqual(t, r.DelayVsExpected, 0.0)
		assert.GreaterOrEqual(t, r.NumberOfProducts, 1)
		assert.GreaterOrEqual(t, r.NumberOfSellers, 1)
		assert.LessOrEqual(t, r.NumberOfSellers, r.NumberOfProducts)
		assert.Equal(t, domain.OrderStatusDelivered, r.OrderStatus)
	}
}

func benchmarkTrainingData(b *testing.B, orders int) {
	snapshot := testhelpers.SyntheticMarketplace(orders).Snapshot(b)
	builder := NewOrderFeatureBuilder(infrastructure.NewSnapshotRepository(snapshot), nil, nil)
	b.ResetTimer() // Ne pas compter la génération dans le benchmark

	for i := 0; i < b.N; i++ {
		if _, err := builder.TrainingData(DefaultOrderOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrainingData_SmallDataset(b *testing.B) {
	benchmarkTrainingData(b, 1000)
}

func BenchmarkTrainingData_LargeDataset(b *testing.B) {
	benchmarkTrainingData(b, 20000)
}
