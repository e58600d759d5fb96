package application

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersapp "olist/internal/orders/application"
	ordersdomain "olist/internal/orders/domain"
	ordersinfra "olist/internal/orders/infrastructure"
	"olist/internal/sellers/domain"
	"olist/internal/testhelpers"
)

func newTestBuilder(t testing.TB, economics domain.Economics) *SellerFeatureBuilder {
	t.Helper()
	return newFixtureBuilder(t, testhelpers.MarketplaceFixture(), economics)
}

func newFixtureBuilder(t testing.TB, fixture *testhelpers.Fixture, economics domain.Economics) *SellerFeatureBuilder {
	t.Helper()
	snapshot := fixture.Snapshot(t)
	repo := ordersinfra.NewSnapshotRepository(snapshot)
	b, err := NewSellerFeatureBuilder(repo, ordersapp.NewOrderFeatureBuilder(repo, nil, nil), economics, nil, nil)
	require.NoError(t, err)
	return b
}

func TestNewSellerFeatureBuilder_InvalidEconomics(t *testing.T) {
	economics := domain.DefaultEconomics()
	economics.SalesCut = 2

	_, err := NewSellerFeatureBuilder(nil, nil, economics, nil, nil)
	assert.Error(t, err)
}

func TestSellerFeatures_Dedup(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	rows, err := b.SellerFeatures()
	require.NoError(t, err)
	assert.Equal(t, []domain.SellerIdentity{
		{SellerID: "s1", SellerCity: "sao paulo", SellerState: "SP"},
		{SellerID: "s2", SellerCity: "rio de janeiro", SellerState: "RJ"},
		{SellerID: "s3", SellerCity: "campinas", SellerState: "SP"},
	}, rows)
}

func TestDelayWaitTime(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	rows, err := b.DelayWaitTime()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	s1, s2, s3 := rows[0], rows[1], rows[2]
	assert.Equal(t, ordersdomain.SellerID("s1"), s1.SellerID)
	assert.InDelta(t, 1.0, s1.DelayToCarrier, 1e-9)
	assert.InDelta(t, (9+23.0/24+4+4)/3, s1.WaitTime, 1e-9)

	// en avance d'un jour: ramené à 0
	assert.Equal(t, 0.0, s2.DelayToCarrier)
	assert.InDelta(t, 9+23.0/24, s2.WaitTime, 1e-9)

	assert.Equal(t, 0.0, s3.DelayToCarrier)
	assert.InDelta(t, 5.0, s3.WaitTime, 1e-9)

	for _, r := range rows {
		assert.GreaterOrEqual(t, r.DelayToCarrier, 0.0)
	}
}

func TestActiveDates(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	rows, err := b.ActiveDates()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, time.Date(2017, 1, 1, 11, 0, 0, 0, time.UTC), rows[0].DateFirstSale)
	assert.Equal(t, time.Date(2017, 3, 1, 1, 0, 0, 0, time.UTC), rows[0].DateLastSale)
	assert.Equal(t, 2, rows[0].MonthsOnOlist)
	assert.Equal(t, 3, rows[1].MonthsOnOlist)
	assert.Equal(t, 0, rows[2].MonthsOnOlist)
}

func TestQuantityAndSales(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	quantities, err := b.Quantity()
	require.NoError(t, err)
	assert.Equal(t, domain.Quantity{SellerID: "s1", NOrders: 2, Quantity: 3, QuantityPerOrder: 1.5}, quantities[0])
	for _, q := range quantities {
		assert.Equal(t, float64(q.Quantity)/float64(q.NOrders), q.QuantityPerOrder)
	}

	sales, err := b.Sales()
	require.NoError(t, err)
	assert.Equal(t, []domain.Sales{
		{SellerID: "s1", Sales: 150},
		{SellerID: "s2", Sales: 70},
		{SellerID: "s3", Sales: 40},
	}, sales)
}

func TestReviewScore(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	rows, err := b.ReviewScore()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.ReviewEconomics{
		SellerID: "s1", ShareOfOneStars: 0.5, ShareOfFiveStars: 0.5, ReviewScore: 3, CostOfReviews: 100,
	}, rows[0])
	assert.Equal(t, domain.ReviewEconomics{
		SellerID: "s2", ShareOfOneStars: 0, ShareOfFiveStars: 0.5, ReviewScore: 4.5, CostOfReviews: 0,
	}, rows[1])

	// s3 n'a reçu qu'une review à 4 étoiles
	assert.Equal(t, domain.ReviewEconomics{
		SellerID: "s3", ShareOfOneStars: 0, ShareOfFiveStars: 0, ReviewScore: 4, CostOfReviews: 0,
	}, rows[2])
}

func TestReviewScore_MissingScore(t *testing.T) {
	fixture := testhelpers.MarketplaceFixture().RawReview("o2", "")
	b := newFixtureBuilder(t, fixture, domain.DefaultEconomics())

	rows, err := b.ReviewScore()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// la review sans note compte dans les parts mais pas dans la moyenne ni le coût
	s1 := rows[0]
	assert.Equal(t, ordersdomain.SellerID("s1"), s1.SellerID)
	assert.InDelta(t, 1.0/3, s1.ShareOfOneStars, 1e-9)
	assert.InDelta(t, 1.0/3, s1.ShareOfFiveStars, 1e-9)
	assert.Equal(t, 3.0, s1.ReviewScore)
	assert.Equal(t, 100.0, s1.CostOfReviews)

	table, err := b.TrainingData()
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestReviewScore_OnlyMissingScores(t *testing.T) {
	fixture := testhelpers.NewFixture().
		Seller("s1", "01310", "sao paulo", "SP").
		Customer("c1", "20040").
		Order("o1", "c1", "delivered",
			"2017-01-01 10:00:00", "2017-01-01 11:00:00", "2017-01-03 10:00:00",
			"2017-01-05 10:00:00", "2017-01-10 00:00:00").
		OrderItem("o1", 1, "s1", "2017-01-02 10:00:00", 10, 2).
		RawReview("o1", "")
	b := newFixtureBuilder(t, fixture, domain.DefaultEconomics())

	rows, err := b.ReviewScore()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, math.IsNaN(rows[0].ReviewScore))
	assert.Equal(t, 0.0, rows[0].CostOfReviews)

	// review_score manquant: le vendeur est supprimé sans erreur
	table, err := b.TrainingData()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestTrainingData(t *testing.T) {
	b := newTestBuilder(t, domain.DefaultEconomics())

	table, err := b.TrainingData()
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	rows := table.Rows()
	assert.InDelta(t, 175.0, rows[0].Revenues, 1e-9)
	assert.InDelta(t, 75.0, rows[0].Profits, 1e-9)
	assert.InDelta(t, 247.0, rows[1].Revenues, 1e-9)
	assert.InDelta(t, 4.0, rows[2].Revenues, 1e-9)

	for _, r := range rows {
		assert.False(t, r.HasMissing())
		assert.Equal(t, r.Revenues-r.CostOfReviews, r.Profits)
		assert.Equal(t, float64(r.Quantity)/float64(r.NOrders), r.QuantityPerOrder)
		assert.False(t, math.IsNaN(r.WaitTime))
	}

	df := table.DataFrame()
	require.NoError(t, df.Err)
	assert.Equal(t, domain.SellerColumns, df.Names())
	assert.Equal(t, []string{"2017-01-01 11:00:00", "2017-01-01 11:00:00", "2017-05-01 02:00:00"}, df.Col("date_first_sale").Records())
}

func TestTrainingData_CustomEconomics(t *testing.T) {
	economics := domain.Economics{
		MonthlyFee:  100,
		SalesCut:    0.2,
		ReviewCosts: map[int]float64{1: 10},
	}
	b := newTestBuilder(t, economics)

	table, err := b.TrainingData()
	require.NoError(t, err)

	s1 := table.Rows()[0]
	assert.InDelta(t, 2*100+0.2*150, s1.Revenues, 1e-9)
	assert.Equal(t, 10.0, s1.CostOfReviews)
	assert.InDelta(t, s1.Revenues-10, s1.Profits, 1e-9)
}

func TestMeanPositiveDelta(t *testing.T) {
	assert.Equal(t, 0.0, meanPositiveDelta(nil))
	assert.Equal(t, 0.0, meanPositiveDelta([]float64{math.NaN()}))
	assert.Equal(t, 0.0, meanPositiveDelta([]float64{-2, 1}))
	assert.Equal(t, 1.5, meanPositiveDelta([]float64{1, 2, math.NaN()}))
	assert.True(t, math.IsNaN(meanDelta([]float64{math.NaN()})))
}

func TestTrainingData_SyntheticInvariants(t *testing.T) {
	b := newFixtureBuilder(t, testhelpers.SyntheticMarketplace(500), domain.DefaultEconomics())

	table, err := b.TrainingData()
	require.NoError(t, err)
	require.NotZero(t, table.Len())

	for _, r := range table.Rows() {
		assert.False(t, r.HasMissing())
		assert.GreaterOrEqual(t, r.DelayToCarrier, 0.0)
		assert.InDelta(t, float64(r.Quantity)/float64(r.NOrders), r.QuantityPerOrder, 1e-9)
		assert.InDelta(t, r.Revenues-r.CostOfReviews, r.Profits, 1e-9)
		assert.False(t, r.DateLastSale.Before(r.DateFirstSale))
	}
}

func benchmarkSellerTrainingData(b *testing.B, orders int) {
	builder := newFixtureBuilder(b, testhelpers.SyntheticMarketplace(orders), domain.DefaultEconomics())
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := builder.TrainingData(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSellerTrainingData_SmallDataset(b *testing.B) {
	benchmarkSellerTrainingData(b, 1000)
}

func BenchmarkSellerTrainingData_LargeDataset(b *testing.B) {
	benchmarkSellerTrainingData(b, 20000)
}
