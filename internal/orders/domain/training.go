package domain

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// OrderTrainingRow ligne de la table d'entraînement des commandes
type OrderTrainingRow struct {
	OrderID                OrderID
	WaitTime               float64
	ExpectedWaitTime       float64
	DelayVsExpected        float64
	OrderStatus            OrderStatus
	DimIsFiveStar          int
	DimIsOneStar           int
	ReviewScore            int
	NumberOfProducts       int
	NumberOfSellers        int
	Price                  float64
	FreightValue           float64
	DistanceSellerCustomer float64
}

// HasMissing vérifie si une des valeurs de la ligne est manquante
func (r OrderTrainingRow) HasMissing(withDistance bool) bool {
	if r.OrderID == "" || r.OrderStatus == "" {
		return true
	}
	values := []float64{r.WaitTime, r.ExpectedWaitTime, r.DelayVsExpected, r.Price, r.FreightValue}
	if withDistance {
		values = append(values, r.DistanceSellerCustomer)
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// OrderTrainingTable table d'entraînement des commandes
type OrderTrainingTable struct {
	rows         []OrderTrainingRow
	withDistance bool
}

// NewOrderTrainingTable crée la table (les lignes sont copiées)
func NewOrderTrainingTable(rows []OrderTrainingRow, withDistance bool) *OrderTrainingTable {
	return &OrderTrainingTable{
		rows:         append([]OrderTrainingRow{}, rows...),
		withDistance: withDistance,
	}
}

// Rows retourne les lignes (copie)
func (t *OrderTrainingTable) Rows() []OrderTrainingRow {
	return append([]OrderTrainingRow{}, t.rows...)
}

// Len retourne le nombre de lignes
func (t *OrderTrainingTable) Len() int {
	return len(t.rows)
}

// WithDistance indique si la colonne distance_seller_customer est présente
func (t *OrderTrainingTable) WithDistance() bool {
	return t.withDistance
}

// Columns retourne les en-têtes dans l'ordre de la table
func (t *OrderTrainingTable) Columns() []string {
	cols := []string{
		"order_id",
		"wait_time",
		"expected_wait_time",
		"delay_vs_expected",
		"order_status",
		"dim_is_five_star",
		"dim_is_one_star",
		"review_score",
		"number_of_products",
		"number_of_sellers",
		"price",
		"freight_value",
	}
	if t.withDistance {
		cols = append(cols, "distance_seller_customer")
	}
	return cols
}

// DataFrame convertit la table en DataFrame gota
func (t *OrderTrainingTable) DataFrame() dataframe.DataFrame {
	n := len(t.rows)
	var (
		orderIDs  = make([]string, n)
		waitTimes = make([]float64, n)
		expected  = make([]float64, n)
		delays    = make([]float64, n)
		statuses  = make([]string, n)
		fiveStars = make([]int, n)
		oneStars  = make([]int, n)
		scores    = make([]int, n)
		products  = make([]int, n)
		sellers   = make([]int, n)
		prices    = make([]float64, n)
		freights  = make([]float64, n)
		distances = make([]float64, n)
	)
	for i, r := range t.rows {
		orderIDs[i] = string(r.OrderID)
		waitTimes[i] = r.WaitTime
		expected[i] = r.ExpectedWaitTime
		delays[i] = r.DelayVsExpected
		statuses[i] = string(r.OrderStatus)
		fiveStars[i] = r.DimIsFiveStar
		oneStars[i] = r.DimIsOneStar
		scores[i] = r.ReviewScore
		products[i] = r.NumberOfProducts
		sellers[i] = r.NumberOfSellers
		prices[i] = r.Price
		freights[i] = r.FreightValue
		distances[i] = r.DistanceSellerCustomer
	}

	columns := []series.Series{
		series.New(orderIDs, series.String, "order_id"),
		series.New(waitTimes, series.Float, "wait_time"),
		series.New(expected, series.Float, "expected_wait_time"),
		series.New(delays, series.Float, "delay_vs_expected"),
		series.New(statuses, series.String, "order_status"),
		series.New(fiveStars, series.Int, "dim_is_five_star"),
		series.New(oneStars, series.Int, "dim_is_one_star"),
		series.New(scores, series.Int, "review_score"),
		series.New(products, series.Int, "number_of_products"),
		series.New(sellers, series.Int, "number_of_sellers"),
		series.New(prices, series.Float, "price"),
		series.New(freights, series.Float, "freight_value"),
	}
	if t.withDistance {
		columns = append(columns, series.New(distances, series.Float, "distance_seller_customer"))
	}

	return dataframe.New(columns...)
}
