package domain

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	datasetdomain "olist/internal/dataset/domain"
	ordersdomain "olist/internal/orders/domain"
)

// SellerTrainingRow ligne de la table d'entraînement des vendeurs
type SellerTrainingRow struct {
	SellerID         ordersdomain.SellerID
	SellerCity       string
	SellerState      string
	DelayToCarrier   float64
	WaitTime         float64
	DateFirstSale    time.Time
	DateLastSale     time.Time
	MonthsOnOlist    int
	ShareOfOneStars  float64
	ShareOfFiveStars float64
	ReviewScore      float64
	CostOfReviews    float64
	NOrders          int
	Quantity         int
	QuantityPerOrder float64
	Sales            float64
	Revenues         float64
	Profits          float64
}

// HasMissing vérifie si une des valeurs de la ligne est manquante
func (r SellerTrainingRow) HasMissing() bool {
	if r.SellerID == "" || r.SellerCity == "" || r.SellerState == "" {
		return true
	}
	if r.DateFirstSale.IsZero() || r.DateLastSale.IsZero() {
		return true
	}
	for _, v := range []float64{
		r.DelayToCarrier, r.WaitTime,
		r.ShareOfOneStars, r.ShareOfFiveStars, r.ReviewScore, r.CostOfReviews,
		r.QuantityPerOrder, r.Sales, r.Revenues, r.Profits,
	} {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// SellerColumns en-têtes de la table d'entraînement des vendeurs
var SellerColumns = []string{
	"seller_id",
	"seller_city",
	"seller_state",
	"delay_to_carrier",
	"wait_time",
	"date_first_sale",
	"date_last_sale",
	"months_on_olist",
	"share_of_one_stars",
	"share_of_five_stars",
	"review_score",
	"cost_of_reviews",
	"n_orders",
	"quantity",
	"quantity_per_order",
	"sales",
	"revenues",
	"profits",
}

// SellerTrainingTable table d'entraînement des vendeurs
type SellerTrainingTable struct {
	rows []SellerTrainingRow
}

// NewSellerTrainingTable crée la table (les lignes sont copiées)
func NewSellerTrainingTable(rows []SellerTrainingRow) *SellerTrainingTable {
	return &SellerTrainingTable{rows: append([]SellerTrainingRow{}, rows...)}
}

// Rows retourne les lignes (copie)
func (t *SellerTrainingTable) Rows() []SellerTrainingRow {
	return append([]SellerTrainingRow{}, t.rows...)
}

// Len retourne le nombre de lignes
func (t *SellerTrainingTable) Len() int {
	return len(t.rows)
}

// Columns retourne les en-têtes dans l'ordre de la table
func (t *SellerTrainingTable) Columns() []string {
	return append([]string{}, SellerColumns...)
}

// DataFrame convertit la table en DataFrame gota, les dates au format source
func (t *SellerTrainingTable) DataFrame() dataframe.DataFrame {
	n := len(t.rows)
	var (
		ids        = make([]string, n)
		cities     = make([]string, n)
		states     = make([]string, n)
		delays     = make([]float64, n)
		waits      = make([]float64, n)
		firstSales = make([]string, n)
		lastSales  = make([]string, n)
		months     = make([]int, n)
		oneStars   = make([]float64, n)
		fiveStars  = make([]float64, n)
		scores     = make([]float64, n)
		costs      = make([]float64, n)
		nOrders    = make([]int, n)
		quantities = make([]int, n)
		perOrder   = make([]float64, n)
		sales      = make([]float64, n)
		revenues   = make([]float64, n)
		profits    = make([]float64, n)
	)
	for i, r := range t.rows {
		ids[i] = string(r.SellerID)
		cities[i] = r.SellerCity
		states[i] = r.SellerState
		delays[i] = r.DelayToCarrier
		waits[i] = r.WaitTime
		firstSales[i] = r.DateFirstSale.Format(datasetdomain.TimestampLayout)
		lastSales[i] = r.DateLastSale.Format(datasetdomain.TimestampLayout)
		months[i] = r.MonthsOnOlist
		oneStars[i] = r.ShareOfOneStars
		fiveStars[i] = r.ShareOfFiveStars
		scores[i] = r.ReviewScore
		costs[i] = r.CostOfReviews
		nOrders[i] = r.NOrders
		quantities[i] = r.Quantity
		perOrder[i] = r.QuantityPerOrder
		sales[i] = r.Sales
		revenues[i] = r.Revenues
		profits[i] = r.Profits
	}

	return dataframe.New(
		series.New(ids, series.String, "seller_id"),
		series.New(cities, series.String, "seller_city"),
		series.New(states, series.String, "seller_state"),
		series.New(delays, series.Float, "delay_to_carrier"),
		series.New(waits, series.Float, "wait_time"),
		series.New(firstSales, series.String, "date_first_sale"),
		series.New(lastSales, series.String, "date_last_sale"),
		series.New(months, series.Int, "months_on_olist"),
		series.New(oneStars, series.Float, "share_of_one_stars"),
		series.New(fiveStars, series.Float, "share_of_five_stars"),
		series.New(scores, series.Float, "review_score"),
		series.New(costs, series.Float, "cost_of_reviews"),
		series.New(nOrders, series.Int, "n_orders"),
		series.New(quantities, series.Int, "quantity"),
		series.New(perOrder, series.Float, "quantity_per_order"),
		series.New(sales, series.Float, "sales"),
		series.New(revenues, series.Float, "revenues"),
		series.New(profits, series.Float, "profits"),
	)
}
