package domain

import (
	"time"

	datasetdomain "olist/internal/dataset/domain"
	ordersdomain "olist/internal/orders/domain"
	sellersdomain "olist/internal/sellers/domain"
)

// OrderParquetRow ligne Parquet de la table d'entraînement des commandes avec la distance
type OrderParquetRow struct {
	OrderID                string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	WaitTime               float64 `parquet:"name=wait_time, type=DOUBLE"`
	ExpectedWaitTime       float64 `parquet:"name=expected_wait_time, type=DOUBLE"`
	DelayVsExpected        float64 `parquet:"name=delay_vs_expected, type=DOUBLE"`
	OrderStatus            string  `parquet:"name=order_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	DimIsFiveStar          int32   `parquet:"name=dim_is_five_star, type=INT32"`
	DimIsOneStar           int32   `parquet:"name=dim_is_one_star, type=INT32"`
	ReviewScore            int32   `parquet:"name=review_score, type=INT32"`
	NumberOfProducts       int64   `parquet:"name=number_of_products, type=INT64"`
	NumberOfSellers        int64   `parquet:"name=number_of_sellers, type=INT64"`
	Price                  float64 `parquet:"name=price, type=DOUBLE"`
	FreightValue           float64 `parquet:"name=freight_value, type=DOUBLE"`
	DistanceSellerCustomer float64 `parquet:"name=distance_seller_customer, type=DOUBLE"`
}

// OrderParquetRowNoDistance même ligne sans la colonne distance_seller_customer,
// pour garder le schéma Parquet aligné sur les colonnes CSV et XLSX
type OrderParquetRowNoDistance struct {
	OrderID          string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	WaitTime         float64 `parquet:"name=wait_time, type=DOUBLE"`
	ExpectedWaitTime float64 `parquet:"name=expected_wait_time, type=DOUBLE"`
	DelayVsExpected  float64 `parquet:"name=delay_vs_expected, type=DOUBLE"`
	OrderStatus      string  `parquet:"name=order_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	DimIsFiveStar    int32   `parquet:"name=dim_is_five_star, type=INT32"`
	DimIsOneStar     int32   `parquet:"name=dim_is_one_star, type=INT32"`
	ReviewScore      int32   `parquet:"name=review_score, type=INT32"`
	NumberOfProducts int64   `parquet:"name=number_of_products, type=INT64"`
	NumberOfSellers  int64   `parquet:"name=number_of_sellers, type=INT64"`
	Price            float64 `parquet:"name=price, type=DOUBLE"`
	FreightValue     float64 `parquet:"name=freight_value, type=DOUBLE"`
}

// NewOrderParquetRows convertit une table construite avec la distance
func NewOrderParquetRows(table *ordersdomain.OrderTrainingTable) []OrderParquetRow {
	rows := make([]OrderParquetRow, 0, table.Len())
	for _, r := range table.Rows() {
		rows = append(rows, OrderParquetRow{
			OrderID:                string(r.OrderID),
			WaitTime:               r.WaitTime,
			ExpectedWaitTime:       r.ExpectedWaitTime,
			DelayVsExpected:        r.DelayVsExpected,
			OrderStatus:            string(r.OrderStatus),
			DimIsFiveStar:          int32(r.DimIsFiveStar),
			DimIsOneStar:           int32(r.DimIsOneStar),
			ReviewScore:            int32(r.ReviewScore),
			NumberOfProducts:       int64(r.NumberOfProducts),
			NumberOfSellers:        int64(r.NumberOfSellers),
			Price:                  r.Price,
			FreightValue:           r.FreightValue,
			DistanceSellerCustomer: r.DistanceSellerCustomer,
		})
	}
	return rows
}

// NewOrderParquetRowsNoDistance convertit une table construite sans la distance
func NewOrderParquetRowsNoDistance(table *ordersdomain.OrderTrainingTable) []OrderParquetRowNoDistance {
	rows := make([]OrderParquetRowNoDistance, 0, table.Len())
	for _, r := range table.Rows() {
		rows = append(rows, OrderParquetRowNoDistance{
			OrderID:          string(r.OrderID),
			WaitTime:         r.WaitTime,
			ExpectedWaitTime: r.ExpectedWaitTime,
			DelayVsExpected:  r.DelayVsExpected,
			OrderStatus:      string(r.OrderStatus),
			DimIsFiveStar:    int32(r.DimIsFiveStar),
			DimIsOneStar:     int32(r.DimIsOneStar),
			ReviewScore:      int32(r.ReviewScore),
			NumberOfProducts: int64(r.NumberOfProducts),
			NumberOfSellers:  int64(r.NumberOfSellers),
			Price:            r.Price,
			FreightValue:     r.FreightValue,
		})
	}
	return rows
}

// SellerParquetRow ligne Parquet de la table d'entraînement des vendeurs
type SellerParquetRow struct {
	SellerID         string  `parquet:"name=seller_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	SellerCity       string  `parquet:"name=seller_city, type=BYTE_ARRAY, convertedtype=UTF8"`
	SellerState      string  `parquet:"name=seller_state, type=BYTE_ARRAY, convertedtype=UTF8"`
	DelayToCarrier   float64 `parquet:"name=delay_to_carrier, type=DOUBLE"`
	WaitTime         float64 `parquet:"name=wait_time, type=DOUBLE"`
	DateFirstSale    string  `parquet:"name=date_first_sale, type=BYTE_ARRAY, convertedtype=UTF8"`
	DateLastSale     string  `parquet:"name=date_last_sale, type=BYTE_ARRAY, convertedtype=UTF8"`
	MonthsOnOlist    int64   `parquet:"name=months_on_olist, type=INT64"`
	ShareOfOneStars  float64 `parquet:"name=share_of_one_stars, type=DOUBLE"`
	ShareOfFiveStars float64 `parquet:"name=share_of_five_stars, type=DOUBLE"`
	ReviewScore      float64 `parquet:"name=review_score, type=DOUBLE"`
	CostOfReviews    float64 `parquet:"name=cost_of_reviews, type=DOUBLE"`
	NOrders          int64   `parquet:"name=n_orders, type=INT64"`
	Quantity         int64   `parquet:"name=quantity, type=INT64"`
	QuantityPerOrder float64 `parquet:"name=quantity_per_order, type=DOUBLE"`
	Sales            float64 `parquet:"name=sales, type=DOUBLE"`
	Revenues         float64 `parquet:"name=revenues, type=DOUBLE"`
	Profits          float64 `parquet:"name=profits, type=DOUBLE"`
}

// NewSellerParquetRows convertit la table, les dates au format des CSV source
func NewSellerParquetRows(table *sellersdomain.SellerTrainingTable) []SellerParquetRow {
	rows := make([]SellerParquetRow, 0, table.Len())
	for _, r := range table.Rows() {
		rows = append(rows, SellerParquetRow{
			SellerID:         string(r.SellerID),
			SellerCity:       r.SellerCity,
			SellerState:      r.SellerState,
			DelayToCarrier:   r.DelayToCarrier,
			WaitTime:         r.WaitTime,
			DateFirstSale:    formatDate(r.DateFirstSale),
			DateLastSale:     formatDate(r.DateLastSale),
			MonthsOnOlist:    int64(r.MonthsOnOlist),
			ShareOfOneStars:  r.ShareOfOneStars,
			ShareOfFiveStars: r.ShareOfFiveStars,
			ReviewScore:      r.ReviewScore,
			CostOfReviews:    r.CostOfReviews,
			NOrders:          int64(r.NOrders),
			Quantity:         int64(r.Quantity),
			QuantityPerOrder: r.QuantityPerOrder,
			Sales:            r.Sales,
			Revenues:         r.Revenues,
			Profits:          r.Profits,
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	return t.Format(datasetdomain.TimestampLayout)
}
