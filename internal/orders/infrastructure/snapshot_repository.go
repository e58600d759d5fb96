package infrastructure

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	datasetdomain "olist/internal/dataset/domain"
	"olist/internal/orders/domain"
	shareddomain "olist/internal/shared/domain"
)

// Colonnes des tables Olist lues par les builders
const (
	colOrderID             = "order_id"
	colCustomerID          = "customer_id"
	colOrderStatus         = "order_status"
	colPurchaseTimestamp   = "order_purchase_timestamp"
	colApprovedAt          = "order_approved_at"
	colDeliveredCarrier    = "order_delivered_carrier_date"
	colDeliveredCustomer   = "order_delivered_customer_date"
	colEstimatedDelivery   = "order_estimated_delivery_date"
	colOrderItemID         = "order_item_id"
	colSellerID            = "seller_id"
	colShippingLimitDate   = "shipping_limit_date"
	colPrice               = "price"
	colFreightValue        = "freight_value"
	colReviewScore         = "review_score"
	colSellerZipCodePrefix = "seller_zip_code_prefix"
	colSellerCity          = "seller_city"
	colSellerState         = "seller_state"
	colCustomerZipCode     = "customer_zip_code_prefix"
	colGeoZipCodePrefix    = "geolocation_zip_code_prefix"
	colGeoLat              = "geolocation_lat"
	colGeoLng              = "geolocation_lng"
)

// SnapshotRepository lit les enregistrements typés depuis un snapshot.
// Chaque appel repart d'une copie des tables: le snapshot n'est jamais modifié.
type SnapshotRepository struct {
	snapshot *datasetdomain.Snapshot
}

// NewSnapshotRepository crée un nouveau repository sur un snapshot
func NewSnapshotRepository(snapshot *datasetdomain.Snapshot) *SnapshotRepository {
	return &SnapshotRepository{snapshot: snapshot}
}

// Snapshot retourne le snapshot sous-jacent
func (r *SnapshotRepository) Snapshot() *datasetdomain.Snapshot {
	return r.snapshot
}

// FindOrders retourne toutes les commandes dans l'ordre source
func (r *SnapshotRepository) FindOrders() ([]*domain.Order, error) {
	df, err := r.snapshot.Table(datasetdomain.TableOrders)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(df)
}

// FindOrdersByStatus retourne les commandes d'un statut donné, dans l'ordre source
func (r *SnapshotRepository) FindOrdersByStatus(status domain.OrderStatus) ([]*domain.Order, error) {
	df, err := r.snapshot.Table(datasetdomain.TableOrders)
	if err != nil {
		return nil, err
	}
	if _, err := datasetdomain.NewColumns(datasetdomain.TableOrders, df, colOrderStatus); err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return r.scanOrders(df)
	}

	filtered := df.Filter(dataframe.F{
		Colname:    colOrderStatus,
		Comparator: series.Eq,
		Comparando: string(status),
	})
	if filtered.Err != nil {
		return nil, fmt.Errorf("filter orders by status %s: %w", status, filtered.Err)
	}
	return r.scanOrders(filtered)
}

func (r *SnapshotRepository) scanOrders(df dataframe.DataFrame) ([]*domain.Order, error) {
	cols, err := datasetdomain.NewColumns(datasetdomain.TableOrders, df,
		colOrderID, colCustomerID, colOrderStatus,
		colPurchaseTimestamp, colApprovedAt, colDeliveredCarrier,
		colDeliveredCustomer, colEstimatedDelivery,
	)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		var ts domain.OrderTimestamps
		for _, field := range []struct {
			col string
			dst *datasetdomain.NullTime
		}{
			{colPurchaseTimestamp, &ts.PurchasedAt},
			{colApprovedAt, &ts.ApprovedAt},
			{colDeliveredCarrier, &ts.DeliveredCarrierAt},
			{colDeliveredCustomer, &ts.DeliveredCustomerAt},
			{colEstimatedDelivery, &ts.EstimatedDeliveryAt},
		} {
			t, err := cols.Time(field.col, i)
			if err != nil {
				return nil, err
			}
			*field.dst = t
		}

		order, err := domain.NewOrder(
			domain.OrderID(cols.String(colOrderID, i)),
			domain.CustomerID(cols.String(colCustomerID, i)),
			domain.OrderStatus(cols.String(colOrderStatus, i)),
			ts,
		)
		if err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// FindOrderItems retourne tous les items de commande dans l'ordre source
func (r *SnapshotRepository) FindOrderItems() ([]*domain.OrderItem, error) {
	cols, err := r.snapshot.Columns(datasetdomain.TableOrderItems,
		colOrderID, colOrderItemID, colSellerID, colShippingLimitDate, colPrice, colFreightValue,
	)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.OrderItem, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		shippingLimit, err := cols.Time(colShippingLimitDate, i)
		if err != nil {
			return nil, err
		}
		price, err := cols.Float(colPrice, i)
		if err != nil {
			return nil, err
		}
		freight, err := cols.Float(colFreightValue, i)
		if err != nil {
			return nil, err
		}

		item, err := domain.NewOrderItem(
			domain.OrderID(cols.String(colOrderID, i)),
			cols.String(colOrderItemID, i),
			domain.SellerID(cols.String(colSellerID, i)),
			shippingLimit,
			price,
			freight,
		)
		if err != nil {
			return nil, fmt.Errorf("order_items row %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// FindReviews retourne les reviews dans l'ordre source
func (r *SnapshotRepository) FindReviews() ([]domain.Review, error) {
	cols, err := r.snapshot.Columns(datasetdomain.TableOrderReviews, colOrderID, colReviewScore)
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		score, valid, err := cols.NullInt(colReviewScore, i)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, domain.Review{
			OrderID: domain.OrderID(cols.String(colOrderID, i)),
			Score:   score,
			Missing: !valid,
		})
	}

	return reviews, nil
}

// FindCustomers retourne les clients dans l'ordre source
func (r *SnapshotRepository) FindCustomers() ([]domain.Customer, error) {
	cols, err := r.snapshot.Columns(datasetdomain.TableCustomers, colCustomerID, colCustomerZipCode)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		customers = append(customers, domain.Customer{
			ID:            domain.CustomerID(cols.String(colCustomerID, i)),
			ZipCodePrefix: domain.ZipCodePrefix(cols.String(colCustomerZipCode, i)),
		})
	}

	return customers, nil
}

// FindSellers retourne les vendeurs dans l'ordre source
func (r *SnapshotRepository) FindSellers() ([]domain.Seller, error) {
	cols, err := r.snapshot.Columns(datasetdomain.TableSellers,
		colSellerID, colSellerZipCodePrefix, colSellerCity, colSellerState,
	)
	if err != nil {
		return nil, err
	}

	sellers := make([]domain.Seller, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		sellers = append(sellers, domain.Seller{
			ID:            domain.SellerID(cols.String(colSellerID, i)),
			ZipCodePrefix: domain.ZipCodePrefix(cols.String(colSellerZipCodePrefix, i)),
			City:          cols.String(colSellerCity, i),
			State:         cols.String(colSellerState, i),
		})
	}

	return sellers, nil
}

// FindGeoPoints retourne les points de géolocalisation dans l'ordre source
func (r *SnapshotRepository) FindGeoPoints() ([]domain.GeoPoint, error) {
	cols, err := r.snapshot.Columns(datasetdomain.TableGeolocation,
		colGeoZipCodePrefix, colGeoLat, colGeoLng,
	)
	if err != nil {
		return nil, err
	}

	points := make([]domain.GeoPoint, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		lat, err := cols.Float(colGeoLat, i)
		if err != nil {
			return nil, err
		}
		lng, err := cols.Float(colGeoLng, i)
		if err != nil {
			return nil, err
		}
		points = append(points, domain.GeoPoint{
			ZipCodePrefix: domain.ZipCodePrefix(cols.String(colGeoZipCodePrefix, i)),
			Coordinates:   shareddomain.NewCoordinates(lat, lng),
		})
	}

	return points, nil
}
