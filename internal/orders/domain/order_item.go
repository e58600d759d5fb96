package domain

import (
	"errors"

	datasetdomain "olist/internal/dataset/domain"
)

// SellerID représente l'identifiant d'un vendeur
type SellerID string

// OrderItem représente la contribution d'un vendeur à une commande (une ligne de order_items)
type OrderItem struct {
	orderID       OrderID
	itemNumber    string
	sellerID      SellerID
	shippingLimit datasetdomain.NullTime
	price         float64
	freightValue  float64
}

// NewOrderItem crée un item de commande avec validation
func NewOrderItem(
	orderID OrderID,
	itemNumber string,
	sellerID SellerID,
	shippingLimit datasetdomain.NullTime,
	price float64,
	freightValue float64,
) (*OrderItem, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}

	return &OrderItem{
		orderID:       orderID,
		itemNumber:    itemNumber,
		sellerID:      sellerID,
		shippingLimit: shippingLimit,
		price:         price,
		freightValue:  freightValue,
	}, nil
}

// OrderID retourne l'identifiant de la commande
func (oi *OrderItem) OrderID() OrderID {
	return oi.orderID
}

// ItemNumber retourne le numéro de l'item dans la commande
func (oi *OrderItem) ItemNumber() string {
	return oi.itemNumber
}

// SellerID retourne le vendeur (vide si absent)
func (oi *OrderItem) SellerID() SellerID {
	return oi.sellerID
}

// ShippingLimit retourne la date limite de remise au transporteur
func (oi *OrderItem) ShippingLimit() datasetdomain.NullTime {
	return oi.shippingLimit
}

// Price retourne le prix (NaN si absent)
func (oi *OrderItem) Price() float64 {
	return oi.price
}

// FreightValue retourne les frais de port (NaN si absent)
func (oi *OrderItem) FreightValue() float64 {
	return oi.freightValue
}
