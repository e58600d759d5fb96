package domain

import (
	"errors"

	datasetdomain "olist/internal/dataset/domain"
)

// OrderID représente l'identifiant unique d'une commande
type OrderID string

// CustomerID représente l'identifiant d'un client (un par commande dans Olist)
type CustomerID string

// OrderStatus représente le statut d'une commande
type OrderStatus string

const (
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// OrderTimestamps regroupe les cinq dates du cycle de vie d'une commande
type OrderTimestamps struct {
	PurchasedAt         datasetdomain.NullTime
	ApprovedAt          datasetdomain.NullTime
	DeliveredCarrierAt  datasetdomain.NullTime
	DeliveredCustomerAt datasetdomain.NullTime
	EstimatedDeliveryAt datasetdomain.NullTime
}

// Order représente une ligne de la table orders
type Order struct {
	id         OrderID
	customerID CustomerID
	status     OrderStatus
	timestamps OrderTimestamps
}

// NewOrder crée une commande avec validation
func NewOrder(
	id OrderID,
	customerID CustomerID,
	status OrderStatus,
	timestamps OrderTimestamps,
) (*Order, error) {
	if id == "" {
		return nil, errors.New("invalid order ID")
	}

	return &Order{
		id:         id,
		customerID: customerID,
		status:     status,
		timestamps: timestamps,
	}, nil
}

// ID retourne l'identifiant de la commande
func (o *Order) ID() OrderID {
	return o.id
}

// CustomerID retourne l'identifiant du client
func (o *Order) CustomerID() CustomerID {
	return o.customerID
}

// Status retourne le statut de la commande
func (o *Order) Status() OrderStatus {
	return o.status
}

// Timestamps retourne les dates de la commande (copie)
func (o *Order) Timestamps() OrderTimestamps {
	return o.timestamps
}

// IsDelivered vérifie si la commande a été livrée
func (o *Order) IsDelivered() bool {
	return o.status == OrderStatusDelivered
}

// IsApproved vérifie si la commande a une date d'approbation
func (o *Order) IsApproved() bool {
	return o.timestamps.ApprovedAt.Valid
}
