package domain

import (
	"time"

	ordersdomain "olist/internal/orders/domain"
)

// Sous-tables calculées par SellerFeatureBuilder, toutes indexées par seller_id.

// SellerIdentity identité d'un vendeur (sans code postal)
type SellerIdentity struct {
	SellerID    ordersdomain.SellerID
	SellerCity  string
	SellerState string
}

// DelayWait délais moyens d'un vendeur, en jours décimaux
type DelayWait struct {
	SellerID       ordersdomain.SellerID
	DelayToCarrier float64
	WaitTime       float64
}

// ActiveDates période d'activité d'un vendeur
type ActiveDates struct {
	SellerID      ordersdomain.SellerID
	DateFirstSale time.Time
	DateLastSale  time.Time
	MonthsOnOlist int
}

// Quantity volumes d'un vendeur
type Quantity struct {
	SellerID         ordersdomain.SellerID
	NOrders          int
	Quantity         int
	QuantityPerOrder float64
}

// Sales chiffre d'affaires d'un vendeur
type Sales struct {
	SellerID ordersdomain.SellerID
	Sales    float64
}

// ReviewEconomics agrégats des reviews reçues par un vendeur
type ReviewEconomics struct {
	SellerID         ordersdomain.SellerID
	ShareOfOneStars  float64
	ShareOfFiveStars float64
	ReviewScore      float64
	CostOfReviews    float64
}
