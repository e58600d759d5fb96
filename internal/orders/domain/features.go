package domain

// Sous-tables calculées par OrderFeatureBuilder, toutes indexées par order_id.
// Les métriques manquantes valent NaN.

// WaitTime délais d'une commande, en jours entiers
type WaitTime struct {
	OrderID          OrderID
	WaitTime         float64
	ExpectedWaitTime float64
	DelayVsExpected  float64
	OrderStatus      OrderStatus
}

// ReviewScore indicateurs d'une review (une ligne par review, sans dédoublonnage).
// Une note absente donne Missing et des indicateurs à 0.
type ReviewScore struct {
	OrderID       OrderID
	DimIsFiveStar int
	DimIsOneStar  int
	ReviewScore   int
	Missing       bool
}

// NewReviewScore dérive les indicateurs 1 étoile / 5 étoiles d'une note
func NewReviewScore(orderID OrderID, score int) ReviewScore {
	rs := ReviewScore{OrderID: orderID, ReviewScore: score}
	if score == 5 {
		rs.DimIsFiveStar = 1
	}
	if score == 1 {
		rs.DimIsOneStar = 1
	}
	return rs
}

// NewMissingReviewScore review sans note
func NewMissingReviewScore(orderID OrderID) ReviewScore {
	return ReviewScore{OrderID: orderID, Missing: true}
}

// ProductCount nombre d'items d'une commande
type ProductCount struct {
	OrderID          OrderID
	NumberOfProducts int
}

// SellerCount nombre de vendeurs distincts d'une commande
type SellerCount struct {
	OrderID         OrderID
	NumberOfSellers int
}

// PriceFreight prix et frais de port cumulés d'une commande
type PriceFreight struct {
	OrderID      OrderID
	Price        float64
	FreightValue float64
}

// Distance distance moyenne vendeur-client d'une commande (km)
type Distance struct {
	OrderID                OrderID
	DistanceSellerCustomer float64
}
