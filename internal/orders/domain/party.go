package domain

// ZipCodePrefix préfixe de code postal, clé de jointure avec geolocation
type ZipCodePrefix string

// Customer représente une ligne de la table customers
type Customer struct {
	ID            CustomerID
	ZipCodePrefix ZipCodePrefix
}

// Seller représente une ligne de la table sellers
type Seller struct {
	ID            SellerID
	ZipCodePrefix ZipCodePrefix
	City          string
	State         string
}

// Review représente une ligne de la table order_reviews.
// Missing est vrai quand la note est absente.
type Review struct {
	OrderID OrderID
	Score   int
	Missing bool
}
