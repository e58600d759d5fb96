package testhelpers

import (
	"fmt"
	"math/rand"
	"time"
)

var statuses = []string{"delivered", "delivered", "delivered", "delivered", "shipped", "canceled"}

// SyntheticMarketplace génère une fixture déterministe de n commandes pour les benchmarks
func SyntheticMarketplace(n int) *Fixture {
	rng := rand.New(rand.NewSource(42))
	f := NewFixture()

	const zips = 50
	for z := 0; z < zips; z++ {
		zip := fmt.Sprintf("%05d", 1000+z)
		f.Geolocation(zip, -23.0-rng.Float64()*5, -46.0-rng.Float64()*5)
		// doublon ignoré par la résolution des coordonnées
		f.Geolocation(zip, 0, 0)
	}

	sellers := n/20 + 1
	for s := 0; s < sellers; s++ {
		f.Seller(fmt.Sprintf("seller-%d", s), fmt.Sprintf("%05d", 1000+rng.Intn(zips)), "sao paulo", "SP")
	}
	customers := n/2 + 1
	for c := 0; c < customers; c++ {
		f.Customer(fmt.Sprintf("customer-%d", c), fmt.Sprintf("%05d", 1000+rng.Intn(zips)))
	}

	start := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	stamp := func(t time.Time) string { return t.Format("2006-01-02 15:04:05") }

	for o := 0; o < n; o++ {
		id := fmt.Sprintf("order-%d", o)
		purchase := start.Add(time.Duration(rng.Intn(600*24)) * time.Hour)
		approved := purchase.Add(time.Duration(1+rng.Intn(48)) * time.Hour)
		carrier := approved.Add(time.Duration(12+rng.Intn(120)) * time.Hour)
		delivered := carrier.Add(time.Duration(24+rng.Intn(400)) * time.Hour)
		estimated := purchase.Add(time.Duration(10+rng.Intn(30)) * 24 * time.Hour)

		status := statuses[rng.Intn(len(statuses))]
		deliveredAt := stamp(delivered)
		if status != "delivered" {
			deliveredAt = ""
		}
		f.Order(id, fmt.Sprintf("customer-%d", rng.Intn(customers)), status,
			stamp(purchase), stamp(approved), stamp(carrier), deliveredAt, stamp(estimated))

		items := 1 + rng.Intn(3)
		for i := 1; i <= items; i++ {
			limit := approved.Add(time.Duration(24+rng.Intn(72)) * time.Hour)
			f.OrderItem(id, i, fmt.Sprintf("seller-%d", rng.Intn(sellers)), stamp(limit),
				float64(10+rng.Intn(500)), float64(5+rng.Intn(40)))
		}
		f.Review(id, 1+rng.Intn(5))
	}
	return f
}
