package testhelpers

// MarketplaceFixture petit jeu de données cohérent utilisé par les tests des builders.
//
//   - o1 (livrée, client c1 à Rio): deux vendeurs s1 et s2, review 5
//   - o2 (livrée, client c2 à São Paulo): deux items de s1, review 1
//   - o3 (expédiée, pas de date de livraison): un item de s2, review 4
//   - o4 (livrée, client c2): un item de s3, review 4
//
// Le préfixe 01310 apparaît deux fois dans geolocation: seul le premier point compte.
func MarketplaceFixture() *Fixture {
	return NewFixture().
		Geolocation("01310", -23.5614, -46.6559).
		Geolocation("20040", -22.9035, -43.1750).
		Geolocation("01310", -10.0, -10.0).
		Seller("s1", "01310", "sao paulo", "SP").
		Seller("s2", "20040", "rio de janeiro", "RJ").
		Seller("s1", "01311", "sao paulo", "SP").
		Seller("s3", "01310", "campinas", "SP").
		Customer("c1", "20040").
		Customer("c2", "01310").
		Order("o1", "c1", "delivered",
			"2017-01-01 10:00:00", "2017-01-01 11:00:00", "2017-01-03 10:00:00",
			"2017-01-11 09:00:00", "2017-01-08 00:00:00").
		Order("o2", "c2", "delivered",
			"2017-03-01 00:00:00", "2017-03-01 01:00:00", "2017-03-02 00:00:00",
			"2017-03-05 00:00:00", "2017-03-10 00:00:00").
		Order("o3", "c1", "shipped",
			"2017-04-01 00:00:00", "2017-04-01 01:00:00", "2017-04-02 00:00:00",
			"", "2017-04-20 00:00:00").
		Order("o4", "c2", "delivered",
			"2017-05-01 00:00:00", "2017-05-01 02:00:00", "2017-05-02 00:00:00",
			"2017-05-06 00:00:00", "2017-05-10 00:00:00").
		OrderItem("o1", 1, "s1", "2017-01-02 10:00:00", 100, 10).
		OrderItem("o1", 2, "s2", "2017-01-04 10:00:00", 50, 5).
		OrderItem("o2", 1, "s1", "2017-03-01 00:00:00", 30, 3).
		OrderItem("o2", 2, "s1", "2017-03-01 00:00:00", 20, 2).
		OrderItem("o3", 1, "s2", "2017-04-03 00:00:00", 20, 2).
		OrderItem("o4", 1, "s3", "2017-05-03 00:00:00", 40, 4).
		Review("o1", 5).
		Review("o2", 1).
		Review("o3", 4).
		Review("o4", 4)
}
