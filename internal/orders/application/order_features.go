package application

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"olist/internal/orders/domain"
	"olist/internal/orders/infrastructure"
	shareddomain "olist/internal/shared/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

const featureTable = "orders"

// OrderOptions options de la table d'entraînement des commandes
type OrderOptions struct {
	// IsDelivered ne garde que les commandes au statut "delivered"
	IsDelivered bool
	// WithDistanceSellerCustomer ajoute (jointure interne) la distance vendeur-client
	WithDistanceSellerCustomer bool
}

// DefaultOrderOptions options par défaut: commandes livrées, avec distance
func DefaultOrderOptions() OrderOptions {
	return OrderOptions{
		IsDelivered:                true,
		WithDistanceSellerCustomer: true,
	}
}

// OrderFeatureBuilder calcule les métriques par commande et la table d'entraînement.
// Chaque méthode est indépendante et repart des tables du snapshot.
type OrderFeatureBuilder struct {
	repo     *infrastructure.SnapshotRepository
	logger   *zap.Logger
	observer sharedinfra.StepObserver
}

// NewOrderFeatureBuilder crée une nouvelle instance de OrderFeatureBuilder
func NewOrderFeatureBuilder(
	repo *infrastructure.SnapshotRepository,
	logger *zap.Logger,
	observer sharedinfra.StepObserver,
) *OrderFeatureBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = sharedinfra.NopObserver{}
	}
	return &OrderFeatureBuilder{
		repo:     repo,
		logger:   logger.With(zap.String("table", featureTable)),
		observer: observer,
	}
}

// WaitTime retourne [order_id, wait_time, expected_wait_time, delay_vs_expected, order_status].
// Les durées sont en jours entiers; delay_vs_expected est ramené à 0 quand la commande est en avance.
func (b *OrderFeatureBuilder) WaitTime(isDelivered bool) ([]domain.WaitTime, error) {
	start := time.Now()

	var (
		orders []*domain.Order
		err    error
	)
	if isDelivered {
		orders, err = b.repo.FindOrdersByStatus(domain.OrderStatusDelivered)
	} else {
		orders, err = b.repo.FindOrders()
	}
	if err != nil {
		return nil, fmt.Errorf("wait time: %w", err)
	}

	rows := make([]domain.WaitTime, 0, len(orders))
	for _, order := range orders {
		ts := order.Timestamps()
		row := domain.WaitTime{
			OrderID:          order.ID(),
			WaitTime:         math.NaN(),
			ExpectedWaitTime: math.NaN(),
			DelayVsExpected:  math.NaN(),
			OrderStatus:      order.Status(),
		}

		wait, hasWait := ts.DeliveredCustomerAt.Sub(ts.PurchasedAt)
		expected, hasExpected := ts.EstimatedDeliveryAt.Sub(ts.PurchasedAt)
		if hasWait {
			row.WaitTime = float64(shareddomain.WholeDays(wait))
		}
		if hasExpected {
			row.ExpectedWaitTime = float64(shareddomain.WholeDays(expected))
		}
		if hasWait && hasExpected {
			row.DelayVsExpected = shareddomain.ClampPositive(float64(shareddomain.WholeDays(wait - expected)))
		}

		rows = append(rows, row)
	}

	b.done("wait_time", start, len(rows))
	return rows, nil
}

// ReviewScore retourne [order_id, dim_is_five_star, dim_is_one_star, review_score], une ligne par review.
// Une note absente est conservée avec Missing; TrainingData supprime la ligne.
func (b *OrderFeatureBuilder) ReviewScore() ([]domain.ReviewScore, error) {
	start := time.Now()

	reviews, err := b.repo.FindReviews()
	if err != nil {
		return nil, fmt.Errorf("review score: %w", err)
	}

	rows := make([]domain.ReviewScore, 0, len(reviews))
	for _, review := range reviews {
		if review.Missing {
			rows = append(rows, domain.NewMissingReviewScore(review.OrderID))
			continue
		}
		rows = append(rows, domain.NewReviewScore(review.OrderID, review.Score))
	}

	b.done("review_score", start, len(rows))
	return rows, nil
}

// NumberOfProducts retourne [order_id, number_of_products]
func (b *OrderFeatureBuilder) NumberOfProducts() ([]domain.ProductCount, error) {
	start := time.Now()

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("number of products: %w", err)
	}

	counts := make(map[domain.OrderID]int)
	for _, item := range items {
		counts[item.OrderID()]++
	}

	rows := make([]domain.ProductCount, 0, len(counts))
	for _, id := range sortedOrderIDs(counts) {
		rows = append(rows, domain.ProductCount{OrderID: id, NumberOfProducts: counts[id]})
	}

	b.done("number_of_products", start, len(rows))
	return rows, nil
}

// NumberOfSellers retourne [order_id, number_of_sellers] (vendeurs distincts)
func (b *OrderFeatureBuilder) NumberOfSellers() ([]domain.SellerCount, error) {
	start := time.Now()

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("number of sellers: %w", err)
	}

	sellers := make(map[domain.OrderID]map[domain.SellerID]struct{})
	for _, item := range items {
		set, ok := sellers[item.OrderID()]
		if !ok {
			set = make(map[domain.SellerID]struct{})
			sellers[item.OrderID()] = set
		}
		if item.SellerID() != "" {
			set[item.SellerID()] = struct{}{}
		}
	}

	rows := make([]domain.SellerCount, 0, len(sellers))
	for _, id := range sortedOrderIDs(sellers) {
		rows = append(rows, domain.SellerCount{OrderID: id, NumberOfSellers: len(sellers[id])})
	}

	b.done("number_of_sellers", start, len(rows))
	return rows, nil
}

// PriceAndFreight retourne [order_id, price, freight_value] sommés sur les items
func (b *OrderFeatureBuilder) PriceAndFreight() ([]domain.PriceFreight, error) {
	start := time.Now()

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("price and freight: %w", err)
	}

	prices := make(map[domain.OrderID][]float64)
	freights := make(map[domain.OrderID][]float64)
	for _, item := range items {
		prices[item.OrderID()] = append(prices[item.OrderID()], item.Price())
		freights[item.OrderID()] = append(freights[item.OrderID()], item.FreightValue())
	}

	rows := make([]domain.PriceFreight, 0, len(prices))
	for _, id := range sortedOrderIDs(prices) {
		rows = append(rows, domain.PriceFreight{
			OrderID:      id,
			Price:        shareddomain.Sum(prices[id]),
			FreightValue: shareddomain.Sum(freights[id]),
		})
	}

	b.done("price_and_freight", start, len(rows))
	return rows, nil
}

// DistanceSellerCustomer retourne [order_id, distance_seller_customer].
// La distance est calculée par item puis moyennée par commande; les items dont
// le vendeur ou le client n'a pas de coordonnées sont ignorés.
func (b *OrderFeatureBuilder) DistanceSellerCustomer() ([]domain.Distance, error) {
	start := time.Now()

	points, err := b.repo.FindGeoPoints()
	if err != nil {
		return nil, fmt.Errorf("distance seller customer: %w", err)
	}
	geo := domain.NewGeoIndex(points)

	sellers, err := b.repo.FindSellers()
	if err != nil {
		return nil, fmt.Errorf("distance seller customer: %w", err)
	}
	sellerZip := make(map[domain.SellerID]domain.ZipCodePrefix, len(sellers))
	for _, s := range sellers {
		if _, exists := sellerZip[s.ID]; !exists {
			sellerZip[s.ID] = s.ZipCodePrefix
		}
	}

	customers, err := b.repo.FindCustomers()
	if err != nil {
		return nil, fmt.Errorf("distance seller customer: %w", err)
	}
	customerZip := make(map[domain.CustomerID]domain.ZipCodePrefix, len(customers))
	for _, c := range customers {
		if _, exists := customerZip[c.ID]; !exists {
			customerZip[c.ID] = c.ZipCodePrefix
		}
	}

	orders, err := b.repo.FindOrders()
	if err != nil {
		return nil, fmt.Errorf("distance seller customer: %w", err)
	}
	orderCustomer := make(map[domain.OrderID]domain.CustomerID, len(orders))
	for _, o := range orders {
		if _, exists := orderCustomer[o.ID()]; !exists {
			orderCustomer[o.ID()] = o.CustomerID()
		}
	}

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("distance seller customer: %w", err)
	}

	distances := make(map[domain.OrderID][]float64)
	for _, item := range items {
		customerID, ok := orderCustomer[item.OrderID()]
		if !ok {
			continue
		}
		cZip, ok := customerZip[customerID]
		if !ok {
			continue
		}
		sZip, ok := sellerZip[item.SellerID()]
		if !ok {
			continue
		}
		sellerPoint, ok := geo.Lookup(sZip)
		if !ok {
			continue
		}
		customerPoint, ok := geo.Lookup(cZip)
		if !ok {
			continue
		}
		distances[item.OrderID()] = append(distances[item.OrderID()], sellerPoint.DistanceTo(customerPoint))
	}

	rows := make([]domain.Distance, 0, len(distances))
	for _, id := range sortedOrderIDs(distances) {
		rows = append(rows, domain.Distance{
			OrderID:                id,
			DistanceSellerCustomer: shareddomain.Mean(distances[id]),
		})
	}

	b.done("distance_seller_customer", start, len(rows))
	return rows, nil
}

// TrainingData joint (jointure interne sur order_id) toutes les métriques et
// supprime les lignes contenant une valeur manquante.
// L'ordre suit la table des délais; une commande avec plusieurs reviews produit plusieurs lignes.
func (b *OrderFeatureBuilder) TrainingData(opts OrderOptions) (*domain.OrderTrainingTable, error) {
	start := time.Now()

	waitTimes, err := b.WaitTime(opts.IsDelivered)
	if err != nil {
		return nil, err
	}
	reviews, err := b.ReviewScore()
	if err != nil {
		return nil, err
	}
	products, err := b.NumberOfProducts()
	if err != nil {
		return nil, err
	}
	sellers, err := b.NumberOfSellers()
	if err != nil {
		return nil, err
	}
	prices, err := b.PriceAndFreight()
	if err != nil {
		return nil, err
	}

	reviewsByOrder := make(map[domain.OrderID][]domain.ReviewScore)
	for _, r := range reviews {
		reviewsByOrder[r.OrderID] = append(reviewsByOrder[r.OrderID], r)
	}
	productsByOrder := make(map[domain.OrderID]int, len(products))
	for _, p := range products {
		productsByOrder[p.OrderID] = p.NumberOfProducts
	}
	sellersByOrder := make(map[domain.OrderID]int, len(sellers))
	for _, s := range sellers {
		sellersByOrder[s.OrderID] = s.NumberOfSellers
	}
	pricesByOrder := make(map[domain.OrderID]domain.PriceFreight, len(prices))
	for _, p := range prices {
		pricesByOrder[p.OrderID] = p
	}

	var distanceByOrder map[domain.OrderID]float64
	if opts.WithDistanceSellerCustomer {
		distances, err := b.DistanceSellerCustomer()
		if err != nil {
			return nil, err
		}
		distanceByOrder = make(map[domain.OrderID]float64, len(distances))
		for _, d := range distances {
			distanceByOrder[d.OrderID] = d.DistanceSellerCustomer
		}
	}

	rows := make([]domain.OrderTrainingRow, 0, len(waitTimes))
	dropped := 0
	for _, wt := range waitTimes {
		productCount, ok := productsByOrder[wt.OrderID]
		if !ok {
			continue
		}
		sellerCount, ok := sellersByOrder[wt.OrderID]
		if !ok {
			continue
		}
		price, ok := pricesByOrder[wt.OrderID]
		if !ok {
			continue
		}
		distance := math.NaN()
		if opts.WithDistanceSellerCustomer {
			if distance, ok = distanceByOrder[wt.OrderID]; !ok {
				continue
			}
		}

		for _, review := range reviewsByOrder[wt.OrderID] {
			if review.Missing {
				dropped++
				continue
			}
			row := domain.OrderTrainingRow{
				OrderID:                wt.OrderID,
				WaitTime:               wt.WaitTime,
				ExpectedWaitTime:       wt.ExpectedWaitTime,
				DelayVsExpected:        wt.DelayVsExpected,
				OrderStatus:            wt.OrderStatus,
				DimIsFiveStar:          review.DimIsFiveStar,
				DimIsOneStar:           review.DimIsOneStar,
				ReviewScore:            review.ReviewScore,
				NumberOfProducts:       productCount,
				NumberOfSellers:        sellerCount,
				Price:                  price.Price,
				FreightValue:           price.FreightValue,
				DistanceSellerCustomer: distance,
			}
			if row.HasMissing(opts.WithDistanceSellerCustomer) {
				dropped++
				continue
			}
			rows = append(rows, row)
		}
	}

	b.logger.Info("order training data built",
		zap.Int("rows", len(rows)),
		zap.Int("dropped_missing", dropped),
		zap.Bool("is_delivered", opts.IsDelivered),
		zap.Bool("with_distance", opts.WithDistanceSellerCustomer),
	)
	b.done("training_data", start, len(rows))

	return domain.NewOrderTrainingTable(rows, opts.WithDistanceSellerCustomer), nil
}

func (b *OrderFeatureBuilder) done(step string, start time.Time, rows int) {
	elapsed := time.Since(start)
	b.observer.ObserveStep(featureTable, step, elapsed, rows)
	b.logger.Debug("step computed",
		zap.String("step", step),
		zap.Int("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
}

// sortedOrderIDs retourne les clés triées (ordre d'un group by)
func sortedOrderIDs[V any](m map[domain.OrderID]V) []domain.OrderID {
	ids := make([]domain.OrderID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
