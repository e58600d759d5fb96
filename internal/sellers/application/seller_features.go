package application

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	ordersapp "olist/internal/orders/application"
	ordersdomain "olist/internal/orders/domain"
	ordersinfra "olist/internal/orders/infrastructure"
	"olist/internal/sellers/domain"
	shareddomain "olist/internal/shared/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

const featureTable = "sellers"

// SellerFeatureBuilder calcule les métriques par vendeur et la table d'entraînement
type SellerFeatureBuilder struct {
	repo      *ordersinfra.SnapshotRepository
	orders    *ordersapp.OrderFeatureBuilder
	economics domain.Economics
	logger    *zap.Logger
	observer  sharedinfra.StepObserver
}

// NewSellerFeatureBuilder crée une nouvelle instance de SellerFeatureBuilder.
// Les reviews par commande sont obtenues via orders.
func NewSellerFeatureBuilder(
	repo *ordersinfra.SnapshotRepository,
	orders *ordersapp.OrderFeatureBuilder,
	economics domain.Economics,
	logger *zap.Logger,
	observer sharedinfra.StepObserver,
) (*SellerFeatureBuilder, error) {
	if err := economics.Validate(); err != nil {
		return nil, fmt.Errorf("invalid economics: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = sharedinfra.NopObserver{}
	}
	return &SellerFeatureBuilder{
		repo:      repo,
		orders:    orders,
		economics: economics,
		logger:    logger.With(zap.String("table", featureTable)),
		observer:  observer,
	}, nil
}

// SellerFeatures retourne [seller_id, seller_city, seller_state] sans doublons, dans l'ordre source
func (b *SellerFeatureBuilder) SellerFeatures() ([]domain.SellerIdentity, error) {
	start := time.Now()

	sellers, err := b.repo.FindSellers()
	if err != nil {
		return nil, fmt.Errorf("seller features: %w", err)
	}

	seen := make(map[domain.SellerIdentity]struct{}, len(sellers))
	rows := make([]domain.SellerIdentity, 0, len(sellers))
	for _, s := range sellers {
		identity := domain.SellerIdentity{SellerID: s.ID, SellerCity: s.City, SellerState: s.State}
		if _, exists := seen[identity]; exists {
			continue
		}
		seen[identity] = struct{}{}
		rows = append(rows, identity)
	}

	b.done("seller_features", start, len(rows))
	return rows, nil
}

// DelayWaitTime retourne [seller_id, delay_to_carrier, wait_time] sur les commandes livrées.
// delay_to_carrier est la moyenne de (remise transporteur - date limite), ramenée à 0 si négative;
// wait_time est la moyenne de (livraison client - achat). Les deux sont en jours décimaux.
func (b *SellerFeatureBuilder) DelayWaitTime() ([]domain.DelayWait, error) {
	start := time.Now()

	orders, err := b.repo.FindOrdersByStatus(ordersdomain.OrderStatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("delay wait time: %w", err)
	}
	delivered := make(map[ordersdomain.OrderID]ordersdomain.OrderTimestamps, len(orders))
	for _, o := range orders {
		delivered[o.ID()] = o.Timestamps()
	}

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("delay wait time: %w", err)
	}

	delays := make(map[ordersdomain.SellerID][]float64)
	waits := make(map[ordersdomain.SellerID][]float64)
	for _, item := range items {
		ts, ok := delivered[item.OrderID()]
		if !ok || item.SellerID() == "" {
			continue
		}
		delay, wait := math.NaN(), math.NaN()
		if d, ok := ts.DeliveredCarrierAt.Sub(item.ShippingLimit()); ok {
			delay = shareddomain.FractionalDays(d)
		}
		if d, ok := ts.DeliveredCustomerAt.Sub(ts.PurchasedAt); ok {
			wait = shareddomain.FractionalDays(d)
		}
		delays[item.SellerID()] = append(delays[item.SellerID()], delay)
		waits[item.SellerID()] = append(waits[item.SellerID()], wait)
	}

	rows := make([]domain.DelayWait, 0, len(delays))
	for _, id := range sortedSellerIDs(delays) {
		rows = append(rows, domain.DelayWait{
			SellerID:       id,
			DelayToCarrier: meanPositiveDelta(delays[id]),
			WaitTime:       meanDelta(waits[id]),
		})
	}

	b.done("delay_wait_time", start, len(rows))
	return rows, nil
}

// ActiveDates retourne [seller_id, date_first_sale, date_last_sale, months_on_olist]
// à partir des dates d'approbation des commandes approuvées
func (b *SellerFeatureBuilder) ActiveDates() ([]domain.ActiveDates, error) {
	start := time.Now()

	orders, err := b.repo.FindOrders()
	if err != nil {
		return nil, fmt.Errorf("active dates: %w", err)
	}
	approvedAt := make(map[ordersdomain.OrderID][]time.Time, len(orders))
	for _, o := range orders {
		if !o.IsApproved() {
			continue
		}
		approvedAt[o.ID()] = append(approvedAt[o.ID()], o.Timestamps().ApprovedAt.Time)
	}

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("active dates: %w", err)
	}

	ranges := make(map[ordersdomain.SellerID]shareddomain.DateRange)
	for _, item := range items {
		if item.SellerID() == "" {
			continue
		}
		for _, approved := range approvedAt[item.OrderID()] {
			current, exists := ranges[item.SellerID()]
			if !exists {
				current, _ = shareddomain.NewDateRange(approved, approved)
			}
			ranges[item.SellerID()] = current.Extend(approved)
		}
	}

	rows := make([]domain.ActiveDates, 0, len(ranges))
	for _, id := range sortedSellerIDs(ranges) {
		dr := ranges[id]
		rows = append(rows, domain.ActiveDates{
			SellerID:      id,
			DateFirstSale: dr.Start(),
			DateLastSale:  dr.End(),
			MonthsOnOlist: dr.RoundedMonths(),
		})
	}

	b.done("active_dates", start, len(rows))
	return rows, nil
}

// Quantity retourne [seller_id, n_orders, quantity, quantity_per_order]
func (b *SellerFeatureBuilder) Quantity() ([]domain.Quantity, error) {
	start := time.Now()

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}

	orders := make(map[ordersdomain.SellerID]map[ordersdomain.OrderID]struct{})
	quantities := make(map[ordersdomain.SellerID]int)
	for _, item := range items {
		if item.SellerID() == "" {
			continue
		}
		set, ok := orders[item.SellerID()]
		if !ok {
			set = make(map[ordersdomain.OrderID]struct{})
			orders[item.SellerID()] = set
		}
		set[item.OrderID()] = struct{}{}
		quantities[item.SellerID()]++
	}

	rows := make([]domain.Quantity, 0, len(orders))
	for _, id := range sortedSellerIDs(orders) {
		nOrders := len(orders[id])
		rows = append(rows, domain.Quantity{
			SellerID:         id,
			NOrders:          nOrders,
			Quantity:         quantities[id],
			QuantityPerOrder: float64(quantities[id]) / float64(nOrders),
		})
	}

	b.done("quantity", start, len(rows))
	return rows, nil
}

// Sales retourne [seller_id, sales], somme des prix des items
func (b *SellerFeatureBuilder) Sales() ([]domain.Sales, error) {
	start := time.Now()

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("sales: %w", err)
	}

	prices := make(map[ordersdomain.SellerID][]float64)
	for _, item := range items {
		if item.SellerID() == "" {
			continue
		}
		prices[item.SellerID()] = append(prices[item.SellerID()], item.Price())
	}

	rows := make([]domain.Sales, 0, len(prices))
	for _, id := range sortedSellerIDs(prices) {
		rows = append(rows, domain.Sales{SellerID: id, Sales: shareddomain.Sum(prices[id])})
	}

	b.done("sales", start, len(rows))
	return rows, nil
}

// ReviewScore retourne [seller_id, share_of_one_stars, share_of_five_stars, review_score, cost_of_reviews].
// Chaque review d'une commande compte une fois pour chaque vendeur distinct de la commande.
func (b *SellerFeatureBuilder) ReviewScore() ([]domain.ReviewEconomics, error) {
	start := time.Now()

	reviews, err := b.orders.ReviewScore()
	if err != nil {
		return nil, fmt.Errorf("seller review score: %w", err)
	}
	reviewsByOrder := make(map[ordersdomain.OrderID][]ordersdomain.ReviewScore)
	for _, r := range reviews {
		reviewsByOrder[r.OrderID] = append(reviewsByOrder[r.OrderID], r)
	}

	items, err := b.repo.FindOrderItems()
	if err != nil {
		return nil, fmt.Errorf("seller review score: %w", err)
	}

	type orderSeller struct {
		orderID  ordersdomain.OrderID
		sellerID ordersdomain.SellerID
	}
	seen := make(map[orderSeller]struct{})

	type agg struct {
		oneStars  []int
		fiveStars []int
		scores    []int
		cost      float64
	}
	bySeller := make(map[ordersdomain.SellerID]*agg)

	for _, item := range items {
		key := orderSeller{orderID: item.OrderID(), sellerID: item.SellerID()}
		if key.sellerID == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		for _, review := range reviewsByOrder[key.orderID] {
			a, ok := bySeller[key.sellerID]
			if !ok {
				a = &agg{}
				bySeller[key.sellerID] = a
			}
			// note absente: indicateurs à 0 comptés dans les parts, ignorée par la moyenne et le coût
			a.oneStars = append(a.oneStars, review.DimIsOneStar)
			a.fiveStars = append(a.fiveStars, review.DimIsFiveStar)
			if review.Missing {
				continue
			}
			a.scores = append(a.scores, review.ReviewScore)
			a.cost += b.economics.CostOfReview(review.ReviewScore)
		}
	}

	rows := make([]domain.ReviewEconomics, 0, len(bySeller))
	for _, id := range sortedSellerIDs(bySeller) {
		a := bySeller[id]
		rows = append(rows, domain.ReviewEconomics{
			SellerID:         id,
			ShareOfOneStars:  mean(a.oneStars),
			ShareOfFiveStars: mean(a.fiveStars),
			ReviewScore:      mean(a.scores),
			CostOfReviews:    a.cost,
		})
	}

	b.done("review_score", start, len(rows))
	return rows, nil
}

// TrainingData joint (jointure interne sur seller_id) toutes les métriques, calcule
// revenues et profits puis supprime les lignes contenant une valeur manquante
func (b *SellerFeatureBuilder) TrainingData() (*domain.SellerTrainingTable, error) {
	start := time.Now()

	identities, err := b.SellerFeatures()
	if err != nil {
		return nil, err
	}
	delayWaits, err := b.DelayWaitTime()
	if err != nil {
		return nil, err
	}
	activeDates, err := b.ActiveDates()
	if err != nil {
		return nil, err
	}
	reviews, err := b.ReviewScore()
	if err != nil {
		return nil, err
	}
	quantities, err := b.Quantity()
	if err != nil {
		return nil, err
	}
	sales, err := b.Sales()
	if err != nil {
		return nil, err
	}

	delayBySeller := indexBySeller(delayWaits, func(r domain.DelayWait) ordersdomain.SellerID { return r.SellerID })
	datesBySeller := indexBySeller(activeDates, func(r domain.ActiveDates) ordersdomain.SellerID { return r.SellerID })
	reviewsBySeller := indexBySeller(reviews, func(r domain.ReviewEconomics) ordersdomain.SellerID { return r.SellerID })
	quantityBySeller := indexBySeller(quantities, func(r domain.Quantity) ordersdomain.SellerID { return r.SellerID })
	salesBySeller := indexBySeller(sales, func(r domain.Sales) ordersdomain.SellerID { return r.SellerID })

	rows := make([]domain.SellerTrainingRow, 0, len(identities))
	dropped := 0
	for _, identity := range identities {
		id := identity.SellerID
		dw, ok := delayBySeller[id]
		if !ok {
			continue
		}
		dates, ok := datesBySeller[id]
		if !ok {
			continue
		}
		review, ok := reviewsBySeller[id]
		if !ok {
			continue
		}
		qty, ok := quantityBySeller[id]
		if !ok {
			continue
		}
		sale, ok := salesBySeller[id]
		if !ok {
			continue
		}

		revenues := b.economics.Revenues(dates.MonthsOnOlist, sale.Sales)
		row := domain.SellerTrainingRow{
			SellerID:         id,
			SellerCity:       identity.SellerCity,
			SellerState:      identity.SellerState,
			DelayToCarrier:   dw.DelayToCarrier,
			WaitTime:         dw.WaitTime,
			DateFirstSale:    dates.DateFirstSale,
			DateLastSale:     dates.DateLastSale,
			MonthsOnOlist:    dates.MonthsOnOlist,
			ShareOfOneStars:  review.ShareOfOneStars,
			ShareOfFiveStars: review.ShareOfFiveStars,
			ReviewScore:      review.ReviewScore,
			CostOfReviews:    review.CostOfReviews,
			NOrders:          qty.NOrders,
			Quantity:         qty.Quantity,
			QuantityPerOrder: qty.QuantityPerOrder,
			Sales:            sale.Sales,
			Revenues:         revenues,
			Profits:          revenues - review.CostOfReviews,
		}
		if row.HasMissing() {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	b.logger.Info("seller training data built",
		zap.Int("rows", len(rows)),
		zap.Int("dropped_missing", dropped),
		zap.Float64("monthly_fee", b.economics.MonthlyFee),
		zap.Float64("sales_cut", b.economics.SalesCut),
	)
	b.done("training_data", start, len(rows))

	return domain.NewSellerTrainingTable(rows), nil
}

func (b *SellerFeatureBuilder) done(step string, start time.Time, rows int) {
	elapsed := time.Since(start)
	b.observer.ObserveStep(featureTable, step, elapsed, rows)
	b.logger.Debug("step computed",
		zap.String("step", step),
		zap.Int("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
}

func indexBySeller[T any](rows []T, key func(T) ordersdomain.SellerID) map[ordersdomain.SellerID]T {
	index := make(map[ordersdomain.SellerID]T, len(rows))
	for _, r := range rows {
		index[key(r)] = r
	}
	return index
}

// sortedSellerIDs retourne les clés triées (ordre d'un group by)
func sortedSellerIDs[V any](m map[ordersdomain.SellerID]V) []ordersdomain.SellerID {
	ids := make([]ordersdomain.SellerID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
