package domain

import (
	"errors"
	"fmt"
)

// Economics paramètres économiques de la plateforme appliqués aux vendeurs
type Economics struct {
	// MonthlyFee abonnement mensuel payé par un vendeur
	MonthlyFee float64
	// SalesCut commission prélevée sur les ventes, entre 0 et 1
	SalesCut float64
	// ReviewCosts coût d'une review selon sa note; une note absente coûte 0
	ReviewCosts map[int]float64
}

// DefaultEconomics retourne les paramètres Olist: 80 par mois, 10% des ventes
func DefaultEconomics() Economics {
	return Economics{
		MonthlyFee: 80,
		SalesCut:   0.1,
		ReviewCosts: map[int]float64{
			1: 100,
			2: 50,
			3: 40,
			4: 0,
			5: 0,
		},
	}
}

// Validate vérifie la cohérence des paramètres
func (e Economics) Validate() error {
	if e.MonthlyFee < 0 {
		return fmt.Errorf("monthly fee cannot be negative: %v", e.MonthlyFee)
	}
	if e.SalesCut < 0 || e.SalesCut > 1 {
		return fmt.Errorf("sales cut must be between 0 and 1: %v", e.SalesCut)
	}
	for score, cost := range e.ReviewCosts {
		if score < 1 || score > 5 {
			return fmt.Errorf("review cost for invalid score %d", score)
		}
		if cost < 0 {
			return errors.New("review cost cannot be negative")
		}
	}
	return nil
}

// CostOfReview retourne le coût associé à une note
func (e Economics) CostOfReview(score int) float64 {
	return e.ReviewCosts[score]
}

// Revenues calcule months × fee + cut × sales
func (e Economics) Revenues(monthsOnOlist int, sales float64) float64 {
	return float64(monthsOnOlist)*e.MonthlyFee + e.SalesCut*sales
}
