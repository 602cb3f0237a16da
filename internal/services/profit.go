package services

import (
	"load-ranking-service/internal/domain"
	"math"
)

// Trip economics constants. Rates are $/mile, fuel is $/gallon.
const (
	fuelPriceDefault = 3.89
	opsCostPerMile   = 0.40
)

// Fuel efficiency in miles per gallon by equipment type code.
var fuelEfficiency = map[string]float64{
	"V": 6.6, // Van
	"R": 6.0, // Reefer
	"F": 5.8, // Flatbed
}

const defaultFuelEfficiency = 6.6

// EstimateProfit computes revenue, costs, and net profit per mile for a
// single load, and maps profit per mile to a 0-100 score. Pure and
// deterministic; missing fields default to zero/neutral, never an error.
func EstimateProfit(load *domain.Load) domain.ProfitData {
	tripMiles := load.TripMiles()
	deadhead := load.DeadheadMiles()
	totalMiles := tripMiles + deadhead

	equipment := load.MatchingAssetInfo.EquipmentType
	ratePerMile := resolveRatePerMile(load, tripMiles, equipment)

	// Deadhead miles are not revenue-generating.
	totalRevenue := ratePerMile * tripMiles

	mpg, ok := fuelEfficiency[equipment]
	if !ok {
		mpg = defaultFuelEfficiency
	}
	fuelCost := (totalMiles / mpg) * fuelPriceDefault
	opsCost := totalMiles * opsCostPerMile
	totalCosts := fuelCost + opsCost

	netProfit := totalRevenue - totalCosts
	profitPerMile := netProfit / math.Max(totalMiles, 1)

	return domain.ProfitData{
		TotalRevenue:   round2(totalRevenue),
		FuelCost:       round2(fuelCost),
		OpsCost:        round2(opsCost),
		TotalCosts:     round2(totalCosts),
		NetProfit:      round2(netProfit),
		ProfitPerMile:  round2(profitPerMile),
		TotalMiles:     totalMiles,
		TripMiles:      tripMiles,
		OriginDeadhead: deadhead,
		RatePerMile:    round2(ratePerMile),
		EquipmentType:  equipment,
		Score:          profitScore(profitPerMile),
	}
}

// resolveRatePerMile applies the rate priority order: posted estimate, then
// rate quote (non-bookable preferred), then the fallback table by equipment
// and trip length.
func resolveRatePerMile(load *domain.Load, tripMiles float64, equipment string) float64 {
	if load.EstimatedRatePerMile != 0 {
		return load.EstimatedRatePerMile
	}

	if info := load.LoadBoardRateInfo; info != nil {
		quote := info.NonBookable
		if quote == nil {
			quote = info.Bookable
		}
		if quote != nil && quote.RateUSD != 0 {
			switch quote.Basis {
			case domain.RateBasisFlat:
				if tripMiles > 0 {
					return quote.RateUSD / math.Max(tripMiles, 1)
				}
			case domain.RateBasisPerMile:
				return quote.RateUSD
			}
		}
	}

	// Fallback market rates: short hauls pay better per mile.
	if equipment == "R" {
		if tripMiles > 500 {
			return 2.60
		}
		return 2.90
	}
	if tripMiles > 500 {
		return 2.30
	}
	return 2.70
}

// profitScore bands profit per mile into a 0-100 step score.
func profitScore(profitPerMile float64) int {
	switch {
	case profitPerMile >= 1.50:
		return 95
	case profitPerMile >= 1.00:
		return 85
	case profitPerMile >= 0.75:
		return 70
	case profitPerMile >= 0.50:
		return 55
	case profitPerMile >= 0.25:
		return 40
	case profitPerMile >= 0:
		return 25
	default:
		return 10
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
