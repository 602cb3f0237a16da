package services

import "load-ranking-service/internal/domain"

// Scoring weights for the composite blend.
const (
	weightProfit       = 0.50
	weightConnectivity = 0.30
	weightEase         = 0.20
)

// ScoreComposite blends the profit, connectivity, and ease sub-scores into a
// single 0-100 ranking with a recommendation band. Pure, no I/O.
func ScoreComposite(profit domain.ProfitData, market domain.MarketData) domain.CompositeData {
	profitScore := profit.Score
	connectivityScore := market.LaneConnectivity.Score
	easeScore := market.EaseOfBooking.Score

	composite := float64(profitScore)*weightProfit +
		float64(connectivityScore)*weightConnectivity +
		float64(easeScore)*weightEase

	recommendation, color := recommendationBand(composite)

	return domain.CompositeData{
		CompositeScore: round1(composite),
		Recommendation: recommendation,
		Color:          color,
		IndividualScores: domain.ScoreBreakdown{
			Profit:       profitScore,
			Connectivity: connectivityScore,
			Ease:         easeScore,
		},
	}
}

func recommendationBand(composite float64) (string, string) {
	switch {
	case composite >= 80:
		return "Highly Recommended", "green"
	case composite >= 60:
		return "Recommended", "yellow"
	case composite >= 40:
		return "Consider", "orange"
	default:
		return "Avoid", "red"
	}
}
