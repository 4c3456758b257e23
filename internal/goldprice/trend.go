package goldprice

import (
	"fmt"

	"github.com/simplifymoney/kuberai-backend/internal/models"
)

// AnalyzeTrend returns the percentage price change over the trailing
// `period` points of the series (or the whole series if shorter).
// A series with fewer than two points has no trend and returns 0.0.
func AnalyzeTrend(points []models.PricePoint, period int) float64 {
	if len(points) < 2 {
		return 0.0
	}
	recent := points
	if period > 0 && len(points) > period {
		recent = points[len(points)-period:]
	}
	start := recent[0].Price
	end := recent[len(recent)-1].Price
	return (end - start) / start * 100
}

// TrendText renders the 7-day and 30-day trends as one sentence. When
// the series is shorter than 30 points the long trend covers the whole
// series instead.
func TrendText(points []models.PricePoint) string {
	if len(points) == 0 {
		return "No sufficient data to determine trend."
	}

	shortTerm := AnalyzeTrend(points, 7)
	longPeriod := 30
	if len(points) < 30 {
		longPeriod = len(points)
	}
	longTerm := AnalyzeTrend(points, longPeriod)

	return fmt.Sprintf("Gold prices have %s over the last 7 days and have %s over the last 30 days.",
		trendPhrase(shortTerm), trendPhrase(longTerm))
}

func trendPhrase(change float64) string {
	switch {
	case change > 0.1:
		return fmt.Sprintf("increased by %.2f%%", change)
	case change < -0.1:
		return fmt.Sprintf("decreased by %.2f%%", -change)
	default:
		return "been relatively stable"
	}
}
