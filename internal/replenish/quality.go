package replenish

import (
	"math"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// MAPE returns the mean absolute percentage error over the backtest as a
// fraction (0.15 = 15%). Points with a non-positive or non-finite actual
// contribute nothing; if no usable point remains, MAPE is nil.
func MAPE(points []domain.BacktestPoint) *float64 {
	var sum float64
	var n int
	for _, p := range points {
		if p.Actual <= 0 || math.IsNaN(p.Actual) || math.IsInf(p.Actual, 0) {
			continue
		}
		if math.IsNaN(p.Predicted) || math.IsInf(p.Predicted, 0) {
			continue
		}
		sum += math.Abs(p.Actual-p.Predicted) / p.Actual
		n++
	}
	if n == 0 {
		return nil
	}
	mape := sum / float64(n)
	return &mape
}

// MAE returns the mean absolute error over the backtest, nil when empty.
func MAE(points []domain.BacktestPoint) *float64 {
	var sum float64
	var n int
	for _, p := range points {
		if math.IsNaN(p.Actual) || math.IsNaN(p.Predicted) {
			continue
		}
		sum += math.Abs(p.Actual - p.Predicted)
		n++
	}
	if n == 0 {
		return nil
	}
	mae := sum / float64(n)
	return &mae
}

// ClassifyQuality maps a 30-day MAPE to a discrete tier. Boundaries are
// inclusive on the lower tier, so ties resolve to the better tier. A nil or
// NaN MAPE, or an explicit zero backtest point count, yields NoBacktestData.
func ClassifyQuality(mape *float64, backtestPoints *int) domain.QualityTier {
	if backtestPoints != nil && *backtestPoints == 0 {
		return domain.QualityNoBacktestData
	}
	if mape == nil || math.IsNaN(*mape) || math.IsInf(*mape, 0) {
		return domain.QualityNoBacktestData
	}

	switch {
	case *mape <= 0.15:
		return domain.QualityGreat
	case *mape <= 0.25:
		return domain.QualityGood
	case *mape <= 0.40:
		return domain.QualityWatch
	default:
		return domain.QualityPoor
	}
}
