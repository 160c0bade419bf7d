package service

import (
	"context"
	"fmt"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/replenish"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

type ForecastService struct {
	repo repository.Replenishment
	cfg  config.ReplenishConfig
}

func NewForecastService(repo repository.Replenishment, cfg config.ReplenishConfig) *ForecastService {
	return &ForecastService{repo: repo, cfg: cfg}
}

func estimatorParams(cfg config.ReplenishConfig) replenish.EstimatorParams {
	params := replenish.DefaultEstimatorParams()
	if cfg.DemandWindowDays > 0 {
		params.WindowDays = cfg.DemandWindowDays
	}
	if cfg.MinTrendPoints > 0 {
		params.MinTrendPoints = cfg.MinTrendPoints
	}
	if cfg.TrendThreshold > 0 {
		params.TrendThreshold = cfg.TrendThreshold
	}
	return params
}

// GetForecast estimates demand from recent history and projects it over the
// horizon with a confidence-dependent band.
func (s *ForecastService) GetForecast(ctx context.Context, sku *string, marketplace string, horizonDays int) (*domain.Forecast, error) {
	history, err := s.repo.DemandHistory(ctx, sku, marketplace, s.cfg.DemandWindowDays)
	if err != nil {
		return nil, fmt.Errorf("forecast history: %w", err)
	}

	estimate := replenish.EstimateDemand(history, estimatorParams(s.cfg))

	horizonRange, err := replenish.HorizonRange(estimate, horizonDays)
	if err != nil {
		return nil, err
	}

	forecast := &domain.Forecast{
		SKU:         sku,
		Marketplace: marketplace,
		HorizonDays: horizonDays,
		Intelligence: domain.ForecastIntelligence{
			Trend:               estimate.Trend,
			Confidence:          estimate.Confidence,
			DailyDemandEstimate: estimate.DailyDemand,
			VolatilityCV:        estimate.VolatilityCV,
			ForecastRange:       horizonRange,
		},
		Series: buildForecastSeries(estimate, replenish.LastDate(history), horizonDays),
	}

	return forecast, nil
}

// buildForecastSeries projects one point per horizon day starting the day
// after the history ends. An empty or unparsable history end yields an
// empty series; the intelligence block still carries the totals.
func buildForecastSeries(estimate domain.DemandEstimate, seriesEnd string, horizonDays int) []domain.ForecastPoint {
	series := make([]domain.ForecastPoint, 0, horizonDays)
	if seriesEnd == "" {
		return series
	}

	band := replenish.BandMultiplier(estimate.Confidence)
	daily := estimate.DailyDemand
	low := daily * (1 - band)
	if low < 0 {
		low = 0
	}

	for i := 1; i <= horizonDays; i++ {
		date, err := replenish.AddDays(seriesEnd, i)
		if err != nil {
			return series
		}
		series = append(series, domain.ForecastPoint{
			Date:     date,
			Low:      low,
			Expected: daily,
			High:     daily * (1 + band),
		})
	}
	return series
}
