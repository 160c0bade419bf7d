package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/cache"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/replenish"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

const (
	comparisonWindowDays = 14
	defaultTopLimit      = 5
)

type DashboardService struct {
	repo  repository.Replenishment
	cache cache.ReplenishCache
}

func NewDashboardService(repo repository.Replenishment, cacheImpl cache.ReplenishCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReplenishCache()
	}
	return &DashboardService{repo: repo, cache: cacheImpl}
}

// GetSummary builds the headline dashboard block: trailing week vs the week
// before for units and revenue, plus the top sellers. The independent
// fetches run concurrently; errgroup gives the ordering guarantee the old
// fire-and-forget dashboard fetches lacked.
func (s *DashboardService) GetSummary(ctx context.Context, marketplace string) (*domain.DashboardSummary, error) {
	if summary, ok, err := s.cache.GetSummary(ctx, marketplace); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get summary failed")
	}

	var (
		series []domain.SalesPoint
		top    []domain.TopProduct
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.repo.SalesSeries(gctx, nil, marketplace, comparisonWindowDays)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.repo.TopProducts(gctx, marketplace, comparisonWindowDays, defaultTopLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	units := make([]domain.DatedPoint, len(series))
	revenue := make([]domain.DatedPoint, len(series))
	for i, p := range series {
		units[i] = domain.DatedPoint{Date: p.Date, Value: p.Units}
		revenue[i] = domain.DatedPoint{Date: p.Date, Value: p.Revenue}
	}

	unitsCmp := replenish.Rolling7dComparison(units)
	revenueCmp := replenish.Rolling7dComparison(revenue)

	if top == nil {
		top = make([]domain.TopProduct, 0)
	}

	summary := &domain.DashboardSummary{
		Marketplace: marketplace,
		AsOf:        replenish.LastDate(units),
		Comparison: domain.RollingComparison{
			CurrentUnits:     unitsCmp.Current,
			PreviousUnits:    unitsCmp.Previous,
			UnitsPctChange:   unitsCmp.PctChange,
			CurrentRevenue:   revenueCmp.Current,
			PreviousRevenue:  revenueCmp.Previous,
			RevenuePctChange: revenueCmp.PctChange,
		},
		TopProducts: top,
	}

	if err := s.cache.SetSummary(ctx, marketplace, summary); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set summary failed")
	}

	return summary, nil
}

// GetTimeSeries returns the daily sales series for charting.
func (s *DashboardService) GetTimeSeries(ctx context.Context, marketplace string, days int) ([]domain.SalesPoint, error) {
	if days <= 0 {
		days = 30
	}

	series, err := s.repo.SalesSeries(ctx, nil, marketplace, days)
	if err != nil {
		return nil, fmt.Errorf("dashboard timeseries: %w", err)
	}
	if series == nil {
		series = make([]domain.SalesPoint, 0)
	}
	return series, nil
}

// GetTopProducts returns the best sellers over the trailing window.
func (s *DashboardService) GetTopProducts(ctx context.Context, marketplace string, days, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	top, err := s.repo.TopProducts(ctx, marketplace, days, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard top products: %w", err)
	}
	if top == nil {
		top = make([]domain.TopProduct, 0)
	}
	return top, nil
}
