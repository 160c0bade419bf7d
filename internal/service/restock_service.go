package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/cache"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/replenish"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

// RestockQuery carries the validated inputs of a restock computation.
// CurrentStock overrides the repository's inventory snapshot when the
// caller supplies current_stock_units explicitly.
type RestockQuery struct {
	SKU          *string
	Marketplace  string
	LeadTimeDays int
	ServiceLevel float64
	CurrentStock *float64
}

type RestockService struct {
	repo  repository.Replenishment
	cache cache.ReplenishCache
	cfg   config.ReplenishConfig
}

func NewRestockService(repo repository.Replenishment, cacheImpl cache.ReplenishCache, cfg config.ReplenishConfig) *RestockService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReplenishCache()
	}
	return &RestockService{repo: repo, cache: cacheImpl, cfg: cfg}
}

func plannerParams(cfg config.ReplenishConfig) replenish.PlannerParams {
	params := replenish.DefaultPlannerParams()
	if cfg.UrgentBufferDays > 0 {
		params.UrgentBufferDays = cfg.UrgentBufferDays
	}
	if cfg.WatchBufferDays > 0 {
		params.WatchBufferDays = cfg.WatchBufferDays
	}
	if cfg.LowDemandFactor > 0 {
		params.LowDemandFactor = cfg.LowDemandFactor
	}
	if cfg.HighDemandFactor > 0 {
		params.HighDemandFactor = cfg.HighDemandFactor
	}
	return params
}

// GetPlan computes the safety-stock plan for one SKU (or the aggregate).
func (s *RestockService) GetPlan(ctx context.Context, query RestockQuery) (*domain.RestockPlan, error) {
	key := cache.PlanKey{
		SKU:          query.SKU,
		Marketplace:  query.Marketplace,
		LeadTimeDays: query.LeadTimeDays,
		ServiceLevel: query.ServiceLevel,
		CurrentStock: query.CurrentStock,
	}

	if plan, ok, err := s.cache.GetPlan(ctx, key); err == nil && ok {
		return plan, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("restock: cache get plan failed")
	}

	in, err := s.buildPlanInput(ctx, query)
	if err != nil {
		return nil, err
	}

	plan, err := replenish.BuildRestockPlan(in, estimatorParams(s.cfg))
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPlan(ctx, key, &plan); err != nil {
		log.Warn().Err(err).Msg("restock: cache set plan failed")
	}

	return &plan, nil
}

// GetActions computes the composed restock decision record for one SKU.
func (s *RestockService) GetActions(ctx context.Context, query RestockQuery) (*domain.RestockAction, error) {
	in, err := s.buildPlanInput(ctx, query)
	if err != nil {
		return nil, err
	}

	action, err := replenish.PlanRestockActions(in, estimatorParams(s.cfg), plannerParams(s.cfg))
	if err != nil {
		return nil, err
	}

	return &action, nil
}

// reportWorkers bounds concurrent per-SKU computations during report export.
const reportWorkers = 8

// ActionsForAll computes restock actions for every SKU in the marketplace,
// with defaults from configuration. Used by the report exporter. Results
// keep the repository's SKU ordering regardless of completion order.
func (s *RestockService) ActionsForAll(ctx context.Context, marketplace string) ([]domain.RestockAction, error) {
	skus, err := s.repo.SKUs(ctx, marketplace)
	if err != nil {
		return nil, fmt.Errorf("restock report: %w", err)
	}

	actions := make([]domain.RestockAction, len(skus))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportWorkers)

	for i, sku := range skus {
		i, sku := i, sku
		g.Go(func() error {
			action, err := s.GetActions(gctx, RestockQuery{
				SKU:          &sku,
				Marketplace:  marketplace,
				LeadTimeDays: s.cfg.DefaultLeadTimeDays,
				ServiceLevel: s.cfg.DefaultServiceLevel,
			})
			if err != nil {
				return fmt.Errorf("restock report for %s: %w", sku, err)
			}
			actions[i] = *action
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *RestockService) buildPlanInput(ctx context.Context, query RestockQuery) (replenish.PlanInput, error) {
	history, err := s.repo.DemandHistory(ctx, query.SKU, query.Marketplace, s.cfg.DemandWindowDays)
	if err != nil {
		return replenish.PlanInput{}, fmt.Errorf("restock history: %w", err)
	}

	backtest, err := s.repo.Backtest(ctx, query.SKU, query.Marketplace, 30)
	if err != nil {
		return replenish.PlanInput{}, fmt.Errorf("restock backtest: %w", err)
	}

	currentStock := query.CurrentStock
	if currentStock == nil {
		currentStock, err = s.repo.CurrentStock(ctx, query.SKU, query.Marketplace)
		if err != nil {
			return replenish.PlanInput{}, fmt.Errorf("restock current stock: %w", err)
		}
	}

	return replenish.PlanInput{
		SKU:          query.SKU,
		Marketplace:  query.Marketplace,
		History:      history,
		Backtest:     backtest,
		CurrentStock: currentStock,
		LeadTimeDays: query.LeadTimeDays,
		ServiceLevel: query.ServiceLevel,
	}, nil
}
