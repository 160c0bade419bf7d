package replenish

import (
	"fmt"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// PlannerParams tunes the restock action planner. The legacy dashboard
// spread slightly different buffer constants across three panels; they are
// a single configurable set here.
type PlannerParams struct {
	// UrgentBufferDays on top of lead time marks the urgent threshold.
	UrgentBufferDays int
	// WatchBufferDays on top of lead time marks the watch threshold.
	WatchBufferDays int
	// LowDemandFactor and HighDemandFactor bound the sensitivity band
	// around the expected daily demand.
	LowDemandFactor  float64
	HighDemandFactor float64
}

// DefaultPlannerParams returns the product defaults: 3/10 day buffers and
// a +-20% demand band.
func DefaultPlannerParams() PlannerParams {
	return PlannerParams{
		UrgentBufferDays: 3,
		WatchBufferDays:  10,
		LowDemandFactor:  0.8,
		HighDemandFactor: 1.2,
	}
}

// PlanInput carries everything one planning run needs. CurrentStock is nil
// when the inventory level is unknown; the planner degrades to an
// insufficient_data outcome instead of failing.
type PlanInput struct {
	SKU          *string
	Marketplace  string
	History      []domain.DatedPoint
	Backtest     []domain.BacktestPoint
	CurrentStock *float64
	LeadTimeDays int
	ServiceLevel float64
}

// BuildRestockPlan produces the safety-stock plan for one SKU: lead-time
// demand, safety stock, reorder quantity, backtest quality and the
// stockout projection.
func BuildRestockPlan(in PlanInput, est EstimatorParams) (domain.RestockPlan, error) {
	estimate := EstimateDemand(in.History, est)

	stock, err := ComputeSafetyStock(estimate.DailyDemand, in.LeadTimeDays, in.ServiceLevel)
	if err != nil {
		return domain.RestockPlan{}, err
	}

	mape := MAPE(in.Backtest)
	count := len(in.Backtest)
	proj := ProjectStockout(in.CurrentStock, estimate.DailyDemand, in.LeadTimeDays, LastDate(in.History))

	return domain.RestockPlan{
		AvgDailyDemand:         estimate.DailyDemand,
		LeadTimeDays:           in.LeadTimeDays,
		ServiceLevel:           in.ServiceLevel,
		LeadTimeDemand:         stock.LeadTimeDemand,
		SafetyStock:            stock.SafetyStock,
		ReorderQuantity:        stock.ReorderQuantity,
		MAPE30d:                mape,
		QualityTier:            ClassifyQuality(mape, &count),
		DaysOfCover:            proj.DaysOfCover,
		ExpectedStockoutDate:   proj.ExpectedStockoutDate,
		StockoutBeforeLeadTime: proj.StockoutBeforeLeadTime,
	}, nil
}

// PlanRestockActions composes the demand estimate, safety stock, stockout
// projection and sensitivity band into one decision record with
// human-readable reasoning. The reasoning strings are deterministic for
// identical inputs; no wall clock is read.
func PlanRestockActions(in PlanInput, est EstimatorParams, params PlannerParams) (domain.RestockAction, error) {
	if params.HighDemandFactor <= 0 {
		params = DefaultPlannerParams()
	}

	estimate := EstimateDemand(in.History, est)
	daily := estimate.DailyDemand

	expected, err := ComputeSafetyStock(daily, in.LeadTimeDays, in.ServiceLevel)
	if err != nil {
		return domain.RestockAction{}, err
	}
	high, err := ComputeSafetyStock(daily*params.HighDemandFactor, in.LeadTimeDays, in.ServiceLevel)
	if err != nil {
		return domain.RestockAction{}, err
	}

	seriesEnd := LastDate(in.History)
	projExpected := ProjectStockout(in.CurrentStock, daily, in.LeadTimeDays, seriesEnd)
	// The high-demand case burns stock fastest, so it bounds cover from below.
	projLow := ProjectStockout(in.CurrentStock, daily*params.HighDemandFactor, in.LeadTimeDays, seriesEnd)
	projHigh := ProjectStockout(in.CurrentStock, daily*params.LowDemandFactor, in.LeadTimeDays, seriesEnd)

	action := domain.RestockAction{
		SKU:                 in.SKU,
		Marketplace:         in.Marketplace,
		DailyDemandEstimate: daily,
		DemandRangeDaily: domain.ForecastRange{
			Low:      daily * params.LowDemandFactor,
			Expected: daily,
			High:     daily * params.HighDemandFactor,
		},
		DaysOfCoverExpected:     projExpected.DaysOfCover,
		DaysOfCoverLow:          projLow.DaysOfCover,
		DaysOfCoverHigh:         projHigh.DaysOfCover,
		StockoutDateExpected:    projExpected.ExpectedStockoutDate,
		SuggestedReorderQtyExp:  expected.ReorderQuantity,
		SuggestedReorderQtyHigh: high.ReorderQuantity,
	}

	if projExpected.ExpectedStockoutDate != nil {
		if orderBy, err := AddDays(*projExpected.ExpectedStockoutDate, -in.LeadTimeDays); err == nil {
			action.OrderByDate = &orderBy
		}
	}

	if in.CurrentStock == nil || daily <= 0 {
		action.Status = domain.StatusInsufficientData
		action.Reasoning = insufficientReasons(in.CurrentStock, daily)
		action.Recommendation = "Provide current stock and recent sales history to compute a restock recommendation."
		return action, nil
	}

	cover := *projExpected.DaysOfCover
	urgentThreshold := in.LeadTimeDays + params.UrgentBufferDays
	watchThreshold := in.LeadTimeDays + params.WatchBufferDays

	switch {
	case cover <= float64(urgentThreshold):
		action.Status = domain.StatusUrgent
	case cover <= float64(watchThreshold):
		action.Status = domain.StatusWatch
	default:
		action.Status = domain.StatusHealthy
	}

	action.Reasoning = buildReasons(in, estimate, action, cover, urgentThreshold, watchThreshold)
	action.Recommendation = buildRecommendation(action)
	return action, nil
}

func insufficientReasons(currentStock *float64, daily float64) []string {
	reasons := make([]string, 0, 2)
	if currentStock == nil {
		reasons = append(reasons, "Current stock level is unknown; days of cover cannot be estimated.")
	}
	if daily <= 0 {
		reasons = append(reasons, "Average daily demand over the lookback window is zero; there is not enough sales signal to plan a restock.")
	}
	return reasons
}

func buildReasons(in PlanInput, estimate domain.DemandEstimate, action domain.RestockAction, cover float64, urgentThreshold, watchThreshold int) []string {
	reasons := []string{
		fmt.Sprintf("Average daily demand is %.2f units (volatility CV %.2f, %s confidence, trend %s).",
			estimate.DailyDemand, estimate.VolatilityCV, estimate.Confidence, estimate.Trend),
	}

	if action.DaysOfCoverLow != nil && action.DaysOfCoverHigh != nil {
		reasons = append(reasons, fmt.Sprintf("Current stock of %.0f units covers %.1f days at expected demand (%.1f to %.1f days across the demand band).",
			*in.CurrentStock, cover, *action.DaysOfCoverLow, *action.DaysOfCoverHigh))
	} else {
		reasons = append(reasons, fmt.Sprintf("Current stock of %.0f units covers %.1f days at expected demand.", *in.CurrentStock, cover))
	}

	if action.StockoutDateExpected != nil {
		reasons = append(reasons, fmt.Sprintf("At expected demand, stock runs out around %s with a %d day lead time.",
			*action.StockoutDateExpected, in.LeadTimeDays))
	}

	switch action.Status {
	case domain.StatusUrgent:
		reasons = append(reasons, fmt.Sprintf("Cover of %.1f days is at or below the urgent threshold of %d days (lead time %d plus %d day buffer).",
			cover, urgentThreshold, in.LeadTimeDays, urgentThreshold-in.LeadTimeDays))
	case domain.StatusWatch:
		reasons = append(reasons, fmt.Sprintf("Cover of %.1f days is at or below the watch threshold of %d days (lead time %d plus %d day buffer).",
			cover, watchThreshold, in.LeadTimeDays, watchThreshold-in.LeadTimeDays))
	default:
		reasons = append(reasons, fmt.Sprintf("Cover of %.1f days exceeds the watch threshold of %d days.", cover, watchThreshold))
	}

	return reasons
}

func buildRecommendation(action domain.RestockAction) string {
	switch action.Status {
	case domain.StatusUrgent, domain.StatusWatch:
		if action.OrderByDate != nil {
			return fmt.Sprintf("Reorder %d units (%d at the high-demand case) by %s.",
				action.SuggestedReorderQtyExp, action.SuggestedReorderQtyHigh, *action.OrderByDate)
		}
		return fmt.Sprintf("Reorder %d units (%d at the high-demand case) as soon as possible.",
			action.SuggestedReorderQtyExp, action.SuggestedReorderQtyHigh)
	default:
		return "Stock cover is healthy; no reorder needed yet."
	}
}
