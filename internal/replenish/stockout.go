package replenish

import "math"

// StockoutProjection is the days-of-cover triple. All three fields are nil
// together when current inventory is unknown or daily demand is zero; a
// divide-by-zero artifact (Inf, NaN) never reaches the caller.
type StockoutProjection struct {
	DaysOfCover            *float64
	ExpectedStockoutDate   *string
	StockoutBeforeLeadTime *bool
}

// ProjectStockout projects how long currentStock lasts at dailyDemand and
// whether it runs out inside the lead time. seriesEnd is the last date of
// the demand history, injected so the projection stays deterministic.
func ProjectStockout(currentStock *float64, dailyDemand float64, leadTimeDays int, seriesEnd string) StockoutProjection {
	if currentStock == nil || *currentStock < 0 {
		return StockoutProjection{}
	}
	if dailyDemand <= 0 || math.IsNaN(dailyDemand) || math.IsInf(dailyDemand, 0) {
		return StockoutProjection{}
	}

	daysOfCover := *currentStock / dailyDemand
	if math.IsNaN(daysOfCover) || math.IsInf(daysOfCover, 0) {
		return StockoutProjection{}
	}

	proj := StockoutProjection{DaysOfCover: &daysOfCover}

	before := daysOfCover < float64(leadTimeDays)
	proj.StockoutBeforeLeadTime = &before

	// A century of cover means the date is meaningless; leave it nil and
	// avoid overflowing the int conversion.
	if days := math.Floor(daysOfCover); days <= 36500 {
		if stockoutDate, err := AddDays(seriesEnd, int(days)); err == nil {
			proj.ExpectedStockoutDate = &stockoutDate
		}
	}

	return proj
}
