package replenish

import (
	"math"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// serviceLevelZ maps the supported service levels to standard-normal
// quantiles. Levels outside this set are rejected rather than interpolated.
var serviceLevelZ = []struct {
	level float64
	z     float64
}{
	{0.85, 1.0364},
	{0.90, 1.2816},
	{0.95, 1.6449},
	{0.99, 2.3263},
}

// SupportedServiceLevels lists the accepted service_level inputs.
func SupportedServiceLevels() []float64 {
	levels := make([]float64, len(serviceLevelZ))
	for i, e := range serviceLevelZ {
		levels[i] = e.level
	}
	return levels
}

// Zscore returns the standard-normal quantile for a supported service level.
func Zscore(serviceLevel float64) (float64, error) {
	for _, e := range serviceLevelZ {
		if math.Abs(e.level-serviceLevel) < 1e-9 {
			return e.z, nil
		}
	}
	return 0, domain.NewInvalidInput("service_level", "unsupported value %.2f, expected one of 0.85, 0.90, 0.95, 0.99", serviceLevel)
}

// SafetyStockResult holds lead-time demand, the service-level buffer and
// the recommended order size.
type SafetyStockResult struct {
	LeadTimeDemand  float64
	SafetyStock     float64
	ReorderQuantity int
}

// ComputeSafetyStock computes lead-time demand, safety stock and the
// reorder quantity. Safety stock follows the sqrt-of-lead-time-demand form
// (Poisson-like daily demand): z * sqrt(dailyDemand * leadTimeDays).
func ComputeSafetyStock(dailyDemand float64, leadTimeDays int, serviceLevel float64) (SafetyStockResult, error) {
	if leadTimeDays <= 0 || leadTimeDays > 365 {
		return SafetyStockResult{}, domain.NewInvalidInput("lead_time_days", "must be between 1 and 365, got %d", leadTimeDays)
	}
	if math.IsNaN(dailyDemand) || math.IsInf(dailyDemand, 0) || dailyDemand < 0 {
		return SafetyStockResult{}, domain.NewInvalidInput("daily_demand", "must be a non-negative number")
	}

	z, err := Zscore(serviceLevel)
	if err != nil {
		return SafetyStockResult{}, err
	}

	leadTimeDemand := dailyDemand * float64(leadTimeDays)
	safetyStock := z * math.Sqrt(leadTimeDemand)

	return SafetyStockResult{
		LeadTimeDemand:  leadTimeDemand,
		SafetyStock:     safetyStock,
		ReorderQuantity: int(math.Ceil(leadTimeDemand + safetyStock)),
	}, nil
}
