package replenish

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

func TestComputeSafetyStockScenario(t *testing.T) {
	// daily_demand=4.2, lead_time=14, service_level=0.90
	result, err := ComputeSafetyStock(4.2, 14, 0.90)
	require.NoError(t, err)
	require.InDelta(t, 58.8, result.LeadTimeDemand, 1e-9)
	require.InDelta(t, 9.83, result.SafetyStock, 0.01)
	require.Equal(t, 69, result.ReorderQuantity)
}

func TestComputeSafetyStockNonNegative(t *testing.T) {
	for _, level := range SupportedServiceLevels() {
		for _, lead := range []int{1, 7, 30, 365} {
			for _, demand := range []float64{0, 0.5, 4.2, 120} {
				result, err := ComputeSafetyStock(demand, lead, level)
				require.NoError(t, err)
				require.GreaterOrEqual(t, result.SafetyStock, 0.0)
				require.GreaterOrEqual(t, result.ReorderQuantity, int(math.Ceil(result.LeadTimeDemand)))
			}
		}
	}
}

func TestReorderQuantityMonotonicInDemand(t *testing.T) {
	prev := -1
	for demand := 0.0; demand <= 50; demand += 0.7 {
		result, err := ComputeSafetyStock(demand, 14, 0.95)
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.ReorderQuantity, prev)
		prev = result.ReorderQuantity
	}
}

func TestComputeSafetyStockInvalidLeadTime(t *testing.T) {
	var invalid *domain.InvalidInputError

	_, err := ComputeSafetyStock(4.2, 0, 0.90)
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "lead_time_days", invalid.Field)

	_, err = ComputeSafetyStock(4.2, -3, 0.90)
	require.Error(t, err)

	_, err = ComputeSafetyStock(4.2, 400, 0.90)
	require.Error(t, err)
}

func TestComputeSafetyStockUnsupportedServiceLevel(t *testing.T) {
	var invalid *domain.InvalidInputError
	_, err := ComputeSafetyStock(4.2, 14, 0.5)
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "service_level", invalid.Field)
}

func TestComputeSafetyStockRejectsBadDemand(t *testing.T) {
	_, err := ComputeSafetyStock(math.NaN(), 14, 0.90)
	require.Error(t, err)

	_, err = ComputeSafetyStock(-1, 14, 0.90)
	require.Error(t, err)
}

func TestZscoreLookup(t *testing.T) {
	z, err := Zscore(0.90)
	require.NoError(t, err)
	require.InDelta(t, 1.2816, z, 1e-9)

	_, err = Zscore(0.91)
	require.Error(t, err)
}
