package replenish

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestProjectStockoutScenario(t *testing.T) {
	// current_inventory=60, daily_demand=4.2 -> ~14.29 days of cover.
	proj := ProjectStockout(floatPtr(60), 4.2, 14, "2025-06-30")
	require.NotNil(t, proj.DaysOfCover)
	require.InDelta(t, 14.29, *proj.DaysOfCover, 0.01)
	require.NotNil(t, proj.StockoutBeforeLeadTime)
	require.False(t, *proj.StockoutBeforeLeadTime)
	require.NotNil(t, proj.ExpectedStockoutDate)
	require.Equal(t, "2025-07-14", *proj.ExpectedStockoutDate)

	proj = ProjectStockout(floatPtr(60), 4.2, 20, "2025-06-30")
	require.NotNil(t, proj.StockoutBeforeLeadTime)
	require.True(t, *proj.StockoutBeforeLeadTime)
}

func TestProjectStockoutUnknownInventory(t *testing.T) {
	proj := ProjectStockout(nil, 4.2, 14, "2025-06-30")
	require.Nil(t, proj.DaysOfCover)
	require.Nil(t, proj.ExpectedStockoutDate)
	require.Nil(t, proj.StockoutBeforeLeadTime)
}

func TestProjectStockoutZeroDemand(t *testing.T) {
	for _, demand := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		proj := ProjectStockout(floatPtr(60), demand, 14, "2025-06-30")
		require.Nil(t, proj.DaysOfCover, "demand=%v", demand)
		require.Nil(t, proj.ExpectedStockoutDate)
		require.Nil(t, proj.StockoutBeforeLeadTime)
	}
}

func TestProjectStockoutNeverLeaksNonFinite(t *testing.T) {
	proj := ProjectStockout(floatPtr(60), 1e-300, 14, "2025-06-30")
	if proj.DaysOfCover != nil {
		require.False(t, math.IsInf(*proj.DaysOfCover, 0))
		require.False(t, math.IsNaN(*proj.DaysOfCover))
	}
}

func TestProjectStockoutBadSeriesEnd(t *testing.T) {
	proj := ProjectStockout(floatPtr(60), 4.2, 14, "")
	require.NotNil(t, proj.DaysOfCover)
	require.Nil(t, proj.ExpectedStockoutDate)
}
