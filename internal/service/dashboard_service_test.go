package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository/memory"
)

func seedDailySales(repo *memory.Repository, sku, marketplace, start string, unitsPerDay []float64, unitPrice float64) {
	day, _ := time.Parse("2006-01-02", start)
	for i, units := range unitsPerDay {
		date := day.AddDate(0, 0, i).Format("2006-01-02")
		repo.AddSales(sku, marketplace, date, units, units*unitPrice)
	}
}

func testReplenishConfig() config.ReplenishConfig {
	return config.ReplenishConfig{
		DemandWindowDays:    30,
		MinTrendPoints:      7,
		TrendThreshold:      0.15,
		UrgentBufferDays:    3,
		WatchBufferDays:     10,
		LowDemandFactor:     0.8,
		HighDemandFactor:    1.2,
		DefaultLeadTimeDays: 14,
		DefaultServiceLevel: 0.90,
	}
}

func TestDashboardSummaryComparison(t *testing.T) {
	repo := memory.New()
	// Previous week: 10 units/day, trailing week: 20 units/day.
	values := []float64{10, 10, 10, 10, 10, 10, 10, 20, 20, 20, 20, 20, 20, 20}
	seedDailySales(repo, "SKU-1", "US", "2025-06-01", values, 5)
	repo.AddProduct("SKU-1", "US", "Widget")

	svc := NewDashboardService(repo, nil)
	summary, err := svc.GetSummary(context.Background(), "US")
	require.NoError(t, err)

	require.Equal(t, "2025-06-14", summary.AsOf)
	require.Equal(t, 140.0, summary.Comparison.CurrentUnits)
	require.Equal(t, 70.0, summary.Comparison.PreviousUnits)
	require.NotNil(t, summary.Comparison.UnitsPctChange)
	require.InDelta(t, 100.0, *summary.Comparison.UnitsPctChange, 1e-9)
	require.NotNil(t, summary.Comparison.RevenuePctChange)
	require.InDelta(t, 100.0, *summary.Comparison.RevenuePctChange, 1e-9)

	require.Len(t, summary.TopProducts, 1)
	require.Equal(t, "Widget", summary.TopProducts[0].Title)
}

func TestDashboardSummaryEmptyMarketplace(t *testing.T) {
	svc := NewDashboardService(memory.New(), nil)
	summary, err := svc.GetSummary(context.Background(), "US")
	require.NoError(t, err)
	require.Equal(t, 0.0, summary.Comparison.CurrentUnits)
	require.Nil(t, summary.Comparison.UnitsPctChange)
	require.Empty(t, summary.TopProducts)
}

func TestDashboardTopProductsOrdering(t *testing.T) {
	repo := memory.New()
	seedDailySales(repo, "SKU-A", "US", "2025-06-01", []float64{1, 1, 1}, 10)
	seedDailySales(repo, "SKU-B", "US", "2025-06-01", []float64{5, 5, 5}, 10)
	repo.AddProduct("SKU-A", "US", "Alpha")
	repo.AddProduct("SKU-B", "US", "Beta")

	svc := NewDashboardService(repo, nil)
	top, err := svc.GetTopProducts(context.Background(), "US", 30, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "SKU-B", top[0].SKU)
	require.Equal(t, 15.0, top[0].Units)
}

func TestDashboardTimeSeries(t *testing.T) {
	repo := memory.New()
	seedDailySales(repo, "SKU-1", "US", "2025-06-01", []float64{2, 4, 6}, 10)

	svc := NewDashboardService(repo, nil)
	series, err := svc.GetTimeSeries(context.Background(), "US", 30)
	require.NoError(t, err)
	require.Len(t, series, 3)
	require.Equal(t, 2.0, series[0].Units)
	require.Equal(t, 60.0, series[2].Revenue)
}
