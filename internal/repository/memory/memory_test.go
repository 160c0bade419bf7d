package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// Gapped series must be windowed by calendar days anchored at the latest
// sale, not by the last N recorded dates, so this repository returns the
// same window the SQL implementation does.
func TestSalesSeriesCalendarWindow(t *testing.T) {
	repo := New()
	repo.AddSales("SKU-1", "US", "2025-06-01", 5, 50)
	repo.AddSales("SKU-1", "US", "2025-06-10", 3, 30)
	repo.AddSales("SKU-1", "US", "2025-06-14", 2, 20)

	series, err := repo.SalesSeries(context.Background(), nil, "US", 7)
	require.NoError(t, err)

	require.Len(t, series, 2)
	require.Equal(t, "2025-06-10", series[0].Date)
	require.Equal(t, "2025-06-14", series[1].Date)
}

func TestSalesSeriesWindowCoversAllWhenWide(t *testing.T) {
	repo := New()
	repo.AddSales("SKU-1", "US", "2025-06-01", 5, 50)
	repo.AddSales("SKU-1", "US", "2025-06-14", 2, 20)

	series, err := repo.SalesSeries(context.Background(), nil, "US", 30)
	require.NoError(t, err)
	require.Len(t, series, 2)
}

func TestBacktestCalendarWindow(t *testing.T) {
	repo := New()
	repo.AddBacktest("SKU-1", "US", domain.BacktestPoint{Date: "2025-06-01", Actual: 10, Predicted: 9})
	repo.AddBacktest("SKU-1", "US", domain.BacktestPoint{Date: "2025-06-14", Actual: 10, Predicted: 11})

	points, err := repo.Backtest(context.Background(), nil, "US", 7)
	require.NoError(t, err)

	require.Len(t, points, 1)
	require.Equal(t, "2025-06-14", points[0].Date)
}
