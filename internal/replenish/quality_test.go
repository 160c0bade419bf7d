package replenish

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestClassifyQualityTiers(t *testing.T) {
	cases := []struct {
		mape float64
		want domain.QualityTier
	}{
		{0.0, domain.QualityGreat},
		{0.15, domain.QualityGreat}, // inclusive boundary
		{0.151, domain.QualityGood},
		{0.25, domain.QualityGood},
		{0.2501, domain.QualityWatch},
		{0.40, domain.QualityWatch},
		{0.41, domain.QualityPoor},
		{2.5, domain.QualityPoor},
	}

	for _, tc := range cases {
		mape := tc.mape
		require.Equal(t, tc.want, ClassifyQuality(&mape, nil), "mape=%v", tc.mape)
	}
}

func TestClassifyQualityNoData(t *testing.T) {
	require.Equal(t, domain.QualityNoBacktestData, ClassifyQuality(nil, nil))

	nan := math.NaN()
	require.Equal(t, domain.QualityNoBacktestData, ClassifyQuality(&nan, nil))

	// Zero backtest points wins regardless of MAPE.
	mape := 0.1
	require.Equal(t, domain.QualityNoBacktestData, ClassifyQuality(&mape, intPtr(0)))
	require.Equal(t, domain.QualityGreat, ClassifyQuality(&mape, intPtr(30)))
}

func TestMAPE(t *testing.T) {
	points := []domain.BacktestPoint{
		{Date: "2025-06-01", Actual: 10, Predicted: 9},  // 0.1
		{Date: "2025-06-02", Actual: 10, Predicted: 13}, // 0.3
	}
	mape := MAPE(points)
	require.NotNil(t, mape)
	require.InDelta(t, 0.2, *mape, 1e-9)
}

func TestMAPESkipsUnusablePoints(t *testing.T) {
	points := []domain.BacktestPoint{
		{Date: "2025-06-01", Actual: 0, Predicted: 5},
		{Date: "2025-06-02", Actual: -2, Predicted: 5},
		{Date: "2025-06-03", Actual: math.NaN(), Predicted: 5},
		{Date: "2025-06-04", Actual: 10, Predicted: math.NaN()},
		{Date: "2025-06-05", Actual: 10, Predicted: 8}, // 0.2
	}
	mape := MAPE(points)
	require.NotNil(t, mape)
	require.InDelta(t, 0.2, *mape, 1e-9)
}

func TestMAPEEmpty(t *testing.T) {
	require.Nil(t, MAPE(nil))
	require.Nil(t, MAPE([]domain.BacktestPoint{{Date: "2025-06-01", Actual: 0, Predicted: 3}}))
}

func TestMAE(t *testing.T) {
	points := []domain.BacktestPoint{
		{Date: "2025-06-01", Actual: 10, Predicted: 8},
		{Date: "2025-06-02", Actual: 10, Predicted: 14},
	}
	mae := MAE(points)
	require.NotNil(t, mae)
	require.InDelta(t, 3.0, *mae, 1e-9)

	require.Nil(t, MAE(nil))
}
