package replenish

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

func dailySeries(t *testing.T, start string, values []float64) []domain.DatedPoint {
	t.Helper()
	day, err := time.Parse(dateLayout, start)
	require.NoError(t, err)

	points := make([]domain.DatedPoint, len(values))
	for i, v := range values {
		points[i] = domain.DatedPoint{Date: day.AddDate(0, 0, i).Format(dateLayout), Value: v}
	}
	return points
}

func TestSumRangeInclusiveBounds(t *testing.T) {
	points := dailySeries(t, "2025-06-01", []float64{1, 2, 3, 4, 5})

	require.Equal(t, 9.0, SumRange(points, "2025-06-02", "2025-06-04"))
	require.Equal(t, 15.0, SumRange(points, "2025-06-01", "2025-06-05"))
	require.Equal(t, 0.0, SumRange(points, "2025-07-01", "2025-07-31"))
}

func TestSumRangeSkipsNonFinite(t *testing.T) {
	points := []domain.DatedPoint{
		{Date: "2025-06-01", Value: 3},
		{Date: "2025-06-02", Value: math.NaN()},
		{Date: "2025-06-03", Value: math.Inf(1)},
		{Date: "2025-06-04", Value: 4},
	}
	require.Equal(t, 7.0, SumRange(points, "2025-06-01", "2025-06-30"))
}

func TestPctChange(t *testing.T) {
	require.Nil(t, PctChange(10, 0))
	require.Nil(t, PctChange(math.NaN(), 5))
	require.Nil(t, PctChange(10, math.Inf(1)))

	pct := PctChange(140, 100)
	require.NotNil(t, pct)
	require.Equal(t, 40.0, *pct)

	pct = PctChange(50, 100)
	require.NotNil(t, pct)
	require.Equal(t, -50.0, *pct)
}

func TestRolling7dComparison(t *testing.T) {
	// Previous week sums to 100, trailing week to 140.
	values := []float64{10, 10, 10, 10, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20}
	points := dailySeries(t, "2025-06-01", values)

	result := Rolling7dComparison(points)
	require.Equal(t, 140.0, result.Current)
	require.Equal(t, 100.0, result.Previous)
	require.NotNil(t, result.PctChange)
	require.Equal(t, 40.0, *result.PctChange)
}

func TestRolling7dComparisonUnsortedInput(t *testing.T) {
	points := dailySeries(t, "2025-06-01", []float64{10, 10, 10, 10, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20})
	// Shuffle deterministically by swapping ends.
	points[0], points[len(points)-1] = points[len(points)-1], points[0]

	result := Rolling7dComparison(points)
	require.Equal(t, 140.0, result.Current)
	require.Equal(t, 100.0, result.Previous)
}

func TestRolling7dComparisonShortSeries(t *testing.T) {
	result := Rolling7dComparison(dailySeries(t, "2025-06-01", []float64{5}))
	require.Equal(t, Rolling7dResult{}, result)

	result = Rolling7dComparison(nil)
	require.Equal(t, Rolling7dResult{}, result)
}

func TestRolling7dComparisonZeroPrevious(t *testing.T) {
	values := []float64{0, 0, 0, 0, 0, 0, 0, 10, 10, 10, 10, 10, 10, 10}
	result := Rolling7dComparison(dailySeries(t, "2025-06-01", values))

	require.Equal(t, 70.0, result.Current)
	require.Equal(t, 0.0, result.Previous)
	require.Nil(t, result.PctChange)
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2025-06-30", 14)
	require.NoError(t, err)
	require.Equal(t, "2025-07-14", d)

	d, err = AddDays("2025-07-14", -20)
	require.NoError(t, err)
	require.Equal(t, "2025-06-24", d)

	_, err = AddDays("not-a-date", 1)
	require.Error(t, err)
}
