package replenish

import (
	"math"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// EstimatorParams tunes the demand estimator. The dashboard historically
// hard-coded these in three different panels; they are configuration now.
type EstimatorParams struct {
	// WindowDays is how many most-recent points feed the mean and CV.
	WindowDays int
	// MinTrendPoints is the minimum history before a trend is reported.
	MinTrendPoints int
	// TrendThreshold is the relative change separating increasing or
	// decreasing from stable, e.g. 0.15 for +-15%.
	TrendThreshold float64
}

// DefaultEstimatorParams mirrors the product defaults: a 30 day window,
// at least a week of history for a trend, and a 15% stability band.
func DefaultEstimatorParams() EstimatorParams {
	return EstimatorParams{
		WindowDays:     30,
		MinTrendPoints: 7,
		TrendThreshold: 0.15,
	}
}

// EstimateDemand derives average daily demand, volatility and a trend and
// confidence classification from recent history. Missing calendar days must
// be filled with zero-value points by the caller before estimation; the
// estimator treats every supplied point as one day.
func EstimateDemand(points []domain.DatedPoint, params EstimatorParams) domain.DemandEstimate {
	if params.WindowDays <= 0 {
		params = DefaultEstimatorParams()
	}

	sorted := sortedByDate(points)
	if len(sorted) > params.WindowDays {
		sorted = sorted[len(sorted)-params.WindowDays:]
	}

	values := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		values = append(values, p.Value)
	}

	n := len(values)
	if n == 0 {
		return domain.DemandEstimate{
			Trend:      domain.TrendInsufficientData,
			Confidence: domain.ConfidenceLow,
		}
	}

	mean := meanOf(values)
	cv := 0.0
	if mean > 0 {
		cv = stddevOf(values, mean) / mean
	}

	est := domain.DemandEstimate{
		DailyDemand:  math.Max(0, mean),
		VolatilityCV: cv,
	}

	if n < params.MinTrendPoints {
		est.Trend = domain.TrendInsufficientData
		est.Confidence = domain.ConfidenceLow
		return est
	}

	est.Trend = classifyTrend(values, params.TrendThreshold)
	est.Confidence = classifyConfidence(cv, n)
	return est
}

// HorizonRange projects the expected total over the horizon, widened by a
// confidence-dependent band: tighter when confidence is high.
func HorizonRange(est domain.DemandEstimate, horizonDays int) (domain.ForecastRange, error) {
	if horizonDays <= 0 || horizonDays > 365 {
		return domain.ForecastRange{}, domain.NewInvalidInput("horizon_days", "must be between 1 and 365, got %d", horizonDays)
	}

	expected := est.DailyDemand * float64(horizonDays)
	band := BandMultiplier(est.Confidence)
	return domain.ForecastRange{
		Low:      math.Max(0, expected*(1-band)),
		Expected: expected,
		High:     expected * (1 + band),
	}, nil
}

// BandMultiplier maps confidence to the relative width of the forecast band.
func BandMultiplier(c domain.Confidence) float64 {
	switch c {
	case domain.ConfidenceHigh:
		return 0.15
	case domain.ConfidenceMedium:
		return 0.30
	default:
		return 0.50
	}
}

// classifyTrend compares the mean of the most recent third of the window
// against the earliest third.
func classifyTrend(values []float64, threshold float64) domain.Trend {
	third := len(values) / 3
	if third < 1 {
		third = 1
	}

	early := meanOf(values[:third])
	recent := meanOf(values[len(values)-third:])

	if early == 0 {
		if recent > 0 {
			return domain.TrendIncreasing
		}
		return domain.TrendStable
	}

	change := (recent - early) / early
	switch {
	case change > threshold:
		return domain.TrendIncreasing
	case change < -threshold:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func classifyConfidence(cv float64, n int) domain.Confidence {
	if cv > 0.6 || n < 14 {
		return domain.ConfidenceLow
	}
	if cv <= 0.25 && n >= 21 {
		return domain.ConfidenceHigh
	}
	return domain.ConfidenceMedium
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
