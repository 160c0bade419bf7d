package repository

import (
	"sort"
	"time"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

const dateLayout = "2006-01-02"

// FillDailyGaps expands a sparse daily series into a gap-free window of the
// given length ending at the latest observed date. Missing days become
// zero-value points; the demand estimator treats every point as one day, so
// days without sales must count as zero demand rather than disappear.
func FillDailyGaps(points []domain.DatedPoint, days int) []domain.DatedPoint {
	if len(points) == 0 || days <= 0 {
		return nil
	}

	byDate := make(map[string]float64, len(points))
	last := ""
	for _, p := range points {
		byDate[p.Date] += p.Value
		if p.Date > last {
			last = p.Date
		}
	}

	end, err := time.Parse(dateLayout, last)
	if err != nil {
		// Unparsable dates: fall back to the raw series, sorted.
		sorted := append([]domain.DatedPoint(nil), points...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
		return sorted
	}

	filled := make([]domain.DatedPoint, 0, days)
	for day := end.AddDate(0, 0, -(days - 1)); !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		filled = append(filled, domain.DatedPoint{Date: date, Value: byDate[date]})
	}
	return filled
}
