// Package replenish holds the pure replenishment and forecast-quality
// engine: rolling window stats, demand estimation, safety stock, stockout
// projection and the composed restock planner. Everything here is a pure
// function of its inputs; callers inject the reference date, so results
// are deterministic and directly testable.
package replenish

import (
	"math"
	"sort"
	"time"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

const dateLayout = "2006-01-02"

// Rolling7dResult holds the trailing-week vs previous-week sums.
type Rolling7dResult struct {
	Current   float64
	Previous  float64
	PctChange *float64
}

// SumRange sums point values whose date falls in [start, end] inclusive.
// Non-finite values and out-of-range entries are skipped, not errors.
// Dates are compared as ISO strings; the fixed YYYY-MM-DD width makes
// lexicographic order chronological.
func SumRange(points []domain.DatedPoint, start, end string) float64 {
	var total float64
	for _, p := range points {
		if p.Date < start || p.Date > end {
			continue
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		total += p.Value
	}
	return total
}

// PctChange returns ((current-previous)/previous)*100, or nil when the
// previous value is zero or either input is non-finite. Infinity and NaN
// never leak to the caller.
func PctChange(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	if math.IsNaN(current) || math.IsInf(current, 0) || math.IsNaN(previous) || math.IsInf(previous, 0) {
		return nil
	}
	pct := (current - previous) / previous * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}

// Rolling7dComparison sums the last 7 days ending at the series' last date
// and the 7 days before that. Fewer than 2 points yields a zeroed result.
func Rolling7dComparison(points []domain.DatedPoint) Rolling7dResult {
	if len(points) < 2 {
		return Rolling7dResult{}
	}

	sorted := sortedByDate(points)
	last := sorted[len(sorted)-1].Date
	end, err := time.Parse(dateLayout, last)
	if err != nil {
		return Rolling7dResult{}
	}

	currentStart := end.AddDate(0, 0, -6).Format(dateLayout)
	previousEnd := end.AddDate(0, 0, -7).Format(dateLayout)
	previousStart := end.AddDate(0, 0, -13).Format(dateLayout)

	current := SumRange(sorted, currentStart, last)
	previous := SumRange(sorted, previousStart, previousEnd)

	return Rolling7dResult{
		Current:   current,
		Previous:  previous,
		PctChange: PctChange(current, previous),
	}
}

// LastDate returns the latest date in the series, or "" for an empty one.
func LastDate(points []domain.DatedPoint) string {
	last := ""
	for _, p := range points {
		if p.Date > last {
			last = p.Date
		}
	}
	return last
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

// sortedByDate returns a copy sorted ascending by date. Series may arrive
// unsorted; all windowing assumes ascending order.
func sortedByDate(points []domain.DatedPoint) []domain.DatedPoint {
	sorted := append([]domain.DatedPoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}
