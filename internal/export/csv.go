package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

var actionHeader = []string{
	"sku",
	"marketplace",
	"status",
	"daily_demand_estimate",
	"days_of_cover_expected",
	"stockout_date_expected",
	"order_by_date",
	"suggested_reorder_qty_expected",
	"suggested_reorder_qty_high",
	"recommendation",
}

// ActionsCSV renders restock actions as a CSV report, one row per SKU.
// Unknown values render as empty cells rather than zeroes so a spreadsheet
// reader can tell "no data" from "zero days of cover".
func ActionsCSV(actions []domain.RestockAction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(actionHeader); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for _, action := range actions {
		row := []string{
			strOrEmpty(action.SKU),
			action.Marketplace,
			string(action.Status),
			formatFloat(action.DailyDemandEstimate),
			floatOrEmpty(action.DaysOfCoverExpected),
			strOrEmpty(action.StockoutDateExpected),
			strOrEmpty(action.OrderByDate),
			strconv.Itoa(action.SuggestedReorderQtyExp),
			strconv.Itoa(action.SuggestedReorderQtyHigh),
			action.Recommendation,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
