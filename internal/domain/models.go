// internal/domain/models.go
package domain

// DatedPoint is a single observation of a daily metric. Date is an ISO
// YYYY-MM-DD string; the fixed width makes lexicographic order equal to
// chronological order, which the engine relies on for windowing.
type DatedPoint struct {
	Date  string  `json:"date" db:"date"`
	Value float64 `json:"value" db:"value"`
}

// SalesPoint is one day of sales history for a SKU (or marketplace total).
type SalesPoint struct {
	Date    string  `json:"date" db:"date"`
	Units   float64 `json:"units" db:"units"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

// BacktestPoint pairs an actual observation with what the forecaster
// predicted for that day. Used only for accuracy grading.
type BacktestPoint struct {
	Date      string  `json:"date" db:"date"`
	Actual    float64 `json:"actual" db:"actual"`
	Predicted float64 `json:"predicted" db:"predicted"`
}

// ForecastRange is a low/expected/high band; Low <= Expected <= High.
type ForecastRange struct {
	Low      float64 `json:"low"`
	Expected float64 `json:"expected"`
	High     float64 `json:"high"`
}

// Trend classifies the direction of recent demand.
type Trend string

const (
	TrendIncreasing       Trend = "increasing"
	TrendStable           Trend = "stable"
	TrendDecreasing       Trend = "decreasing"
	TrendInsufficientData Trend = "insufficient_data"
)

// Confidence grades how much the demand estimate can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DemandEstimate is the output of the demand estimator.
type DemandEstimate struct {
	DailyDemand  float64    `json:"daily_demand_estimate"`
	VolatilityCV float64    `json:"volatility_cv"`
	Trend        Trend      `json:"trend"`
	Confidence   Confidence `json:"confidence"`
}

// QualityTier grades recent backtest accuracy from MAPE alone.
type QualityTier string

const (
	QualityGreat          QualityTier = "Great"
	QualityGood           QualityTier = "Good"
	QualityWatch          QualityTier = "Watch"
	QualityPoor           QualityTier = "Poor"
	QualityNoBacktestData QualityTier = "NoBacktestData"
)

// RestockStatus is the planner's overall verdict for a SKU.
type RestockStatus string

const (
	StatusHealthy          RestockStatus = "healthy"
	StatusWatch            RestockStatus = "watch"
	StatusUrgent           RestockStatus = "urgent"
	StatusInsufficientData RestockStatus = "insufficient_data"
)

// RestockPlan holds the safety-stock arithmetic for one SKU.
// DaysOfCover, ExpectedStockoutDate and StockoutBeforeLeadTime are nil
// together whenever current inventory is unknown or daily demand is zero.
type RestockPlan struct {
	AvgDailyDemand         float64     `json:"avg_daily_demand"`
	LeadTimeDays           int         `json:"lead_time_days"`
	ServiceLevel           float64     `json:"service_level"`
	LeadTimeDemand         float64     `json:"lead_time_demand"`
	SafetyStock            float64     `json:"safety_stock"`
	ReorderQuantity        int         `json:"reorder_quantity"`
	MAPE30d                *float64    `json:"mape_30d"`
	QualityTier            QualityTier `json:"quality_tier"`
	DaysOfCover            *float64    `json:"days_of_cover"`
	ExpectedStockoutDate   *string     `json:"expected_stockout_date"`
	StockoutBeforeLeadTime *bool       `json:"stockout_before_lead_time"`
}

// RestockAction is the composed per-SKU decision record served to the UI.
type RestockAction struct {
	SKU                     *string       `json:"sku"`
	Marketplace             string        `json:"marketplace"`
	DailyDemandEstimate     float64       `json:"daily_demand_estimate"`
	DemandRangeDaily        ForecastRange `json:"demand_range_daily"`
	DaysOfCoverExpected     *float64      `json:"days_of_cover_expected"`
	DaysOfCoverLow          *float64      `json:"days_of_cover_low"`
	DaysOfCoverHigh         *float64      `json:"days_of_cover_high"`
	StockoutDateExpected    *string       `json:"stockout_date_expected"`
	OrderByDate             *string       `json:"order_by_date"`
	SuggestedReorderQtyExp  int           `json:"suggested_reorder_qty_expected"`
	SuggestedReorderQtyHigh int           `json:"suggested_reorder_qty_high"`
	Status                  RestockStatus `json:"status"`
	Recommendation          string        `json:"recommendation"`
	Reasoning               []string      `json:"reasoning"`
}

// RollingComparison compares the trailing 7 days against the 7 days before.
// Percent changes are nil when the previous window sums to zero.
type RollingComparison struct {
	CurrentUnits     float64  `json:"current_units"`
	PreviousUnits    float64  `json:"previous_units"`
	UnitsPctChange   *float64 `json:"units_pct_change"`
	CurrentRevenue   float64  `json:"current_revenue"`
	PreviousRevenue  float64  `json:"previous_revenue"`
	RevenuePctChange *float64 `json:"revenue_pct_change"`
}

// DashboardSummary is the headline block on the seller dashboard.
type DashboardSummary struct {
	Marketplace string            `json:"marketplace"`
	AsOf        string            `json:"as_of"`
	Comparison  RollingComparison `json:"comparison"`
	TopProducts []TopProduct      `json:"top_products"`
}

// TopProduct is one row of the top-sellers table.
type TopProduct struct {
	SKU     string  `json:"sku" db:"sku"`
	Title   string  `json:"title" db:"title"`
	Units   float64 `json:"units" db:"units"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

// ForecastPoint is one projected day in a forecast response.
type ForecastPoint struct {
	Date     string  `json:"date"`
	Low      float64 `json:"low"`
	Expected float64 `json:"expected"`
	High     float64 `json:"high"`
}

// ForecastIntelligence is the summary block of a forecast response.
type ForecastIntelligence struct {
	Trend               Trend         `json:"trend"`
	Confidence          Confidence    `json:"confidence"`
	DailyDemandEstimate float64       `json:"daily_demand_estimate"`
	VolatilityCV        float64       `json:"volatility_cv"`
	ForecastRange       ForecastRange `json:"forecast_range"`
}

// Forecast is the full forecast response for a SKU/marketplace.
type Forecast struct {
	SKU          *string              `json:"sku"`
	Marketplace  string               `json:"marketplace"`
	HorizonDays  int                  `json:"horizon_days"`
	Intelligence ForecastIntelligence `json:"intelligence"`
	Series       []ForecastPoint      `json:"series"`
}
