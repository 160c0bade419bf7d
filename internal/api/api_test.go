package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository/memory"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Replenish: config.ReplenishConfig{
			DemandWindowDays:    30,
			MinTrendPoints:      7,
			TrendThreshold:      0.15,
			UrgentBufferDays:    3,
			WatchBufferDays:     10,
			LowDemandFactor:     0.8,
			HighDemandFactor:    1.2,
			DefaultLeadTimeDays: 14,
			DefaultServiceLevel: 0.90,
		},
	}
}

func testRouter(t *testing.T, repo *memory.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	services := &Services{
		Dashboard: service.NewDashboardService(repo, nil),
		Forecast:  service.NewForecastService(repo, cfg.Replenish),
		Restock:   service.NewRestockService(repo, nil, cfg.Replenish),
	}
	return NewRouter(services, cfg)
}

func seedSteady(repo *memory.Repository, sku string, unitsPerDay float64) {
	day, _ := time.Parse("2006-01-02", "2025-06-01")
	for i := 0; i < 30; i++ {
		date := day.AddDate(0, 0, i).Format("2006-01-02")
		repo.AddSales(sku, "US", date, unitsPerDay, unitsPerDay*12)
	}
	repo.AddProduct(sku, "US", sku+" title")
}

func doGet(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthRoute(t *testing.T) {
	router := testRouter(t, memory.New())
	w := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRestockPlanRoute(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)
	repo.SetStock("SKU-1", "US", 60)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/restock/plan?sku=SKU-1&marketplace=US&lead_time_days=14&service_level=0.90")
	require.Equal(t, http.StatusOK, w.Code)

	var plan map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Equal(t, float64(69), plan["reorder_quantity"])
	require.Equal(t, "NoBacktestData", plan["quality_tier"])
	require.Nil(t, plan["mape_30d"])
	require.NotNil(t, plan["days_of_cover"])
}

func TestRestockPlanStockOverride(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/restock/plan?sku=SKU-1&marketplace=US&current_stock_units=60&lead_time_days=20")
	require.Equal(t, http.StatusOK, w.Code)

	var plan map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Equal(t, true, plan["stockout_before_lead_time"])
}

func TestRestockPlanBadServiceLevel(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/restock/plan?sku=SKU-1&marketplace=US&service_level=0.77")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "service_level", body["field"])
}

func TestRestockPlanNegativeStockRejected(t *testing.T) {
	router := testRouter(t, memory.New())
	w := doGet(t, router, "/api/v1/restock/plan?sku=SKU-1&marketplace=US&current_stock_units=-5")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestockActionsRoute(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)
	repo.SetStock("SKU-1", "US", 60)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/restock/actions?marketplace=US")
	require.Equal(t, http.StatusOK, w.Code)

	var action map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &action))
	require.Equal(t, "urgent", action["status"])
	require.NotEmpty(t, action["reasoning"])
}

func TestForecastRoute(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/forecast?sku=SKU-1&marketplace=US&horizon_days=30")
	require.Equal(t, http.StatusOK, w.Code)

	var forecast map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forecast))
	series, ok := forecast["series"].([]interface{})
	require.True(t, ok)
	require.Len(t, series, 30)
}

func TestForecastBadHorizon(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/forecast?sku=SKU-1&marketplace=US&horizon_days=0")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardSummaryRoute(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 10)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/dashboard/summary?marketplace=US")
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, "US", summary["marketplace"])
	cmp, ok := summary["comparison"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(70), cmp["current_units"])
}

func TestDashboardBadMarketplace(t *testing.T) {
	router := testRouter(t, memory.New())
	w := doGet(t, router, "/api/v1/dashboard/summary?marketplace=USA1")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarketplaceCaseInsensitive(t *testing.T) {
	repo := memory.New()
	seedSteady(repo, "SKU-1", 4.2)

	router := testRouter(t, repo)
	w := doGet(t, router, "/api/v1/dashboard/timeseries?marketplace=us&days=30")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "US", body["marketplace"])
}
