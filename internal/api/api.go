// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/api/handlers"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/api/middleware"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
)

type Services struct {
	Dashboard *service.DashboardService
	Forecast  *service.ForecastService
	Restock   *service.RestockService
}

func NewRouter(services *Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			dashboardGroup := apiGroup.Group("/dashboard")
			{
				dashboardGroup.GET("/summary", dashboardHandler.GetSummary)
				dashboardGroup.GET("/timeseries", dashboardHandler.GetTimeSeries)
				dashboardGroup.GET("/top_products", dashboardHandler.GetTopProducts)
			}
		}

		if services.Forecast != nil {
			forecastHandler := handlers.NewForecastHandler(services.Forecast)
			apiGroup.GET("/forecast", forecastHandler.GetForecast)
		}

		if services.Restock != nil {
			restockHandler := handlers.NewRestockHandler(services.Restock, cfg.Replenish)
			restockGroup := apiGroup.Group("/restock")
			{
				restockGroup.GET("/plan", restockHandler.GetPlan)
				restockGroup.GET("/actions", restockHandler.GetActions)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
