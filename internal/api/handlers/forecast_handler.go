package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	marketplace, err := parseMarketplace(c)
	if err != nil {
		respondError(c, err)
		return
	}

	horizon, err := parseIntParam(c, "horizon_days", 30)
	if err != nil {
		respondError(c, err)
		return
	}

	forecast, err := h.service.GetForecast(c.Request.Context(), parseSKU(c), marketplace, horizon)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}
