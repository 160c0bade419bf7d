package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	marketplace, err := parseMarketplace(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), marketplace)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetTimeSeries(c *gin.Context) {
	marketplace, err := parseMarketplace(c)
	if err != nil {
		respondError(c, err)
		return
	}

	days, err := parseIntParam(c, "days", 30)
	if err != nil {
		respondError(c, err)
		return
	}

	series, err := h.service.GetTimeSeries(c.Request.Context(), marketplace, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marketplace": marketplace, "series": series})
}

func (h *DashboardHandler) GetTopProducts(c *gin.Context) {
	marketplace, err := parseMarketplace(c)
	if err != nil {
		respondError(c, err)
		return
	}

	days, err := parseIntParam(c, "days", 30)
	if err != nil {
		respondError(c, err)
		return
	}

	limit, err := parseIntParam(c, "limit", 5)
	if err != nil {
		respondError(c, err)
		return
	}

	top, err := h.service.GetTopProducts(c.Request.Context(), marketplace, days, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marketplace": marketplace, "products": top})
}
