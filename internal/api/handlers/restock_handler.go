package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
)

type RestockHandler struct {
	service *service.RestockService
	cfg     config.ReplenishConfig
}

func NewRestockHandler(service *service.RestockService, cfg config.ReplenishConfig) *RestockHandler {
	return &RestockHandler{service: service, cfg: cfg}
}

func (h *RestockHandler) parseQuery(c *gin.Context) (service.RestockQuery, error) {
	var query service.RestockQuery

	marketplace, err := parseMarketplace(c)
	if err != nil {
		return query, err
	}

	leadTime, err := parseIntParam(c, "lead_time_days", h.cfg.DefaultLeadTimeDays)
	if err != nil {
		return query, err
	}

	serviceLevel, err := parseServiceLevel(c, h.cfg.DefaultServiceLevel)
	if err != nil {
		return query, err
	}

	stock, err := parseCurrentStock(c)
	if err != nil {
		return query, err
	}

	query = service.RestockQuery{
		SKU:          parseSKU(c),
		Marketplace:  marketplace,
		LeadTimeDays: leadTime,
		ServiceLevel: serviceLevel,
		CurrentStock: stock,
	}
	return query, nil
}

func (h *RestockHandler) GetPlan(c *gin.Context) {
	query, err := h.parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.service.GetPlan(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *RestockHandler) GetActions(c *gin.Context) {
	query, err := h.parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	action, err := h.service.GetActions(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, action)
}
