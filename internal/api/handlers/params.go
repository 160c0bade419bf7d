package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

// parseSKU returns nil for an absent sku, which selects the marketplace
// aggregate downstream.
func parseSKU(c *gin.Context) *string {
	sku := strings.TrimSpace(c.Query("sku"))
	if sku == "" {
		return nil
	}
	return &sku
}

// parseMarketplace accepts "ALL" or a two-letter country code.
func parseMarketplace(c *gin.Context) (string, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.DefaultQuery("marketplace", repository.MarketplaceAll)))
	if raw == repository.MarketplaceAll {
		return raw, nil
	}
	if len(raw) != 2 || !isAlpha(raw) {
		return "", domain.NewInvalidInput("marketplace", "must be %q or a two-letter country code, got %q", repository.MarketplaceAll, raw)
	}
	return raw, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// parseIntParam parses an optional integer query parameter with a default.
func parseIntParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidInput(name, "must be an integer, got %q", raw)
	}
	return value, nil
}

// parseServiceLevel parses the service_level parameter; range checking is
// the engine's job, this only rejects non-numeric input.
func parseServiceLevel(c *gin.Context, fallback float64) (float64, error) {
	raw := strings.TrimSpace(c.Query("service_level"))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewInvalidInput("service_level", "must be a number, got %q", raw)
	}
	return value, nil
}

// parseCurrentStock parses the optional current_stock_units override.
func parseCurrentStock(c *gin.Context) (*float64, error) {
	raw := strings.TrimSpace(c.Query("current_stock_units"))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewInvalidInput("current_stock_units", "must be an integer, got %q", raw)
	}
	if value < 0 {
		return nil, domain.NewInvalidInput("current_stock_units", "must be non-negative, got %d", value)
	}
	stock := float64(value)
	return &stock, nil
}

// respondError maps typed input errors to 400 and everything else to a
// retryable upstream failure. The caller retries manually; nothing here
// retries on its own.
func respondError(c *gin.Context, err error) {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason, "field": invalid.Field})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream data source unavailable, please retry"})
}
