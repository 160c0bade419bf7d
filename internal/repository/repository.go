// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
)

// MarketplaceAll selects every marketplace (the aggregate total).
const MarketplaceAll = "ALL"

// Replenishment provides the demand, backtest and inventory data the
// services compute over. A nil sku always means the marketplace aggregate.
// Implementations: postgres (production) and memory (tests, demo seeding).
type Replenishment interface {
	// DemandHistory returns one point per calendar day over the trailing
	// window, oldest first. Days with no recorded sales are filled with
	// zero-value points, so the estimator sees a gap-free series.
	DemandHistory(ctx context.Context, sku *string, marketplace string, days int) ([]domain.DatedPoint, error)

	// SalesSeries returns the raw daily units/revenue series for charts.
	SalesSeries(ctx context.Context, sku *string, marketplace string, days int) ([]domain.SalesPoint, error)

	// Backtest returns actual-vs-predicted points over the trailing window.
	Backtest(ctx context.Context, sku *string, marketplace string, days int) ([]domain.BacktestPoint, error)

	// CurrentStock returns the latest known inventory level, or nil when
	// no snapshot exists for the SKU.
	CurrentStock(ctx context.Context, sku *string, marketplace string) (*float64, error)

	// TopProducts returns the best sellers by units over the trailing window.
	TopProducts(ctx context.Context, marketplace string, days, limit int) ([]domain.TopProduct, error)

	// SKUs lists every known SKU in a marketplace.
	SKUs(ctx context.Context, marketplace string) ([]string, error)
}
