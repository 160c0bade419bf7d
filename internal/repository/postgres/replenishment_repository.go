package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

type replenishmentRepository struct {
	db *sqlx.DB
}

func NewReplenishmentRepository(db *sqlx.DB) repository.Replenishment {
	return &replenishmentRepository{db: db}
}

// scopeClause builds the sku/marketplace filter shared by every query.
// A nil sku aggregates over all SKUs; marketplace "ALL" skips the filter.
func scopeClause(alias string, sku *string, marketplace string, argCounter *int, args *[]interface{}) string {
	var conditions []string

	if sku != nil {
		conditions = append(conditions, fmt.Sprintf("%ssku = $%d", alias, *argCounter))
		*args = append(*args, *sku)
		*argCounter++
	}

	if marketplace != "" && !strings.EqualFold(marketplace, repository.MarketplaceAll) {
		conditions = append(conditions, fmt.Sprintf("%smarketplace = $%d", alias, *argCounter))
		*args = append(*args, strings.ToUpper(marketplace))
		*argCounter++
	}

	if len(conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(conditions, " AND ")
}

func (r *replenishmentRepository) DemandHistory(ctx context.Context, sku *string, marketplace string, days int) ([]domain.DatedPoint, error) {
	if days <= 0 {
		days = 30
	}

	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("", sku, marketplace, &argCounter, &args)
	innerScope := scopeClause("", sku, marketplace, &argCounter, &args)
	daysArg := argCounter
	args = append(args, days)

	query := fmt.Sprintf(`
		SELECT to_char(sale_date, 'YYYY-MM-DD') AS date,
		       SUM(units) AS value
		FROM demand_history
		WHERE %s
		  AND sale_date > (
		      SELECT COALESCE(MAX(sale_date), CURRENT_DATE)
		      FROM demand_history
		      WHERE %s
		  ) - ($%d::int * INTERVAL '1 day')
		GROUP BY sale_date
		ORDER BY sale_date
	`, scope, innerScope, daysArg)

	var points []domain.DatedPoint
	if err := r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("error getting demand history: %w", err)
	}

	return repository.FillDailyGaps(points, days), nil
}

func (r *replenishmentRepository) SalesSeries(ctx context.Context, sku *string, marketplace string, days int) ([]domain.SalesPoint, error) {
	if days <= 0 {
		days = 30
	}

	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("", sku, marketplace, &argCounter, &args)
	innerScope := scopeClause("", sku, marketplace, &argCounter, &args)
	daysArg := argCounter
	args = append(args, days)

	query := fmt.Sprintf(`
		SELECT to_char(sale_date, 'YYYY-MM-DD') AS date,
		       SUM(units) AS units,
		       SUM(revenue) AS revenue
		FROM demand_history
		WHERE %s
		  AND sale_date > (
		      SELECT COALESCE(MAX(sale_date), CURRENT_DATE)
		      FROM demand_history
		      WHERE %s
		  ) - ($%d::int * INTERVAL '1 day')
		GROUP BY sale_date
		ORDER BY sale_date
	`, scope, innerScope, daysArg)

	var points []domain.SalesPoint
	if err := r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("error getting sales series: %w", err)
	}

	return points, nil
}

func (r *replenishmentRepository) Backtest(ctx context.Context, sku *string, marketplace string, days int) ([]domain.BacktestPoint, error) {
	if days <= 0 {
		days = 30
	}

	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("", sku, marketplace, &argCounter, &args)
	innerScope := scopeClause("", sku, marketplace, &argCounter, &args)
	daysArg := argCounter
	args = append(args, days)

	query := fmt.Sprintf(`
		SELECT to_char(day, 'YYYY-MM-DD') AS date,
		       SUM(actual_units) AS actual,
		       SUM(predicted_units) AS predicted
		FROM forecast_backtest
		WHERE %s
		  AND day > (
		      SELECT COALESCE(MAX(day), CURRENT_DATE)
		      FROM forecast_backtest
		      WHERE %s
		  ) - ($%d::int * INTERVAL '1 day')
		GROUP BY day
		ORDER BY day
	`, scope, innerScope, daysArg)

	var points []domain.BacktestPoint
	if err := r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("error getting backtest points: %w", err)
	}

	return points, nil
}

func (r *replenishmentRepository) CurrentStock(ctx context.Context, sku *string, marketplace string) (*float64, error) {
	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("", sku, marketplace, &argCounter, &args)

	// Sum the latest snapshot per SKU so the aggregate view is consistent
	// with the per-SKU one.
	query := fmt.Sprintf(`
		SELECT SUM(units)
		FROM (
		    SELECT DISTINCT ON (sku, marketplace) units
		    FROM inventory_levels
		    WHERE %s
		    ORDER BY sku, marketplace, as_of DESC
		) latest
	`, scope)

	var total sql.NullFloat64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return nil, fmt.Errorf("error getting current stock: %w", err)
	}

	if !total.Valid {
		return nil, nil
	}
	return &total.Float64, nil
}

func (r *replenishmentRepository) TopProducts(ctx context.Context, marketplace string, days, limit int) ([]domain.TopProduct, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 10
	}

	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("h.", nil, marketplace, &argCounter, &args)
	innerScope := scopeClause("", nil, marketplace, &argCounter, &args)
	daysArg := argCounter
	args = append(args, days)
	limitArg := argCounter + 1
	args = append(args, limit)

	// Anchored at the latest recorded sale like the other window queries,
	// so stale demo data still produces a ranking.
	query := fmt.Sprintf(`
		SELECT h.sku,
		       COALESCE(MAX(p.title), h.sku) AS title,
		       SUM(h.units) AS units,
		       SUM(h.revenue) AS revenue
		FROM demand_history h
		LEFT JOIN products p ON p.sku = h.sku AND p.marketplace = h.marketplace
		WHERE %s
		  AND h.sale_date > (
		      SELECT COALESCE(MAX(sale_date), CURRENT_DATE)
		      FROM demand_history
		      WHERE %s
		  ) - ($%d::int * INTERVAL '1 day')
		GROUP BY h.sku
		ORDER BY units DESC, h.sku
		LIMIT $%d
	`, scope, innerScope, daysArg, limitArg)

	var products []domain.TopProduct
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("error getting top products: %w", err)
	}

	return products, nil
}

func (r *replenishmentRepository) SKUs(ctx context.Context, marketplace string) ([]string, error) {
	args := []interface{}{}
	argCounter := 1
	scope := scopeClause("", nil, marketplace, &argCounter, &args)

	query := fmt.Sprintf(`
		SELECT DISTINCT sku
		FROM products
		WHERE %s
		ORDER BY sku
	`, scope)

	var skus []string
	if err := r.db.SelectContext(ctx, &skus, query, args...); err != nil {
		return nil, fmt.Errorf("error listing skus: %w", err)
	}

	return skus, nil
}
