// Package memory is an in-memory Replenishment repository. It replaces the
// legacy module-level demo stores with an injected instance, so every test
// or demo run gets a fresh, isolated dataset.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/domain"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository"
)

type salesRow struct {
	sku         string
	marketplace string
	date        string
	units       float64
	revenue     float64
}

type backtestRow struct {
	sku         string
	marketplace string
	point       domain.BacktestPoint
}

type stockRow struct {
	sku         string
	marketplace string
	units       float64
}

type productRow struct {
	sku         string
	marketplace string
	title       string
}

// Repository implements repository.Replenishment over in-memory slices.
type Repository struct {
	mu       sync.RWMutex
	sales    []salesRow
	backtest []backtestRow
	stock    map[string]stockRow
	products []productRow
}

var _ repository.Replenishment = (*Repository)(nil)

func New() *Repository {
	return &Repository{stock: make(map[string]stockRow)}
}

// AddSales records one day of sales for a SKU.
func (r *Repository) AddSales(sku, marketplace, date string, units, revenue float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, salesRow{sku: sku, marketplace: upper(marketplace), date: date, units: units, revenue: revenue})
}

// AddBacktest records one actual-vs-predicted backtest day.
func (r *Repository) AddBacktest(sku, marketplace string, point domain.BacktestPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backtest = append(r.backtest, backtestRow{sku: sku, marketplace: upper(marketplace), point: point})
}

// SetStock replaces the current inventory snapshot for a SKU.
func (r *Repository) SetStock(sku, marketplace string, units float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sku + "|" + upper(marketplace)
	r.stock[key] = stockRow{sku: sku, marketplace: upper(marketplace), units: units}
}

// AddProduct registers a SKU with its display title.
func (r *Repository) AddProduct(sku, marketplace, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, productRow{sku: sku, marketplace: upper(marketplace), title: title})
}

func (r *Repository) DemandHistory(_ context.Context, sku *string, marketplace string, days int) ([]domain.DatedPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := make(map[string]float64)
	for _, row := range r.sales {
		if !r.matches(row.sku, row.marketplace, sku, marketplace) {
			continue
		}
		byDate[row.date] += row.units
	}

	points := make([]domain.DatedPoint, 0, len(byDate))
	for date, units := range byDate {
		points = append(points, domain.DatedPoint{Date: date, Value: units})
	}
	return repository.FillDailyGaps(points, days), nil
}

func (r *Repository) SalesSeries(_ context.Context, sku *string, marketplace string, days int) ([]domain.SalesPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := make(map[string]*domain.SalesPoint)
	for _, row := range r.sales {
		if !r.matches(row.sku, row.marketplace, sku, marketplace) {
			continue
		}
		p, ok := byDate[row.date]
		if !ok {
			p = &domain.SalesPoint{Date: row.date}
			byDate[row.date] = p
		}
		p.Units += row.units
		p.Revenue += row.revenue
	}

	points := make([]domain.SalesPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	if days > 0 && len(points) > 0 {
		cutoff := windowCutoff(points[len(points)-1].Date, days)
		i := sort.Search(len(points), func(i int) bool { return points[i].Date >= cutoff })
		points = points[i:]
	}
	return points, nil
}

func (r *Repository) Backtest(_ context.Context, sku *string, marketplace string, days int) ([]domain.BacktestPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var points []domain.BacktestPoint
	for _, row := range r.backtest {
		if !r.matches(row.sku, row.marketplace, sku, marketplace) {
			continue
		}
		points = append(points, row.point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	if days > 0 && len(points) > 0 {
		cutoff := windowCutoff(points[len(points)-1].Date, days)
		i := sort.Search(len(points), func(i int) bool { return points[i].Date >= cutoff })
		points = points[i:]
	}
	return points, nil
}

func (r *Repository) CurrentStock(_ context.Context, sku *string, marketplace string) (*float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	found := false
	for _, row := range r.stock {
		if !r.matches(row.sku, row.marketplace, sku, marketplace) {
			continue
		}
		total += row.units
		found = true
	}

	if !found {
		return nil, nil
	}
	return &total, nil
}

func (r *Repository) TopProducts(_ context.Context, marketplace string, days, limit int) ([]domain.TopProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	bySKU := make(map[string]*domain.TopProduct)
	for _, row := range r.sales {
		if !r.matches(row.sku, row.marketplace, nil, marketplace) {
			continue
		}
		p, ok := bySKU[row.sku]
		if !ok {
			p = &domain.TopProduct{SKU: row.sku, Title: r.titleFor(row.sku, row.marketplace)}
			bySKU[row.sku] = p
		}
		p.Units += row.units
		p.Revenue += row.revenue
	}

	products := make([]domain.TopProduct, 0, len(bySKU))
	for _, p := range bySKU {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Units != products[j].Units {
			return products[i].Units > products[j].Units
		}
		return products[i].SKU < products[j].SKU
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (r *Repository) SKUs(_ context.Context, marketplace string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var skus []string
	for _, row := range r.products {
		if !r.matches(row.sku, row.marketplace, nil, marketplace) {
			continue
		}
		if _, ok := seen[row.sku]; ok {
			continue
		}
		seen[row.sku] = struct{}{}
		skus = append(skus, row.sku)
	}
	sort.Strings(skus)
	return skus, nil
}

func (r *Repository) titleFor(sku, marketplace string) string {
	for _, p := range r.products {
		if p.sku == sku && p.marketplace == marketplace {
			return p.title
		}
	}
	return sku
}

func (r *Repository) matches(rowSKU, rowMarketplace string, sku *string, marketplace string) bool {
	if sku != nil && rowSKU != *sku {
		return false
	}
	if marketplace != "" && !strings.EqualFold(marketplace, repository.MarketplaceAll) && rowMarketplace != upper(marketplace) {
		return false
	}
	return true
}

// windowCutoff returns the first date inside a window of the given calendar
// length ending at end, mirroring the MAX-date anchored SQL windows. On an
// unparsable end date every point stays in.
func windowCutoff(end string, days int) string {
	parsed, err := time.Parse("2006-01-02", end)
	if err != nil {
		return ""
	}
	return parsed.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
}

func upper(s string) string { return strings.ToUpper(s) }
