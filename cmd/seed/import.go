package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/cache"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository/postgres"
)

// csvImporter maps one CSV row to the args of an upsert statement.
type csvImporter struct {
	name       string
	query      string
	minColumns int
	rowArgs    func(record []string, marketplace string) ([]interface{}, error)
}

func runSeedDemand(c *cli.Context) error {
	return runImport(c, csvImporter{
		name: "demand_history",
		query: `
			INSERT INTO demand_history (sku, marketplace, sale_date, units, revenue)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sku, marketplace, sale_date)
			DO UPDATE SET units = EXCLUDED.units, revenue = EXCLUDED.revenue`,
		minColumns: 4,
		rowArgs: func(record []string, marketplace string) ([]interface{}, error) {
			sku, mkt := skuAndMarketplace(record, marketplace)
			date, err := parseDate(record[2])
			if err != nil {
				return nil, err
			}
			units, err := parseFloat(record[3])
			if err != nil {
				return nil, fmt.Errorf("units: %w", err)
			}
			revenue := 0.0
			if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
				if revenue, err = parseFloat(record[4]); err != nil {
					return nil, fmt.Errorf("revenue: %w", err)
				}
			}
			return []interface{}{sku, mkt, date, units, revenue}, nil
		},
	})
}

func runSeedBacktest(c *cli.Context) error {
	return runImport(c, csvImporter{
		name: "forecast_backtest",
		query: `
			INSERT INTO forecast_backtest (sku, marketplace, day, actual_units, predicted_units)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sku, marketplace, day)
			DO UPDATE SET actual_units = EXCLUDED.actual_units, predicted_units = EXCLUDED.predicted_units`,
		minColumns: 5,
		rowArgs: func(record []string, marketplace string) ([]interface{}, error) {
			sku, mkt := skuAndMarketplace(record, marketplace)
			date, err := parseDate(record[2])
			if err != nil {
				return nil, err
			}
			actual, err := parseFloat(record[3])
			if err != nil {
				return nil, fmt.Errorf("actual_units: %w", err)
			}
			predicted, err := parseFloat(record[4])
			if err != nil {
				return nil, fmt.Errorf("predicted_units: %w", err)
			}
			return []interface{}{sku, mkt, date, actual, predicted}, nil
		},
	})
}

func runSeedInventory(c *cli.Context) error {
	return runImport(c, csvImporter{
		name: "inventory_levels",
		query: `
			INSERT INTO inventory_levels (sku, marketplace, units, as_of)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (sku, marketplace, as_of)
			DO UPDATE SET units = EXCLUDED.units`,
		minColumns: 3,
		rowArgs: func(record []string, marketplace string) ([]interface{}, error) {
			sku, mkt := skuAndMarketplace(record, marketplace)
			units, err := parseFloat(record[2])
			if err != nil {
				return nil, fmt.Errorf("units: %w", err)
			}
			asOf := time.Now().UTC()
			if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
				if asOf, err = time.Parse(time.RFC3339, strings.TrimSpace(record[3])); err != nil {
					day, dayErr := parseDate(record[3])
					if dayErr != nil {
						return nil, fmt.Errorf("as_of: %w", err)
					}
					asOf, _ = time.Parse("2006-01-02", day)
				}
			}
			return []interface{}{sku, mkt, units, asOf}, nil
		},
	})
}

func runSeedProducts(c *cli.Context) error {
	return runImport(c, csvImporter{
		name: "products",
		query: `
			INSERT INTO products (sku, marketplace, title)
			VALUES ($1, $2, $3)
			ON CONFLICT (sku, marketplace)
			DO UPDATE SET title = EXCLUDED.title`,
		minColumns: 3,
		rowArgs: func(record []string, marketplace string) ([]interface{}, error) {
			sku, mkt := skuAndMarketplace(record, marketplace)
			return []interface{}{sku, mkt, strings.TrimSpace(record[2])}, nil
		},
	})
}

func runImport(c *cli.Context, importer csvImporter) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	filePath := c.String("file")
	marketplace := strings.ToUpper(strings.TrimSpace(c.String("marketplace")))

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	rows, err := importRows(c.Context, db, importer, file, marketplace)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", importer.name, err)
	}

	log.Printf("Successfully seeded %s (%d records)\n", importer.name, rows)

	// Fresh data makes cached plans and summaries stale; drop them now
	// instead of waiting out the TTL.
	invalidateCaches(c.Context)
	return nil
}

func importRows(ctx context.Context, db *postgres.DB, importer csvImporter, src io.Reader, marketplace string) (int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	// Skip the header row
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rowCount := 0
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, importer.query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for {
			record, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return fmt.Errorf("failed to read CSV record: %w", err)
			}

			if len(record) < importer.minColumns {
				return fmt.Errorf("row %d: expected at least %d columns, got %d", rowCount+2, importer.minColumns, len(record))
			}

			args, err := importer.rowArgs(record, marketplace)
			if err != nil {
				return fmt.Errorf("row %d: %w", rowCount+2, err)
			}

			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}

			rowCount++
			if rowCount%5000 == 0 {
				log.Printf("Seeded %d rows...", rowCount)
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func invalidateCaches(ctx context.Context) {
	cfg := config.Load()
	replenishCache, err := cache.NewReplenishCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: cache unavailable, skipping invalidation: %v", err)
		return
	}
	if err := replenishCache.InvalidateAll(ctx); err != nil {
		log.Printf("warning: cache invalidation failed: %v", err)
	}
}

func skuAndMarketplace(record []string, fallback string) (string, string) {
	sku := strings.TrimSpace(record[0])
	mkt := strings.ToUpper(strings.TrimSpace(record[1]))
	if mkt == "" {
		mkt = fallback
	}
	return sku, mkt
}

func parseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", value, err)
	}
	return value, nil
}

func parseFloat(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", value, err)
	}
	return num, nil
}
