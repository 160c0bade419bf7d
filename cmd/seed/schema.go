package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    sku         TEXT NOT NULL,
    marketplace TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (sku, marketplace)
);

CREATE TABLE IF NOT EXISTS demand_history (
    sku         TEXT NOT NULL,
    marketplace TEXT NOT NULL,
    sale_date   DATE NOT NULL,
    units       DOUBLE PRECISION NOT NULL DEFAULT 0,
    revenue     DOUBLE PRECISION NOT NULL DEFAULT 0,
    PRIMARY KEY (sku, marketplace, sale_date)
);

CREATE INDEX IF NOT EXISTS idx_demand_history_marketplace_date
    ON demand_history (marketplace, sale_date);

CREATE TABLE IF NOT EXISTS forecast_backtest (
    sku             TEXT NOT NULL,
    marketplace     TEXT NOT NULL,
    day             DATE NOT NULL,
    actual_units    DOUBLE PRECISION NOT NULL DEFAULT 0,
    predicted_units DOUBLE PRECISION NOT NULL DEFAULT 0,
    PRIMARY KEY (sku, marketplace, day)
);

CREATE TABLE IF NOT EXISTS inventory_levels (
    sku         TEXT NOT NULL,
    marketplace TEXT NOT NULL,
    units       DOUBLE PRECISION NOT NULL DEFAULT 0,
    as_of       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (sku, marketplace, as_of)
);
`

func runInit(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(c.Context, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Println("Schema applied")
	return nil
}
