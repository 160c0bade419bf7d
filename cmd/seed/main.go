package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository/postgres"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newMarketplaceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "marketplace",
		Usage: "Marketplace code applied to rows without one",
		Value: "US",
	}
}

func openDB(c *cli.Context) (*postgres.DB, error) {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return postgres.Wrap(db), nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and load the seller dashboard database",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the dashboard tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runInit,
			},
			{
				Name:  "demand",
				Usage: "Import daily demand history from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMarketplaceFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV with columns sku,marketplace,date,units,revenue",
						Required: true,
					},
				},
				Action: runSeedDemand,
			},
			{
				Name:  "backtest",
				Usage: "Import forecast backtest points from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMarketplaceFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV with columns sku,marketplace,date,actual_units,predicted_units",
						Required: true,
					},
				},
				Action: runSeedBacktest,
			},
			{
				Name:  "inventory",
				Usage: "Import inventory level snapshots from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMarketplaceFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV with columns sku,marketplace,units,as_of",
						Required: true,
					},
				},
				Action: runSeedInventory,
			},
			{
				Name:  "products",
				Usage: "Import the product catalog from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMarketplaceFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV with columns sku,marketplace,title",
						Required: true,
					},
				},
				Action: runSeedProducts,
			},
			{
				Name:  "export-report",
				Usage: "Compute restock actions for every SKU and upload a CSV report",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newMarketplaceFlag(),
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write the report to a local file instead of uploading",
					},
				},
				Action: runExportReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
