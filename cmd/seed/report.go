package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pirnawaz/amazon-dashboard-sub001/internal/config"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/export"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/repository/postgres"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/service"
	"github.com/pirnawaz/amazon-dashboard-sub001/internal/storage"
)

// runExportReport computes restock actions for every SKU in the marketplace
// and writes the CSV snapshot either to a local file or to the configured
// report bucket.
func runExportReport(c *cli.Context) error {
	cfg := config.Load()

	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	marketplace := strings.ToUpper(strings.TrimSpace(c.String("marketplace")))

	repo := postgres.NewReplenishmentRepository(db.DB)
	restock := service.NewRestockService(repo, nil, cfg.Replenish)

	actions, err := restock.ActionsForAll(c.Context, marketplace)
	if err != nil {
		return fmt.Errorf("failed to compute restock actions: %w", err)
	}

	data, err := export.ActionsCSV(actions)
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Printf("Wrote %d actions to %s\n", len(actions), out)
		return nil
	}

	store, err := storage.NewS3Client(cfg.Reports)
	if err != nil {
		return fmt.Errorf("report bucket not configured: %w", err)
	}

	key := fmt.Sprintf("restock/%s/%s.csv", marketplace, time.Now().UTC().Format("2006-01-02"))
	if err := store.UploadObject(c.Context, key, data); err != nil {
		return err
	}

	log.Printf("Uploaded %d actions to %s\n", len(actions), key)
	return nil
}
