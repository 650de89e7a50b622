package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"exitlens/internal/calibration"
	"exitlens/internal/listings"
	"exitlens/pkg/database"
	"exitlens/pkg/utils"
)

// One-shot calibration run for cron. Fetches the listings snapshot, rebuilds
// the market profile and persists it, then exits.
func main() {
	logger := logrus.New()
	cfg := utils.Load(logger)

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("db migrate failed: %v", err)
	}

	svc := &calibration.Service{
		Source:  listings.NewClient(cfg.ListingsBaseURL, cfg.ListingsAPIKey, logger),
		Builder: calibration.NewBuilder(calibration.DefaultConfig()),
		Store:   calibration.NewStore(db),
		Snap:    calibration.NewSnapshot(),
		Logger:  logger,
	}
	if err := svc.Restore(context.Background()); err != nil {
		logger.WithError(err).Warn("restoring stored profile failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	profile := svc.Recalibrate(ctx)
	logger.WithFields(logrus.Fields{
		"listings":   profile.TotalListings,
		"sold":       profile.SoldListings,
		"categories": len(profile.CategoryMultipliers),
	}).Info("recalibration finished")
}
