package main

import (
	"context"
	"log"
	"time"

	"rental-booking/cmd"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/wire"
	"rental-booking/pkg/database"
	"rental-booking/pkg/hqrental"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("hqrental_region", config.HQRental.Region),
		zap.String("enhancement_policy", config.Booking.EnhancementPolicy),
		zap.String("compensation_policy", config.Booking.CompensationPolicy),
	)

	// HQ Rental client
	api, err := hqrental.NewClient(hqrental.Config{
		Region:      config.HQRental.Region,
		TenantToken: config.HQRental.TenantToken,
		UserToken:   config.HQRental.UserToken,
		Timeout:     config.HQRental.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create HQ Rental client", zap.Error(err))
	}

	// The reconciliation ledger is optional
	var db database.PgxIface
	if config.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = database.InitDB(ctx, config.Database)
		if err != nil {
			cancel()
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		err = repository.EnsureOrphanSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to prepare ledger schema", zap.Error(err))
		}

		logger.Info("Database connected successfully")
	} else {
		logger.Warn("DB_HOST not set, orphaned customers are kept in memory only")
	}

	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, api, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
