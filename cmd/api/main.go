// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"ecofreight-api-server/config"
	"ecofreight-api-server/internal/api/routes"
	"ecofreight-api-server/internal/auth"
	"ecofreight-api-server/internal/database"
	"ecofreight-api-server/internal/ledger"
	"ecofreight-api-server/internal/logging"
	"ecofreight-api-server/internal/routeopt"
	"ecofreight-api-server/internal/s3"
	"ecofreight-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (best effort) and configuration
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	logger := logging.Get()

	auth.SetSecret(cfg.JWT.Secret)

	// 2. Connect to MongoDB
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.WithError(err).Fatal("Failed to create indexes")
	}

	// 3. Seed the bootstrap manager and the demo route corridors
	if err := database.SeedManager(db); err != nil {
		logger.WithError(err).Fatal("Failed to seed manager account")
	}
	if err := routeopt.SeedRoutes(context.Background(), db); err != nil {
		logger.WithError(err).Fatal("Failed to seed routes")
	}

	// 4. Mock ledger for shipment event anchoring
	chain := ledger.New(db, cfg.Ledger.Network, cfg.Ledger.TailSize)

	// 5. Optional S3 uploader for delivery-proof photos
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize S3 uploader")
		}
	} else {
		logger.Warn("S3 is not configured, delivery photo uploads are disabled")
	}

	// 6. WebSocket hub for live dashboard pushes
	wsHub := socket.NewHub()

	// 7. Router
	router := routes.SetupRouter(cfg, db, chain, uploader, wsHub)

	// 8. Start server
	logger.Infof("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Failed to run server")
	}
}
