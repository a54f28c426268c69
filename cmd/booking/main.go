package main

import (
	"context"
	"log"
	"time"

	"hotel-booking/cmd"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/data/repository/memory"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/remote"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig("booking")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, "booking", config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Booking.Store),
		zap.Bool("debug", config.App.Debug),
	)

	var repos *repository.Repository
	switch config.Booking.Store {
	case "memory":
		repos = memory.NewRepository(logger)
		logger.Warn("Using in-memory store, data is lost on restart")
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	if config.Booking.Seed {
		room, guest, err := repository.SeedDemo(context.Background(), repos, time.Now())
		if err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
		logger.Info("Seeded demo data",
			zap.String("room_id", room.ID.String()),
			zap.String("guest_id", guest.ID.String()),
		)
	}

	payments := remote.NewClient(remote.Options{
		Name:    "payment",
		BaseURL: config.Services.PaymentURL,
		Token:   config.Security.ServiceToken,
		Timeout: config.Services.Timeout,
	}, logger)

	app, err := wire.BookingApp(repos, payments, config, nil, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
