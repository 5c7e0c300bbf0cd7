package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fruitstand-backend/internal/config"
	"fruitstand-backend/internal/db"
	"fruitstand-backend/internal/handler"
	"fruitstand-backend/internal/repository"
	"fruitstand-backend/internal/server"
	"fruitstand-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to migrate schema", "err", err)
		os.Exit(1)
	}

	// repositories
	reportRepo := repository.ShiftReportRepository{DB: pg}
	summaryRepo := repository.SummaryRepository{DB: pg}
	placeRepo := repository.PlaceRepository{DB: pg}
	userRepo := repository.UserRepository{DB: pg}

	if cfg.SeedPlaces {
		if err := placeRepo.SeedDefaults(ctx); err != nil {
			logger.Error("failed to seed places", "err", err)
			os.Exit(1)
		}
		if err := reportRepo.SeedDemo(ctx); err != nil {
			logger.Error("failed to seed demo reports", "err", err)
			os.Exit(1)
		}
	}

	// services
	summarySvc := service.SummaryService{
		DB:        pg,
		Reports:   reportRepo,
		Summaries: summaryRepo,
		Places:    placeRepo,
		Users:     userRepo,
		Logger:    logger,
	}
	deletionSvc := service.DeletionService{
		DB:        pg,
		Reports:   reportRepo,
		Summaries: summaryRepo,
		Places:    placeRepo,
		Users:     userRepo,
		Logger:    logger,
	}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	summaryHandler := handler.SummaryHandler{Service: summarySvc}
	reportHandler := handler.ReportHandler{Service: deletionSvc}

	router := server.NewRouter(cfg, logger, healthHandler, summaryHandler, reportHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
