package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"countries-etl/internal/config"
	"countries-etl/internal/repository"
	"countries-etl/internal/restcountries"
	"countries-etl/internal/service"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName))

	repo := repository.NewCountryRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	client := restcountries.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})

	job := service.NewCountryETL(client, repo, logger, service.Options{
		SnapshotPath: cfg.SnapshotPath,
		UseSnapshot:  cfg.APIUseSnapshot,
		BatchSize:    cfg.LoadBatchSize,
	})

	return job.Run(ctx)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
