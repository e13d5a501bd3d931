package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"laptop-price-api/config"
	"laptop-price-api/logger"
	"laptop-price-api/server"
	"laptop-price-api/services"
	"laptop-price-api/tracing"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("server exited", "error", err)
	}
}

func run(cfg *config.Config, appLog *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Artifacts are loaded before the listener opens
	store, err := services.LoadArtifactStore(cfg.Artifacts)
	if err != nil {
		return err
	}
	if err := store.CheckSchema(); err != nil {
		appLog.Warn("trained pipeline schema differs from feature row", "error", err)
	}
	catalog, err := services.NewOptionCatalog(store.Reference)
	if err != nil {
		return err
	}
	appLog.Info("artifacts loaded",
		"pipeline", cfg.Artifacts.PipelinePath,
		"reference", cfg.Artifacts.ReferencePath,
		"model_version", store.Pipeline.Version(),
	)

	shutdownTracing, err := tracing.Init(ctx, appLog, cfg.Tracing, cfg.Server.ServiceName, store.Pipeline.Version())
	if err != nil {
		appLog.Warn("tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			appLog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	broadcaster, err := services.NewPredictionBroadcaster(cfg.Redis, appLog)
	if err != nil {
		appLog.Warn("live prediction feed disabled", "error", err)
	}
	defer broadcaster.Close()

	router := server.NewRouter(server.Deps{
		Config:      cfg,
		Log:         appLog,
		Catalog:     catalog,
		Predictor:   services.NewPricePredictor(store),
		Broadcaster: broadcaster,
	})

	if err := server.ListenAndRun(ctx, cfg.Server.Addr(), router, cfg.Server.ShutdownGrace(), appLog); err != nil {
		return fmt.Errorf("serve %s: %w", cfg.Server.Addr(), err)
	}
	appLog.Info("server stopped")
	return nil
}
