package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dashboard-service/internal/config"
	"dashboard-service/internal/server"
	"dashboard-service/internal/telemetry"
)

func main() {
	// Load env vars
	if err := godotenv.Load(); err != nil {
		log.Println("Dashboard: No .env file found, relying on system env vars")
	}

	// Load config
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	tel, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("init telemetry", zap.Error(err))
	}

	// Init server
	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	// Run server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard service starting", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down dashboard service")
		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatal("shutdown failed", zap.Error(err))
		}
		if err := tel.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		logger.Fatal("server exited", zap.Error(err))
	}
}
