package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/bizscrape-service/internal/app"
	"github.com/user/bizscrape-service/internal/delivery/http/handler"
	"github.com/user/bizscrape-service/internal/delivery/http/router"
	"github.com/user/bizscrape-service/pkg/config"
	"github.com/user/bizscrape-service/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	// --- Logger ---
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("Logger initialized", zap.String("level", cfg.LogLevel))

	// --- Storage, providers and use cases ---
	ctx := context.Background()
	a, err := app.New(ctx, cfg, zl, prometheus.DefaultRegisterer)
	if err != nil {
		zl.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(a.Dependencies(), zl)
	httpRouter := router.New(apiHandler, router.Options{
		UserHeader: cfg.AuthUserHeader,
		Metrics:    a.Metrics,
		Logger:     zl,
	})

	server := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     httpRouter,
		ReadTimeout: 5 * time.Second,
		// Provider calls fan out, so a single scrape may take a while.
		WriteTimeout: cfg.Providers.HTTPTimeout * 3,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()
	zl.Info("Server started", zap.String("port", cfg.ServerPort), zap.String("storage", cfg.StorageDriver))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exiting")
}
