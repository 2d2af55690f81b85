package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindcheck/internal/app"
	"mindcheck/internal/config"
)

// @title Mindcheck API
// @version 1.0
// @description Wellbeing survey scoring and admin console
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if os.Getenv("MONGO_URI") == "" {
		logger.Warn("MONGO_URI not set, using default", "uri", cfg.MongoURI)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	a, err := app.New(startCtx, cfg, logger)
	if err != nil {
		cancel()
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.BootstrapAdmin(startCtx); err != nil {
		cancel()
		logger.Error("startup failed", "error", err)
		a.Close()
		os.Exit(1)
	}
	cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		logger.Info("endpoints",
			"public", []string{"GET /survey/questions", "POST /survey", "POST /survey/check", "POST /admin/signup", "POST /admin/login"},
			"admin", []string{"GET /admin/list", "POST /admin/review", "GET /admin/entries", "GET /admin/entries/{id}", "GET /admin/questions", "GET /admin/stats"},
			"ops", []string{"GET /health", "GET /metrics", "GET /docs/openapi.json"},
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
