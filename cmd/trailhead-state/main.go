// trailhead-state serves the shared game state over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathoo/trailhead/config"
	"github.com/nathoo/trailhead/logger"
	"github.com/nathoo/trailhead/server"
	"github.com/nathoo/trailhead/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Trailhead state service",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store", cfg.Store)

	st, err := openStore(cfg, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to open store")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.NewMux(st, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(log, err).Error("Server failed to start")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(log, err).Error("Server forced to shutdown")
	}

	if err := st.Close(); err != nil {
		logger.WithError(log, err).Error("Error closing store")
	}

	log.Info("Server exited")
}

func openStore(cfg *config.Config, log *slog.Logger) (store.Store, error) {
	if cfg.Store == config.StoreRedis {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return store.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisKey, store.DefaultState(), log)
	}
	return store.NewMemoryStore(store.DefaultState()), nil
}
