package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/api"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/config"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/storage"
)

func main() {
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.Env == "production" {
		zl, err = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()
	logger := internal.NewZapLogger(zl.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, disconnect, err := storage.New(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	server := api.NewServer(logger, store, store)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		logger.Infof("Server running on :%s (backend=%s)", cfg.Port, cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := disconnect(shutdownCtx); err != nil {
		logger.Errorf("storage disconnect: %v", err)
	}
}
