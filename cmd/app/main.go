package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/db"
	httpServer "tasks_api/internal/http"
	"tasks_api/internal/http/handlers"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"
	"tasks_api/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	defer logger.Sync()
	gin.SetMode(cfg.GinMode)

	dbPool, err := db.Connect(context.Background(), cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedis()

	hub := ws.NewHub()
	h := handlers.NewHandler(dbPool, hub)
	health := handlers.NewHealthHandler(dbPool, hub, cfg.Version)
	r := httpServer.NewEngine(cfg, h, health, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
