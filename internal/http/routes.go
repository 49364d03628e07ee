package http

import (
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/http/handlers"
	"tasks_api/internal/http/middleware"
	"tasks_api/internal/logger"
	"tasks_api/internal/ws"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewEngine builds the gin engine with the shared middleware chain and all routes.
func NewEngine(cfg *config.Config, h *handlers.Handler, health *handlers.HealthHandler, hub *ws.Hub) *gin.Engine {
	r := gin.New()

	log := logger.Get()
	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/healthz", "/metrics"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", c.GetString(middleware.RequestIDKey))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(middleware.Metrics())

	RegisterRoutes(r, cfg, h, health, hub)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, h *handlers.Handler, health *handlers.HealthHandler, hub *ws.Hub) {
	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.APIPrefix)
	if cfg.APIRateLimit > 0 {
		api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PATCH("/:id/complete", h.CompleteTask)
	}

	users := api.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	if hub != nil {
		api.GET("/ws", ws.HandleFeed(hub, cfg.AllowedOrigins))
	}
}
