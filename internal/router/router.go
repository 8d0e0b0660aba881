package router

import (
	"os"
	"strings"

	"github.com/f2fpay/internal/cache"
	"github.com/f2fpay/internal/config"
	publichandlers "github.com/f2fpay/internal/http/handlers/public"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	createOrderRule := RateLimitRule{
		Prefix:        cache.Key("rate", "create_order"),
		WindowSeconds: cfg.RateLimit.CreateOrder.WindowSeconds,
		MaxRequests:   cfg.RateLimit.CreateOrder.MaxRequests,
		MessageKey:    "order.too_many_requests",
	}
	createOrderLimit := LocalRateLimitMiddleware(createOrderRule, KeyByIP)
	if redisClient := cache.Client(); redisClient != nil {
		createOrderLimit = RateLimitMiddleware(redisClient, createOrderRule, KeyByIP)
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	staticDir := strings.TrimSpace(cfg.Server.StaticDir)
	if info, err := os.Stat(staticDir); staticDir != "" && err == nil && info.IsDir() {
		r.Static("/static", staticDir)
	}
	r.GET("/", handler.Home)

	r.GET("/create_order", createOrderLimit, handler.CreateOrder)
	r.GET("/check_order_status/:order_id", handler.CheckOrderStatus)

	api := r.Group("/api")
	{
		api.POST("/toggle_sandbox", handler.ToggleSandbox)
		api.GET("/environment", handler.Environment)
		api.GET("/query", handler.Query)
		api.POST("/notify", handler.AlipayNotify)
	}

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	return r
}
