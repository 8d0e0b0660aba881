package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// corsPolicy 启动时算好的跨域响应头
type corsPolicy struct {
	origins     []string
	credentials bool
	methods     string
	headers     string
	maxAge      string
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{
		origins:     withDefault(cfg.AllowedOrigins, "*"),
		credentials: cfg.AllowCredentials,
		methods:     strings.Join(withDefault(cfg.AllowedMethods, http.MethodGet, http.MethodPost, http.MethodOptions), ", "),
		headers:     strings.Join(withDefault(cfg.AllowedHeaders, "Content-Type", "Accept-Language", requestIDHeader), ", "),
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p
}

func withDefault(values []string, fallback ...string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

func (p corsPolicy) apply(header http.Header, origin string) {
	if allowed := resolveAllowedOrigin(origin, p.origins, p.credentials); allowed != "" {
		header.Set("Access-Control-Allow-Origin", allowed)
		if allowed != "*" {
			header.Add("Vary", "Origin")
		}
	}
	if p.credentials {
		header.Set("Access-Control-Allow-Credentials", "true")
	}
	header.Set("Access-Control-Allow-Methods", p.methods)
	header.Set("Access-Control-Allow-Headers", p.headers)
	if p.maxAge != "" {
		header.Set("Access-Control-Max-Age", p.maxAge)
	}
}

// CORSMiddleware 跨域中间件，预检请求直接返回 204
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	policy := newCORSPolicy(cfg)
	return func(c *gin.Context) {
		policy.apply(c.Writer.Header(), c.GetHeader("Origin"))
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveAllowedOrigin 通配且允许凭证时回显 Origin
func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	for _, allowed := range allowedOrigins {
		switch {
		case allowed == "*" && allowCredentials && origin != "":
			return origin
		case allowed == "*":
			return "*"
		case origin != "" && strings.EqualFold(allowed, origin):
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 沿用上游 X-Request-ID，缺失时生成
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 请求日志与 HTTP 指标，带上订单号便于串联网关日志
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveHTTPRequest(c.FullPath(), status, elapsed)

		fields := []interface{}{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if orderID := orderIDOf(c); orderID != "" {
			fields = append(fields, "out_trade_no", orderID)
		}
		switch {
		case len(c.Errors) > 0:
			sugar.Errorw("request", append(fields, "errors", c.Errors.String())...)
		case status >= http.StatusInternalServerError:
			sugar.Warnw("request", fields...)
		default:
			sugar.Infow("request", fields...)
		}
	}
}

func orderIDOf(c *gin.Context) string {
	if id := c.Param("order_id"); id != "" {
		return id
	}
	return c.Query("out_trade_no")
}
