// Package metrics 网关调用与 HTTP 请求指标
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 调用结果标签
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport_error"
)

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total Alipay gateway calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)
	gatewayLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payment",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of Alipay gateway calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payment",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)
	httpLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "payment",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// ObserveGatewayCall 记录一次网关调用
func ObserveGatewayCall(method, outcome string, elapsed time.Duration) {
	gatewayRequests.WithLabelValues(method, outcome).Inc()
	gatewayLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// GatewayRequests 暴露计数器，供测试读取
func GatewayRequests() *prometheus.CounterVec {
	return gatewayRequests
}

// ObserveHTTPRequest 记录一次 HTTP 请求，未匹配路由记为 unmatched
func ObserveHTTPRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// HTTPRequests 暴露 HTTP 计数器
func HTTPRequests() *prometheus.CounterVec {
	return httpRequests
}
