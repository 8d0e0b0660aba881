package provider

import (
	"time"

	"github.com/f2fpay/internal/cache"
	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Gateways 当前支付宝客户端（沙箱/正式）
	Gateways       *service.GatewaySwitch
	PaymentService *service.PaymentService

	// Now 时钟，订单号取自该时间
	Now func() time.Time
}

// Option 容器可选项
type Option func(*options)

type options struct {
	builder service.GatewayBuilder
	now     func() time.Time
}

// WithGatewayBuilder 替换网关客户端构造方式
func WithGatewayBuilder(builder service.GatewayBuilder) Option {
	return func(o *options) {
		o.builder = builder
	}
}

// WithClock 替换时钟
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, opts ...Option) *Container {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.builder == nil {
		o.builder = service.AlipayBuilder(cfg.Alipay.ClientConfig)
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	gateways := service.NewGatewaySwitch(o.builder)
	if err := gateways.Use(cfg.Alipay.DefaultSandbox); err != nil {
		// 凭证缺失时仍启动服务，请求按失败处理，可通过切换环境恢复
		logger.Warnw("provider_init_alipay_failed",
			"environment", service.EnvironmentName(cfg.Alipay.DefaultSandbox),
			"error", err,
		)
	}

	return &Container{
		Config:         cfg,
		Gateways:       gateways,
		PaymentService: service.NewPaymentService(gateways),
		Now:            o.now,
	}
}
