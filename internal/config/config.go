package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/payment/alipay"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Alipay    AlipayConfig    `mapstructure:"alipay"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"` // debug / release
	StaticDir string `mapstructure:"static_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Prefix     string `mapstructure:"prefix"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Prefix:     c.Prefix,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
		Console:    c.Console,
	}
}

// AlipayCredentials 单个环境的支付宝凭证
type AlipayCredentials struct {
	AppID           string `mapstructure:"app_id"`
	PrivateKey      string `mapstructure:"private_key"`
	AlipayPublicKey string `mapstructure:"alipay_public_key"`
	GatewayURL      string `mapstructure:"gateway_url"`
}

// AlipayConfig 支付宝配置（沙箱 / 正式两套凭证）
type AlipayConfig struct {
	DefaultSandbox bool              `mapstructure:"default_sandbox"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	SignType       string            `mapstructure:"sign_type"`
	NotifyURL      string            `mapstructure:"notify_url"`
	Sandbox        AlipayCredentials `mapstructure:"sandbox"`
	Production     AlipayCredentials `mapstructure:"production"`
}

// ClientConfig 按环境生成网关客户端配置
func (c AlipayConfig) ClientConfig(sandbox bool) alipay.Config {
	creds := c.Production
	env := constants.EnvironmentProduction
	gatewayURL := constants.AlipayProductionGatewayURL
	if sandbox {
		creds = c.Sandbox
		env = constants.EnvironmentSandbox
		gatewayURL = constants.AlipaySandboxGatewayURL
	}
	if strings.TrimSpace(creds.GatewayURL) != "" {
		gatewayURL = strings.TrimSpace(creds.GatewayURL)
	}
	timeout := time.Duration(c.TimeoutSeconds) * time.Second
	return alipay.Config{
		Environment:     env,
		AppID:           creds.AppID,
		PrivateKey:      creds.PrivateKey,
		AlipayPublicKey: creds.AlipayPublicKey,
		GatewayURL:      gatewayURL,
		SignType:        c.SignType,
		NotifyURL:       c.NotifyURL,
		Timeout:         timeout,
	}
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// RateLimitConfig 下单限流配置
type RateLimitConfig struct {
	CreateOrder RateLimitRuleConfig `mapstructure:"create_order"`
}

// RateLimitRuleConfig 单条限流规则
type RateLimitRuleConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")

	SetDefaults(v)

	// 环境变量支持，例如 alipay.sandbox.app_id -> ALIPAY_SANDBOX_APP_ID
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Unmarshal(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// Unmarshal 将 viper 实例解析为配置
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults 写入全部默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.static_dir", "./static")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.prefix", "alipay")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.console", true)
	v.SetDefault("alipay.default_sandbox", true)
	v.SetDefault("alipay.timeout_seconds", 30)
	v.SetDefault("alipay.sign_type", "RSA2")
	v.SetDefault("alipay.notify_url", "")
	v.SetDefault("alipay.sandbox.app_id", "")
	v.SetDefault("alipay.sandbox.private_key", "")
	v.SetDefault("alipay.sandbox.alipay_public_key", "")
	v.SetDefault("alipay.sandbox.gateway_url", constants.AlipaySandboxGatewayURL)
	v.SetDefault("alipay.production.app_id", "")
	v.SetDefault("alipay.production.private_key", "")
	v.SetDefault("alipay.production.alipay_public_key", "")
	v.SetDefault("alipay.production.gateway_url", constants.AlipayProductionGatewayURL)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "f2f")
	v.SetDefault("rate_limit.create_order.window_seconds", 60)
	v.SetDefault("rate_limit.create_order.max_requests", 30)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
