package alipay

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/f2fpay/internal/constants"
)

var (
	ErrConfigInvalid    = errors.New("alipay config invalid")
	ErrRequestInvalid   = errors.New("alipay request invalid")
	ErrSignGenerate     = errors.New("alipay sign generate failed")
	ErrRequestFailed    = errors.New("alipay request failed")
	ErrResponseInvalid  = errors.New("alipay response invalid")
	ErrSignatureInvalid = errors.New("alipay signature invalid")
)

const (
	defaultTimeout    = 30 * time.Second
	errorResponseNode = "error_response"
)

// Config 支付宝网关客户端配置，构造后不再修改。
type Config struct {
	Environment     string        `json:"environment"`
	AppID           string        `json:"app_id"`
	PrivateKey      string        `json:"private_key"`
	AlipayPublicKey string        `json:"alipay_public_key"`
	GatewayURL      string        `json:"gateway_url"`
	SignType        string        `json:"sign_type"`
	NotifyURL       string        `json:"notify_url"`
	Timeout         time.Duration `json:"timeout"`
}

// Request 网关请求：接口方法名 + 业务参数
type Request interface {
	APIMethod() string
	BizContent() (map[string]interface{}, error)
}

// Client 支付宝 OpenAPI 客户端，可并发使用。
type Client struct {
	cfg        Config
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	httpClient *http.Client
	now        func() time.Time
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 指定 HTTP 客户端
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClock 指定时钟，用于公共参数 timestamp
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient 校验配置并创建客户端
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.normalize()
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	privateKey, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	publicKey, err := parsePublicKey(cfg.AlipayPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	c := &Client{
		cfg:        cfg,
		privateKey: privateKey,
		publicKey:  publicKey,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config 返回客户端配置副本
func (c *Client) Config() Config {
	return c.cfg
}

// Environment 返回客户端所属环境
func (c *Client) Environment() string {
	return c.cfg.Environment
}

// ValidateConfig 校验配置完整性。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if cfg.Environment != constants.EnvironmentSandbox && cfg.Environment != constants.EnvironmentProduction {
		return fmt.Errorf("%w: environment %q is not supported", ErrConfigInvalid, cfg.Environment)
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		return fmt.Errorf("%w: app_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return fmt.Errorf("%w: private_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AlipayPublicKey) == "" {
		return fmt.Errorf("%w: alipay_public_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.GatewayURL) == "" {
		return fmt.Errorf("%w: gateway_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.GatewayURL)); err != nil {
		return fmt.Errorf("%w: gateway_url is invalid", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.NotifyURL) != "" {
		if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.NotifyURL)); err != nil {
			return fmt.Errorf("%w: notify_url is invalid", ErrConfigInvalid)
		}
	}
	if cfg.SignType != "RSA2" && cfg.SignType != "RSA" {
		return fmt.Errorf("%w: sign_type is invalid", ErrConfigInvalid)
	}
	return nil
}

// Execute 签名并调用网关，返回 <method>_response 节点的原始 JSON。
// 网关带回 sign 时按原始节点验签。
func (c *Client) Execute(ctx context.Context, req Request) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrRequestInvalid)
	}
	method := strings.TrimSpace(req.APIMethod())
	if method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrRequestInvalid)
	}
	bizContent, err := req.BizContent()
	if err != nil {
		return nil, err
	}
	bizContentBytes, err := json.Marshal(bizContent)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal biz_content failed: %w", ErrRequestInvalid, err)
	}

	params := map[string]string{
		"app_id":      c.cfg.AppID,
		"method":      method,
		"format":      "JSON",
		"charset":     "utf-8",
		"sign_type":   c.cfg.SignType,
		"timestamp":   c.now().Format("2006-01-02 15:04:05"),
		"version":     "1.0",
		"biz_content": string(bizContentBytes),
	}
	if method == constants.AlipayMethodTradePrecreate && c.cfg.NotifyURL != "" {
		params["notify_url"] = c.cfg.NotifyURL
	}
	sign, err := signWithKey(buildSignContent(params), c.privateKey, c.cfg.SignType)
	if err != nil {
		return nil, err
	}
	params["sign"] = sign

	body, err := c.postGateway(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.extractResponseNode(method, body)
}

func (c *Client) postGateway(ctx context.Context, params map[string]string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	form := url.Values{}
	for key, value := range params {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		form.Set(key, value)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrResponseInvalid, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) extractResponseNode(method string, body []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed: %w", ErrResponseInvalid, err)
	}
	responseKey := strings.ReplaceAll(method, ".", "_") + "_response"
	node, ok := raw[responseKey]
	if !ok {
		node, ok = raw[errorResponseNode]
	}
	if !ok || len(node) == 0 {
		return nil, fmt.Errorf("%w: %s not found", ErrResponseInvalid, responseKey)
	}

	var sign string
	if rawSign, exists := raw["sign"]; exists {
		if err := json.Unmarshal(rawSign, &sign); err != nil {
			return nil, fmt.Errorf("%w: sign is not a string", ErrSignatureInvalid)
		}
	}
	if strings.TrimSpace(sign) != "" {
		if err := verifyWithKey(string(node), sign, c.publicKey, c.cfg.SignType); err != nil {
			return nil, err
		}
	}
	return []byte(node), nil
}

func (c *Config) normalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.AppID = strings.TrimSpace(c.AppID)
	c.PrivateKey = strings.TrimSpace(c.PrivateKey)
	c.AlipayPublicKey = strings.TrimSpace(c.AlipayPublicKey)
	c.GatewayURL = strings.TrimSpace(c.GatewayURL)
	c.NotifyURL = strings.TrimSpace(c.NotifyURL)
	c.SignType = strings.ToUpper(strings.TrimSpace(c.SignType))
	if c.SignType == "" {
		c.SignType = "RSA2"
	}
	if c.GatewayURL == "" {
		switch c.Environment {
		case constants.EnvironmentSandbox:
			c.GatewayURL = constants.AlipaySandboxGatewayURL
		default:
			c.GatewayURL = constants.AlipayProductionGatewayURL
		}
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}
