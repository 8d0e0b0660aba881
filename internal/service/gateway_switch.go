package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/payment/alipay"
)

// Gateway 网关客户端能力，*alipay.Client 实现该接口
type Gateway interface {
	Execute(ctx context.Context, req alipay.Request) ([]byte, error)
	VerifyCallback(form map[string][]string) error
}

// GatewayBuilder 按环境构造网关客户端
type GatewayBuilder func(sandbox bool) (Gateway, error)

type gatewayState struct {
	gateway Gateway
	sandbox bool
}

// GatewaySwitch 持有当前网关客户端，切换环境时整体替换，不原地修改
type GatewaySwitch struct {
	build GatewayBuilder
	mu    sync.Mutex
	state atomic.Pointer[gatewayState]
}

// NewGatewaySwitch 创建环境切换器
func NewGatewaySwitch(build GatewayBuilder) *GatewaySwitch {
	return &GatewaySwitch{build: build}
}

// AlipayBuilder 基于配置函数构造 *alipay.Client
func AlipayBuilder(configFor func(sandbox bool) alipay.Config, opts ...alipay.Option) GatewayBuilder {
	return func(sandbox bool) (Gateway, error) {
		return alipay.NewClient(configFor(sandbox), opts...)
	}
}

// Use 构造目标环境的客户端并替换；构造失败时保留原客户端
func (s *GatewaySwitch) Use(sandbox bool) error {
	if s.build == nil {
		return fmt.Errorf("%w: builder is nil", ErrGatewayUnavailable)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	gateway, err := s.build(sandbox)
	if err != nil {
		logger.Errorw("alipay_gateway_switch_failed",
			"environment", EnvironmentName(sandbox),
			"error", err,
		)
		return err
	}
	if gateway == nil {
		return fmt.Errorf("%w: builder returned nil", ErrGatewayUnavailable)
	}
	s.state.Store(&gatewayState{gateway: gateway, sandbox: sandbox})
	logger.Infow("alipay_gateway_switched", "environment", EnvironmentName(sandbox))
	return nil
}

// Current 返回当前客户端，未初始化时为 nil
func (s *GatewaySwitch) Current() Gateway {
	state := s.state.Load()
	if state == nil {
		return nil
	}
	return state.gateway
}

// Sandbox 当前是否为沙箱环境；未初始化时返回 ok=false
func (s *GatewaySwitch) Sandbox() (sandbox bool, ok bool) {
	state := s.state.Load()
	if state == nil {
		return false, false
	}
	return state.sandbox, true
}

// EnvironmentName 返回环境名称 sandbox / production
func EnvironmentName(sandbox bool) string {
	if sandbox {
		return constants.EnvironmentSandbox
	}
	return constants.EnvironmentProduction
}
