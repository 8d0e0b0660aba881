package app

import (
	"errors"

	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/provider"
	"github.com/f2fpay/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, opts ...provider.Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg, opts...)
	engine := router.SetupRouter(cfg, container)
	return NewRunner(NewHTTPService(ListenAddr(cfg), engine)), nil
}

// ListenAddr 监听地址
func ListenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Provider...)
	if err != nil {
		return err
	}

	sandbox := opts.Config.Alipay.DefaultSandbox
	opts.Logger.Infow("app_start", "addr", ListenAddr(opts.Config), "sandbox", sandbox)
	return RunWithOptions(runner, opts)
}
