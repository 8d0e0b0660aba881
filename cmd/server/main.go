package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/f2fpay/internal/app"
	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	printStartupBanner(cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		if cfg.Alipay.DefaultSandbox {
			stdLog.Printf("警告: 生产模式下默认使用沙箱环境，请确认 alipay.default_sandbox 配置")
		}
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner(cfg *config.Config) {
	fmt.Println(ansiCyan + ansiBold + "Alipay 当面付服务" + ansiReset)
	fmt.Println(ansiGreen + "• 监听地址: " + app.ListenAddr(cfg) + ansiReset)
	fmt.Println(ansiGreen + "• 默认环境: " + service.EnvironmentName(cfg.Alipay.DefaultSandbox) + ansiReset)
	if cfg.Metrics.Enabled {
		fmt.Println(ansiBlue + "• 指标路径: " + cfg.Metrics.Path + ansiReset)
	}
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
