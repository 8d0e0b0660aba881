package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/payment/alipay"
	"github.com/f2fpay/internal/qrcode"
	"github.com/f2fpay/internal/service"

	"github.com/spf13/cobra"
)

// cliEnv 命令运行依赖，测试中替换
type cliEnv struct {
	now      func() time.Time
	payments func(sandbox *bool) (*service.PaymentService, error)
}

func defaultEnv() cliEnv {
	return cliEnv{
		now:      time.Now,
		payments: paymentsFromConfig,
	}
}

// paymentsFromConfig 按 config.yml 构造网关，sandbox 为空时取配置默认值
func paymentsFromConfig(sandbox *bool) (*service.PaymentService, error) {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	useSandbox := cfg.Alipay.DefaultSandbox
	if sandbox != nil {
		useSandbox = *sandbox
	}
	gateways := service.NewGatewaySwitch(service.AlipayBuilder(cfg.Alipay.ClientConfig))
	if err := gateways.Use(useSandbox); err != nil {
		return nil, err
	}
	return service.NewPaymentService(gateways), nil
}

func newRootCmd(env cliEnv) *cobra.Command {
	var (
		sandbox    bool
		production bool
	)
	root := &cobra.Command{
		Use:           "f2fctl",
		Short:         "Alipay face-to-face payment operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&sandbox, "sandbox", false, "force sandbox gateway")
	root.PersistentFlags().BoolVar(&production, "production", false, "force production gateway")

	selectEnv := func() (*bool, error) {
		switch {
		case sandbox && production:
			return nil, errors.New("--sandbox and --production are mutually exclusive")
		case sandbox:
			v := true
			return &v, nil
		case production:
			v := false
			return &v, nil
		}
		return nil, nil
	}
	payments := func() (*service.PaymentService, error) {
		choice, err := selectEnv()
		if err != nil {
			return nil, err
		}
		return env.payments(choice)
	}

	root.AddCommand(newOrderIDCmd(env))
	root.AddCommand(newCheckTimeoutCmd())
	root.AddCommand(newPrecreateCmd(env, payments))
	root.AddCommand(newQueryCmd(payments))
	return root
}

func newOrderIDCmd(env cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "order-id",
		Short: "Print a new merchant order number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), service.NewOrderID(env.now()))
			return nil
		},
	}
}

func newCheckTimeoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-timeout <expr>",
		Short: "Validate a timeout_express value such as 15m, 2h, 1d or 1c",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := service.TimeoutSeconds(args[0])
			if err != nil {
				return err
			}
			if seconds == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, closes at end of day\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %d seconds\n", args[0], seconds)
			return nil
		},
	}
}

func newPrecreateCmd(env cliEnv, payments func() (*service.PaymentService, error)) *cobra.Command {
	var (
		amount  string
		subject string
		timeout string
		pngPath string
		extras  []string
	)
	cmd := &cobra.Command{
		Use:   "precreate",
		Short: "Create a payment QR code through alipay.trade.precreate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := service.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("amount %q: %w", amount, err)
			}
			if strings.TrimSpace(subject) == "" {
				return errors.New("subject is required")
			}
			if err := service.ValidateTimeoutExpress(timeout); err != nil {
				return err
			}
			extra, err := parseExtras(extras)
			if err != nil {
				return err
			}
			svc, err := payments()
			if err != nil {
				return err
			}

			orderID := service.NewOrderID(env.now())
			result := svc.Precreate(cmd.Context(), service.PrecreateInput{
				OutTradeNo:     orderID,
				Amount:         total,
				Subject:        strings.TrimSpace(subject),
				TimeoutExpress: timeout,
				Extra:          extra,
			})
			if !result.Success {
				return fmt.Errorf("precreate %s failed: %s", orderID, result.ErrorMsg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "order_id: %s\n", orderID)
			fmt.Fprintf(out, "qr_code:  %s\n", result.QRCode)
			if pngPath == "" {
				return nil
			}
			return writePNG(pngPath, result.QRCode, out)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "order amount in yuan")
	cmd.Flags().StringVar(&subject, "subject", "", "order subject")
	cmd.Flags().StringVar(&timeout, "timeout", constants.TimeoutExpressDefault, "timeout_express")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the QR code image to this file")
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "extra biz_content field as key=value, repeatable")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newQueryCmd(payments func() (*service.PaymentService, error)) *cobra.Command {
	var outTradeNo, tradeNo string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query a trade through alipay.trade.query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(outTradeNo) == "" && strings.TrimSpace(tradeNo) == "" {
				return errors.New("one of --out-trade-no or --trade-no is required")
			}
			svc, err := payments()
			if err != nil {
				return err
			}
			result := svc.Query(cmd.Context(), outTradeNo, tradeNo)
			if result.Data == nil {
				return fmt.Errorf("query failed: %s", result.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Data)
		},
	}
	cmd.Flags().StringVar(&outTradeNo, "out-trade-no", "", "merchant order number")
	cmd.Flags().StringVar(&tradeNo, "trade-no", "", "alipay trade number")
	return cmd
}

func parseExtras(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("extra %q must be key=value", pair)
		}
		if !alipay.IsAllowedPrecreateField(key) {
			return nil, fmt.Errorf("extra field %s is not allowed", key)
		}
		extra[key] = value
	}
	return extra, nil
}

func writePNG(path, content string, out io.Writer) error {
	png, err := qrcode.PNG(content)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "png:      %s\n", path)
	return nil
}
