package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/i18n"
	"github.com/f2fpay/internal/logger"
	"github.com/f2fpay/internal/metrics"
	"github.com/f2fpay/internal/payment/alipay"

	"github.com/shopspring/decimal"
)

const defaultPrecreateFailureMsg = "failed to create payment QR code"

// PaymentService 当面付网关适配：预创建与查询，统一成功/失败结构
type PaymentService struct {
	gateways *GatewaySwitch
	now      func() time.Time
}

// NewPaymentService 创建支付服务
func NewPaymentService(gateways *GatewaySwitch) *PaymentService {
	return &PaymentService{gateways: gateways, now: time.Now}
}

// PrecreateInput 预创建参数
type PrecreateInput struct {
	OutTradeNo     string
	Amount         decimal.Decimal
	Subject        string
	TimeoutExpress string
	Extra          map[string]interface{}
}

// PrecreateResult 预创建结果
type PrecreateResult struct {
	Success  bool
	QRCode   string
	ErrorMsg string
	// Err 失败类别：ErrGatewayFailure / ErrGatewayTransport / ErrGatewayUnavailable
	Err error
	// Retryable 网络超时等可重试失败
	Retryable bool
}

// QueryResult 查询结果，Data 为网关原始响应节点
type QueryResult struct {
	Success bool
	Message string
	Data    map[string]interface{}
	Err     error
}

// Precreate 调用 alipay.trade.precreate 生成二维码串
func (s *PaymentService) Precreate(ctx context.Context, input PrecreateInput) PrecreateResult {
	method := constants.AlipayMethodTradePrecreate
	logger.Infow("alipay_precreate_requested",
		"out_trade_no", input.OutTradeNo,
		"amount", input.Amount.StringFixed(2),
		"subject", input.Subject,
		"timeout_express", input.TimeoutExpress,
	)
	gateway := s.current()
	if gateway == nil {
		logger.Errorw("alipay_precreate_gateway_unavailable", "out_trade_no", input.OutTradeNo)
		return PrecreateResult{ErrorMsg: ErrGatewayUnavailable.Error(), Err: ErrGatewayUnavailable}
	}

	start := s.now()
	body, err := gateway.Execute(ctx, alipay.PrecreateRequest{
		OutTradeNo:     input.OutTradeNo,
		TotalAmount:    input.Amount,
		Subject:        input.Subject,
		TimeoutExpress: input.TimeoutExpress,
		Extra:          input.Extra,
	})
	elapsed := s.now().Sub(start)
	if err != nil {
		metrics.ObserveGatewayCall(method, metrics.OutcomeTransport, elapsed)
		logger.Errorw("alipay_precreate_error",
			"out_trade_no", input.OutTradeNo,
			"error", err,
		)
		return PrecreateResult{
			ErrorMsg:  err.Error(),
			Err:       fmt.Errorf("%w: %w", ErrGatewayTransport, err),
			Retryable: isRetryable(err),
		}
	}
	logger.Debugw("alipay_precreate_raw_response", "out_trade_no", input.OutTradeNo, "body", string(body))

	data, err := decodeObject(body)
	if err != nil {
		metrics.ObserveGatewayCall(method, metrics.OutcomeTransport, elapsed)
		logger.Errorw("alipay_precreate_decode_failed",
			"out_trade_no", input.OutTradeNo,
			"error", err,
		)
		return PrecreateResult{ErrorMsg: err.Error(), Err: fmt.Errorf("%w: %w", ErrGatewayTransport, err)}
	}
	code := stringField(data, "code")
	qrCode := stringField(data, "qr_code")
	if code == constants.AlipayCodeSuccess && qrCode != "" {
		metrics.ObserveGatewayCall(method, metrics.OutcomeSuccess, elapsed)
		logger.Infow("alipay_precreate_succeeded", "out_trade_no", input.OutTradeNo)
		return PrecreateResult{Success: true, QRCode: qrCode}
	}

	msg := stringField(data, "msg")
	if code == constants.AlipayCodeSuccess {
		msg = "qr_code missing in gateway response"
	}
	if msg == "" {
		msg = defaultPrecreateFailureMsg
	}
	metrics.ObserveGatewayCall(method, metrics.OutcomeFailure, elapsed)
	logger.Errorw("alipay_precreate_failed",
		"out_trade_no", input.OutTradeNo,
		"code", code,
		"msg", stringField(data, "msg"),
		"sub_code", stringField(data, "sub_code"),
		"sub_msg", stringField(data, "sub_msg"),
	)
	return PrecreateResult{
		ErrorMsg: msg,
		Err:      fmt.Errorf("%w: code=%s sub_code=%s", ErrGatewayFailure, code, stringField(data, "sub_code")),
	}
}

// Query 调用 alipay.trade.query；out_trade_no 与 trade_no 由调用方保证至少一个
func (s *PaymentService) Query(ctx context.Context, outTradeNo, tradeNo string) QueryResult {
	method := constants.AlipayMethodTradeQuery
	logger.Infow("alipay_query_requested", "out_trade_no", outTradeNo, "trade_no", tradeNo)
	gateway := s.current()
	if gateway == nil {
		logger.Errorw("alipay_query_gateway_unavailable", "out_trade_no", outTradeNo)
		return QueryResult{Message: ErrGatewayUnavailable.Error(), Err: ErrGatewayUnavailable}
	}

	start := s.now()
	body, err := gateway.Execute(ctx, alipay.QueryRequest{OutTradeNo: outTradeNo, TradeNo: tradeNo})
	elapsed := s.now().Sub(start)
	if err != nil {
		metrics.ObserveGatewayCall(method, metrics.OutcomeTransport, elapsed)
		logger.Errorw("alipay_query_error", "out_trade_no", outTradeNo, "trade_no", tradeNo, "error", err)
		return QueryResult{Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrGatewayTransport, err)}
	}
	logger.Debugw("alipay_query_raw_response", "out_trade_no", outTradeNo, "body", string(body))

	data, err := decodeObject(body)
	if err != nil {
		metrics.ObserveGatewayCall(method, metrics.OutcomeTransport, elapsed)
		logger.Errorw("alipay_query_decode_failed", "out_trade_no", outTradeNo, "error", err)
		return QueryResult{Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrGatewayTransport, err)}
	}

	code := stringField(data, "code")
	switch {
	case code == constants.AlipayCodeBusinessFailed && stringField(data, "sub_code") == constants.AlipaySubCodeTradeNotExist:
		metrics.ObserveGatewayCall(method, metrics.OutcomeNotFound, elapsed)
		logger.Infow("alipay_query_trade_not_exist", "out_trade_no", outTradeNo)
		return QueryResult{
			Message: i18n.T(i18n.DefaultLocale, "query.not_paid"),
			Data:    data,
			Err:     ErrTradeNotFound,
		}
	case code == constants.AlipayCodeSuccess:
		metrics.ObserveGatewayCall(method, metrics.OutcomeSuccess, elapsed)
		logger.Infow("alipay_query_succeeded",
			"out_trade_no", outTradeNo,
			"trade_status", stringField(data, "trade_status"),
		)
		return QueryResult{
			Success: true,
			Message: i18n.T(i18n.DefaultLocale, "query.succeeded"),
			Data:    data,
		}
	}

	msg := stringField(data, "msg")
	if msg == "" {
		msg = i18n.T(i18n.DefaultLocale, "query.failed")
	}
	metrics.ObserveGatewayCall(method, metrics.OutcomeFailure, elapsed)
	logger.Errorw("alipay_query_failed",
		"out_trade_no", outTradeNo,
		"code", code,
		"msg", msg,
		"sub_code", stringField(data, "sub_code"),
	)
	return QueryResult{
		Message: msg,
		Data:    data,
		Err:     fmt.Errorf("%w: code=%s", ErrGatewayFailure, code),
	}
}

func (s *PaymentService) current() Gateway {
	if s == nil || s.gateways == nil {
		return nil
	}
	return s.gateways.Current()
}

func decodeObject(body []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var data map[string]interface{}
	if err := decoder.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("gateway response is not an object")
	}
	return data, nil
}

func stringField(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
