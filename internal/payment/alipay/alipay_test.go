package alipay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/payment/alipay"
	"github.com/f2fpay/internal/payment/alipay/alipaytest"

	"github.com/shopspring/decimal"
)

func TestNewClientValidatesConfig(t *testing.T) {
	gateway := alipaytest.NewGateway(t)

	cfg := gateway.Config(constants.EnvironmentSandbox)
	cfg.AppID = ""
	if _, err := alipay.NewClient(cfg); !errors.Is(err, alipay.ErrConfigInvalid) {
		t.Fatalf("expected config invalid for empty app_id, got %v", err)
	}

	cfg = gateway.Config("staging")
	if _, err := alipay.NewClient(cfg); !errors.Is(err, alipay.ErrConfigInvalid) {
		t.Fatalf("expected config invalid for unknown environment, got %v", err)
	}

	cfg = gateway.Config(constants.EnvironmentSandbox)
	cfg.PrivateKey = "not-a-key"
	if _, err := alipay.NewClient(cfg); !errors.Is(err, alipay.ErrConfigInvalid) {
		t.Fatalf("expected config invalid for broken private key, got %v", err)
	}

	cfg = gateway.Config(constants.EnvironmentProduction)
	cfg.SignType = "rsa2"
	client, err := alipay.NewClient(cfg)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Config().SignType != "RSA2" {
		t.Fatalf("expected sign_type RSA2, got %s", client.Config().SignType)
	}
	if client.Environment() != constants.EnvironmentProduction {
		t.Fatalf("environment want production got %s", client.Environment())
	}
}

func TestExecutePrecreate(t *testing.T) {
	gateway := alipaytest.NewGateway(t)
	gateway.On(constants.AlipayMethodTradePrecreate, alipaytest.Reply{
		Node: map[string]interface{}{
			"code":         "10000",
			"msg":          "Success",
			"out_trade_no": "ORDER-1",
			"qr_code":      "https://qr.alipay.com/abc",
		},
		Signed: true,
	})
	client := gateway.Client(constants.EnvironmentSandbox)

	body, err := client.Execute(context.Background(), alipay.PrecreateRequest{
		OutTradeNo:     "ORDER-1",
		TotalAmount:    decimal.RequireFromString("19.9"),
		Subject:        "测试商品",
		TimeoutExpress: "15m",
		Extra:          map[string]interface{}{"store_id": "S-01"},
	})
	if err != nil {
		t.Fatalf("execute precreate failed: %v", err)
	}
	var node map[string]interface{}
	if err := json.Unmarshal(body, &node); err != nil {
		t.Fatalf("decode node failed: %v", err)
	}
	if node["qr_code"] != "https://qr.alipay.com/abc" {
		t.Fatalf("unexpected qr_code: %v", node["qr_code"])
	}

	requests := gateway.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 gateway request, got %d", len(requests))
	}
	if requests[0].Get("method") != constants.AlipayMethodTradePrecreate {
		t.Fatalf("unexpected method: %s", requests[0].Get("method"))
	}
	biz := gateway.LastBizContent()
	if biz["total_amount"] != "19.90" {
		t.Fatalf("total_amount want 19.90 got %v", biz["total_amount"])
	}
	if biz["timeout_express"] != "15m" {
		t.Fatalf("timeout_express want 15m got %v", biz["timeout_express"])
	}
	if biz["store_id"] != "S-01" {
		t.Fatalf("extra field not forwarded: %v", biz)
	}
}

func TestExecuteRejectsForgedResponseSign(t *testing.T) {
	gateway := alipaytest.NewGateway(t)
	gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{
		Node:    map[string]interface{}{"code": "10000", "trade_status": "TRADE_SUCCESS"},
		BadSign: true,
	})
	client := gateway.Client(constants.EnvironmentSandbox)

	_, err := client.Execute(context.Background(), alipay.QueryRequest{OutTradeNo: "ORDER-2"})
	if !errors.Is(err, alipay.ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid, got %v", err)
	}
}

func TestExecuteErrorResponseNode(t *testing.T) {
	gateway := alipaytest.NewGateway(t)
	gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{
		RawBody: `{"error_response":{"code":"40001","msg":"Missing Required Arguments","sub_code":"isv.missing-app-id"}}`,
	})
	client := gateway.Client(constants.EnvironmentSandbox)

	body, err := client.Execute(context.Background(), alipay.QueryRequest{TradeNo: "2026"})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(string(body), "40001") {
		t.Fatalf("expected error_response node, got %s", body)
	}
}

func TestExecuteTransportFailures(t *testing.T) {
	gateway := alipaytest.NewGateway(t)
	client := gateway.Client(constants.EnvironmentSandbox)

	gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{Status: http.StatusBadGateway})
	if _, err := client.Execute(context.Background(), alipay.QueryRequest{OutTradeNo: "X"}); !errors.Is(err, alipay.ErrResponseInvalid) {
		t.Fatalf("expected response invalid for 502, got %v", err)
	}

	gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{RawBody: "<html>"})
	if _, err := client.Execute(context.Background(), alipay.QueryRequest{OutTradeNo: "X"}); !errors.Is(err, alipay.ErrResponseInvalid) {
		t.Fatalf("expected response invalid for html body, got %v", err)
	}

	gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{Delay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Execute(ctx, alipay.QueryRequest{OutTradeNo: "X"})
	if !errors.Is(err, alipay.ErrRequestFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected request failed with deadline exceeded, got %v", err)
	}
}

func TestPrecreateRequestBizContent(t *testing.T) {
	_, err := alipay.PrecreateRequest{
		OutTradeNo:  "ORDER-3",
		TotalAmount: decimal.RequireFromString("1"),
		Subject:     "s",
		Extra:       map[string]interface{}{"out_trade_no": "OVERRIDE"},
	}.BizContent()
	if !errors.Is(err, alipay.ErrRequestInvalid) {
		t.Fatalf("expected core field override to be rejected, got %v", err)
	}

	_, err = alipay.PrecreateRequest{OutTradeNo: "ORDER-3", TotalAmount: decimal.Zero, Subject: "s"}.BizContent()
	if !errors.Is(err, alipay.ErrRequestInvalid) {
		t.Fatalf("expected zero amount to be rejected, got %v", err)
	}

	for _, raw := range []string{"0.004", "10.505", "0.105"} {
		_, err = alipay.PrecreateRequest{OutTradeNo: "ORDER-3", TotalAmount: decimal.RequireFromString(raw), Subject: "s"}.BizContent()
		if !errors.Is(err, alipay.ErrRequestInvalid) {
			t.Fatalf("amount %s should be rejected instead of rounded, got %v", raw, err)
		}
	}

	biz, err := alipay.PrecreateRequest{
		OutTradeNo:  "ORDER-3",
		TotalAmount: decimal.RequireFromString("0.1"),
		Subject:     "s",
	}.BizContent()
	if err != nil {
		t.Fatalf("biz content failed: %v", err)
	}
	if biz["total_amount"] != "0.10" {
		t.Fatalf("total_amount want 0.10 got %v", biz["total_amount"])
	}
	if _, ok := biz["timeout_express"]; ok {
		t.Fatalf("empty timeout_express should be omitted")
	}
}

func TestVerifyCallback(t *testing.T) {
	gateway := alipaytest.NewGateway(t)
	client := gateway.Client(constants.EnvironmentSandbox)
	form := map[string][]string{
		"app_id":       {"2026000000000000"},
		"notify_id":    {"notify-1"},
		"notify_type":  {"trade_status_sync"},
		"out_trade_no": {"ORDER-VERIFY-1"},
		"trade_no":     {"20260209000088"},
		"trade_status": {"TRADE_SUCCESS"},
		"total_amount": {"88.00"},
		"sign_type":    {"RSA2"},
	}
	content := "app_id=2026000000000000&notify_id=notify-1&notify_type=trade_status_sync" +
		"&out_trade_no=ORDER-VERIFY-1&total_amount=88.00&trade_no=20260209000088&trade_status=TRADE_SUCCESS"
	form["sign"] = []string{gateway.Keys.Sign(t, content)}
	if err := client.VerifyCallback(form); err != nil {
		t.Fatalf("verify callback failed: %v", err)
	}

	form["total_amount"] = []string{"0.01"}
	if err := client.VerifyCallback(form); !errors.Is(err, alipay.ErrSignatureInvalid) {
		t.Fatalf("expected tampered callback to fail, got %v", err)
	}
}
