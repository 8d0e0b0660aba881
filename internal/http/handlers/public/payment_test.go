package public

import (
	"net/http"
	"testing"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/payment/alipay/alipaytest"
)

func assertPending(t *testing.T, body map[string]interface{}) {
	t.Helper()
	if len(body) != 3 || body["code"] != "40004" || body["msg"] != "awaiting payment" || body["trade_status"] != "WAIT_BUYER_PAY" {
		t.Fatalf("expected uniform pending payload, got %v", body)
	}
}

func TestQueryTradeNotExist(t *testing.T) {
	f := newHandlerFixture(t)
	f.gateway.On(constants.AlipayMethodTradeQuery, alipaytest.TradeNotExist())

	assertPending(t, decodeBody(t, f.do(t, http.MethodGet, "/api/query?out_trade_no=202603050907011234", "", nil)))
}

func TestQueryDowngradesFailures(t *testing.T) {
	cases := map[string]alipaytest.Reply{
		"gateway error":  {Node: map[string]interface{}{"code": "40002", "msg": "Invalid Arguments"}},
		"http error":     {Status: http.StatusBadGateway},
		"malformed body": {RawBody: "<html>maintenance</html>"},
		"forged sign":    {Node: map[string]interface{}{"code": "10000", "trade_status": "TRADE_SUCCESS"}, BadSign: true},
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.gateway.On(constants.AlipayMethodTradeQuery, reply)
			assertPending(t, decodeBody(t, f.do(t, http.MethodGet, "/api/query?trade_no=2026", "", nil)))
		})
	}
}

func TestQueryWithoutIdentifier(t *testing.T) {
	f := newHandlerFixture(t)
	assertPending(t, decodeBody(t, f.do(t, http.MethodGet, "/api/query", "", nil)))
	if n := len(f.gateway.Requests()); n != 0 {
		t.Fatalf("query without identifier must not call the gateway, got %d", n)
	}
}

func TestQueryLocalizedPending(t *testing.T) {
	f := newHandlerFixture(t)
	f.gateway.On(constants.AlipayMethodTradeQuery, alipaytest.TradeNotExist())

	body := decodeBody(t, f.do(t, http.MethodGet, "/api/query?out_trade_no=A&lang=zh-CN", "", nil))
	if body["msg"] != "等待支付" || body["code"] != "40004" {
		t.Fatalf("unexpected localized pending payload: %v", body)
	}
}

func TestQuerySuccessReturnsRawData(t *testing.T) {
	f := newHandlerFixture(t)
	f.gateway.On(constants.AlipayMethodTradeQuery, alipaytest.Reply{
		Node: map[string]interface{}{
			"code":         "10000",
			"msg":          "Success",
			"trade_status": "TRADE_SUCCESS",
			"out_trade_no": "A3",
			"total_amount": "10.50",
		},
		Signed: true,
	})

	body := decodeBody(t, f.do(t, http.MethodGet, "/api/query?out_trade_no=A3", "", nil))
	if body["code"] != "10000" || body["trade_status"] != "TRADE_SUCCESS" || body["total_amount"] != "10.50" {
		t.Fatalf("expected raw gateway data, got %v", body)
	}
	if len(body) != 5 {
		t.Fatalf("raw data should pass through unchanged, got %v", body)
	}
}
