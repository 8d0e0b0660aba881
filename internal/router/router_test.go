package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/payment/alipay"
	"github.com/f2fpay/internal/payment/alipay/alipaytest"
	"github.com/f2fpay/internal/provider"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func newTestEngine(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *alipaytest.Gateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	cfg.Log.Dir = t.TempDir()
	cfg.Log.Console = false
	cfg.Server.StaticDir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	gateway := alipaytest.NewGateway(t)
	builder := func(sandbox bool) (service.Gateway, error) {
		return alipay.NewClient(gateway.Config(service.EnvironmentName(sandbox)))
	}
	container := provider.NewContainer(cfg, provider.WithGatewayBuilder(builder))
	return SetupRouter(cfg, container), gateway
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestSetupRouterCreateOrder(t *testing.T) {
	engine, gateway := newTestEngine(t, nil)
	gateway.On(constants.AlipayMethodTradePrecreate, alipaytest.Reply{
		Node:   map[string]interface{}{"code": "10000", "msg": "Success", "qr_code": "https://qr.alipay.com/r1"},
		Signed: true,
	})

	w := serve(engine, http.MethodGet, "/create_order?amount=8.8&subject=coffee")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["code"] != float64(0) || body["amount"] != "8.80" {
		t.Fatalf("unexpected create_order body: %v", body)
	}
	if qr, _ := body["qr_code"].(string); !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Fatalf("qr_code should be a png data uri, got %.40s", qr)
	}
}

func TestSetupRouterRoutes(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	if w := serve(engine, http.MethodGet, "/api/environment"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"environment":"sandbox"`) {
		t.Fatalf("unexpected environment response %d: %s", w.Code, w.Body.String())
	}
	if w := serve(engine, http.MethodGet, "/api/query"); !strings.Contains(w.Body.String(), `"code":"40004"`) {
		t.Fatalf("unexpected query response: %s", w.Body.String())
	}
	if w := serve(engine, http.MethodGet, "/"); w.Code != http.StatusNotFound {
		t.Fatalf("home without index.html want 404 got %d", w.Code)
	}
	if w := serve(engine, http.MethodGet, "/metrics"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Fatalf("metrics endpoint not served: %d", w.Code)
	}
}

func TestSetupRouterMetricsDisabled(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *config.Config) {
		cfg.Metrics.Enabled = false
	})
	if w := serve(engine, http.MethodGet, "/metrics"); w.Code != http.StatusNotFound {
		t.Fatalf("metrics should be disabled, got %d", w.Code)
	}
}

func TestSetupRouterRateLimitsCreateOrder(t *testing.T) {
	engine, _ := newTestEngine(t, func(cfg *config.Config) {
		cfg.RateLimit.CreateOrder.MaxRequests = 1
	})

	serve(engine, http.MethodGet, "/create_order?amount=1&subject=a")
	w := serve(engine, http.MethodGet, "/create_order?amount=1&subject=a")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request want 429 got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("Retry-After header missing")
	}
}
