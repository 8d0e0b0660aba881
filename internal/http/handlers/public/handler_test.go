package public

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/f2fpay/internal/config"
	"github.com/f2fpay/internal/payment/alipay"
	"github.com/f2fpay/internal/payment/alipay/alipaytest"
	"github.com/f2fpay/internal/provider"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var fixedNow = time.Date(2026, 3, 5, 9, 7, 1, 234_000_000, time.Local)

type handlerFixture struct {
	engine         *gin.Engine
	gateway        *alipaytest.Gateway
	container      *provider.Container
	failProduction bool
	clientTimeout  time.Duration
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	cfg.Server.StaticDir = t.TempDir()

	f := &handlerFixture{gateway: alipaytest.NewGateway(t)}
	builder := func(sandbox bool) (service.Gateway, error) {
		if !sandbox && f.failProduction {
			return nil, errors.New("production credentials missing")
		}
		cfg := f.gateway.Config(service.EnvironmentName(sandbox))
		if f.clientTimeout > 0 {
			cfg.Timeout = f.clientTimeout
		}
		return alipay.NewClient(cfg)
	}
	f.container = provider.NewContainer(cfg,
		provider.WithGatewayBuilder(builder),
		provider.WithClock(func() time.Time { return fixedNow }),
	)

	h := New(f.container)
	r := gin.New()
	r.GET("/", h.Home)
	r.GET("/create_order", h.CreateOrder)
	r.GET("/check_order_status/:order_id", h.CheckOrderStatus)
	r.POST("/api/toggle_sandbox", h.ToggleSandbox)
	r.GET("/api/environment", h.Environment)
	r.GET("/api/query", h.Query)
	r.POST("/api/notify", h.AlipayNotify)
	f.engine = r
	return f
}

func (f *handlerFixture) do(t *testing.T, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s status want 200 got %d: %s", method, target, w.Code, w.Body.String())
	}
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v (%s)", err, w.Body.String())
	}
	return body
}

// signedNotifyForm 按支付宝规则签名：排除 sign/sign_type，键名排序后拼接
func signedNotifyForm(t *testing.T, keys alipaytest.KeyPair, fields map[string]string) url.Values {
	t.Helper()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	form := url.Values{}
	for _, name := range names {
		parts = append(parts, name+"="+fields[name])
		form.Set(name, fields[name])
	}
	form.Set("sign_type", "RSA2")
	form.Set("sign", keys.Sign(t, strings.Join(parts, "&")))
	return form
}
