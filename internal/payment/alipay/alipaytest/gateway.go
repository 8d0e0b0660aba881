// Package alipaytest 提供测试用的支付宝网关桩。
package alipaytest

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/payment/alipay"
)

// KeyPair 测试 RSA 密钥对（PEM）
type KeyPair struct {
	Private    *rsa.PrivateKey
	PrivatePEM string
	PublicPEM  string
}

// NewKeyPair 生成 2048 位测试密钥
func NewKeyPair(t testing.TB) KeyPair {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key failed: %v", err)
	}
	privateKeyDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		t.Fatalf("marshal private key failed: %v", err)
	}
	publicKeyDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key failed: %v", err)
	}
	return KeyPair{
		Private:    privateKey,
		PrivatePEM: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateKeyDER})),
		PublicPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicKeyDER})),
	}
}

// Sign 以 RSA2 对内容签名
func (k KeyPair) Sign(t testing.TB, content string) string {
	t.Helper()
	sum := sha256.Sum256([]byte(content))
	sig, err := rsa.SignPKCS1v15(rand.Reader, k.Private, crypto.SHA256, sum[:])
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return base64.StdEncoding.EncodeToString(sig)
}

// Reply 网关对某个方法的应答
type Reply struct {
	Node    map[string]interface{}
	Signed  bool
	BadSign bool
	Status  int
	RawBody string
	Delay   time.Duration
}

// Gateway 记录请求并按方法返回预设应答的假网关
type Gateway struct {
	Server *httptest.Server
	Keys   KeyPair

	t        testing.TB
	mu       sync.Mutex
	replies  map[string]Reply
	requests []url.Values
}

// NewGateway 启动假网关，测试结束自动关闭
func NewGateway(t testing.TB) *Gateway {
	t.Helper()
	g := &Gateway{
		Keys:    NewKeyPair(t),
		t:       t,
		replies: make(map[string]Reply),
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Server.Close)
	return g
}

// On 设置某个方法的应答
func (g *Gateway) On(method string, reply Reply) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[method] = reply
}

// Requests 返回已收到的请求表单
func (g *Gateway) Requests() []url.Values {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]url.Values, len(g.requests))
	copy(out, g.requests)
	return out
}

// LastBizContent 返回最后一次请求的 biz_content
func (g *Gateway) LastBizContent() map[string]interface{} {
	requests := g.Requests()
	if len(requests) == 0 {
		return nil
	}
	var biz map[string]interface{}
	_ = json.Unmarshal([]byte(requests[len(requests)-1].Get("biz_content")), &biz)
	return biz
}

// Config 指向假网关的客户端配置，密钥与网关共用一对
func (g *Gateway) Config(env string) alipay.Config {
	return alipay.Config{
		Environment:     env,
		AppID:           "2026000000000000",
		PrivateKey:      g.Keys.PrivatePEM,
		AlipayPublicKey: g.Keys.PublicPEM,
		GatewayURL:      g.Server.URL + "/gateway.do",
		SignType:        "RSA2",
		Timeout:         2 * time.Second,
	}
}

// Client 创建指向假网关的客户端
func (g *Gateway) Client(env string) *alipay.Client {
	g.t.Helper()
	client, err := alipay.NewClient(g.Config(env))
	if err != nil {
		g.t.Fatalf("new alipay client failed: %v", err)
	}
	return client
}

func (g *Gateway) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		g.t.Errorf("parse gateway form failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	form := r.PostForm
	g.verifyRequestSign(form)

	method := form.Get("method")
	g.mu.Lock()
	g.requests = append(g.requests, form)
	reply, ok := g.replies[method]
	g.mu.Unlock()
	if !ok {
		reply = Reply{Node: map[string]interface{}{"code": "40004", "msg": "Business Failed", "sub_code": "ACQ.SYSTEM_ERROR"}}
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if reply.Status != 0 && reply.Status != http.StatusOK {
		w.WriteHeader(reply.Status)
		return
	}
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	if reply.RawBody != "" {
		_, _ = w.Write([]byte(reply.RawBody))
		return
	}
	node, err := json.Marshal(reply.Node)
	if err != nil {
		g.t.Errorf("marshal reply failed: %v", err)
		return
	}
	key := strings.ReplaceAll(method, ".", "_") + "_response"
	body := `{"` + key + `":` + string(node)
	if reply.Signed {
		body += `,"sign":"` + g.Keys.Sign(g.t, string(node)) + `"`
	} else if reply.BadSign {
		body += `,"sign":"` + base64.StdEncoding.EncodeToString([]byte("forged")) + `"`
	}
	body += "}"
	_, _ = w.Write([]byte(body))
}

func (g *Gateway) verifyRequestSign(form url.Values) {
	keys := make([]string, 0, len(form))
	for key := range form {
		if key == "sign" || strings.TrimSpace(form.Get(key)) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+form.Get(key))
	}
	sig, err := base64.StdEncoding.DecodeString(form.Get("sign"))
	if err != nil {
		g.t.Errorf("request sign is not base64: %v", err)
		return
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "&")))
	if err := rsa.VerifyPKCS1v15(&g.Keys.Private.PublicKey, crypto.SHA256, sum[:], sig); err != nil {
		g.t.Errorf("request sign verify failed: %v", err)
	}
}

// TradeNotExist 交易不存在应答
func TradeNotExist() Reply {
	return Reply{Node: map[string]interface{}{
		"code":     constants.AlipayCodeBusinessFailed,
		"msg":      "Business Failed",
		"sub_code": constants.AlipaySubCodeTradeNotExist,
		"sub_msg":  "交易不存在",
	}}
}
