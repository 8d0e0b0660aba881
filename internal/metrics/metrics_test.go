package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGatewayCall(t *testing.T) {
	counter := GatewayRequests().WithLabelValues("alipay.trade.query", OutcomeNotFound)
	before := testutil.ToFloat64(counter)

	ObserveGatewayCall("alipay.trade.query", OutcomeNotFound, 20*time.Millisecond)
	ObserveGatewayCall("alipay.trade.query", OutcomeNotFound, 30*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("counter delta want 2 got %v", got)
	}
	if count := testutil.CollectAndCount(gatewayLatency); count < 1 {
		t.Fatalf("expected latency series, got %d", count)
	}
}

func TestObserveHTTPRequestUnmatched(t *testing.T) {
	counter := HTTPRequests().WithLabelValues("unmatched", "404")
	before := testutil.ToFloat64(counter)

	ObserveHTTPRequest("", 404, time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("unmatched counter delta want 1 got %v", got)
	}
}
