package public

import (
	"net/http"
	"strings"
	"time"

	"github.com/f2fpay/internal/cache"
	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/i18n"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
)

const notifyDedupeTTL = 24 * time.Hour

// AlipayNotify 支付宝异步通知：验签后记录交易状态，不落库
func (h *Handler) AlipayNotify(c *gin.Context) {
	log := requestLog(c)
	if err := c.Request.ParseForm(); err != nil {
		log.Warnw("alipay_notify_form_parse_failed", "error", err)
		c.String(http.StatusOK, constants.AlipayCallbackFail)
		return
	}
	form := c.Request.PostForm
	outTradeNo := strings.TrimSpace(form.Get("out_trade_no"))
	log.Infow("alipay_notify_received",
		"client_ip", c.ClientIP(),
		"out_trade_no", outTradeNo,
		"trade_no", strings.TrimSpace(form.Get("trade_no")),
		"trade_status", strings.TrimSpace(form.Get("trade_status")),
	)

	gateway := h.Gateways.Current()
	if gateway == nil {
		log.Errorw("alipay_notify_gateway_unavailable", "out_trade_no", outTradeNo)
		c.String(http.StatusOK, constants.AlipayCallbackFail)
		return
	}
	if err := gateway.VerifyCallback(form); err != nil {
		log.Warnw("alipay_notify_signature_invalid", "out_trade_no", outTradeNo, "error", err)
		c.String(http.StatusOK, constants.AlipayCallbackFail)
		return
	}

	if notifyID := strings.TrimSpace(form.Get("notify_id")); notifyID != "" {
		first, err := cache.MarkOnce(c.Request.Context(), "notify:"+notifyID, notifyDedupeTTL)
		if err != nil {
			log.Warnw("alipay_notify_dedupe_failed", "notify_id", notifyID, "error", err)
		} else if !first {
			log.Infow("alipay_notify_duplicate", "out_trade_no", outTradeNo, "notify_id", notifyID)
			c.String(http.StatusOK, constants.AlipayCallbackSuccess)
			return
		}
	}

	status := strings.TrimSpace(form.Get("trade_status"))
	log.Infow("alipay_notify_verified",
		"out_trade_no", outTradeNo,
		"trade_no", strings.TrimSpace(form.Get("trade_no")),
		"trade_status", status,
		"status_desc", service.DescribeTradeStatus(i18n.DefaultLocale, status),
		"total_amount", strings.TrimSpace(form.Get("total_amount")),
		"buyer_logon_id", strings.TrimSpace(form.Get("buyer_logon_id")),
	)
	c.String(http.StatusOK, constants.AlipayCallbackSuccess)
}
