package public

import (
	"strings"

	"github.com/f2fpay/internal/http/response"
	"github.com/f2fpay/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Query 轮询交易状态：成功返回网关原始数据，其余一律视为等待支付
func (h *Handler) Query(c *gin.Context) {
	outTradeNo := strings.TrimSpace(c.Query("out_trade_no"))
	tradeNo := strings.TrimSpace(c.Query("trade_no"))
	pendingMsg := i18n.T(i18n.ResolveLocale(c), "query.pending")
	if outTradeNo == "" && tradeNo == "" {
		requestLog(c).Debugw("query_missing_identifier")
		response.Pending(c, pendingMsg)
		return
	}

	result := h.PaymentService.Query(c.Request.Context(), outTradeNo, tradeNo)
	if !result.Success || result.Data == nil {
		requestLog(c).Debugw("query_pending",
			"out_trade_no", outTradeNo,
			"trade_no", tradeNo,
			"message", result.Message,
		)
		response.Pending(c, pendingMsg)
		return
	}
	response.JSON(c, result.Data)
}
