package public

import (
	"strings"

	"github.com/f2fpay/internal/constants"
	"github.com/f2fpay/internal/http/response"
	"github.com/f2fpay/internal/i18n"
	"github.com/f2fpay/internal/qrcode"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
)

type orderStatusResponse struct {
	Code int `json:"code"`
	service.OrderStatus
}

// CreateOrder 预创建订单并返回二维码图片
func (h *Handler) CreateOrder(c *gin.Context) {
	log := requestLog(c)
	amount, err := service.ParseAmount(c.Query("amount"))
	if err != nil {
		respondDetail(c, mapHandlerError(err, amountErrorRules, ""))
		return
	}
	subject := strings.TrimSpace(c.Query("subject"))
	if subject == "" {
		respondDetail(c, response.WrapError("order.subject_required", nil))
		return
	}
	timeoutExpress, ok := c.GetQuery("timeout_express")
	if !ok {
		timeoutExpress = constants.TimeoutExpressDefault
	}
	if err := service.ValidateTimeoutExpress(timeoutExpress); err != nil {
		respondDetail(c, mapHandlerError(err, timeoutExpressErrorRules, ""))
		return
	}

	orderID := service.NewOrderID(h.now())
	result := h.PaymentService.Precreate(c.Request.Context(), service.PrecreateInput{
		OutTradeNo:     orderID,
		Amount:         amount,
		Subject:        subject,
		TimeoutExpress: timeoutExpress,
	})
	if !result.Success {
		log.Warnw("create_order_precreate_failed",
			"out_trade_no", orderID,
			"retryable", result.Retryable,
			"error", result.Err,
		)
		appErr := mapHandlerError(result.Err, gatewayErrorRules, result.ErrorMsg)
		appErr.Retryable = result.Retryable
		respondDetail(c, appErr)
		return
	}

	image, err := qrcode.DataURI(result.QRCode)
	if err != nil {
		respondDetail(c, response.WrapDetail(err.Error(), err))
		return
	}
	expireSeconds, _ := service.TimeoutSeconds(timeoutExpress)
	log.Infow("create_order_succeeded", "out_trade_no", orderID, "amount", amount.StringFixed(2))
	response.JSON(c, response.OrderCreated{
		Code:           response.CodeOK,
		QRCode:         image,
		OrderID:        orderID,
		Amount:         amount.StringFixed(2),
		TimeoutExpress: timeoutExpress,
		ExpireSeconds:  expireSeconds,
	})
}

// CheckOrderStatus 按商户订单号查询状态
func (h *Handler) CheckOrderStatus(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("order_id"))
	result := h.PaymentService.Query(c.Request.Context(), orderID, "")
	if !result.Success {
		respondMessage(c, mapHandlerError(result.Err, queryErrorRules, result.Message))
		return
	}
	response.JSON(c, orderStatusResponse{
		Code:        response.CodeOK,
		OrderStatus: service.BuildOrderStatus(result.Data, i18n.ResolveLocale(c)),
	})
}
