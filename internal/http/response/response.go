package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EnvironmentResponse 环境切换/查询响应
type EnvironmentResponse struct {
	Code        int    `json:"code"`
	Msg         string `json:"msg,omitempty"`
	Sandbox     bool   `json:"sandbox"`
	Environment string `json:"environment,omitempty"`
}

// PendingResponse 查询失败或未支付时的统一响应
type PendingResponse struct {
	Code        string `json:"code"`
	Msg         string `json:"msg"`
	TradeStatus string `json:"trade_status"`
}

// OrderCreated 下单成功响应
type OrderCreated struct {
	Code           int    `json:"code"`
	QRCode         string `json:"qr_code"`
	OrderID        string `json:"order_id"`
	Amount         string `json:"amount"`
	TimeoutExpress string `json:"timeout_express"`
	ExpireSeconds  int64  `json:"expire_seconds"`
}

// Detail 下单失败响应
type Detail struct {
	Code      int    `json:"code"`
	Detail    string `json:"detail"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Message 通用失败响应
type Message struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// JSON 统一以 200 输出业务响应
func JSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Pending 输出待支付响应
func Pending(c *gin.Context, msg string) {
	JSON(c, PendingResponse{
		Code:        PendingCode,
		Msg:         msg,
		TradeStatus: "WAIT_BUYER_PAY",
	})
}

// Fail 输出 {code:1, msg}
func Fail(c *gin.Context, msg string) {
	JSON(c, Message{Code: CodeFail, Msg: msg})
}

// FailDetail 输出 {code:1, detail}，可重试时附带 retryable:true
func FailDetail(c *gin.Context, detail string, retryable bool) {
	JSON(c, Detail{Code: CodeFail, Detail: detail, Retryable: retryable})
}

// Status 非业务错误（限流等）使用真实 HTTP 状态码
func Status(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Message{Code: CodeFail, Msg: msg})
}
