package shared

import (
	"github.com/f2fpay/internal/http/response"
	"github.com/f2fpay/internal/i18n"
	"github.com/f2fpay/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondDetail 输出 {code:1, detail}，有原始错误时记录日志。
func RespondDetail(c *gin.Context, appErr *response.AppError) {
	msg := appErr.Message(i18n.ResolveLocale(c))
	logAppError(c, appErr, msg)
	response.FailDetail(c, msg, appErr.Retryable)
}

// RespondMessage 输出 {code:1, msg}，有原始错误时记录日志。
func RespondMessage(c *gin.Context, appErr *response.AppError) {
	msg := appErr.Message(i18n.ResolveLocale(c))
	logAppError(c, appErr, msg)
	response.Fail(c, msg)
}

func logAppError(c *gin.Context, appErr *response.AppError, msg string) {
	if appErr.Err == nil {
		return
	}
	RequestLog(c).Errorw("handler_error",
		"path", c.FullPath(),
		"message", msg,
		"error", appErr.Err,
	)
}
