package public

import (
	handlershared "github.com/f2fpay/internal/http/handlers/shared"
	"github.com/f2fpay/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondDetail(c *gin.Context, appErr *response.AppError) {
	handlershared.RespondDetail(c, appErr)
}

func respondMessage(c *gin.Context, appErr *response.AppError) {
	handlershared.RespondMessage(c, appErr)
}
