package public

import (
	"errors"
	"io"

	"github.com/f2fpay/internal/http/response"
	"github.com/f2fpay/internal/i18n"
	"github.com/f2fpay/internal/service"

	"github.com/gin-gonic/gin"
)

// ToggleSandboxRequest 环境切换请求，sandbox 缺省为 true
type ToggleSandboxRequest struct {
	Sandbox *bool `json:"sandbox"`
}

// ToggleSandbox 切换沙箱/正式环境
func (h *Handler) ToggleSandbox(c *gin.Context) {
	var req ToggleSandboxRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondMessage(c, response.WrapDetail(err.Error(), err))
		return
	}
	sandbox := true
	if req.Sandbox != nil {
		sandbox = *req.Sandbox
	}

	if err := h.Gateways.Use(sandbox); err != nil {
		respondMessage(c, response.WrapDetail(err.Error(), err))
		return
	}
	requestLog(c).Infow("environment_switched", "environment", service.EnvironmentName(sandbox))
	response.JSON(c, response.EnvironmentResponse{
		Code:        response.CodeOK,
		Msg:         i18n.T(i18n.ResolveLocale(c), "environment.switched"),
		Sandbox:     sandbox,
		Environment: service.EnvironmentName(sandbox),
	})
}

// Environment 返回当前环境
func (h *Handler) Environment(c *gin.Context) {
	sandbox, ok := h.Gateways.Sandbox()
	if !ok {
		respondMessage(c, response.WrapError("order.gateway_unavailable", nil))
		return
	}
	response.JSON(c, response.EnvironmentResponse{
		Code:        response.CodeOK,
		Sandbox:     sandbox,
		Environment: service.EnvironmentName(sandbox),
	})
}
