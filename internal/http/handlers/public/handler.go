package public

import (
	"time"

	"github.com/f2fpay/internal/provider"
)

// Handler 公开接口处理器：下单、查询、环境切换、异步通知
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
