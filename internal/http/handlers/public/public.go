package public

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/f2fpay/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Home 返回静态目录下的 index.html
func (h *Handler) Home(c *gin.Context) {
	index := filepath.Join(h.Config.Server.StaticDir, "index.html")
	if info, err := os.Stat(index); err != nil || info.IsDir() {
		response.Status(c, http.StatusNotFound, "index.html not found")
		return
	}
	c.File(index)
}
