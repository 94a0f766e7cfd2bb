package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rgResume/internal/api/middleware"
	"rgResume/internal/render"
	"rgResume/internal/session"
)

// RenderHandler 暴露编辑与预览两种 HTML 投影，以及 Worker 专用的打印数据端点。
type RenderHandler struct {
	store  *session.Store
	logger *slog.Logger
}

// NewRenderHandler 构造渲染处理器。
func NewRenderHandler(store *session.Store, logger *slog.Logger) *RenderHandler {
	return &RenderHandler{store: store, logger: logger}
}

// Preview 渲染紧凑打印视图：空区块隐藏、标记展开、空白要点过滤。
func (h *RenderHandler) Preview(c *gin.Context) {
	h.renderHTML(c, render.ModePreview)
}

// Editor 渲染完整编辑表单：所有区块与控件始终可见。
func (h *RenderHandler) Editor(c *gin.Context) {
	h.renderHTML(c, render.ModeEditor)
}

func (h *RenderHandler) renderHTML(c *gin.Context, mode render.Mode) {
	doc, err := h.store.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "session not found")
		return
	}
	html, err := render.DocumentHTML(doc, mode)
	if err != nil {
		middleware.LoggerFromContext(c).Error("render document failed",
			slog.String("mode", string(mode)),
			slog.Any("error", err),
		)
		Internal(c, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PrintData 返回会话文档的 JSON 快照，仅供 Worker 经内部密钥访问。
// Worker 在自己的进程里用同一套渲染器生成打印页面。
func (h *RenderHandler) PrintData(c *gin.Context) {
	doc, err := h.store.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "session not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}
