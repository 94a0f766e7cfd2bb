package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rgResume/internal/markup"
)

// MarkupHandler 暴露行内标记的无状态编辑操作。
// 文本在请求里进出，不触碰会话存储。
type MarkupHandler struct{}

// NewMarkupHandler 构造标记处理器。
func NewMarkupHandler() *MarkupHandler {
	return &MarkupHandler{}
}

// ApplyFormat 将加粗/斜体/下划线包裹到选区上，返回替换后的文本。
func (h *MarkupHandler) ApplyFormat(c *gin.Context) {
	var req struct {
		Format string `json:"format" binding:"required"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
		Text   string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "format is required")
		return
	}

	format := markup.Format(req.Format)
	switch format {
	case markup.FormatBold, markup.FormatItalic, markup.FormatUnderline:
	default:
		BadRequest(c, "unknown format")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": markup.ApplyFormat(format, req.Start, req.End, req.Text),
	})
}

// InsertLink 用链接标记替换选区。display 与 url 都必填。
func (h *MarkupHandler) InsertLink(c *gin.Context) {
	var req struct {
		Start   int    `json:"start"`
		End     int    `json:"end"`
		Text    string `json:"text"`
		Display string `json:"display"`
		URL     string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid link payload")
		return
	}

	text, err := markup.InsertLink(req.Start, req.End, req.Text, req.Display, req.URL)
	if err != nil {
		if errors.Is(err, markup.ErrLinkTextRequired) || errors.Is(err, markup.ErrLinkURLRequired) {
			BadRequest(c, err.Error())
			return
		}
		Internal(c, "insert link failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
