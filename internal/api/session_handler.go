package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"rgResume/internal/api/middleware"
	"rgResume/internal/resume"
	"rgResume/internal/session"
)

// SessionHandler 承载简历编辑会话的全部读写端点。
// 编辑操作都走 Store.Mutate，读改写在同一临界区内完成。
type SessionHandler struct {
	store  *session.Store
	logger *slog.Logger
}

// NewSessionHandler 构造会话处理器。
func NewSessionHandler(store *session.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{store: store, logger: logger}
}

// CreateSession 新建编辑会话。body 传 {"sample": true} 时直接载入示例文档。
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		Sample bool `json:"sample"`
	}
	// body 可省略，省略时创建空白文档。
	_ = c.ShouldBindJSON(&req)

	var (
		id  string
		doc resume.Document
	)
	if req.Sample {
		id, doc = h.store.CreateSample()
	} else {
		id, doc = h.store.Create()
	}

	middleware.LoggerFromContext(c).Info("session created",
		slog.String("session_id", id),
		slog.Bool("sample", req.Sample),
	)
	c.JSON(http.StatusCreated, gin.H{"session_id": id, "document": doc})
}

// GetSession 返回会话当前文档。
func (h *SessionHandler) GetSession(c *gin.Context) {
	doc, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// ReplaceSession 以整份文档替换会话内容（例如客户端导入备份）。
func (h *SessionHandler) ReplaceSession(c *gin.Context) {
	var doc resume.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, "invalid document payload")
		return
	}
	if err := h.store.Replace(c.Param("id"), doc); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			NotFound(c, "session not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// LoadSample 将会话重置为示例文档。
func (h *SessionHandler) LoadSample(c *gin.Context) {
	doc, err := h.store.LoadSample(c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// UpdatePersonal 修改单个联系信息字段。
func (h *SessionHandler) UpdatePersonal(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "field is required")
		return
	}
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.UpdatePersonalInfo(doc, req.Field, req.Value)
	})
}

// UpdateSummary 整体替换职业概述。
func (h *SessionHandler) UpdateSummary(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid summary payload")
		return
	}
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.SetSummary(doc, req.Text)
	})
}

// AddEntry 在集合尾部追加空白条目，返回新条目 ID 与更新后的文档。
func (h *SessionHandler) AddEntry(c *gin.Context) {
	collection := resume.Collection(c.Param("collection"))
	if !resume.KnownCollection(collection) {
		BadRequest(c, "unknown collection")
		return
	}

	var entryID string
	doc, err := h.store.Mutate(c.Param("id"), func(doc resume.Document) resume.Document {
		doc, entryID = resume.AddEntry(doc, collection)
		return doc
	})
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry_id": entryID, "document": doc})
}

// UpdateEntryField 修改指定条目的单个字段。
// 条目 ID 已失效（并发删除后的过期引用）时返回未变的文档，不算错误。
func (h *SessionHandler) UpdateEntryField(c *gin.Context) {
	collection := resume.Collection(c.Param("collection"))
	if !resume.KnownCollection(collection) {
		BadRequest(c, "unknown collection")
		return
	}
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "field is required")
		return
	}

	entryID := c.Param("entryID")
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.UpdateEntryField(doc, collection, entryID, req.Field, req.Value)
	})
}

// RemoveEntry 删除指定条目。ID 不存在时为 no-op。
func (h *SessionHandler) RemoveEntry(c *gin.Context) {
	collection := resume.Collection(c.Param("collection"))
	if !resume.KnownCollection(collection) {
		BadRequest(c, "unknown collection")
		return
	}
	entryID := c.Param("entryID")
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.RemoveEntry(doc, collection, entryID)
	})
}

// UpdateSkills 以逗号分隔的原始输入整体替换一个技能类别。
func (h *SessionHandler) UpdateSkills(c *gin.Context) {
	category := resume.SkillCategory(c.Param("category"))
	switch category {
	case resume.SkillLanguages, resume.SkillFrameworks, resume.SkillTools, resume.SkillLibraries:
	default:
		BadRequest(c, "unknown skill category")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid skills payload")
		return
	}
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.UpdateSkills(doc, category, req.Text)
	})
}

// ClearSection 清空单个区块的内容，目前支持职业概述与技能区块。
func (h *SessionHandler) ClearSection(c *gin.Context) {
	key := resume.SectionKey(c.Param("key"))
	if !resume.KnownSection(key) {
		BadRequest(c, "unknown section")
		return
	}
	h.mutate(c, func(doc resume.Document) resume.Document {
		return resume.ClearSection(doc, key)
	})
}

// MoveSectionUp 将区块上移一位，已在首位时不变。
func (h *SessionHandler) MoveSectionUp(c *gin.Context) {
	h.moveSection(c, resume.MoveSectionUp)
}

// MoveSectionDown 将区块下移一位，已在末位时不变。
func (h *SessionHandler) MoveSectionDown(c *gin.Context) {
	h.moveSection(c, resume.MoveSectionDown)
}

func (h *SessionHandler) moveSection(c *gin.Context, move func(resume.Document, resume.SectionKey) resume.Document) {
	key := resume.SectionKey(c.Param("key"))
	if !resume.KnownSection(key) {
		BadRequest(c, "unknown section")
		return
	}
	h.mutate(c, func(doc resume.Document) resume.Document {
		return move(doc, key)
	})
}

func (h *SessionHandler) mutate(c *gin.Context, apply func(resume.Document) resume.Document) {
	doc, err := h.store.Mutate(c.Param("id"), apply)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h *SessionHandler) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		NotFound(c, "session not found")
		return
	}
	middleware.LoggerFromContext(c).Error("session store failure", slog.Any("error", err))
	Internal(c, "session store failure")
}
