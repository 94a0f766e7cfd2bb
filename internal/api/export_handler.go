package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"rgResume/internal/api/middleware"
	"rgResume/internal/session"
	"rgResume/internal/tasks"
)

// 单会话导出限流：计数窗口内超过上限直接拒绝入队。
const (
	exportRateLimit  = 10
	exportRateWindow = time.Minute
)

type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExportHandler 将导出请求转成后台任务。
// 入队即返回 202，结果经 Redis 通知推送到 WebSocket。
type ExportHandler struct {
	store       *session.Store
	asynqClient taskEnqueuer
	rateCounter redisRateCounter
	logger      *slog.Logger
}

// NewExportHandler 构造导出处理器。rateCounter 传 nil 时跳过限流。
func NewExportHandler(store *session.Store, asynqClient taskEnqueuer, rateCounter redisRateCounter, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		store:       store,
		asynqClient: asynqClient,
		rateCounter: rateCounter,
		logger:      logger,
	}
}

// ExportImage 请求整页 PNG 导出。
func (h *ExportHandler) ExportImage(c *gin.Context) {
	h.enqueue(c, tasks.NewExportImageTask)
}

// ExportPDF 请求 A4 PDF 导出。
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.enqueue(c, tasks.NewExportPDFTask)
}

func (h *ExportHandler) enqueue(c *gin.Context, newTask func(sessionID, correlationID string) (*asynq.Task, error)) {
	sessionID := c.Param("id")
	if _, err := h.store.Get(sessionID); err != nil {
		NotFound(c, "session not found")
		return
	}

	log := middleware.LoggerFromContext(c).With(slog.String("session_id", sessionID))

	if h.rateCounter != nil {
		key := fmt.Sprintf("export_rate:%s", sessionID)
		count, err := incrWithTTL(c.Request.Context(), h.rateCounter, key, exportRateWindow)
		if err != nil {
			// 限流器不可用时放行，导出功能优先于限流精度。
			log.Warn("export rate counter unavailable", slog.Any("error", err))
		} else if count > exportRateLimit {
			TooManyRequests(c, "too many export requests, slow down")
			return
		}
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := newTask(sessionID, correlationID)
	if err != nil {
		log.Error("build export task failed", slog.Any("error", err))
		Internal(c, "failed to create export task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		log.Error("enqueue export task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue export")
		return
	}

	log.Info("export task enqueued",
		slog.String("task_id", info.ID),
		slog.String("task_type", task.Type()),
	)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "export request accepted",
		"task_id": info.ID,
	})
}
