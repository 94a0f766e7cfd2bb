package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"rgResume/internal/errcode"
	"rgResume/internal/export"
	"rgResume/internal/render"
	"rgResume/internal/storage"
	"rgResume/internal/tasks"
)

// errSessionGone 表示会话在任务执行前已被回收，任务应放弃而非重试。
var errSessionGone = errors.New("session gone")

// ExportTaskHandler 消费导出任务：拉取文档、渲染打印页、截图或打印，
// 上传产物并把下载链接推回会话的通知通道。
type ExportTaskHandler struct {
	storage       *storage.Client
	redisClient   *redis.Client
	logger        *slog.Logger
	secret        string
	apiBaseURL    string
	renderTimeout time.Duration
	presignExpiry time.Duration
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	secret string,
	apiBaseURL string,
	renderTimeout time.Duration,
	presignExpiry time.Duration,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		storage:       storageClient,
		redisClient:   redisClient,
		logger:        logger,
		secret:        secret,
		apiBaseURL:    strings.TrimRight(strings.TrimSpace(apiBaseURL), "/"),
		renderTimeout: renderTimeout,
		presignExpiry: presignExpiry,
	}
}

// ProcessTask 实现 asynq.Handler，按任务类型分派图片或 PDF 导出。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	var payload tasks.ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("session_id", payload.SessionID),
		slog.String("task_type", t.Type()),
	)
	log.Info("Starting resume export task...")

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			SessionID:     payload.SessionID,
			TaskType:      t.Type(),
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if t.Type() == tasks.TypeExportImage {
			notify.ErrorCode = errcode.ExportDegraded
			notify.ErrorMessage = "图片导出失败，请改用 PDF 导出"
		}
		if err := h.publishExportNotify(ctx, payload.SessionID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := fetchSessionDocument(ctx, h.apiBaseURL, payload.SessionID, h.secret)
	if err != nil {
		if errors.Is(err, errSessionGone) {
			// 会话已被回收，重试无意义；通知仍然发出，页面可能还开着。
			log.Warn("session gone, skipping task")
			notify := ExportNotifyMessage{
				Status:        "error",
				SessionID:     payload.SessionID,
				TaskType:      t.Type(),
				CorrelationID: payload.CorrelationID,
				ErrorCode:     errcode.SessionMissing,
				ErrorMessage:  "会话已过期，请重新开始编辑",
			}
			if pubErr := h.publishExportNotify(ctx, payload.SessionID, notify); pubErr != nil {
				log.Error("publish session gone notification failed", slog.Any("error", pubErr))
			}
			return nil
		}
		log.Error("fetch session document failed", slog.Any("error", err))
		return err
	}

	html, err := render.DocumentHTML(doc, render.ModePreview)
	if err != nil {
		log.Error("render document failed", slog.Any("error", err))
		return err
	}

	page, cleanup, err := export.RenderPage(log, html, h.renderTimeout)
	if err != nil {
		log.Error("render browser page failed", slog.Any("error", err))
		return err
	}
	defer cleanup()

	var (
		data        []byte
		contentType string
		fileName    string
	)
	switch t.Type() {
	case tasks.TypeExportImage:
		data, err = export.CaptureImage(page)
		contentType = "image/png"
		fileName = export.ImageFileName(doc.PersonalInfo.FullName)
	case tasks.TypeExportPDF:
		data, err = export.ExportPDF(page)
		contentType = "application/pdf"
		fileName = export.PDFFileName(doc.PersonalInfo.FullName)
	default:
		log.Error("unknown task type")
		return fmt.Errorf("unknown export task type %q", t.Type())
	}
	if err != nil {
		log.Error("capture export artifact failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exports/%s/%s-%s", payload.SessionID, uuid.NewString(), fileName)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		log.Error("upload export artifact failed", slog.Any("error", err))
		if storage.IsNoSuchBucket(err) {
			// Bucket 配置错误重试也不会好转。
			return fmt.Errorf("export bucket missing: %w", asynq.SkipRetry)
		}
		return err
	}

	downloadURL, err := h.storage.GenerateDownloadURL(ctx, objectName, h.presignExpiry, fileName)
	if err != nil {
		log.Error("generate download url failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		SessionID:     payload.SessionID,
		TaskType:      t.Type(),
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
		DownloadURL:   downloadURL,
		FileName:      fileName,
	}
	if err := h.publishExportNotify(ctx, payload.SessionID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Resume export task completed successfully.",
		slog.String("object", objectName),
		slog.Int("bytes", len(data)),
	)
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, sessionID string, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("session_notify:%s", sessionID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
