package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportImage = "export:image"
	TypeExportPDF   = "export:pdf"
)

// ExportPayload 描述一次导出所需的最小信息。
// Worker 通过内部接口按 SessionID 拉取文档，载荷本身不携带简历内容。
type ExportPayload struct {
	SessionID     string `json:"session_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportImageTask 构造整页图片导出任务。
func NewExportImageTask(sessionID, correlationID string) (*asynq.Task, error) {
	return newExportTask(TypeExportImage, sessionID, correlationID)
}

// NewExportPDFTask 构造 A4 PDF 导出任务。
func NewExportPDFTask(sessionID, correlationID string) (*asynq.Task, error) {
	return newExportTask(TypeExportPDF, sessionID, correlationID)
}

func newExportTask(taskType, sessionID, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{
		SessionID:     sessionID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, payload), nil
}
