package worker

// 统一的 WebSocket 消息协议（通过 Redis Pub/Sub 转发给前端）。
// 字段名与前端解析保持一致。
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	SessionID     string `json:"session_id"`
	TaskType      string `json:"task_type"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
	DownloadURL   string `json:"download_url,omitempty"`
	FileName      string `json:"file_name,omitempty"`
}
