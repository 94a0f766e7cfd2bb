package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如会话缺失、导出降级）
// - 5xxx：系统错误（需要中断流程）
const (
	OK             = 0
	SessionMissing = 4004
	ExportDegraded = 4100
	SystemError    = 5000
)
