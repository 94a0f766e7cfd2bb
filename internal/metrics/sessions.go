package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegisterSessionGauge 注册活跃会话数指标，count 在采集时调用。
func RegisterSessionGauge(count func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "rgresume",
			Subsystem: "session",
			Name:      "active_sessions",
			Help:      "当前驻留内存的编辑会话数量。",
		},
		func() float64 { return float64(count()) },
	))
}
