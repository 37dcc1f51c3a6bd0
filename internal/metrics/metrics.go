// Package metrics はアプリケーションのPrometheusメトリクスを定義します。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "swinglab"

var (
	// SessionsIngested は取り込みに成功した計測セッションの総数です。
	SessionsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ingested_total",
		Help:      "Total number of swing sessions ingested.",
	}, []string{"metric_type"})

	// SwingsIngested は取り込みに成功したスイング記録の総数です。
	SwingsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swings_ingested_total",
		Help:      "Total number of individual swing records ingested.",
	})

	// GoalsAchieved は達成済みに遷移した目標の総数です。
	GoalsAchieved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_achieved_total",
		Help:      "Total number of goals transitioned to achieved.",
	})

	// GoalsExpired は期限切れで未達成となった目標の総数です。
	GoalsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goals_expired_total",
		Help:      "Total number of goals expired by the periodic sweep.",
	})

	// ReportRequests はレポート生成リクエストの総数です。
	ReportRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_requests_total",
		Help:      "Total number of report requests served.",
	}, []string{"kind"})
)
