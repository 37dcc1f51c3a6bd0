// internal/model/report.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeLabel は20-80スカウトグレードの定性ラベルです。
type GradeLabel string

const (
	LabelBelowAverage GradeLabel = "below_average"
	LabelAverage      GradeLabel = "average"
	LabelAboveAverage GradeLabel = "above_average"
)

// SessionSummary はスイング集合から導出される要約統計です。
// 永続化せず、同じ入力からは常に同じ値が再計算されます。
// 値が1件も無い統計は 0 ではなく nil になります。
type SessionSummary struct {
	MetricType MetricType `json:"metric_type"`
	Count      int        `json:"count"`
	Avg        *float64   `json:"avg"`
	Max        *float64   `json:"max"`
	Min        *float64   `json:"min"`
}

// TrendDirection は直近2つのグレードの比較結果です。
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// ReportPayload は1セッション分のレポートです。レンダリング層はこれをそのまま使います。
// グレードが算出できない場合（レベルのベンチマーク未定義）は Grade が nil になります。
type ReportPayload struct {
	SessionID   uuid.UUID   `json:"session_id"`
	PlayerID    uuid.UUID   `json:"player_id"`
	SessionDate time.Time   `json:"session_date"`
	Category    string      `json:"category,omitempty"`
	PlayerLevel PlayerLevel `json:"player_level"`

	Summary SessionSummary `json:"summary"`
	Grade   *int           `json:"grade"`
	Label   GradeLabel     `json:"grade_label,omitempty"`

	// ストライクゾーン13分割ごとの平均打球速度。打席が無いゾーンは nil。
	ZoneAverages map[int]*float64 `json:"zone_averages,omitempty"`
}

// ProgressionReport は選手の時系列レポートです。
type ProgressionReport struct {
	PlayerID   uuid.UUID       `json:"player_id"`
	MetricType MetricType      `json:"metric_type"`
	Sessions   []ReportPayload `json:"sessions"`
	Trend      TrendDirection  `json:"trend"`
}

// GoalAchievedEvent は目標達成時に通知層へ渡すイベントです。
type GoalAchievedEvent struct {
	GoalID            uuid.UUID `json:"goal_id"`
	PlayerID          uuid.UUID `json:"player_id"`
	GoalType          GoalType  `json:"goal_type"`
	TargetValue       float64   `json:"target_value"`
	AchievedValue     float64   `json:"achieved_value"`
	AchievedSessionID uuid.UUID `json:"achieved_session_id"`
	AchievedDate      time.Time `json:"achieved_date"`
}
