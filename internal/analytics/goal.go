// internal/analytics/goal.go
package analytics

import (
	"time"

	"github.com/google/uuid"

	"swinglab/internal/model"
)

// GoalAchievement は目標を achieved に遷移させる指示です。
// 評価関数は状態を直接書き換えず、遷移指示を返すだけにして、
// 一度きりの達成（at-most-once）の検証をストレージから切り離しています。
type GoalAchievement struct {
	GoalID            uuid.UUID
	AchievedSessionID uuid.UUID
	AchievedDate      time.Time
	AchievedValue     float64
}

// EvaluateGoal は新しく取り込まれたセッションの要約に対して目標を評価します。
// 遷移すべき場合のみ GoalAchievement を返します。以下は全てエラーではなく no-op です:
//   - active 以外の状態（終端状態は再評価しない）
//   - セッション日付が [StartDate, EndDate]（両端含む）の外
//   - 目標種別とセッションの計測種別の不一致
//   - 対象の集計値が nil（データ無しセッション）
func EvaluateGoal(goal *model.Goal, summary model.SessionSummary, sessionID uuid.UUID, sessionDate time.Time) (*GoalAchievement, bool) {
	if goal.Status != model.GoalStatusActive {
		return nil, false
	}

	day := dateOnly(sessionDate)
	if day.Before(dateOnly(goal.StartDate)) || day.After(dateOnly(goal.EndDate)) {
		return nil, false
	}

	value := goalMetricValue(goal.GoalType, summary)
	if value == nil {
		return nil, false
	}
	if *value < goal.TargetValue {
		return nil, false
	}

	return &GoalAchievement{
		GoalID:            goal.GoalID,
		AchievedSessionID: sessionID,
		AchievedDate:      day,
		AchievedValue:     *value,
	}, true
}

// ExpireGoal は期限切れ掃引での遷移要否を判定します。
// active のまま EndDate を過ぎた目標だけが missed になります。
// cancelled / achieved は掃引の対象外です。
func ExpireGoal(goal *model.Goal, today time.Time) bool {
	if goal.Status != model.GoalStatusActive {
		return false
	}
	return dateOnly(goal.EndDate).Before(dateOnly(today))
}

// goalMetricValue は目標種別に対応する集計値を取り出します。
// 計測種別が一致しないセッション（バットスピード目標 vs 打球速度セッション等）は nil です。
func goalMetricValue(goalType model.GoalType, summary model.SessionSummary) *float64 {
	if goalType.MetricType() != summary.MetricType {
		return nil
	}
	switch goalType {
	case model.GoalAvgExitVelocity, model.GoalAvgBatSpeed:
		return summary.Avg
	case model.GoalMaxExitVelocity, model.GoalMaxBatSpeed:
		return summary.Max
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
