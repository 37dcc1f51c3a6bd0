// internal/analytics/report.go
package analytics

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"swinglab/internal/model"
)

// SessionMeta はレポートに添付するセッション識別情報です。呼び出し側が供給します。
type SessionMeta struct {
	SessionID   uuid.UUID
	PlayerID    uuid.UUID
	SessionDate time.Time
	Category    string
	PlayerLevel model.PlayerLevel
}

// AssembleReport は要約統計・ゾーン集計・グレードを1つのレポートに合成します。
// DBアクセスは行いません。グレード算出はセッションに記録されたレベルのスナップショットで行い、
// ベンチマーク行が無いレベルの場合は Grade を nil のまま返します
// （集計が成功している限り、グレード不能でもレポート全体は失敗させない）。
func AssembleReport(summary model.SessionSummary, zones map[int]*float64, meta SessionMeta) (model.ReportPayload, error) {
	payload := model.ReportPayload{
		SessionID:    meta.SessionID,
		PlayerID:     meta.PlayerID,
		SessionDate:  meta.SessionDate,
		Category:     meta.Category,
		PlayerLevel:  meta.PlayerLevel,
		Summary:      summary,
		ZoneAverages: zones,
	}

	if summary.Avg == nil {
		// データ無しセッションは "ungraded" のまま返す
		return payload, nil
	}

	result, err := Grade(*summary.Avg, summary.MetricType, meta.PlayerLevel)
	if err != nil {
		if errors.Is(err, model.ErrNoBenchmarkForLevel) {
			return payload, nil
		}
		return model.ReportPayload{}, err
	}
	grade := result.Grade
	payload.Grade = &grade
	payload.Label = result.Label
	return payload, nil
}

// Trend は時系列レポートの傾向を返します。
// grades はセッション日付の昇順で、nil（グレード不能セッション）を含んでもかまいません。
// 直近2つの非nilグレードを比較し、比較対象が2つに満たない場合は stable です。
func Trend(grades []*int) model.TrendDirection {
	var graded []int
	for _, g := range grades {
		if g != nil {
			graded = append(graded, *g)
		}
	}
	if len(graded) < 2 {
		return model.TrendStable
	}

	latest := graded[len(graded)-1]
	previous := graded[len(graded)-2]
	switch {
	case latest > previous:
		return model.TrendUp
	case latest < previous:
		return model.TrendDown
	}
	return model.TrendStable
}
