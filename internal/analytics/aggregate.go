// internal/analytics/aggregate.go
// analytics はスイング計測の集計・グレード算出・目標評価の純粋関数を提供します。
// I/Oは一切行わず、同じ入力からは常に同じ結果を返します。
package analytics

import (
	"math"

	"swinglab/internal/model"
)

// Round1 は小数第1位への四捨五入です（0から遠い方向へ丸める）。
// 例: 78.38 -> 78.4, -1.25 -> -1.3
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate はセッションのスイング集合を要約統計に縮約します。
// 空入力はエラーではなく Count=0 の要約を返します（空セッションは有効）。
// metricType と異なる種別のレコードが混在している場合は ErrInvalidMetricType を返します。
// 個々のレコードで計測値が nil のものは集計から除外します（0としては扱わない）。
func Aggregate(metricType model.MetricType, records []*model.SwingRecord) (model.SessionSummary, error) {
	summary := model.SessionSummary{MetricType: metricType}

	if !metricType.IsValid() {
		return model.SessionSummary{}, model.ErrInvalidMetricType
	}

	var values []float64
	for _, r := range records {
		if r.MetricType != metricType {
			// セッションは単一計測種別のはず。混在は上流の不変条件違反なので拒否する。
			return model.SessionSummary{}, model.ErrInvalidMetricType
		}
		if v := metricValue(metricType, r); v != nil {
			values = append(values, *v)
		}
	}

	summary.Count = len(records)
	if len(values) == 0 {
		// 全件 nil なら統計も nil のまま（"no data" としてレンダリングされる）
		return summary, nil
	}

	sum := 0.0
	maxV := values[0]
	minV := values[0]
	for _, v := range values {
		sum += v
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}

	avg := Round1(sum / float64(len(values)))
	maxR := Round1(maxV)
	minR := Round1(minV)
	summary.Avg = &avg
	summary.Max = &maxR
	summary.Min = &minR
	return summary, nil
}

// metricValue は計測種別に対応する値を取り出します。
func metricValue(metricType model.MetricType, r *model.SwingRecord) *float64 {
	switch metricType {
	case model.MetricBatSpeed:
		return r.BatSpeed
	case model.MetricExitVelocity:
		return r.ExitVelocity
	}
	return nil
}
